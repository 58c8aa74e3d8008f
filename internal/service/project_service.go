package service

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/ahtisham02/hyperpitch-io-sub002/internal/builder"
	"github.com/ahtisham02/hyperpitch-io-sub002/internal/domain"
	"github.com/ahtisham02/hyperpitch-io-sub002/internal/storage"
)

// ─────────────────────────────────────────────────────────────
// Project Service — project and page persistence
// ─────────────────────────────────────────────────────────────

// ProjectService manages projects and their persisted pages.
type ProjectService struct {
	store     *storage.ProjectStore
	comments  *storage.CommentStore
	snapshots *storage.SnapshotStore
	emitter   EventEmitter
}

// NewProjectService creates a ProjectService.
func NewProjectService(
	store *storage.ProjectStore,
	comments *storage.CommentStore,
	snapshots *storage.SnapshotStore,
	emitter EventEmitter,
) *ProjectService {
	return &ProjectService{
		store:     store,
		comments:  comments,
		snapshots: snapshots,
		emitter:   emitter,
	}
}

func (s *ProjectService) ListProjects() ([]domain.Project, error) {
	return s.store.ListProjects()
}

func (s *ProjectService) GetProject(id string) (*domain.Project, error) {
	return s.store.GetProject(id)
}

// CreateProject creates a project with one empty starter page.
func (s *ProjectService) CreateProject(name string) (*domain.Project, error) {
	p := &domain.Project{
		ID:   uuid.New().String(),
		Name: name,
	}
	if err := s.store.CreateProject(p); err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}
	page := &domain.Page{
		ID:         uuid.New().String(),
		ProjectID:  p.ID,
		Name:       "Home",
		Order:      0,
		LayoutJSON: "[]",
	}
	if err := s.store.CreatePage(page); err != nil {
		return nil, fmt.Errorf("create starter page: %w", err)
	}
	return p, nil
}

func (s *ProjectService) RenameProject(id, name string) error {
	p, err := s.store.GetProject(id)
	if err != nil {
		return err
	}
	p.Name = name
	return s.store.UpdateProject(p)
}

// DeleteProject removes the project and everything hanging off it: pages,
// their comments, and snapshot history.
func (s *ProjectService) DeleteProject(id string) error {
	pages, _ := s.store.ListPages(id)
	for _, p := range pages {
		_ = s.comments.DeleteCommentsByPage(p.ID)
	}
	if err := s.store.DeletePagesByProject(id); err != nil {
		return fmt.Errorf("delete project pages: %w", err)
	}
	_ = s.snapshots.ClearProject(id)
	return s.store.DeleteProject(id)
}

// ── Document load / save ───────────────────────────────────

// LoadDocument assembles the live editing document for a project from its
// persisted pages, globals, and comments.
func (s *ProjectService) LoadDocument(projectID string) (*builder.Document, error) {
	proj, err := s.store.GetProject(projectID)
	if err != nil {
		return nil, err
	}
	rows, err := s.store.ListPages(projectID)
	if err != nil {
		return nil, fmt.Errorf("list pages: %w", err)
	}

	pages := make([]builder.Page, 0, len(rows))
	comments := map[string][]domain.Comment{}
	for _, row := range rows {
		layout, err := builder.DecodeLayout(row.LayoutJSON)
		if err != nil {
			return nil, fmt.Errorf("page %s: %w", row.ID, err)
		}
		pages = append(pages, builder.Page{ID: row.ID, Name: row.Name, Layout: layout})

		cs, err := s.comments.ListComments(row.ID)
		if err != nil {
			return nil, fmt.Errorf("comments for page %s: %w", row.ID, err)
		}
		if len(cs) > 0 {
			comments[row.ID] = cs
		}
	}

	navbar, err := decodeGlobal(proj.GlobalNavbarJSON)
	if err != nil {
		return nil, fmt.Errorf("navbar: %w", err)
	}
	footer, err := decodeGlobal(proj.GlobalFooterJSON)
	if err != nil {
		return nil, fmt.Errorf("footer: %w", err)
	}

	active := ""
	if len(pages) > 0 {
		active = pages[0].ID
	}
	return builder.Assemble(pages, active, navbar, footer, comments)
}

// SaveDocument writes the document's pages, globals, and comments back to
// storage. This is the explicit-save path: nothing persists until the
// user (or a checkpoint) asks for it.
func (s *ProjectService) SaveDocument(projectID string, doc *builder.Document) error {
	proj, err := s.store.GetProject(projectID)
	if err != nil {
		return err
	}

	existing, err := s.store.ListPages(projectID)
	if err != nil {
		return fmt.Errorf("list pages: %w", err)
	}
	known := make(map[string]*domain.Page, len(existing))
	for i := range existing {
		known[existing[i].ID] = &existing[i]
	}

	for order, page := range doc.Pages() {
		layoutJSON, err := builder.EncodeLayout(page.Layout)
		if err != nil {
			return fmt.Errorf("page %s: %w", page.ID, err)
		}
		if row, ok := known[page.ID]; ok {
			row.Name = page.Name
			row.Order = order
			row.LayoutJSON = layoutJSON
			if err := s.store.UpdatePage(row); err != nil {
				return fmt.Errorf("update page %s: %w", page.ID, err)
			}
			delete(known, page.ID)
			continue
		}
		if err := s.store.CreatePage(&domain.Page{
			ID:         page.ID,
			ProjectID:  projectID,
			Name:       page.Name,
			Order:      order,
			LayoutJSON: layoutJSON,
		}); err != nil {
			return fmt.Errorf("create page %s: %w", page.ID, err)
		}
	}
	// Whatever remains was deleted in the editor.
	for id := range known {
		_ = s.comments.DeleteCommentsByPage(id)
		if err := s.store.DeletePage(id); err != nil {
			return fmt.Errorf("delete page %s: %w", id, err)
		}
	}

	if proj.GlobalNavbarJSON, err = encodeGlobal(doc.GlobalNavbar()); err != nil {
		return fmt.Errorf("navbar: %w", err)
	}
	if proj.GlobalFooterJSON, err = encodeGlobal(doc.GlobalFooter()); err != nil {
		return fmt.Errorf("footer: %w", err)
	}
	if err := s.store.UpdateProject(proj); err != nil {
		return fmt.Errorf("update project: %w", err)
	}

	return s.saveComments(doc)
}

func (s *ProjectService) saveComments(doc *builder.Document) error {
	for _, page := range doc.Pages() {
		if err := s.comments.DeleteCommentsByPage(page.ID); err != nil {
			return fmt.Errorf("clear comments for page %s: %w", page.ID, err)
		}
		for _, c := range doc.Comments(page.ID) {
			c := c
			if err := s.comments.CreateComment(&c); err != nil {
				return fmt.Errorf("save comment %s: %w", c.ID, err)
			}
		}
	}
	return nil
}

// GetDocumentState bundles everything the frontend needs to draw a
// project's builder view.
func (s *ProjectService) GetDocumentState(projectID string) (*domain.DocumentState, error) {
	proj, err := s.store.GetProject(projectID)
	if err != nil {
		return nil, err
	}
	pages, err := s.store.ListPages(projectID)
	if err != nil {
		return nil, fmt.Errorf("list pages: %w", err)
	}

	var comments []domain.Comment
	for _, p := range pages {
		cs, err := s.comments.ListComments(p.ID)
		if err != nil {
			return nil, fmt.Errorf("comments for page %s: %w", p.ID, err)
		}
		comments = append(comments, cs...)
	}

	navbar, err := decodeGlobal(proj.GlobalNavbarJSON)
	if err != nil {
		return nil, fmt.Errorf("navbar: %w", err)
	}
	footer, err := decodeGlobal(proj.GlobalFooterJSON)
	if err != nil {
		return nil, fmt.Errorf("footer: %w", err)
	}

	active := ""
	if len(pages) > 0 {
		active = pages[0].ID
	}
	return &domain.DocumentState{
		Project:      *proj,
		Pages:        pages,
		ActivePageID: active,
		GlobalNavbar: navbar,
		GlobalFooter: footer,
		Comments:     comments,
	}, nil
}

func decodeGlobal(s string) (*domain.GlobalElement, error) {
	if s == "" {
		return nil, nil
	}
	var g domain.GlobalElement
	if err := json.Unmarshal([]byte(s), &g); err != nil {
		return nil, fmt.Errorf("decode global element: %w", err)
	}
	return &g, nil
}

func encodeGlobal(g *domain.GlobalElement) (string, error) {
	if g == nil {
		return "", nil
	}
	b, err := json.Marshal(g)
	if err != nil {
		return "", fmt.Errorf("encode global element: %w", err)
	}
	return string(b), nil
}
