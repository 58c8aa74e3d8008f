package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ahtisham02/hyperpitch-io-sub002/internal/ai"
	"github.com/ahtisham02/hyperpitch-io-sub002/internal/builder"
	"github.com/ahtisham02/hyperpitch-io-sub002/internal/domain"
	"github.com/ahtisham02/hyperpitch-io-sub002/internal/storage"
)

// ─────────────────────────────────────────────────────────────
// Builder Service — one live editing session
// ─────────────────────────────────────────────────────────────
//
// BuilderService owns the in-memory document for the currently open
// project. Every mutation goes through apply: compute the new tree,
// record the before/after pair in the history, and notify the frontend.
// Reference comparison on the returned document decides whether anything
// actually changed; no-op mutations record nothing and emit nothing.

// EventBuilderChanged notifies the frontend that the live document moved.
const EventBuilderChanged = "builder:changed"

// EventBuilderDegraded notifies the frontend that the AI session could not
// be opened and AI actions are unavailable for this editing session.
const EventBuilderDegraded = "builder:degraded"

// BuilderService edits one project's document.
type BuilderService struct {
	projects  *ProjectService
	snapshots *storage.SnapshotStore
	session   *ai.Session
	emitter   EventEmitter

	mu        sync.Mutex
	projectID string
	doc       *builder.Document
	history   *builder.History
	drag      *builder.DragController
	aiPageID  string
}

// NewBuilderService creates a BuilderService. session may come from an
// unreachable endpoint; AI calls then fail with ai.ErrNoSession while the
// rest of the editor keeps working.
func NewBuilderService(
	projects *ProjectService,
	snapshots *storage.SnapshotStore,
	session *ai.Session,
	emitter EventEmitter,
) *BuilderService {
	return &BuilderService{
		projects:  projects,
		snapshots: snapshots,
		session:   session,
		emitter:   emitter,
		doc:       builder.NewDocument(),
		history:   builder.NewHistory(),
		drag:      builder.NewDragController(),
	}
}

// Open loads a project's document and resets the editing session.
func (s *BuilderService) Open(ctx context.Context, projectID string) error {
	doc, err := s.projects.LoadDocument(projectID)
	if err != nil {
		return fmt.Errorf("open project: %w", err)
	}
	s.mu.Lock()
	s.projectID = projectID
	s.doc = doc
	s.history = builder.NewHistory()
	s.drag = builder.NewDragController()
	s.aiPageID = ""
	s.mu.Unlock()
	s.emitter.Emit(ctx, EventBuilderChanged, projectID)
	return nil
}

// Document returns the current tree. Safe to hand out: documents are
// immutable, mutations always produce a new one.
func (s *BuilderService) Document() *builder.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc
}

// ProjectID returns the open project's id, or "" when nothing is open.
func (s *BuilderService) ProjectID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.projectID
}

// Save persists the live document through the explicit-save path.
func (s *BuilderService) Save() error {
	s.mu.Lock()
	projectID, doc := s.projectID, s.doc
	s.mu.Unlock()
	if projectID == "" {
		return fmt.Errorf("save: no open project")
	}
	return s.projects.SaveDocument(projectID, doc)
}

// apply runs one mutation, records it, and notifies the frontend. The
// mutation runs under the lock; fn must not call back into the service.
func (s *BuilderService) apply(ctx context.Context, label string, fn func(*builder.Document) (*builder.Document, error)) error {
	s.mu.Lock()
	before := s.doc
	after, err := fn(before)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	if after == before {
		s.mu.Unlock()
		return nil
	}
	s.doc = after
	s.history.Record(label, before, after)
	s.mu.Unlock()
	s.emitter.Emit(ctx, EventBuilderChanged, label)
	return nil
}

// ── Pages ──────────────────────────────────────────────────

func (s *BuilderService) AddPage(ctx context.Context, name string) (pageID string, err error) {
	err = s.apply(ctx, "add page", func(d *builder.Document) (*builder.Document, error) {
		next, page := d.AddPage(name)
		pageID = page.ID
		return next, nil
	})
	return pageID, err
}

// SelectPage changes the active page. Selection is not undoable.
func (s *BuilderService) SelectPage(ctx context.Context, pageID string) {
	s.mu.Lock()
	before := s.doc
	s.doc = before.SetActivePage(pageID)
	changed := s.doc != before
	s.mu.Unlock()
	if changed {
		s.emitter.Emit(ctx, EventBuilderChanged, "select page")
	}
}

func (s *BuilderService) DeletePage(ctx context.Context, pageID string) error {
	return s.apply(ctx, "delete page", func(d *builder.Document) (*builder.Document, error) {
		return d.DeletePage(pageID), nil
	})
}

func (s *BuilderService) RenamePage(ctx context.Context, pageID, name string) error {
	return s.apply(ctx, "rename page", func(d *builder.Document) (*builder.Document, error) {
		return d.RenamePage(pageID, name)
	})
}

// ── Sections ───────────────────────────────────────────────

// InsertSection places a fresh element of the given kind at index in the
// active page (-1 appends).
func (s *BuilderService) InsertSection(ctx context.Context, kind domain.SectionType, index int) error {
	return s.apply(ctx, "insert "+string(kind), func(d *builder.Document) (*builder.Document, error) {
		page, ok := d.ActivePage()
		if !ok {
			return nil, fmt.Errorf("insert section: no active page")
		}
		return d.InsertSection(page.ID, builder.NewSection(kind), index)
	})
}

func (s *BuilderService) MoveSection(ctx context.Context, pageID string, from, to int) error {
	return s.apply(ctx, "move section", func(d *builder.Document) (*builder.Document, error) {
		return d.MoveSection(pageID, from, to)
	})
}

// UpdateProps shallow-merges partial into the props addressed by path on
// the active page.
func (s *BuilderService) UpdateProps(ctx context.Context, path string, partial map[string]any) error {
	return s.apply(ctx, "update props", func(d *builder.Document) (*builder.Document, error) {
		return d.UpdateProps(path, partial)
	})
}

// RemoveAtPath deletes the node or prop addressed by path. Paths that no
// longer resolve are a silent no-op.
func (s *BuilderService) RemoveAtPath(ctx context.Context, path string) error {
	return s.apply(ctx, "remove "+path, func(d *builder.Document) (*builder.Document, error) {
		return d.Remove(path), nil
	})
}

func (s *BuilderService) SetGlobal(ctx context.Context, kind domain.SectionType, props map[string]any) error {
	return s.apply(ctx, "set "+string(kind), func(d *builder.Document) (*builder.Document, error) {
		return d.SetGlobal(kind, props)
	})
}

func (s *BuilderService) RemoveGlobal(ctx context.Context, kind domain.SectionType) error {
	return s.apply(ctx, "remove "+string(kind), func(d *builder.Document) (*builder.Document, error) {
		return d.RemoveGlobal(kind), nil
	})
}

// ── Comments ───────────────────────────────────────────────

func (s *BuilderService) AddComment(ctx context.Context, pageID, text, author string, x, y float64, frame string) (commentID string, err error) {
	c := domain.Comment{
		ID:        uuid.New().String(),
		PageID:    pageID,
		Text:      text,
		Author:    author,
		X:         x,
		Y:         y,
		Frame:     frame,
		CreatedAt: time.Now().UTC(),
	}
	err = s.apply(ctx, "add comment", func(d *builder.Document) (*builder.Document, error) {
		return d.AddComment(c)
	})
	if err != nil {
		return "", err
	}
	return c.ID, nil
}

func (s *BuilderService) DeleteComment(ctx context.Context, pageID, commentID string) error {
	return s.apply(ctx, "delete comment", func(d *builder.Document) (*builder.Document, error) {
		return d.DeleteComment(pageID, commentID), nil
	})
}

// ── Drag and drop ──────────────────────────────────────────

func (s *BuilderService) RegisterDropZone(z builder.DropZone) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drag.RegisterZone(z)
}

func (s *BuilderService) UnregisterDropZone(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drag.UnregisterZone(id)
}

func (s *BuilderService) DragBegin(p builder.Payload, x, y float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drag.Begin(p, x, y)
}

func (s *BuilderService) DragMove(x, y float64, hoverIndex int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drag.Move(x, y, hoverIndex)
}

// DragCancel abandons the gesture; the tree is untouched.
func (s *BuilderService) DragCancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drag.Cancel()
}

// DragDrop finishes the gesture over the named zone and, when the zone
// accepts the payload, applies the resulting mutation as one undoable
// step.
func (s *BuilderService) DragDrop(ctx context.Context, zoneID string) error {
	s.mu.Lock()
	result, ok := s.drag.Drop(zoneID)
	s.mu.Unlock()
	if !ok {
		return nil
	}
	return s.apply(ctx, "drop "+string(result.Payload.Kind), func(d *builder.Document) (*builder.Document, error) {
		return builder.ApplyDrop(d, result)
	})
}

// ── Undo / redo ────────────────────────────────────────────

func (s *BuilderService) Undo(ctx context.Context) (string, error) {
	s.mu.Lock()
	doc, label, err := s.history.Undo()
	if err != nil {
		s.mu.Unlock()
		return "", err
	}
	s.doc = doc
	s.mu.Unlock()
	s.emitter.Emit(ctx, EventBuilderChanged, "undo "+label)
	return label, nil
}

func (s *BuilderService) Redo(ctx context.Context) (string, error) {
	s.mu.Lock()
	doc, label, err := s.history.Redo()
	if err != nil {
		s.mu.Unlock()
		return "", err
	}
	s.doc = doc
	s.mu.Unlock()
	s.emitter.Emit(ctx, EventBuilderChanged, "redo "+label)
	return label, nil
}

func (s *BuilderService) CanUndo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.CanUndo()
}

func (s *BuilderService) CanRedo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.CanRedo()
}

// ── AI session ─────────────────────────────────────────────

// StartAISession opens the remote session and binds it to the given page:
// AI results replace that page's layout wholesale, since the remote
// session is the source of truth for the content it manages.
func (s *BuilderService) StartAISession(ctx context.Context, pageID string) error {
	if s.session == nil {
		return ai.ErrNoSession
	}
	s.mu.Lock()
	_, ok := s.doc.GetPage(pageID)
	s.mu.Unlock()
	if !ok {
		return fmt.Errorf("start ai session: unknown page %q", pageID)
	}
	if err := s.session.Start(ctx); err != nil {
		s.emitter.Emit(ctx, EventBuilderDegraded, err.Error())
		return err
	}
	s.mu.Lock()
	s.aiPageID = pageID
	s.mu.Unlock()
	return nil
}

// AIGenerate submits a prompt and replaces the bound page's layout with
// the session's authoritative result. The replacement is one local
// history step, so local undo can also roll it back.
func (s *BuilderService) AIGenerate(ctx context.Context, prompt string) error {
	if s.session == nil {
		return ai.ErrNoSession
	}
	state, err := s.session.Generate(ctx, prompt)
	if err != nil {
		return err
	}
	return s.reconcile(ctx, "ai generate", state)
}

// AIUndo asks the remote session to revert its last operation, then pulls
// the resulting state into the bound page. A "nothing to undo" refusal
// surfaces as an error and the tree stays unchanged.
func (s *BuilderService) AIUndo(ctx context.Context) error {
	if s.session == nil {
		return ai.ErrNoSession
	}
	if err := s.session.Undo(ctx); err != nil {
		return err
	}
	state, err := s.session.Sync(ctx)
	if err != nil {
		return err
	}
	return s.reconcile(ctx, "ai undo", state)
}

// AIRedo re-applies the remote session's last undone operation.
func (s *BuilderService) AIRedo(ctx context.Context) error {
	if s.session == nil {
		return ai.ErrNoSession
	}
	if err := s.session.Redo(ctx); err != nil {
		return err
	}
	state, err := s.session.Sync(ctx)
	if err != nil {
		return err
	}
	return s.reconcile(ctx, "ai redo", state)
}

func (s *BuilderService) reconcile(ctx context.Context, label string, state *ai.PageState) error {
	s.mu.Lock()
	pageID := s.aiPageID
	s.mu.Unlock()
	if pageID == "" {
		return ai.ErrNoSession
	}
	return s.apply(ctx, label, func(d *builder.Document) (*builder.Document, error) {
		return d.ReplaceLayout(pageID, state.Layout())
	})
}

// ReplaceDocument swaps the whole live tree for another document, e.g. an
// applied template. The swap is one undoable step.
func (s *BuilderService) ReplaceDocument(ctx context.Context, label string, doc *builder.Document) error {
	return s.apply(ctx, label, func(*builder.Document) (*builder.Document, error) {
		return doc, nil
	})
}

// ── Snapshots ──────────────────────────────────────────────

// Checkpoint stores the current tree as a named snapshot in the project's
// persisted history.
func (s *BuilderService) Checkpoint(label string) (*storage.Snapshot, error) {
	s.mu.Lock()
	projectID, doc := s.projectID, s.doc
	s.mu.Unlock()
	if projectID == "" {
		return nil, fmt.Errorf("checkpoint: no open project")
	}
	data, err := doc.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("checkpoint: %w", err)
	}
	return s.snapshots.Push(uuid.New().String(), projectID, label, string(data))
}

// ListSnapshots returns the open project's snapshots, oldest first.
func (s *BuilderService) ListSnapshots() ([]storage.Snapshot, error) {
	s.mu.Lock()
	projectID := s.projectID
	s.mu.Unlock()
	if projectID == "" {
		return nil, fmt.Errorf("list snapshots: no open project")
	}
	return s.snapshots.List(projectID)
}

// RestoreSnapshot swaps the live document for a stored one. The swap is a
// single undoable step.
func (s *BuilderService) RestoreSnapshot(ctx context.Context, snapshotID string) error {
	snap, err := s.snapshots.Get(snapshotID)
	if err != nil {
		return err
	}
	restored, err := builder.DecodeDocument([]byte(snap.DocumentJSON))
	if err != nil {
		return fmt.Errorf("restore snapshot: %w", err)
	}
	return s.apply(ctx, "restore "+snap.Label, func(*builder.Document) (*builder.Document, error) {
		return restored, nil
	})
}
