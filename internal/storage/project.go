package storage

import (
	"fmt"
	"time"

	"github.com/ahtisham02/hyperpitch-io-sub002/internal/domain"
)

// ProjectStore implements domain.ProjectStore using SQLite.
type ProjectStore struct {
	db *DB
}

func NewProjectStore(db *DB) *ProjectStore {
	return &ProjectStore{db: db}
}

func (s *ProjectStore) CreateProject(p *domain.Project) error {
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	_, err := s.db.conn.Exec(
		`INSERT INTO projects (id, name, global_navbar_json, global_footer_json, publish_schedule, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, p.GlobalNavbarJSON, p.GlobalFooterJSON, p.PublishSchedule, p.CreatedAt, p.UpdatedAt,
	)
	return err
}

func (s *ProjectStore) GetProject(id string) (*domain.Project, error) {
	p := &domain.Project{}
	err := s.db.conn.QueryRow(
		`SELECT id, name, global_navbar_json, global_footer_json, publish_schedule, created_at, updated_at FROM projects WHERE id = ?`, id,
	).Scan(&p.ID, &p.Name, &p.GlobalNavbarJSON, &p.GlobalFooterJSON, &p.PublishSchedule, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("get project: %w", err)
	}
	return p, nil
}

func (s *ProjectStore) ListProjects() ([]domain.Project, error) {
	rows, err := s.db.conn.Query(`SELECT id, name, global_navbar_json, global_footer_json, publish_schedule, created_at, updated_at FROM projects ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []domain.Project
	for rows.Next() {
		var p domain.Project
		if err := rows.Scan(&p.ID, &p.Name, &p.GlobalNavbarJSON, &p.GlobalFooterJSON, &p.PublishSchedule, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

func (s *ProjectStore) UpdateProject(p *domain.Project) error {
	p.UpdatedAt = time.Now()
	_, err := s.db.conn.Exec(
		`UPDATE projects SET name = ?, global_navbar_json = ?, global_footer_json = ?, publish_schedule = ?, updated_at = ? WHERE id = ?`,
		p.Name, p.GlobalNavbarJSON, p.GlobalFooterJSON, p.PublishSchedule, p.UpdatedAt, p.ID,
	)
	return err
}

func (s *ProjectStore) DeleteProject(id string) error {
	_, err := s.db.conn.Exec(`DELETE FROM projects WHERE id = ?`, id)
	return err
}

func (s *ProjectStore) CreatePage(p *domain.Page) error {
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	if p.LayoutJSON == "" {
		p.LayoutJSON = "[]"
	}
	_, err := s.db.conn.Exec(
		`INSERT INTO pages (id, project_id, name, sort_order, layout_json, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.ProjectID, p.Name, p.Order, p.LayoutJSON, p.CreatedAt, p.UpdatedAt,
	)
	return err
}

func (s *ProjectStore) GetPage(id string) (*domain.Page, error) {
	p := &domain.Page{}
	err := s.db.conn.QueryRow(
		`SELECT id, project_id, name, sort_order, layout_json, created_at, updated_at FROM pages WHERE id = ?`, id,
	).Scan(&p.ID, &p.ProjectID, &p.Name, &p.Order, &p.LayoutJSON, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("get page: %w", err)
	}
	return p, nil
}

func (s *ProjectStore) ListPages(projectID string) ([]domain.Page, error) {
	rows, err := s.db.conn.Query(
		`SELECT id, project_id, name, sort_order, layout_json, created_at, updated_at FROM pages WHERE project_id = ? ORDER BY sort_order ASC`,
		projectID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pages []domain.Page
	for rows.Next() {
		var p domain.Page
		if err := rows.Scan(&p.ID, &p.ProjectID, &p.Name, &p.Order, &p.LayoutJSON, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		pages = append(pages, p)
	}
	return pages, rows.Err()
}

func (s *ProjectStore) UpdatePage(p *domain.Page) error {
	p.UpdatedAt = time.Now()
	_, err := s.db.conn.Exec(
		`UPDATE pages SET name = ?, sort_order = ?, layout_json = ?, updated_at = ? WHERE id = ?`,
		p.Name, p.Order, p.LayoutJSON, p.UpdatedAt, p.ID,
	)
	return err
}

func (s *ProjectStore) DeletePage(id string) error {
	_, err := s.db.conn.Exec(`DELETE FROM pages WHERE id = ?`, id)
	return err
}

func (s *ProjectStore) DeletePagesByProject(projectID string) error {
	_, err := s.db.conn.Exec(`DELETE FROM pages WHERE project_id = ?`, projectID)
	return err
}
