package domain

import "time"

type Project struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	// Global navbar/footer singletons, serialized; empty when unset.
	GlobalNavbarJSON string `json:"globalNavbarJson"`
	GlobalFooterJSON string `json:"globalFooterJson"`
	// Cron expression for scheduled republish; empty disables it.
	PublishSchedule string    `json:"publishSchedule"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// Page is the persisted form of one page of a project. Layout holds the
// ordered section tree serialized as JSON; render order is user-significant.
type Page struct {
	ID         string    `json:"id"`
	ProjectID  string    `json:"projectId"`
	Name       string    `json:"name"`
	Order      int       `json:"order"`
	LayoutJSON string    `json:"layoutJson"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type ProjectStore interface {
	CreateProject(p *Project) error
	GetProject(id string) (*Project, error)
	ListProjects() ([]Project, error)
	UpdateProject(p *Project) error
	DeleteProject(id string) error

	CreatePage(p *Page) error
	GetPage(id string) (*Page, error)
	ListPages(projectID string) ([]Page, error)
	UpdatePage(p *Page) error
	DeletePage(id string) error
	DeletePagesByProject(projectID string) error
}
