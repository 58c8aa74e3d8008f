package app

// ─────────────────────────────────────────────────────────────
// Project Handlers — thin delegates to ProjectService
// ─────────────────────────────────────────────────────────────

import (
	"github.com/ahtisham02/hyperpitch-io-sub002/internal/domain"
)

func (a *App) ListProjects() ([]domain.Project, error) {
	return a.projects.ListProjects()
}

func (a *App) CreateProject(name string) (*domain.Project, error) {
	return a.projects.CreateProject(name)
}

func (a *App) RenameProject(id, name string) error {
	return a.projects.RenameProject(id, name)
}

func (a *App) DeleteProject(id string) error {
	return a.projects.DeleteProject(id)
}

// GetDocumentState returns everything the frontend needs to draw a
// project's builder view.
func (a *App) GetDocumentState(projectID string) (*domain.DocumentState, error) {
	return a.projects.GetDocumentState(projectID)
}

// OpenProject loads a project into the live editing session.
func (a *App) OpenProject(projectID string) error {
	return a.builders.Open(a.ctx, projectID)
}

// SaveProject persists the live document. Nothing persists until this is
// called: all edits stay in memory.
func (a *App) SaveProject() error {
	return a.builders.Save()
}

// ExportProject writes the project's document to a portable JSON file and
// returns its path.
func (a *App) ExportProject(projectID string) (string, error) {
	return a.exports.ExportProject(projectID)
}

// ImportProjectFile overwrites a project's document with an exported file.
func (a *App) ImportProjectFile(projectID, path string) error {
	return a.exports.ImportFile(projectID, path)
}
