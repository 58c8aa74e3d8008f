package app

// ─────────────────────────────────────────────────────────────
// Template Handlers — saved page designs
// ─────────────────────────────────────────────────────────────

import (
	"fmt"

	"github.com/ahtisham02/hyperpitch-io-sub002/internal/api"
	"github.com/ahtisham02/hyperpitch-io-sub002/internal/builder"
)

func (a *App) ListTemplates() ([]api.Template, error) {
	return a.api.ListTemplates(a.ctx)
}

func (a *App) GetTemplate(id string) (*api.Template, error) {
	return a.api.GetTemplate(a.ctx, id)
}

// SaveAsTemplate stores the live document as a reusable template.
func (a *App) SaveAsTemplate(name string) (*api.Template, error) {
	script, err := a.builders.Document().MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("serialize document: %w", err)
	}
	return a.api.CreateTemplate(a.ctx, name, string(script))
}

// ApplyTemplate replaces the live document with a template's content. The
// swap lands in the undo history like any other edit; the user saves
// explicitly afterwards.
func (a *App) ApplyTemplate(id string) error {
	t, err := a.api.GetTemplate(a.ctx, id)
	if err != nil {
		return err
	}
	doc, err := builder.DecodeDocument([]byte(t.ScriptJSON))
	if err != nil {
		return fmt.Errorf("template %s: %w", id, err)
	}
	return a.builders.ReplaceDocument(a.ctx, "apply template "+t.Name, doc)
}

func (a *App) DeleteTemplate(id string) error {
	return a.api.DeleteTemplate(a.ctx, id)
}

func (a *App) DuplicateTemplate(id string) (*api.Template, error) {
	return a.api.DuplicateTemplate(a.ctx, id)
}

func (a *App) ShareTemplate(id string) (string, error) {
	return a.api.ShareTemplate(a.ctx, id)
}

func (a *App) ExportTemplate(id string) (string, error) {
	return a.api.ExportTemplate(a.ctx, id)
}

func (a *App) PublishTemplate(id string) error {
	return a.api.PublishTemplate(a.ctx, id)
}
