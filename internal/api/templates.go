package api

import (
	"context"
	"time"
)

// ─────────────────────────────────────────────────────────────
// Template CRUD — saved page templates, bearer-token authenticated
// ─────────────────────────────────────────────────────────────

// Template is a saved, reusable page design.
type Template struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	ScriptJSON string    `json:"script"`
	Shared     bool      `json:"shared"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ListTemplates returns all templates for the authenticated account.
func (c *Client) ListTemplates(ctx context.Context) ([]Template, error) {
	var resp struct {
		Templates []Template `json:"templates"`
	}
	if err := c.getJSON(ctx, "/templates", &resp); err != nil {
		return nil, err
	}
	return resp.Templates, nil
}

// GetTemplate fetches one template by id.
func (c *Client) GetTemplate(ctx context.Context, id string) (*Template, error) {
	var t Template
	if err := c.getJSON(ctx, "/templates/"+id, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// CreateTemplate saves a new template and returns it with its server id.
func (c *Client) CreateTemplate(ctx context.Context, name, scriptJSON string) (*Template, error) {
	var t Template
	body := map[string]string{"name": name, "script": scriptJSON}
	if err := c.postJSON(ctx, "/templates", body, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// DeleteTemplate removes a template.
func (c *Client) DeleteTemplate(ctx context.Context, id string) error {
	return c.deleteReq(ctx, "/templates/"+id)
}

// DuplicateTemplate copies a template server-side.
func (c *Client) DuplicateTemplate(ctx context.Context, id string) (*Template, error) {
	var t Template
	if err := c.postJSON(ctx, "/templates/"+id+"/duplicate", nil, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// ShareTemplate toggles a template's shared visibility and returns the
// share URL.
func (c *Client) ShareTemplate(ctx context.Context, id string) (string, error) {
	var resp struct {
		URL string `json:"url"`
	}
	if err := c.postJSON(ctx, "/templates/"+id+"/share", nil, &resp); err != nil {
		return "", err
	}
	return resp.URL, nil
}

// ExportTemplate asks the backend for a portable export of the template.
func (c *Client) ExportTemplate(ctx context.Context, id string) (string, error) {
	var resp struct {
		Export string `json:"export"`
	}
	if err := c.postJSON(ctx, "/templates/"+id+"/export", nil, &resp); err != nil {
		return "", err
	}
	return resp.Export, nil
}

// PublishTemplate makes a template available in the public gallery.
func (c *Client) PublishTemplate(ctx context.Context, id string) error {
	return c.postJSON(ctx, "/templates/"+id+"/publish", nil, nil)
}
