package api

import (
	"context"
	"fmt"
)

// ─────────────────────────────────────────────────────────────
// Hosting / deploy
// ─────────────────────────────────────────────────────────────

// SiteFile is one generated file to publish.
type SiteFile struct {
	Path    string `json:"path"`
	Content string `json:"content"`
}

// DeployRequest uploads a rendered site to the hosting service.
type DeployRequest struct {
	Files              []SiteFile `json:"files"`
	ProjectName        string     `json:"project_name"`
	UseDefaultProvider bool       `json:"use_default_provider"`
	URLPrefix          string     `json:"url_prefix"`
}

// Deploy publishes the files and returns the live URL.
func (c *Client) Deploy(ctx context.Context, req DeployRequest) (string, error) {
	var resp struct {
		Success bool   `json:"success"`
		URL     string `json:"url"`
		Error   string `json:"error"`
	}
	if err := c.postJSON(ctx, "/deploy", req, &resp); err != nil {
		return "", err
	}
	if !resp.Success {
		if resp.Error != "" {
			return "", fmt.Errorf("deploy: %s", resp.Error)
		}
		return "", fmt.Errorf("deploy: hosting service rejected the upload")
	}
	return resp.URL, nil
}
