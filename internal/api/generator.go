package api

import (
	"context"
	"fmt"
)

// ─────────────────────────────────────────────────────────────
// AI landing-page generation
// ─────────────────────────────────────────────────────────────

// LandingPageRequest is the payload for one-shot page generation from a
// prospect profile.
type LandingPageRequest struct {
	ProfileData     map[string]any `json:"profile_data"`
	ProductName     string         `json:"product_name"`
	ProductBenefits string         `json:"product_benefits"`
	CampaignURL     string         `json:"campaign_url"`
	CredlyLink      string         `json:"credly_link"`
}

// GenerateLandingPage asks the backend to generate a complete landing page
// for a prospect profile and returns the HTML.
func (c *Client) GenerateLandingPage(ctx context.Context, req LandingPageRequest) (string, error) {
	var resp struct {
		Success     bool   `json:"success"`
		HTMLContent string `json:"html_content"`
		Error       string `json:"error"`
	}
	if err := c.postJSON(ctx, "/profile/generate-landing-page", req, &resp); err != nil {
		return "", err
	}
	if !resp.Success {
		if resp.Error != "" {
			return "", fmt.Errorf("generate landing page: %s", resp.Error)
		}
		return "", fmt.Errorf("generate landing page: generation failed")
	}
	return resp.HTMLContent, nil
}
