package app

// ─────────────────────────────────────────────────────────────
// Campaign Handlers — one-shot generation and campaign persistence
// ─────────────────────────────────────────────────────────────

import (
	"fmt"
	"time"

	"github.com/ahtisham02/hyperpitch-io-sub002/internal/api"
)

// GenerateLandingPage asks the backend for a complete landing page built
// from a prospect profile and returns the HTML.
func (a *App) GenerateLandingPage(req api.LandingPageRequest) (string, error) {
	return a.api.GenerateLandingPage(a.ctx, req)
}

// SaveCampaign persists the live document as a campaign with the given
// schedule. Times are RFC3339.
func (a *App) SaveCampaign(name, startTime, endTime string) error {
	start, err := time.Parse(time.RFC3339, startTime)
	if err != nil {
		return fmt.Errorf("bad start time: %w", err)
	}
	end, err := time.Parse(time.RFC3339, endTime)
	if err != nil {
		return fmt.Errorf("bad end time: %w", err)
	}
	if !end.After(start) {
		return fmt.Errorf("campaign end must be after start")
	}

	script, err := a.builders.Document().MarshalJSON()
	if err != nil {
		return fmt.Errorf("serialize document: %w", err)
	}
	return a.api.SaveCampaign(a.ctx, name, start, end, script)
}
