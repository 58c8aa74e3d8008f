package api

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"time"
)

// ─────────────────────────────────────────────────────────────
// Campaign persistence
// ─────────────────────────────────────────────────────────────

// SaveCampaign persists a campaign as a multipart form: name, start/end
// times, and the JSON-serialized document tree as the script field.
func (c *Client) SaveCampaign(ctx context.Context, name string, start, end time.Time, script []byte) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fields := map[string]string{
		"campaignName": name,
		"startTime":    start.Format(time.RFC3339),
		"endTime":      end.Format(time.RFC3339),
		"script":       string(script),
	}
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return fmt.Errorf("write form field %s: %w", k, err)
		}
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/campaigns", &buf)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	return c.do(req, nil)
}
