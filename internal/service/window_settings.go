package service

import (
	"encoding/json"
	"fmt"

	"github.com/ahtisham02/hyperpitch-io-sub002/internal/storage"
)

// ─────────────────────────────────────────────────────────────
// Window Size Persistence
// ─────────────────────────────────────────────────────────────
//
// Saves and restores the main window size between sessions, stored as one
// key-value row in the settings table.

const settingWindowSize = "window_size"

// WindowSize holds the saved window dimensions.
type WindowSize struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// LoadWindowSize returns the saved size, or found=false on first run.
func LoadWindowSize(settings *storage.SettingsStore) (WindowSize, bool, error) {
	raw, found, err := settings.Get(settingWindowSize)
	if err != nil || !found {
		return WindowSize{}, false, err
	}
	var ws WindowSize
	if err := json.Unmarshal([]byte(raw), &ws); err != nil {
		return WindowSize{}, false, fmt.Errorf("decode window size: %w", err)
	}
	if ws.Width <= 0 || ws.Height <= 0 {
		return WindowSize{}, false, nil
	}
	return ws, true, nil
}

// SaveWindowSize persists the size for the next launch.
func SaveWindowSize(settings *storage.SettingsStore, ws WindowSize) error {
	if ws.Width <= 0 || ws.Height <= 0 {
		return fmt.Errorf("bad window size %dx%d", ws.Width, ws.Height)
	}
	b, err := json.Marshal(ws)
	if err != nil {
		return fmt.Errorf("encode window size: %w", err)
	}
	return settings.Set(settingWindowSize, string(b))
}
