package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/ahtisham02/hyperpitch-io-sub002/internal/domain"
)

// ─────────────────────────────────────────────────────────────
// Section-editing session bridge
// ─────────────────────────────────────────────────────────────
//
// The section service keeps conversational state per session: prompts go
// out, the authoritative section list comes back. The bridge degrades
// rather than blocks: when no session could be opened, every AI action
// fails fast with ErrNoSession and the rest of the editor keeps working.

var (
	// ErrNoSession means the bridge is in its degraded state: the session
	// could not be opened and AI actions are unavailable.
	ErrNoSession = errors.New("ai session unavailable")
	// ErrBusy rejects a submit while another is in flight. Overlapping
	// prompts against one session would race on the server's section
	// order, so they are refused instead of queued.
	ErrBusy = errors.New("ai request already in flight")
)

// PageState is the authoritative page content for a session, as the
// service reports it.
type PageState struct {
	Sections     map[string]domain.Section `json:"sections"`
	SectionOrder []string                  `json:"section_order"`
	HTML         string                    `json:"html,omitempty"`
}

// Layout flattens the session state into the ordered section list that
// replaces the AI-managed page's layout. Order entries without a section
// are skipped.
func (p *PageState) Layout() []domain.Section {
	out := make([]domain.Section, 0, len(p.SectionOrder))
	for _, id := range p.SectionOrder {
		if s, ok := p.Sections[id]; ok {
			out = append(out, s)
		}
	}
	return out
}

// Session is the bridge to one remote editing session.
type Session struct {
	baseURL string
	http    *http.Client

	mu        sync.Mutex
	sessionID string
	busy      bool
}

// NewSession creates an unopened bridge against the service base URL.
func NewSession(baseURL string) *Session {
	return &Session{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// Active reports whether the bridge holds an open session.
func (s *Session) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessionID != ""
}

// Start opens a session. On failure the bridge stays degraded: callers
// surface the warning once and the editor continues without AI.
func (s *Session) Start(ctx context.Context) error {
	var resp struct {
		SessionID string `json:"session_id"`
	}
	if err := s.post(ctx, "/start-session", map[string]any{}, &resp); err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	if resp.SessionID == "" {
		return fmt.Errorf("start session: service returned no session id")
	}
	s.mu.Lock()
	s.sessionID = resp.SessionID
	s.mu.Unlock()
	return nil
}

// Generate submits a prompt and pulls back the authoritative page state.
// The remote session is the source of truth for AI-managed pages, so the
// caller replaces the page layout with the result rather than merging.
// Concurrent submits are rejected with ErrBusy.
func (s *Session) Generate(ctx context.Context, prompt string) (*PageState, error) {
	id, err := s.acquire()
	if err != nil {
		return nil, err
	}
	defer s.release()

	body := map[string]any{"session_id": id, "prompt": prompt, "as_file": false}
	var genResp struct {
		Sections     map[string]domain.Section `json:"sections"`
		SectionOrder []string                  `json:"section_order"`
		HTML         string                    `json:"html"`
	}
	if err := s.post(ctx, "/generate-page", body, &genResp); err != nil {
		return nil, fmt.Errorf("generate page: %w", err)
	}

	// Re-fetch the authoritative state; the generate response may be a
	// partial file payload.
	state, err := s.fetchPage(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.current() != id {
		// Session changed while the call was in flight; drop the stale result.
		return nil, ErrNoSession
	}
	return state, nil
}

// Sync pulls the current authoritative page state without submitting a
// prompt.
func (s *Session) Sync(ctx context.Context) (*PageState, error) {
	id := s.current()
	if id == "" {
		return nil, ErrNoSession
	}
	return s.fetchPage(ctx, id)
}

// Undo reverts the session's last remote operation. The service owns this
// history; "nothing to undo" comes back as an error with no local change.
func (s *Session) Undo(ctx context.Context) error {
	return s.step(ctx, "/undo")
}

// Redo re-applies the session's last undone remote operation.
func (s *Session) Redo(ctx context.Context) error {
	return s.step(ctx, "/redo")
}

func (s *Session) step(ctx context.Context, path string) error {
	id := s.current()
	if id == "" {
		return ErrNoSession
	}
	var resp struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	if err := s.post(ctx, path, map[string]any{"session_id": id}, &resp); err != nil {
		return fmt.Errorf("%s: %w", strings.TrimPrefix(path, "/"), err)
	}
	if !resp.Success {
		msg := resp.Error
		if msg == "" {
			msg = "nothing to " + strings.TrimPrefix(path, "/")
		}
		return fmt.Errorf("%s: %s", strings.TrimPrefix(path, "/"), msg)
	}
	return nil
}

func (s *Session) fetchPage(ctx context.Context, id string) (*PageState, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/get-page?session_id="+id, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	resp, err := s.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get page: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("get page: http %d: %s", resp.StatusCode, string(body))
	}

	var state PageState
	if err := json.NewDecoder(resp.Body).Decode(&state); err != nil {
		return nil, fmt.Errorf("get page: decode: %w", err)
	}
	return &state, nil
}

func (s *Session) post(ctx context.Context, path string, body, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode body: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.http.Do(req)
	if err != nil {
		return fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("http %d: %s", resp.StatusCode, string(b))
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// acquire takes the busy flag and returns the session id.
func (s *Session) acquire() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sessionID == "" {
		return "", ErrNoSession
	}
	if s.busy {
		return "", ErrBusy
	}
	s.busy = true
	return s.sessionID, nil
}

func (s *Session) release() {
	s.mu.Lock()
	s.busy = false
	s.mu.Unlock()
}

func (s *Session) current() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessionID
}
