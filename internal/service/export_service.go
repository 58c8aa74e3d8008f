package service

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/ahtisham02/hyperpitch-io-sub002/internal/builder"
)

// ─────────────────────────────────────────────────────────────
// Export Service — portable document files and the exports watcher
// ─────────────────────────────────────────────────────────────
//
// Exports land as plain JSON in <dataDir>/exports so users can version
// them or hand-edit them. The watcher notices external edits to exported
// files and tells the frontend, which offers a re-import.

// EventExportChanged fires when an exported file is modified outside the
// app; payload is the file path.
const EventExportChanged = "export:changed"

// ExportService writes and re-imports portable document exports.
type ExportService struct {
	projects *ProjectService
	dataDir  string
	emitter  EventEmitter

	watcher     *fsnotify.Watcher
	watchCancel context.CancelFunc
}

// NewExportService creates an ExportService rooted at dataDir.
func NewExportService(projects *ProjectService, dataDir string, emitter EventEmitter) *ExportService {
	return &ExportService{projects: projects, dataDir: dataDir, emitter: emitter}
}

func (s *ExportService) exportDir() string {
	return filepath.Join(s.dataDir, "exports")
}

// ExportProject writes the project's document as JSON and returns the
// file path.
func (s *ExportService) ExportProject(projectID string) (string, error) {
	proj, err := s.projects.GetProject(projectID)
	if err != nil {
		return "", err
	}
	doc, err := s.projects.LoadDocument(projectID)
	if err != nil {
		return "", err
	}
	data, err := doc.MarshalJSON()
	if err != nil {
		return "", fmt.Errorf("export project: %w", err)
	}

	if err := os.MkdirAll(s.exportDir(), 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	path := filepath.Join(s.exportDir(), exportFileName(proj.Name, projectID))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write export: %w", err)
	}
	return path, nil
}

// ImportFile parses an exported document file and overwrites the
// project's persisted document with it.
func (s *ExportService) ImportFile(projectID, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read export: %w", err)
	}
	doc, err := builder.DecodeDocument(data)
	if err != nil {
		return fmt.Errorf("import %s: %w", filepath.Base(path), err)
	}
	if err := s.projects.SaveDocument(projectID, doc); err != nil {
		return fmt.Errorf("import %s: %w", filepath.Base(path), err)
	}
	return nil
}

func exportFileName(name, id string) string {
	slug := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		case r == ' ', r == '-', r == '_':
			return '-'
		default:
			return -1
		}
	}, name)
	if slug == "" {
		slug = "project"
	}
	short := id
	if len(short) > 8 {
		short = short[:8]
	}
	return slug + "-" + short + ".json"
}

// ── Exports watcher ────────────────────────────────────────

// StartWatcher begins watching the exports directory for external edits.
func (s *ExportService) StartWatcher(ctx context.Context) error {
	if err := os.MkdirAll(s.exportDir(), 0o755); err != nil {
		return fmt.Errorf("create export dir: %w", err)
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(s.exportDir()); err != nil {
		watcher.Close()
		return fmt.Errorf("watch export dir: %w", err)
	}
	s.watcher = watcher

	watchCtx, cancel := context.WithCancel(context.Background())
	s.watchCancel = cancel

	go func() {
		// Editors fire several write events per save; debounce per file.
		timers := make(map[string]*time.Timer)
		for {
			select {
			case <-watchCtx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				if filepath.Ext(event.Name) != ".json" {
					continue
				}
				path := event.Name
				if t, exists := timers[path]; exists {
					t.Stop()
				}
				timers[path] = time.AfterFunc(500*time.Millisecond, func() {
					s.emitter.Emit(ctx, EventExportChanged, path)
				})
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Printf("[export] watcher error: %v", err)
			}
		}
	}()
	return nil
}

// StopWatcher tears down the exports watcher.
func (s *ExportService) StopWatcher() {
	if s.watchCancel != nil {
		s.watchCancel()
		s.watchCancel = nil
	}
	if s.watcher != nil {
		_ = s.watcher.Close()
		s.watcher = nil
	}
}
