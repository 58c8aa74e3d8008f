package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/ahtisham02/hyperpitch-io-sub002/internal/api"
	"github.com/ahtisham02/hyperpitch-io-sub002/internal/render"
)

// ─────────────────────────────────────────────────────────────
// Publish Service — deploys and scheduled republish
// ─────────────────────────────────────────────────────────────

// EventPublishDone fires after a deploy with the live URL.
const EventPublishDone = "publish:done"

// Deployer is the hosting client surface PublishService needs; api.Client
// satisfies it.
type Deployer interface {
	Deploy(ctx context.Context, req api.DeployRequest) (string, error)
}

// PublishService renders projects to static HTML, pushes them to the
// hosting service, and keeps cron entries for projects with a republish
// schedule.
type PublishService struct {
	projects *ProjectService
	hosting  Deployer
	emitter  EventEmitter

	inflight inflightGuard

	mu      sync.Mutex
	cron    *cron.Cron
	entries map[string]cron.EntryID // projectID → scheduled entry
}

// NewPublishService creates a PublishService. Start the scheduler with
// StartScheduler once the app is up.
func NewPublishService(projects *ProjectService, hosting Deployer, emitter EventEmitter) *PublishService {
	return &PublishService{
		projects: projects,
		hosting:  hosting,
		emitter:  emitter,
		cron:     cron.New(),
		entries:  map[string]cron.EntryID{},
	}
}

// Publish renders every page of the project at desktop width and deploys
// the result. Returns the live URL.
func (s *PublishService) Publish(ctx context.Context, projectID string) (string, error) {
	if !s.inflight.TryLock(projectID) {
		return "", fmt.Errorf("publish of %s already running", projectID)
	}
	defer s.inflight.Unlock(projectID)

	proj, err := s.projects.GetProject(projectID)
	if err != nil {
		return "", err
	}
	doc, err := s.projects.LoadDocument(projectID)
	if err != nil {
		return "", err
	}

	rendered, err := render.Document(doc, render.FrameDesktop)
	if err != nil {
		return "", fmt.Errorf("render project: %w", err)
	}
	if len(rendered) == 0 {
		return "", fmt.Errorf("publish: project has no pages")
	}

	files := make([]api.SiteFile, 0, len(rendered))
	first := true
	for _, page := range doc.Pages() {
		html, ok := rendered[page.ID]
		if !ok {
			continue
		}
		name := pageFileName(page.Name)
		if first {
			// The first page is the site entry point.
			name = "index.html"
			first = false
		}
		files = append(files, api.SiteFile{Path: name, Content: html})
	}

	url, err := s.hosting.Deploy(ctx, api.DeployRequest{
		Files:              files,
		ProjectName:        proj.Name,
		UseDefaultProvider: true,
	})
	if err != nil {
		return "", fmt.Errorf("deploy %s: %w", proj.Name, err)
	}
	s.emitter.Emit(ctx, EventPublishDone, url)
	return url, nil
}

// pageFileName derives a stable file name from a page name.
func pageFileName(name string) string {
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
		slug = "page"
	}
	return slug + ".html"
}

// ── Scheduled republish ────────────────────────────────────

// StartScheduler loads all schedules and starts the cron loop.
func (s *PublishService) StartScheduler(ctx context.Context) error {
	if err := s.ReloadSchedules(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	s.cron.Start()
	s.mu.Unlock()
	return nil
}

// StopScheduler stops the cron loop and waits for in-flight publishes.
func (s *PublishService) StopScheduler() {
	s.mu.Lock()
	c := s.cron
	s.mu.Unlock()
	<-c.Stop().Done()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	s.inflight.WaitAll(ctx)
}

// SetSchedule updates a project's republish cron expression; empty clears
// it. The expression is validated before anything is stored.
func (s *PublishService) SetSchedule(ctx context.Context, projectID, expr string) error {
	if expr != "" {
		if _, err := cron.ParseStandard(expr); err != nil {
			return fmt.Errorf("invalid schedule %q: %w", expr, err)
		}
	}
	proj, err := s.projects.GetProject(projectID)
	if err != nil {
		return err
	}
	proj.PublishSchedule = expr
	if err := s.projects.store.UpdateProject(proj); err != nil {
		return fmt.Errorf("save schedule: %w", err)
	}
	return s.ReloadSchedules(ctx)
}

// ReloadSchedules rebuilds the cron entries from the projects table.
func (s *PublishService) ReloadSchedules(ctx context.Context) error {
	projects, err := s.projects.ListProjects()
	if err != nil {
		return fmt.Errorf("load schedules: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range s.entries {
		s.cron.Remove(id)
	}
	s.entries = map[string]cron.EntryID{}

	for _, p := range projects {
		if p.PublishSchedule == "" {
			continue
		}
		projectID := p.ID
		entryID, err := s.cron.AddFunc(p.PublishSchedule, func() {
			if _, err := s.Publish(ctx, projectID); err != nil {
				log.Printf("[publish] scheduled republish of %s failed: %v", projectID, err)
			}
		})
		if err != nil {
			log.Printf("[publish] bad schedule %q for %s: %v", p.PublishSchedule, projectID, err)
			continue
		}
		s.entries[projectID] = entryID
	}
	return nil
}

// ScheduledProjects returns the ids with an active cron entry, for the
// settings screen.
func (s *PublishService) ScheduledProjects() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.entries))
	for id := range s.entries {
		out = append(out, id)
	}
	return out
}
