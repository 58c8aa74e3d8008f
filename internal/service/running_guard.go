package service

import (
	"context"
	"sync"
)

// ExportedInflightGuard is an exported alias so _test packages can test the guard.
type ExportedInflightGuard = inflightGuard

// ─────────────────────────────────────────────────────────────
// inflightGuard — prevents concurrent runs keyed by id
// ─────────────────────────────────────────────────────────────
//
// Used by PublishService so a scheduled republish can never overlap a
// manual publish of the same project.

type inflightGuard struct {
	mu      sync.Mutex
	running map[string]struct{}
	wg      sync.WaitGroup
}

// TryLock attempts to mark id as running. Returns false if it already is.
func (g *inflightGuard) TryLock(id string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.running == nil {
		g.running = make(map[string]struct{})
	}
	if _, ok := g.running[id]; ok {
		return false
	}
	g.running[id] = struct{}{}
	g.wg.Add(1)
	return true
}

// Unlock marks id as no longer running. Must be called after TryLock
// returns true.
func (g *inflightGuard) Unlock(id string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.running, id)
	g.wg.Done()
}

// WaitAll blocks until everything running completes or ctx is cancelled.
func (g *inflightGuard) WaitAll(ctx context.Context) {
	done := make(chan struct{})
	go func() {
		g.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
	}
}
