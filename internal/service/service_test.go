package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/ahtisham02/hyperpitch-io-sub002/internal/service"
)

// ─────────────────────────────────────────────────────────────
// InflightGuard tests
// ─────────────────────────────────────────────────────────────

func TestInflightGuard_TryLock(t *testing.T) {
	var g service.ExportedInflightGuard

	if !g.TryLock("proj-1") {
		t.Fatal("expected first TryLock to succeed")
	}
	if g.TryLock("proj-1") {
		t.Fatal("expected second TryLock for same id to fail")
	}
	if !g.TryLock("proj-2") {
		t.Fatal("expected TryLock for different id to succeed")
	}
	g.Unlock("proj-1")
	g.Unlock("proj-2")

	if !g.TryLock("proj-1") {
		t.Fatal("expected TryLock to succeed after unlock")
	}
	g.Unlock("proj-1")
}

func TestInflightGuard_WaitAll(t *testing.T) {
	var g service.ExportedInflightGuard

	if !g.TryLock("proj-a") {
		t.Fatal("expected lock to succeed")
	}

	done := make(chan struct{})
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
		defer cancel()
		g.WaitAll(ctx)
		close(done)
	}()

	go func() {
		time.Sleep(20 * time.Millisecond)
		g.Unlock("proj-a")
	}()

	select {
	case <-done:
		// success
	case <-time.After(1 * time.Second):
		t.Fatal("WaitAll timed out")
	}
}

// ─────────────────────────────────────────────────────────────
// MockEmitter tests
// ─────────────────────────────────────────────────────────────

func TestMockEmitter_RecordsEvents(t *testing.T) {
	m := &service.MockEmitter{}
	ctx := context.Background()

	m.Emit(ctx, "test:event", map[string]string{"foo": "bar"})
	m.Emit(ctx, "test:event2", nil)

	if len(m.Events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(m.Events))
	}
	if m.Events[0].Event != "test:event" {
		t.Errorf("expected 'test:event', got %q", m.Events[0].Event)
	}
	if m.Count("test:event") != 1 {
		t.Errorf("Count = %d, want 1", m.Count("test:event"))
	}
}

// ─────────────────────────────────────────────────────────────
// Window size persistence
// ─────────────────────────────────────────────────────────────

func TestWindowSizeRoundTrip(t *testing.T) {
	env := newTestEnv(t)
	store := env.settingsStore

	if _, found, err := service.LoadWindowSize(store); err != nil || found {
		t.Fatalf("fresh load: found=%v err=%v, want not found", found, err)
	}

	if err := service.SaveWindowSize(store, service.WindowSize{Width: 1600, Height: 1000}); err != nil {
		t.Fatalf("SaveWindowSize: %v", err)
	}
	ws, found, err := service.LoadWindowSize(store)
	if err != nil || !found {
		t.Fatalf("load: found=%v err=%v", found, err)
	}
	if ws.Width != 1600 || ws.Height != 1000 {
		t.Fatalf("ws = %+v", ws)
	}

	if err := service.SaveWindowSize(store, service.WindowSize{Width: 0, Height: 10}); err == nil {
		t.Fatal("degenerate size should be rejected")
	}
}
