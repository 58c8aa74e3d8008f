package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ahtisham02/hyperpitch-io-sub002/internal/ai"
	"github.com/ahtisham02/hyperpitch-io-sub002/internal/builder"
	"github.com/ahtisham02/hyperpitch-io-sub002/internal/domain"
	"github.com/ahtisham02/hyperpitch-io-sub002/internal/service"
)

func openProject(t *testing.T, env *testEnv) (projectID, homeID string) {
	t.Helper()
	p, err := env.projects.CreateProject("Launch")
	if err != nil {
		t.Fatalf("CreateProject: %v", err)
	}
	if err := env.builders.Open(context.Background(), p.ID); err != nil {
		t.Fatalf("Open: %v", err)
	}
	return p.ID, env.builders.Document().Pages()[0].ID
}

func TestInsertUpdateUndoRedo(t *testing.T) {
	env := newTestEnv(t)
	_, _ = openProject(t, env)
	ctx := context.Background()

	if err := env.builders.InsertSection(ctx, domain.SectionButton, -1); err != nil {
		t.Fatalf("InsertSection: %v", err)
	}
	page, _ := env.builders.Document().ActivePage()
	if len(page.Layout) != 1 || page.Layout[0].Props["buttonText"] != "Click me" {
		t.Fatalf("layout = %+v, want one button with defaults", page.Layout)
	}

	if err := env.builders.UpdateProps(ctx, "layout[0].props", map[string]any{"buttonText": "Buy now"}); err != nil {
		t.Fatalf("UpdateProps: %v", err)
	}
	page, _ = env.builders.Document().ActivePage()
	if page.Layout[0].Props["buttonText"] != "Buy now" {
		t.Fatalf("props = %+v", page.Layout[0].Props)
	}
	if page.Layout[0].Props["href"] != "#" {
		t.Fatal("shallow merge dropped an untouched key")
	}

	label, err := env.builders.Undo(ctx)
	if err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if label != "update props" {
		t.Fatalf("undo label = %q", label)
	}
	page, _ = env.builders.Document().ActivePage()
	if page.Layout[0].Props["buttonText"] != "Click me" {
		t.Fatalf("undo did not restore props: %+v", page.Layout[0].Props)
	}

	if _, err := env.builders.Redo(ctx); err != nil {
		t.Fatalf("Redo: %v", err)
	}
	page, _ = env.builders.Document().ActivePage()
	if page.Layout[0].Props["buttonText"] != "Buy now" {
		t.Fatalf("redo did not reapply props: %+v", page.Layout[0].Props)
	}

	if env.emitter.Count(service.EventBuilderChanged) == 0 {
		t.Fatal("mutations should emit builder:changed")
	}
}

func TestNoOpMutationRecordsNothing(t *testing.T) {
	env := newTestEnv(t)
	_, _ = openProject(t, env)
	ctx := context.Background()

	emitted := env.emitter.Count(service.EventBuilderChanged)
	if err := env.builders.RemoveAtPath(ctx, "layout[9]"); err != nil {
		t.Fatalf("RemoveAtPath: %v", err)
	}
	if env.builders.CanUndo() {
		t.Fatal("no-op removal must not enter the history")
	}
	if env.emitter.Count(service.EventBuilderChanged) != emitted {
		t.Fatal("no-op removal must not emit")
	}
}

func TestDragDropInsertsAndCancelDoesNot(t *testing.T) {
	env := newTestEnv(t)
	_, homeID := openProject(t, env)
	ctx := context.Background()

	env.builders.RegisterDropZone(builder.DropZone{
		ID:      "canvas",
		PageID:  homeID,
		Accepts: []builder.Capability{builder.CapabilitySection},
	})

	// A drop after crossing the activation threshold inserts a section.
	env.builders.DragBegin(builder.Payload{Kind: domain.SectionText}, 0, 0)
	env.builders.DragMove(10, 0, -1)
	if err := env.builders.DragDrop(ctx, "canvas"); err != nil {
		t.Fatalf("DragDrop: %v", err)
	}
	page, _ := env.builders.Document().ActivePage()
	if len(page.Layout) != 1 || page.Layout[0].Type != domain.SectionText {
		t.Fatalf("layout = %+v, want one text section", page.Layout)
	}

	// A cancelled gesture leaves the tree alone.
	before := env.builders.Document()
	env.builders.DragBegin(builder.Payload{Kind: domain.SectionImage}, 0, 0)
	env.builders.DragMove(10, 0, -1)
	env.builders.DragCancel()
	if env.builders.Document() != before {
		t.Fatal("cancelled drag mutated the document")
	}
}

func TestSaveThenReopenKeepsEdits(t *testing.T) {
	env := newTestEnv(t)
	projectID, _ := openProject(t, env)
	ctx := context.Background()

	if err := env.builders.InsertSection(ctx, domain.SectionHeader, -1); err != nil {
		t.Fatalf("InsertSection: %v", err)
	}
	if err := env.builders.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	if err := env.builders.Open(ctx, projectID); err != nil {
		t.Fatalf("reopen: %v", err)
	}
	page, _ := env.builders.Document().ActivePage()
	if len(page.Layout) != 1 || page.Layout[0].Type != domain.SectionHeader {
		t.Fatalf("layout after reopen = %+v", page.Layout)
	}
	if env.builders.CanUndo() {
		t.Fatal("reopening must reset the history")
	}
}

func TestCheckpointAndRestore(t *testing.T) {
	env := newTestEnv(t)
	_, _ = openProject(t, env)
	ctx := context.Background()

	if _, err := env.builders.Checkpoint("empty"); err != nil {
		t.Fatalf("Checkpoint: %v", err)
	}
	if err := env.builders.InsertSection(ctx, domain.SectionText, -1); err != nil {
		t.Fatalf("InsertSection: %v", err)
	}

	snaps, err := env.builders.ListSnapshots()
	if err != nil {
		t.Fatalf("ListSnapshots: %v", err)
	}
	if len(snaps) != 1 || snaps[0].Label != "empty" {
		t.Fatalf("snapshots = %+v", snaps)
	}

	if err := env.builders.RestoreSnapshot(ctx, snaps[0].ID); err != nil {
		t.Fatalf("RestoreSnapshot: %v", err)
	}
	page, _ := env.builders.Document().ActivePage()
	if len(page.Layout) != 0 {
		t.Fatalf("layout after restore = %+v, want empty", page.Layout)
	}

	// The restore itself is one undoable step.
	if _, err := env.builders.Undo(ctx); err != nil {
		t.Fatalf("Undo restore: %v", err)
	}
	page, _ = env.builders.Document().ActivePage()
	if len(page.Layout) != 1 {
		t.Fatalf("layout after undoing restore = %+v", page.Layout)
	}
}

func TestAIUnavailableWithoutSession(t *testing.T) {
	env := newTestEnv(t)
	_, homeID := openProject(t, env)
	ctx := context.Background()

	if err := env.builders.StartAISession(ctx, homeID); !errors.Is(err, ai.ErrNoSession) {
		t.Fatalf("StartAISession: got %v, want ErrNoSession", err)
	}
	if err := env.builders.AIGenerate(ctx, "hero"); !errors.Is(err, ai.ErrNoSession) {
		t.Fatalf("AIGenerate: got %v, want ErrNoSession", err)
	}
}

// aiStub serves a minimal section-editing session: generate replaces the
// page with a single section per prompt.
func aiStub(t *testing.T) *ai.Session {
	t.Helper()
	var order []string
	mux := http.NewServeMux()
	mux.HandleFunc("/start-session", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"session_id": "s1"})
	})
	mux.HandleFunc("/generate-page", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Prompt string `json:"prompt"`
		}
		json.NewDecoder(r.Body).Decode(&req)
		order = []string{"sec-" + req.Prompt}
		json.NewEncoder(w).Encode(map[string]any{"section_order": order})
	})
	mux.HandleFunc("/get-page", func(w http.ResponseWriter, r *http.Request) {
		sections := map[string]map[string]any{}
		for _, id := range order {
			sections[id] = map[string]any{"id": id, "type": "text", "props": map[string]any{"text": id}}
		}
		json.NewEncoder(w).Encode(map[string]any{"sections": sections, "section_order": order})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return ai.NewSession(srv.URL)
}

func TestAIGenerateReplacesBoundPage(t *testing.T) {
	env := newTestEnv(t)
	p, err := env.projects.CreateProject("Launch")
	if err != nil {
		t.Fatalf("CreateProject: %v", err)
	}
	builders := service.NewBuilderService(env.projects, nil, aiStub(t), env.emitter)
	ctx := context.Background()
	if err := builders.Open(ctx, p.ID); err != nil {
		t.Fatalf("Open: %v", err)
	}
	homeID := builders.Document().Pages()[0].ID

	if err := builders.StartAISession(ctx, homeID); err != nil {
		t.Fatalf("StartAISession: %v", err)
	}
	if err := builders.AIGenerate(ctx, "hero"); err != nil {
		t.Fatalf("AIGenerate: %v", err)
	}
	page, _ := builders.Document().GetPage(homeID)
	if len(page.Layout) != 1 || page.Layout[0].ID != "sec-hero" {
		t.Fatalf("layout = %+v, want AI result", page.Layout)
	}

	// The replacement is a local history step too.
	if _, err := builders.Undo(ctx); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	page, _ = builders.Document().GetPage(homeID)
	if len(page.Layout) != 0 {
		t.Fatalf("layout after local undo = %+v, want empty", page.Layout)
	}
}

func TestStartAISessionRejectsUnknownPage(t *testing.T) {
	env := newTestEnv(t)
	p, err := env.projects.CreateProject("Launch")
	if err != nil {
		t.Fatalf("CreateProject: %v", err)
	}
	builders := service.NewBuilderService(env.projects, nil, aiStub(t), env.emitter)
	ctx := context.Background()
	if err := builders.Open(ctx, p.ID); err != nil {
		t.Fatalf("Open: %v", err)
	}

	if err := builders.StartAISession(ctx, "nope"); err == nil {
		t.Fatal("binding an unknown page should fail")
	}
}
