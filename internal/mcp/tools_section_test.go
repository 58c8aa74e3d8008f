package mcpserver

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ahtisham02/hyperpitch-io-sub002/internal/domain"
	"github.com/ahtisham02/hyperpitch-io-sub002/internal/service"
	"github.com/ahtisham02/hyperpitch-io-sub002/internal/storage"
)

func newTestServer(t *testing.T) (*Server, string) {
	t.Helper()
	dir := t.TempDir()
	db, err := storage.New(filepath.Join(dir, "test.db"), dir)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	emitter := &service.MockEmitter{}
	snapshots := storage.NewSnapshotStore(db)
	projects := service.NewProjectService(
		storage.NewProjectStore(db),
		storage.NewCommentStore(db),
		snapshots,
		emitter,
	)
	builders := service.NewBuilderService(projects, snapshots, nil, emitter)

	p, err := projects.CreateProject("Launch")
	if err != nil {
		t.Fatalf("CreateProject: %v", err)
	}
	return New(Deps{Projects: projects, Builders: builders}), p.ID
}

func call(args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	return req
}

func TestSectionToolsRequireOpenProject(t *testing.T) {
	s, _ := newTestServer(t)

	if _, err := s.handleAddSection(context.Background(), call(map[string]any{"kind": "text"})); err == nil {
		t.Fatal("add_section without an open project should fail")
	}
}

func TestAddUpdateRemoveSectionTools(t *testing.T) {
	s, projectID := newTestServer(t)
	ctx := context.Background()

	if _, err := s.handleOpenProject(ctx, call(map[string]any{"projectId": projectID})); err != nil {
		t.Fatalf("open_project: %v", err)
	}

	if _, err := s.handleAddSection(ctx, call(map[string]any{"kind": "button"})); err != nil {
		t.Fatalf("add_section: %v", err)
	}
	page, _ := s.builders.Document().ActivePage()
	if len(page.Layout) != 1 || page.Layout[0].Type != domain.SectionButton {
		t.Fatalf("layout = %+v", page.Layout)
	}

	if _, err := s.handleAddSection(ctx, call(map[string]any{"kind": "hologram"})); err == nil {
		t.Fatal("unregistered kind should be rejected")
	}

	if _, err := s.handleUpdateSectionProps(ctx, call(map[string]any{
		"path":  "layout[0].props",
		"props": `{"buttonText":"Get started"}`,
	})); err != nil {
		t.Fatalf("update_section_props: %v", err)
	}
	page, _ = s.builders.Document().ActivePage()
	if page.Layout[0].Props["buttonText"] != "Get started" {
		t.Fatalf("props = %+v", page.Layout[0].Props)
	}

	if _, err := s.handleUpdateSectionProps(ctx, call(map[string]any{
		"path":  "layout[0].props",
		"props": `"not an object"`,
	})); err == nil {
		t.Fatal("non-object props should be rejected")
	}

	if _, err := s.handleRemoveAtPath(ctx, call(map[string]any{"path": "layout[0]"})); err != nil {
		t.Fatalf("remove_at_path: %v", err)
	}
	page, _ = s.builders.Document().ActivePage()
	if len(page.Layout) != 0 {
		t.Fatalf("layout = %+v, want empty", page.Layout)
	}
}

func TestUndoToolRoundTrip(t *testing.T) {
	s, projectID := newTestServer(t)
	ctx := context.Background()

	if _, err := s.handleOpenProject(ctx, call(map[string]any{"projectId": projectID})); err != nil {
		t.Fatalf("open_project: %v", err)
	}
	if _, err := s.handleUndo(ctx, call(nil)); err == nil {
		t.Fatal("undo with empty history should fail")
	}

	if _, err := s.handleAddSection(ctx, call(map[string]any{"kind": "text"})); err != nil {
		t.Fatalf("add_section: %v", err)
	}
	if _, err := s.handleUndo(ctx, call(nil)); err != nil {
		t.Fatalf("undo: %v", err)
	}
	page, _ := s.builders.Document().ActivePage()
	if len(page.Layout) != 0 {
		t.Fatalf("layout = %+v, want empty after undo", page.Layout)
	}
}
