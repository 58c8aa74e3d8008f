package mcpserver

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerHistoryTools() {
	s.mcp.AddTool(mcp.NewTool("undo",
		mcp.WithDescription("Undo the last edit in the open project"),
	), s.handleUndo)

	s.mcp.AddTool(mcp.NewTool("redo",
		mcp.WithDescription("Re-apply the last undone edit"),
	), s.handleRedo)

	s.mcp.AddTool(mcp.NewTool("checkpoint",
		mcp.WithDescription("Store the current document as a named snapshot"),
		mcp.WithString("label", mcp.Description("Snapshot label"), mcp.Required()),
	), s.handleCheckpoint)

	s.mcp.AddTool(mcp.NewTool("list_snapshots",
		mcp.WithDescription("List the open project's snapshots, oldest first"),
	), s.handleListSnapshots)

	s.mcp.AddTool(mcp.NewTool("restore_snapshot",
		mcp.WithDescription("Swap the live document for a stored snapshot; the swap is undoable"),
		mcp.WithString("snapshotId", mcp.Description("Snapshot ID"), mcp.Required()),
	), s.handleRestoreSnapshot)
}

func (s *Server) handleUndo(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := s.requireOpen(); err != nil {
		return nil, err
	}
	label, err := s.builders.Undo(ctx)
	if err != nil {
		return nil, err
	}
	return textResult(fmt.Sprintf("Undid %q", label)), nil
}

func (s *Server) handleRedo(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := s.requireOpen(); err != nil {
		return nil, err
	}
	label, err := s.builders.Redo(ctx)
	if err != nil {
		return nil, err
	}
	return textResult(fmt.Sprintf("Redid %q", label)), nil
}

func (s *Server) handleCheckpoint(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := s.requireOpen(); err != nil {
		return nil, err
	}
	label, err := stringArg(req.GetArguments(), "label")
	if err != nil {
		return nil, err
	}
	snap, err := s.builders.Checkpoint(label)
	if err != nil {
		return nil, err
	}
	return textResult(fmt.Sprintf("Snapshot %s stored", snap.ID)), nil
}

func (s *Server) handleListSnapshots(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := s.requireOpen(); err != nil {
		return nil, err
	}
	snaps, err := s.builders.ListSnapshots()
	if err != nil {
		return nil, err
	}
	type summary struct {
		ID    string `json:"id"`
		Label string `json:"label"`
	}
	out := make([]summary, 0, len(snaps))
	for _, sn := range snaps {
		out = append(out, summary{ID: sn.ID, Label: sn.Label})
	}
	return jsonResult(out)
}

func (s *Server) handleRestoreSnapshot(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := s.requireOpen(); err != nil {
		return nil, err
	}
	snapshotID, err := stringArg(req.GetArguments(), "snapshotId")
	if err != nil {
		return nil, err
	}
	if err := s.builders.RestoreSnapshot(ctx, snapshotID); err != nil {
		return nil, err
	}
	return textResult("Snapshot restored"), nil
}
