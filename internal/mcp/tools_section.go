package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ahtisham02/hyperpitch-io-sub002/internal/builder"
	"github.com/ahtisham02/hyperpitch-io-sub002/internal/domain"
)

func (s *Server) registerSectionTools() {
	kinds := make([]string, 0, len(builder.Kinds()))
	for _, k := range builder.Kinds() {
		kinds = append(kinds, string(k.Type))
	}

	s.mcp.AddTool(mcp.NewTool("add_section",
		mcp.WithDescription("Add a section of a registered kind to the active page. Kinds: "+strings.Join(kinds, ", ")),
		mcp.WithString("kind", mcp.Description("Section kind"), mcp.Required()),
		mcp.WithNumber("index", mcp.Description("Insert position; omit or -1 to append")),
	), s.handleAddSection)

	s.mcp.AddTool(mcp.NewTool("update_section_props",
		mcp.WithDescription("Shallow-merge props into the node at a path on the active page, e.g. layout[0].props"),
		mcp.WithString("path", mcp.Description("Node path"), mcp.Required()),
		mcp.WithString("props", mcp.Description("JSON object of props to merge"), mcp.Required()),
	), s.handleUpdateSectionProps)

	s.mcp.AddTool(mcp.NewTool("remove_at_path",
		mcp.WithDescription("Remove the section or prop at a path on the active page; unresolvable paths are a no-op"),
		mcp.WithString("path", mcp.Description("Node or prop path, e.g. layout[1] or layout[0].props.href"), mcp.Required()),
		mcp.WithDestructiveHintAnnotation(true),
	), s.handleRemoveAtPath)

	s.mcp.AddTool(mcp.NewTool("move_section",
		mcp.WithDescription("Move a section within a page's layout"),
		mcp.WithString("pageId", mcp.Description("Page ID"), mcp.Required()),
		mcp.WithNumber("from", mcp.Description("Current index"), mcp.Required()),
		mcp.WithNumber("to", mcp.Description("Target index"), mcp.Required()),
	), s.handleMoveSection)

	s.mcp.AddTool(mcp.NewTool("set_global_element",
		mcp.WithDescription("Set the document-wide navbar or footer; replaces the existing one"),
		mcp.WithString("kind", mcp.Description("navbar or footer"), mcp.Required()),
		mcp.WithString("props", mcp.Description("JSON object of props"), mcp.Required()),
	), s.handleSetGlobalElement)

	s.mcp.AddTool(mcp.NewTool("remove_global_element",
		mcp.WithDescription("Remove the document-wide navbar or footer"),
		mcp.WithString("kind", mcp.Description("navbar or footer"), mcp.Required()),
		mcp.WithDestructiveHintAnnotation(true),
	), s.handleRemoveGlobalElement)
}

func (s *Server) handleAddSection(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := s.requireOpen(); err != nil {
		return nil, err
	}
	args := req.GetArguments()
	kind, err := stringArg(args, "kind")
	if err != nil {
		return nil, err
	}
	index := intArg(args, "index", -1)
	if err := s.builders.InsertSection(ctx, domain.SectionType(kind), index); err != nil {
		return nil, err
	}
	return textResult(fmt.Sprintf("Added %s section", kind)), nil
}

func (s *Server) handleUpdateSectionProps(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := s.requireOpen(); err != nil {
		return nil, err
	}
	args := req.GetArguments()
	path, err := stringArg(args, "path")
	if err != nil {
		return nil, err
	}
	propsJSON, err := stringArg(args, "props")
	if err != nil {
		return nil, err
	}
	var props map[string]any
	if err := json.Unmarshal([]byte(propsJSON), &props); err != nil {
		return nil, fmt.Errorf("props must be a JSON object: %w", err)
	}
	if err := s.builders.UpdateProps(ctx, path, props); err != nil {
		return nil, err
	}
	return textResult(fmt.Sprintf("Props merged at %s", path)), nil
}

func (s *Server) handleRemoveAtPath(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := s.requireOpen(); err != nil {
		return nil, err
	}
	path, err := stringArg(req.GetArguments(), "path")
	if err != nil {
		return nil, err
	}
	if err := s.builders.RemoveAtPath(ctx, path); err != nil {
		return nil, err
	}
	return textResult(fmt.Sprintf("Removed %s", path)), nil
}

func (s *Server) handleMoveSection(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := s.requireOpen(); err != nil {
		return nil, err
	}
	args := req.GetArguments()
	pageID, err := stringArg(args, "pageId")
	if err != nil {
		return nil, err
	}
	from := intArg(args, "from", -1)
	to := intArg(args, "to", -1)
	if err := s.builders.MoveSection(ctx, pageID, from, to); err != nil {
		return nil, err
	}
	return textResult(fmt.Sprintf("Moved section %d to %d", from, to)), nil
}

func (s *Server) handleSetGlobalElement(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := s.requireOpen(); err != nil {
		return nil, err
	}
	args := req.GetArguments()
	kind, err := stringArg(args, "kind")
	if err != nil {
		return nil, err
	}
	propsJSON, err := stringArg(args, "props")
	if err != nil {
		return nil, err
	}
	var props map[string]any
	if err := json.Unmarshal([]byte(propsJSON), &props); err != nil {
		return nil, fmt.Errorf("props must be a JSON object: %w", err)
	}
	if err := s.builders.SetGlobal(ctx, domain.SectionType(kind), props); err != nil {
		return nil, err
	}
	return textResult(fmt.Sprintf("Global %s set", kind)), nil
}

func (s *Server) handleRemoveGlobalElement(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := s.requireOpen(); err != nil {
		return nil, err
	}
	kind, err := stringArg(req.GetArguments(), "kind")
	if err != nil {
		return nil, err
	}
	if err := s.builders.RemoveGlobal(ctx, domain.SectionType(kind)); err != nil {
		return nil, err
	}
	return textResult(fmt.Sprintf("Global %s removed", kind)), nil
}
