package mcpserver

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerAITools() {
	s.mcp.AddTool(mcp.NewTool("start_ai_session",
		mcp.WithDescription("Bind a page to a remote AI generation session; its layout becomes AI-managed"),
		mcp.WithString("pageId", mcp.Description("Page to bind"), mcp.Required()),
	), s.handleStartAISession)

	s.mcp.AddTool(mcp.NewTool("generate_section",
		mcp.WithDescription("Ask the AI session to generate content on the bound page; the result lands as one undoable edit"),
		mcp.WithString("prompt", mcp.Description("Generation prompt"), mcp.Required()),
	), s.handleGenerateSection)
}

func (s *Server) handleStartAISession(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := s.requireOpen(); err != nil {
		return nil, err
	}
	pageID, err := stringArg(req.GetArguments(), "pageId")
	if err != nil {
		return nil, err
	}
	if err := s.builders.StartAISession(ctx, pageID); err != nil {
		return nil, err
	}
	return textResult("AI session started"), nil
}

func (s *Server) handleGenerateSection(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := s.requireOpen(); err != nil {
		return nil, err
	}
	prompt, err := stringArg(req.GetArguments(), "prompt")
	if err != nil {
		return nil, err
	}
	if err := s.builders.AIGenerate(ctx, prompt); err != nil {
		return nil, err
	}
	return textResult("Generated"), nil
}
