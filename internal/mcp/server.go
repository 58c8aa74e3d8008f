package mcpserver

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/ahtisham02/hyperpitch-io-sub002/internal/service"
)

// Server is the MCP server for the page builder. It exposes tools and
// resources so AI agents can inspect and edit the open project's tree
// through the same mutation layer the UI uses.
type Server struct {
	mcp *server.MCPServer

	projects *service.ProjectService
	builders *service.BuilderService
	publish  *service.PublishService
}

// Deps holds everything the app layer injects into the MCP server.
type Deps struct {
	Projects *service.ProjectService
	Builders *service.BuilderService
	Publish  *service.PublishService
}

// New creates an MCP server with all tools and resources registered.
func New(deps Deps) *Server {
	s := &Server{
		projects: deps.Projects,
		builders: deps.Builders,
		publish:  deps.Publish,
	}

	s.mcp = server.NewMCPServer(
		"hyperpitch-mcp",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	s.registerPageTools()
	s.registerSectionTools()
	s.registerHistoryTools()
	s.registerAITools()
	s.registerResources()

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	log.Println("[mcp] starting stdio server")
	return server.ServeStdio(s.mcp)
}

// ── Helpers ────────────────────────────────────────────────

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: text},
		},
	}
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal result: %w", err)
	}
	return textResult(string(data)), nil
}

// requireOpen fails a tool call when no project is open.
func (s *Server) requireOpen() error {
	if s.builders.ProjectID() == "" {
		return fmt.Errorf("no open project (use open_project first)")
	}
	return nil
}

func stringArg(args map[string]any, key string) (string, error) {
	v, ok := args[key].(string)
	if !ok || v == "" {
		return "", fmt.Errorf("%s is required", key)
	}
	return v, nil
}

// intArg reads an integer argument, defaulting when absent. JSON numbers
// arrive as float64.
func intArg(args map[string]any, key string, def int) int {
	if v, ok := args[key].(float64); ok {
		return int(v)
	}
	return def
}
