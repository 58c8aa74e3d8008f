package mcpserver

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerPageTools() {
	s.mcp.AddTool(mcp.NewTool("list_projects",
		mcp.WithDescription("List all projects"),
	), s.handleListProjects)

	s.mcp.AddTool(mcp.NewTool("open_project",
		mcp.WithDescription("Open a project for editing; all page and section tools act on the open project"),
		mcp.WithString("projectId", mcp.Description("Project ID"), mcp.Required()),
	), s.handleOpenProject)

	s.mcp.AddTool(mcp.NewTool("list_pages",
		mcp.WithDescription("List the open project's pages with their section counts"),
	), s.handleListPages)

	s.mcp.AddTool(mcp.NewTool("add_page",
		mcp.WithDescription("Add a page to the open project"),
		mcp.WithString("name", mcp.Description("Page name"), mcp.Required()),
	), s.handleAddPage)

	s.mcp.AddTool(mcp.NewTool("rename_page",
		mcp.WithDescription("Rename a page"),
		mcp.WithString("pageId", mcp.Description("Page ID"), mcp.Required()),
		mcp.WithString("name", mcp.Description("New name"), mcp.Required()),
	), s.handleRenamePage)

	s.mcp.AddTool(mcp.NewTool("delete_page",
		mcp.WithDescription("Delete a page and its comments"),
		mcp.WithString("pageId", mcp.Description("Page ID"), mcp.Required()),
		mcp.WithDestructiveHintAnnotation(true),
	), s.handleDeletePage)

	s.mcp.AddTool(mcp.NewTool("set_active_page",
		mcp.WithDescription("Change the active page that section tools default to"),
		mcp.WithString("pageId", mcp.Description("Page ID"), mcp.Required()),
	), s.handleSelectPage)

	s.mcp.AddTool(mcp.NewTool("save_project",
		mcp.WithDescription("Persist the open project's document"),
	), s.handleSaveProject)

	s.mcp.AddTool(mcp.NewTool("publish_project",
		mcp.WithDescription("Render the open project and deploy it; returns the live URL"),
	), s.handlePublishProject)
}

func (s *Server) handleListProjects(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	projects, err := s.projects.ListProjects()
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	type summary struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	out := make([]summary, 0, len(projects))
	for _, p := range projects {
		out = append(out, summary{ID: p.ID, Name: p.Name})
	}
	return jsonResult(out)
}

func (s *Server) handleOpenProject(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	projectID, err := stringArg(req.GetArguments(), "projectId")
	if err != nil {
		return nil, err
	}
	if err := s.builders.Open(ctx, projectID); err != nil {
		return nil, err
	}
	return textResult(fmt.Sprintf("Project %s opened", projectID)), nil
}

func (s *Server) handleListPages(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := s.requireOpen(); err != nil {
		return nil, err
	}
	doc := s.builders.Document()
	type pageSummary struct {
		ID       string `json:"id"`
		Name     string `json:"name"`
		Sections int    `json:"sections"`
		Active   bool   `json:"active"`
	}
	var out []pageSummary
	for _, p := range doc.Pages() {
		out = append(out, pageSummary{
			ID:       p.ID,
			Name:     p.Name,
			Sections: len(p.Layout),
			Active:   p.ID == doc.ActivePageID(),
		})
	}
	return jsonResult(out)
}

func (s *Server) handleAddPage(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := s.requireOpen(); err != nil {
		return nil, err
	}
	name, err := stringArg(req.GetArguments(), "name")
	if err != nil {
		return nil, err
	}
	pageID, err := s.builders.AddPage(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("add page: %w", err)
	}
	return textResult(fmt.Sprintf("Page %s created", pageID)), nil
}

func (s *Server) handleRenamePage(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := s.requireOpen(); err != nil {
		return nil, err
	}
	args := req.GetArguments()
	pageID, err := stringArg(args, "pageId")
	if err != nil {
		return nil, err
	}
	name, err := stringArg(args, "name")
	if err != nil {
		return nil, err
	}
	if err := s.builders.RenamePage(ctx, pageID, name); err != nil {
		return nil, err
	}
	return textResult(fmt.Sprintf("Page %s renamed to %q", pageID, name)), nil
}

func (s *Server) handleDeletePage(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := s.requireOpen(); err != nil {
		return nil, err
	}
	pageID, err := stringArg(req.GetArguments(), "pageId")
	if err != nil {
		return nil, err
	}
	if err := s.builders.DeletePage(ctx, pageID); err != nil {
		return nil, err
	}
	return textResult(fmt.Sprintf("Page %s deleted", pageID)), nil
}

func (s *Server) handleSelectPage(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := s.requireOpen(); err != nil {
		return nil, err
	}
	pageID, err := stringArg(req.GetArguments(), "pageId")
	if err != nil {
		return nil, err
	}
	s.builders.SelectPage(ctx, pageID)
	return textResult(fmt.Sprintf("Active page is now %s", pageID)), nil
}

func (s *Server) handleSaveProject(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := s.requireOpen(); err != nil {
		return nil, err
	}
	if err := s.builders.Save(); err != nil {
		return nil, err
	}
	return textResult("Project saved"), nil
}

func (s *Server) handlePublishProject(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := s.requireOpen(); err != nil {
		return nil, err
	}
	if s.publish == nil {
		return nil, fmt.Errorf("publishing is not configured")
	}
	// Publish deploys the persisted document, so save first.
	if err := s.builders.Save(); err != nil {
		return nil, err
	}
	url, err := s.publish.Publish(ctx, s.builders.ProjectID())
	if err != nil {
		return nil, err
	}
	return textResult("Published at " + url), nil
}
