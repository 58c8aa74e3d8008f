package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ahtisham02/hyperpitch-io-sub002/internal/render"
)

func (s *Server) registerResources() {
	s.mcp.AddResource(mcp.NewResource(
		"hyperpitch://projects",
		"All Projects",
		mcp.WithMIMEType("application/json"),
	), s.handleProjectsResource)

	s.mcp.AddResource(mcp.NewResource(
		"hyperpitch://document",
		"Open Project Document",
		mcp.WithMIMEType("application/json"),
	), s.handleDocumentResource)

	s.mcp.AddResourceTemplate(
		mcp.NewResourceTemplate(
			"hyperpitch://preview/{pageId}",
			"Rendered Page Preview",
		),
		s.handlePreviewResource,
	)
}

func (s *Server) handleProjectsResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	projects, err := s.projects.ListProjects()
	if err != nil {
		return nil, err
	}
	type summary struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	out := make([]summary, 0, len(projects))
	for _, p := range projects {
		out = append(out, summary{ID: p.ID, Name: p.Name})
	}
	data, _ := json.MarshalIndent(out, "", "  ")
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      "hyperpitch://projects",
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

func (s *Server) handleDocumentResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	if err := s.requireOpen(); err != nil {
		return nil, err
	}
	data, err := s.builders.Document().MarshalJSON()
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      "hyperpitch://document",
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

func (s *Server) handlePreviewResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	if err := s.requireOpen(); err != nil {
		return nil, err
	}
	uri := req.Params.URI
	pageID := strings.TrimPrefix(uri, "hyperpitch://preview/")
	if pageID == "" || pageID == uri {
		return nil, fmt.Errorf("bad preview URI %q", uri)
	}

	html, err := render.Page(s.builders.Document(), pageID, render.FrameDesktop)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "text/html",
			Text:     html,
		},
	}, nil
}
