package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/abdidvp/sclkraft/internal/domain/rules"
	"github.com/abdidvp/sclkraft/internal/domain/snippets"
)

// registerResources registers all sclkraft MCP resources on the given server.
func registerResources(s *server.MCPServer, projectPath string, svc *services) {
	// 1. sclkraft://rules - rule catalog with the project's enablement
	s.AddResource(
		mcplib.NewResource(
			"sclkraft://rules",
			"Rule Catalog",
			mcplib.WithResourceDescription("Compliance rules in execution order and whether the project enables them"),
			mcplib.WithMIMEType("application/json"),
		),
		handleRulesResource(projectPath, svc),
	)

	// 2. sclkraft://snippets/{name} - template source (resource template)
	s.AddResourceTemplate(
		mcplib.NewResourceTemplate(
			"sclkraft://snippets/{name}",
			"Snippet",
			mcplib.WithTemplateDescription("Source of a named SCL code template"),
			mcplib.WithTemplateMIMEType("text/plain"),
		),
		handleSnippetResource(),
	)
}

type ruleInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Enabled     bool   `json:"enabled"`
}

func handleRulesResource(projectPath string, svc *services) server.ResourceHandlerFunc {
	return func(_ context.Context, request mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		cfg, err := svc.config.Load(projectPath)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}

		var catalog []ruleInfo
		for _, r := range rules.DefaultRules(nil) {
			catalog = append(catalog, ruleInfo{
				Name:        r.Name(),
				Description: r.Description(),
				Enabled:     !cfg.IsDisabledRule(r.Name()),
			})
		}

		data, err := json.MarshalIndent(catalog, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshaling rules: %w", err)
		}

		return []mcplib.ResourceContents{
			mcplib.TextResourceContents{
				URI:      request.Params.URI,
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	}
}

func handleSnippetResource() server.ResourceTemplateHandlerFunc {
	return func(_ context.Context, request mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		name := templateArg(request.Params.Arguments, "name")
		if name == "" {
			return nil, fmt.Errorf("snippet name is required")
		}

		snip, err := snippets.Get(name)
		if err != nil {
			return nil, err
		}

		return []mcplib.ResourceContents{
			mcplib.TextResourceContents{
				URI:      request.Params.URI,
				MIMEType: "text/plain",
				Text:     snip.Source,
			},
		}, nil
	}
}

// templateArg reads a URI template variable, which the server may pass as a
// string or a single-element list.
func templateArg(args map[string]any, name string) string {
	switch v := args[name].(type) {
	case string:
		return v
	case []string:
		if len(v) > 0 {
			return v[0]
		}
	}
	return ""
}
