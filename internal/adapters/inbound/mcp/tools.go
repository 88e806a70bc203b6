package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	cacheAdapter "github.com/abdidvp/sclkraft/internal/adapters/outbound/cache"
	"github.com/abdidvp/sclkraft/internal/adapters/outbound/config"
	"github.com/abdidvp/sclkraft/internal/adapters/outbound/gitinfo"
	"github.com/abdidvp/sclkraft/internal/adapters/outbound/history"
	"github.com/abdidvp/sclkraft/internal/adapters/outbound/scanner"
	"github.com/abdidvp/sclkraft/internal/adapters/outbound/tui"
	"github.com/abdidvp/sclkraft/internal/application"
	"github.com/abdidvp/sclkraft/internal/domain/normalize"
	"github.com/abdidvp/sclkraft/internal/domain/remediation"
	"github.com/abdidvp/sclkraft/internal/domain/snippets"
)

type services struct {
	validate *application.ValidateService
	fix      *application.FixService
	config   *config.YAMLLoader
}

func newServices(version string, log *zap.Logger) *services {
	sc := scanner.New()
	cfg := config.New()
	return &services{
		validate: application.NewValidateService(sc, cfg, cacheAdapter.New(), history.New(), gitinfo.New(), log).WithVersion(version),
		fix:      application.NewFixService(sc, cfg, log),
		config:   cfg,
	}
}

// registerTools registers all sclkraft MCP tools on the given server.
func registerTools(s *server.MCPServer, projectPath string, svc *services) {
	// 1. sclkraft_validate
	s.AddTool(
		mcplib.NewTool("sclkraft_validate",
			mcplib.WithDescription("Validate SCL source text against the IEC 61131-3 compliance rules. Returns the report as JSON."),
			mcplib.WithString("source",
				mcplib.Required(),
				mcplib.Description("SCL source code to validate"),
			),
			mcplib.WithString("format", mcplib.Description("Output format: json, console or analysis (default: json)")),
		),
		handleValidate(projectPath, svc),
	)

	// 2. sclkraft_validate_file
	s.AddTool(
		mcplib.NewTool("sclkraft_validate_file",
			mcplib.WithDescription("Validate a single source file of the project"),
			mcplib.WithString("file",
				mcplib.Required(),
				mcplib.Description("Relative path to the file to validate"),
			),
		),
		handleValidateFile(projectPath, svc),
	)

	// 3. sclkraft_validate_project
	s.AddTool(
		mcplib.NewTool("sclkraft_validate_project",
			mcplib.WithDescription("Validate every source file of the project and return a pass/warn/fail status"),
			mcplib.WithBoolean("strict", mcplib.Description("Fail on warnings")),
			mcplib.WithBoolean("changed", mcplib.Description("Only validate files changed in the git worktree")),
			mcplib.WithBoolean("record", mcplib.Description("Append the run to the project history")),
		),
		handleValidateProject(projectPath, svc),
	)

	// 4. sclkraft_suggest
	s.AddTool(
		mcplib.NewTool("sclkraft_suggest",
			mcplib.WithDescription("Return the remediation suggestion for an issue message"),
			mcplib.WithString("message",
				mcplib.Required(),
				mcplib.Description("Issue message as reported by a validation"),
			),
		),
		handleSuggest(),
	)

	// 5. sclkraft_normalize
	s.AddTool(
		mcplib.NewTool("sclkraft_normalize",
			mcplib.WithDescription("Uppercase IEC keywords. Normalizes the given source text, or project files when no source is given."),
			mcplib.WithString("source", mcplib.Description("SCL source code to normalize")),
			mcplib.WithString("files", mcplib.Description("Comma-separated file paths relative to project root (default: all source files)")),
			mcplib.WithBoolean("dry_run", mcplib.Description("List files that would change without writing them")),
		),
		handleNormalize(projectPath, svc),
	)

	// 6. sclkraft_list_snippets
	s.AddTool(
		mcplib.NewTool("sclkraft_list_snippets",
			mcplib.WithDescription("List the code templates and standard function blocks available as snippets"),
		),
		handleListSnippets(),
	)

	// 7. sclkraft_get_snippet
	s.AddTool(
		mcplib.NewTool("sclkraft_get_snippet",
			mcplib.WithDescription("Return a code template by name, or an instance declaration for a standard function block (e.g. TON)"),
			mcplib.WithString("name",
				mcplib.Required(),
				mcplib.Description("Template name (state-machine, pump-control, factory, strategy) or block type"),
			),
			mcplib.WithNumber("index", mcplib.Description("Instance number for block instances (default: 1)")),
		),
		handleGetSnippet(),
	)
}

func handleValidate(projectPath string, svc *services) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		source, err := request.RequireString("source")
		if err != nil {
			return errorResult(err.Error()), nil
		}

		cfg, err := svc.config.Load(projectPath)
		if err != nil {
			return errorResult(fmt.Sprintf("loading config: %v", err)), nil
		}

		report, err := svc.validate.ValidateSource("source", source, cfg)
		if err != nil {
			return errorResult(fmt.Sprintf("validate failed: %v", err)), nil
		}

		switch request.GetString("format", "json") {
		case "console":
			return textResult(tui.RenderConsole("source", report)), nil
		case "analysis":
			return textResult(tui.RenderAnalysis("source", report)), nil
		default:
			return jsonResult(report)
		}
	}
}

func handleValidateFile(projectPath string, svc *services) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		file, err := request.RequireString("file")
		if err != nil {
			return errorResult(err.Error()), nil
		}

		report, err := svc.validate.ValidateFile(projectPath, file)
		if err != nil {
			return errorResult(fmt.Sprintf("validate failed: %v", err)), nil
		}
		if report.Fault != "" {
			return errorResult(report.Fault), nil
		}
		return jsonResult(report)
	}
}

func handleValidateProject(projectPath string, svc *services) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		opts := application.ProjectOptions{
			Strict:      request.GetBool("strict", false),
			ChangedOnly: request.GetBool("changed", false),
			Record:      request.GetBool("record", false),
		}

		report, err := svc.validate.ValidateProject(ctx, projectPath, opts)
		if err != nil {
			return errorResult(fmt.Sprintf("validate failed: %v", err)), nil
		}
		return jsonResult(report)
	}
}

func handleSuggest() server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		message, err := request.RequireString("message")
		if err != nil {
			return errorResult(err.Error()), nil
		}
		return textResult(remediation.Suggest(message)), nil
	}
}

func handleNormalize(projectPath string, svc *services) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		if source := request.GetString("source", ""); source != "" {
			return textResult(normalize.KeywordCase(source)), nil
		}

		files := splitAndTrim(request.GetString("files", ""))
		plan, err := svc.fix.Normalize(projectPath, files, request.GetBool("dry_run", false))
		if err != nil {
			return errorResult(fmt.Sprintf("normalize failed: %v", err)), nil
		}
		return jsonResult(plan)
	}
}

func handleListSnippets() server.ToolHandlerFunc {
	return func(_ context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		type listing struct {
			Templates []snippets.Snippet `json:"templates"`
			Blocks    []string           `json:"blocks"`
		}
		return jsonResult(listing{Templates: snippets.List(), Blocks: snippets.Blocks()})
	}
}

func handleGetSnippet() server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		name, err := request.RequireString("name")
		if err != nil {
			return errorResult(err.Error()), nil
		}

		if snip, err := snippets.Get(name); err == nil {
			return textResult(snip.Source), nil
		}

		instance, err := snippets.Instance(name, request.GetInt("index", 1))
		if err != nil {
			return errorResult(fmt.Sprintf("unknown snippet or block %q", name)), nil
		}
		return textResult(instance), nil
	}
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	var result []string
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// jsonResult marshals v to JSON and returns it as a text content result.
func jsonResult(v interface{}) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

// textResult returns a plain text content result.
func textResult(text string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(text)},
	}
}

// errorResult returns a tool result that indicates an error occurred.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
