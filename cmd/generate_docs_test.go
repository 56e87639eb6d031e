package cmd

import (
	"context"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"ticktick-mcp/internal/server"
	"ticktick-mcp/internal/ticktick"
	"ticktick-mcp/internal/tools/ticktick_tools"
)

func TestGetCategoryFromToolName(t *testing.T) {
	tests := []struct {
		name     string
		expected string
	}{
		{name: "get_projects", expected: "Project Tools"},
		{name: "get_project", expected: "Project Tools"},
		{name: "create_project", expected: "Project Tools"},
		{name: "delete_project", expected: "Project Tools"},
		{name: "get_task", expected: "Task Tools"},
		{name: "create_task", expected: "Task Tools"},
		{name: "update_task", expected: "Task Tools"},
		{name: "complete_task", expected: "Task Tools"},
		{name: "delete_task", expected: "Task Tools"},
		{name: "get_tasks", expected: "Query Tools"},
		{name: "search_tasks", expected: "Query Tools"},
		{name: "something_else", expected: "Other"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := getCategoryFromToolName(tt.name); got != tt.expected {
				t.Errorf("getCategoryFromToolName(%q) = %q, want %q", tt.name, got, tt.expected)
			}
		})
	}
}

func TestGenerateToolMarkdown(t *testing.T) {
	tool := mcp.NewTool("get_task",
		mcp.WithDescription("Get details about a specific task"),
		mcp.WithString("project_id",
			mcp.Required(),
			mcp.Description("ID of the project"),
		),
		mcp.WithString("task_id",
			mcp.Required(),
			mcp.Description("ID of the task"),
		),
	)

	markdown := generateToolMarkdown(tool)

	for _, want := range []string{
		"### get_task",
		"Get details about a specific task",
		"`project_id` (required)",
		"`task_id` (required)",
	} {
		if !strings.Contains(markdown, want) {
			t.Errorf("generateToolMarkdown() missing %q in:\n%s", want, markdown)
		}
	}
}

// registerTestTools registers the full tool set without stored
// credentials and returns the registered tool names.
func registerTestTools(t *testing.T, readOnly bool) map[string]bool {
	t.Helper()
	t.Setenv(ticktick.EnvAccessToken, "")
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	serverContext, err := server.NewServerContext(context.Background())
	if err != nil {
		t.Fatalf("Failed to create server context: %v", err)
	}
	t.Cleanup(func() { _ = serverContext.Shutdown() })

	mcpSrv := mcpserver.NewMCPServer("test-server", "1.0.0",
		mcpserver.WithToolCapabilities(true),
	)
	if err := ticktick_tools.RegisterTickTickTools(mcpSrv, serverContext, readOnly); err != nil {
		t.Fatalf("Failed to register tools: %v", err)
	}

	names := make(map[string]bool)
	for _, serverTool := range mcpSrv.ListTools() {
		names[serverTool.Tool.Name] = true
	}
	return names
}

func TestToolRegistrationReadOnlyMode(t *testing.T) {
	names := registerTestTools(t, true)

	for _, want := range []string{"get_projects", "get_project", "get_task", "get_tasks", "search_tasks"} {
		if !names[want] {
			t.Errorf("read-only mode missing tool %q", want)
		}
	}
	for _, unwanted := range []string{"create_project", "delete_project", "create_task", "update_task", "complete_task", "delete_task"} {
		if names[unwanted] {
			t.Errorf("read-only mode registered write tool %q", unwanted)
		}
	}
}

func TestToolRegistrationWriteMode(t *testing.T) {
	names := registerTestTools(t, false)

	for _, want := range []string{
		"get_projects", "get_project", "create_project", "delete_project",
		"get_task", "create_task", "update_task", "complete_task", "delete_task",
		"get_tasks", "search_tasks",
	} {
		if !names[want] {
			t.Errorf("write mode missing tool %q", want)
		}
	}
}

func TestGenerateToolsMarkdownStructure(t *testing.T) {
	tools := []mcp.Tool{
		mcp.NewTool("get_projects", mcp.WithDescription("Get all projects from TickTick, including the inbox")),
		mcp.NewTool("get_task", mcp.WithDescription("Get details about a specific task")),
		mcp.NewTool("search_tasks", mcp.WithDescription("Search tasks by keyword across projects")),
	}

	markdown := generateToolsMarkdown(tools)

	for _, want := range []string{
		"# MCP Tools Reference",
		"## Table of Contents",
		"## Project Tools",
		"## Task Tools",
		"## Query Tools",
		"### get_projects",
		"### get_task",
		"### search_tasks",
	} {
		if !strings.Contains(markdown, want) {
			t.Errorf("generateToolsMarkdown() missing %q", want)
		}
	}
}
