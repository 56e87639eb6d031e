package ticktick_tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"ticktick-mcp/internal/query"
	"ticktick-mcp/internal/server"
	"ticktick-mcp/internal/tools/common"
)

// registerQueryTools registers the cross-project listing and search
// tools. Both are read-only and available in every mode.
func registerQueryTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	// Get tasks tool
	getTasksTool := mcp.NewTool("get_tasks",
		mcp.WithDescription("Get tasks from TickTick, optionally filtered by project, due date, status, or tags"),
		mcp.WithString("project_id",
			mcp.Description("Restrict to a single project (optional; use 'inbox' for the inbox)"),
		),
		mcp.WithBoolean("overdue_only",
			mcp.Description("Only return tasks whose due date has passed (optional)"),
		),
		mcp.WithBoolean("due_in_next_7_days",
			mcp.Description("Only return tasks due within the next seven days (optional)"),
		),
		mcp.WithString("status",
			mcp.Description("Filter by status: 'active' or 'completed' (optional; default is both)"),
		),
		mcp.WithArray("tags",
			mcp.Description("Only return tasks carrying at least one of these tags (optional)"),
			mcp.Items(map[string]any{"type": "string"}),
		),
	)

	s.AddTool(getTasksTool, common.InstrumentedToolHandlerWithOperation("get_tasks", "get_tasks", sc, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()

		client, ok := getClient(sc)
		if !ok {
			return mcp.NewToolResultError(msgClientInit), nil
		}

		projectID := stringArg(args, "project_id")

		status := strings.ToLower(stringArg(args, "status"))
		if status != query.StatusAny && status != query.StatusActive && status != query.StatusCompleted {
			return mcp.NewToolResultError("Invalid status. Must be 'active' or 'completed'."), nil
		}

		tasks, err := query.Collect(ctx, client, projectID, nil)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Error getting projects for task retrieval: %v", err)), nil
		}
		if len(tasks) == 0 {
			return mcp.NewToolResultText(noTasksMessage(projectID)), nil
		}

		filter := query.Filter{
			Status:         status,
			OverdueOnly:    boolArg(args, "overdue_only"),
			DueInNext7Days: boolArg(args, "due_in_next_7_days"),
			Tags:           stringSliceArg(args, "tags"),
		}
		tasks = filter.Apply(tasks)
		if len(tasks) == 0 {
			return mcp.NewToolResultText(noTasksMessage(projectID)), nil
		}

		return mcp.NewToolResultText(taskReport(tasks)), nil
	}))

	// Search tasks tool
	searchTasksTool := mcp.NewTool("search_tasks",
		mcp.WithDescription("Search tasks by keyword across projects"),
		mcp.WithArray("keywords",
			mcp.Required(),
			mcp.Description("Keywords to match against task titles and content (case-insensitive; a task matches if any keyword matches)"),
			mcp.Items(map[string]any{"type": "string"}),
		),
		mcp.WithString("project_id",
			mcp.Description("Restrict to a single project (optional; use 'inbox' for the inbox)"),
		),
		mcp.WithArray("tags",
			mcp.Description("Only return tasks carrying at least one of these tags (optional)"),
			mcp.Items(map[string]any{"type": "string"}),
		),
		mcp.WithString("status",
			mcp.Description("Filter by status: 'active' or 'completed' (optional; default is 'active')"),
		),
	)

	s.AddTool(searchTasksTool, common.InstrumentedToolHandlerWithOperation("search_tasks", "search_tasks", sc, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()

		// An empty keyword list matches everything; the filter treats it
		// as a no-op stage.
		keywords := stringSliceArg(args, "keywords")

		client, ok := getClient(sc)
		if !ok {
			return mcp.NewToolResultError(msgClientInit), nil
		}

		// Search defaults to active tasks; completed ones are opt-in.
		status := strings.ToLower(stringArg(args, "status"))
		if status == query.StatusAny {
			status = query.StatusActive
		}
		if status != query.StatusActive && status != query.StatusCompleted {
			return mcp.NewToolResultError("Invalid status. Must be 'active' or 'completed'."), nil
		}

		tasks, err := query.Collect(ctx, client, stringArg(args, "project_id"), nil)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Error getting projects for task search: %v", err)), nil
		}

		filter := query.Filter{
			Status:   status,
			Tags:     stringSliceArg(args, "tags"),
			Keywords: keywords,
		}
		tasks = filter.Apply(tasks)
		if len(tasks) == 0 {
			return mcp.NewToolResultText("No tasks found matching the provided keywords."), nil
		}

		return mcp.NewToolResultText(taskReport(tasks)), nil
	}))

	return nil
}

func noTasksMessage(projectID string) string {
	if projectID != "" {
		return fmt.Sprintf("No tasks found in project '%s'.", projectID)
	}
	return "No tasks found."
}
