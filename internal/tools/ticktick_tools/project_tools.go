package ticktick_tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"ticktick-mcp/internal/server"
	"ticktick-mcp/internal/ticktick"
	"ticktick-mcp/internal/tools/common"
)

// registerProjectTools registers project management tools.
func registerProjectTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	// Get projects tool (read-only, always available)
	getProjectsTool := mcp.NewTool("get_projects",
		mcp.WithDescription("Get all projects from TickTick, including the inbox"),
	)

	s.AddTool(getProjectsTool, common.InstrumentedToolHandlerWithOperation("get_projects", "list_projects", sc, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		client, ok := getClient(sc)
		if !ok {
			return mcp.NewToolResultError(msgClientInit), nil
		}

		projects, err := client.ListProjects(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Error fetching projects: %v", err)), nil
		}

		// The upstream listing omits the inbox
		projects = ticktick.EnsureInboxProject(projects)

		if len(projects) == 0 {
			return mcp.NewToolResultText("No projects found."), nil
		}

		result := fmt.Sprintf("Found %d projects:\n\n", len(projects))
		for i, project := range projects {
			result += fmt.Sprintf("Project %d:\n", i+1) + ticktick.FormatProject(project) + "\n"
		}

		return mcp.NewToolResultText(result), nil
	}))

	// Get project tool
	getProjectTool := mcp.NewTool("get_project",
		mcp.WithDescription("Get details about a specific project"),
		mcp.WithString("project_id",
			mcp.Required(),
			mcp.Description("ID of the project"),
		),
	)

	s.AddTool(getProjectTool, common.InstrumentedToolHandlerWithOperation("get_project", "get_project", sc, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()

		projectID := stringArg(args, "project_id")
		if projectID == "" {
			return mcp.NewToolResultError("project_id is required"), nil
		}

		client, ok := getClient(sc)
		if !ok {
			return mcp.NewToolResultError(msgClientInit), nil
		}

		project, err := client.GetProject(ctx, projectID)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Error fetching project: %v", err)), nil
		}

		return mcp.NewToolResultText(ticktick.FormatProject(*project)), nil
	}))

	// Register create/delete project tools only if not in read-only mode
	if !readOnly {
		// Create project tool
		createProjectTool := mcp.NewTool("create_project",
			mcp.WithDescription("Create a new project in TickTick"),
			mcp.WithString("name",
				mcp.Required(),
				mcp.Description("Project name"),
			),
			mcp.WithString("color",
				mcp.Description("Color code in hex format (default: '#F18181')"),
			),
			mcp.WithString("view_mode",
				mcp.Description("View mode, one of list, kanban, or timeline (default: 'list')"),
			),
		)

		s.AddTool(createProjectTool, common.InstrumentedToolHandlerWithOperation("create_project", "create_project", sc, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()

			name := stringArg(args, "name")
			if name == "" {
				return mcp.NewToolResultError("name is required"), nil
			}

			color := stringArg(args, "color")
			if color == "" {
				color = "#F18181"
			}

			viewMode := stringArg(args, "view_mode")
			if viewMode == "" {
				viewMode = "list"
			}
			if viewMode != "list" && viewMode != "kanban" && viewMode != "timeline" {
				return mcp.NewToolResultError("Invalid view_mode. Must be one of: list, kanban, timeline."), nil
			}

			client, ok := getClient(sc)
			if !ok {
				return mcp.NewToolResultError(msgClientInit), nil
			}

			project, err := client.CreateProject(ctx, name, color, viewMode)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Error creating project: %v", err)), nil
			}

			return mcp.NewToolResultText("Project created successfully:\n\n" + ticktick.FormatProject(*project)), nil
		}))

		// Delete project tool
		deleteProjectTool := mcp.NewTool("delete_project",
			mcp.WithDescription("Delete a project"),
			mcp.WithString("project_id",
				mcp.Required(),
				mcp.Description("ID of the project"),
			),
		)

		s.AddTool(deleteProjectTool, common.InstrumentedToolHandlerWithOperation("delete_project", "delete_project", sc, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()

			projectID := stringArg(args, "project_id")
			if projectID == "" {
				return mcp.NewToolResultError("project_id is required"), nil
			}

			client, ok := getClient(sc)
			if !ok {
				return mcp.NewToolResultError(msgClientInit), nil
			}

			if err := client.DeleteProject(ctx, projectID); err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Error deleting project: %v", err)), nil
			}

			return mcp.NewToolResultText(fmt.Sprintf("Project %s deleted successfully.", projectID)), nil
		}))
	}

	return nil
}
