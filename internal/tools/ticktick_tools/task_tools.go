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

// registerTaskTools registers single-task tools.
func registerTaskTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	// Get task tool (read-only, always available)
	getTaskTool := mcp.NewTool("get_task",
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

	s.AddTool(getTaskTool, common.InstrumentedToolHandlerWithOperation("get_task", "get_task", sc, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()

		projectID := stringArg(args, "project_id")
		if projectID == "" {
			return mcp.NewToolResultError("project_id is required"), nil
		}
		taskID := stringArg(args, "task_id")
		if taskID == "" {
			return mcp.NewToolResultError("task_id is required"), nil
		}

		client, ok := getClient(sc)
		if !ok {
			return mcp.NewToolResultError(msgClientInit), nil
		}

		task, err := client.GetTask(ctx, projectID, taskID)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Error fetching task: %v", err)), nil
		}
		task.URL = ticktick.TaskURL(projectID, task.ID)

		return mcp.NewToolResultText(ticktick.FormatTaskDetail(*task)), nil
	}))

	// Register mutating task tools only if not in read-only mode
	if !readOnly {
		if err := registerMutatingTaskTools(s, sc); err != nil {
			return err
		}
	}

	return nil
}

// registerMutatingTaskTools registers the create/update/complete/delete
// task tools.
func registerMutatingTaskTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	// Create task tool
	createTaskTool := mcp.NewTool("create_task",
		mcp.WithDescription("Create a new task in TickTick"),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Task title"),
		),
		mcp.WithString("project_id",
			mcp.Required(),
			mcp.Description("ID of the project to add the task to"),
		),
		mcp.WithString("content",
			mcp.Description("Task description/content (optional)"),
		),
		mcp.WithString("start_date",
			mcp.Description("Start date in ISO 8601 format (e.g. 2025-10-15T04:00:00Z). Plain dates (YYYY-MM-DD) are normalized to midnight UTC."),
		),
		mcp.WithString("due_date",
			mcp.Description("Due date in ISO 8601 format (e.g. 2025-10-15T04:00:00Z). Plain dates (YYYY-MM-DD) are normalized to midnight UTC."),
		),
		mcp.WithNumber("priority",
			mcp.Description("Priority level (0: None, 1: Low, 3: Medium, 5: High) (optional)"),
		),
	)

	s.AddTool(createTaskTool, common.InstrumentedToolHandlerWithOperation("create_task", "create_task", sc, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()

		title := stringArg(args, "title")
		if title == "" {
			return mcp.NewToolResultError("title is required"), nil
		}
		projectID := stringArg(args, "project_id")
		if projectID == "" {
			return mcp.NewToolResultError("project_id is required"), nil
		}

		client, ok := getClient(sc)
		if !ok {
			return mcp.NewToolResultError(msgClientInit), nil
		}

		priority := ticktick.PriorityNone
		if value, present := intArg(args, "priority"); present {
			priority = ticktick.Priority(value)
			if !priority.Valid() {
				return mcp.NewToolResultError("Invalid priority. Must be 0 (None), 1 (Low), 3 (Medium), or 5 (High)."), nil
			}
		}

		input := ticktick.TaskInput{
			Title:     title,
			ProjectID: projectID,
			Content:   stringArg(args, "content"),
			Priority:  &priority,
		}

		if startDate := stringArg(args, "start_date"); startDate != "" {
			normalized, ok := normalizeDate(startDate)
			if !ok {
				return mcp.NewToolResultError("Invalid start_date format. Use ISO format: YYYY-MM-DDThh:mm:ss+0000"), nil
			}
			input.StartDate = normalized
		}
		if dueDate := stringArg(args, "due_date"); dueDate != "" {
			normalized, ok := normalizeDate(dueDate)
			if !ok {
				return mcp.NewToolResultError("Invalid due_date format. Use ISO format: YYYY-MM-DDThh:mm:ss+0000"), nil
			}
			input.DueDate = normalized
		}

		task, err := client.CreateTask(ctx, input)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Error creating task: %v", err)), nil
		}
		task.URL = ticktick.TaskURL(projectID, task.ID)

		return mcp.NewToolResultText("Task created successfully:\n\n" + ticktick.FormatTask(*task)), nil
	}))

	// Update task tool
	updateTaskTool := mcp.NewTool("update_task",
		mcp.WithDescription("Update an existing task in TickTick"),
		mcp.WithString("task_id",
			mcp.Required(),
			mcp.Description("ID of the task to update"),
		),
		mcp.WithString("project_id",
			mcp.Required(),
			mcp.Description("ID of the project the task belongs to"),
		),
		mcp.WithString("title",
			mcp.Description("New task title (optional)"),
		),
		mcp.WithString("content",
			mcp.Description("New task description/content (optional)"),
		),
		mcp.WithString("start_date",
			mcp.Description("New start date in ISO 8601 format (e.g. 2025-10-15T04:00:00Z). Plain dates (YYYY-MM-DD) are normalized to midnight UTC."),
		),
		mcp.WithString("due_date",
			mcp.Description("New due date in ISO 8601 format (e.g. 2025-10-15T04:00:00Z). Plain dates (YYYY-MM-DD) are normalized to midnight UTC."),
		),
		mcp.WithNumber("priority",
			mcp.Description("New priority level (0: None, 1: Low, 3: Medium, 5: High) (optional)"),
		),
	)

	s.AddTool(updateTaskTool, common.InstrumentedToolHandlerWithOperation("update_task", "update_task", sc, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()

		taskID := stringArg(args, "task_id")
		if taskID == "" {
			return mcp.NewToolResultError("task_id is required"), nil
		}
		projectID := stringArg(args, "project_id")
		if projectID == "" {
			return mcp.NewToolResultError("project_id is required"), nil
		}

		client, ok := getClient(sc)
		if !ok {
			return mcp.NewToolResultError(msgClientInit), nil
		}

		input := ticktick.TaskInput{
			Title:     stringArg(args, "title"),
			ProjectID: projectID,
			Content:   stringArg(args, "content"),
		}

		if value, present := intArg(args, "priority"); present {
			priority := ticktick.Priority(value)
			if !priority.Valid() {
				return mcp.NewToolResultError("Invalid priority. Must be 0 (None), 1 (Low), 3 (Medium), or 5 (High)."), nil
			}
			input.Priority = &priority
		}

		if startDate := stringArg(args, "start_date"); startDate != "" {
			normalized, ok := normalizeDate(startDate)
			if !ok {
				return mcp.NewToolResultError("Invalid start_date format. Use ISO format: YYYY-MM-DDThh:mm:ss+0000"), nil
			}
			input.StartDate = normalized
		}
		if dueDate := stringArg(args, "due_date"); dueDate != "" {
			normalized, ok := normalizeDate(dueDate)
			if !ok {
				return mcp.NewToolResultError("Invalid due_date format. Use ISO format: YYYY-MM-DDThh:mm:ss+0000"), nil
			}
			input.DueDate = normalized
		}

		task, err := client.UpdateTask(ctx, taskID, input)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Error updating task: %v", err)), nil
		}
		task.URL = ticktick.TaskURL(projectID, task.ID)

		return mcp.NewToolResultText("Task updated successfully:\n\n" + ticktick.FormatTask(*task)), nil
	}))

	// Complete task tool
	completeTaskTool := mcp.NewTool("complete_task",
		mcp.WithDescription("Mark a task as complete"),
		mcp.WithString("project_id",
			mcp.Required(),
			mcp.Description("ID of the project"),
		),
		mcp.WithString("task_id",
			mcp.Required(),
			mcp.Description("ID of the task"),
		),
	)

	s.AddTool(completeTaskTool, common.InstrumentedToolHandlerWithOperation("complete_task", "complete_task", sc, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()

		projectID := stringArg(args, "project_id")
		if projectID == "" {
			return mcp.NewToolResultError("project_id is required"), nil
		}
		taskID := stringArg(args, "task_id")
		if taskID == "" {
			return mcp.NewToolResultError("task_id is required"), nil
		}

		client, ok := getClient(sc)
		if !ok {
			return mcp.NewToolResultError(msgClientInit), nil
		}

		if err := client.CompleteTask(ctx, projectID, taskID); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Error completing task: %v", err)), nil
		}

		return mcp.NewToolResultText(fmt.Sprintf("Task %s marked as complete.", taskID)), nil
	}))

	// Delete task tool
	deleteTaskTool := mcp.NewTool("delete_task",
		mcp.WithDescription("Delete a task"),
		mcp.WithString("project_id",
			mcp.Required(),
			mcp.Description("ID of the project"),
		),
		mcp.WithString("task_id",
			mcp.Required(),
			mcp.Description("ID of the task"),
		),
	)

	s.AddTool(deleteTaskTool, common.InstrumentedToolHandlerWithOperation("delete_task", "delete_task", sc, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()

		projectID := stringArg(args, "project_id")
		if projectID == "" {
			return mcp.NewToolResultError("project_id is required"), nil
		}
		taskID := stringArg(args, "task_id")
		if taskID == "" {
			return mcp.NewToolResultError("task_id is required"), nil
		}

		client, ok := getClient(sc)
		if !ok {
			return mcp.NewToolResultError(msgClientInit), nil
		}

		if err := client.DeleteTask(ctx, projectID, taskID); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Error deleting task: %v", err)), nil
		}

		return mcp.NewToolResultText(fmt.Sprintf("Task %s deleted successfully.", taskID)), nil
	}))

	return nil
}
