// Package ticktick provides a client for the TickTick Open API.
//
// This package wraps the TickTick REST API (open/v1) and provides functionality for:
//   - Managing projects (list, get, create, delete)
//   - Managing tasks (get, create, update, complete, delete)
//   - Fetching a project's full data set (project, tasks, kanban columns)
//   - Formatting tasks and projects as human-readable text blocks
//
// # Authentication
//
// The client authenticates with an OAuth2 bearer token. The token is
// resolved from the TICKTICK_ACCESS_TOKEN environment variable or from
// the token file written by the 'auth' command
// (<UserConfigDir>/ticktick-mcp/token.json). Tokens are never refreshed
// mid-request; when the token is missing or expired the caller gets an
// error and the tool surface reports a fixed instructional message.
//
// # Example Usage
//
//	client, err := ticktick.NewClient(ctx, ticktick.Config{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	projects, err := client.ListProjects(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	task, err := client.CreateTask(ctx, ticktick.TaskInput{
//	    Title:     "Write weekly report",
//	    ProjectID: projects[0].ID,
//	    DueDate:   "2025-10-15T04:00:00+0000",
//	})
package ticktick
