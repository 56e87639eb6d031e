// Package ticktick_tools provides MCP tools for managing TickTick
// projects and tasks.
//
// This package implements MCP (Model Context Protocol) tools that wrap
// the TickTick Open API client, exposing project and task management
// capabilities for AI assistants.
//
// # Available Tools
//
// Project Management:
//   - get_projects: List all projects, including the inbox
//   - get_project: Get details of a specific project
//   - create_project: Create a new project
//   - delete_project: Delete a project
//
// Task Management:
//   - get_task: Get details of a specific task
//   - create_task: Create a new task
//   - update_task: Update a task
//   - complete_task: Mark a task as complete
//   - delete_task: Delete a task
//
// Queries:
//   - get_tasks: List tasks across projects with optional filters
//   - search_tasks: Search tasks by keyword
//
// # Read-Only Mode
//
// By default only read-only tools are registered. Mutating tools
// (create/update/complete/delete) require the server to be started
// with the --yolo flag.
//
// # Authentication
//
// The TickTick client resolves its access token from the
// TICKTICK_ACCESS_TOKEN environment variable or the stored token file
// written by the auth command. Without credentials every tool returns
// a fixed error message asking the user to check their setup.
package ticktick_tools
