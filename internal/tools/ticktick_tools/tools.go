package ticktick_tools

import (
	"fmt"
	"strings"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"ticktick-mcp/internal/server"
	"ticktick-mcp/internal/ticktick"
)

// msgClientInit is returned by every tool when no API client can be
// constructed (missing or unreadable credentials).
const msgClientInit = "Failed to initialize TickTick client. Please check your API credentials."

// RegisterTickTickTools registers all TickTick tools with the MCP server.
// Mutating tools (create/update/complete/delete) are only registered
// when readOnly is false.
func RegisterTickTickTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	if err := registerProjectTools(s, sc, readOnly); err != nil {
		return fmt.Errorf("failed to register project tools: %w", err)
	}

	if err := registerTaskTools(s, sc, readOnly); err != nil {
		return fmt.Errorf("failed to register task tools: %w", err)
	}

	if err := registerQueryTools(s, sc); err != nil {
		return fmt.Errorf("failed to register query tools: %w", err)
	}

	return nil
}

// getClient returns the TickTick client from the server context.
// The boolean is false when no client is available; callers return
// msgClientInit in that case.
func getClient(sc *server.ServerContext) (*ticktick.Client, bool) {
	client := sc.TickTickClient()
	if client == nil {
		return nil, false
	}
	return client, true
}

// stringArg returns the string value of an argument, or "" when absent
// or of a different type.
func stringArg(args map[string]interface{}, key string) string {
	if value, ok := args[key].(string); ok {
		return value
	}
	return ""
}

// boolArg returns the boolean value of an argument, defaulting to false.
func boolArg(args map[string]interface{}, key string) bool {
	if value, ok := args[key].(bool); ok {
		return value
	}
	return false
}

// intArg returns the integer value of an argument and whether it was
// present. JSON numbers arrive as float64.
func intArg(args map[string]interface{}, key string) (int, bool) {
	switch value := args[key].(type) {
	case float64:
		return int(value), true
	case int:
		return value, true
	default:
		return 0, false
	}
}

// stringSliceArg returns a string-array argument. A single string is
// accepted as a one-element slice; anything else yields nil.
func stringSliceArg(args map[string]interface{}, key string) []string {
	switch value := args[key].(type) {
	case []interface{}:
		out := make([]string, 0, len(value))
		for _, item := range value {
			if s, ok := item.(string); ok && s != "" {
				out = append(out, s)
			}
		}
		if len(out) == 0 {
			return nil
		}
		return out
	case []string:
		if len(value) == 0 {
			return nil
		}
		return value
	case string:
		if value == "" {
			return nil
		}
		return []string{value}
	default:
		return nil
	}
}

// normalizeDate normalizes and validates a date argument. The boolean
// is false when the date cannot be parsed.
func normalizeDate(value string) (string, bool) {
	normalized := ticktick.NormalizeDateInput(value)
	if _, err := ticktick.ParseTime(normalized); err != nil {
		return "", false
	}
	return normalized, true
}

// taskReport renders the shared "Found tasks" report: task blocks
// joined by a separator line.
func taskReport(tasks []ticktick.Task) string {
	blocks := make([]string, 0, len(tasks))
	for _, t := range tasks {
		blocks = append(blocks, ticktick.FormatTask(t))
	}
	return "Found tasks:\n\n" + strings.Join(blocks, "\n---\n")
}
