package common

import (
	"context"
	"errors"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"ticktick-mcp/internal/instrumentation"
	"ticktick-mcp/internal/server"
)

func newTestServerContext(t *testing.T) *server.ServerContext {
	t.Helper()
	t.Setenv("TICKTICK_ACCESS_TOKEN", "")
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	sc, err := server.NewServerContext(context.Background())
	if err != nil {
		t.Fatalf("NewServerContext() error = %v", err)
	}
	t.Cleanup(func() { _ = sc.Shutdown() })
	return sc
}

func callRequest(args map[string]interface{}) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

func TestInstrumentedToolHandler_PassesThroughWithoutInstrumentation(t *testing.T) {
	sc := newTestServerContext(t)

	called := false
	handler := InstrumentedToolHandler("test_tool", sc, func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		called = true
		return mcp.NewToolResultText("ok"), nil
	})

	result, err := handler(context.Background(), callRequest(nil))
	if err != nil {
		t.Fatalf("handler error = %v", err)
	}
	if !called {
		t.Error("expected wrapped handler to be called")
	}
	if result == nil || result.IsError {
		t.Error("expected successful result")
	}
}

func TestInstrumentedToolHandler_RecordsWithInstrumentation(t *testing.T) {
	sc := newTestServerContext(t)
	sc.SetAuditLogger(instrumentation.NewAuditLogger(nil))

	handler := InstrumentedToolHandler("test_tool", sc, func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return mcp.NewToolResultError("upstream failed"), nil
	})

	result, err := handler(context.Background(), callRequest(map[string]interface{}{
		"project_id": "project-1",
		"task_id":    "task-1",
	}))
	if err != nil {
		t.Fatalf("handler error = %v", err)
	}
	if result == nil || !result.IsError {
		t.Error("expected error result to pass through")
	}
}

func TestInstrumentedToolHandlerWithOperation_PropagatesError(t *testing.T) {
	sc := newTestServerContext(t)
	sc.SetAuditLogger(instrumentation.NewAuditLogger(nil))

	wantErr := errors.New("boom")
	handler := InstrumentedToolHandlerWithOperation("create_task", "create", sc, func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return nil, wantErr
	})

	_, err := handler(context.Background(), callRequest(nil))
	if !errors.Is(err, wantErr) {
		t.Errorf("expected wrapped error to propagate, got %v", err)
	}
}

func TestStringArg(t *testing.T) {
	args := map[string]interface{}{
		"project_id": "project-1",
		"count":      3,
	}

	if got := stringArg(args, "project_id"); got != "project-1" {
		t.Errorf("stringArg(project_id) = %q", got)
	}
	if got := stringArg(args, "count"); got != "" {
		t.Errorf("stringArg(count) = %q, want empty", got)
	}
	if got := stringArg(args, "missing"); got != "" {
		t.Errorf("stringArg(missing) = %q, want empty", got)
	}
	if got := stringArg(nil, "x"); got != "" {
		t.Errorf("stringArg(nil) = %q, want empty", got)
	}
}
