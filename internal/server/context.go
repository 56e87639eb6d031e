package server

import (
	"context"
	"log/slog"
	"sync"

	"ticktick-mcp/internal/instrumentation"
	"ticktick-mcp/internal/logging"
	"ticktick-mcp/internal/ticktick"
)

// ServerContext holds the shared state for the MCP server: the TickTick
// client plus optional instrumentation hooks.
type ServerContext struct {
	ctx         context.Context
	cancel      context.CancelFunc
	client      *ticktick.Client
	metrics     *instrumentation.Metrics
	auditLogger *instrumentation.AuditLogger
	mu          sync.RWMutex
	shutdown    bool
}

// NewServerContext creates a new server context.
// The TickTick client is created eagerly when a token is available,
// otherwise lazily on first use so that the server can start before
// the user has authenticated.
func NewServerContext(ctx context.Context) (*ServerContext, error) {
	shutdownCtx, cancel := context.WithCancel(ctx)

	sc := &ServerContext{
		ctx:    shutdownCtx,
		cancel: cancel,
	}

	if ticktick.HasToken() {
		client, err := ticktick.NewClient(shutdownCtx, ticktick.Config{})
		if err != nil {
			// Re-attempted on first use
			slog.Warn("failed to create TickTick client at startup", logging.Err(err))
		} else {
			sc.client = client
		}
	}

	return sc, nil
}

// Context returns the server context.
func (sc *ServerContext) Context() context.Context {
	return sc.ctx
}

// TickTickClient returns the TickTick API client.
// Creates and caches the client on first use when a token is available.
// Returns nil when no credentials can be resolved; tool handlers turn
// that into a fixed error message.
func (sc *ServerContext) TickTickClient() *ticktick.Client {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.client != nil {
		return sc.client
	}

	if !ticktick.HasToken() {
		return nil
	}

	client, err := ticktick.NewClient(sc.ctx, ticktick.Config{})
	if err != nil {
		slog.Warn("failed to create TickTick client", logging.Err(err))
		return nil
	}

	sc.client = client
	return client
}

// HasTickTickClient reports whether tool calls could reach the TickTick
// API right now: either a client is already cached or credentials are
// available to build one. Unlike TickTickClient it never constructs a
// client, so health probes can call it freely.
func (sc *ServerContext) HasTickTickClient() bool {
	sc.mu.RLock()
	cached := sc.client != nil
	sc.mu.RUnlock()
	return cached || ticktick.HasToken()
}

// SetTickTickClient sets the TickTick client. Used by tests and by the
// serve command when the client is constructed with explicit options.
func (sc *ServerContext) SetTickTickClient(client *ticktick.Client) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.client = client
}

// Metrics returns the metrics recorder, or nil when instrumentation is
// not configured.
func (sc *ServerContext) Metrics() *instrumentation.Metrics {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.metrics
}

// SetMetrics sets the metrics recorder.
func (sc *ServerContext) SetMetrics(metrics *instrumentation.Metrics) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.metrics = metrics
}

// AuditLogger returns the audit logger, or nil when not configured.
func (sc *ServerContext) AuditLogger() *instrumentation.AuditLogger {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.auditLogger
}

// SetAuditLogger sets the audit logger.
func (sc *ServerContext) SetAuditLogger(logger *instrumentation.AuditLogger) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.auditLogger = logger
}

// IsShutdown returns whether the server has been shutdown.
func (sc *ServerContext) IsShutdown() bool {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.shutdown
}

// Shutdown shuts down the server context.
func (sc *ServerContext) Shutdown() error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.shutdown {
		return nil
	}

	sc.shutdown = true
	sc.cancel()
	return nil
}
