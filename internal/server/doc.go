// Package server provides the MCP server context and supporting HTTP
// servers for the ticktick-mcp application.
//
// # Key Components
//
// ServerContext manages the TickTick API client with lazy initialization
// and caching. The client is created on first use once credentials are
// available, so the server can start before the user has authenticated.
// ServerContext also carries the optional metrics recorder and audit
// logger used by the instrumented tool handlers.
//
// HealthChecker exposes Kubernetes-style probe endpoints (/healthz,
// /readyz, /healthz/detailed) for the streamable-http transport.
//
// MetricsServer serves Prometheus metrics on a dedicated port, keeping
// operational metrics off the main application listener.
package server
