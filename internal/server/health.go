package server

import (
	"encoding/json"
	"net/http"
	"sync/atomic"
	"time"
)

// Health states reported by the probe endpoints.
const (
	healthStatusOK            = "ok"
	healthStatusNotReady      = "not ready"
	healthStatusShuttingDown  = "shutting down"
	healthStatusNoCredentials = "no credentials"
)

// HealthChecker serves the Kubernetes-style probe endpoints of the HTTP
// transport. Liveness only proves the process is up; readiness tracks
// the serve lifecycle, and both the readiness and detailed views report
// whether a TickTick client is available. Missing credentials never
// fail a probe: the server deliberately starts unauthenticated and the
// tools answer with setup instructions until the auth flow has run.
type HealthChecker struct {
	ready         atomic.Bool
	serverContext *ServerContext
	startTime     time.Time
}

// NewHealthChecker returns a checker that reports ready until the
// shutdown sequence flips it off.
func NewHealthChecker(sc *ServerContext) *HealthChecker {
	h := &HealthChecker{
		serverContext: sc,
		startTime:     time.Now(),
	}
	h.ready.Store(true)
	return h
}

// SetReady flips the readiness state. The serve command sets it to
// false when graceful shutdown begins so load balancers drain first.
func (h *HealthChecker) SetReady(ready bool) {
	h.ready.Store(ready)
}

// IsReady reports the current readiness state.
func (h *HealthChecker) IsReady() bool {
	return h.ready.Load()
}

func (h *HealthChecker) shuttingDown() bool {
	return h.serverContext != nil && h.serverContext.IsShutdown()
}

// ticktickStatus describes whether tool calls could reach the TickTick
// API right now.
func (h *HealthChecker) ticktickStatus() string {
	if h.serverContext == nil || !h.serverContext.HasTickTickClient() {
		return healthStatusNoCredentials
	}
	return healthStatusOK
}

// HealthResponse is the JSON body of the liveness and readiness probes.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// DetailedHealthResponse is the JSON body of /healthz/detailed.
type DetailedHealthResponse struct {
	Status   string `json:"status"`
	TickTick string `json:"ticktick"`
	Uptime   string `json:"uptime"`
}

// LivenessHandler answers /healthz. It only proves the process can
// serve HTTP; restart decisions must not depend on TickTick state.
func (h *HealthChecker) LivenessHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeHealthJSON(w, http.StatusOK, HealthResponse{Status: healthStatusOK})
	})
}

// ReadinessHandler answers /readyz. The ticktick check is informational
// only: an unauthenticated server still serves every tool call, so lack
// of credentials must not take it out of rotation.
func (h *HealthChecker) ReadinessHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		checks := map[string]string{
			"ready":    healthStatusOK,
			"shutdown": healthStatusOK,
			"ticktick": h.ticktickStatus(),
		}

		status := healthStatusOK
		if !h.ready.Load() {
			checks["ready"] = healthStatusNotReady
			status = healthStatusNotReady
		}
		if h.shuttingDown() {
			checks["shutdown"] = healthStatusShuttingDown
			status = healthStatusNotReady
		}

		code := http.StatusOK
		if status != healthStatusOK {
			code = http.StatusServiceUnavailable
		}
		writeHealthJSON(w, code, HealthResponse{Status: status, Checks: checks})
	})
}

// DetailedHealthHandler answers /healthz/detailed with uptime and the
// TickTick credential state alongside the overall status.
func (h *HealthChecker) DetailedHealthHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		response := DetailedHealthResponse{
			Status:   healthStatusOK,
			TickTick: h.ticktickStatus(),
			Uptime:   time.Since(h.startTime).Truncate(time.Second).String(),
		}

		code := http.StatusOK
		switch {
		case h.shuttingDown():
			response.Status = healthStatusShuttingDown
			code = http.StatusServiceUnavailable
		case !h.ready.Load():
			response.Status = healthStatusNotReady
			code = http.StatusServiceUnavailable
		}
		writeHealthJSON(w, code, response)
	})
}

// RegisterHealthEndpoints mounts the probe handlers on mux.
func (h *HealthChecker) RegisterHealthEndpoints(mux *http.ServeMux) {
	mux.Handle("/healthz", h.LivenessHandler())
	mux.Handle("/readyz", h.ReadinessHandler())
	mux.Handle("/healthz/detailed", h.DetailedHealthHandler())
}

func writeHealthJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
