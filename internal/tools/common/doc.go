// Package common provides shared helpers for MCP tool registration,
// currently the instrumented handler wrappers that record metrics and
// audit logs around tool invocations.
package common
