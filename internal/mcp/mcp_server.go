// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/devpulse/devpulse/core"
	"github.com/devpulse/devpulse/internal/contract"
	"github.com/devpulse/devpulse/schema"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the DevPulse MCP server without
// starting it. This is exposed for unit testing.
func NewMCPServer(engine *core.Engine, store contract.EventStore) *server.MCPServer {
	s := server.NewMCPServer(
		"DevPulse Metrics Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		engine: engine,
		store:  store,
	}

	// --- 1. Tool: compute_metric ---
	s.AddTool(mcp.NewTool("compute_metric",
		mcp.WithDescription("Compute one productivity metric over a time window, normalized as a z-score against the full historical baseline."),
		mcp.WithString("metric", mcp.Description("Metric kind to compute."), mcp.Required(), mcp.Enum(kindNames()...)),
		mcp.WithString("start", mcp.Description("Window start, e.g. '2025-06-01 00:00:00'."), mcp.Required()),
		mcp.WithString("end", mcp.Description("Window end, e.g. '2025-06-30 23:59:59'."), mcp.Required()),
		mcp.WithNumber("intervals", mcp.Description("Number of sub-intervals to split the window into. Defaults to 1.")),
	), h.handleComputeMetric)

	// --- 2. Tool: compute_metrics ---
	s.AddTool(mcp.NewTool("compute_metrics",
		mcp.WithDescription("Compute several metrics over a time window. With at least two metrics and two intervals, the result includes pairwise Pearson correlations."),
		mcp.WithString("metrics", mcp.Description("Comma-separated metric kinds, e.g. 'SATISFACTION,NUMBER_OF_COMMITS'."), mcp.Required()),
		mcp.WithString("start", mcp.Description("Window start."), mcp.Required()),
		mcp.WithString("end", mcp.Description("Window end."), mcp.Required()),
		mcp.WithNumber("intervals", mcp.Description("Number of sub-intervals. Defaults to 1.")),
	), h.handleComputeMetrics)

	// --- 3. Tool: compute_composite ---
	s.AddTool(mcp.NewTool("compute_composite",
		mcp.WithDescription("Compute a weighted composite productivity score per interval from several metrics' z-scores."),
		mcp.WithString("weights", mcp.Description("Comma-separated metric:weight pairs with weights in [0, 1], e.g. 'SATISFACTION:0.6,NUMBER_OF_COMMITS:0.4'."), mcp.Required()),
		mcp.WithString("start", mcp.Description("Window start."), mcp.Required()),
		mcp.WithString("end", mcp.Description("Window end."), mcp.Required()),
		mcp.WithNumber("intervals", mcp.Description("Number of sub-intervals. Defaults to 1.")),
	), h.handleComputeComposite)

	// --- 4. Tool: get_status ---
	s.AddTool(mcp.NewTool("get_status",
		mcp.WithDescription("Summarize the event store: total events, per-category counts and the recorded time span."),
	), h.handleGetStatus)

	return s
}

// StartMCPServer starts the DevPulse MCP server.
func StartMCPServer(_ context.Context, engine *core.Engine, store contract.EventStore) error {
	s := NewMCPServer(engine, store)
	return server.ServeStdio(s)
}

func kindNames() []string {
	names := make([]string, len(schema.AllMetricKinds))
	for i, kind := range schema.AllMetricKinds {
		names[i] = string(kind)
	}
	return names
}
