package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/devpulse/devpulse/core"
	"github.com/devpulse/devpulse/internal/contract"
	"github.com/devpulse/devpulse/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	engine *core.Engine
	store  contract.EventStore
}

func (h *toolHandler) handleComputeMetric(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	kind := schema.MetricKind(request.GetString("metric", ""))
	start := request.GetString("start", "")
	end := request.GetString("end", "")
	intervals := request.GetInt("intervals", contract.DefaultIntervals)

	report, err := h.engine.ComputeMetric(ctx, kind, start, end, intervals)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("metric computation failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(report, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleComputeMetrics(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	kinds, err := contract.ParseMetricList(request.GetString("metrics", ""))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid metrics parameter: %v", err)), nil
	}
	start := request.GetString("start", "")
	end := request.GetString("end", "")
	intervals := request.GetInt("intervals", contract.DefaultIntervals)

	report, err := h.engine.ComputeMetrics(ctx, kinds, start, end, intervals)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("metric computation failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(report, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleComputeComposite(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	weights, err := contract.ParseWeights(request.GetString("weights", ""))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid weights parameter: %v", err)), nil
	}
	start := request.GetString("start", "")
	end := request.GetString("end", "")
	intervals := request.GetInt("intervals", contract.DefaultIntervals)

	report, err := h.engine.ComputeComposite(ctx, weights, start, end, intervals)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("composite computation failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(report, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetStatus(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	status, err := h.store.Status(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("status query failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(status, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
