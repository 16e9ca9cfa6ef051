// Package telemetry provides OpenTelemetry instrumentation for the Upsound
// MCP server. Instruments are created against the global meter provider, so
// they are no-ops until a host application installs an SDK.
package telemetry

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// MeterName is the meter name for the Upsound MCP server
const MeterName = "github.com/Juicebox-ApS/upsound-mcp-server"

var (
	// meter is the global meter for the Upsound MCP server
	meter metric.Meter

	// ToolCallCounter tracks the number of tool calls by tool name and outcome
	ToolCallCounter metric.Int64Counter

	// ToolCallDuration tracks the duration of tool calls in milliseconds
	ToolCallDuration metric.Float64Histogram

	// PolicyDenyCounter tracks tool calls refused by the robots.txt policy
	PolicyDenyCounter metric.Int64Counter
)

// Init creates the meter and instruments. Call once at startup, before the
// server handles requests.
func Init() {
	meter = otel.GetMeterProvider().Meter(MeterName)

	ToolCallCounter, _ = meter.Int64Counter("mcp.tool.calls",
		metric.WithDescription("Tool calls"),
		metric.WithUnit("1"))

	ToolCallDuration, _ = meter.Float64Histogram("mcp.tool.duration",
		metric.WithDescription("Tool call duration"),
		metric.WithUnit("ms"))

	PolicyDenyCounter, _ = meter.Int64Counter("mcp.tool.policy_denials",
		metric.WithDescription("Tool calls denied by robots.txt"),
		metric.WithUnit("1"))
}
