package server

import (
	"context"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/Juicebox-ApS/upsound-mcp-server/pkg/telemetry"
)

// unknownToolMiddleware routes tools/call requests for unregistered names
// through the dispatcher, so the fault a client sees carries the server's
// own "Unknown tool" message instead of the SDK's.
func (s *Server) unknownToolMiddleware() mcp.Middleware {
	return func(next mcp.MethodHandler) mcp.MethodHandler {
		return func(ctx context.Context, method string, req mcp.Request) (mcp.Result, error) {
			if method == "tools/call" {
				if params, ok := req.GetParams().(*mcp.CallToolParamsRaw); ok && !s.toolNames[params.Name] {
					result, err := s.Dispatch(ctx, params.Name, params.Arguments)
					if err != nil {
						return nil, err
					}
					return result, nil
				}
			}
			return next(ctx, method, req)
		}
	}
}

// dispatchHandler routes a tool call through the dispatcher. Arguments are
// forwarded as raw JSON; the dispatcher owns decoding and validation.
func (s *Server) dispatchHandler(toolName string) mcp.ToolHandler {
	return func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return s.Dispatch(ctx, toolName, req.Params.Arguments)
	}
}

func (s *Server) withToolTelemetry(toolName string, handler mcp.ToolHandler) mcp.ToolHandler {
	return func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		startTime := time.Now()

		result, err := handler(ctx, req)

		attrs := []attribute.KeyValue{
			attribute.String("mcp.tool.name", toolName),
			attribute.Bool("mcp.tool.error", err != nil || (result != nil && result.IsError)),
		}
		if telemetry.ToolCallCounter != nil {
			telemetry.ToolCallCounter.Add(ctx, 1, metric.WithAttributes(attrs...))
		}
		if telemetry.ToolCallDuration != nil {
			telemetry.ToolCallDuration.Record(ctx, float64(time.Since(startTime).Milliseconds()),
				metric.WithAttributes(attrs...))
		}

		return result, err
	}
}
