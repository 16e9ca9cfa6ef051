package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/Juicebox-ApS/upsound-mcp-server/pkg/log"
	"github.com/Juicebox-ApS/upsound-mcp-server/pkg/telemetry"
)

// robotsDenialMessage is returned verbatim in the error envelope when a
// derived request path is disallowed by robots.txt.
const robotsDenialMessage = "This path is disallowed by upsound.com robots.txt. " +
	"To bypass this check, set the ignoreRobotsText argument to true."

type searchParams struct {
	Country          string   `json:"country"`
	Location         string   `json:"location"`
	Checkin          string   `json:"checkin"`
	MaxPrice         *float64 `json:"maxPrice"`
	IgnoreRobotsText bool     `json:"ignoreRobotsText"`
}

type detailsParams struct {
	ID               string `json:"id"`
	IgnoreRobotsText bool   `json:"ignoreRobotsText"`
}

// Dispatch validates the arguments for the named tool, enforces the robots
// policy and issues at most one upstream request. Every runtime outcome is
// returned inside the CallToolResult envelope; the returned error is
// reserved for unknown tool names.
func (s *Server) Dispatch(ctx context.Context, name string, rawArgs json.RawMessage) (*mcp.CallToolResult, error) {
	switch name {
	case searchToolName:
		return s.dispatchSearch(ctx, rawArgs), nil
	case detailsToolName:
		return s.dispatchDetails(ctx, rawArgs), nil
	default:
		return nil, fmt.Errorf("Unknown tool: %s", name)
	}
}

func (s *Server) dispatchSearch(ctx context.Context, rawArgs json.RawMessage) *mcp.CallToolResult {
	var params searchParams
	if err := unmarshalArgs(rawArgs, &params); err != nil {
		return errorResult(map[string]any{"error": err.Error()})
	}
	if params.Country == "" {
		return errorResult(map[string]any{"error": "country argument is required"})
	}

	path := searchPath(params)
	fullURL := s.client.URL(path)
	log.Debugf("search request: %s", fullURL)

	if !s.checkRobots(ctx, path, params.IgnoreRobotsText) {
		return errorResult(map[string]any{"error": robotsDenialMessage, "url": fullURL})
	}

	data, err := s.client.FetchJSON(ctx, fullURL)
	if err != nil {
		return errorResult(map[string]any{"error": err.Error(), "searchUrl": fullURL})
	}

	return successResult(map[string]any{"searchUrl": fullURL, "data": data})
}

func (s *Server) dispatchDetails(ctx context.Context, rawArgs json.RawMessage) *mcp.CallToolResult {
	var params detailsParams
	if err := unmarshalArgs(rawArgs, &params); err != nil {
		return errorResult(map[string]any{"error": err.Error()})
	}
	if params.ID == "" {
		return errorResult(map[string]any{"error": "id argument is required"})
	}

	path := detailsPath(params.ID)
	fullURL := s.client.URL(path)
	log.Debugf("details request: %s", fullURL)

	if !s.checkRobots(ctx, path, params.IgnoreRobotsText) {
		return errorResult(map[string]any{"error": robotsDenialMessage, "url": fullURL})
	}

	details, err := s.client.FetchJSON(ctx, fullURL)
	if err != nil {
		return errorResult(map[string]any{"error": err.Error(), "listingUrl": fullURL})
	}

	return successResult(map[string]any{"listingUrl": fullURL, "details": details})
}

// searchPath derives the catalog path+query for a search. The result is a
// pure function of the arguments: the robots.txt check and the echoed
// searchUrl must agree for identical inputs.
func searchPath(params searchParams) string {
	query := url.Values{}
	query.Set("country", params.Country)
	if params.Location != "" {
		query.Set("term", params.Location)
	}
	if params.Checkin != "" {
		query.Set("available_date", params.Checkin)
	}
	if params.MaxPrice != nil {
		query.Set("max_price", strconv.FormatFloat(*params.MaxPrice, 'f', -1, 64))
	}
	return "/studios?" + query.Encode()
}

// detailsPath derives the catalog path for a single studio listing.
func detailsPath(id string) string {
	return "/studios/" + url.PathEscape(id)
}

// checkRobots loads the robots cache on first use and reports whether path
// may be fetched. When bypass is set, neither the load nor the check runs.
func (s *Server) checkRobots(ctx context.Context, path string, bypass bool) bool {
	if bypass {
		return true
	}

	s.robots.EnsureLoaded(ctx)
	if s.robots.IsAllowed(path) {
		return true
	}

	log.Logf("robots.txt disallows %s", path)
	if telemetry.PolicyDenyCounter != nil {
		telemetry.PolicyDenyCounter.Add(ctx, 1,
			metric.WithAttributes(attribute.String("mcp.request.path", path)))
	}
	return false
}

func unmarshalArgs(rawArgs json.RawMessage, v any) error {
	if len(rawArgs) == 0 {
		return nil
	}
	if err := json.Unmarshal(rawArgs, v); err != nil {
		return fmt.Errorf("failed to parse arguments: %w", err)
	}
	return nil
}

func successResult(payload map[string]any) *mcp.CallToolResult {
	return newResult(payload, false)
}

func errorResult(payload map[string]any) *mcp.CallToolResult {
	return newResult(payload, true)
}

func newResult(payload map[string]any, isError bool) *mcp.CallToolResult {
	text, err := json.Marshal(payload)
	if err != nil {
		text = []byte(fmt.Sprintf(`{"error":%q}`, err.Error()))
		isError = true
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(text)}},
		IsError: isError,
	}
}
