package server

import (
	"encoding/json"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	searchToolName  = "upsound_search_studios"
	detailsToolName = "upsound_studio_details"
)

// ToolRegistration pairs a tool descriptor with its handler.
type ToolRegistration struct {
	Tool    *mcp.Tool
	Handler mcp.ToolHandler
}

// toolRegistrations returns the static tool catalog, in the order the tools
// are advertised to clients.
func (s *Server) toolRegistrations() []*ToolRegistration {
	return []*ToolRegistration{
		s.createSearchTool(),
		s.createDetailsTool(),
	}
}

func (s *Server) createSearchTool() *ToolRegistration {
	tool := &mcp.Tool{
		Name: searchToolName,
		Description: `Search for recording studios in the Upsound catalog.
Returns the raw search results along with the catalog URL that was queried.`,
		InputSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"country": {
					Type:        "string",
					Description: "Country to search in (e.g. \"United States\")",
				},
				"location": {
					Type:        "string",
					Description: "Free-text location filter such as a city or neighborhood",
				},
				"checkin": {
					Type:        "string",
					Description: "Desired availability date (YYYY-MM-DD)",
				},
				"maxPrice": {
					Type:        "number",
					Description: "Maximum hourly price",
				},
				"ignoreRobotsText": {
					Type:        "boolean",
					Description: "Bypass the robots.txt check for this call only",
					Default:     json.RawMessage("false"),
				},
			},
			Required: []string{"country"},
		},
	}

	return &ToolRegistration{
		Tool:    tool,
		Handler: s.withToolTelemetry(searchToolName, s.dispatchHandler(searchToolName)),
	}
}

func (s *Server) createDetailsTool() *ToolRegistration {
	tool := &mcp.Tool{
		Name: detailsToolName,
		Description: `Get details for a single studio listing from the Upsound catalog.
Returns the raw listing data along with the catalog URL that was queried.`,
		InputSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"id": {
					Type:        "string",
					Description: "Studio listing id",
				},
				"ignoreRobotsText": {
					Type:        "boolean",
					Description: "Bypass the robots.txt check for this call only",
					Default:     json.RawMessage("false"),
				},
			},
			Required: []string{"id"},
		},
	}

	return &ToolRegistration{
		Tool:    tool,
		Handler: s.withToolTelemetry(detailsToolName, s.dispatchHandler(detailsToolName)),
	}
}
