package server

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func connect(t *testing.T, s *Server) *mcp.ClientSession {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	serverTransport, clientTransport := mcp.NewInMemoryTransports()
	go func() {
		_ = s.RunWithTransport(ctx, serverTransport)
	}()

	client := mcp.NewClient(&mcp.Implementation{
		Name:    "test-client",
		Version: "1.0.0",
	}, nil)

	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = session.Close() })

	return session
}

func TestListToolsReturnsCatalogInOrder(t *testing.T) {
	catalog := newFakeCatalog(t)
	session := connect(t, newTestServer(t, catalog, Options{}))

	result, err := session.ListTools(context.Background(), nil)
	require.NoError(t, err)

	require.Len(t, result.Tools, 2)
	assert.Equal(t, "upsound_search_studios", result.Tools[0].Name)
	assert.Equal(t, "upsound_studio_details", result.Tools[1].Name)

	require.NotNil(t, result.Tools[0].InputSchema)
	require.NotNil(t, result.Tools[1].InputSchema)
}

func TestCallToolOverSession(t *testing.T) {
	catalog := newFakeCatalog(t)
	catalog.robotsStatus = http.StatusNotFound
	catalog.dataBody = `{"studios":[{"id":"abc123"}]}`
	session := connect(t, newTestServer(t, catalog, Options{}))

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name: "upsound_search_studios",
		Arguments: map[string]any{
			"country": "United States",
		},
	})
	require.NoError(t, err)
	require.False(t, result.IsError)

	require.Len(t, result.Content, 1)
	text, ok := result.Content[0].(*mcp.TextContent)
	require.True(t, ok)

	var payload map[string]any
	require.NoError(t, json.Unmarshal([]byte(text.Text), &payload))
	assert.Contains(t, payload, "searchUrl")
	assert.Contains(t, payload, "data")
}

func TestCallUnknownToolOverSessionIsAFault(t *testing.T) {
	catalog := newFakeCatalog(t)
	session := connect(t, newTestServer(t, catalog, Options{}))

	_, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "upsound_delete_studios",
		Arguments: map[string]any{},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Unknown tool: upsound_delete_studios")
}
