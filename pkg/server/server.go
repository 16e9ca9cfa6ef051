// Package server exposes the Upsound studio catalog as MCP tools.
package server

import (
	"context"
	"fmt"
	"net"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Juicebox-ApS/upsound-mcp-server/pkg/log"
	"github.com/Juicebox-ApS/upsound-mcp-server/pkg/robots"
	"github.com/Juicebox-ApS/upsound-mcp-server/pkg/upsound"
)

// Options configures the server from process-start flags.
type Options struct {
	// IgnoreRobotsText disables robots.txt enforcement for every call.
	IgnoreRobotsText bool
	// Transport selects how the server listens: "stdio" (default) or "http".
	Transport string
	// Port is the TCP port for the http transport.
	Port int
	// BaseURL overrides the catalog origin, mainly for testing.
	BaseURL string
	// Version is reported to MCP clients and used in the User-Agent.
	Version string
}

// Server is the Upsound MCP server. It owns the upstream client, the robots
// cache and the MCP server instance with its registered tools.
type Server struct {
	opts      Options
	mcpServer *mcp.Server
	client    *upsound.Client
	robots    *robots.Cache
	toolNames map[string]bool
}

func New(opts Options) *Server {
	if opts.BaseURL == "" {
		opts.BaseURL = upsound.DefaultBaseURL
	}
	if opts.Version == "" {
		opts.Version = "dev"
	}

	// The User-Agent product token doubles as the robots.txt matching token.
	userAgent := "UpsoundMCP/" + opts.Version
	client := upsound.NewClient(opts.BaseURL, userAgent)

	s := &Server{
		opts:   opts,
		client: client,
		robots: robots.NewCache(opts.BaseURL, userAgent, opts.IgnoreRobotsText, client.FetchText),
	}

	s.mcpServer = mcp.NewServer(&mcp.Implementation{
		Name:    "Upsound MCP Server",
		Version: opts.Version,
	}, &mcp.ServerOptions{
		HasTools: true,
		InitializedHandler: func(_ context.Context, req *mcp.InitializedRequest) {
			clientInfo := req.Session.InitializeParams().ClientInfo
			log.Log("- Client initialized: ", clientInfo.Name+"@"+clientInfo.Version)
		},
	})

	s.toolNames = make(map[string]bool)
	for _, registration := range s.toolRegistrations() {
		s.mcpServer.AddTool(registration.Tool, registration.Handler)
		s.toolNames[registration.Tool.Name] = true
	}
	s.mcpServer.AddReceivingMiddleware(s.unknownToolMiddleware())

	return s
}

// Run serves the MCP server on the configured transport until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	switch s.opts.Transport {
	case "", "stdio":
		return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
	case "http":
		return s.runHTTP(ctx)
	default:
		return fmt.Errorf("unknown transport %q", s.opts.Transport)
	}
}

// RunWithTransport serves on a caller-provided transport. Useful for
// connecting to the server programmatically.
func (s *Server) RunWithTransport(ctx context.Context, transport mcp.Transport) error {
	return s.mcpServer.Run(ctx, transport)
}

func (s *Server) runHTTP(ctx context.Context) error {
	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", s.opts.Port))
	if err != nil {
		return fmt.Errorf("failed to listen on port %d: %w", s.opts.Port, err)
	}

	handler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return s.mcpServer
	}, nil)

	httpServer := &http.Server{
		Handler: handler,
	}

	go func() {
		<-ctx.Done()
		httpServer.Close()
	}()

	log.Logf("Listening on %s", listener.Addr())
	if err := httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
