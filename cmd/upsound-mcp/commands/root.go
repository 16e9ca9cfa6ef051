package commands

import (
	"github.com/spf13/cobra"

	"github.com/Juicebox-ApS/upsound-mcp-server/cmd/upsound-mcp/version"
	"github.com/Juicebox-ApS/upsound-mcp-server/pkg/log"
	"github.com/Juicebox-ApS/upsound-mcp-server/pkg/server"
	"github.com/Juicebox-ApS/upsound-mcp-server/pkg/telemetry"
	"github.com/Juicebox-ApS/upsound-mcp-server/pkg/upsound"
)

// Root returns the root command for the Upsound MCP server.
func Root() *cobra.Command {
	var (
		opts    server.Options
		verbose bool
	)

	cmd := &cobra.Command{
		Use:   "upsound-mcp [OPTIONS]",
		Short: "MCP server for the Upsound studio catalog",
		Long: `Exposes the Upsound studio catalog as MCP tools (studio search and studio
details). Outbound requests respect the catalog origin's robots.txt unless
explicitly bypassed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			log.SetVerbose(verbose)
			telemetry.Init()

			opts.Version = version.Version
			log.Log("Starting Upsound MCP Server " + version.Version)
			if opts.IgnoreRobotsText {
				log.Log("- robots.txt enforcement disabled for all calls")
			}

			return server.New(opts).Run(cmd.Context())
		},
		Version: version.Version,
	}
	cmd.SetVersionTemplate("{{.Version}}\n")

	flags := cmd.Flags()
	flags.BoolVar(&opts.IgnoreRobotsText, "ignore-robots-txt", false, "Disable robots.txt enforcement for every tool call")
	flags.StringVar(&opts.Transport, "transport", "stdio", "Transport to listen on (stdio|http)")
	flags.IntVar(&opts.Port, "port", 8811, "TCP port for the http transport")
	flags.StringVar(&opts.BaseURL, "base-url", upsound.DefaultBaseURL, "Base URL of the Upsound catalog")
	flags.BoolVar(&verbose, "verbose", false, "Verbose logging on stderr")

	return cmd
}
