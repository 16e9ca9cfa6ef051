package version

// Version of the binary. Overridden at release time with
// -ldflags "-X github.com/Juicebox-ApS/upsound-mcp-server/cmd/upsound-mcp/version.Version=v1.2.3".
var Version = "dev"
