package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/Juicebox-ApS/upsound-mcp-server/cmd/upsound-mcp/commands"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := commands.Root().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
