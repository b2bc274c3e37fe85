package main

import (
	"context"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/agentfleet/fleet/internal/pkg/logs"
)

func main() {
	cmd := &cli.Command{
		Name:  "fleet",
		Usage: "Run and schedule AI agents from your terminal",
		Commands: []*cli.Command{
			serveHwd.cmd(),
			agentHwd.cmd(),
			keyHwd.cmd(),
			configHwd.cmd(),
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		logs.Fatal("Command execution failed: %v", err)
	}
}
