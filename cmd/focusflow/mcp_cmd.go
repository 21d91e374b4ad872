package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/sadopc/focusflow/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve FocusFlow tools over the Model Context Protocol (stdio)",
	Long: `Expose task management, focus checks and productivity stats to LLM
assistants over MCP. The server speaks the protocol on stdin/stdout, so wire
this command into your assistant's MCP configuration.`,
	RunE: runMCP,
}

func runMCP(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	// stdout carries the protocol; logs must stay on stderr.
	setupLogging(cfg, os.Stderr)

	s := openStore(cfg)
	defer s.Close()

	mon, _, err := buildMonitor(cfg, s)
	if err != nil {
		return err
	}

	return mcp.ServeStdio(&mcp.Deps{
		Store:   s,
		Monitor: mon,
		Version: version,
	})
}
