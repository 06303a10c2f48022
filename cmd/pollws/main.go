package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "pollws",
		Short: "Polling WebSocket client tools",
		Long: `pollws is a WebSocket client with a polling API, built for
frame-based callers such as game loops.

This CLI wraps the library for quick manual testing:

  • connect — dial a server, print received messages, forward stdin
  • echo    — run a loopback echo server to dial against`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		connectCmd(),
		echoCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
