package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/guidebot-io/guidebot/internal/cli/client"
)

var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "guidebot",
		Short: "Guidebot CLI - chat with your documentation",
		Long: `Guidebot CLI asks questions against a running guidebot server.

Environment variables:
  GUIDEBOT_API_URL   API base URL (default: http://localhost:8080)`,
		Version: version,
	}

	rootCmd.PersistentFlags().Bool("output", false, "Output as JSON")
	rootCmd.PersistentFlags().String("api-url", "", "API base URL (overrides env)")

	rootCmd.AddCommand(client.AskCmd())
	rootCmd.AddCommand(client.HealthCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
