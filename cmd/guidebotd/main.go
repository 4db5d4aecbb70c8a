package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/guidebot-io/guidebot/internal/cli/admin"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "guidebotd",
		Short: "Guidebot daemon",
		Long:  "Guidebot daemon for serving the documentation chat API and running the embedding indexer",
	}

	rootCmd.AddCommand(admin.ServeCmd())
	rootCmd.AddCommand(admin.IndexCmd())

	if len(os.Args) == 1 {
		os.Args = append(os.Args, "serve")
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
