package client

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// AskRequest represents the chat API request.
type AskRequest struct {
	Message     string `json:"message"`
	CurrentPage string `json:"currentPage,omitempty"`
}

// AskSource represents one cited source in the chat API response.
type AskSource struct {
	Title   string  `json:"title"`
	Slug    string  `json:"slug"`
	Section string  `json:"section,omitempty"`
	URL     string  `json:"url"`
	Score   float32 `json:"score"`
}

// AskResponse represents the chat API response.
type AskResponse struct {
	Message string      `json:"message"`
	Sources []AskSource `json:"sources"`
}

// AskCmd creates the ask command.
func AskCmd() *cobra.Command {
	var page string

	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Ask a question about the documentation",
		Long:  "Sends a question to the chat API and prints the answer with its sources.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outputJSON, _ := cmd.Flags().GetBool("output")
			return runAsk(cmd, args[0], page, outputJSON)
		},
	}

	cmd.Flags().StringVar(&page, "page", "", "Docs page the question is about (e.g. /docs/guides/setup)")

	return cmd
}

func runAsk(cmd *cobra.Command, question, page string, outputJSON bool) error {
	api, err := NewAPIClientWithCmd(cmd)
	if err != nil {
		return err
	}

	var resp AskResponse
	if err := api.Post("/api/chat", AskRequest{Message: question, CurrentPage: page}, &resp); err != nil {
		return fmt.Errorf("ask failed: %w", err)
	}

	if outputJSON {
		data, err := json.MarshalIndent(resp, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	fmt.Println(resp.Message)
	if len(resp.Sources) > 0 {
		fmt.Println("\nSources:")
		for _, s := range resp.Sources {
			if s.Section != "" {
				fmt.Printf("  - %s › %s (%s)\n", s.Title, s.Section, s.URL)
			} else {
				fmt.Printf("  - %s (%s)\n", s.Title, s.URL)
			}
		}
	}

	return nil
}
