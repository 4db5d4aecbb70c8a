package client

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// HealthResponse represents the health API response.
type HealthResponse struct {
	Status   string `json:"status"`
	Services struct {
		VectorStore       bool `json:"vectorStore"`
		EmbeddingProvider bool `json:"embeddingProvider"`
	} `json:"services"`
}

// HealthCmd creates the health command.
func HealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check API server health",
		RunE: func(cmd *cobra.Command, args []string) error {
			outputJSON, _ := cmd.Flags().GetBool("output")
			return runHealth(cmd, outputJSON)
		},
	}
}

func runHealth(cmd *cobra.Command, outputJSON bool) error {
	api, err := NewAPIClientWithCmd(cmd)
	if err != nil {
		return err
	}

	var resp HealthResponse
	if err := api.Get("/api/health", &resp); err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}

	if outputJSON {
		data, err := json.MarshalIndent(resp, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	fmt.Printf("status: %s\n", resp.Status)
	fmt.Printf("  vector store:       %s\n", upDown(resp.Services.VectorStore))
	fmt.Printf("  embedding provider: %s\n", upDown(resp.Services.EmbeddingProvider))
	return nil
}

func upDown(ok bool) string {
	if ok {
		return "up"
	}
	return "down"
}
