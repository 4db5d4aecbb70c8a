//go:build e2e

package e2e

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guidebot-io/guidebot/internal/cli/client"
	"github.com/guidebot-io/guidebot/internal/index"
)

func TestE2E_IndexAndChat(t *testing.T) {
	env := SetupTestEnv(t)
	defer env.Cleanup()

	t.Run("initial index run embeds everything", func(t *testing.T) {
		summary, err := env.Indexer.Run(env.Ctx, index.Options{})
		require.NoError(t, err)
		assert.Equal(t, 2, summary.TotalDocuments)
		assert.Equal(t, 2, summary.IndexedDocuments)
		assert.Equal(t, 3, summary.Chunks)
	})

	t.Run("second run skips unchanged documents", func(t *testing.T) {
		summary, err := env.Indexer.Run(env.Ctx, index.Options{})
		require.NoError(t, err)
		assert.Equal(t, 0, summary.IndexedDocuments)
		assert.Equal(t, 2, summary.SkippedDocuments)
	})

	t.Run("ask returns a grounded answer with sources", func(t *testing.T) {
		var resp client.AskResponse
		err := env.API.Post("/api/chat", client.AskRequest{Message: "How do I install the CLI?"}, &resp)
		require.NoError(t, err)

		assert.Equal(t, "See the Setup guide.", resp.Message)
		require.NotEmpty(t, resp.Sources)
		assert.Equal(t, "Setup", resp.Sources[0].Title)
		assert.Equal(t, "/docs/guides/setup#install-the-cli", resp.Sources[0].URL)
		assert.Greater(t, resp.Sources[0].Score, float32(0.5))
	})

	t.Run("unrelated question cites nothing confidently", func(t *testing.T) {
		var resp client.AskResponse
		err := env.API.Post("/api/chat", client.AskRequest{Message: "What is the meaning of life?"}, &resp)
		require.NoError(t, err)

		// The orthogonal query vector scores zero against every chunk.
		assert.Empty(t, resp.Sources)
	})

	t.Run("empty message is rejected", func(t *testing.T) {
		resp, err := env.Post("/api/chat", `{"message":""}`)
		require.NoError(t, err)
		defer resp.Body.Close()

		body, _ := io.ReadAll(resp.Body)
		assert.Equal(t, 400, resp.StatusCode)
		assert.Contains(t, string(body), "message is required")
	})

	t.Run("health reports all services up", func(t *testing.T) {
		var resp client.HealthResponse
		err := env.API.Get("/api/health", &resp)
		require.NoError(t, err)

		assert.Equal(t, "healthy", resp.Status)
		assert.True(t, resp.Services.VectorStore)
		assert.True(t, resp.Services.EmbeddingProvider)
	})
}
