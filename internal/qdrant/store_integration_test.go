//go:build integration

package qdrant

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guidebot-io/guidebot/internal/domain"
	"github.com/guidebot-io/guidebot/internal/testutil"
)

func TestStoreIntegration(t *testing.T) {
	ctx := context.Background()

	qc := testutil.NewQdrantContainer(ctx, t)
	defer qc.Terminate(ctx)

	store, err := NewStore(StoreConfig{
		Host:       qc.Host,
		Port:       qc.GrpcPort,
		Collection: "guidebot_docs_test",
		VectorSize: 4,
	})
	require.NoError(t, err)
	defer store.Close()

	require.True(t, store.Health(ctx))

	require.NoError(t, store.EnsureCollection(ctx))
	// Second call must be idempotent.
	require.NoError(t, store.EnsureCollection(ctx))

	chunk := domain.Chunk{
		ID:      "guides/setup-0",
		Content: "# Setup\n\nInstall the tool.",
		Metadata: domain.ChunkMetadata{
			Title:    "Setup",
			Slug:     "guides/setup",
			Category: "guides",
			Section:  "Install",
			URL:      "/docs/guides/setup#install",
			Tags:     []string{"install"},
		},
	}
	err = store.Upsert(ctx, []Point{{Chunk: chunk, Vector: []float32{1, 0, 0, 0}}})
	require.NoError(t, err)

	results, err := store.Search(ctx, []float32{1, 0, 0, 0}, 5)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Setup", results[0].Metadata.Title)
	assert.Equal(t, "/docs/guides/setup#install", results[0].Metadata.URL)
	assert.Equal(t, []string{"install"}, results[0].Metadata.Tags)
	assert.InDelta(t, 1.0, results[0].Score, 0.01)

	// Re-upserting the same chunk replaces the point instead of duplicating it.
	err = store.Upsert(ctx, []Point{{Chunk: chunk, Vector: []float32{0, 1, 0, 0}}})
	require.NoError(t, err)

	results, err = store.Search(ctx, []float32{0, 1, 0, 0}, 5)
	require.NoError(t, err)
	require.Len(t, results, 1)

	require.NoError(t, store.ClearCollection(ctx))
	// Clearing a collection that is already gone is a no-op.
	require.NoError(t, store.ClearCollection(ctx))
}
