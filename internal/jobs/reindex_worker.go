package jobs

import (
	"context"
	"fmt"
	"log"

	"github.com/guidebot-io/guidebot/internal/index"
)

// IndexRunner defines the interface for running an indexing pass
type IndexRunner interface {
	Run(ctx context.Context, opts index.Options) (*index.Summary, error)
}

// ReindexWorker keeps the vector collection in sync with the content
// directory by running incremental indexing passes. Unchanged documents
// are skipped by the indexer, so an idle pass is cheap.
type ReindexWorker struct {
	indexer IndexRunner
}

// NewReindexWorker creates a new ReindexWorker instance
func NewReindexWorker(indexer IndexRunner) *ReindexWorker {
	return &ReindexWorker{indexer: indexer}
}

// Process implements the Processor interface
func (w *ReindexWorker) Process(ctx context.Context) error {
	summary, err := w.indexer.Run(ctx, index.Options{})
	if err != nil {
		return fmt.Errorf("scheduled reindex failed: %w", err)
	}

	if summary.IndexedDocuments > 0 {
		log.Printf("Scheduled reindex: %d documents updated (%d chunks)",
			summary.IndexedDocuments, summary.Chunks)
	}

	return nil
}
