package index

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/guidebot-io/guidebot/internal/content"
	"github.com/guidebot-io/guidebot/internal/domain"
	"github.com/guidebot-io/guidebot/internal/qdrant"
)

const (
	// EmbedBatchSize is how many chunks are embedded per batch.
	EmbedBatchSize = 20

	// DryRunPreviewChunks is how many chunks a dry run prints.
	DryRunPreviewChunks = 3
)

// DocumentSource lists the documents eligible for indexing.
type DocumentSource interface {
	List() ([]*domain.Document, error)
}

// Embedder generates embedding vectors for a batch of texts.
type Embedder interface {
	GenerateEmbeddings(ctx context.Context, texts []string) ([][]float32, error)
}

// VectorStore is the subset of the vector store the indexer uses.
type VectorStore interface {
	EnsureCollection(ctx context.Context) error
	ClearCollection(ctx context.Context) error
	Upsert(ctx context.Context, points []qdrant.Point) error
}

// Options controls a single indexing run.
type Options struct {
	// Clear drops the collection and tracking state before indexing.
	Clear bool

	// DryRun reports what would be indexed without calling any service.
	DryRun bool

	// Force reindexes every document regardless of tracked mtimes.
	Force bool
}

// Summary describes what a run did.
type Summary struct {
	TotalDocuments   int
	IndexedDocuments int
	SkippedDocuments int
	Chunks           int
	DryRun           bool
}

// Indexer runs the indexing pipeline end to end.
type Indexer struct {
	source   DocumentSource
	embedder Embedder
	store    VectorStore
	tracker  *Tracker
}

// NewIndexer creates an indexer. The embedder and store may be nil when
// every run will be a dry run.
func NewIndexer(source DocumentSource, embedder Embedder, store VectorStore, tracker *Tracker) *Indexer {
	return &Indexer{
		source:   source,
		embedder: embedder,
		store:    store,
		tracker:  tracker,
	}
}

type plannedDoc struct {
	doc    *domain.Document
	chunks []domain.Chunk
}

// Run executes one indexing pass. Tracking state is written only after
// every embed and upsert succeeded; a failed run leaves the previous
// state untouched so the next run retries the same documents.
func (ix *Indexer) Run(ctx context.Context, opts Options) (*Summary, error) {
	docs, err := ix.source.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}

	if opts.Clear && !opts.DryRun {
		log.Printf("Clearing collection and tracking state")
		if err := ix.store.ClearCollection(ctx); err != nil {
			return nil, fmt.Errorf("failed to clear collection: %w", err)
		}
		if err := ix.tracker.Reset(); err != nil {
			return nil, fmt.Errorf("failed to reset tracking state: %w", err)
		}
	}

	state := ix.tracker.Load()

	var planned []plannedDoc
	var kept []Record
	for _, doc := range docs {
		rec := state.RecordFor(doc.Slug)
		if !ShouldIndex(doc, rec, opts.Force || opts.Clear) {
			kept = append(kept, *rec)
			continue
		}
		planned = append(planned, plannedDoc{
			doc:    doc,
			chunks: content.SplitChunks(doc.Body, doc.Frontmatter, doc.Slug),
		})
	}

	summary := &Summary{
		TotalDocuments:   len(docs),
		IndexedDocuments: len(planned),
		SkippedDocuments: len(kept),
		DryRun:           opts.DryRun,
	}

	var chunks []domain.Chunk
	for _, p := range planned {
		chunks = append(chunks, p.chunks...)
	}
	summary.Chunks = len(chunks)

	log.Printf("Found %d documents: %d to index, %d unchanged (%d chunks)",
		len(docs), len(planned), len(kept), len(chunks))

	if opts.DryRun {
		ix.logPreview(chunks)
		return summary, nil
	}

	if len(chunks) > 0 {
		if err := ix.store.EnsureCollection(ctx); err != nil {
			return nil, err
		}

		points, err := ix.embedChunks(ctx, chunks)
		if err != nil {
			return nil, err
		}

		if err := ix.store.Upsert(ctx, points); err != nil {
			return nil, err
		}
	}

	records := kept
	for _, p := range planned {
		records = append(records, Record{
			Slug:       p.doc.Slug,
			MTime:      p.doc.ModTime,
			ChunkCount: len(p.chunks),
		})
	}

	if err := ix.tracker.Save(&State{
		LastRun:   time.Now().UTC(),
		Documents: records,
	}); err != nil {
		return nil, err
	}

	log.Printf("Indexing complete: %d documents, %d chunks", len(planned), len(chunks))
	return summary, nil
}

func (ix *Indexer) embedChunks(ctx context.Context, chunks []domain.Chunk) ([]qdrant.Point, error) {
	points := make([]qdrant.Point, 0, len(chunks))
	batches := (len(chunks) + EmbedBatchSize - 1) / EmbedBatchSize

	for start := 0; start < len(chunks); start += EmbedBatchSize {
		end := start + EmbedBatchSize
		if end > len(chunks) {
			end = len(chunks)
		}
		batch := chunks[start:end]

		texts := make([]string, len(batch))
		for i, c := range batch {
			texts[i] = c.Content
		}

		vectors, err := ix.embedder.GenerateEmbeddings(ctx, texts)
		if err != nil {
			return nil, fmt.Errorf("failed to embed batch %d/%d: %w", start/EmbedBatchSize+1, batches, err)
		}

		for i, c := range batch {
			points = append(points, qdrant.Point{Chunk: c, Vector: vectors[i]})
		}

		log.Printf("Embedded batch %d/%d (%d chunks)", start/EmbedBatchSize+1, batches, len(batch))
	}

	return points, nil
}

func (ix *Indexer) logPreview(chunks []domain.Chunk) {
	preview := chunks
	if len(preview) > DryRunPreviewChunks {
		preview = preview[:DryRunPreviewChunks]
	}
	for _, c := range preview {
		log.Printf("Would index %s (%s, %d chars)", c.ID, c.Metadata.URL, len(c.Content))
	}
	if len(chunks) > len(preview) {
		log.Printf("... and %d more chunks", len(chunks)-len(preview))
	}
}
