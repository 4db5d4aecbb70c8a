package admin

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/guidebot-io/guidebot/internal/config"
	"github.com/guidebot-io/guidebot/internal/content"
	"github.com/guidebot-io/guidebot/internal/index"
	"github.com/guidebot-io/guidebot/internal/openai"
	sdk "github.com/sashabaranov/go-openai"
)

// IndexCmd returns the index command
func IndexCmd() *cobra.Command {
	var (
		clear  bool
		dryRun bool
		force  bool
	)

	cmd := &cobra.Command{
		Use:   "index",
		Short: "Embed documentation into the vector database",
		Long:  "Parse, chunk, and embed the content directory, then upload the vectors to Qdrant. Only changed documents are reindexed unless --force is set.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIndex(cmd, index.Options{
				Clear:  clear,
				DryRun: dryRun,
				Force:  force,
			})
		},
	}

	cmd.Flags().BoolVar(&clear, "clear", false, "Delete the collection and tracking state before indexing")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report what would be indexed without calling any service")
	cmd.Flags().BoolVar(&force, "force", false, "Reindex all documents regardless of modification times")

	return cmd
}

func runIndex(cmd *cobra.Command, opts index.Options) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	loader := content.NewLoader(cfg.ContentDir)
	tracker := index.NewTracker(cfg.TrackingFile)

	var embedder index.Embedder
	var store index.VectorStore
	if !opts.DryRun {
		if !cfg.HasOpenAI() {
			return fmt.Errorf("OPENAI_API_KEY is required for indexing")
		}
		embedder = openai.NewClientWithConfig(openai.Config{
			APIKey:         cfg.OpenAIAPIKey,
			EmbeddingModel: sdk.EmbeddingModel(cfg.EmbeddingModel),
			ChatModel:      cfg.ChatModel,
		})

		qdrantStore, err := newStore(cfg)
		if err != nil {
			return err
		}
		defer qdrantStore.Close()
		store = qdrantStore
	}

	ix := index.NewIndexer(loader, embedder, store, tracker)
	summary, err := ix.Run(cmd.Context(), opts)
	if err != nil {
		return err
	}

	if summary.DryRun {
		fmt.Printf("Dry run: %d of %d documents would be indexed (%d chunks)\n",
			summary.IndexedDocuments, summary.TotalDocuments, summary.Chunks)
		return nil
	}

	fmt.Printf("Indexed %d of %d documents (%d chunks, %d unchanged)\n",
		summary.IndexedDocuments, summary.TotalDocuments, summary.Chunks, summary.SkippedDocuments)
	return nil
}
