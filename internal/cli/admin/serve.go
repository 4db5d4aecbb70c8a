package admin

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/guidebot-io/guidebot/internal/api/handlers"
	"github.com/guidebot-io/guidebot/internal/config"
	"github.com/guidebot-io/guidebot/internal/content"
	"github.com/guidebot-io/guidebot/internal/domain"
	"github.com/guidebot-io/guidebot/internal/index"
	"github.com/guidebot-io/guidebot/internal/jobs"
	"github.com/guidebot-io/guidebot/internal/openai"
	"github.com/guidebot-io/guidebot/internal/qdrant"
	"github.com/guidebot-io/guidebot/internal/server"
	"github.com/guidebot-io/guidebot/internal/service"
	"github.com/guidebot-io/guidebot/internal/telemetry"
	sdk "github.com/sashabaranov/go-openai"
)

// ServeCmd returns the serve command
func ServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the chat API server",
		Long:  "Start the guidebot API server on the specified port",
		RunE:  runServe,
	}

	cmd.Flags().StringP("port", "p", "8080", "Port to listen on")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize Sentry with tracing if SENTRY_DSN is set
	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		environment := os.Getenv("ENVIRONMENT")
		if environment == "" {
			environment = "development"
		}

		// Default to 10% sampling in production, 100% in development
		sampleRate := 0.1
		if environment == "development" {
			sampleRate = 1.0
		}

		shutdownTelemetry, err := telemetry.Init(telemetry.Config{
			DSN:              dsn,
			Environment:      environment,
			TracesSampleRate: sampleRate,
		})
		if err != nil {
			log.Printf("telemetry init failed (continuing without tracing): %v", err)
		} else {
			defer shutdownTelemetry()
		}
	}

	portFlag, _ := cmd.Flags().GetString("port")
	if portFlag != "" && portFlag != "8080" {
		cfg.Port = portFlag
	}

	store, err := newStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	var answerSvc handlers.AnswerService
	var reindexWorker *jobs.Worker
	if cfg.HasOpenAI() {
		client := openai.NewClientWithConfig(openai.Config{
			APIKey:         cfg.OpenAIAPIKey,
			EmbeddingModel: sdk.EmbeddingModel(cfg.EmbeddingModel),
			ChatModel:      cfg.ChatModel,
		})
		answerSvc = service.NewAnswerService(client, store, client, service.AnswerConfig{
			SiteTitle:      cfg.SiteTitle,
			TopK:           cfg.TopK,
			ScoreThreshold: cfg.ScoreThreshold,
			Temperature:    cfg.Temperature,
			MaxTokens:      cfg.MaxTokens,
		})
		log.Println("answer service ready")

		if cfg.ReindexInterval > 0 {
			indexer := index.NewIndexer(
				content.NewLoader(cfg.ContentDir),
				client,
				store,
				index.NewTracker(cfg.TrackingFile),
			)
			reindexWorker = jobs.NewWorker(jobs.NewReindexWorker(indexer), cfg.ReindexInterval)
			go reindexWorker.Start(ctx)
			log.Printf("reindex worker started (interval: %v)", cfg.ReindexInterval)
		}
	} else {
		log.Println("OPENAI_API_KEY not set, chat requests will fail")
		answerSvc = &NoOpAnswerService{}
	}

	chatHandler := handlers.NewChatHandlerWithTimeout(answerSvc, store, cfg.RequestTimeout)
	healthHandler := handlers.NewHealthHandler(store, cfg.HasOpenAI())

	router := server.NewRouter(server.RouterConfig{
		ChatHandler:   chatHandler,
		HealthHandler: healthHandler,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("starting server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("shutting down...")

	if reindexWorker != nil {
		reindexWorker.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Println("server exited")
	return nil
}

func newStore(cfg *config.Config) (*qdrant.Store, error) {
	endpoint, err := cfg.ParseQdrantURL()
	if err != nil {
		return nil, err
	}

	store, err := qdrant.NewStore(qdrant.StoreConfig{
		Host:       endpoint.Host,
		Port:       endpoint.Port,
		UseTLS:     endpoint.UseTLS,
		APIKey:     cfg.QdrantAPIKey,
		Collection: cfg.Collection,
		VectorSize: openai.DefaultEmbeddingDimensions,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to qdrant: %w", err)
	}
	return store, nil
}

// NoOpAnswerService rejects chat requests when no OpenAI key is configured.
type NoOpAnswerService struct{}

func (s *NoOpAnswerService) Answer(ctx context.Context, query, currentPage string) (*service.Answer, error) {
	return nil, domain.ErrProviderNotConfigured
}
