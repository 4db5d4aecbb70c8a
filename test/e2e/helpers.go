//go:build e2e

package e2e

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/guidebot-io/guidebot/internal/api/handlers"
	"github.com/guidebot-io/guidebot/internal/cli/client"
	"github.com/guidebot-io/guidebot/internal/content"
	"github.com/guidebot-io/guidebot/internal/index"
	"github.com/guidebot-io/guidebot/internal/qdrant"
	"github.com/guidebot-io/guidebot/internal/server"
	"github.com/guidebot-io/guidebot/internal/service"
	"github.com/guidebot-io/guidebot/internal/testutil"
)

const vectorSize = 4

// TestEnv holds all resources needed for E2E tests
type TestEnv struct {
	T          *testing.T
	Ctx        context.Context
	QdrantC    *testutil.QdrantContainer
	Store      *qdrant.Store
	Indexer    *index.Indexer
	Server     *httptest.Server
	API        *client.APIClient
	ContentDir string
}

// keywordEmbedder is a deterministic stand-in for the embedding provider.
// Texts sharing a keyword map to the same basis vector, so retrieval
// behaves like semantic search without a network call.
type keywordEmbedder struct{}

func (keywordEmbedder) vector(text string) []float32 {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "install"):
		return []float32{1, 0, 0, 0}
	case strings.Contains(lower, "deploy"):
		return []float32{0, 1, 0, 0}
	case strings.Contains(lower, "billing"):
		return []float32{0, 0, 1, 0}
	default:
		return []float32{0, 0, 0, 1}
	}
}

func (e keywordEmbedder) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	return e.vector(text), nil
}

func (e keywordEmbedder) GenerateEmbeddings(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))
	for i, t := range texts {
		vectors[i] = e.vector(t)
	}
	return vectors, nil
}

// echoCompleter answers with the title of the first source block found in
// the system prompt, which is enough to assert grounding end to end.
type echoCompleter struct{}

func (echoCompleter) GenerateChatCompletion(ctx context.Context, systemPrompt, userMessage string, temperature float32, maxTokens int) (string, error) {
	start := strings.Index(systemPrompt, "[Source 1: ")
	if start < 0 {
		return "I couldn't find this in our guides.", nil
	}
	rest := systemPrompt[start+len("[Source 1: "):]
	title := rest[:strings.Index(rest, "]")]
	return "See the " + title + " guide.", nil
}

// SetupTestEnv starts a Qdrant container, indexes a small content tree,
// and serves the chat API over an httptest server
func SetupTestEnv(t *testing.T) *TestEnv {
	ctx := context.Background()

	qc := testutil.NewQdrantContainer(ctx, t)

	store, err := qdrant.NewStore(qdrant.StoreConfig{
		Host:       qc.Host,
		Port:       qc.GrpcPort,
		Collection: "guidebot_e2e",
		VectorSize: vectorSize,
	})
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	contentDir := t.TempDir()
	writeContent(t, contentDir)

	embedder := keywordEmbedder{}
	indexer := index.NewIndexer(
		content.NewLoader(contentDir),
		embedder,
		store,
		index.NewTracker(filepath.Join(t.TempDir(), "tracking.json")),
	)

	answerSvc := service.NewAnswerService(embedder, store, echoCompleter{}, service.AnswerConfig{
		SiteTitle:      "Guidebook",
		ScoreThreshold: 0.5,
	})

	router := server.NewRouter(server.RouterConfig{
		ChatHandler:   handlers.NewChatHandler(answerSvc, store),
		HealthHandler: handlers.NewHealthHandler(store, true),
	})
	srv := httptest.NewServer(router)

	return &TestEnv{
		T:          t,
		Ctx:        ctx,
		QdrantC:    qc,
		Store:      store,
		Indexer:    indexer,
		Server:     srv,
		API:        client.NewAPIClientWithConfig(srv.URL),
		ContentDir: contentDir,
	}
}

// Cleanup releases all environment resources
func (env *TestEnv) Cleanup() {
	env.Server.Close()
	env.Store.Close()
	if err := env.QdrantC.Terminate(env.Ctx); err != nil {
		env.T.Logf("failed to terminate qdrant container: %v", err)
	}
}

// Post sends a raw POST request to the test server
func (env *TestEnv) Post(path, body string) (*http.Response, error) {
	return http.Post(env.Server.URL+path, "application/json", strings.NewReader(body))
}

func writeContent(t *testing.T, dir string) {
	t.Helper()

	docs := map[string]string{
		"guides/setup.mdx": `---
title: Setup
description: Getting the tool running
category: guides
---

## Install the CLI

Run the install script and verify the binary is on your PATH before continuing.

## Deploy your first site

Use the deploy command to publish your project to the hosting platform.
`,
		"billing.mdx": `---
title: Billing
description: Plans and invoices
---

## Billing plans

Billing runs monthly and invoices are sent to the account owner email address.
`,
	}

	for name, body := range docs {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("failed to create content dir: %v", err)
		}
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			t.Fatalf("failed to write content file: %v", err)
		}
	}
}
