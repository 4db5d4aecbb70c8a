package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/guidebot-io/guidebot/internal/domain"
	"github.com/guidebot-io/guidebot/internal/telemetry"
)

const (
	// DefaultTopK is how many chunks are retrieved for context.
	DefaultTopK = 5

	// DefaultScoreThreshold is the minimum similarity for a retrieved
	// chunk to be cited back to the user.
	DefaultScoreThreshold = 0.7

	// DefaultTemperature keeps answers close to the retrieved text.
	DefaultTemperature = 0.3

	// DefaultMaxTokens caps answer length.
	DefaultMaxTokens = 1000

	// FallbackMessage is returned when the model produces no text.
	FallbackMessage = "I apologize, but I couldn't generate a response. Please try again."
)

// QueryEmbedder defines the interface for embedding a user query
type QueryEmbedder interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
}

// ChatCompleter defines the interface for generating a chat completion
type ChatCompleter interface {
	GenerateChatCompletion(ctx context.Context, systemPrompt, userMessage string, temperature float32, maxTokens int) (string, error)
}

// SearchStore defines the interface for similarity search over indexed chunks
type SearchStore interface {
	Search(ctx context.Context, vector []float32, limit int) ([]domain.SearchResult, error)
}

// Source is a citation attached to an answer.
type Source struct {
	Title   string
	Slug    string
	Section string
	URL     string
	Score   float32
}

// Answer is a generated response with its supporting sources.
type Answer struct {
	Message string
	Sources []Source
}

// AnswerConfig tunes retrieval and generation.
type AnswerConfig struct {
	// SiteTitle names the documentation site in the system prompt.
	SiteTitle string

	// TopK is how many chunks to retrieve.
	TopK int

	// ScoreThreshold filters which retrieved chunks become cited sources.
	// Retrieval itself is not filtered; low-scoring chunks still feed the
	// model as context.
	ScoreThreshold float32

	Temperature float32
	MaxTokens   int
}

func (c AnswerConfig) withDefaults() AnswerConfig {
	if c.SiteTitle == "" {
		c.SiteTitle = "the documentation site"
	}
	if c.TopK <= 0 {
		c.TopK = DefaultTopK
	}
	if c.ScoreThreshold == 0 {
		c.ScoreThreshold = DefaultScoreThreshold
	}
	if c.Temperature == 0 {
		c.Temperature = DefaultTemperature
	}
	if c.MaxTokens <= 0 {
		c.MaxTokens = DefaultMaxTokens
	}
	return c
}

// AnswerService answers questions about the indexed documentation by
// retrieving relevant chunks and asking the model to ground its reply in
// them.
type AnswerService struct {
	embedder  QueryEmbedder
	store     SearchStore
	completer ChatCompleter
	cfg       AnswerConfig
}

// NewAnswerService creates a new AnswerService instance
func NewAnswerService(embedder QueryEmbedder, store SearchStore, completer ChatCompleter, cfg AnswerConfig) *AnswerService {
	return &AnswerService{
		embedder:  embedder,
		store:     store,
		completer: completer,
		cfg:       cfg.withDefaults(),
	}
}

// Answer retrieves context for the query and generates a grounded reply.
// currentPage is the docs page the user is reading, or empty.
func (s *AnswerService) Answer(ctx context.Context, query, currentPage string) (*Answer, error) {
	if strings.TrimSpace(query) == "" {
		return nil, domain.ErrEmptyQuery
	}

	ctx, span := telemetry.StartSpan(ctx, "answer.generate", telemetry.SpanAttributes{Operation: "chat"})
	defer span.End()

	vector, err := s.embedder.GenerateEmbedding(ctx, query)
	if err != nil {
		span.SetError(err)
		return nil, err
	}

	results, err := s.store.Search(ctx, vector, s.cfg.TopK)
	if err != nil {
		span.SetError(err)
		return nil, domain.NewDomainErrorWithCause(domain.ErrCodeUnavailable, "failed to search documentation", err)
	}

	message, err := s.completer.GenerateChatCompletion(ctx,
		s.systemPrompt(results, currentPage),
		query,
		s.cfg.Temperature,
		s.cfg.MaxTokens,
	)
	if err != nil {
		span.SetError(err)
		return nil, err
	}
	if strings.TrimSpace(message) == "" {
		message = FallbackMessage
	}

	return &Answer{
		Message: message,
		Sources: s.confidentSources(results),
	}, nil
}

func (s *AnswerService) systemPrompt(results []domain.SearchResult, currentPage string) string {
	blocks := make([]string, len(results))
	for i, r := range results {
		blocks[i] = fmt.Sprintf("[Source %d: %s]\n%s", i+1, r.Metadata.Title, r.Content)
	}
	contextBlock := strings.Join(blocks, "\n\n---\n\n")
	if contextBlock == "" {
		contextBlock = "No relevant documentation found."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You are a helpful assistant for %s. ", s.cfg.SiteTitle)
	b.WriteString("Answer the user's question using ONLY the documentation excerpts below.\n\n")
	b.WriteString("Rules:\n")
	b.WriteString("- Base your answer strictly on the provided excerpts. Never invent features, commands, or settings.\n")
	b.WriteString("- When you use an excerpt, mention its title so the user can find it.\n")
	b.WriteString("- If the excerpts do not answer the question, say you couldn't find this in our guides and suggest where to look instead.\n")
	b.WriteString("- Keep answers concise and practical.\n")
	if currentPage != "" {
		fmt.Fprintf(&b, "\nThe user is currently reading the page %q; prefer excerpts from it when they apply.\n", currentPage)
	}
	b.WriteString("\nDocumentation excerpts:\n\n")
	b.WriteString(contextBlock)
	return b.String()
}

// confidentSources returns citations for results above the score
// threshold, in retrieval order.
func (s *AnswerService) confidentSources(results []domain.SearchResult) []Source {
	var sources []Source
	for _, r := range results {
		if r.Score <= s.cfg.ScoreThreshold {
			continue
		}
		sources = append(sources, Source{
			Title:   r.Metadata.Title,
			Slug:    r.Metadata.Slug,
			Section: r.Metadata.Section,
			URL:     r.Metadata.URL,
			Score:   r.Score,
		})
	}
	return sources
}
