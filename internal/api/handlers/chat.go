package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/guidebot-io/guidebot/internal/api"
	"github.com/guidebot-io/guidebot/internal/domain"
	"github.com/guidebot-io/guidebot/internal/service"
)

// DefaultChatTimeout bounds the whole retrieve-and-generate pipeline for
// one request.
const DefaultChatTimeout = 30 * time.Second

// AnswerService defines the interface for answering documentation questions
type AnswerService interface {
	Answer(ctx context.Context, query, currentPage string) (*service.Answer, error)
}

// VectorStoreHealth reports whether the vector database is reachable
type VectorStoreHealth interface {
	Health(ctx context.Context) bool
}

type ChatHandler struct {
	svc     AnswerService
	store   VectorStoreHealth
	timeout time.Duration
}

// NewChatHandler creates a new ChatHandler instance
func NewChatHandler(svc AnswerService, store VectorStoreHealth) *ChatHandler {
	return NewChatHandlerWithTimeout(svc, store, DefaultChatTimeout)
}

func NewChatHandlerWithTimeout(svc AnswerService, store VectorStoreHealth, timeout time.Duration) *ChatHandler {
	return &ChatHandler{svc: svc, store: store, timeout: timeout}
}

type ChatRequest struct {
	Message     string `json:"message"`
	CurrentPage string `json:"currentPage,omitempty"`
}

type SourceResponse struct {
	Title   string  `json:"title"`
	Slug    string  `json:"slug"`
	Section string  `json:"section,omitempty"`
	URL     string  `json:"url"`
	Score   float32 `json:"score"`
}

type ChatResponse struct {
	Message string           `json:"message"`
	Sources []SourceResponse `json:"sources"`
}

// Chat answers a question about the documentation.
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if strings.TrimSpace(req.Message) == "" {
		api.Error(w, http.StatusBadRequest, "message is required")
		return
	}

	// Fail fast before any provider call when the store is down.
	if !h.store.Health(r.Context()) {
		api.Error(w, http.StatusServiceUnavailable, domain.ErrVectorStoreUnavailable.Message)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	answer, err := h.svc.Answer(ctx, req.Message, req.CurrentPage)
	if err != nil {
		api.HandleError(w, err)
		return
	}

	sources := make([]SourceResponse, len(answer.Sources))
	for i, s := range answer.Sources {
		sources[i] = SourceResponse{
			Title:   s.Title,
			Slug:    s.Slug,
			Section: s.Section,
			URL:     s.URL,
			Score:   s.Score,
		}
	}

	api.JSON(w, http.StatusOK, ChatResponse{
		Message: answer.Message,
		Sources: sources,
	})
}
