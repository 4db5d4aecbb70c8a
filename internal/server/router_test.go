package server

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guidebot-io/guidebot/internal/api/handlers"
	"github.com/guidebot-io/guidebot/internal/service"
)

type stubAnswerService struct {
	answer *service.Answer
	err    error
}

func (s *stubAnswerService) Answer(ctx context.Context, query, currentPage string) (*service.Answer, error) {
	return s.answer, s.err
}

type stubHealth struct {
	healthy bool
}

func (s *stubHealth) Health(ctx context.Context) bool {
	return s.healthy
}

func newTestRouter() http.Handler {
	svc := &stubAnswerService{answer: &service.Answer{Message: "hello"}}
	store := &stubHealth{healthy: true}
	return NewRouter(RouterConfig{
		ChatHandler:   handlers.NewChatHandler(svc, store),
		HealthHandler: handlers.NewHealthHandler(store, true),
	})
}

func TestRouter(t *testing.T) {
	router := newTestRouter()

	t.Run("chat route", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/chat", bytes.NewBufferString(`{"message":"hi"}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "hello")
	})

	t.Run("health route", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "healthy")
	})

	t.Run("unknown route returns 404", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/nope", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("chat rejects GET", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/chat", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})

	t.Run("request id header is set", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
	})

	t.Run("oversized body is rejected", func(t *testing.T) {
		body := strings.Repeat("x", 65*1024)
		req := httptest.NewRequest(http.MethodPost, "/api/chat", bytes.NewBufferString(body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	})
}
