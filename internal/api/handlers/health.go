package handlers

import (
	"net/http"

	"github.com/guidebot-io/guidebot/internal/api"
)

type HealthHandler struct {
	store              VectorStoreHealth
	providerConfigured bool
}

// NewHealthHandler creates a new HealthHandler instance
func NewHealthHandler(store VectorStoreHealth, providerConfigured bool) *HealthHandler {
	return &HealthHandler{store: store, providerConfigured: providerConfigured}
}

type HealthResponse struct {
	Status   string         `json:"status"`
	Services HealthServices `json:"services"`
}

type HealthServices struct {
	VectorStore       bool `json:"vectorStore"`
	EmbeddingProvider bool `json:"embeddingProvider"`
}

// Health reports service readiness. It always answers 200; a degraded
// dependency shows up in the body, not the status code.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	services := HealthServices{
		VectorStore:       h.store.Health(r.Context()),
		EmbeddingProvider: h.providerConfigured,
	}

	status := "healthy"
	if !services.VectorStore || !services.EmbeddingProvider {
		status = "degraded"
	}

	api.JSON(w, http.StatusOK, HealthResponse{
		Status:   status,
		Services: services,
	})
}
