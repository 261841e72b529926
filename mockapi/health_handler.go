package mockapi

import (
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/mikewolf256/detection-engineering-mini-lab/utils"
)

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// HealthHandler handles health-related HTTP requests
type HealthHandler struct {
	store  *EventStore
	logger *zap.Logger
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(store *EventStore, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		store:  store,
		logger: logger,
	}
}

// HandleHealth handles GET /healthz
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	response := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks: map[string]string{
			"events": fmt.Sprintf("%d seeded", h.store.Len()),
		},
	}

	_ = utils.WriteJSON(w, http.StatusOK, response)
}
