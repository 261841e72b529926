package mockapi

import (
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/mikewolf256/detection-engineering-mini-lab/config"
	"github.com/mikewolf256/detection-engineering-mini-lab/models"
	"github.com/mikewolf256/detection-engineering-mini-lab/utils"
)

const defaultPageLimit = 50

// EventsHandler serves the paginated process-events endpoint.
type EventsHandler struct {
	store      *EventStore
	failStatus int
	logger     *zap.Logger
}

// NewEventsHandler creates a new EventsHandler
func NewEventsHandler(store *EventStore, cfg config.MockConfig, logger *zap.Logger) *EventsHandler {
	return &EventsHandler{
		store:      store,
		failStatus: cfg.FailStatus,
		logger:     logger,
	}
}

// HandleListEvents handles GET /process_events
func (h *EventsHandler) HandleListEvents(w http.ResponseWriter, r *http.Request) {
	if !strings.HasPrefix(r.Header.Get("Authorization"), "Bearer ") {
		_ = utils.WriteUnauthorized(w, "Bearer token required")
		return
	}

	if h.failStatus != 0 {
		h.logger.Debug("returning injected failure", zap.Int("status", h.failStatus))
		_ = utils.WriteError(w, h.failStatus, "failure injected by MOCK_FAIL_STATUS", nil)
		return
	}

	limit := defaultPageLimit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed <= 0 {
			_ = utils.WriteBadRequest(w, "limit must be a positive integer", nil)
			return
		}
		limit = parsed
	}

	offset := 0
	if cursor := r.URL.Query().Get("cursor"); cursor != "" {
		parsed, err := decodeCursor(cursor)
		if err != nil {
			_ = utils.WriteBadRequest(w, "invalid cursor", map[string]interface{}{
				"cursor": cursor,
			})
			return
		}
		offset = parsed
	}

	events, next, hasMore := h.store.Page(offset, limit)

	page := models.EventPage{Events: events}
	if hasMore {
		cursor := encodeCursor(next)
		page.NextCursor = &cursor
	}

	h.logger.Debug("served event page",
		zap.Int("offset", offset),
		zap.Int("count", len(events)),
		zap.Bool("more", hasMore))

	_ = utils.WriteJSON(w, http.StatusOK, page)
}
