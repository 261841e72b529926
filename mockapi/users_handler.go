package mockapi

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/mikewolf256/detection-engineering-mini-lab/models"
	"github.com/mikewolf256/detection-engineering-mini-lab/services/identity"
	"github.com/mikewolf256/detection-engineering-mini-lab/utils"
)

// userResponse is the wire shape served for a directory user.
type userResponse struct {
	UserID     string `json:"user_id"`
	Email      string `json:"email"`
	Department string `json:"department"`
	Status     string `json:"status"`
	MFAEnabled *bool  `json:"mfa_enabled,omitempty"`
	LastLogin  string `json:"last_login,omitempty"`
}

// UsersHandler serves the directory lookup endpoint from the seeded users.
type UsersHandler struct {
	users  map[string]models.IdentityRecord
	logger *zap.Logger
}

// NewUsersHandler creates a new UsersHandler
func NewUsersHandler(logger *zap.Logger) *UsersHandler {
	users := make(map[string]models.IdentityRecord)
	for _, u := range identity.SeedUsers() {
		users[u.UserID] = u
	}

	return &UsersHandler{
		users:  users,
		logger: logger,
	}
}

// HandleGetUser handles GET /api/v1/users/{id}
func (h *UsersHandler) HandleGetUser(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get("Authorization") == "" {
		_ = utils.WriteUnauthorized(w, "")
		return
	}

	id := chi.URLParam(r, "id")
	rec, ok := h.users[id]
	if !ok {
		h.logger.Debug("directory user not found", zap.String("user_id", id))
		_ = utils.WriteNotFound(w, fmt.Sprintf("user %s not found", id))
		return
	}

	_ = utils.WriteJSON(w, http.StatusOK, userResponse{
		UserID:     rec.UserID,
		Email:      rec.Email,
		Department: rec.Department,
		Status:     string(rec.Status),
		MFAEnabled: rec.MFAEnabled,
		LastLogin:  rec.LastLogin,
	})
}
