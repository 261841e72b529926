package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mikewolf256/detection-engineering-mini-lab/config"
	"github.com/mikewolf256/detection-engineering-mini-lab/models"
	"github.com/mikewolf256/detection-engineering-mini-lab/services"
)

// OktaResolver looks up users against an Okta-style directory API.
type OktaResolver struct {
	cfg        config.OktaConfig
	httpClient *http.Client
	logger     *zap.Logger
}

// NewOktaResolver creates a new directory API resolver
func NewOktaResolver(cfg config.OktaConfig, logger *zap.Logger) *OktaResolver {
	if cfg.Timeout == 0 {
		cfg.Timeout = 5 * time.Second
	}

	return &OktaResolver{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logger,
	}
}

// oktaUser is the wire shape of a directory user
type oktaUser struct {
	UserID     string `json:"user_id"`
	Email      string `json:"email"`
	Department string `json:"department"`
	Status     string `json:"status"`
	MFAEnabled *bool  `json:"mfa_enabled"`
	LastLogin  string `json:"last_login"`
}

// ResolveIdentity fetches one user record. Any failure comes back as a
// resolver error for the enrichment layer to degrade on.
func (r *OktaResolver) ResolveIdentity(ctx context.Context, userID string) (*models.IdentityRecord, error) {
	if userID == "" {
		return nil, services.NewDomainError(services.ErrorTypeResolver, "identity lookup requires a user id", nil)
	}

	reqURL := r.cfg.BaseURL + "/api/v1/users/" + url.PathEscape(userID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, services.WrapResolver("build identity request", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "SSWS "+r.cfg.APIToken)

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, services.WrapResolver("identity lookup", err)
	}
	defer resp.Body.Close()

	r.logger.Debug("identity lookup",
		zap.String("url", reqURL),
		zap.Int("status", resp.StatusCode))

	if resp.StatusCode == http.StatusNotFound {
		return nil, services.NewDomainError(
			services.ErrorTypeResolver,
			fmt.Sprintf("user %s not found", userID),
			nil,
		).WithDetail("user_id", userID)
	}

	if resp.StatusCode >= 400 {
		return nil, services.NewDomainError(
			services.ErrorTypeResolver,
			fmt.Sprintf("identity lookup returned %d", resp.StatusCode),
			nil,
		).WithDetail("status_code", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, services.WrapResolver("read identity body", err)
	}

	var user oktaUser
	if err := json.Unmarshal(body, &user); err != nil {
		return nil, services.WrapResolver("decode identity body", err)
	}

	rec := &models.IdentityRecord{
		UserID:     userID,
		Email:      user.Email,
		Department: user.Department,
		Status:     models.AccountStatus(strings.ToUpper(user.Status)),
		MFAEnabled: user.MFAEnabled,
		LastLogin:  user.LastLogin,
	}
	if user.UserID != "" {
		rec.UserID = user.UserID
	}
	return rec, nil
}
