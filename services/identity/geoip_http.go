package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/mikewolf256/detection-engineering-mini-lab/config"
	"github.com/mikewolf256/detection-engineering-mini-lab/models"
	"github.com/mikewolf256/detection-engineering-mini-lab/services"
)

// IPGeoClient resolves IP locations through an ipgeolocation.io style API.
type IPGeoClient struct {
	cfg        config.GeoConfig
	httpClient *http.Client
	logger     *zap.Logger
}

// NewIPGeoClient creates a new HTTP geolocation client
func NewIPGeoClient(cfg config.GeoConfig, logger *zap.Logger) *IPGeoClient {
	if cfg.Timeout == 0 {
		cfg.Timeout = 5 * time.Second
	}

	return &IPGeoClient{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logger,
	}
}

// ipGeoResponse is the subset of the provider response the pipeline uses.
// country_code2 is preferred over the display name so scoring sees the same
// short codes the static table uses.
type ipGeoResponse struct {
	City        string `json:"city"`
	CountryName string `json:"country_name"`
	CountryCode string `json:"country_code2"`
}

// ResolveGeo fetches the location for one IP
func (c *IPGeoClient) ResolveGeo(ctx context.Context, ip string) (*models.GeoRecord, error) {
	if ip == "" {
		return nil, services.NewDomainError(services.ErrorTypeResolver, "geo lookup requires an ip", nil)
	}

	q := url.Values{}
	q.Set("apiKey", c.cfg.APIKey)
	q.Set("ip", ip)
	reqURL := c.cfg.BaseURL + "/ipgeo?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, services.WrapResolver("build geo request", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, services.WrapResolver("geo lookup", err)
	}
	defer resp.Body.Close()

	c.logger.Debug("geo lookup",
		zap.String("ip", ip),
		zap.Int("status", resp.StatusCode))

	if resp.StatusCode >= 400 {
		return nil, services.NewDomainError(
			services.ErrorTypeResolver,
			fmt.Sprintf("geo lookup returned %d", resp.StatusCode),
			nil,
		).WithDetail("status_code", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, services.WrapResolver("read geo body", err)
	}

	var loc ipGeoResponse
	if err := json.Unmarshal(body, &loc); err != nil {
		return nil, services.WrapResolver("decode geo body", err)
	}

	country := loc.CountryCode
	if country == "" {
		country = loc.CountryName
	}

	return &models.GeoRecord{
		IP:      ip,
		City:    loc.City,
		Country: country,
	}, nil
}
