package osquery

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	json "github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/mikewolf256/detection-engineering-mini-lab/config"
	"github.com/mikewolf256/detection-engineering-mini-lab/models"
	"github.com/mikewolf256/detection-engineering-mini-lab/services"
)

const eventsPath = "/process_events"

// Client fetches process events from the osquery-style API. One Client is
// safe for sequential reuse; pagination state lives in the cursor, not here.
type Client struct {
	cfg        config.OsqueryConfig
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a new process-events API client
func NewClient(cfg config.OsqueryConfig, logger *zap.Logger) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 5 * time.Second
	}

	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logger,
	}
}

// PageParams identifies one page of the event feed
type PageParams struct {
	Limit  int
	Cursor string
}

// FetchPage performs a single bounded page fetch and classifies the result.
// It never returns an error: failures come back tagged on the outcome, with
// an empty page for upstream error statuses and the synthetic fallback page
// for transport failures.
func (c *Client) FetchPage(ctx context.Context, params PageParams) FetchOutcome {
	reqURL := c.pageURL(params)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return transportErrorOutcome(services.WrapTransport("build request", err))
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("page fetch transport failure, substituting synthetic events",
			zap.String("url", reqURL),
			zap.Error(err))
		return transportErrorOutcome(services.WrapTransport("fetch page", err))
	}
	defer resp.Body.Close()

	c.logger.Debug("page fetch",
		zap.String("url", reqURL),
		zap.Int("status", resp.StatusCode))

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return transportErrorOutcome(services.WrapTransport("read page body", err))
	}

	if resp.StatusCode >= 400 {
		return httpErrorOutcome(resp.StatusCode, services.NewDomainError(
			services.ErrorTypeHTTP,
			fmt.Sprintf("upstream returned %d", resp.StatusCode),
			nil,
		).WithDetail("status_code", resp.StatusCode))
	}

	var page models.EventPage
	if err := json.Unmarshal(body, &page); err != nil {
		return httpErrorOutcome(resp.StatusCode, services.NewDomainError(
			services.ErrorTypeHTTP,
			"malformed page body",
			err,
		))
	}

	return successOutcome(page.ToPageResult(), resp.StatusCode)
}

// FetchResult accumulates a full pagination run
type FetchResult struct {
	Events []models.Event
	// Pages counts fetch calls made, including the degraded final one.
	Pages      int
	Synthetic  bool
	LastStatus OutcomeStatus
	LastError  error
}

// Degraded reports whether the run ended on anything other than natural
// cursor exhaustion.
func (r *FetchResult) Degraded() bool {
	return r.LastStatus != OutcomeSuccess
}

// FetchAll walks the cursor chain from the beginning and accumulates events
// in arrival order. The loop stops on an empty cursor, on the first degraded
// outcome, or at the configured page cap. Degraded runs still return their
// events with a nil error; only the page cap is surfaced as an error, and
// even then the partial result is returned alongside it.
func (c *Client) FetchAll(ctx context.Context) (*FetchResult, error) {
	result := &FetchResult{
		Events:     []models.Event{},
		LastStatus: OutcomeSuccess,
	}

	cursor := ""
	for {
		outcome := c.FetchPage(ctx, PageParams{Limit: c.cfg.PageSize, Cursor: cursor})
		result.Pages++
		result.Events = append(result.Events, outcome.Page.Events...)
		result.LastStatus = outcome.Status
		if outcome.Page.Synthetic {
			result.Synthetic = true
		}

		if !outcome.OK() {
			result.LastError = outcome.Err
			c.logger.Warn("pagination stopped early",
				zap.String("status", string(outcome.Status)),
				zap.Int("pages", result.Pages),
				zap.Error(outcome.Err))
			return result, nil
		}

		if !outcome.Page.HasMore() {
			c.logger.Debug("pagination exhausted",
				zap.Int("pages", result.Pages),
				zap.Int("events", len(result.Events)))
			return result, nil
		}

		if result.Pages >= c.cfg.MaxPages {
			err := services.NewDomainError(
				services.ErrorTypePaginationLimit,
				fmt.Sprintf("stopped after %d pages with more data remaining", result.Pages),
				nil,
			).WithDetail("max_pages", c.cfg.MaxPages)
			result.LastError = err
			return result, err
		}

		cursor = outcome.Page.NextCursor
	}
}

func (c *Client) pageURL(params PageParams) string {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(params.Limit))
	if params.Cursor != "" {
		q.Set("cursor", params.Cursor)
	}
	return c.cfg.BaseURL + eventsPath + "?" + q.Encode()
}
