package bureau

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"loan-origination/internal/config"
	"loan-origination/internal/domain/underwriting"
	"loan-origination/internal/infrastructure/monitoring"
	"loan-origination/internal/pkg/apperrors"
)

// Client calls the credit bureau and offer mart endpoints. Each lookup has a
// bounded timeout and a small retry budget for transient transport failures;
// non-2xx responses and malformed bodies are not retried.
type Client struct {
	baseURL    string
	httpClient *http.Client
	maxRetries int
	logger     *slog.Logger
}

var _ underwriting.Bureau = (*Client)(nil)

func NewClient(cfg config.BureauConfig, logger *slog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	retries := cfg.MaxRetries
	if retries < 0 {
		retries = 0
	}
	return &Client{
		baseURL:    cfg.BaseURL,
		httpClient: &http.Client{Timeout: timeout},
		maxRetries: retries,
		logger:     logger.With(slog.String("component", "bureauClient")),
	}
}

func (c *Client) CreditScore(ctx context.Context, phone string) (int64, error) {
	return c.fetchInt(ctx, "/credit-score", "credit_score", phone)
}

func (c *Client) PreApprovedLimit(ctx context.Context, phone string) (int64, error) {
	return c.fetchInt(ctx, "/pre-approved-limit", "pre_approved_limit", phone)
}

func (c *Client) fetchInt(ctx context.Context, path, field, phone string) (int64, error) {
	endpoint := fmt.Sprintf("%s%s?phone=%s", c.baseURL, path, url.QueryEscape(phone))

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return 0, apperrors.WrapRemoteError(ctx.Err(), "lookup canceled")
			case <-time.After(time.Duration(attempt) * 200 * time.Millisecond):
			}
			c.logger.WarnContext(ctx, "Retrying bureau lookup", slog.String("path", path), slog.Int("attempt", attempt))
		}

		value, retryable, err := c.doRequest(ctx, endpoint, field)
		if err == nil {
			return value, nil
		}
		lastErr = err
		if !retryable {
			break
		}
	}

	monitoring.RecordBureauFailure(path)
	return 0, apperrors.WrapRemoteError(lastErr, fmt.Sprintf("lookup %s failed", path))
}

func (c *Client) doRequest(ctx context.Context, endpoint, field string) (value int64, retryable bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, false, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, true, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return 0, resp.StatusCode >= 500, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var body map[string]json.Number
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, false, fmt.Errorf("decoding response body: %w", err)
	}

	raw, ok := body[field]
	if !ok {
		return 0, false, fmt.Errorf("response missing field %q", field)
	}
	parsed, err := raw.Int64()
	if err != nil {
		return 0, false, fmt.Errorf("field %q is not an integer: %w", field, err)
	}
	return parsed, false, nil
}
