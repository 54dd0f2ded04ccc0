package playerapi

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/darkscore-api/internal/domain/player"
	"github.com/riskibarqy/darkscore-api/internal/platform/logging"
	"github.com/riskibarqy/darkscore-api/internal/platform/resilience"
	"github.com/riskibarqy/darkscore-api/internal/usecase"
)

const (
	defaultBaseURL    = "http://localhost:8000"
	defaultTimeout    = 10 * time.Second
	maxResponseBytes  = 4 << 20
	maxLoggedBodySize = 240
)

var errPlayerAPITransient = crerr.New("player api transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
	// Backoff overrides the linear retry delay. Tests set it to zero.
	Backoff func(attempt int) time.Duration
}

// Client reads national team rosters from the player data service.
type Client struct {
	httpClient *http.Client
	baseURL    string
	maxRetries int
	logger     *logging.Logger
	breaker    *resilience.CircuitBreaker
	flight     resilience.SingleFlight[[]byte]
	backoff    func(attempt int) time.Duration
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = defaultTimeout
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	backoff := cfg.Backoff
	if backoff == nil {
		backoff = linearBackoff
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		maxRetries: max(cfg.MaxRetries, 0),
		logger:     logger,
		breaker:    cfg.CircuitBreaker.Build(),
		backoff:    backoff,
	}
}

// ListByTeam fetches a roster in provider order. Jersey numbers are assigned
// from that order. An empty roster is reported as not found.
func (c *Client) ListByTeam(ctx context.Context, teamName string) ([]player.Player, error) {
	nation := strings.ToLower(strings.TrimSpace(teamName))
	if nation == "" {
		return nil, fmt.Errorf("%w: team name is required", usecase.ErrInvalidInput)
	}

	rows, err := c.fetchPlayers(ctx, nation)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no players for team=%s", usecase.ErrNotFound, teamName)
	}

	out := make([]player.Player, 0, len(rows))
	for i, row := range rows {
		out = append(out, row.toDomain(i+1))
	}
	return out, nil
}

func (c *Client) fetchPlayers(ctx context.Context, nation string) ([]playerRow, error) {
	if err := c.breaker.Allow(); err != nil {
		c.logger.WarnContext(ctx, "player api circuit breaker rejected request", "state", c.breaker.State())
		return nil, fmt.Errorf("%w: player data provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
	}

	values := url.Values{}
	values.Set("nation", nation)
	fullURL := c.baseURL + "/players?" + values.Encode()

	// The shared fetch outlives any single caller; the http client timeout bounds it.
	flightCtx := context.WithoutCancel(ctx)
	raw, err, _ := c.flight.Do(fullURL, func() ([]byte, error) {
		raw, reqErr := c.executeRequest(flightCtx, fullURL)
		c.breaker.Record(isPlayerAPICircuitFailure(reqErr))
		return raw, reqErr
	})
	if err != nil {
		if isPlayerAPICircuitFailure(err) {
			return nil, fmt.Errorf("%w: %v", usecase.ErrDependencyUnavailable, err)
		}
		return nil, err
	}

	rows, err := decodePlayers(raw)
	if err != nil {
		return nil, fmt.Errorf("decode player payload: %w", err)
	}
	return rows, nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = fmt.Errorf("%w: send request: %v", errPlayerAPITransient, err)
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
			_ = resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = fmt.Errorf("%w: read response body: %v", errPlayerAPITransient, readErr)
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				return raw, nil
			case resp.StatusCode == http.StatusNotFound:
				return []byte("[]"), nil
			case isRetryableStatus(resp.StatusCode):
				lastErr = fmt.Errorf("%w: provider status=%d body=%s", errPlayerAPITransient, resp.StatusCode, abbreviateBody(raw))
			default:
				return nil, fmt.Errorf("provider status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
			}
		}

		if attempt == c.maxRetries {
			break
		}
		timer := time.NewTimer(c.backoff(attempt))
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("provider request failed")
	}
	c.logger.WarnContext(ctx, "player api request failed", "url", fullURL, "attempts", c.maxRetries+1, "error", lastErr)
	return nil, lastErr
}

// decodePlayers accepts either a bare array or a {"players": [...]} envelope.
func decodePlayers(raw []byte) ([]playerRow, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, nil
	}

	if trimmed[0] == '[' {
		var rows []playerRow
		if err := sonic.Unmarshal(trimmed, &rows); err != nil {
			return nil, err
		}
		return rows, nil
	}

	var envelope nationPlayersEnvelope
	if err := sonic.Unmarshal(trimmed, &envelope); err != nil {
		return nil, err
	}
	return envelope.Players, nil
}

func isPlayerAPICircuitFailure(err error) bool {
	if err == nil {
		return false
	}
	return stderrors.Is(err, errPlayerAPITransient)
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func linearBackoff(attempt int) time.Duration {
	return time.Duration(attempt+1) * time.Second
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= maxLoggedBodySize {
		return text
	}
	return text[:maxLoggedBodySize] + "..."
}

// CircuitSnapshot reports the breaker state. A disabled breaker reads as closed.
func (c *Client) CircuitSnapshot() resilience.CircuitSnapshot {
	return c.breaker.Snapshot()
}
