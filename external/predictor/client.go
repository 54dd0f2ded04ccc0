package predictor

import (
	"context"
	stderrors "errors"
	"fmt"
	"math"
	"net/url"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/darkscore-api/internal/domain/prediction"
	"github.com/riskibarqy/darkscore-api/internal/platform/logging"
	"github.com/riskibarqy/darkscore-api/internal/platform/resilience"
	"github.com/riskibarqy/darkscore-api/internal/usecase"
	"github.com/valyala/bytebufferpool"
	"github.com/valyala/fasthttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	defaultTimeout   = 5 * time.Second
	maxResponseBytes = 1 << 20
	maxLoggedBody    = 240
	clientName       = "darkscore-api"
)

var errPredictorTransient = crerr.New("predictor transient failure")

type ClientConfig struct {
	BaseURL        string
	Timeout        time.Duration
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client calls the match-outcome model service.
type Client struct {
	http    *fasthttp.Client
	baseURL string
	timeout time.Duration
	logger  *logging.Logger
	breaker *resilience.CircuitBreaker
}

func NewClient(cfg ClientConfig) (*Client, error) {
	baseURL, err := validateHTTPBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, crerr.Wrap(err, "invalid PREDICTOR_BASE_URL")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	return &Client{
		http: &fasthttp.Client{
			Name:                clientName,
			ReadTimeout:         timeout,
			WriteTimeout:        timeout,
			MaxResponseBodySize: maxResponseBytes,
		},
		baseURL: baseURL,
		timeout: timeout,
		logger:  logger,
		breaker: cfg.CircuitBreaker.Build(),
	}, nil
}

func (c *Client) PredictMatch(ctx context.Context, req prediction.MatchRequest) (prediction.MatchPrediction, error) {
	var out matchResponse
	err := c.post(ctx, "/predict", matchRequest{
		TeamA:       req.TeamA,
		TeamB:       req.TeamB,
		NeutralSite: req.NeutralSite,
	}, &out)
	if err != nil {
		return prediction.MatchPrediction{}, err
	}
	return out.toDomain(), nil
}

func (c *Client) ScoreUpset(ctx context.Context, req prediction.UpsetRequest) (prediction.UpsetResult, error) {
	var out upsetResponse
	err := c.post(ctx, "/upset", upsetRequest{
		TeamA:       req.TeamA,
		TeamB:       req.TeamB,
		ScoreA:      req.ScoreA,
		ScoreB:      req.ScoreB,
		NeutralSite: req.NeutralSite,
	}, &out)
	if err != nil {
		return prediction.UpsetResult{}, err
	}
	return out.toDomain(), nil
}

func (c *Client) post(ctx context.Context, path string, payload, target any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := c.breaker.Allow(); err != nil {
		c.logger.WarnContext(ctx, "predictor circuit breaker rejected request", "path", path, "state", c.breaker.State())
		return fmt.Errorf("%w: match predictor is temporarily unavailable", usecase.ErrDependencyUnavailable)
	}

	fullURL := c.baseURL + path
	span := trace.SpanFromContext(ctx)
	if span.IsRecording() {
		span.SetAttributes(attribute.String("predictor.url", fullURL))
	}

	raw, err := c.execute(ctx, fullURL, payload)
	c.breaker.Record(isPredictorCircuitFailure(err))
	if err != nil {
		if isPredictorCircuitFailure(err) {
			c.logger.WarnContext(ctx, "predictor request failed", "url", fullURL, "error", err)
			return fmt.Errorf("%w: %v", usecase.ErrDependencyUnavailable, err)
		}
		return err
	}

	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode predictor payload: %w", err)
	}
	return nil
}

func (c *Client) execute(ctx context.Context, fullURL string, payload any) ([]byte, error) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	if err := sonic.ConfigDefault.NewEncoder(buf).Encode(payload); err != nil {
		return nil, crerr.Wrap(err, "marshal predictor payload")
	}

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(fullURL)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	req.Header.Set(fasthttp.HeaderAccept, "application/json")
	req.SetBody(buf.B)

	deadline := time.Now().Add(c.timeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}

	if err := c.http.DoDeadline(req, resp, deadline); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: send request: %v", errPredictorTransient, err)
	}

	status := resp.StatusCode()
	body := append([]byte(nil), resp.Body()...)
	switch {
	case status >= 200 && status < 300:
		return body, nil
	case isRetryableStatus(status):
		return nil, fmt.Errorf("%w: predictor status=%d body=%s", errPredictorTransient, status, abbreviateBody(body))
	case status == fasthttp.StatusBadRequest || status == fasthttp.StatusNotFound || status == fasthttp.StatusUnprocessableEntity:
		return nil, fmt.Errorf("%w: predictor rejected request status=%d body=%s", usecase.ErrInvalidInput, status, abbreviateBody(body))
	default:
		return nil, fmt.Errorf("predictor status=%d body=%s", status, abbreviateBody(body))
	}
}

func isPredictorCircuitFailure(err error) bool {
	if err == nil {
		return false
	}
	return stderrors.Is(err, errPredictorTransient)
}

func isRetryableStatus(statusCode int) bool {
	return statusCode == fasthttp.StatusRequestTimeout ||
		statusCode == fasthttp.StatusTooManyRequests ||
		statusCode >= fasthttp.StatusInternalServerError
}

func validateHTTPBaseURL(raw string) (string, error) {
	candidate := strings.TrimSpace(raw)
	if candidate == "" {
		return "", crerr.New("value is empty")
	}

	parsed, err := url.Parse(candidate)
	if err != nil {
		return "", crerr.Wrapf(err, "parse %q", candidate)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", crerr.Newf("%q uses unsupported scheme=%q; expected http or https", candidate, parsed.Scheme)
	}
	if strings.TrimSpace(parsed.Host) == "" {
		return "", crerr.Newf("%q has empty host", candidate)
	}

	return strings.TrimRight(candidate, "/"), nil
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= maxLoggedBody {
		return text
	}
	return text[:maxLoggedBody] + "..."
}

// percent rounds a model score into a whole percentage in [0, 100].
func percent(v float64) int {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	return min(int(math.Round(v)), 100)
}

// CircuitSnapshot reports the breaker state. A disabled breaker reads as closed.
func (c *Client) CircuitSnapshot() resilience.CircuitSnapshot {
	return c.breaker.Snapshot()
}
