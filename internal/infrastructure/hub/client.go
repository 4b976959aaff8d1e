// Package hub fetches match statistics from the QuakeWorld game hub.
package hub

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/cockroachdb/errors"
	"github.com/sony/gobreaker"
	"github.com/valyala/fasthttp"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"

	"github.com/riskibarqy/qw-league/internal/platform/logging"
	"github.com/riskibarqy/qw-league/internal/usecase"
)

const (
	DefaultGameInfoURL = "https://ncsphkjfominimxztjip.supabase.co/functions/v1/gameinfo"

	defaultTimeout      = 15 * time.Second
	defaultBackoff      = time.Second
	maxResponseBodySize = 6 << 20
)

var errTransient = errors.New("hub transient failure")

type CircuitBreakerConfig struct {
	Enabled        bool
	FailureCount   uint32
	OpenTimeout    time.Duration
	HalfOpenMaxReq uint32
}

type ClientConfig struct {
	HTTPClient     *fasthttp.Client
	GameInfoURL    string
	APIKey         string
	Timeout        time.Duration
	MaxRetries     int
	Backoff        time.Duration
	RatePerSecond  float64
	RateBurst      int
	CircuitBreaker CircuitBreakerConfig
	Logger         *logging.Logger
}

// Client resolves a hub game id into its ktxstats document. Calls for the
// same game id share one request.
type Client struct {
	httpClient  *fasthttp.Client
	gameInfoURL string
	apiKey      string
	timeout     time.Duration
	maxRetries  int
	backoff     time.Duration
	limiter     *rate.Limiter
	breaker     *gobreaker.CircuitBreaker
	flight      singleflight.Group
	logger      *logging.Logger
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &fasthttp.Client{
			Name:                "qw-league",
			MaxConnsPerHost:     16,
			ReadTimeout:         defaultTimeout,
			WriteTimeout:        defaultTimeout,
			MaxIdleConnDuration: time.Minute,
			MaxResponseBodySize: maxResponseBodySize,
		}
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	backoff := cfg.Backoff
	if backoff <= 0 {
		backoff = defaultBackoff
	}
	gameInfoURL := strings.TrimSpace(cfg.GameInfoURL)
	if gameInfoURL == "" {
		gameInfoURL = DefaultGameInfoURL
	}

	limit := rate.Inf
	burst := cfg.RateBurst
	if cfg.RatePerSecond > 0 {
		limit = rate.Limit(cfg.RatePerSecond)
		if burst <= 0 {
			burst = 1
		}
	}

	c := &Client{
		httpClient:  httpClient,
		gameInfoURL: gameInfoURL,
		apiKey:      strings.TrimSpace(cfg.APIKey),
		timeout:     timeout,
		maxRetries:  max(cfg.MaxRetries, 0),
		backoff:     backoff,
		limiter:     rate.NewLimiter(limit, burst),
		logger:      logger,
	}
	if cfg.CircuitBreaker.Enabled {
		c.breaker = newBreaker(cfg.CircuitBreaker, logger)
	}
	return c
}

func newBreaker(cfg CircuitBreakerConfig, logger *logging.Logger) *gobreaker.CircuitBreaker {
	failures := cfg.FailureCount
	if failures == 0 {
		failures = 5
	}
	halfOpen := cfg.HalfOpenMaxReq
	if halfOpen == 0 {
		halfOpen = 1
	}

	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "hub",
		MaxRequests: halfOpen,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		// Only transport-level failures count against the circuit.
		IsSuccessful: func(err error) bool {
			return err == nil || !errors.Is(err, errTransient)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed", "name", name, "from", from.String(), "to", to.String())
		},
	})
}

// FetchMatch posts the game id to the metadata endpoint, follows the
// returned ktxstats_url and decodes the stats document.
func (c *Client) FetchMatch(ctx context.Context, gameID string) (usecase.ExternalMatch, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(gameID), 10, 64)
	if err != nil || id <= 0 {
		return usecase.ExternalMatch{}, errors.Wrapf(usecase.ErrInvalidInput, "game id %q", gameID)
	}

	out, err, _ := c.flight.Do(gameID, func() (any, error) {
		return c.fetch(ctx, id)
	})
	if err != nil {
		return usecase.ExternalMatch{}, err
	}

	match, ok := out.(usecase.ExternalMatch)
	if !ok {
		return usecase.ExternalMatch{}, errors.Newf("unexpected match payload type %T", out)
	}
	return match, nil
}

func (c *Client) fetch(ctx context.Context, gameID int64) (usecase.ExternalMatch, error) {
	body, err := sonic.Marshal(gameInfoRequest{GameID: gameID})
	if err != nil {
		return usecase.ExternalMatch{}, errors.Wrap(err, "encode gameinfo request")
	}

	raw, err := c.do(ctx, fasthttp.MethodPost, c.gameInfoURL, body)
	if err != nil {
		return usecase.ExternalMatch{}, errors.Wrapf(err, "fetch gameinfo game_id=%d", gameID)
	}
	var info gameInfoResponse
	if err := sonic.Unmarshal(raw, &info); err != nil {
		return usecase.ExternalMatch{}, errors.Wrap(err, "decode gameinfo response")
	}
	if strings.TrimSpace(info.KTXStatsURL) == "" {
		return usecase.ExternalMatch{}, errors.Newf("gameinfo for game_id=%d has no ktxstats_url", gameID)
	}

	raw, err = c.do(ctx, fasthttp.MethodGet, info.KTXStatsURL, nil)
	if err != nil {
		return usecase.ExternalMatch{}, errors.Wrapf(err, "fetch ktxstats game_id=%d", gameID)
	}
	var match ktxMatch
	if err := sonic.Unmarshal(raw, &match); err != nil {
		return usecase.ExternalMatch{}, errors.Wrap(err, "decode ktxstats document")
	}
	return match.external(), nil
}

func (c *Client) do(ctx context.Context, method, url string, body []byte) ([]byte, error) {
	if c.breaker == nil {
		return c.executeRequest(ctx, method, url, body)
	}

	out, err := c.breaker.Execute(func() (interface{}, error) {
		return c.executeRequest(ctx, method, url, body)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		c.logger.WarnContext(ctx, "hub circuit breaker rejected request", "state", c.breaker.State().String())
		return nil, errors.Wrap(usecase.ErrDependencyUnavailable, "game hub is temporarily unavailable")
	}
	if err != nil {
		return nil, err
	}
	return out.([]byte), nil
}

func (c *Client) executeRequest(ctx context.Context, method, url string, body []byte) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, errors.Wrap(err, "wait for rate limiter")
		}

		raw, status, err := c.send(ctx, method, url, body)
		switch {
		case err != nil:
			lastErr = errors.Mark(errors.Wrap(err, "send request"), errTransient)
		case status >= 200 && status < 300:
			return raw, nil
		case isRetryableStatus(status):
			lastErr = errors.Mark(errors.Newf("hub status=%d body=%s", status, abbreviateBody(raw)), errTransient)
		default:
			return nil, errors.Newf("hub status=%d body=%s", status, abbreviateBody(raw))
		}

		if attempt == c.maxRetries {
			break
		}
		timer := time.NewTimer(time.Duration(attempt+1) * c.backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	c.logger.WarnContext(ctx, "hub request failed", "url", url, "attempts", c.maxRetries+1, "error", lastErr)
	return nil, lastErr
}

func (c *Client) send(ctx context.Context, method, url string, body []byte) ([]byte, int, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(url)
	req.Header.SetMethod(method)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.SetContentType("application/json")
		req.SetBody(body)
		if c.apiKey != "" {
			req.Header.Set("apikey", c.apiKey)
			req.Header.Set("Authorization", "Bearer "+c.apiKey)
		}
	}

	deadline := time.Now().Add(c.timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := c.httpClient.DoDeadline(req, resp, deadline); err != nil {
		return nil, 0, err
	}

	raw := append([]byte(nil), resp.Body()...)
	return raw, resp.StatusCode(), nil
}

// IsTransient reports whether err came from a retryable hub failure.
func IsTransient(err error) bool {
	return errors.Is(err, errTransient)
}

func isRetryableStatus(status int) bool {
	return status == http.StatusTooManyRequests || status >= http.StatusInternalServerError
}

func abbreviateBody(raw []byte) string {
	const limit = 256
	text := strings.TrimSpace(string(raw))
	if len(text) <= limit {
		return text
	}
	return text[:limit] + "..."
}
