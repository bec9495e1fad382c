package espn

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/preston-bernstein/sports-scores-service/internal/domain/leagues"
	"github.com/preston-bernstein/sports-scores-service/internal/providers"
)

// Config controls how the ESPN client reaches the scoreboard pages.
type Config struct {
	BaseURL    string
	UserAgent  string
	HTTPClient *http.Client
	Timeout    time.Duration
}

// Client downloads ESPN scoreboard pages.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient httpDoer
	now        func() time.Time
}

// NewClient constructs an ESPN client with the provided configuration.
func NewClient(cfg Config) *Client {
	return &Client{
		baseURL:    normalizeBaseURL(cfg.BaseURL),
		userAgent:  resolveUserAgent(cfg.UserAgent),
		httpClient: resolveHTTPClient(cfg.HTTPClient, cfg.Timeout),
		now:        time.Now,
	}
}

// ScoreboardURL returns the page URL for a league.
func (c *Client) ScoreboardURL(league string) (string, error) {
	l, ok := leagues.Lookup(league)
	if !ok {
		return "", fmt.Errorf("unknown league %q", league)
	}
	return c.baseURL + "/" + l.ScoreboardPath, nil
}

// FetchRawPayload downloads the scoreboard page for league.
func (c *Client) FetchRawPayload(ctx context.Context, league string) ([]byte, error) {
	url, err := c.ScoreboardURL(league)
	if err != nil {
		return nil, providers.NetworkError(league, 0, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, providers.NetworkError(league, 0, fmt.Errorf("creating request: %w", err))
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, providers.NetworkError(league, 0, fmt.Errorf("fetching page: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, &providers.RateLimitError{
			Provider:   ProviderName,
			StatusCode: resp.StatusCode,
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After"), c.now()),
			Message:    "espn rate limited",
		}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		msg := strings.TrimSpace(string(snippet))
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return nil, providers.NetworkError(league, resp.StatusCode, errors.New(msg))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, providers.NetworkError(league, resp.StatusCode, fmt.Errorf("reading body: %w", err))
	}
	return body, nil
}
