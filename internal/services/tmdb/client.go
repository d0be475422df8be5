package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sirupsen/logrus"

	"github.com/rsrkatangur0811/watchman/internal/config"
)

var (
	// ErrURLBuild means the request URL could not be constructed
	ErrURLBuild = errors.New("failed to build request URL")
	// ErrMissingConfig means the base URL or API key is absent
	ErrMissingConfig = errors.New("missing TMDB configuration")
	// ErrNotFound maps a 404 response
	ErrNotFound = errors.New("resource not found")
	// ErrRateLimited maps a 429 response
	ErrRateLimited = errors.New("rate limit exceeded")
)

// StatusError carries the status code of any other non-200 response or the
// context of a decode failure
type StatusError struct {
	Code int
	Err  error
}

func (e *StatusError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("bad response (status %d): %v", e.Code, e.Err)
	}
	return fmt.Sprintf("bad response (status %d)", e.Code)
}

func (e *StatusError) Unwrap() error { return e.Err }

const maxRateLimitRetries = 3

// Client handles communication with the TMDB API
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *logrus.Logger
}

// NewClient creates a new TMDB API client
func NewClient(cfg *config.Config, logger *logrus.Logger) (*Client, error) {
	if cfg.TMDBBaseURL == "" || cfg.TMDBAPIKey == "" {
		return nil, ErrMissingConfig
	}

	return &Client{
		baseURL:    cfg.TMDBBaseURL,
		apiKey:     cfg.TMDBAPIKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     logger,
	}, nil
}

// getJSON performs a GET request and decodes the JSON body into result.
// Rate-limited requests are retried with exponential backoff; every other
// failure is permanent.
func (c *Client) getJSON(ctx context.Context, url string, result interface{}) error {
	operation := func() error {
		err := c.fetchOnce(ctx, url, result)
		if err != nil && !errors.Is(err, ErrRateLimited) {
			return backoff.Permanent(err)
		}
		return err
	}

	policy := backoff.WithMaxRetries(backoff.NewExponentialBackOff(), maxRateLimitRetries)
	return backoff.Retry(operation, backoff.WithContext(policy, ctx))
}

func (c *Client) fetchOnce(ctx context.Context, url string, result interface{}) error {
	c.logger.WithField("url", url).Debug("Making TMDB API request")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		if result == nil {
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return &StatusError{Code: resp.StatusCode, Err: fmt.Errorf("failed to decode response: %w", err)}
		}
		return nil
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusTooManyRequests:
		return ErrRateLimited
	default:
		// Drain so the connection can be reused
		_, _ = io.Copy(io.Discard, resp.Body)
		return &StatusError{Code: resp.StatusCode}
	}
}
