// Package tmdb implements movie.Catalog on top of The Movie Database v3 API.
package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"moviereview/movie"
	"moviereview/pkg/metrics"

	"github.com/cenkalti/backoff/v4"
	"github.com/go-playground/validator/v10"
	"golang.org/x/time/rate"
)

const (
	DefaultBaseURL = "https://api.themoviedb.org/3"

	maxBodySize = 4 << 20
)

type Options struct {
	BaseURL    string
	APIKey     string
	Timeout    time.Duration
	MaxRetries uint64
	// RetryWait is the first backoff interval; it doubles on every retry.
	RetryWait time.Duration
	// RateLimit is the number of requests per second, zero means unlimited.
	RateLimit  float64
	HTTPClient *http.Client
}

// Client talks to TMDB. It is safe for concurrent use.
type Client struct {
	baseURL    string
	apiKey     string
	maxRetries uint64
	retryWait  time.Duration
	http       *http.Client
	limiter    *rate.Limiter
	validate   *validator.Validate
}

// StatusError is returned for non retryable HTTP statuses.
type StatusError struct {
	Endpoint string
	Code     int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("tmdb: %s: unexpected status %d", e.Endpoint, e.Code)
}

type moviePayload struct {
	ID         int64   `json:"id" validate:"gt=0"`
	Title      string  `json:"title" validate:"required"`
	PosterPath *string `json:"poster_path"`
}

type pagePayload struct {
	Page    int            `json:"page"`
	Results []moviePayload `json:"results" validate:"dive"`
}

func New(opts Options) (*Client, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, errors.New("tmdb: api key is required")
	}

	baseURL := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("tmdb: invalid base url: %w", err)
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	limit := rate.Inf
	burst := 1
	if opts.RateLimit > 0 {
		limit = rate.Limit(opts.RateLimit)
		burst = int(opts.RateLimit)
		if burst < 1 {
			burst = 1
		}
	}

	retryWait := opts.RetryWait
	if retryWait <= 0 {
		retryWait = 200 * time.Millisecond
	}

	return &Client{
		baseURL:    baseURL,
		apiKey:     opts.APIKey,
		maxRetries: opts.MaxRetries,
		retryWait:  retryWait,
		http:       httpClient,
		limiter:    rate.NewLimiter(limit, burst),
		validate:   validator.New(),
	}, nil
}

func (c *Client) FetchByID(ctx context.Context, externalID int64) (movie.Movie, error) {
	var payload moviePayload
	path := "/movie/" + strconv.FormatInt(externalID, 10)
	if err := c.get(ctx, "movie", path, url.Values{}, &payload); err != nil {
		return movie.Movie{}, err
	}
	if err := c.validate.Struct(payload); err != nil {
		return movie.Movie{}, unavailable(fmt.Errorf("tmdb: movie %d: incomplete payload: %w", externalID, err))
	}
	return payload.toMovie(), nil
}

func (c *Client) Search(ctx context.Context, query string, page int) ([]movie.Movie, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("page", strconv.Itoa(page))
	return c.list(ctx, "search", "/search/movie", params)
}

func (c *Client) Popular(ctx context.Context, page int) ([]movie.Movie, error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	return c.list(ctx, "popular", "/movie/popular", params)
}

func (c *Client) list(ctx context.Context, endpoint, path string, params url.Values) ([]movie.Movie, error) {
	var payload pagePayload
	if err := c.get(ctx, endpoint, path, params, &payload); err != nil {
		return nil, err
	}
	if err := c.validate.Struct(payload); err != nil {
		return nil, unavailable(fmt.Errorf("tmdb: %s: incomplete payload: %w", endpoint, err))
	}

	movies := make([]movie.Movie, len(payload.Results))
	for i, result := range payload.Results {
		movies[i] = result.toMovie()
	}
	return movies, nil
}

// get performs a GET with retries on network errors, 429 and 5xx, and
// decodes the JSON body into out.
func (c *Client) get(ctx context.Context, endpoint, path string, params url.Values, out interface{}) error {
	params.Set("api_key", c.apiKey)
	target := c.baseURL + path + "?" + params.Encode()

	status := 0
	start := time.Now()
	op := func() error {
		if err := c.limiter.Wait(ctx); err != nil {
			return backoff.Permanent(err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.http.Do(req)
		if err != nil {
			status = 0
			return fmt.Errorf("tmdb: %s: %w", endpoint, redact(err, c.apiKey))
		}
		defer resp.Body.Close()

		status = resp.StatusCode
		switch {
		case status == http.StatusTooManyRequests || status >= http.StatusInternalServerError:
			_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodySize))
			return &StatusError{Endpoint: endpoint, Code: status}
		case status < 200 || status >= 300:
			return backoff.Permanent(&StatusError{Endpoint: endpoint, Code: status})
		}

		if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodySize)).Decode(out); err != nil {
			return backoff.Permanent(fmt.Errorf("tmdb: %s: decode response: %w", endpoint, err))
		}
		return nil
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = c.retryWait
	policy.MaxElapsedTime = 0
	err := backoff.Retry(op, backoff.WithContext(backoff.WithMaxRetries(policy, c.maxRetries), ctx))

	metrics.ObserveCatalogRequest(endpoint, status, time.Since(start))
	if err != nil {
		return unavailable(err)
	}
	return nil
}

func (p moviePayload) toMovie() movie.Movie {
	m := movie.Movie{
		ExternalID: p.ID,
		Title:      p.Title,
	}
	if p.PosterPath != nil {
		m.PosterPath = *p.PosterPath
	}
	return m
}

func unavailable(err error) error {
	return fmt.Errorf("%w: %w", movie.ErrRemoteUnavailable, err)
}

// redact strips the api key from url errors.
func redact(err error, apiKey string) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return errors.New(strings.ReplaceAll(urlErr.Error(), apiKey, "***"))
	}
	return err
}
