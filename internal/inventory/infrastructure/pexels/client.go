// Package pexels searches the Pexels photo API for product images.
package pexels

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

var (
	ErrNoAPIKey   = errors.New("pexels: api key not configured")
	ErrNoPhotos   = errors.New("pexels: no photos found")
	ErrBadRequest = errors.New("pexels: unexpected status")
)

type Config struct {
	APIKey         string
	BaseURL        string
	Timeout        time.Duration
	CBMaxFailures  uint32
	CBResetTimeout time.Duration
}

type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
	cb      *gobreaker.CircuitBreaker
}

func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.pexels.com"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 3 * time.Second
	}
	maxFailures := cfg.CBMaxFailures
	if maxFailures == 0 {
		maxFailures = 3
	}

	return &Client{
		apiKey:  cfg.APIKey,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		cb: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    "pexels",
			Timeout: cfg.CBResetTimeout,
			ReadyToTrip: func(c gobreaker.Counts) bool {
				return c.ConsecutiveFailures >= maxFailures
			},
			// An empty result is an answer, not an outage.
			IsSuccessful: func(err error) bool {
				return err == nil || errors.Is(err, ErrNoPhotos)
			},
		}),
	}
}

type searchResponse struct {
	Photos []struct {
		Src struct {
			Medium string `json:"medium"`
		} `json:"src"`
	} `json:"photos"`
}

// SearchPhoto returns the medium sized URL of the first photo matching query.
func (c *Client) SearchPhoto(ctx context.Context, query string) (string, error) {
	if c.apiKey == "" {
		return "", ErrNoAPIKey
	}
	res, err := c.cb.Execute(func() (interface{}, error) {
		return c.search(ctx, query)
	})
	if err != nil {
		return "", err
	}
	return res.(string), nil
}

func (c *Client) search(ctx context.Context, query string) (string, error) {
	q := url.Values{}
	q.Set("query", query)
	q.Set("per_page", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/search?"+q.Encode(), nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("pexels search: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: %d", ErrBadRequest, resp.StatusCode)
	}

	var body searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("pexels decode: %w", err)
	}
	if len(body.Photos) == 0 || body.Photos[0].Src.Medium == "" {
		return "", ErrNoPhotos
	}
	return body.Photos[0].Src.Medium, nil
}
