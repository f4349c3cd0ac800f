// Package unsplash implements service.ImageFinder using the Unsplash random photo API.
package unsplash

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"visualtodo/internal/config"
	"visualtodo/internal/service"
)

const (
	// DefaultEndpoint is the random photo endpoint.
	DefaultEndpoint = "https://api.unsplash.com/photos/random"

	// APITimeout is the ceiling for a single lookup.
	APITimeout = 10 * time.Second

	// maxBodyBytes caps how much of a response is decoded.
	maxBodyBytes = 1 << 20
)

// Client implements service.ImageFinder using Unsplash.
type Client struct {
	httpClient *http.Client
	endpoint   string
	accessKey  string
}

// photo is the subset of the Unsplash photo payload we read.
type photo struct {
	URLs struct {
		Regular string `json:"regular"`
	} `json:"urls"`
}

// New creates an Unsplash client from config.
// Requires an access key or a bearer token.
func New(ctx context.Context, cfg config.UnsplashConfig) (*Client, error) {
	if cfg.AccessKey == "" && cfg.BearerToken == "" {
		return nil, fmt.Errorf("%w: unsplash access key not configured (set %s)", config.ErrMissingCredential, config.EnvUnsplashAccessKey)
	}

	httpClient := &http.Client{}
	if cfg.BearerToken != "" {
		// User-scoped tokens go in the Authorization header
		tokenSource := oauth2.StaticTokenSource(&oauth2.Token{
			AccessToken: cfg.BearerToken,
			TokenType:   "Bearer",
		})
		httpClient = oauth2.NewClient(ctx, tokenSource)
	}

	return NewWithHTTPClient(httpClient, cfg.Endpoint, cfg.AccessKey), nil
}

// NewWithHTTPClient creates a client with a custom HTTP client (for testing).
// An empty endpoint selects DefaultEndpoint.
func NewWithHTTPClient(httpClient *http.Client, endpoint, accessKey string) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &Client{
		httpClient: httpClient,
		endpoint:   endpoint,
		accessKey:  accessKey,
	}
}

// Lookup fetches one random photo matching query and returns its regular URL.
func (c *Client) Lookup(ctx context.Context, query string) (service.ImageResult, error) {
	reqURL, err := c.requestURL(query)
	if err != nil {
		return service.ImageResult{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return service.ImageResult{}, fmt.Errorf("%w: %v", service.ErrMalformedRequest, err)
	}
	req.Header.Set("Accept-Version", "v1")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return service.ImageResult{}, wrapError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return service.ImageResult{}, fmt.Errorf("%w: unexpected status %d", service.ErrTransport, resp.StatusCode)
	}

	var p photo
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&p); err != nil {
		return service.ImageResult{}, fmt.Errorf("%w: %v", service.ErrDecode, err)
	}
	if strings.TrimSpace(p.URLs.Regular) == "" {
		return service.ImageResult{}, fmt.Errorf("%w: missing urls.regular", service.ErrDecode)
	}

	return service.ImageResult{RegularURL: p.URLs.Regular}, nil
}

// requestURL embeds query and the access key into the endpoint URL.
func (c *Client) requestURL(query string) (string, error) {
	if strings.TrimSpace(query) == "" {
		return "", fmt.Errorf("%w: empty query", service.ErrMalformedRequest)
	}

	u, err := url.Parse(c.endpoint)
	if err != nil {
		return "", fmt.Errorf("%w: %v", service.ErrMalformedRequest, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("%w: endpoint must be absolute: %s", service.ErrMalformedRequest, c.endpoint)
	}

	values := u.Query()
	values.Set("query", query)
	if c.accessKey != "" {
		values.Set("client_id", c.accessKey)
	}
	u.RawQuery = values.Encode()
	return u.String(), nil
}

// wrapError classifies transport errors.
func wrapError(err error) error {
	if strings.Contains(err.Error(), "context deadline exceeded") {
		return fmt.Errorf("%w: request timed out", service.ErrTransport)
	}
	return fmt.Errorf("%w: %v", service.ErrTransport, err)
}
