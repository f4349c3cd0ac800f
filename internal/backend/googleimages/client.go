// Package googleimages implements service.ImageFinder using the Google Custom Search JSON API.
package googleimages

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	customsearch "google.golang.org/api/customsearch/v1"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"visualtodo/internal/config"
	"visualtodo/internal/service"
)

const (
	// APITimeout is the timeout for API calls.
	APITimeout = 10 * time.Second

	// searchTypeImage restricts results to images.
	searchTypeImage = "image"
)

// Client implements service.ImageFinder using Google Custom Search.
type Client struct {
	svc      *customsearch.Service
	engineID string
}

// New creates a new Custom Search client.
// Requires an API key and a programmable search engine ID.
func New(ctx context.Context, cfg config.GoogleConfig) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: google api key not configured (set %s)", config.ErrMissingCredential, config.EnvGoogleAPIKey)
	}
	if cfg.EngineID == "" {
		return nil, fmt.Errorf("%w: google search engine id not configured (set %s)", config.ErrMissingCredential, config.EnvGoogleEngineID)
	}

	opts := []option.ClientOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(cfg.Endpoint))
	}

	svc, err := customsearch.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create custom search service: %w", err)
	}
	return &Client{svc: svc, engineID: cfg.EngineID}, nil
}

// NewWithHTTPClient creates a client with a custom HTTP client and endpoint (for testing).
func NewWithHTTPClient(ctx context.Context, httpClient *http.Client, endpoint, engineID string) (*Client, error) {
	svc, err := customsearch.NewService(ctx,
		option.WithHTTPClient(httpClient),
		option.WithEndpoint(endpoint),
	)
	if err != nil {
		return nil, err
	}
	return &Client{svc: svc, engineID: engineID}, nil
}

// Lookup returns the link of the first image result for query.
func (c *Client) Lookup(ctx context.Context, query string) (service.ImageResult, error) {
	if strings.TrimSpace(query) == "" {
		return service.ImageResult{}, fmt.Errorf("%w: empty query", service.ErrMalformedRequest)
	}

	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	resp, err := c.svc.Cse.List().
		Q(query).
		Cx(c.engineID).
		SearchType(searchTypeImage).
		Num(1).
		Context(ctx).
		Do()
	if err != nil {
		return service.ImageResult{}, wrapError(err)
	}

	if len(resp.Items) == 0 || strings.TrimSpace(resp.Items[0].Link) == "" {
		return service.ImageResult{}, fmt.Errorf("%w: no image results", service.ErrDecode)
	}
	return service.ImageResult{RegularURL: resp.Items[0].Link}, nil
}

// wrapError maps SDK errors onto the lookup failure classes.
func wrapError(err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return fmt.Errorf("%w: status %d: %s", service.ErrTransport, apiErr.Code, apiErr.Message)
	}
	if strings.Contains(err.Error(), "context deadline exceeded") {
		return fmt.Errorf("%w: request timed out", service.ErrTransport)
	}
	return fmt.Errorf("%w: %v", service.ErrTransport, err)
}
