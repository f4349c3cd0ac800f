// Package backend builds the configured image finder.
package backend

import (
	"context"
	"fmt"

	"visualtodo/internal/backend/googleimages"
	"visualtodo/internal/backend/unsplash"
	"visualtodo/internal/config"
	"visualtodo/internal/service"
)

// New returns the service.ImageFinder selected by cfg.Backend.
func New(ctx context.Context, cfg *config.Config) (service.ImageFinder, error) {
	switch cfg.Backend {
	case config.BackendUnsplash, "":
		return unsplash.New(ctx, cfg.Unsplash)
	case config.BackendGoogle:
		return googleimages.New(ctx, cfg.Google)
	default:
		return nil, fmt.Errorf("unknown backend: %s", cfg.Backend)
	}
}
