package backend_test

import (
	"context"
	"errors"
	"testing"

	"visualtodo/internal/backend"
	"visualtodo/internal/backend/googleimages"
	"visualtodo/internal/backend/unsplash"
	"visualtodo/internal/config"
)

func TestNew_SelectsUnsplash(t *testing.T) {
	cfg := &config.Config{Backend: config.BackendUnsplash}
	cfg.Unsplash.AccessKey = "k"

	finder, err := backend.New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := finder.(*unsplash.Client); !ok {
		t.Errorf("expected *unsplash.Client, got %T", finder)
	}
}

func TestNew_SelectsGoogle(t *testing.T) {
	cfg := &config.Config{Backend: config.BackendGoogle}
	cfg.Google.APIKey = "k"
	cfg.Google.EngineID = "cx"

	finder, err := backend.New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := finder.(*googleimages.Client); !ok {
		t.Errorf("expected *googleimages.Client, got %T", finder)
	}
}

func TestNew_MissingCredential(t *testing.T) {
	cfg := &config.Config{Backend: config.BackendUnsplash}

	_, err := backend.New(context.Background(), cfg)
	if !errors.Is(err, config.ErrMissingCredential) {
		t.Errorf("expected missing credential, got %v", err)
	}
}

func TestNew_UnknownBackend(t *testing.T) {
	cfg := &config.Config{Backend: "bing"}

	if _, err := backend.New(context.Background(), cfg); err == nil {
		t.Error("expected error for unknown backend")
	}
}
