// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"fmt"
	"sync"

	"visualtodo/internal/service"
)

// FakeFinder is a scripted in-memory implementation of service.ImageFinder.
// Queries without a scripted image or error fail with a decode error.
type FakeFinder struct {
	mu     sync.Mutex
	images map[string]string
	errs   map[string]error
	holds  map[string]chan struct{}
	calls  []string

	started chan string
}

// NewFakeFinder creates an empty FakeFinder.
func NewFakeFinder() *FakeFinder {
	return &FakeFinder{
		images:  make(map[string]string),
		errs:    make(map[string]error),
		holds:   make(map[string]chan struct{}),
		started: make(chan string, 64),
	}
}

// SetImage scripts a successful lookup for query.
func (f *FakeFinder) SetImage(query, url string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.images[query] = url
}

// SetError scripts a failing lookup for query.
func (f *FakeFinder) SetError(query string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errs[query] = err
}

// Hold makes lookups for query block until the returned release func is called.
func (f *FakeFinder) Hold(query string) (release func()) {
	ch := make(chan struct{})
	f.mu.Lock()
	f.holds[query] = ch
	f.mu.Unlock()

	var once sync.Once
	return func() { once.Do(func() { close(ch) }) }
}

// Started receives each query once its lookup has begun.
func (f *FakeFinder) Started() <-chan string {
	return f.started
}

// Calls returns the queries looked up so far, in call order.
func (f *FakeFinder) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	result := make([]string, len(f.calls))
	copy(result, f.calls)
	return result
}

// Lookup implements service.ImageFinder.
func (f *FakeFinder) Lookup(ctx context.Context, query string) (service.ImageResult, error) {
	f.mu.Lock()
	f.calls = append(f.calls, query)
	hold := f.holds[query]
	url, hasImage := f.images[query]
	err := f.errs[query]
	f.mu.Unlock()

	select {
	case f.started <- query:
	default:
	}

	if hold != nil {
		select {
		case <-hold:
		case <-ctx.Done():
			return service.ImageResult{}, fmt.Errorf("%w: %v", service.ErrTransport, ctx.Err())
		}
	}

	if err != nil {
		return service.ImageResult{}, err
	}
	if !hasImage {
		return service.ImageResult{}, fmt.Errorf("%w: no scripted image for %q", service.ErrDecode, query)
	}
	return service.ImageResult{RegularURL: url}, nil
}
