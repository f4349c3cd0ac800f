// Package service defines the backend-agnostic contract for image lookups.
package service

import "context"

// ImageFinder maps free text to a single image URL.
// All image search API calls go through this interface.
// Commands and the board never import a backend SDK directly.
type ImageFinder interface {
	// Lookup performs exactly one request for query.
	// Returned errors wrap ErrMalformedRequest, ErrTransport or ErrDecode.
	// Nothing is retried.
	Lookup(ctx context.Context, query string) (ImageResult, error)
}
