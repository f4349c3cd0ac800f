// Package service defines the backend-agnostic contract for image lookups.
package service

import "github.com/google/uuid"

// Task represents a single todo card.
type Task struct {
	ID       uuid.UUID
	Name     string
	ImageURL string
	Complete bool
}

// ImageResult is the decoded payload of a successful lookup.
type ImageResult struct {
	RegularURL string
}
