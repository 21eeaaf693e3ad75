package repository

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by Load when nothing is stored under a key
var ErrNotFound = errors.New("document not found")

// Entry describes one stored document
type Entry struct {
	Key       string    `json:"key"`
	Size      int       `json:"size"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Store is a keyed blob store for serialized editor state
type Store interface {
	// Save replaces the document stored under key
	Save(ctx context.Context, key string, data []byte) error
	// Load returns the document under key, or ErrNotFound
	Load(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
	// List returns every stored document, most recently updated first
	List(ctx context.Context) ([]Entry, error)

	// Close releases resources
	Close() error
}
