package store

import (
	"context"

	"kwestendorf/scopeworker/internal/scope"
)

// Store is the per-source key-value persistence collaborator. Reading a
// source that was never written returns an empty mapping, not an error.
type Store interface {
	// Read returns the persisted mapping for a source
	Read(ctx context.Context, source string) (map[string]scope.Record, error)

	// Write replaces the persisted mapping for a source
	Write(ctx context.Context, source string, records map[string]scope.Record) error

	// Close releases the underlying resources
	Close() error
}
