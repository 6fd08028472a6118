package storage

import (
	"context"

	"github.com/poiesic/chatindex/core"
)

// VectorStore manages named collections of embedded chunks.
// Implementations must be thread-safe and support concurrent access.
type VectorStore interface {
	// GetOrCreateCollection returns the collection with the given name,
	// creating it with the provided metadata if it does not exist. The
	// metadata is stored only on creation; it is not merged into an
	// existing collection.
	GetOrCreateCollection(ctx context.Context, name string, metadata map[string]any) (Collection, error)

	// GetCollection returns an existing collection by name.
	// Returns ErrCollectionNotFound if no collection with that name exists.
	GetCollection(ctx context.Context, name string) (Collection, error)

	// ListCollections returns the names of all collections in the store.
	ListCollections(ctx context.Context) ([]string, error)

	// Close closes the store and releases resources.
	Close() error
}

// Collection holds embedded chunks and answers nearest-neighbor queries.
type Collection interface {
	// Name returns the collection's name.
	Name() string

	// Add upserts a batch of chunks. All four slices must have equal
	// lengths or ErrInvalidBatch is returned. Re-adding an id whose
	// document content is unchanged is a no-op.
	Add(ctx context.Context, ids []string, vectors [][]float32, metadatas []map[string]any, documents []string) error

	// Query returns up to k hits ranked by cosine distance to vector,
	// closest first.
	Query(ctx context.Context, vector []float32, k int) ([]core.SearchHit, error)

	// Count returns the number of chunks stored in the collection.
	Count(ctx context.Context) (int, error)
}
