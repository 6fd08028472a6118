package search

import (
	"errors"
	"fmt"
)

var (
	// ErrStoreRequired is returned when a vector store is not provided.
	ErrStoreRequired = errors.New("vector store required")

	// ErrEmbedderRequired is returned when an embedder is not provided.
	ErrEmbedderRequired = errors.New("embedder required")
)

// SearchError wraps a failure while searching a specific chat, preserving
// the chat ID and the underlying cause.
type SearchError struct {
	ChatID string
	Err    error
}

func (e *SearchError) Error() string {
	return fmt.Sprintf("searching chat %s: %v", e.ChatID, e.Err)
}

func (e *SearchError) Unwrap() error {
	return e.Err
}
