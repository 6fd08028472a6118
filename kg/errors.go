package kg

import "errors"

var (
	// ErrGraphNotFound is returned when no graph exists for a chat ID,
	// neither in memory nor on disk.
	ErrGraphNotFound = errors.New("graph not found")

	// ErrExtractorRequired is returned when an entity extractor is not provided.
	ErrExtractorRequired = errors.New("entity extractor required")
)
