package ai

import "context"

// Embedder generates vector embeddings from text for semantic similarity search.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// Returns an error if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a
	// batch. The returned slice contains embeddings in the same order as the
	// input texts. Returns an error if any embedding generation fails.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// EntityExtractor recognizes named entities and subject-predicate-object
// relationships in text. Implementations must be thread-safe for concurrent
// use.
type EntityExtractor interface {
	// ExtractEntities returns the named entity spans found in text.
	// Returns an empty slice if no entities are found.
	ExtractEntities(ctx context.Context, text string) ([]Entity, error)

	// ExtractRelationships returns (subject, predicate, object) triples
	// derived from subject/verb/object patterns in text, with subject and
	// object spans expanded to include adjacent compound nouns.
	// Returns an empty slice if no relationships are found.
	ExtractRelationships(ctx context.Context, text string) ([]Triple, error)
}

// TextGenerator produces free-form text from a prompt. Used for transcript
// summarization. Implementations must be thread-safe for concurrent use.
type TextGenerator interface {
	// Generate returns the model's completion for prompt. temperature
	// controls randomness (0.0 to 1.0); maxTokens caps the response length,
	// 0 meaning no explicit cap.
	Generate(ctx context.Context, prompt string, temperature float64, maxTokens int) (string, error)
}

// Provider aggregates AI services for convenient initialization and
// lifecycle management. A provider creates and manages the embedder,
// entity extractor and text generator, ensuring they share configuration
// and resources appropriately.
type Provider interface {
	// Embedder returns the text embedding service.
	Embedder() Embedder

	// EntityExtractor returns the entity and relationship extraction service.
	EntityExtractor() EntityExtractor

	// TextGenerator returns the text generation service.
	TextGenerator() TextGenerator

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
