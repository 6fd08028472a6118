package mock

import (
	"context"
	"strings"
	"unicode"

	"github.com/poiesic/chatindex/ai"
)

// EntityExtractor is a test double for ai.EntityExtractor.
// It allows custom behavior injection via function fields.
type EntityExtractor struct {
	// ExtractEntitiesFunc is called by ExtractEntities if set.
	// If nil, uses a default capitalized-span heuristic.
	ExtractEntitiesFunc func(ctx context.Context, text string) ([]ai.Entity, error)

	// ExtractRelationshipsFunc is called by ExtractRelationships if set.
	// If nil, returns no relationships.
	ExtractRelationshipsFunc func(ctx context.Context, text string) ([]ai.Triple, error)

	callCount int
}

// NewEntityExtractor creates a mock extractor with default behavior.
func NewEntityExtractor() *EntityExtractor {
	return &EntityExtractor{}
}

// ExtractEntities recognizes runs of capitalized words as entities.
// Multi-word spans are labeled PERSON, single words ORG. This is only a
// rough stand-in for a real NER backend, but it is deterministic: the same
// text always yields the same entities, and lowercase-only text yields none.
func (m *EntityExtractor) ExtractEntities(ctx context.Context, text string) ([]ai.Entity, error) {
	m.callCount++

	if m.ExtractEntitiesFunc != nil {
		return m.ExtractEntitiesFunc(ctx, text)
	}

	entities := []ai.Entity{}
	words := strings.Fields(text)
	offset := 0
	var span []string
	var spanStart int

	flush := func(end int) {
		if len(span) == 0 {
			return
		}
		label := "ORG"
		if len(span) > 1 {
			label = "PERSON"
		}
		entities = append(entities, ai.Entity{
			Text:  strings.Join(span, " "),
			Label: label,
			Start: spanStart,
			End:   end,
		})
		span = nil
	}

	lastEnd := 0
	for _, word := range words {
		start := indexFrom(text, word, offset)
		offset = start + len(word)

		cleaned := strings.TrimRight(word, ".,!?;:")
		if isCapitalized(cleaned) {
			if len(span) == 0 {
				spanStart = start
			}
			span = append(span, cleaned)
			lastEnd = start + len(cleaned)
		} else {
			flush(lastEnd)
		}
	}
	flush(lastEnd)

	return entities, nil
}

// ExtractRelationships returns no relationships by default; inject
// ExtractRelationshipsFunc to simulate a dependency-parsing backend.
func (m *EntityExtractor) ExtractRelationships(ctx context.Context, text string) ([]ai.Triple, error) {
	m.callCount++

	if m.ExtractRelationshipsFunc != nil {
		return m.ExtractRelationshipsFunc(ctx, text)
	}

	return []ai.Triple{}, nil
}

// CallCount returns the number of times any method was called.
func (m *EntityExtractor) CallCount() int {
	return m.callCount
}

// Reset clears the call count and custom functions.
func (m *EntityExtractor) Reset() {
	m.callCount = 0
	m.ExtractEntitiesFunc = nil
	m.ExtractRelationshipsFunc = nil
}

func isCapitalized(word string) bool {
	runes := []rune(word)
	return len(runes) > 0 && unicode.IsUpper(runes[0])
}

func indexFrom(s, sub string, from int) int {
	if from > len(s) {
		from = len(s)
	}
	i := strings.Index(s[from:], sub)
	if i < 0 {
		return from
	}
	return from + i
}
