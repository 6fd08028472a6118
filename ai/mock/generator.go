package mock

import (
	"context"
	"strings"
)

// TextGenerator is a test double for ai.TextGenerator.
// It allows custom behavior injection via function fields.
type TextGenerator struct {
	// GenerateFunc is called by Generate if set.
	// If nil, returns a canned response derived from the prompt.
	GenerateFunc func(ctx context.Context, prompt string, temperature float64, maxTokens int) (string, error)

	callCount int
}

// NewTextGenerator creates a mock generator with default behavior.
func NewTextGenerator() *TextGenerator {
	return &TextGenerator{}
}

// Generate returns a short deterministic completion echoing the first line
// of the prompt, or delegates to GenerateFunc when set.
func (m *TextGenerator) Generate(ctx context.Context, prompt string, temperature float64, maxTokens int) (string, error) {
	m.callCount++

	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, prompt, temperature, maxTokens)
	}

	firstLine, _, _ := strings.Cut(prompt, "\n")
	return "mock response: " + firstLine, nil
}

// CallCount returns the number of times Generate was called.
func (m *TextGenerator) CallCount() int {
	return m.callCount
}

// Reset clears the call count and custom function.
func (m *TextGenerator) Reset() {
	m.callCount = 0
	m.GenerateFunc = nil
}
