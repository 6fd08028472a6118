// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package summarize

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/poiesic/chatindex/ai"
	"github.com/poiesic/chatindex/core"
)

// SummaryType selects the shape of the generated summary.
type SummaryType string

const (
	// TypeGist produces a brief 2-3 sentence overview.
	TypeGist SummaryType = "gist"

	// TypeKeyPoints produces a bullet list of the important information.
	TypeKeyPoints SummaryType = "key_points"
)

// defaultTemperature keeps summaries mostly deterministic while allowing
// some phrasing variety.
const defaultTemperature = 0.3

// ErrGeneratorRequired is returned when a text generator is not provided.
var ErrGeneratorRequired = errors.New("text generator required")

// Summarizer generates transcript summaries through a text generator.
type Summarizer struct {
	generator   ai.TextGenerator
	temperature float64
	maxTokens   int
	logger      *slog.Logger
}

// Option configures a Summarizer.
type Option func(*Summarizer) error

// WithTemperature sets the generation temperature.
// Default is 0.3.
func WithTemperature(temperature float64) Option {
	return func(s *Summarizer) error {
		s.temperature = temperature
		return nil
	}
}

// WithMaxTokens caps the response length. Zero means no explicit cap.
func WithMaxTokens(maxTokens int) Option {
	return func(s *Summarizer) error {
		s.maxTokens = maxTokens
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Summarizer) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewSummarizer creates a new summarizer.
func NewSummarizer(generator ai.TextGenerator, opts ...Option) (*Summarizer, error) {
	if generator == nil {
		return nil, ErrGeneratorRequired
	}

	s := &Summarizer{
		generator:   generator,
		temperature: defaultTemperature,
		logger:      slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Summarize generates a summary of the transcript. A transcript with no
// non-blank messages yields an empty summary without calling the
// generator. Unknown summary types are rejected.
func (s *Summarizer) Summarize(ctx context.Context, messages []core.Message, summaryType SummaryType) (string, error) {
	transcript := FormatMessages(messages)
	if transcript == "" {
		s.logger.Debug("nothing to summarize, transcript is blank")
		return "", nil
	}

	prompt, ok := buildPrompt(summaryType, transcript)
	if !ok {
		return "", fmt.Errorf("%w: summary type %q (use %q or %q)",
			core.ErrUnsupportedFormat, summaryType, TypeGist, TypeKeyPoints)
	}

	summary, err := s.generator.Generate(ctx, prompt, s.temperature, s.maxTokens)
	if err != nil {
		return "", err
	}

	return summary, nil
}

// FormatMessages renders a transcript as "Role: content" paragraphs,
// skipping blank messages. Returns "" for an all-blank transcript.
func FormatMessages(messages []core.Message) string {
	var parts []string
	for _, msg := range messages {
		if msg.IsBlank() {
			continue
		}
		role := msg.Role
		if role == "" {
			role = "unknown"
		}
		parts = append(parts, core.CapitalizeRole(role)+": "+msg.Content)
	}
	return strings.Join(parts, "\n\n")
}
