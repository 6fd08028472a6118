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


package openai

import (
	"context"
	"encoding/json"
	"log/slog"
	"slices"
	"strings"

	"github.com/poiesic/chatindex/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// EntityExtractor implements ai.EntityExtractor using OpenAI-compatible
// chat APIs with JSON-mode completions.
type EntityExtractor struct {
	client llms.Model
	logger *slog.Logger
}

// entitySpan is an internal type used for JSON unmarshaling.
type entitySpan struct {
	Text  string `json:"text"`
	Label string `json:"label"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

// entityAnalysis is the wrapper structure for the LLM's entity response.
type entityAnalysis struct {
	Entities []entitySpan `json:"entities"`
}

// relation is an internal type used for JSON unmarshaling.
type relation struct {
	Subject   string `json:"subject"`
	Predicate string `json:"predicate"`
	Object    string `json:"object"`
}

// relationAnalysis is the wrapper structure for the LLM's relationship response.
type relationAnalysis struct {
	Relationships []relation `json:"relationships"`
}

// newEntityExtractor is an internal constructor that returns the concrete
// type. Used by Provider to manage the instance.
func newEntityExtractor(config *ai.Config) (*EntityExtractor, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	// Use "none" as token for local OpenAI-compatible services that don't
	// require authentication
	client, err := openai.New(
		openai.WithBaseURL(config.ExtractorHost),
		openai.WithToken("none"),
		openai.WithModel(config.ExtractorModel),
	)
	if err != nil {
		return nil, err
	}

	return &EntityExtractor{
		client: client,
		logger: slog.Default().With("component", "openai-extractor"),
	}, nil
}

// NewEntityExtractor creates a new entity extractor using the provided
// configuration.
//
// Returns ai.EntityExtractor interface to enforce abstraction.
func NewEntityExtractor(config *ai.Config) (ai.EntityExtractor, error) {
	return newEntityExtractor(config)
}

// ExtractEntities extracts named entity spans from text using an LLM.
func (e *EntityExtractor) ExtractEntities(ctx context.Context, text string) ([]ai.Entity, error) {
	var result entityAnalysis
	if err := e.complete(ctx, buildEntityPrompt(), text, &result); err != nil {
		return nil, err
	}

	entities := make([]ai.Entity, 0, len(result.Entities))
	for _, span := range result.Entities {
		if span.Text == "" {
			continue
		}
		start, end := span.Start, span.End
		// Models frequently miscount offsets; recompute when the reported
		// span doesn't match the surface text.
		if start < 0 || end > len(text) || start >= end || text[start:end] != span.Text {
			if i := strings.Index(text, span.Text); i >= 0 {
				start, end = i, i+len(span.Text)
			} else {
				start, end = 0, 0
			}
		}
		label := strings.ToUpper(strings.TrimSpace(span.Label))
		if !slices.Contains(ai.EntityLabels, label) {
			e.logger.Debug("dropping entity with unknown label", "text", span.Text, "label", span.Label)
			continue
		}
		entities = append(entities, ai.Entity{
			Text:  span.Text,
			Label: label,
			Start: start,
			End:   end,
		})
	}

	e.logger.Debug("extracted entities", "total", len(result.Entities), "kept", len(entities))
	return entities, nil
}

// ExtractRelationships extracts subject-predicate-object triples from text
// using an LLM.
func (e *EntityExtractor) ExtractRelationships(ctx context.Context, text string) ([]ai.Triple, error) {
	var result relationAnalysis
	if err := e.complete(ctx, buildRelationshipPrompt(), text, &result); err != nil {
		return nil, err
	}

	triples := make([]ai.Triple, 0, len(result.Relationships))
	for _, r := range result.Relationships {
		if r.Subject == "" || r.Predicate == "" || r.Object == "" {
			continue
		}
		triples = append(triples, ai.Triple{
			Subject:   r.Subject,
			Predicate: strings.ToLower(r.Predicate),
			Object:    r.Object,
		})
	}

	e.logger.Debug("extracted relationships", "total", len(result.Relationships), "kept", len(triples))
	return triples, nil
}

// complete runs a JSON-mode chat completion and unmarshals the response into
// out, retrying up to 3 times on malformed JSON.
func (e *EntityExtractor) complete(ctx context.Context, systemPrompt, text string, out any) error {
	content := []llms.MessageContent{
		{
			Role:  llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{llms.TextPart(systemPrompt)},
		},
		{
			Role:  llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{llms.TextPart(text)},
		},
	}

	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		response, err := e.client.GenerateContent(ctx, content, llms.WithTemperature(0.0), llms.WithJSONMode())
		if err != nil {
			e.logger.Error("failed to generate content", "attempt", attempt+1, "err", err)
			return err
		}

		if len(response.Choices) < 1 {
			e.logger.Debug("no choices returned from model")
			return nil
		}

		responseText := sanitizeModelJSON(response.Choices[0].Content)
		if err := json.Unmarshal([]byte(responseText), out); err != nil {
			lastErr = err
			e.logger.Warn("error parsing extractor response",
				"attempt", attempt+1,
				"response", responseText,
				"err", err)
			continue
		}

		return nil
	}

	e.logger.Error("failed to parse extractor response after retries", "err", lastErr)
	return lastErr
}

// sanitizeModelJSON strips markdown code fences and any prose surrounding
// the outermost JSON object in an LLM response.
func sanitizeModelJSON(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	s = strings.TrimSpace(s)

	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start >= 0 && end > start {
		s = s[start : end+1]
	}
	return s
}
