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
	"github.com/poiesic/chatindex/ai"
)

// Provider bundles the three OpenAI-backed AI services behind the
// ai.Provider interface.
type Provider struct {
	embedder  *Embedder
	extractor *EntityExtractor
	generator *TextGenerator
}

// NewProvider creates the embedder, extractor and generator from a shared
// configuration. All three services may point at the same host or at
// different ones depending on the config.
func NewProvider(config *ai.Config) (ai.Provider, error) {
	embedder, err := newEmbedder(config)
	if err != nil {
		return nil, err
	}

	extractor, err := newEntityExtractor(config)
	if err != nil {
		return nil, err
	}

	generator, err := newTextGenerator(config)
	if err != nil {
		return nil, err
	}

	return &Provider{
		embedder:  embedder,
		extractor: extractor,
		generator: generator,
	}, nil
}

// Embedder returns the provider's embedding service.
func (p *Provider) Embedder() ai.Embedder {
	return p.embedder
}

// EntityExtractor returns the provider's entity extraction service.
func (p *Provider) EntityExtractor() ai.EntityExtractor {
	return p.extractor
}

// TextGenerator returns the provider's text generation service.
func (p *Provider) TextGenerator() ai.TextGenerator {
	return p.generator
}

// Close releases any resources held by the provider's services. The
// underlying HTTP clients hold no persistent connections, so this is
// currently a no-op kept for interface symmetry.
func (p *Provider) Close() error {
	return nil
}
