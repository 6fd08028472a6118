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


package mock

import "github.com/poiesic/chatindex/ai"

// Provider is a test double for ai.Provider.
// It aggregates mock embedder, extractor and generator instances.
type Provider struct {
	embedder  *Embedder
	extractor *EntityExtractor
	generator *TextGenerator
}

// NewProvider creates a new mock provider with default mock services.
//
// Returns ai.Provider interface for consistency with production
// constructors. Use GetEmbedder()/GetExtractor()/GetGenerator() to access
// concrete types for test assertions.
func NewProvider() ai.Provider {
	return &Provider{
		embedder:  NewEmbedder(),
		extractor: NewEntityExtractor(),
		generator: NewTextGenerator(),
	}
}

// NewProviderWithServices creates a mock provider with custom mock services.
// This allows full control over the behavior of each service.
func NewProviderWithServices(embedder *Embedder, extractor *EntityExtractor, generator *TextGenerator) ai.Provider {
	return &Provider{
		embedder:  embedder,
		extractor: extractor,
		generator: generator,
	}
}

// Embedder returns the mock embedder.
func (p *Provider) Embedder() ai.Embedder {
	return p.embedder
}

// EntityExtractor returns the mock entity extractor.
func (p *Provider) EntityExtractor() ai.EntityExtractor {
	return p.extractor
}

// TextGenerator returns the mock text generator.
func (p *Provider) TextGenerator() ai.TextGenerator {
	return p.generator
}

// Close is a no-op for the mock provider.
func (p *Provider) Close() error {
	return nil
}

// GetEmbedder returns the underlying mock embedder for test assertions.
func (p *Provider) GetEmbedder() *Embedder {
	return p.embedder
}

// GetExtractor returns the underlying mock extractor for test assertions.
func (p *Provider) GetExtractor() *EntityExtractor {
	return p.extractor
}

// GetGenerator returns the underlying mock generator for test assertions.
func (p *Provider) GetGenerator() *TextGenerator {
	return p.generator
}
