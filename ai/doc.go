// Package ai defines the collaborator interfaces for AI services used by
// chatindex: text embedding, entity/relationship extraction, and text
// generation.
//
// Implementations live in subpackages: openai provides clients for any
// OpenAI-compatible API, mock provides deterministic test doubles.
package ai
