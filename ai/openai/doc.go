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


// Package openai provides AI services backed by OpenAI-compatible APIs.
//
// This package implements the ai.Provider interface using the langchaingo
// library, so it works with OpenAI itself as well as local servers exposing
// the same API (Ollama, LocalAI, vLLM). Entity and relationship extraction
// is performed with JSON-mode chat completions against a structured schema.
package openai
