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


// Package search provides semantic search over indexed chat transcripts.
//
// A Searcher answers two kinds of queries: a targeted search within a
// single chat's collection, and a fan-out search across every indexed
// chat. The fan-out path embeds the query once, queries collections in
// parallel and degrades gracefully, skipping collections that fail
// rather than failing the whole search.
package search
