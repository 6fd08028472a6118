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


package search

import (
	"context"
	"log/slog"
	"runtime"
	"sync"

	"github.com/poiesic/chatindex/ai"
	"github.com/poiesic/chatindex/core"
	"github.com/poiesic/chatindex/storage"
	"golang.org/x/sync/errgroup"
)

// Searcher runs semantic queries against indexed chat collections.
type Searcher struct {
	store       storage.VectorStore
	embedder    ai.Embedder
	parallelism int
	monitor     Monitor
	logger      *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// WithMonitor sets a search monitor.
// Default is a no-op monitor.
func WithMonitor(monitor Monitor) Option {
	return func(s *Searcher) error {
		if monitor == nil {
			monitor = &noopMonitor{}
		}
		s.monitor = monitor
		return nil
	}
}

// WithParallelism bounds how many collections SearchAll queries at once.
// Default is runtime.NumCPU(), with a minimum of 1.
func WithParallelism(n int) Option {
	return func(s *Searcher) error {
		if n < 1 {
			n = 1
		}
		s.parallelism = n
		return nil
	}
}

// NewSearcher creates a new searcher.
func NewSearcher(store storage.VectorStore, embedder ai.Embedder, opts ...Option) (*Searcher, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	parallelism := runtime.NumCPU()
	if parallelism < 1 {
		parallelism = 1
	}

	s := &Searcher{
		store:       store,
		embedder:    embedder,
		parallelism: parallelism,
		monitor:     &noopMonitor{},
		logger:      slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Search queries a single chat's collection and returns up to topN hits,
// closest first. Any failure is wrapped as a *SearchError carrying the
// chat ID.
func (s *Searcher) Search(ctx context.Context, query, chatID string, topN int) ([]core.SearchHit, error) {
	collection, err := s.store.GetCollection(ctx, storage.CollectionName(chatID))
	if err != nil {
		return nil, &SearchError{ChatID: chatID, Err: err}
	}

	vector, err := s.embedder.EmbedText(ctx, query)
	if err != nil {
		return nil, &SearchError{ChatID: chatID, Err: err}
	}

	hits, err := collection.Query(ctx, vector, topN)
	if err != nil {
		return nil, &SearchError{ChatID: chatID, Err: err}
	}

	return hits, nil
}

// SearchAll queries every indexed chat and returns hits grouped by chat
// ID, with up to topN hits per chat. Chats whose collections fail to load
// or query are skipped; only chats with at least one hit appear in the
// result. The returned error is reserved for failures that sink the whole
// search, such as the query embedding failing.
func (s *Searcher) SearchAll(ctx context.Context, query string, topN int) (map[string][]core.SearchHit, error) {
	s.monitor.Start(query)

	names, err := s.store.ListCollections(ctx)
	if err != nil {
		return nil, err
	}

	chatIDs := make([]string, 0, len(names))
	for _, name := range names {
		if chatID, ok := storage.ChatIDFromCollection(name); ok {
			chatIDs = append(chatIDs, chatID)
		}
	}

	results := make(map[string][]core.SearchHit)
	if len(chatIDs) == 0 {
		s.monitor.Finish(results)
		return results, nil
	}

	// Embed the query once and reuse the vector across collections
	vector, err := s.embedder.EmbedText(ctx, query)
	if err != nil {
		return nil, err
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.parallelism)

	for _, chatID := range chatIDs {
		chatID := chatID
		g.Go(func() error {
			collection, err := s.store.GetCollection(gctx, storage.CollectionName(chatID))
			if err != nil {
				s.logger.Warn("skipping chat during search", "chat_id", chatID, "err", err)
				s.monitor.CollectionSkipped(chatID, err)
				return nil
			}

			hits, err := collection.Query(gctx, vector, topN)
			if err != nil {
				s.logger.Warn("skipping chat during search", "chat_id", chatID, "err", err)
				s.monitor.CollectionSkipped(chatID, err)
				return nil
			}

			s.monitor.CollectionSearched(chatID, len(hits))
			if len(hits) == 0 {
				return nil
			}

			mu.Lock()
			results[chatID] = hits
			mu.Unlock()
			return nil
		})
	}

	// Workers swallow per-chat errors, so Wait only synchronizes
	g.Wait()

	s.monitor.Finish(results)
	return results, nil
}
