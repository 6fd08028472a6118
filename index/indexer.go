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


package index

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	"github.com/google/uuid"
	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/chatindex/ai"
	"github.com/poiesic/chatindex/chunk"
	"github.com/poiesic/chatindex/core"
	"github.com/poiesic/chatindex/storage"
)

// defaultBatchSize is the number of chunk texts sent per embedding call.
const defaultBatchSize = 16

// Indexer chunks transcripts, embeds the chunks and stores them in a
// per-chat collection.
type Indexer struct {
	store        storage.VectorStore
	embedder     ai.Embedder
	pool         *ants.Pool
	chunkSize    int
	chunkOverlap int
	batchSize    int
	logger       *slog.Logger
}

// Option configures an Indexer.
type Option func(*Indexer) error

// WithChunkSize sets the chunk window size in runes.
// Default is chunk.DefaultSize.
func WithChunkSize(size int) Option {
	return func(ix *Indexer) error {
		ix.chunkSize = size
		return nil
	}
}

// WithChunkOverlap sets the chunk overlap in runes.
// Default is chunk.DefaultOverlap.
func WithChunkOverlap(overlap int) Option {
	return func(ix *Indexer) error {
		ix.chunkOverlap = overlap
		return nil
	}
}

// WithBatchSize sets the number of chunks embedded per call.
// Values below 1 are coerced to 1.
func WithBatchSize(size int) Option {
	return func(ix *Indexer) error {
		if size < 1 {
			size = 1
		}
		ix.batchSize = size
		return nil
	}
}

// WithPoolSize sets the worker pool size for concurrent embedding batches.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(ix *Indexer) error {
		if size < 1 {
			size = 1
		}

		if ix.pool != nil {
			ix.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		ix.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(ix *Indexer) error {
		if logger == nil {
			logger = slog.Default()
		}
		ix.logger = logger
		return nil
	}
}

// NewIndexer creates a new transcript indexer.
func NewIndexer(store storage.VectorStore, embedder ai.Embedder, opts ...Option) (*Indexer, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	ix := &Indexer{
		store:        store,
		embedder:     embedder,
		pool:         pool,
		chunkSize:    chunk.DefaultSize,
		chunkOverlap: chunk.DefaultOverlap,
		batchSize:    defaultBatchSize,
		logger:       slog.Default(),
	}

	for _, opt := range opts {
		if optErr := opt(ix); optErr != nil {
			ix.Release()
			return nil, optErr
		}
	}

	return ix, nil
}

// IndexChat chunks and embeds a transcript into the chat's collection.
// An empty chatID gets a freshly generated one. Returns the chat ID the
// transcript was indexed under. A transcript that produces zero chunks is
// not an error; the collection is still created so the chat is listable.
func (ix *Indexer) IndexChat(ctx context.Context, messages []core.Message, chatID string) (string, error) {
	if chatID == "" {
		chatID = uuid.NewString()
	}

	chunks, err := chunk.Messages(messages, ix.chunkSize, ix.chunkOverlap)
	if err != nil {
		return "", err
	}

	collection, err := ix.store.GetOrCreateCollection(ctx, storage.CollectionName(chatID), map[string]any{
		"chat_id": chatID,
	})
	if err != nil {
		return "", err
	}

	if len(chunks) == 0 {
		ix.logger.Info("no chunks produced for chat", "chat_id", chatID)
		return chatID, nil
	}

	texts := make([]string, len(chunks))
	ids := make([]string, len(chunks))
	metadatas := make([]map[string]any, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
		ids[i] = fmt.Sprintf("%s_%d", chatID, i)
		// Sanitize again at the storage boundary in case a caller built
		// chunks by hand
		metadatas[i] = chunk.FilterMetadata(c.Metadata)
	}

	vectors, err := ix.embedBatches(ctx, texts)
	if err != nil {
		return "", err
	}

	if err := collection.Add(ctx, ids, vectors, metadatas, texts); err != nil {
		return "", err
	}

	ix.logger.Info("indexed chat", "chat_id", chatID, "chunks", len(chunks))
	return chatID, nil
}

// embedBatches embeds texts in batches submitted to the worker pool,
// preserving input order in the returned vectors.
func (ix *Indexer) embedBatches(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))
	numBatches := (len(texts) + ix.batchSize - 1) / ix.batchSize
	errs := make([]error, numBatches)

	var wg sync.WaitGroup
	for b := 0; b < numBatches; b++ {
		start := b * ix.batchSize
		end := start + ix.batchSize
		if end > len(texts) {
			end = len(texts)
		}

		b := b
		wg.Add(1)
		err := ix.pool.Submit(func() {
			defer wg.Done()
			batch, err := ix.embedder.EmbedTexts(ctx, texts[start:end])
			if err != nil {
				errs[b] = err
				return
			}
			if len(batch) != end-start {
				errs[b] = fmt.Errorf("embedder returned %d vectors for %d texts", len(batch), end-start)
				return
			}
			copy(vectors[start:], batch)
		})
		if err != nil {
			// Submit failed, so the task never ran
			wg.Done()
			errs[b] = err
		}
	}
	wg.Wait()

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return vectors, nil
}

// Release releases the worker pool.
// The indexer should not be used after calling Release.
func (ix *Indexer) Release() {
	if ix.pool != nil {
		ix.pool.Release()
	}
}
