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


// Package chatindex indexes chat transcripts for semantic search,
// knowledge graph exploration and summarization. The Index type wires the
// storage, AI and processing layers together; the subpackages remain
// usable on their own for callers that need finer control.
package chatindex

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/poiesic/chatindex/ai"
	"github.com/poiesic/chatindex/ai/openai"
	"github.com/poiesic/chatindex/core"
	"github.com/poiesic/chatindex/index"
	"github.com/poiesic/chatindex/kg"
	"github.com/poiesic/chatindex/parsing"
	"github.com/poiesic/chatindex/search"
	"github.com/poiesic/chatindex/storage"
	"github.com/poiesic/chatindex/storage/badger"
	"github.com/poiesic/chatindex/summarize"
)

// Index is the top-level facade over the indexing, search, graph and
// summarization services. All services share one vector store and one AI
// provider.
type Index struct {
	store      storage.VectorStore
	provider   ai.Provider
	source     *parsing.DirectorySource
	indexer    *index.Indexer
	searcher   *search.Searcher
	builder    *kg.Builder
	summarizer *summarize.Summarizer
	logger     *slog.Logger
}

// IndexOption configures an Index.
type IndexOption func(*indexOptions)

type indexOptions struct {
	aiConfig      *ai.Config
	provider      ai.Provider
	transcriptDir string
}

// WithAIConfig sets the AI service configuration used to build the
// default OpenAI-compatible provider.
func WithAIConfig(config *ai.Config) IndexOption {
	return func(o *indexOptions) {
		o.aiConfig = config
	}
}

// WithProvider supplies a pre-built AI provider, bypassing the default
// OpenAI-compatible one. The Index takes ownership and closes it.
func WithProvider(provider ai.Provider) IndexOption {
	return func(o *indexOptions) {
		o.provider = provider
	}
}

// WithTranscriptDir points the Index at a directory of raw transcript
// files, enabling the by-chat-ID operations (IndexChatFile, SummarizeChat,
// graph rebuilds on export).
func WithTranscriptDir(dir string) IndexOption {
	return func(o *indexOptions) {
		o.transcriptDir = dir
	}
}

// NewIndex opens (or creates) an index rooted at dataDir. Vector data
// lives under dataDir/vectors, graph files under dataDir/graphs.
func NewIndex(dataDir string, opts ...IndexOption) (*Index, error) {
	options := &indexOptions{
		aiConfig: ai.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(options)
	}

	store, err := badger.Open(filepath.Join(dataDir, "vectors"))
	if err != nil {
		return nil, err
	}

	provider := options.provider
	if provider == nil {
		provider, err = openai.NewProvider(options.aiConfig)
		if err != nil {
			store.Close()
			return nil, err
		}
	}

	var source *parsing.DirectorySource
	if options.transcriptDir != "" {
		source = parsing.NewDirectorySource(options.transcriptDir)
	}

	indexer, err := index.NewIndexer(store, provider.Embedder())
	if err != nil {
		provider.Close()
		store.Close()
		return nil, err
	}

	searcher, err := search.NewSearcher(store, provider.Embedder())
	if err != nil {
		indexer.Release()
		provider.Close()
		store.Close()
		return nil, err
	}

	builderOpts := []kg.BuilderOption{}
	if source != nil {
		builderOpts = append(builderOpts, kg.WithChatSource(source))
	}
	builder, err := kg.NewBuilder(provider.EntityExtractor(), filepath.Join(dataDir, "graphs"), builderOpts...)
	if err != nil {
		indexer.Release()
		provider.Close()
		store.Close()
		return nil, err
	}

	summarizer, err := summarize.NewSummarizer(provider.TextGenerator())
	if err != nil {
		indexer.Release()
		provider.Close()
		store.Close()
		return nil, err
	}

	return &Index{
		store:      store,
		provider:   provider,
		source:     source,
		indexer:    indexer,
		searcher:   searcher,
		builder:    builder,
		summarizer: summarizer,
		logger:     slog.Default(),
	}, nil
}

// IndexChat indexes a transcript for search and builds its knowledge
// graph. Returns the chat ID the transcript was stored under (generated
// when chatID is empty). A graph persistence failure is logged rather
// than failing the indexing, since the graph can be rebuilt on demand.
func (ix *Index) IndexChat(ctx context.Context, messages []core.Message, chatID string) (string, error) {
	chatID, err := ix.indexer.IndexChat(ctx, messages, chatID)
	if err != nil {
		return "", err
	}

	ix.builder.BuildGraph(ctx, messages, chatID)
	if _, err := ix.builder.SaveGraph(chatID); err != nil {
		ix.logger.Error("error saving knowledge graph", "chat_id", chatID, "err", err)
	}

	return chatID, nil
}

// IndexChatFile indexes a transcript file from the transcript directory.
// Returns parsing.ErrChatNotFound when no file matches the chat ID.
func (ix *Index) IndexChatFile(ctx context.Context, chatID string) (string, error) {
	messages, err := ix.loadTranscript(ctx, chatID)
	if err != nil {
		return "", err
	}
	return ix.IndexChat(ctx, messages, chatID)
}

// Search queries a single chat. See search.Searcher.Search.
func (ix *Index) Search(ctx context.Context, query, chatID string, topN int) ([]core.SearchHit, error) {
	return ix.searcher.Search(ctx, query, chatID, topN)
}

// SearchAll queries every indexed chat. See search.Searcher.SearchAll.
func (ix *Index) SearchAll(ctx context.Context, query string, topN int) (map[string][]core.SearchHit, error) {
	return ix.searcher.SearchAll(ctx, query, topN)
}

// ExportGraph exports a chat's knowledge graph for visualization.
// See kg.Builder.ExportForVis.
func (ix *Index) ExportGraph(ctx context.Context, chatID, format string) (any, error) {
	return ix.builder.ExportForVis(ctx, chatID, format)
}

// Summarize generates a summary of the given transcript.
func (ix *Index) Summarize(ctx context.Context, messages []core.Message, summaryType summarize.SummaryType) (string, error) {
	return ix.summarizer.Summarize(ctx, messages, summaryType)
}

// SummarizeChat generates a summary of a transcript file from the
// transcript directory.
func (ix *Index) SummarizeChat(ctx context.Context, chatID string, summaryType summarize.SummaryType) (string, error) {
	messages, err := ix.loadTranscript(ctx, chatID)
	if err != nil {
		return "", err
	}
	return ix.summarizer.Summarize(ctx, messages, summaryType)
}

// ListChats returns the chat IDs of all indexed chats.
func (ix *Index) ListChats(ctx context.Context) ([]string, error) {
	names, err := ix.store.ListCollections(ctx)
	if err != nil {
		return nil, err
	}

	chatIDs := make([]string, 0, len(names))
	for _, name := range names {
		if chatID, ok := storage.ChatIDFromCollection(name); ok {
			chatIDs = append(chatIDs, chatID)
		}
	}
	return chatIDs, nil
}

func (ix *Index) loadTranscript(ctx context.Context, chatID string) ([]core.Message, error) {
	if ix.source == nil {
		return nil, parsing.ErrChatNotFound
	}
	return ix.source.ChatMessages(ctx, chatID)
}

// Close releases the index's resources.
func (ix *Index) Close() error {
	ix.indexer.Release()

	if err := ix.provider.Close(); err != nil {
		ix.logger.Error("error closing AI provider", "err", err)
	}

	if err := ix.store.Close(); err != nil {
		ix.logger.Error("error closing vector store", "err", err)
		return err
	}
	return nil
}
