package index

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/poiesic/chatindex/ai/mock"
	"github.com/poiesic/chatindex/core"
	"github.com/poiesic/chatindex/storage"
	"github.com/poiesic/chatindex/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestIndexer(t *testing.T, opts ...Option) (*Indexer, storage.VectorStore) {
	t.Helper()

	store, err := badger.NewMemoryStore()
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	indexer, err := NewIndexer(store, mock.NewEmbedder(), opts...)
	require.NoError(t, err)
	t.Cleanup(indexer.Release)

	return indexer, store
}

func TestNewIndexerRequiresDependencies(t *testing.T) {
	_, err := NewIndexer(nil, mock.NewEmbedder())
	assert.ErrorIs(t, err, ErrStoreRequired)

	store, err := badger.NewMemoryStore()
	require.NoError(t, err)
	defer store.Close()

	_, err = NewIndexer(store, nil)
	assert.ErrorIs(t, err, ErrEmbedderRequired)
}

func TestIndexChatStoresChunks(t *testing.T) {
	indexer, store := newTestIndexer(t)
	ctx := context.Background()

	messages := []core.Message{
		{Role: "user", Content: "What's the capital of France?"},
		{Role: "assistant", Content: "The capital of France is Paris."},
	}

	chatID, err := indexer.IndexChat(ctx, messages, "chat-1")
	require.NoError(t, err)
	assert.Equal(t, "chat-1", chatID)

	collection, err := store.GetCollection(ctx, storage.CollectionName("chat-1"))
	require.NoError(t, err)

	count, err := collection.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	// Query with the exact stored chunk text so the nearest hit is chunk 0
	queryVector, err := mock.NewEmbedder().EmbedText(ctx, "User: What's the capital of France?")
	require.NoError(t, err)

	hits, err := collection.Query(ctx, queryVector, 1)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "chat-1_0", hits[0].ID)
	assert.Contains(t, hits[0].Text, "User: ")
}

func TestIndexChatGeneratesChatID(t *testing.T) {
	indexer, store := newTestIndexer(t)
	ctx := context.Background()

	chatID, err := indexer.IndexChat(ctx, []core.Message{{Role: "user", Content: "hi"}}, "")
	require.NoError(t, err)
	assert.NotEmpty(t, chatID)

	_, err = store.GetCollection(ctx, storage.CollectionName(chatID))
	assert.NoError(t, err)
}

func TestIndexChatEmptyTranscript(t *testing.T) {
	indexer, store := newTestIndexer(t)
	ctx := context.Background()

	chatID, err := indexer.IndexChat(ctx, []core.Message{{Role: "user", Content: "   "}}, "chat-empty")
	require.NoError(t, err)
	assert.Equal(t, "chat-empty", chatID)

	// Collection exists even with zero chunks
	collection, err := store.GetCollection(ctx, storage.CollectionName("chat-empty"))
	require.NoError(t, err)

	count, err := collection.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestIndexChatLargeTranscriptBatches(t *testing.T) {
	indexer, store := newTestIndexer(t, WithBatchSize(4), WithPoolSize(4))
	ctx := context.Background()

	messages := make([]core.Message, 30)
	for i := range messages {
		messages[i] = core.Message{Role: "user", Content: fmt.Sprintf("message number %d with some padding text", i)}
	}

	chatID, err := indexer.IndexChat(ctx, messages, "chat-big")
	require.NoError(t, err)

	collection, err := store.GetCollection(ctx, storage.CollectionName(chatID))
	require.NoError(t, err)

	count, err := collection.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 30, count)
}

func TestIndexChatEmbedderFailure(t *testing.T) {
	store, err := badger.NewMemoryStore()
	require.NoError(t, err)
	defer store.Close()

	embedder := mock.NewEmbedder()
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		return nil, errors.New("embedding service down")
	}

	indexer, err := NewIndexer(store, embedder)
	require.NoError(t, err)
	defer indexer.Release()

	_, err = indexer.IndexChat(context.Background(), []core.Message{{Role: "user", Content: "hi"}}, "chat-fail")
	assert.ErrorContains(t, err, "embedding service down")
}

func TestIndexChatInvalidChunkParams(t *testing.T) {
	indexer, _ := newTestIndexer(t, WithChunkSize(10), WithChunkOverlap(10))

	_, err := indexer.IndexChat(context.Background(), []core.Message{{Role: "user", Content: "hi"}}, "chat-x")
	assert.ErrorIs(t, err, core.ErrInvalidChunking)
}
