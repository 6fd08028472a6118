package chatindex

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/poiesic/chatindex/ai/mock"
	"github.com/poiesic/chatindex/core"
	"github.com/poiesic/chatindex/kg"
	"github.com/poiesic/chatindex/parsing"
	"github.com/poiesic/chatindex/summarize"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestIndex(t *testing.T, opts ...IndexOption) *Index {
	t.Helper()

	opts = append([]IndexOption{WithProvider(mock.NewProvider())}, opts...)
	ix, err := NewIndex(t.TempDir(), opts...)
	require.NoError(t, err)
	t.Cleanup(func() { ix.Close() })

	return ix
}

func TestIndexChatEndToEnd(t *testing.T) {
	ix := newTestIndex(t)
	ctx := context.Background()

	messages := []core.Message{
		{Role: "user", Content: "Tell me about the Eiffel Tower in Paris."},
		{Role: "assistant", Content: "The Eiffel Tower is a landmark in Paris built in 1889."},
	}

	chatID, err := ix.IndexChat(ctx, messages, "")
	require.NoError(t, err)
	require.NotEmpty(t, chatID)

	// The chat is searchable
	hits, err := ix.Search(ctx, "User: Tell me about the Eiffel Tower in Paris.", chatID, 1)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Contains(t, hits[0].Text, "Eiffel Tower")

	// SearchAll finds the same chat
	all, err := ix.SearchAll(ctx, "Eiffel Tower", 2)
	require.NoError(t, err)
	assert.Contains(t, all, chatID)

	// The graph was built and persisted during indexing
	out, err := ix.ExportGraph(ctx, chatID, kg.FormatJSON)
	require.NoError(t, err)
	vis := out.(*kg.VisGraph)
	assert.NotEmpty(t, vis.Nodes)

	chats, err := ix.ListChats(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{chatID}, chats)
}

func TestIndexChatFileFromTranscriptDir(t *testing.T) {
	transcriptDir := t.TempDir()
	content := `[{"role": "user", "content": "hello from a file"}]`
	require.NoError(t, os.WriteFile(filepath.Join(transcriptDir, "chat-file.json"), []byte(content), 0644))

	ix := newTestIndex(t, WithTranscriptDir(transcriptDir))
	ctx := context.Background()

	chatID, err := ix.IndexChatFile(ctx, "chat-file")
	require.NoError(t, err)
	assert.Equal(t, "chat-file", chatID)

	hits, err := ix.Search(ctx, "User: hello from a file", "chat-file", 1)
	require.NoError(t, err)
	assert.Len(t, hits, 1)
}

func TestIndexChatFileWithoutTranscriptDir(t *testing.T) {
	ix := newTestIndex(t)

	_, err := ix.IndexChatFile(context.Background(), "anything")
	assert.ErrorIs(t, err, parsing.ErrChatNotFound)
}

func TestSummarizeChat(t *testing.T) {
	transcriptDir := t.TempDir()
	content := "## User:\nsummarize me please"
	require.NoError(t, os.WriteFile(filepath.Join(transcriptDir, "chat-sum.md"), []byte(content), 0644))

	ix := newTestIndex(t, WithTranscriptDir(transcriptDir))

	summary, err := ix.SummarizeChat(context.Background(), "chat-sum", summarize.TypeGist)
	require.NoError(t, err)
	assert.NotEmpty(t, summary)
}

func TestSummarizeUnknownType(t *testing.T) {
	ix := newTestIndex(t)

	_, err := ix.Summarize(context.Background(), []core.Message{{Role: "user", Content: "hi"}}, "limerick")
	assert.ErrorIs(t, err, core.ErrUnsupportedFormat)
}
