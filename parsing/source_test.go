package parsing

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTranscript(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func TestDirectorySourceJSON(t *testing.T) {
	dir := t.TempDir()
	writeTranscript(t, dir, "chat-1.json", `[{"role": "user", "content": "from json"}]`)

	source := NewDirectorySource(dir)
	messages, err := source.ChatMessages(context.Background(), "chat-1")
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, "from json", messages[0].Content)
}

func TestDirectorySourceMarkdown(t *testing.T) {
	dir := t.TempDir()
	writeTranscript(t, dir, "chat-2.md", "## User:\nfrom markdown")

	source := NewDirectorySource(dir)
	messages, err := source.ChatMessages(context.Background(), "chat-2")
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, "from markdown", messages[0].Content)
}

func TestDirectorySourceMissingChat(t *testing.T) {
	source := NewDirectorySource(t.TempDir())

	_, err := source.ChatMessages(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrChatNotFound)
}

func TestDirectorySourcePicksFirstMatch(t *testing.T) {
	dir := t.TempDir()
	writeTranscript(t, dir, "chat-3.json", `[{"role": "user", "content": "json wins"}]`)
	writeTranscript(t, dir, "chat-3.md", "## User:\nmd loses")

	source := NewDirectorySource(dir)
	messages, err := source.ChatMessages(context.Background(), "chat-3")
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, "json wins", messages[0].Content)
}
