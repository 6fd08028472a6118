package chunk

import (
	"strings"
	"testing"
	"time"

	"github.com/poiesic/chatindex/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"collapses newlines", "a\n\n\n\nb", "a\n\nb"},
		{"collapses spaces", "a    b", "a b"},
		{"trims", "  hello \n", "hello"},
		{"preserves double newline", "a\n\nb", "a\n\nb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanText(tt.in))
		})
	}
}

func TestTextInvalidParams(t *testing.T) {
	_, err := Text("some text", 10, 10)
	require.ErrorIs(t, err, core.ErrInvalidChunking)

	_, err = Text("some text", 10, 15)
	require.ErrorIs(t, err, core.ErrInvalidChunking)

	_, err = Text("some text", 0, 0)
	require.ErrorIs(t, err, core.ErrInvalidChunking)

	_, err = Text("some text", 10, -1)
	require.ErrorIs(t, err, core.ErrInvalidChunking)
}

func TestTextShortInput(t *testing.T) {
	chunks, err := Text("hello world", 100, 10)
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, "hello world", chunks[0])
}

func TestTextEmptyInput(t *testing.T) {
	chunks, err := Text("", 100, 10)
	require.NoError(t, err)
	assert.Empty(t, chunks)

	chunks, err = Text("   \n\n  ", 100, 10)
	require.NoError(t, err)
	assert.Empty(t, chunks)
}

func TestTextRoundTrip(t *testing.T) {
	// Concatenating chunks while de-duplicating the overlap region must
	// reproduce the cleaned input exactly.
	tests := []struct {
		name    string
		text    string
		size    int
		overlap int
	}{
		{"plain prose", strings.Repeat("the quick brown fox jumps over the lazy dog. ", 30), 100, 20},
		{"no boundaries", strings.Repeat("x", 1000), 64, 16},
		{"newline separated", strings.Repeat("line one two three four five six seven\n", 40), 120, 30},
		{"zero overlap", strings.Repeat("alpha beta gamma delta. ", 50), 90, 0},
		{"unicode", strings.Repeat("héllo wörld. über alles. ", 40), 80, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunks, err := Text(tt.text, tt.size, tt.overlap)
			require.NoError(t, err)
			require.NotEmpty(t, chunks)

			var sb strings.Builder
			sb.WriteString(chunks[0])
			for _, c := range chunks[1:] {
				runes := []rune(c)
				require.GreaterOrEqual(t, len(runes), tt.overlap, "chunk shorter than overlap")
				sb.WriteString(string(runes[tt.overlap:]))
			}
			assert.Equal(t, CleanText(tt.text), sb.String())

			for _, c := range chunks {
				assert.LessOrEqual(t, len([]rune(c)), tt.size)
			}
		})
	}
}

func TestTextSnapsToSentenceBoundary(t *testing.T) {
	// The second window should end just after a ". " boundary found in its
	// tail 20% rather than at the hard cut.
	sentence := "This is a sentence in the middle of the transcript. "
	text := strings.Repeat(sentence, 10)

	chunks, err := Text(text, 100, 10)
	require.NoError(t, err)
	require.Greater(t, len(chunks), 2)

	// Interior chunks end with the boundary character when one was found.
	for _, c := range chunks[1 : len(chunks)-1] {
		last := c[len(c)-1]
		assert.Truef(t, last == '.' || last == '\n' || len([]rune(c)) == 100,
			"interior chunk neither boundary-terminated nor full-size: %q", c)
	}
}

func TestTextTerminatesWithLargeOverlap(t *testing.T) {
	// Boundary snapping can shrink a window below the overlap; the loop
	// must still make forward progress.
	text := strings.Repeat("short. ", 200)
	chunks, err := Text(text, 100, 95)
	require.NoError(t, err)
	assert.NotEmpty(t, chunks)
}

func TestMessages(t *testing.T) {
	ts := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	messages := []core.Message{
		{Role: "user", Content: "Hello there", Timestamp: ts},
		{Role: "assistant", Content: "   "},
		{Role: "assistant", Content: "Hi! How can I help?", Extra: map[string]any{"model": "gpt-4"}},
		{Role: "user", Content: ""},
	}

	chunks, err := Messages(messages, 500, 50)
	require.NoError(t, err)
	require.Len(t, chunks, 2)

	first := chunks[0]
	assert.Equal(t, "User: Hello there", first.Text)
	assert.Equal(t, 0, first.Metadata["message_index"])
	assert.Equal(t, 0, first.Metadata["chunk_index"])
	assert.Equal(t, 1, first.Metadata["total_chunks"])
	assert.Equal(t, "user", first.Metadata["role"])
	assert.Equal(t, "2024-05-01T12:00:00Z", first.Metadata["timestamp"])

	second := chunks[1]
	assert.Equal(t, "Assistant: Hi! How can I help?", second.Text)
	// Skipped blank messages keep their index; the next real message is 2.
	assert.Equal(t, 2, second.Metadata["message_index"])
	assert.Equal(t, "gpt-4", second.Metadata["model"])
	_, hasTimestamp := second.Metadata["timestamp"]
	assert.False(t, hasTimestamp)
}

func TestMessagesLongContentSplits(t *testing.T) {
	content := strings.Repeat("word after word in a long answer. ", 30)
	messages := []core.Message{{Role: "assistant", Content: content}}

	chunks, err := Messages(messages, 100, 20)
	require.NoError(t, err)
	require.Greater(t, len(chunks), 1)

	assert.True(t, strings.HasPrefix(chunks[0].Text, "Assistant: "))
	for i, c := range chunks {
		assert.Equal(t, 0, c.Metadata["message_index"])
		assert.Equal(t, i, c.Metadata["chunk_index"])
		assert.Equal(t, len(chunks), c.Metadata["total_chunks"])
	}
}

func TestMessagesInvalidParams(t *testing.T) {
	_, err := Messages([]core.Message{{Role: "user", Content: "hi"}}, 10, 10)
	require.ErrorIs(t, err, core.ErrInvalidChunking)
}

func TestFilterMetadata(t *testing.T) {
	metadata := map[string]any{
		"a": "x",
		"b": 5,
		"c": 3.14,
		"d": true,
		"e": nil,
		"f": []int{1, 2},
		"g": map[string]int{"k": 1},
	}

	filtered := FilterMetadata(metadata)

	assert.Equal(t, "x", filtered["a"])
	assert.Equal(t, 5, filtered["b"])
	assert.Equal(t, 3.14, filtered["c"])
	assert.Equal(t, true, filtered["d"])
	_, hasE := filtered["e"]
	assert.False(t, hasE)
	assert.IsType(t, "", filtered["f"])
	assert.IsType(t, "", filtered["g"])
}
