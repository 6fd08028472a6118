package summarize

import (
	"context"
	"strings"
	"testing"

	"github.com/poiesic/chatindex/ai/mock"
	"github.com/poiesic/chatindex/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSummarizerRequiresGenerator(t *testing.T) {
	_, err := NewSummarizer(nil)
	assert.ErrorIs(t, err, ErrGeneratorRequired)
}

func TestSummarizeGist(t *testing.T) {
	generator := mock.NewTextGenerator()

	var capturedPrompt string
	var capturedTemperature float64
	generator.GenerateFunc = func(ctx context.Context, prompt string, temperature float64, maxTokens int) (string, error) {
		capturedPrompt = prompt
		capturedTemperature = temperature
		return "A chat about the weather.", nil
	}

	summarizer, err := NewSummarizer(generator)
	require.NoError(t, err)

	messages := []core.Message{
		{Role: "user", Content: "How's the weather?"},
		{Role: "assistant", Content: "Sunny today."},
	}

	summary, err := summarizer.Summarize(context.Background(), messages, TypeGist)
	require.NoError(t, err)
	assert.Equal(t, "A chat about the weather.", summary)

	assert.Contains(t, capturedPrompt, "concise summary")
	assert.Contains(t, capturedPrompt, "User: How's the weather?")
	assert.Contains(t, capturedPrompt, "Assistant: Sunny today.")
	assert.Equal(t, 0.3, capturedTemperature)
}

func TestSummarizeKeyPoints(t *testing.T) {
	generator := mock.NewTextGenerator()

	var capturedPrompt string
	generator.GenerateFunc = func(ctx context.Context, prompt string, temperature float64, maxTokens int) (string, error) {
		capturedPrompt = prompt
		return "- point one", nil
	}

	summarizer, err := NewSummarizer(generator)
	require.NoError(t, err)

	_, err = summarizer.Summarize(context.Background(), []core.Message{{Role: "user", Content: "hi"}}, TypeKeyPoints)
	require.NoError(t, err)
	assert.Contains(t, capturedPrompt, "bullet-point list")
}

func TestSummarizeUnknownType(t *testing.T) {
	summarizer, err := NewSummarizer(mock.NewTextGenerator())
	require.NoError(t, err)

	_, err = summarizer.Summarize(context.Background(), []core.Message{{Role: "user", Content: "hi"}}, "haiku")
	assert.ErrorIs(t, err, core.ErrUnsupportedFormat)
}

func TestSummarizeBlankTranscriptSkipsGenerator(t *testing.T) {
	generator := mock.NewTextGenerator()
	called := false
	generator.GenerateFunc = func(ctx context.Context, prompt string, temperature float64, maxTokens int) (string, error) {
		called = true
		return "should not happen", nil
	}

	summarizer, err := NewSummarizer(generator)
	require.NoError(t, err)

	summary, err := summarizer.Summarize(context.Background(), []core.Message{
		{Role: "user", Content: "   "},
		{Role: "assistant", Content: "\n\t"},
	}, TypeGist)
	require.NoError(t, err)
	assert.Empty(t, summary)
	assert.False(t, called)
}

func TestFormatMessages(t *testing.T) {
	messages := []core.Message{
		{Role: "user", Content: "first"},
		{Role: "", Content: "no role"},
		{Role: "assistant", Content: "  "},
		{Role: "ASSISTANT", Content: "last"},
	}

	formatted := FormatMessages(messages)
	parts := strings.Split(formatted, "\n\n")
	require.Len(t, parts, 3)
	assert.Equal(t, "User: first", parts[0])
	assert.Equal(t, "Unknown: no role", parts[1])
	assert.Equal(t, "Assistant: last", parts[2])
}
