package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
}

func TestNewConfigOptions(t *testing.T) {
	cfg := NewConfig(
		WithHost("http://example.com:9100"),
		WithEmbeddingModel("text-embedding-3-small"),
		WithExtractorModel("gpt-4o-mini"),
		WithGeneratorModel("gpt-4o"),
	)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "http://example.com:9100/v1", cfg.EmbeddingHost)
	assert.Equal(t, "http://example.com:9100/v1", cfg.ExtractorHost)
	assert.Equal(t, "http://example.com:9100/v1", cfg.GeneratorHost)
	assert.Equal(t, "text-embedding-3-small", cfg.EmbeddingModel)
}

func TestNormalizeAddsV1Suffix(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"http://localhost:11434", "http://localhost:11434/v1"},
		{"http://localhost:11434/", "http://localhost:11434/v1"},
		{"http://localhost:11434/v1", "http://localhost:11434/v1"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, normalizeHost(tt.in))
	}
}

func TestValidateRejectsMissingFields(t *testing.T) {
	cfg := NewConfig(WithEmbeddingModel(""))
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.ExtractorHost = ""
	assert.Error(t, cfg.Validate())
}
