package kg

import (
	"context"
	"errors"
	"testing"

	"github.com/poiesic/chatindex/ai"
	"github.com/poiesic/chatindex/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// staticSource serves one fixed transcript for any chat ID it knows.
type staticSource struct {
	transcripts map[string][]core.Message
}

func (s *staticSource) ChatMessages(ctx context.Context, chatID string) ([]core.Message, error) {
	messages, ok := s.transcripts[chatID]
	if !ok {
		return nil, errors.New("chat not found")
	}
	return messages, nil
}

func buildSampleGraph(t *testing.T, builder *Builder, chatID string) *Graph {
	t.Helper()
	messages := []core.Message{
		{Role: "user", Content: "Tell me about Microsoft."},
		{Role: "assistant", Content: "Microsoft is a company."},
	}
	return builder.BuildGraph(context.Background(), messages, chatID)
}

func sampleExtractor() ai.EntityExtractor {
	return fixedExtractor(map[string][]ai.Entity{
		"Tell me about Microsoft.": {{Text: "Microsoft", Label: "ORG"}},
		"Microsoft is a company.":  {{Text: "Microsoft", Label: "ORG"}},
	}, nil)
}

func TestSaveAndLoadGraphRoundTrip(t *testing.T) {
	builder := newTestBuilder(t, sampleExtractor())
	g := buildSampleGraph(t, builder, "chat-save")

	path, err := builder.SaveGraph("chat-save")
	require.NoError(t, err)
	assert.Contains(t, path, "chat-save.json")

	// Load through a fresh builder so nothing comes from memory
	other := newTestBuilder(t, sampleExtractor())
	other.dir = builder.dir

	loaded, err := other.LoadGraph("chat-save")
	require.NoError(t, err)

	assert.Equal(t, g.NodeCount(), loaded.NodeCount())
	assert.Equal(t, g.EdgeCount(), loaded.EdgeCount())

	// Numeric attrs survive the JSON round trip
	microsoft := loaded.Node("Microsoft_ORG")
	require.NotNil(t, microsoft)
	assert.Equal(t, 2, microsoft.IntAttr("mentions"))
	assert.True(t, loaded.HasEdge("chat_root", "message_0"))
}

func TestSaveGraphUnknownChat(t *testing.T) {
	builder := newTestBuilder(t, sampleExtractor())

	_, err := builder.SaveGraph("never-built")
	assert.ErrorIs(t, err, ErrGraphNotFound)
}

func TestLoadGraphMissingFile(t *testing.T) {
	builder := newTestBuilder(t, sampleExtractor())

	_, err := builder.LoadGraph("never-saved")
	assert.ErrorIs(t, err, ErrGraphNotFound)
}

func TestExportForVisUnsupportedFormat(t *testing.T) {
	builder := newTestBuilder(t, sampleExtractor())

	_, err := builder.ExportForVis(context.Background(), "chat-x", "graphml")
	assert.ErrorIs(t, err, core.ErrUnsupportedFormat)
}

func TestExportForVisJSON(t *testing.T) {
	builder := newTestBuilder(t, sampleExtractor())
	buildSampleGraph(t, builder, "chat-vis")

	out, err := builder.ExportForVis(context.Background(), "chat-vis", FormatJSON)
	require.NoError(t, err)

	vis, ok := out.(*VisGraph)
	require.True(t, ok)
	// root + 2 messages + 1 entity
	assert.Len(t, vis.Nodes, 4)
	// 2 contains + 2 mentioned_in
	assert.Len(t, vis.Links, 4)

	assert.Equal(t, "chat_root", vis.Nodes[0]["id"])
	assert.Equal(t, "root", vis.Nodes[0]["type"])
	assert.Equal(t, "Root node", vis.Nodes[0]["description"])

	assert.Equal(t, "chat_root", vis.Links[0]["source"])
	assert.Equal(t, "message_0", vis.Links[0]["target"])
	assert.Equal(t, "contains", vis.Links[0]["type"])
}

func TestExportForVisCytoscape(t *testing.T) {
	builder := newTestBuilder(t, sampleExtractor())
	buildSampleGraph(t, builder, "chat-cyto")

	out, err := builder.ExportForVis(context.Background(), "chat-cyto", FormatCytoscape)
	require.NoError(t, err)

	cyto, ok := out.(*CytoscapeGraph)
	require.True(t, ok)
	assert.Len(t, cyto.Elements, 8)

	// Nodes come first, then edges with synthetic ids
	assert.Equal(t, "chat_root", cyto.Elements[0].Data["id"])
	edge := cyto.Elements[4].Data
	assert.Equal(t, "chat_root_message_0", edge["id"])
	assert.Equal(t, "chat_root", edge["source"])
	assert.Equal(t, "message_0", edge["target"])
}

func TestExportForVisEmptyWhenUnknown(t *testing.T) {
	builder := newTestBuilder(t, sampleExtractor())

	out, err := builder.ExportForVis(context.Background(), "nowhere", FormatJSON)
	require.NoError(t, err)

	vis := out.(*VisGraph)
	assert.Empty(t, vis.Nodes)
	assert.Empty(t, vis.Links)

	out, err = builder.ExportForVis(context.Background(), "nowhere", FormatCytoscape)
	require.NoError(t, err)
	assert.Empty(t, out.(*CytoscapeGraph).Elements)
}

func TestExportForVisRebuildsFromSource(t *testing.T) {
	source := &staticSource{transcripts: map[string][]core.Message{
		"chat-src": {
			{Role: "user", Content: "Tell me about Microsoft."},
		},
	}}
	builder := newTestBuilder(t, sampleExtractor(), WithChatSource(source))

	out, err := builder.ExportForVis(context.Background(), "chat-src", FormatJSON)
	require.NoError(t, err)

	vis := out.(*VisGraph)
	// root + message + entity
	assert.Len(t, vis.Nodes, 3)

	// The rebuilt graph was persisted for next time
	loaded, err := builder.LoadGraph("chat-src")
	require.NoError(t, err)
	assert.Equal(t, 3, loaded.NodeCount())
}
