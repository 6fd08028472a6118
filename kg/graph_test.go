package kg

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddEdgeIsUndirected(t *testing.T) {
	g := NewGraph()
	g.AddNode("a", "A", "thing", nil)
	g.AddNode("b", "B", "thing", nil)
	g.AddEdge("a", "b", "linked", nil)

	assert.True(t, g.HasEdge("a", "b"))
	assert.True(t, g.HasEdge("b", "a"))
	assert.Equal(t, 1, g.EdgeCount())
}

func TestAddEdgeMergesAttributes(t *testing.T) {
	g := NewGraph()
	g.AddEdge("a", "b", "relationship", map[string]any{"predicate": "own", "weight": 1})
	g.AddEdge("b", "a", "relationship", map[string]any{"predicate": "acquire"})

	require.Equal(t, 1, g.EdgeCount())
	edge := g.Edges()[0]
	assert.Equal(t, "a", edge.Source)
	assert.Equal(t, "acquire", edge.Attrs["predicate"])
	assert.Equal(t, 1, edge.Attrs["weight"])
}

func TestAddNodeMergesAttributes(t *testing.T) {
	g := NewGraph()
	g.AddNode("n", "N", "entity", map[string]any{"mentions": 1})
	node := g.AddNode("n", "ignored", "ignored", map[string]any{"mentions": 3})

	assert.Equal(t, 1, g.NodeCount())
	assert.Equal(t, "N", node.Label)
	assert.Equal(t, 3, node.IntAttr("mentions"))
}

func TestIntAttrHandlesJSONNumbers(t *testing.T) {
	node := &Node{Attrs: map[string]any{"int": 4, "float": float64(7), "text": "x"}}
	assert.Equal(t, 4, node.IntAttr("int"))
	assert.Equal(t, 7, node.IntAttr("float"))
	assert.Equal(t, 0, node.IntAttr("text"))
	assert.Equal(t, 0, node.IntAttr("missing"))
}

func TestGraphJSONRoundTripPreservesOrder(t *testing.T) {
	g := NewGraph()
	g.AddNode("first", "First", "thing", nil)
	g.AddNode("second", "Second", "thing", map[string]any{"mentions": 2})
	g.AddEdge("first", "second", "linked", nil)

	data, err := json.Marshal(g)
	require.NoError(t, err)

	restored := NewGraph()
	require.NoError(t, json.Unmarshal(data, restored))

	require.Equal(t, 2, restored.NodeCount())
	assert.Equal(t, "first", restored.Nodes()[0].ID)
	assert.Equal(t, "second", restored.Nodes()[1].ID)
	assert.Equal(t, 2, restored.Node("second").IntAttr("mentions"))
	assert.True(t, restored.HasEdge("second", "first"))
}
