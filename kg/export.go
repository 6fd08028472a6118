package kg

import (
	"context"
	"errors"
	"fmt"

	"github.com/poiesic/chatindex/core"
)

// Export formats accepted by ExportForVis.
const (
	FormatJSON      = "json"
	FormatCytoscape = "cytoscape"
)

// VisGraph is the node-link export format.
type VisGraph struct {
	Nodes []map[string]any `json:"nodes"`
	Links []map[string]any `json:"links"`
}

// CytoscapeElement wraps a node or edge for Cytoscape.js.
type CytoscapeElement struct {
	Data map[string]any `json:"data"`
}

// CytoscapeGraph is the Cytoscape.js export format.
type CytoscapeGraph struct {
	Elements []CytoscapeElement `json:"elements"`
}

// ExportForVis exports a chat's graph in a visualization-friendly format.
// The graph is taken from memory if present, loaded from disk otherwise,
// and as a last resort rebuilt from the transcript source (persisting the
// result). When none of those yield a graph the export is an empty
// structure rather than an error.
func (b *Builder) ExportForVis(ctx context.Context, chatID, format string) (any, error) {
	if format != FormatJSON && format != FormatCytoscape {
		return nil, fmt.Errorf("%w: export format %q (use %q or %q)",
			core.ErrUnsupportedFormat, format, FormatJSON, FormatCytoscape)
	}

	g, err := b.resolveGraph(ctx, chatID)
	if err != nil {
		return nil, err
	}

	if format == FormatCytoscape {
		return exportCytoscape(g), nil
	}
	return exportJSON(g), nil
}

// resolveGraph finds or reconstructs the graph for a chat. A nil return
// with nil error means no graph could be produced.
func (b *Builder) resolveGraph(ctx context.Context, chatID string) (*Graph, error) {
	if g := b.Graph(chatID); g != nil {
		return g, nil
	}

	g, err := b.LoadGraph(chatID)
	if err == nil {
		return g, nil
	}
	if !errors.Is(err, ErrGraphNotFound) {
		return nil, err
	}

	if b.source == nil {
		b.logger.Warn("no graph available for chat", "chat_id", chatID)
		return nil, nil
	}

	messages, err := b.source.ChatMessages(ctx, chatID)
	if err != nil {
		b.logger.Warn("could not rebuild graph from transcript", "chat_id", chatID, "err", err)
		return nil, nil
	}

	g = b.BuildGraph(ctx, messages, chatID)
	if _, err := b.SaveGraph(chatID); err != nil {
		b.logger.Error("error persisting rebuilt graph", "chat_id", chatID, "err", err)
	}
	return g, nil
}

// exportJSON renders the node-link format. Node and edge attributes are
// flattened next to the first-class fields.
func exportJSON(g *Graph) *VisGraph {
	out := &VisGraph{
		Nodes: []map[string]any{},
		Links: []map[string]any{},
	}
	if g == nil {
		return out
	}

	for _, node := range g.Nodes() {
		out.Nodes = append(out.Nodes, flattenNode(node))
	}
	for _, edge := range g.Edges() {
		entry := map[string]any{
			"source": edge.Source,
			"target": edge.Target,
			"type":   edge.Type,
		}
		flattenAttrs(entry, edge.Attrs)
		out.Links = append(out.Links, entry)
	}
	return out
}

// exportCytoscape renders the Cytoscape.js format: node elements first,
// then edge elements with synthetic "{source}_{target}" ids.
func exportCytoscape(g *Graph) *CytoscapeGraph {
	out := &CytoscapeGraph{Elements: []CytoscapeElement{}}
	if g == nil {
		return out
	}

	for _, node := range g.Nodes() {
		out.Elements = append(out.Elements, CytoscapeElement{Data: flattenNode(node)})
	}
	for _, edge := range g.Edges() {
		data := map[string]any{
			"id":     edge.Source + "_" + edge.Target,
			"source": edge.Source,
			"target": edge.Target,
			"type":   edge.Type,
		}
		flattenAttrs(data, edge.Attrs)
		out.Elements = append(out.Elements, CytoscapeElement{Data: data})
	}
	return out
}

func flattenNode(node *Node) map[string]any {
	entry := map[string]any{
		"id":    node.ID,
		"label": node.Label,
		"type":  node.Type,
	}
	flattenAttrs(entry, node.Attrs)
	return entry
}

// flattenAttrs copies attrs into entry without clobbering first-class keys.
func flattenAttrs(entry, attrs map[string]any) {
	for k, v := range attrs {
		if _, reserved := entry[k]; !reserved {
			entry[k] = v
		}
	}
}
