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


package kg

import "encoding/json"

// Node is a graph node. ID, Label and Type are first-class; everything
// else lives in Attrs.
type Node struct {
	ID    string         `json:"id"`
	Label string         `json:"label"`
	Type  string         `json:"type"`
	Attrs map[string]any `json:"attrs,omitempty"`
}

// IntAttr returns the named attribute as an int. JSON decoding turns
// numbers into float64, so both representations are handled. Returns 0
// when the attribute is absent or not numeric.
func (n *Node) IntAttr(key string) int {
	switch v := n.Attrs[key].(type) {
	case int:
		return v
	case float64:
		return int(v)
	default:
		return 0
	}
}

// Edge is an undirected graph edge. Source and Target keep the
// orientation of the first add.
type Edge struct {
	Source string         `json:"source"`
	Target string         `json:"target"`
	Type   string         `json:"type"`
	Attrs  map[string]any `json:"attrs,omitempty"`
}

// Graph is an undirected graph with insertion-ordered nodes and edges.
// It is not safe for concurrent mutation; the Builder serializes access.
type Graph struct {
	nodes     []*Node
	nodeIndex map[string]*Node
	edges     []*Edge
	edgeIndex map[[2]string]*Edge
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{
		nodeIndex: make(map[string]*Node),
		edgeIndex: make(map[[2]string]*Edge),
	}
}

// AddNode adds a node or, if a node with that ID exists, merges attrs
// into it. Returns the stored node.
func (g *Graph) AddNode(id, label, nodeType string, attrs map[string]any) *Node {
	if existing, ok := g.nodeIndex[id]; ok {
		mergeAttrs(&existing.Attrs, attrs)
		return existing
	}

	node := &Node{
		ID:    id,
		Label: label,
		Type:  nodeType,
		Attrs: cloneAttrs(attrs),
	}
	g.nodes = append(g.nodes, node)
	g.nodeIndex[id] = node
	return node
}

// Node returns the node with the given ID, or nil.
func (g *Graph) Node(id string) *Node {
	return g.nodeIndex[id]
}

// HasNode reports whether a node with the given ID exists.
func (g *Graph) HasNode(id string) bool {
	_, ok := g.nodeIndex[id]
	return ok
}

// AddEdge adds an undirected edge. Adding an edge between an already
// connected pair merges attrs into the existing edge and updates its type.
func (g *Graph) AddEdge(source, target, edgeType string, attrs map[string]any) *Edge {
	key := edgeKey(source, target)
	if existing, ok := g.edgeIndex[key]; ok {
		if edgeType != "" {
			existing.Type = edgeType
		}
		mergeAttrs(&existing.Attrs, attrs)
		return existing
	}

	edge := &Edge{
		Source: source,
		Target: target,
		Type:   edgeType,
		Attrs:  cloneAttrs(attrs),
	}
	g.edges = append(g.edges, edge)
	g.edgeIndex[key] = edge
	return edge
}

// HasEdge reports whether the pair is connected, in either orientation.
func (g *Graph) HasEdge(source, target string) bool {
	_, ok := g.edgeIndex[edgeKey(source, target)]
	return ok
}

// Nodes returns the nodes in insertion order.
func (g *Graph) Nodes() []*Node {
	return g.nodes
}

// Edges returns the edges in insertion order.
func (g *Graph) Edges() []*Edge {
	return g.edges
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int {
	return len(g.nodes)
}

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int {
	return len(g.edges)
}

// edgeKey normalizes a node pair so both orientations map to the same edge.
func edgeKey(a, b string) [2]string {
	if b < a {
		a, b = b, a
	}
	return [2]string{a, b}
}

func cloneAttrs(attrs map[string]any) map[string]any {
	if len(attrs) == 0 {
		return nil
	}
	clone := make(map[string]any, len(attrs))
	for k, v := range attrs {
		clone[k] = v
	}
	return clone
}

func mergeAttrs(dst *map[string]any, src map[string]any) {
	if len(src) == 0 {
		return
	}
	if *dst == nil {
		*dst = make(map[string]any, len(src))
	}
	for k, v := range src {
		(*dst)[k] = v
	}
}

// graphJSON is the serialized form of a Graph.
type graphJSON struct {
	Nodes []*Node `json:"nodes"`
	Edges []*Edge `json:"edges"`
}

// MarshalJSON serializes the graph as node and edge lists in insertion order.
func (g *Graph) MarshalJSON() ([]byte, error) {
	doc := graphJSON{Nodes: g.nodes, Edges: g.edges}
	if doc.Nodes == nil {
		doc.Nodes = []*Node{}
	}
	if doc.Edges == nil {
		doc.Edges = []*Edge{}
	}
	return json.Marshal(doc)
}

// UnmarshalJSON rebuilds the graph including its lookup indices.
func (g *Graph) UnmarshalJSON(data []byte) error {
	var doc graphJSON
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}

	g.nodes = nil
	g.edges = nil
	g.nodeIndex = make(map[string]*Node, len(doc.Nodes))
	g.edgeIndex = make(map[[2]string]*Edge, len(doc.Edges))

	for _, node := range doc.Nodes {
		g.nodes = append(g.nodes, node)
		g.nodeIndex[node.ID] = node
	}
	for _, edge := range doc.Edges {
		g.edges = append(g.edges, edge)
		g.edgeIndex[edgeKey(edge.Source, edge.Target)] = edge
	}
	return nil
}
