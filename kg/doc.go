// Package kg builds per-chat knowledge graphs from transcripts. Nodes are
// the chat root, individual messages and the entities mentioned in them;
// edges capture containment, mentions and extracted relationships. Graphs
// are persisted as JSON files and exported in visualization-friendly
// formats.
package kg
