package kg

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// graphPath returns the on-disk location of a chat's graph file.
func (b *Builder) graphPath(chatID string) string {
	return filepath.Join(b.dir, chatID+".json")
}

// SaveGraph writes the in-memory graph for chatID to disk and returns the
// file path. Returns ErrGraphNotFound if no graph has been built or loaded
// for that chat.
func (b *Builder) SaveGraph(chatID string) (string, error) {
	b.mu.Lock()
	g := b.graphs[chatID]
	b.mu.Unlock()

	if g == nil {
		return "", fmt.Errorf("%w: %s", ErrGraphNotFound, chatID)
	}

	if err := os.MkdirAll(b.dir, 0755); err != nil {
		return "", err
	}

	data, err := json.Marshal(g)
	if err != nil {
		return "", err
	}

	path := b.graphPath(chatID)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", err
	}

	return path, nil
}

// LoadGraph reads a chat's graph from disk and caches it in memory.
// Returns ErrGraphNotFound if no graph file exists for the chat.
func (b *Builder) LoadGraph(chatID string) (*Graph, error) {
	data, err := os.ReadFile(b.graphPath(chatID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrGraphNotFound, chatID)
		}
		return nil, err
	}

	g := NewGraph()
	if err := json.Unmarshal(data, g); err != nil {
		return nil, err
	}

	b.mu.Lock()
	b.graphs[chatID] = g
	b.mu.Unlock()

	return g, nil
}
