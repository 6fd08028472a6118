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

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/poiesic/chatindex/ai"
	"github.com/poiesic/chatindex/core"
)

// rootNodeID anchors every chat graph so even an empty chat has one node.
const rootNodeID = "chat_root"

// previewRunes is how much message content is kept on message nodes.
const previewRunes = 100

// ChatSource resolves a chat ID to its transcript. Used to rebuild a graph
// on export when neither memory nor disk has one.
type ChatSource interface {
	ChatMessages(ctx context.Context, chatID string) ([]core.Message, error)
}

// Builder constructs knowledge graphs from transcripts and manages their
// persistence. A builder holds the graphs it has built or loaded, keyed by
// chat ID, and is safe for concurrent use.
type Builder struct {
	extractor ai.EntityExtractor
	source    ChatSource
	dir       string
	logger    *slog.Logger

	mu     sync.Mutex
	graphs map[string]*Graph
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder) error

// WithChatSource sets the transcript source used to rebuild graphs on
// demand during export. Without one, exporting a chat that has no stored
// graph yields an empty structure.
func WithChatSource(source ChatSource) BuilderOption {
	return func(b *Builder) error {
		b.source = source
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) BuilderOption {
	return func(b *Builder) error {
		if logger == nil {
			logger = slog.Default()
		}
		b.logger = logger
		return nil
	}
}

// NewBuilder creates a graph builder that persists graphs under dir.
func NewBuilder(extractor ai.EntityExtractor, dir string, opts ...BuilderOption) (*Builder, error) {
	if extractor == nil {
		return nil, ErrExtractorRequired
	}

	b := &Builder{
		extractor: extractor,
		dir:       dir,
		logger:    slog.Default(),
		graphs:    make(map[string]*Graph),
	}

	for _, opt := range opts {
		if err := opt(b); err != nil {
			return nil, err
		}
	}

	return b, nil
}

// BuildGraph constructs a fresh graph for the transcript, replacing any
// graph previously held for the same chat ID. Entity extraction failures
// on individual messages are logged and skipped rather than failing the
// whole build.
func (b *Builder) BuildGraph(ctx context.Context, messages []core.Message, chatID string) *Graph {
	g := NewGraph()
	g.AddNode(rootNodeID, rootLabel(chatID), "root", map[string]any{
		"description": "Root node",
	})

	hasEntities := false

	for i, msg := range messages {
		if msg.IsBlank() {
			continue
		}
		role := msg.Role
		if role == "" {
			role = "unknown"
		}

		entities, err := b.extractor.ExtractEntities(ctx, msg.Content)
		if err != nil {
			b.logger.Error("error extracting entities from message", "chat_id", chatID, "message_index", i, "err", err)
			continue
		}
		if len(entities) > 0 {
			hasEntities = true
		}

		messageID := fmt.Sprintf("message_%d", i)
		g.AddNode(messageID, fmt.Sprintf("%s Message %d", core.CapitalizeRole(role), i), "message", map[string]any{
			"role":    role,
			"content": preview(msg.Content),
		})
		g.AddEdge(rootNodeID, messageID, "contains", nil)

		for _, entity := range entities {
			entityID := entity.Text + "_" + entity.Label
			if node := g.Node(entityID); node != nil {
				node.Attrs["mentions"] = node.IntAttr("mentions") + 1
			} else {
				g.AddNode(entityID, entity.Text, entity.Label, map[string]any{
					"mentions": 1,
				})
			}
			g.AddEdge(entityID, messageID, "mentioned_in", nil)
		}

		triples, err := b.extractor.ExtractRelationships(ctx, msg.Content)
		if err != nil {
			// Entities and the message node are already in; keep the
			// partial graph for this message
			b.logger.Error("error extracting relationships from message", "chat_id", chatID, "message_index", i, "err", err)
			continue
		}

		// Match triple endpoints against this message's entities by
		// substring. Over-matching is accepted; a triple may connect
		// several entity pairs.
		for _, triple := range triples {
			for _, subjEntity := range entities {
				if !strings.Contains(subjEntity.Text, triple.Subject) {
					continue
				}
				subjID := subjEntity.Text + "_" + subjEntity.Label
				for _, objEntity := range entities {
					if !strings.Contains(objEntity.Text, triple.Object) {
						continue
					}
					objID := objEntity.Text + "_" + objEntity.Label
					if g.HasNode(subjID) && g.HasNode(objID) {
						g.AddEdge(subjID, objID, "relationship", map[string]any{
							"predicate":  triple.Predicate,
							"message_id": i,
						})
					}
				}
			}
		}
	}

	// Without any entities the graph is just disconnected messages, so
	// group them under role nodes to give it some shape
	if !hasEntities && len(messages) > 0 {
		b.logger.Warn("no entities found in chat, building message-based graph", "chat_id", chatID)
		b.addRoleFallback(g, messages)
	}

	b.mu.Lock()
	b.graphs[chatID] = g
	b.mu.Unlock()

	return g
}

// addRoleFallback adds per-role nodes connecting the chat's messages.
func (b *Builder) addRoleFallback(g *Graph, messages []core.Message) {
	seen := make(map[string]bool)
	for _, msg := range messages {
		if msg.IsBlank() {
			continue
		}
		role := msg.Role
		if role == "" {
			role = "unknown"
		}
		if seen[role] {
			continue
		}
		seen[role] = true

		roleID := "role_" + role
		g.AddNode(roleID, core.CapitalizeRole(role), "role", nil)
		g.AddEdge(rootNodeID, roleID, "has_role", nil)

		for i, other := range messages {
			if other.IsBlank() {
				continue
			}
			otherRole := other.Role
			if otherRole == "" {
				otherRole = "unknown"
			}
			if otherRole != role {
				continue
			}

			messageID := fmt.Sprintf("message_%d", i)
			if !g.HasNode(messageID) {
				g.AddNode(messageID, fmt.Sprintf("%s %d", core.CapitalizeRole(role), i), "message", map[string]any{
					"role":    role,
					"content": preview(other.Content),
				})
			}
			g.AddEdge(roleID, messageID, "contains", nil)
		}
	}
}

// Graph returns the in-memory graph for a chat ID, or nil.
func (b *Builder) Graph(chatID string) *Graph {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.graphs[chatID]
}

// rootLabel renders the root node label from a chat ID, truncated so long
// IDs stay readable.
func rootLabel(chatID string) string {
	runes := []rune(chatID)
	if len(runes) > 8 {
		runes = runes[:8]
	}
	return fmt.Sprintf("Chat %s...", string(runes))
}

// preview truncates content for storage on a message node.
func preview(content string) string {
	runes := []rune(content)
	if len(runes) > previewRunes {
		return string(runes[:previewRunes]) + "..."
	}
	return content
}
