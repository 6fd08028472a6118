package chunk

import (
	"time"

	"github.com/poiesic/chatindex/core"
)

// Messages converts role-tagged messages into (text, metadata) chunks ready
// for embedding.
//
// Messages with blank content are skipped; message_index still refers to the
// position in the original slice, so indices of skipped messages are absent
// rather than renumbered. Each message is formatted as
// "{Role capitalized}: {content}" before chunking, so the role prefix lands
// in chunk 0. Chunk metadata carries message_index, chunk_index,
// total_chunks, role, timestamp (omitted when the message has none) and any
// Extra fields from the source message, sanitized via FilterMetadata.
func Messages(messages []core.Message, size, overlap int) ([]core.Chunk, error) {
	var chunks []core.Chunk

	for i, msg := range messages {
		if msg.IsBlank() {
			continue
		}

		role := msg.Role
		if role == "" {
			role = "unknown"
		}

		texts, err := Text(core.CapitalizeRole(role)+": "+msg.Content, size, overlap)
		if err != nil {
			return nil, err
		}

		for j, text := range texts {
			metadata := map[string]any{
				"message_index": i,
				"chunk_index":   j,
				"total_chunks":  len(texts),
				"role":          role,
			}
			if !msg.Timestamp.IsZero() {
				metadata["timestamp"] = msg.Timestamp.UTC().Format(time.RFC3339Nano)
			}
			for key, value := range msg.Extra {
				switch key {
				case "role", "content", "timestamp":
					continue
				}
				metadata[key] = value
			}

			chunks = append(chunks, core.Chunk{
				Text:     text,
				Metadata: FilterMetadata(metadata),
			})
		}
	}

	return chunks, nil
}
