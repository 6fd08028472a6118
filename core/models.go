package core

import (
	"encoding/binary"
	"strings"
	"time"
	"unicode"

	"github.com/go-crypt/x/blake2b"
)

// Fingerprint generates a deterministic 64-bit content hash using BLAKE2b.
// Identical content always produces the same fingerprint, which the vector
// store uses to skip redundant writes when a chunk is re-added unchanged.
func Fingerprint(text string) uint64 {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return binary.LittleEndian.Uint64(sum)
}

// Message represents a single turn in a parsed chat transcript.
// It is produced by a parser and is treated as immutable afterwards.
type Message struct {
	// Role is the speaker role as it appeared in the source ("user",
	// "assistant", "system", ...). Never normalized beyond lowercasing
	// by the parsers.
	Role string

	// Content is the raw message text.
	Content string

	// Timestamp is when the message was sent. The zero value means the
	// source carried no timestamp.
	Timestamp time.Time

	// Extra holds any additional fields the source attached to the
	// message beyond role/content/timestamp. Values are passed through
	// to chunk metadata after sanitization.
	Extra map[string]any
}

// IsBlank reports whether the message content is empty or whitespace-only.
// Blank messages are skipped by the segmenter and the graph builder.
func (m Message) IsBlank() bool {
	return strings.TrimSpace(m.Content) == ""
}

// Chunk is a bounded text segment produced from a message, ready for
// embedding and storage.
type Chunk struct {
	Text     string
	Metadata map[string]any
}

// SearchHit is a single result returned from a vector store query.
type SearchHit struct {
	// ID is the chunk identifier within its collection.
	ID string

	// Text is the stored chunk text.
	Text string

	// Metadata is the sanitized chunk metadata as stored.
	Metadata map[string]any

	// Distance is the score reported by the vector store, passed through
	// unmodified. For the bundled Badger store this is cosine distance
	// (smaller is closer).
	Distance float32
}

// CapitalizeRole upper-cases the first rune of a role and lower-cases the
// rest, matching how roles are rendered in chunk prefixes and graph labels.
// "USER" becomes "User", "assistant" becomes "Assistant".
func CapitalizeRole(role string) string {
	if role == "" {
		return ""
	}
	runes := []rune(strings.ToLower(role))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
