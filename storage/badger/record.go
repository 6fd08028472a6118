package badger

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/poiesic/chatindex/storage"
)

// collectionRecord is the stored form of a collection's metadata.
type collectionRecord struct {
	Name      string         `json:"name"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// chunkRecord is the stored form of a single embedded chunk.
type chunkRecord struct {
	ID          string         `json:"id"`
	Document    string         `json:"document"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	Vector      []float32      `json:"vector"`
	Fingerprint uint64         `json:"fingerprint"`
}

func marshalRecord(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", storage.ErrSerializationFailed, err)
	}
	return data, nil
}

func unmarshalRecord(data []byte, v any) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: %v", storage.ErrSerializationFailed, err)
	}
	return nil
}
