package badger

import (
	"context"
	"math"
	"slices"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/chatindex/core"
	"github.com/poiesic/chatindex/storage"
)

// Collection implements storage.Collection over a key range of the backend.
type Collection struct {
	backend *Backend
	name    string
}

var _ storage.Collection = (*Collection)(nil)

// Name returns the collection's name.
func (c *Collection) Name() string {
	return c.name
}

// Add upserts a batch of chunks. Re-adding an id whose document content is
// unchanged (same fingerprint) is skipped, so re-indexing a chat is cheap.
func (c *Collection) Add(ctx context.Context, ids []string, vectors [][]float32, metadatas []map[string]any, documents []string) error {
	if len(ids) != len(vectors) || len(ids) != len(metadatas) || len(ids) != len(documents) {
		return storage.ErrInvalidBatch
	}
	if c.backend.IsClosed() {
		return storage.ErrStorageClosed
	}

	return c.backend.WithTx(func(tx *badger.Txn) error {
		for i, id := range ids {
			key := makeChunkKey(c.name, id)
			fingerprint := core.Fingerprint(documents[i])

			// Skip rewrite when the stored content is unchanged
			item, err := tx.Get(key)
			if err == nil {
				var existing chunkRecord
				err := item.Value(func(val []byte) error {
					return unmarshalRecord(val, &existing)
				})
				if err != nil {
					return err
				}
				if existing.Fingerprint == fingerprint {
					continue
				}
			} else if err != badger.ErrKeyNotFound {
				return err
			}

			value, err := marshalRecord(&chunkRecord{
				ID:          id,
				Document:    documents[i],
				Metadata:    metadatas[i],
				Vector:      vectors[i],
				Fingerprint: fingerprint,
			})
			if err != nil {
				return err
			}
			if err := tx.Set(key, value); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// Query returns up to k hits ranked by cosine distance ascending.
func (c *Collection) Query(ctx context.Context, vector []float32, k int) ([]core.SearchHit, error) {
	if c.backend.IsClosed() {
		return nil, storage.ErrStorageClosed
	}

	var hits []core.SearchHit
	err := c.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeChunkScanPrefix(c.name)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var record chunkRecord
			err := iter.Item().Value(func(val []byte) error {
				return unmarshalRecord(val, &record)
			})
			if err != nil {
				return err
			}
			if len(record.Vector) == 0 {
				continue
			}

			hits = append(hits, core.SearchHit{
				ID:       record.ID,
				Text:     record.Document,
				Metadata: record.Metadata,
				Distance: cosineDistance(vector, record.Vector),
			})
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	// Sort by distance ascending (closest first)
	slices.SortFunc(hits, func(a, b core.SearchHit) int {
		if a.Distance < b.Distance {
			return -1
		}
		if a.Distance > b.Distance {
			return 1
		}
		return 0
	})

	if k > 0 && len(hits) > k {
		hits = hits[:k]
	}

	return hits, nil
}

// Count returns the number of chunks stored in the collection.
func (c *Collection) Count(ctx context.Context) (int, error) {
	if c.backend.IsClosed() {
		return 0, storage.ErrStorageClosed
	}

	count := 0
	err := c.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeChunkScanPrefix(c.name)
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			count++
		}
		return nil
	}, false)
	if err != nil {
		return 0, err
	}

	return count, nil
}

// cosineDistance calculates 1 minus the cosine similarity of two vectors.
// Zero-norm vectors are treated as maximally distant.
func cosineDistance(a, b []float32) float32 {
	minLen := len(a)
	if len(b) < minLen {
		minLen = len(b)
	}

	var dot, normA, normB float64
	for i := 0; i < minLen; i++ {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 1
	}

	return float32(1 - dot/(math.Sqrt(normA)*math.Sqrt(normB)))
}
