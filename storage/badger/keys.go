package badger

import "fmt"

// Key prefixes for different data types
const (
	collectionMetaPrefix = "colmeta"
	chunkRecordPrefix    = "chunk"
)

// makeCollectionKey generates the key holding a collection's metadata.
func makeCollectionKey(name string) []byte {
	return []byte(fmt.Sprintf("%s:%s", collectionMetaPrefix, name))
}

// makeChunkKey generates the key for a chunk record within a collection.
func makeChunkKey(collection, id string) []byte {
	return []byte(fmt.Sprintf("%s:%s:%s", chunkRecordPrefix, collection, id))
}

// makeChunkScanPrefix generates the iteration prefix covering all chunk
// records of a collection.
func makeChunkScanPrefix(collection string) []byte {
	return []byte(fmt.Sprintf("%s:%s:", chunkRecordPrefix, collection))
}
