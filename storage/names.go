package storage

import "strings"

// collectionPrefix namespaces per-chat collections so unrelated collections
// can coexist in the same store.
const collectionPrefix = "chat_"

// CollectionName returns the collection name for a chat ID.
func CollectionName(chatID string) string {
	return collectionPrefix + chatID
}

// ChatIDFromCollection extracts the chat ID from a collection name.
// The second return value is false if the name is not a chat collection.
func ChatIDFromCollection(name string) (string, bool) {
	return strings.CutPrefix(name, collectionPrefix)
}
