// Package index turns parsed chat transcripts into embedded chunks stored
// in per-chat vector store collections. Embedding calls are batched and run
// on a worker pool so large transcripts index concurrently.
package index
