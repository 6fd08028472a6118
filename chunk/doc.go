// Package chunk splits chat transcripts into overlapping text segments
// suitable for embedding and vector storage.
//
// Chunking is boundary-aware: windows that would cut mid-sentence are
// snapped back to the last sentence or line boundary in the tail of the
// window. All functions are pure; no state is retained between calls.
package chunk
