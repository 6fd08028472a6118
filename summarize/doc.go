// Package summarize produces natural-language summaries of chat
// transcripts through a text generation model.
package summarize
