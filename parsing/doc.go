// Package parsing converts raw chat transcript files into the message
// representation the rest of the system consumes. JSON and Markdown
// transcripts are supported; a DirectorySource locates and parses
// transcripts by chat ID.
package parsing
