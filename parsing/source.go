package parsing

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/poiesic/chatindex/core"
)

// DirectorySource resolves chat IDs to transcript files in a directory.
// The transcript for chat ID "abc" is the first file whose name starts
// with "abc"; .json files go through the JSON parser, everything else
// through the Markdown parser.
type DirectorySource struct {
	dir      string
	json     Parser
	markdown Parser
}

// NewDirectorySource creates a source reading transcripts from dir.
func NewDirectorySource(dir string) *DirectorySource {
	return &DirectorySource{
		dir:      dir,
		json:     NewJSONParser(),
		markdown: NewMarkdownParser(),
	}
}

// ChatMessages locates and parses the transcript for a chat ID.
// Returns ErrChatNotFound when no matching file exists.
func (s *DirectorySource) ChatMessages(ctx context.Context, chatID string) ([]core.Message, error) {
	path, err := s.findTranscript(chatID)
	if err != nil {
		return nil, err
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if strings.EqualFold(filepath.Ext(path), ".json") {
		return s.json.Parse(content)
	}
	return s.markdown.Parse(content)
}

// findTranscript returns the lexically first file named {chatID}* in the
// source directory.
func (s *DirectorySource) findTranscript(chatID string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(s.dir, chatID+"*"))
	if err != nil {
		return "", err
	}

	sort.Strings(matches)
	for _, match := range matches {
		info, err := os.Stat(match)
		if err != nil || info.IsDir() {
			continue
		}
		return match, nil
	}

	return "", fmt.Errorf("%w: %s", ErrChatNotFound, chatID)
}
