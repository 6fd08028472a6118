package parsing

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/poiesic/chatindex/core"
)

// defaultRolePatterns are the header forms recognized out of the box, in
// the styles chat exports commonly use.
var defaultRolePatterns = map[string][]string{
	"user":      {`##\s*User:?`, `\*\*User\*\*:?`, `#\s*User:?`},
	"assistant": {`##\s*Assistant:?`, `\*\*Assistant\*\*:?`, `#\s*Assistant:?`},
}

// headerTimestampPattern extracts an optional "(ISO timestamp)" from a
// message header.
var headerTimestampPattern = regexp.MustCompile(`\((\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(?:\.\d+)?Z?)\)`)

// MarkdownParser parses transcripts where each message starts with a role
// header (for example "## User:") followed by the message body.
type MarkdownParser struct {
	patterns []rolePattern
}

type rolePattern struct {
	role string
	re   *regexp.Regexp
}

var _ Parser = (*MarkdownParser)(nil)

// NewMarkdownParser creates a parser recognizing the default user and
// assistant header styles.
func NewMarkdownParser() *MarkdownParser {
	parser, err := NewMarkdownParserWithPatterns(defaultRolePatterns)
	if err != nil {
		// Default patterns are compile-tested constants
		panic(err)
	}
	return parser
}

// NewMarkdownParserWithPatterns creates a parser with custom header
// patterns per role. Patterns are matched case-insensitively.
func NewMarkdownParserWithPatterns(patterns map[string][]string) (*MarkdownParser, error) {
	parser := &MarkdownParser{}
	for role, exprs := range patterns {
		for _, expr := range exprs {
			re, err := regexp.Compile(`(?im)` + expr)
			if err != nil {
				return nil, fmt.Errorf("invalid header pattern for role %q: %w", role, err)
			}
			parser.patterns = append(parser.patterns, rolePattern{role: role, re: re})
		}
	}
	return parser, nil
}

// headerMatch is one located role header in the source text.
type headerMatch struct {
	start, end int
	role       string
}

// Parse converts a Markdown transcript into messages. Message content runs
// from the end of its header to the start of the next header. Headers with
// blank bodies are dropped.
func (p *MarkdownParser) Parse(content []byte) ([]core.Message, error) {
	text := string(content)

	var matches []headerMatch
	for _, rp := range p.patterns {
		for _, loc := range rp.re.FindAllStringIndex(text, -1) {
			matches = append(matches, headerMatch{start: loc[0], end: loc[1], role: rp.role})
		}
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].start < matches[j].start })

	var messages []core.Message
	for i, match := range matches {
		bodyEnd := len(text)
		if i < len(matches)-1 {
			bodyEnd = matches[i+1].start
		}

		body := strings.TrimSpace(text[match.end:bodyEnd])
		if body == "" {
			continue
		}

		msg := core.Message{
			Role:    match.role,
			Content: body,
		}

		header := text[match.start:match.end]
		if tsMatch := headerTimestampPattern.FindStringSubmatch(header); tsMatch != nil {
			if ts, err := parseISOTimestamp(normalizeZulu(tsMatch[1])); err == nil {
				msg.Timestamp = ts
			}
		}

		messages = append(messages, msg)
	}

	return messages, nil
}

// normalizeZulu makes offset-less ISO timestamps parseable as RFC 3339.
func normalizeZulu(raw string) string {
	if strings.HasSuffix(raw, "Z") || strings.Contains(raw, "+") {
		return raw
	}
	return raw + "Z"
}
