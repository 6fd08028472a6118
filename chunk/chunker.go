// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package chunk

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/poiesic/chatindex/core"
)

// Default chunking parameters, applied by callers that don't configure
// their own.
const (
	DefaultSize    = 1000
	DefaultOverlap = 100
)

var (
	multiNewline = regexp.MustCompile(`\n{3,}`)
	multiSpace   = regexp.MustCompile(` {2,}`)
)

// CleanText normalizes whitespace: runs of three or more newlines collapse
// to two, runs of two or more spaces collapse to one, and leading/trailing
// whitespace is trimmed.
func CleanText(text string) string {
	if text == "" {
		return ""
	}
	text = multiNewline.ReplaceAllString(text, "\n\n")
	text = multiSpace.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// Text splits text into overlapping chunks of at most size runes.
//
// The input is cleaned first. Cleaned text that fits in a single window is
// returned as one chunk; empty input yields no chunks. Longer text is carved
// into windows of size runes, and any window that is neither the first nor
// the last is snapped back to the latest sentence (". ") or line ("\n")
// boundary found in the final 20% of the window, so chunks end on natural
// boundaries when one exists. Consecutive chunks share overlap runes.
//
// Returns core.ErrInvalidChunking unless size > 0 and 0 <= overlap < size.
func Text(text string, size, overlap int) ([]string, error) {
	if size <= 0 || overlap < 0 || overlap >= size {
		return nil, fmt.Errorf("%w: size=%d overlap=%d", core.ErrInvalidChunking, size, overlap)
	}

	cleaned := CleanText(text)
	if cleaned == "" {
		return nil, nil
	}

	runes := []rune(cleaned)
	if len(runes) <= size {
		return []string{cleaned}, nil
	}

	var chunks []string
	start := 0

	for start < len(runes) {
		end := min(start+size, len(runes))

		if start > 0 && end < len(runes) {
			searchStart := start + size*8/10
			if boundary := lastBoundary(runes, searchStart, end); boundary > searchStart {
				end = boundary + 1 // keep the period or newline
			}
		}

		chunks = append(chunks, string(runes[start:end]))

		next := end - overlap
		if next <= start {
			// The overlap would swallow the whole window; skip it so the
			// loop always terminates.
			next = end
		}
		start = next
	}

	return chunks, nil
}

// lastBoundary returns the rune index of the last sentence or line boundary
// in runes[from:to), whichever kind occurs later. A sentence boundary is the
// period of a ". " pair; a line boundary is a newline. Returns -1 when the
// range holds no boundary.
func lastBoundary(runes []rune, from, to int) int {
	if from < 0 {
		from = 0
	}
	for i := to - 1; i >= from; i-- {
		if runes[i] == '\n' {
			return i
		}
		if runes[i] == '.' && i+1 < to && runes[i+1] == ' ' {
			return i
		}
	}
	return -1
}
