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


package parsing

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/poiesic/chatindex/core"
)

// JSONParser parses transcripts stored as a JSON array of message objects,
// or as an object with a "messages" array. The field names carrying role,
// content and timestamp are configurable for sources that use different
// schemas.
type JSONParser struct {
	RoleField      string
	ContentField   string
	TimestampField string
}

var _ Parser = (*JSONParser)(nil)

// NewJSONParser creates a parser with the standard role/content/timestamp
// field names.
func NewJSONParser() *JSONParser {
	return &JSONParser{
		RoleField:      "role",
		ContentField:   "content",
		TimestampField: "timestamp",
	}
}

// Parse converts JSON transcript bytes into messages. Entries that are not
// objects are skipped. Fields beyond the configured role/content/timestamp
// are preserved in Message.Extra.
func (p *JSONParser) Parse(content []byte) ([]core.Message, error) {
	var doc any
	if err := json.Unmarshal(content, &doc); err != nil {
		return nil, fmt.Errorf("invalid JSON transcript: %w", err)
	}

	var entries []any
	switch v := doc.(type) {
	case []any:
		entries = v
	case map[string]any:
		wrapped, ok := v["messages"].([]any)
		if !ok {
			return nil, fmt.Errorf("JSON transcript must be an array of messages or an object with a 'messages' array")
		}
		entries = wrapped
	default:
		return nil, fmt.Errorf("JSON transcript must be an array of messages or an object with a 'messages' array")
	}

	messages := make([]core.Message, 0, len(entries))
	for _, entry := range entries {
		obj, ok := entry.(map[string]any)
		if !ok {
			continue
		}

		msg := core.Message{Role: "unknown"}
		if role, ok := obj[p.RoleField].(string); ok && role != "" {
			msg.Role = role
		}
		if text, ok := obj[p.ContentField].(string); ok {
			msg.Content = text
		}

		timestampConsumed := false
		if raw, ok := obj[p.TimestampField].(string); ok {
			if ts, err := parseISOTimestamp(raw); err == nil {
				msg.Timestamp = ts
				timestampConsumed = true
			}
		}

		for key, value := range obj {
			if key == p.RoleField || key == p.ContentField {
				continue
			}
			if key == p.TimestampField && timestampConsumed {
				continue
			}
			if msg.Extra == nil {
				msg.Extra = make(map[string]any)
			}
			msg.Extra[key] = value
		}

		messages = append(messages, msg)
	}

	return messages, nil
}

// parseISOTimestamp accepts RFC 3339 timestamps with or without
// sub-second precision or an explicit offset.
func parseISOTimestamp(raw string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05"} {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", raw)
}
