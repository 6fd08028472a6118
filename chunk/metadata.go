package chunk

import "fmt"

// FilterMetadata sanitizes a metadata map for vector-store compatibility.
// Nil values are dropped, primitive values (strings, booleans, integers and
// floats) are kept as-is, and anything else is stringified. The same
// sanitization must be applied anywhere chunk metadata is handed to a
// storage backend.
func FilterMetadata(metadata map[string]any) map[string]any {
	filtered := make(map[string]any, len(metadata))

	for key, value := range metadata {
		if value == nil {
			continue
		}
		switch value.(type) {
		case string, bool,
			int, int8, int16, int32, int64,
			uint, uint8, uint16, uint32, uint64,
			float32, float64:
			filtered[key] = value
		default:
			filtered[key] = fmt.Sprint(value)
		}
	}

	return filtered
}
