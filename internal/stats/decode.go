package stats

import (
	"encoding/json"
	"fmt"
	"strings"
)

// DecodeList parses a stored encoded-list value into a list of strings.
//
// The warga table stores tag lists as opaque text. Most rows hold a JSON
// array, but rows written by older collection flows may hold a bare token,
// a half-migrated blob, or NULL. Decoding is best effort and never fails:
//   - nil / empty text        -> no elements
//   - already-decoded list    -> elements coerced to strings
//   - text JSON array         -> parsed elements coerced to strings
//   - any other non-empty text -> one element holding the raw text
func DecodeList(raw any) []string {
	switch v := raw.(type) {
	case nil:
		return nil
	case []string:
		return v
	case []any:
		return coerceElements(v)
	case []byte:
		return decodeListText(string(v))
	case string:
		return decodeListText(v)
	default:
		return []string{fmt.Sprintf("%v", v)}
	}
}

func decodeListText(raw string) []string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || trimmed == "null" {
		return nil
	}

	var arr []any
	if err := json.Unmarshal([]byte(trimmed), &arr); err == nil {
		return coerceElements(arr)
	}

	// Not a JSON array: treat the field as one untagged value instead of
	// discarding the row's data.
	return []string{trimmed}
}

func coerceElements(arr []any) []string {
	if len(arr) == 0 {
		return nil
	}
	out := make([]string, 0, len(arr))
	for _, el := range arr {
		switch e := el.(type) {
		case nil:
			continue
		case string:
			out = append(out, e)
		default:
			out = append(out, fmt.Sprintf("%v", e))
		}
	}
	return out
}
