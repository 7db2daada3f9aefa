// Package wire maps the backend's snake_case JSON onto domain types and back.
// Nothing outside this package knows the wire field names.
package wire

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// unwrap returns the value under key when data is an envelope such as
// {"task": {...}}, or data itself when the entity is bare.
func unwrap(data []byte, key string) []byte {
	var env map[string]json.RawMessage
	if err := json.Unmarshal(data, &env); err != nil {
		return data
	}
	inner, ok := env[key]
	if !ok {
		return data
	}
	inner = bytes.TrimSpace(inner)
	if len(inner) == 0 || inner[0] != '{' {
		return data
	}
	return inner
}

// listEnvelope is the paginated list shape: {"<key>": [...], "total_pages": n, "current_page": n}.
type listEnvelope struct {
	TotalPages  int `json:"total_pages"`
	CurrentPage int `json:"current_page"`
}

// decodeList accepts either a bare JSON array or an object carrying the
// array under key plus optional pagination fields.
func decodeList[T any](data []byte, key string) ([]T, listEnvelope, error) {
	var meta listEnvelope
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, meta, nil
	}

	if data[0] == '[' {
		var items []T
		if err := json.Unmarshal(data, &items); err != nil {
			return nil, meta, fmt.Errorf("decoding %s: %w", key, err)
		}
		return items, meta, nil
	}

	var env map[string]json.RawMessage
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, meta, fmt.Errorf("decoding %s envelope: %w", key, err)
	}
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, meta, fmt.Errorf("decoding %s pagination: %w", key, err)
	}
	raw, ok := env[key]
	if !ok {
		raw, ok = env["data"]
	}
	if !ok || string(raw) == "null" {
		return nil, meta, nil
	}
	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, meta, fmt.Errorf("decoding %s: %w", key, err)
	}
	return items, meta, nil
}

func parseTime(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil
	}
	return &t
}
