package models

import "encoding/json"

// JSONMap is the in-memory form of the opaque JSON blobs stored as text
// (custom-values bag, template config). Persistence sees only the encoded
// string; all interpretation happens on this parsed form.
type JSONMap map[string]any

// DecodeJSONMap parses a stored blob. A missing or corrupt blob decodes as
// an empty map rather than an error; the stored text is treated as a cache
// of client data, not a source of request failures.
func DecodeJSONMap(raw string) JSONMap {
	if raw == "" {
		return JSONMap{}
	}
	var m JSONMap
	if err := json.Unmarshal([]byte(raw), &m); err != nil || m == nil {
		return JSONMap{}
	}
	return m
}

// Encode serializes the map for storage.
func (m JSONMap) Encode() string {
	if m == nil {
		return "{}"
	}
	data, err := json.Marshal(m)
	if err != nil {
		return "{}"
	}
	return string(data)
}
