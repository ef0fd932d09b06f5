package tools

import (
	"bytes"
	"encoding/json"
)

// decodeParams unmarshals raw tool parameters into target, treating empty
// input as an empty object.
func decodeParams(raw json.RawMessage, target any) error {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		trimmed = []byte("{}")
	}
	return json.Unmarshal(trimmed, target)
}

// decodeObject unmarshals raw JSON into a generic map, treating empty input
// and JSON null as an empty object.
func decodeObject(raw json.RawMessage) (map[string]any, error) {
	var out map[string]any
	if err := decodeParams(raw, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = map[string]any{}
	}
	return out, nil
}
