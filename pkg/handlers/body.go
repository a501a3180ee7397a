package handlers

import (
	"encoding/json"
	"fmt"
	"io"
)

// DecodeFlexible decodes a JSON request body into v, accepting either
// the object itself or a JSON-encoded string containing the object.
// Some clients double-encode their payload ("\"{\\\"text\\\":...}\"");
// both forms must parse to the same result.
func DecodeFlexible(r io.Reader, v interface{}) error {
	raw, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("failed to read body: %w", err)
	}

	if err := json.Unmarshal(raw, v); err == nil {
		return nil
	}

	var inner string
	if err := json.Unmarshal(raw, &inner); err != nil {
		return fmt.Errorf("invalid JSON body")
	}
	if err := json.Unmarshal([]byte(inner), v); err != nil {
		return fmt.Errorf("invalid JSON body")
	}
	return nil
}
