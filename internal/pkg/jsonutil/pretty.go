package jsonutil

import (
	"encoding/json"
	"io"
)

// Encode writes v as indented JSON without HTML escaping (prompts contain <, >, &).
func Encode(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
