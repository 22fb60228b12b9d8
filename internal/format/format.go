// Package format writes CLI payloads as JSON.
package format

import (
	"encoding/json"
	"io"
)

// Write encodes v to w. Compact by default; pretty uses two-space indent.
// Output always ends with a newline so it composes in pipelines.
func Write(w io.Writer, v any, pretty bool) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}
