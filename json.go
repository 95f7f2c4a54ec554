package resultfmt

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const jsonIndent = "  "

// now is the clock used for the JSON timestamp.
var now = time.Now

type document struct {
	Timestamp string `json:"timestamp"`
	Mode      string `json:"mode"`
	Results   *Map   `json:"results"`
	Metadata  *Map   `json:"metadata,omitempty"`
}

// FormatJSON renders payload as an indented JSON document with the fields
// timestamp, mode, results and, when metadata is non-empty, metadata.
// A nil payload renders as an empty results object.
func FormatJSON(payload *Map, mode string, metadata *Map) (string, error) {
	if payload == nil {
		payload = NewMap()
	}
	doc := document{
		Timestamp: now().Format(time.RFC3339Nano),
		Mode:      mode,
		Results:   payload,
	}
	if metadata.Len() > 0 {
		doc.Metadata = metadata
	}
	out, err := marshalIndent(doc)
	if err != nil {
		return "", fmt.Errorf("format %q: %w", JSON, err)
	}
	return out, nil
}

// marshalIndent encodes v with two-space indentation, leaving HTML and
// non-ASCII characters unescaped and dropping the trailing newline.
func marshalIndent(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", jsonIndent)
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// IsValidStructuredOutput reports whether text is syntactically valid JSON.
func IsValidStructuredOutput(text string) bool {
	return json.Valid([]byte(text))
}
