package resultfmt

import (
	"fmt"
	"strings"
)

const markdownHeading = "# Analysis Results"

// FormatMarkdown renders payload as a Markdown section: a heading, the mode,
// and the payload as an indented JSON code block. No key is treated
// specially.
func FormatMarkdown(payload *Map, mode string) (string, error) {
	if payload == nil {
		payload = NewMap()
	}
	body, err := marshalIndent(payload)
	if err != nil {
		return "", fmt.Errorf("format %q: %w", Markdown, err)
	}
	var b strings.Builder
	b.WriteString(markdownHeading + "\n\n")
	fmt.Fprintf(&b, "**Mode:** %s\n\n", mode)
	b.WriteString("```json\n")
	b.WriteString(body)
	b.WriteString("\n```\n")
	return b.String(), nil
}
