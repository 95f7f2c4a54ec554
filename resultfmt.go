package resultfmt

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrUnsupportedFormat is matched by every [UnsupportedFormatError].
var ErrUnsupportedFormat = errors.New("unsupported format")

// Format identifies an output representation.
type Format string

const (
	JSON     Format = "json"
	Terminal Format = "terminal"
	Markdown Format = "markdown"
)

// DefaultMode is used when a caller passes an empty mode.
const DefaultMode = "default"

var formats = []Format{JSON, Terminal, Markdown}

// String returns the format name.
func (f Format) String() string { return string(f) }

// Formats returns all registered format names.
func Formats() []Format {
	out := make([]Format, len(formats))
	copy(out, formats)
	return out
}

// UnsupportedFormatError reports a format name that is not registered.
type UnsupportedFormatError struct {
	Name  string
	Valid []Format
}

func (e *UnsupportedFormatError) Error() string {
	names := make([]string, len(e.Valid))
	for i, f := range e.Valid {
		names[i] = string(f)
	}
	return fmt.Sprintf("%s %q: valid formats: %s", ErrUnsupportedFormat, e.Name, strings.Join(names, ", "))
}

// Is makes errors.Is(err, ErrUnsupportedFormat) true.
func (e *UnsupportedFormatError) Is(target error) bool {
	return target == ErrUnsupportedFormat
}

// ParseFormat converts a name such as a CLI flag value into a [Format].
func ParseFormat(s string) (Format, error) {
	for _, f := range formats {
		if string(f) == s {
			return f, nil
		}
	}
	return "", &UnsupportedFormatError{Name: s, Valid: Formats()}
}

// Formatter renders a payload. Only the JSON formatter uses metadata; the
// others ignore it.
type Formatter func(payload *Map, mode string, metadata *Map) (string, error)

// Resolve returns the formatter registered under name.
func Resolve(name string) (Formatter, error) {
	f, err := ParseFormat(name)
	if err != nil {
		return nil, err
	}
	switch f {
	case JSON:
		return FormatJSON, nil
	case Terminal:
		return func(payload *Map, mode string, _ *Map) (string, error) {
			return FormatTerminal(payload, mode), nil
		}, nil
	case Markdown:
		return func(payload *Map, mode string, _ *Map) (string, error) {
			return FormatMarkdown(payload, mode)
		}, nil
	default:
		return nil, &UnsupportedFormatError{Name: name, Valid: Formats()}
	}
}

// Render formats payload with the named format. An empty format means
// [Terminal] and an empty mode means [DefaultMode]. Metadata is forwarded
// only to [JSON].
func Render(payload *Map, f Format, mode string, metadata *Map) (string, error) {
	if f == "" {
		f = Terminal
	}
	if mode == "" {
		mode = DefaultMode
	}
	fn, err := Resolve(string(f))
	if err != nil {
		return "", err
	}
	return fn(payload, mode, metadata)
}

// Write renders payload and writes it to w followed by a single newline.
func Write(w io.Writer, payload *Map, f Format, mode string, metadata *Map) error {
	out, err := Render(payload, f, mode, metadata)
	if err != nil {
		return err
	}
	out = strings.TrimRight(out, "\n")
	_, err = io.WriteString(w, out+"\n")
	return err
}
