// Package resultfmt renders analysis results in one of three output formats.
//
// A result payload is a [Map], a string-keyed mapping that keeps insertion
// order. The central entry points are [Render] and [Write], which take the
// payload, a [Format], a free-form mode label, and optional metadata:
//
//	p := resultfmt.NewMap().
//		Set("title", "Build").
//		Set("status", "success").
//		Set("data", resultfmt.NewMap().Set("tests", 15).Set("coverage", 87))
//	out, err := resultfmt.Render(p, resultfmt.Terminal, "debug", nil)
//
// # Formats
//
//   - [JSON]: machine-readable document with timestamp, mode, results and,
//     when non-empty, metadata. See [FormatJSON].
//   - [Terminal]: a styled status line followed by one bullet per entry of
//     the payload's "data" mapping. See [FormatTerminal].
//   - [Markdown]: a heading, the mode, and the payload as a JSON code block.
//     See [FormatMarkdown].
//
// Only [JSON] receives metadata. The other formats ignore it.
//
// # Well-known keys
//
// The terminal format reads three keys and passes everything else through:
//
//   - "title": heading text, "Result" when absent
//   - "status": picks the indicator, see [ParseStatus]
//   - "data": a mapping rendered as "  • key: value" lines
//
// # Format Selection
//
// Use [ParseFormat] or [Resolve] to convert a CLI flag string. Unknown names
// fail with an [*UnsupportedFormatError] that lists the valid names and
// matches [ErrUnsupportedFormat]:
//
//	fn, err := resultfmt.Resolve(flagValue)
//	if errors.Is(err, resultfmt.ErrUnsupportedFormat) { ... }
//
// # Validation
//
// [IsValidStructuredOutput] reports whether text parses as JSON.
//
// All functions are safe for concurrent use. Rendering never modifies the
// payload or metadata.
package resultfmt
