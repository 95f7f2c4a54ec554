package resultfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Status indicators used by the terminal formatter.
const (
	IconSuccess = "✓"
	IconError   = "✗"
	IconWarning = "⚠"
	IconInfo    = "ℹ"
)

const (
	defaultTitle = "Result"
	bullet       = "•"
)

// styles holds the lipgloss styles for terminal output.
type styles struct {
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style
	Title   lipgloss.Style
}

// The renderer is pinned to the ANSI profile so captured output carries the
// same escape sequences as an interactive terminal.
var terminalStyles = newStyles(ansiRenderer())

func ansiRenderer() *lipgloss.Renderer {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.ANSI)
	return r
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		Success: r.NewStyle().Foreground(lipgloss.Color("2")), // green
		Error:   r.NewStyle().Foreground(lipgloss.Color("1")), // red
		Warning: r.NewStyle().Foreground(lipgloss.Color("3")), // yellow
		Info:    r.NewStyle().Foreground(lipgloss.Color("4")), // blue
		Title:   r.NewStyle().Bold(true).TabWidth(lipgloss.NoTabConversion),
	}
}

// Status is the visual category picked from a payload's status value.
type Status int

const (
	StatusInfo Status = iota
	StatusSuccess
	StatusError
	StatusWarning
)

// ParseStatus maps a status value to its category. Matching ignores case and
// surrounding whitespace; unknown values map to [StatusInfo].
func ParseStatus(s string) Status {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "success":
		return StatusSuccess
	case "error", "failed", "failure":
		return StatusError
	case "warning", "warn":
		return StatusWarning
	default:
		return StatusInfo
	}
}

// Icon returns the unstyled indicator glyph.
func (s Status) Icon() string {
	switch s {
	case StatusSuccess:
		return IconSuccess
	case StatusError:
		return IconError
	case StatusWarning:
		return IconWarning
	default:
		return IconInfo
	}
}

func (s Status) style(st styles) lipgloss.Style {
	switch s {
	case StatusSuccess:
		return st.Success
	case StatusError:
		return st.Error
	case StatusWarning:
		return st.Warning
	default:
		return st.Info
	}
}

// FormatTerminal renders payload as a short styled report: a status
// indicator with the bold title, a blank line, then one bullet per entry of
// payload["data"] when it is a mapping. mode is accepted for symmetry with
// the other formatters and is not rendered.
func FormatTerminal(payload *Map, mode string) string {
	return renderTerminal(payload, terminalStyles)
}

func renderTerminal(payload *Map, st styles) string {
	status := StatusInfo
	if v, ok := payload.Get("status"); ok {
		if s, ok := v.(string); ok {
			status = ParseStatus(s)
		}
	}

	title := defaultTitle
	if v, ok := payload.Get("title"); ok && v != nil {
		title = displayValue(v)
	}

	var b strings.Builder
	b.WriteString(status.style(st).Render(status.Icon()))
	b.WriteString(" ")
	b.WriteString(renderLines(st.Title, title))
	b.WriteString("\n\n")

	data, _ := payload.Get("data")
	switch d := data.(type) {
	case *Map:
		d.Range(func(k string, v any) bool {
			writeBullet(&b, k, v)
			return true
		})
	case map[string]any:
		for _, k := range sortedKeys(d) {
			writeBullet(&b, k, d[k])
		}
	}
	return b.String()
}

// renderLines styles each line on its own. Rendering a multi-line string in
// one call makes lipgloss pad the lines into a block.
func renderLines(style lipgloss.Style, s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = style.Render(line)
		}
	}
	return strings.Join(lines, "\n")
}

func writeBullet(b *strings.Builder, key string, value any) {
	fmt.Fprintf(b, "  %s %s: %s\n", bullet, key, displayValue(value))
}
