package resultfmt

import (
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func plainStyles() styles {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.Ascii)
	return newStyles(r)
}

func TestFormatJSONFixedClock(t *testing.T) {
	// Not parallel: swaps the package clock.
	orig := now
	t.Cleanup(func() { now = orig })
	now = func() time.Time { return time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC) }

	payload := NewMap().Set("tests_passed", 15).Set("warnings", 2)
	meta := NewMap().Set("version", "1.0.0")
	out, err := FormatJSON(payload, "debug", meta)
	require.NoError(t, err)
	want := `{
  "timestamp": "2024-05-01T12:30:00Z",
  "mode": "debug",
  "results": {
    "tests_passed": 15,
    "warnings": 2
  },
  "metadata": {
    "version": "1.0.0"
  }
}`
	assert.Equal(t, want, out)

	again, err := FormatJSON(payload, "debug", meta)
	require.NoError(t, err)
	assert.Equal(t, out, again)
}

func TestRenderTerminalPlain(t *testing.T) {
	t.Parallel()
	payload := NewMap().
		Set("title", "Release").
		Set("status", "warn").
		Set("data", NewMap().Set("version", "1.2.0").Set("changelog", false))
	got := renderTerminal(payload, plainStyles())
	assert.Equal(t, "⚠ Release\n\n  • version: 1.2.0\n  • changelog: false\n", got)
}

func TestRenderTerminalNonStringTitle(t *testing.T) {
	t.Parallel()
	got := renderTerminal(NewMap().Set("title", 7), plainStyles())
	assert.Equal(t, "ℹ 7\n\n", got)
}

func TestRenderLines(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		in   string
		want string
	}{
		"single":    {in: "Build", want: "Build"},
		"tab":       {in: "a\tb", want: "a\tb"},
		"multiline": {in: "a\tb\nlonger line", want: "a\tb\nlonger line"},
		"blank":     {in: "top\n\nbottom", want: "top\n\nbottom"},
	}
	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, renderLines(plainStyles().Title, tt.in))
		})
	}
}

func TestRenderLinesStylesEachLine(t *testing.T) {
	t.Parallel()
	st := newStyles(ansiRenderer())
	got := renderLines(st.Title, "one\ntwo")
	assert.Equal(t, st.Title.Render("one")+"\n"+st.Title.Render("two"), got)
	assert.NotContains(t, got, "one ")
}

func TestStatusStyle(t *testing.T) {
	t.Parallel()
	st := newStyles(ansiRenderer())
	tests := map[string]struct {
		status Status
		want   lipgloss.Style
	}{
		"success": {status: StatusSuccess, want: st.Success},
		"error":   {status: StatusError, want: st.Error},
		"warning": {status: StatusWarning, want: st.Warning},
		"info":    {status: StatusInfo, want: st.Info},
	}
	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want.Render("x"), tt.status.style(st).Render("x"))
		})
	}
}

func TestDisplayValue(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		in   any
		want string
	}{
		"nil":      {in: nil, want: "null"},
		"string":   {in: "a <b>", want: "a <b>"},
		"int":      {in: 15, want: "15"},
		"float":    {in: 87.5, want: "87.5"},
		"whole":    {in: float64(87), want: "87"},
		"bool":     {in: true, want: "true"},
		"slice":    {in: []any{1, "<x>"}, want: `[1,"<x>"]`},
		"std map":  {in: map[string]any{"b": 1, "a": 2}, want: `{"a":2,"b":1}`},
		"ordered":  {in: NewMap().Set("b", 1).Set("a", 2), want: `{"b":1,"a":2}`},
		"nil map":  {in: (*Map)(nil), want: "{}"},
		"duration": {in: 2 * time.Second, want: "2s"},
	}
	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, displayValue(tt.in))
		})
	}
}

func TestSortedKeys(t *testing.T) {
	t.Parallel()
	assert.Equal(t, []string{"a", "b", "c"}, sortedKeys(map[string]any{"c": 1, "a": 2, "b": 3}))
	assert.Empty(t, sortedKeys(nil))
}

func TestMarshalIndentTrimsNewline(t *testing.T) {
	t.Parallel()
	out, err := marshalIndent(NewMap().Set("a", []any{1}))
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"a\": [\n    1\n  ]\n}", out)
}
