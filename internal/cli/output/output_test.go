package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRenderer(mode OutputMode, isTTY bool) (*Renderer, *bytes.Buffer, *bytes.Buffer) {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	return NewRendererWithTTY(out, errOut, isTTY, mode), out, errOut
}

func TestMode(t *testing.T) {
	tests := map[string]OutputMode{
		"":         ModeAuto,
		"auto":     ModeAuto,
		"TEXT":     ModeText,
		"markdown": ModeMarkdown,
		"md":       ModeMarkdown,
		"json":     ModeJSON,
		"yaml":     ModeAuto,
	}

	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			assert.Equal(t, want, Mode(in))
		})
	}
}

func TestEffectiveMode(t *testing.T) {
	tests := []struct {
		name  string
		mode  OutputMode
		isTTY bool
		want  OutputMode
	}{
		{"auto on tty", ModeAuto, true, ModeText},
		{"auto piped", ModeAuto, false, ModeMarkdown},
		{"explicit text piped", ModeText, false, ModeText},
		{"explicit json on tty", ModeJSON, true, ModeJSON},
		{"empty means auto", "", false, ModeMarkdown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _, _ := newTestRenderer(tt.mode, tt.isTTY)
			assert.Equal(t, tt.want, r.EffectiveMode())
		})
	}
}

func TestRenderer_PlainWhenNotTTY(t *testing.T) {
	r, out, errOut := newTestRenderer(ModeText, false)

	r.Success("done")
	r.Muted("quiet")
	r.StatusLine("form.01", "success", "2 applied")
	r.Error("boom")

	assert.Equal(t, "✓ done\nquiet\n✓ form.01  2 applied\n", out.String())
	assert.Equal(t, "✗ boom\n", errOut.String())
	assert.NotContains(t, out.String(), "\x1b[")
}

func TestRenderer_Header(t *testing.T) {
	r, out, _ := newTestRenderer(ModeMarkdown, false)
	r.Header(2, "Errors")
	assert.Equal(t, "## Errors\n", out.String())

	r, out, _ = newTestRenderer(ModeText, false)
	r.Header(2, "Errors")
	assert.Equal(t, "Errors\n", out.String())
}

func TestRenderer_JSON(t *testing.T) {
	r, out, _ := newTestRenderer(ModeJSON, false)

	require.NoError(t, r.JSON(map[string]int{"applied_count": 2}))
	assert.Equal(t, "{\n  \"applied_count\": 2\n}\n", out.String())
}

func TestRenderer_Table(t *testing.T) {
	headers := []string{"Row", "Column", "Value"}
	rows := [][]string{{"5", "3", "191"}}

	t.Run("markdown", func(t *testing.T) {
		r, out, _ := newTestRenderer(ModeMarkdown, false)
		r.Table(headers, rows)

		lines := strings.Split(strings.TrimSpace(out.String()), "\n")
		require.Len(t, lines, 3)
		assert.Equal(t, "| Row | Column | Value |", lines[0])
		assert.Equal(t, "| 5 | 3 | 191 |", lines[2])
	})

	t.Run("text", func(t *testing.T) {
		r, out, _ := newTestRenderer(ModeText, true)
		r.Table(headers, rows)

		assert.Contains(t, out.String(), "┌")
		assert.Contains(t, out.String(), "191")
	})

	t.Run("empty", func(t *testing.T) {
		r, out, _ := newTestRenderer(ModeText, true)
		r.Table(headers, nil)
		assert.Equal(t, "(0 rows)\n", out.String())
	})
}

func TestFormatters(t *testing.T) {
	assert.Equal(t, "# Title", FormatHeader(1, "Title"))
	assert.Equal(t, "###### Deep", FormatHeader(9, "Deep"))
	assert.Equal(t, "- **Applied:** 2", FormatKeyValue("Applied", "2"))
	assert.Equal(t, "```text\n1+1\n```", FormatCodeBlock("text", "1+1\n"))
}
