// Package testutil provides test utilities for CLI testing.
package testutil

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/leapstack-labs/cmpfill/internal/cli/output"
	"golang.org/x/text/encoding/charmap"
)

// ReportHTML is a validation report with one comparison section holding
// three entries. Row 9 does not exist in Tabular.
const ReportHTML = `<HTML><BODY><TABLE>
<TR><TD><P><B>Сравнение</B></P>
<P>графа 3 : с.2</P>
<P>0 &lt;&gt; 191+0+0</P>
<P>г.1 строка 1</P>
<P>5 &lt;&gt; 100/4</P>
<P>графа 2 : с.9</P>
<P>0 &lt;&gt; 7</P>
</TD></TR>
</TABLE></BODY></HTML>`

// Tabular is a two-row tabular file matching ReportHTML.
const Tabular = "412 0409 2024\nФорма 412\n1 0 0\n2 0 0\n"

// TabularResult is Tabular after ReportHTML has been merged into it.
const TabularResult = "412 0409 2024\nФорма 412\n1 25 0\n2 0 0 191\n"

// Project is a temporary directory holding a report and a tabular file.
type Project struct {
	Dir     string
	Markup  string
	Tabular string
}

// ResultPath returns the default output path for the project's tabular file.
func (p Project) ResultPath() string {
	return filepath.Join(p.Dir, "form_result.01")
}

// SetupTestProject creates a temporary directory holding report.htm
// (windows-1251 encoded) and form.01.
func SetupTestProject(t *testing.T) Project {
	t.Helper()
	return SetupTestProjectWith(t, ReportHTML, Tabular)
}

// SetupTestProjectWith is SetupTestProject with custom contents.
func SetupTestProjectWith(t *testing.T, markup, tabular string) Project {
	t.Helper()

	dir := t.TempDir()
	p := Project{
		Dir:     dir,
		Markup:  filepath.Join(dir, "report.htm"),
		Tabular: filepath.Join(dir, "form.01"),
	}

	encoded, err := charmap.Windows1251.NewEncoder().String(markup)
	if err != nil {
		t.Fatalf("failed to encode report: %v", err)
	}
	if err := os.WriteFile(p.Markup, []byte(encoded), 0644); err != nil {
		t.Fatalf("failed to create report.htm: %v", err)
	}
	if err := os.WriteFile(p.Tabular, []byte(tabular), 0644); err != nil {
		t.Fatalf("failed to create form.01: %v", err)
	}

	return p
}

// WriteConfig writes a cmpfill.yaml with the given body into dir.
func WriteConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "cmpfill.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("failed to create cmpfill.yaml: %v", err)
	}
	return path
}

// TestRenderer wraps a Renderer for testing with captured output buffers.
type TestRenderer struct {
	*output.Renderer
	Out    *bytes.Buffer
	ErrOut *bytes.Buffer
}

// NewTestRenderer creates a new test renderer with the specified mode and TTY state.
// Output is captured in buffers for inspection.
func NewTestRenderer(mode output.OutputMode, isTTY bool) *TestRenderer {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	return &TestRenderer{
		Renderer: output.NewRendererWithTTY(out, errOut, isTTY, mode),
		Out:      out,
		ErrOut:   errOut,
	}
}

// NewTestRendererText creates a new test renderer in text mode (simulated TTY).
func NewTestRendererText() *TestRenderer {
	return NewTestRenderer(output.ModeText, true)
}

// NewTestRendererMarkdown creates a new test renderer in markdown mode.
func NewTestRendererMarkdown() *TestRenderer {
	return NewTestRenderer(output.ModeMarkdown, false)
}

// NewTestRendererJSON creates a new test renderer in JSON mode.
func NewTestRendererJSON() *TestRenderer {
	return NewTestRenderer(output.ModeJSON, false)
}

// Output returns the stdout output as a string.
func (tr *TestRenderer) Output() string {
	return tr.Out.String()
}

// ErrorOutput returns the stderr output as a string.
func (tr *TestRenderer) ErrorOutput() string {
	return tr.ErrOut.String()
}

// ansiPattern matches ANSI escape codes.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// AssertNoANSI checks that a string contains no ANSI escape codes.
func AssertNoANSI(t *testing.T, s string) {
	t.Helper()
	if ansiPattern.MatchString(s) {
		t.Errorf("string contains ANSI escape codes: %q", s)
	}
}

// AssertValidMarkdown performs basic markdown validation.
// It checks for unclosed code fences and empty headers.
func AssertValidMarkdown(t *testing.T, md string) {
	t.Helper()

	if n := strings.Count(md, "```"); n%2 != 0 {
		t.Errorf("unbalanced code fences in markdown: found %d occurrences", n)
	}

	for i, line := range strings.Split(md, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#") && strings.TrimLeft(trimmed, "# ") == "" {
			t.Errorf("empty header at line %d: %q", i+1, line)
		}
	}
}
