// Package records reads, updates and writes ".01" tabular files.
//
// A tabular file has two opaque header lines followed by data lines of
// whitespace-separated fields. Field 0 of each data line identifies the row;
// fields 1..N are the data columns addressed by "графа" numbers.
package records

import (
	"fmt"
	"io"
	"strings"
)

// NumHeaderLines is the number of leading lines kept verbatim.
const NumHeaderLines = 2

// Record is one data line split into fields.
type Record []string

// Table is a loaded tabular file.
type Table struct {
	// Header holds the leading lines exactly as read, terminators included.
	Header []string
	// Records holds one entry per data line, in file order.
	Records []Record
}

// LineEnding selects the line terminator used when writing a table.
type LineEnding string

// Supported line endings.
const (
	LF   LineEnding = "lf"
	CRLF LineEnding = "crlf"
)

// ParseLineEnding converts a config value into a LineEnding.
func ParseLineEnding(s string) (LineEnding, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "lf", "unix":
		return LF, nil
	case "crlf", "windows", "dos":
		return CRLF, nil
	}
	return "", fmt.Errorf("unknown line ending %q (want lf or crlf)", s)
}

func (e LineEnding) terminator() string {
	if e == CRLF {
		return "\r\n"
	}
	return "\n"
}

// Load parses tabular text. It never fails: a short file simply yields
// fewer header lines and no records, and an empty data line yields an
// empty Record. CRLF and lone CR terminators are read as LF.
func Load(text string) *Table {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	lines := strings.SplitAfter(text, "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}

	headerCount := min(NumHeaderLines, len(lines))
	t := &Table{
		Header:  append([]string(nil), lines[:headerCount]...),
		Records: make([]Record, 0, len(lines)-headerCount),
	}

	for _, line := range lines[headerCount:] {
		t.Records = append(t.Records, Record(strings.Fields(line)))
	}

	return t
}

// Serialize renders the table back to text. Whitespace between fields is
// normalized to a single space.
func (t *Table) Serialize(eol LineEnding) string {
	var sb strings.Builder
	_ = t.Write(&sb, eol)
	return sb.String()
}

// Write renders the table to w.
func (t *Table) Write(w io.Writer, eol LineEnding) error {
	term := eol.terminator()

	for _, h := range t.Header {
		h = strings.TrimSuffix(h, "\n")
		if _, err := io.WriteString(w, h+term); err != nil {
			return err
		}
	}

	for _, rec := range t.Records {
		if _, err := io.WriteString(w, strings.Join(rec, " ")+term); err != nil {
			return err
		}
	}

	return nil
}

// Len returns the number of data records.
func (t *Table) Len() int {
	return len(t.Records)
}
