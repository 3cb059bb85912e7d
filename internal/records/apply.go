package records

import (
	"fmt"

	"github.com/leapstack-labs/cmpfill/pkg/core"
)

// DefaultPadValue fills fields added when a record grows to reach a column.
const DefaultPadValue = "0"

// ApplyStats reports what Apply did.
type ApplyStats struct {
	Applied int
	Skipped int
	// Errors holds one message per skipped entry, in entry order.
	Errors []string
}

// RowOutOfRangeError reports an entry addressed past the table's records.
type RowOutOfRangeError struct {
	Row   int
	Count int
}

func (e *RowOutOfRangeError) Error() string {
	if e.Count == 0 {
		return fmt.Sprintf("row %d out of range: file has no data rows", e.Row)
	}
	return fmt.Sprintf("row %d out of range (valid rows: 1-%d)", e.Row, e.Count)
}

// ColumnOutOfRangeError reports an entry with a negative column.
type ColumnOutOfRangeError struct {
	Row    int
	Column int
}

func (e *ColumnOutOfRangeError) Error() string {
	return fmt.Sprintf("column %d out of range for row %d", e.Column, e.Row)
}

// Apply writes entries into the table in order. Entries that address a
// missing row are skipped and reported; they never abort the remaining
// entries. Records grow on the right with pad (DefaultPadValue when empty)
// to reach the target column; existing fields are never removed or moved.
// When two entries target the same field the later one wins.
func (t *Table) Apply(entries []core.Entry, pad string) ApplyStats {
	if pad == "" {
		pad = DefaultPadValue
	}

	var stats ApplyStats
	for _, e := range entries {
		if err := t.applyOne(e, pad); err != nil {
			stats.Skipped++
			stats.Errors = append(stats.Errors, err.Error())
			continue
		}
		stats.Applied++
	}

	return stats
}

func (t *Table) applyOne(e core.Entry, pad string) error {
	idx := e.Row - 1
	if idx < 0 || idx >= len(t.Records) {
		return &RowOutOfRangeError{Row: e.Row, Count: len(t.Records)}
	}
	if e.Column < 0 {
		return &ColumnOutOfRangeError{Row: e.Row, Column: e.Column}
	}

	rec := t.Records[idx]
	for len(rec) <= e.Column {
		rec = append(rec, pad)
	}
	rec[e.Column] = e.Value.String()
	t.Records[idx] = rec

	return nil
}
