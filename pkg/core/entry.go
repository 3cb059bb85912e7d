package core

import (
	"fmt"

	"github.com/leapstack-labs/cmpfill/pkg/calc"
)

// Entry is one value extracted from a report, addressed to a tabular record.
//
// Row is 1-based. Column 0 is the record's identifier field, so data
// columns start at 1 and map directly to "графа" numbers.
type Entry struct {
	Row    int         `json:"row"`
	Column int         `json:"column"`
	Value  calc.Number `json:"value"`
}

// String formats the entry as "row:column=value".
func (e Entry) String() string {
	return fmt.Sprintf("%d:%d=%s", e.Row, e.Column, e.Value)
}
