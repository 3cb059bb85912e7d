package records

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteXLSX(t *testing.T) {
	table := Load("h1\nh2\n0010 100 2.5\n2 x\n")
	path := filepath.Join(t.TempDir(), "out.xlsx")

	require.NoError(t, table.WriteXLSX(path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(XLSXSheetName)
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"h1"},
		{"h2"},
		{"0010", "100", "2.5"},
		{"2", "x"},
	}, rows)
}

func TestCellValue(t *testing.T) {
	assert.Equal(t, "0010", cellValue(0, "0010"))
	assert.Equal(t, 10.0, cellValue(1, "0010"))
	assert.Equal(t, "Inf", cellValue(1, "Inf"))
	assert.Equal(t, "abc", cellValue(2, "abc"))
}
