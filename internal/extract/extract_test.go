package extract

import (
	"testing"

	"github.com/leapstack-labs/cmpfill/internal/testutil"
	"github.com/leapstack-labs/cmpfill/pkg/calc"
	"github.com/leapstack-labs/cmpfill/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleReport = `<HTML><BODY><TABLE>
<TR><TD><P>Форма 0409 &lt;&gt; 1</P><P>графа 9 : с.9</P><P>0 &lt;&gt; 99</P></TD></TR>
<TR><TD>
<P><B><I>Сравнение</I></B></P>
<P>графа 3 : с.5</P>
<P>0 &lt;&gt; 191+0+0</P>
<P>г.4 строка 7</P>
<P ALIGN="LEFT">12 &lt;&gt; 37197</P>
</TD></TR>
</TABLE></BODY></HTML>`

func entry(row, column int, expr string) core.Entry {
	return core.Entry{Row: row, Column: column, Value: calc.MustEvaluate(expr)}
}

func cell(paragraphs ...string) string {
	out := "<TD><P><B>Сравнение</B></P>"
	for _, p := range paragraphs {
		out += "<P>" + p + "</P>\n"
	}
	return out + "</TD>"
}

func TestExtract_SampleReport(t *testing.T) {
	x := New(Options{Logger: testutil.NewTestLogger(t)})

	got := x.Extract(sampleReport)

	assert.Equal(t, []core.Entry{
		entry(5, 3, "191"),
		entry(7, 4, "37197"),
	}, got)
	assert.True(t, got[0].Value.IsInteger())
}

func TestExtract_SingleLabelValuePair(t *testing.T) {
	markup := "<TD>Сравнение<P>графа 3 с.5</P><P>0 <> 191+0+0</P></TD>"

	got := Extract(markup)

	require.Len(t, got, 1)
	assert.Equal(t, core.Entry{Row: 5, Column: 3, Value: calc.Int(191)}, got[0])
}

func TestExtract(t *testing.T) {
	tests := []struct {
		name   string
		markup string
		want   []core.Entry
	}{
		{
			name:   "escaped marker",
			markup: cell("графа 1 : с.2", "0 &lt;&gt; 10*5"),
			want:   []core.Entry{entry(2, 1, "50")},
		},
		{
			name:   "spaced marker",
			markup: cell("графа 1 : с.2", "0 &lt; &gt; 8-0"),
			want:   []core.Entry{entry(2, 1, "8")},
		},
		{
			name:   "value wrapped in tags",
			markup: cell("графа 2 : строка 4", "<SPAN>0 &lt;&gt; <FONT>472+2783+0</FONT></SPAN>"),
			want:   []core.Entry{entry(4, 2, "3255")},
		},
		{
			name:   "uppercase labels",
			markup: cell("ГРАФА 6 : СТРОКА 11", "0 <> 7"),
			want:   []core.Entry{entry(11, 6, "7")},
		},
		{
			name:   "labels without spaces",
			markup: cell("г.12с.40", "0 <> 1"),
			want:   []core.Entry{entry(40, 12, "1")},
		},
		{
			name:   "trailing noise is dropped",
			markup: cell("графа 1 : с.1", "0 <> 191 руб."),
			want:   []core.Entry{entry(1, 1, "191")},
		},
		{
			name:   "decimal value",
			markup: cell("графа 1 : с.1", "0 <> 7/2"),
			want:   []core.Entry{entry(1, 1, "3.5")},
		},
		{
			name:   "lowercase markup",
			markup: "<td>сравнение<p class=x>графа 2 с.3</p><p>1 <> 4</p></td>",
			want:   []core.Entry{entry(3, 2, "4")},
		},
		{
			name:   "several pairs in order",
			markup: cell("графа 1 : с.1", "0 <> 1", "графа 2 : с.1", "0 <> 2", "графа 1 : с.1", "0 <> 3"),
			want:   []core.Entry{entry(1, 1, "1"), entry(1, 2, "2"), entry(1, 1, "3")},
		},
		{
			name:   "several sections",
			markup: cell("графа 1 : с.1", "0 <> 1") + "<TD>other</TD>" + cell("графа 2 : с.2", "0 <> 2"),
			want:   []core.Entry{entry(1, 1, "1"), entry(2, 2, "2")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := New(Options{Logger: testutil.NewTestLogger(t)}).Extract(tt.markup)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtract_Misses(t *testing.T) {
	tests := []struct {
		name   string
		markup string
	}{
		{"no comparison cell", "<TD><P>графа 1 с.1</P><P>0 <> 5</P></TD>"},
		{"label without value paragraph", cell("графа 1 : с.1")},
		{"column only", cell("графа 1", "0 <> 5")},
		{"row only", cell("с.1", "0 <> 5")},
		{"no marker", cell("графа 1 : с.1", "0 = 5")},
		{"nothing after marker", cell("графа 1 : с.1", "0 <>")},
		{"only noise after marker", cell("графа 1 : с.1", "0 <> нет данных")},
		{"division by zero", cell("графа 1 : с.1", "0 <> 5/0")},
		{"dangling operator", cell("графа 1 : с.1", "0 <> 5+")},
		{"heading label", cell("<B>графа 1 : с.1</B>", "0 <> 5")},
		{"unclosed cell", "<TD>Сравнение<P>графа 1 с.1</P><P>0 <> 5</P>"},
		{"empty input", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := New(Options{Logger: testutil.NewTestLogger(t)}).Extract(tt.markup)
			assert.Empty(t, got)
		})
	}
}

func TestExtract_FailedValueAdvancesOneParagraph(t *testing.T) {
	// The second label is not a value, so scanning resumes on it and pairs
	// it with the paragraph that follows.
	markup := cell("графа 1 : с.1", "графа 2 : с.2", "0 <> 5")

	got := Extract(markup)

	assert.Equal(t, []core.Entry{entry(2, 2, "5")}, got)
}

func TestExtract_ValueParagraphConsumed(t *testing.T) {
	// A value paragraph that also looks like a label is consumed as a value.
	markup := cell("графа 1 : с.1", "графа 2 : с.2 <> 5", "0 <> 6")

	got := Extract(markup)

	assert.Equal(t, []core.Entry{entry(1, 1, "5")}, got)
}

func TestExtract_CustomOptions(t *testing.T) {
	markup := "<TD>Итог<P><U>Итог</U></P><P>графа 1 с.1</P><P>0 <> 5</P></TD>"

	got := New(Options{SectionLabel: "ИТОГ", HeadingTags: []string{"<U>"}}).Extract(markup)
	assert.Equal(t, []core.Entry{entry(1, 1, "5")}, got)

	assert.Empty(t, Extract(markup), "default label must not match")
}

func TestSections(t *testing.T) {
	sections := New(Options{}).Sections(sampleReport)

	require.Len(t, sections, 1)
	assert.Equal(t, 1, sections[0].Index)
	assert.Equal(t, []string{
		"<B><I>Сравнение</I></B>",
		"графа 3 : с.5",
		"0 <> 191+0+0",
		"г.4 строка 7",
		"12 <> 37197",
	}, sections[0].Paragraphs)
	assert.Contains(t, sections[0].HTML, "0 <> 191+0+0")
}

func TestParseCoordinates(t *testing.T) {
	tests := []struct {
		text   string
		row    int
		column int
		ok     bool
	}{
		{"графа 3 : с.5", 5, 3, true},
		{"г. 4, строка 10", 10, 4, true},
		{"строка 2 графа 1", 2, 1, true},
		{"графа 3", 0, 0, false},
		{"с.5", 0, 0, false},
		{"нет меток", 0, 0, false},
		{"графа 99999999999999999999 с.1", 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			row, column, ok := parseCoordinates(tt.text)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.row, row)
			assert.Equal(t, tt.column, column)
		})
	}
}
