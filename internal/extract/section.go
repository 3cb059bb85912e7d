package extract

import "strings"

// Section is one comparison cell of a report.
type Section struct {
	// Index is the position of the cell among all table cells of the report.
	Index int
	// HTML is the raw cell content with &lt; and &gt; decoded.
	HTML string
	// Paragraphs holds the trimmed inner markup of each paragraph.
	Paragraphs []string
}

// Sections returns the cells that carry the section label, in document order.
func (x *Extractor) Sections(markup string) []Section {
	markup = entityReplacer.Replace(markup)

	var sections []Section
	for i, m := range cellRe.FindAllStringSubmatch(markup, -1) {
		cell := m[1]
		if !strings.Contains(strings.ToLower(cell), x.label) {
			continue
		}

		var paragraphs []string
		for _, pm := range paragraphRe.FindAllStringSubmatch(cell, -1) {
			paragraphs = append(paragraphs, strings.TrimSpace(pm[1]))
		}

		sections = append(sections, Section{
			Index:      i,
			HTML:       cell,
			Paragraphs: paragraphs,
		})
	}
	return sections
}
