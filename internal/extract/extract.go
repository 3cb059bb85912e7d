// Package extract pulls comparison entries out of HTM reports.
//
// A report is an HTML-like document whose table cells contain "Сравнение"
// sections. Each section is a run of paragraphs where a label paragraph
// ("графа 3 : с.5") is followed by a value paragraph ("0 <> 191+0+0").
// The right-hand side of the "<>" marker is evaluated and becomes the value
// for that row and column.
//
// Reports are noisy, so extraction never fails: anything that cannot be
// read as a complete label/value pair is skipped.
package extract

import (
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/leapstack-labs/cmpfill/pkg/calc"
	"github.com/leapstack-labs/cmpfill/pkg/core"
)

// Defaults used when Options leaves a field empty.
const DefaultSectionLabel = "сравнение"

// DefaultHeadingTags are the tags that mark a paragraph as a heading.
var DefaultHeadingTags = []string{"b", "i"}

var (
	cellRe      = regexp.MustCompile(`(?is)<td>(.*?)</td>`)
	paragraphRe = regexp.MustCompile(`(?is)<p[^>]*>(.*?)</p>`)

	// Matched against lowercased paragraph text.
	columnRe = regexp.MustCompile(`(?:графа[\s\p{Zs}]*|г\.[\s\p{Zs}]*)(\d+)`)
	rowRe    = regexp.MustCompile(`(?:с\.[\s\p{Zs}]*|строка[\s\p{Zs}]*)(\d+)`)

	// A tag must start with a non-space character so that "< >" survives
	// as a marker.
	tagRe    = regexp.MustCompile(`<[^>\s][^>]*>`)
	markerRe = regexp.MustCompile(`<\s*>`)
	cleanRe  = regexp.MustCompile(`[^0-9+\-*/().\s]`)

	entityReplacer = strings.NewReplacer("&lt;", "<", "&gt;", ">")
)

// Options configures an Extractor.
type Options struct {
	// SectionLabel selects the cells to scan, matched case-insensitively.
	SectionLabel string
	// HeadingTags lists tag names ("b", "i") that mark heading paragraphs.
	HeadingTags []string
	// Logger receives debug output about skipped paragraphs (optional).
	Logger *slog.Logger
}

// Extractor finds entries in report markup. It holds no per-call state and
// is safe for concurrent use.
type Extractor struct {
	label    string
	headings []string
	eval     func(string) (calc.Number, error)
	logger   *slog.Logger
}

// New creates an Extractor.
func New(opts Options) *Extractor {
	label := opts.SectionLabel
	if label == "" {
		label = DefaultSectionLabel
	}

	tags := opts.HeadingTags
	if len(tags) == 0 {
		tags = DefaultHeadingTags
	}
	headings := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.Trim(strings.TrimSpace(strings.ToLower(tag)), "<>")
		if tag != "" {
			headings = append(headings, "<"+tag+">")
		}
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Extractor{
		label:    strings.ToLower(label),
		headings: headings,
		eval:     calc.Evaluate,
		logger:   logger,
	}
}

// Extract returns the entries found in markup using default options.
func Extract(markup string) []core.Entry {
	return New(Options{}).Extract(markup)
}

// Extract returns every entry found in markup, in document order.
func (x *Extractor) Extract(markup string) []core.Entry {
	var entries []core.Entry

	for _, section := range x.Sections(markup) {
		entries = append(entries, x.scan(section)...)
	}

	x.logger.Debug("extraction finished", slog.Int("entries", len(entries)))
	return entries
}

// scan walks a section's paragraphs looking for label/value pairs.
func (x *Extractor) scan(section Section) []core.Entry {
	var entries []core.Entry
	paragraphs := section.Paragraphs

	i := 0
	for i < len(paragraphs) {
		text := paragraphs[i]

		if x.isHeading(text) {
			i++
			continue
		}

		row, column, ok := parseCoordinates(text)
		if !ok {
			i++
			continue
		}

		if i+1 >= len(paragraphs) {
			x.logger.Debug("label without value paragraph",
				slog.Int("section", section.Index), slog.Int("row", row), slog.Int("column", column))
			i++
			continue
		}

		value, ok := x.parseValue(paragraphs[i+1])
		if !ok {
			x.logger.Debug("value paragraph did not evaluate",
				slog.Int("section", section.Index),
				slog.Int("row", row), slog.Int("column", column),
				slog.String("text", paragraphs[i+1]))
			i++
			continue
		}

		entries = append(entries, core.Entry{Row: row, Column: column, Value: value})
		i += 2
	}

	return entries
}

func (x *Extractor) isHeading(text string) bool {
	lower := strings.ToLower(text)
	for _, tag := range x.headings {
		if strings.Contains(lower, tag) {
			return true
		}
	}
	return false
}

// parseCoordinates finds the column ("графа N", "г.N") and row ("с.N",
// "строка N") labels in a paragraph. Both must be present.
func parseCoordinates(text string) (row, column int, ok bool) {
	lower := strings.ToLower(text)

	cm := columnRe.FindStringSubmatch(lower)
	rm := rowRe.FindStringSubmatch(lower)
	if cm == nil || rm == nil {
		return 0, 0, false
	}

	column, err := strconv.Atoi(cm[1])
	if err != nil {
		return 0, 0, false
	}
	row, err = strconv.Atoi(rm[1])
	if err != nil {
		return 0, 0, false
	}
	return row, column, true
}

// parseValue evaluates the formula to the right of the "<>" marker.
func (x *Extractor) parseValue(text string) (calc.Number, bool) {
	text = tagRe.ReplaceAllString(text, "")

	loc := markerRe.FindStringIndex(text)
	if loc == nil {
		return calc.Number{}, false
	}

	formula := strings.TrimSpace(text[loc[1]:])
	formula = strings.TrimSpace(cleanRe.ReplaceAllString(formula, ""))
	if formula == "" {
		return calc.Number{}, false
	}

	value, err := x.eval(formula)
	if err != nil {
		return calc.Number{}, false
	}
	return value, true
}
