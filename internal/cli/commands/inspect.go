package commands

import (
	"fmt"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/leapstack-labs/cmpfill/internal/cli/output"
	"github.com/spf13/cobra"
)

// SectionInfo is the JSON view of one comparison cell.
type SectionInfo struct {
	Index      int      `json:"index"`
	Markdown   string   `json:"markdown"`
	Paragraphs []string `json:"paragraphs"`
}

// NewInspectCommand creates the inspect command.
func NewInspectCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect <report.htm>",
		Short: "Show the comparison cells of a report",
		Long: `Print every table cell that carries the section label, converted to
markdown. Useful to see why a label/value pair was not extracted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd, args[0])
		},
	}

	return cmd
}

func runInspect(cmd *cobra.Command, markupPath string) error {
	cc := NewCommandContext(cmd)

	p, cleanup, err := cc.NewPipeline("")
	if err != nil {
		return err
	}
	defer cleanup()

	markup, err := p.ReadMarkup(markupPath)
	if err != nil {
		return err
	}

	sections := p.Extractor().Sections(markup)
	infos := make([]SectionInfo, 0, len(sections))
	for _, s := range sections {
		md, err := htmltomarkdown.ConvertString(s.HTML)
		if err != nil {
			return fmt.Errorf("failed to convert section %d: %w", s.Index, err)
		}
		paragraphs := s.Paragraphs
		if paragraphs == nil {
			paragraphs = []string{}
		}
		infos = append(infos, SectionInfo{
			Index:      s.Index,
			Markdown:   strings.TrimSpace(md),
			Paragraphs: paragraphs,
		})
	}

	r := cc.Renderer
	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(infos)
	}

	if len(infos) == 0 {
		r.Muted(fmt.Sprintf("No %q sections found", cc.Cfg.SectionLabel))
		return nil
	}

	for i, info := range infos {
		if i > 0 {
			r.Println("")
		}
		r.Header(2, fmt.Sprintf("Section %d (cell %d, %d paragraphs)", i+1, info.Index, len(info.Paragraphs)))
		r.Println(info.Markdown)
	}
	return nil
}
