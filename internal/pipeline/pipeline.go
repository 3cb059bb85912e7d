// Package pipeline runs one report/tabular-file merge end to end.
//
// A run reads and decodes the report, extracts its comparison entries,
// loads the tabular file, applies the entries and writes the result next to
// the input (or to an explicit path). Entry-level problems are collected in
// the result; only I/O failures abort a run.
package pipeline

import (
	"context"
	"log/slog"
	"os"
	"time"
	"unicode/utf8"

	"github.com/leapstack-labs/cmpfill/internal/extract"
	"github.com/leapstack-labs/cmpfill/internal/records"
	"github.com/leapstack-labs/cmpfill/pkg/core"
	"golang.org/x/text/encoding"
)

// Recorder persists finished runs. *state.SQLiteStore satisfies it.
type Recorder interface {
	RecordRun(ctx context.Context, run *core.Run) error
}

// Config holds pipeline configuration. The zero value is usable.
type Config struct {
	// Encoding is the report's encoding label, or "auto". Defaults to
	// windows-1251.
	Encoding string
	// Suffix is used when deriving output paths (default "_result").
	Suffix string
	// LineEnding selects the output terminator (default LF).
	LineEnding records.LineEnding
	// PadValue fills fields added by column growth (default "0").
	PadValue string
	// Extract configures the extractor.
	Extract extract.Options
	// XLSXPath, when set, also exports the merged table as a workbook.
	XLSXPath string
	// Recorder receives every finished run (optional).
	Recorder Recorder
	// Logger is the structured logger (optional, uses discard if nil)
	Logger *slog.Logger
}

// Pipeline sequences extraction and merging.
type Pipeline struct {
	encoding  encoding.Encoding
	suffix    string
	eol       records.LineEnding
	pad       string
	xlsxPath  string
	extractor *extract.Extractor
	recorder  Recorder
	logger    *slog.Logger
}

// New creates a pipeline. It fails only on an unknown encoding label.
func New(cfg Config) (*Pipeline, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	enc, err := ResolveEncoding(cfg.Encoding)
	if err != nil {
		return nil, err
	}

	eol := cfg.LineEnding
	if eol == "" {
		eol = records.LF
	}

	opts := cfg.Extract
	if opts.Logger == nil {
		opts.Logger = logger
	}

	return &Pipeline{
		encoding:  enc,
		suffix:    cfg.Suffix,
		eol:       eol,
		pad:       cfg.PadValue,
		xlsxPath:  cfg.XLSXPath,
		extractor: extract.New(opts),
		recorder:  cfg.Recorder,
		logger:    logger,
	}, nil
}

// Extractor returns the extractor the pipeline uses.
func (p *Pipeline) Extractor() *extract.Extractor {
	return p.extractor
}

// ReadMarkup reads and decodes a report file.
func (p *Pipeline) ReadMarkup(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", &IOError{Op: "read", Path: path, Err: err}
	}

	text, err := decodeMarkup(data, p.encoding)
	if err != nil {
		return "", &IOError{Op: "decode", Path: path, Err: err}
	}
	return text, nil
}

// ExtractFile reads a report and returns its entries.
func (p *Pipeline) ExtractFile(path string) ([]core.Entry, error) {
	markup, err := p.ReadMarkup(path)
	if err != nil {
		return nil, err
	}
	return p.extractor.Extract(markup), nil
}

// Process merges the entries of the report at markupPath into the tabular
// file at tabularPath and writes the result to outputPath. An empty
// outputPath is derived with ResultPath. ctx only bounds the history write.
func (p *Pipeline) Process(ctx context.Context, markupPath, tabularPath, outputPath string) (*core.ProcessResult, error) {
	run := &core.Run{
		MarkupPath:  markupPath,
		TabularPath: tabularPath,
		StartedAt:   time.Now(),
	}

	result, err := p.process(markupPath, tabularPath, outputPath)
	run.CompletedAt = time.Now()
	if err != nil {
		run.Status = core.RunStatusFailed
		run.Error = err.Error()
		p.logger.Warn("run failed", "markup", markupPath, "tabular", tabularPath, "error", err)
	} else {
		run.Status = core.RunStatusCompleted
		run.OutputPath = result.OutputPath
		run.Parsed = result.ParsedCount
		run.Applied = result.AppliedCount
		run.Skipped = result.SkippedCount
		run.Errors = result.Errors
		p.logger.Info("run completed",
			"output", result.OutputPath,
			"parsed", result.ParsedCount,
			"applied", result.AppliedCount,
			"skipped", result.SkippedCount,
			"duration", run.Duration())
	}

	p.record(ctx, run)
	return result, err
}

func (p *Pipeline) process(markupPath, tabularPath, outputPath string) (*core.ProcessResult, error) {
	entries, err := p.ExtractFile(markupPath)
	if err != nil {
		return nil, err
	}
	p.logger.Debug("extracted entries", "path", markupPath, "count", len(entries))

	data, err := os.ReadFile(tabularPath)
	if err != nil {
		return nil, &IOError{Op: "read", Path: tabularPath, Err: err}
	}
	if !utf8.Valid(data) {
		return nil, &IOError{Op: "decode", Path: tabularPath, Err: ErrInvalidUTF8}
	}

	table := records.Load(string(data))
	stats := table.Apply(entries, p.pad)
	for _, msg := range stats.Errors {
		p.logger.Debug("entry skipped", "reason", msg)
	}

	if outputPath == "" {
		outputPath = ResultPath(tabularPath, p.suffix)
	}
	if err := os.WriteFile(outputPath, []byte(table.Serialize(p.eol)), 0644); err != nil {
		return nil, &IOError{Op: "write", Path: outputPath, Err: err}
	}

	if p.xlsxPath != "" {
		if err := table.WriteXLSX(p.xlsxPath); err != nil {
			return nil, &IOError{Op: "write", Path: p.xlsxPath, Err: err}
		}
	}

	errs := stats.Errors
	if errs == nil {
		errs = []string{}
	}

	return &core.ProcessResult{
		ParsedCount:  len(entries),
		AppliedCount: stats.Applied,
		SkippedCount: stats.Skipped,
		OutputPath:   outputPath,
		Errors:       errs,
	}, nil
}

// record stores the run. History is best effort and never fails a run.
func (p *Pipeline) record(ctx context.Context, run *core.Run) {
	if p.recorder == nil {
		return
	}
	if err := p.recorder.RecordRun(ctx, run); err != nil {
		p.logger.Warn("failed to record run", "error", err)
	}
}
