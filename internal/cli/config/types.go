// Package config provides configuration management for the cmpfill CLI.
package config

import (
	"github.com/leapstack-labs/cmpfill/internal/extract"
	"github.com/leapstack-labs/cmpfill/internal/pipeline"
	"github.com/leapstack-labs/cmpfill/internal/records"
	"github.com/leapstack-labs/cmpfill/internal/state"
)

// Config holds all CLI configuration options.
type Config struct {
	MarkupEncoding string        `koanf:"markup_encoding" yaml:"markup_encoding" validate:"required,encoding"`
	ResultSuffix   string        `koanf:"result_suffix" yaml:"result_suffix" validate:"required,excludesall=/\\"`
	LineEnding     string        `koanf:"line_ending" yaml:"line_ending" validate:"oneof=lf crlf"`
	PadValue       string        `koanf:"pad_value" yaml:"pad_value" validate:"required,field"`
	SectionLabel   string        `koanf:"section_label" yaml:"section_label" validate:"required"`
	HeadingTags    []string      `koanf:"heading_tags" yaml:"heading_tags" validate:"required,min=1,dive,alphanum"`
	OutputFormat   string        `koanf:"output" yaml:"output" validate:"oneof=auto text markdown json"`
	Verbose        bool          `koanf:"verbose" yaml:"verbose"`
	LogLevel       string        `koanf:"log_level" yaml:"log_level" validate:"oneof=debug info warn error"`
	XLSX           string        `koanf:"xlsx" yaml:"xlsx,omitempty"`
	History        HistoryConfig `koanf:"history" yaml:"history"`
}

// HistoryConfig controls run history recording.
type HistoryConfig struct {
	Enabled bool   `koanf:"enabled" yaml:"enabled"`
	Path    string `koanf:"path" yaml:"path" validate:"required_if=Enabled true"`
}

// Default configuration values.
const (
	DefaultConfigFile = "cmpfill.yaml"
	DefaultOutput     = "auto" // Auto-detect: TTY=text, non-TTY=markdown
	DefaultLogLevel   = "warn"
	DefaultLineEnding = string(records.LF)
)

// EnvPrefix is the prefix of environment variables read by the loader.
const EnvPrefix = "CMPFILL_"

// DefaultConfig returns the configuration used when no file, env var or
// flag overrides a value.
func DefaultConfig() *Config {
	return &Config{
		MarkupEncoding: pipeline.DefaultEncoding,
		ResultSuffix:   pipeline.DefaultResultSuffix,
		LineEnding:     DefaultLineEnding,
		PadValue:       records.DefaultPadValue,
		SectionLabel:   extract.DefaultSectionLabel,
		HeadingTags:    append([]string(nil), extract.DefaultHeadingTags...),
		OutputFormat:   DefaultOutput,
		LogLevel:       DefaultLogLevel,
		History: HistoryConfig{
			Path: state.DefaultPath,
		},
	}
}

// PipelineConfig maps the CLI configuration onto pipeline settings. The
// caller supplies the recorder and logger.
func (c *Config) PipelineConfig() pipeline.Config {
	eol, _ := records.ParseLineEnding(c.LineEnding)
	return pipeline.Config{
		Encoding:   c.MarkupEncoding,
		Suffix:     c.ResultSuffix,
		LineEnding: eol,
		PadValue:   c.PadValue,
		XLSXPath:   c.XLSX,
		Extract: extract.Options{
			SectionLabel: c.SectionLabel,
			HeadingTags:  c.HeadingTags,
		},
	}
}
