package core

// ProcessResult summarizes one pipeline run.
type ProcessResult struct {
	// ParsedCount is the number of entries the extractor produced.
	ParsedCount int `json:"parsed_count"`
	// AppliedCount is the number of entries written into records.
	AppliedCount int `json:"applied_count"`
	// SkippedCount is the number of entries rejected by the merger.
	SkippedCount int `json:"skipped_count"`
	// OutputPath is where the updated tabular file was written.
	OutputPath string `json:"output_path"`
	// Errors holds one human-readable message per skipped entry, in order.
	Errors []string `json:"errors"`
}

// HasErrors reports whether any entry was skipped with an error.
func (r *ProcessResult) HasErrors() bool {
	return len(r.Errors) > 0
}
