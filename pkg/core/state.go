package core

import (
	"context"
	"time"
)

// RunStatus represents the outcome of a recorded pipeline run.
type RunStatus string

// Run status values.
const (
	RunStatusCompleted RunStatus = "completed"
	RunStatusFailed    RunStatus = "failed"
)

// Run is a persisted record of one pipeline invocation.
type Run struct {
	ID          string    `json:"id"`
	MarkupPath  string    `json:"markup_path"`
	TabularPath string    `json:"tabular_path"`
	OutputPath  string    `json:"output_path"`
	Status      RunStatus `json:"status"`
	Parsed      int       `json:"parsed_count"`
	Applied     int       `json:"applied_count"`
	Skipped     int       `json:"skipped_count"`
	Error       string    `json:"error,omitempty"`
	Errors      []string  `json:"errors,omitempty"`
	StartedAt   time.Time `json:"started_at"`
	CompletedAt time.Time `json:"completed_at"`
}

// Duration returns how long the run took.
func (r *Run) Duration() time.Duration {
	return r.CompletedAt.Sub(r.StartedAt)
}

// Store defines the interface for run history persistence.
type Store interface {
	Close() error

	// RecordRun persists a finished run. An empty ID is filled in.
	RecordRun(ctx context.Context, run *Run) error
	// GetRun retrieves a run, including its error messages.
	GetRun(ctx context.Context, id string) (*Run, error)
	// ListRuns returns the most recent runs, newest first.
	ListRuns(ctx context.Context, limit int) ([]*Run, error)
}
