package state

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/leapstack-labs/cmpfill/pkg/core"
)

const runColumns = `id, markup_path, tabular_path, output_path, status,
	parsed_count, applied_count, skipped_count, error, started_at, completed_at`

// RecordRun persists a finished run together with its error messages.
// An empty run.ID is filled in with a new UUID.
func (s *SQLiteStore) RecordRun(ctx context.Context, run *core.Run) error {
	if s.db == nil {
		return errNotOpened
	}

	if run.ID == "" {
		run.ID = generateID()
	}

	s.logger.Debug("recording run", slog.String("id", run.ID), slog.String("status", string(run.Status)))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var errMsg *string
	if run.Error != "" {
		errMsg = &run.Error
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (`+runColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.MarkupPath, run.TabularPath, run.OutputPath, string(run.Status),
		run.Parsed, run.Applied, run.Skipped, errMsg,
		run.StartedAt.UTC(), run.CompletedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	for i, msg := range run.Errors {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO run_errors (run_id, seq, message) VALUES (?, ?, ?)`,
			run.ID, i, msg,
		)
		if err != nil {
			return fmt.Errorf("failed to insert run error: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetRun retrieves a run by ID, including its error messages.
func (s *SQLiteStore) GetRun(ctx context.Context, id string) (*core.Run, error) {
	if s.db == nil {
		return nil, errNotOpened
	}

	row := s.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT message FROM run_errors WHERE run_id = ? ORDER BY seq`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get run errors: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var msg string
		if err := rows.Scan(&msg); err != nil {
			return nil, fmt.Errorf("failed to scan run error: %w", err)
		}
		run.Errors = append(run.Errors, msg)
	}

	return run, rows.Err()
}

// ListRuns returns the most recent runs, newest first. A limit of zero or
// less returns every run. Error messages are not loaded; use GetRun.
func (s *SQLiteStore) ListRuns(ctx context.Context, limit int) ([]*core.Run, error) {
	if s.db == nil {
		return nil, errNotOpened
	}
	if limit <= 0 {
		limit = -1
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+runColumns+` FROM runs ORDER BY started_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var runs []*core.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}

	return runs, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (*core.Run, error) {
	run := &core.Run{}
	var status string
	var errMsg sql.NullString

	err := sc.Scan(&run.ID, &run.MarkupPath, &run.TabularPath, &run.OutputPath, &status,
		&run.Parsed, &run.Applied, &run.Skipped, &errMsg, &run.StartedAt, &run.CompletedAt)
	if err != nil {
		return nil, err
	}

	run.Status = core.RunStatus(status)
	if errMsg.Valid {
		run.Error = errMsg.String
	}
	return run, nil
}
