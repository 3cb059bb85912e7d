// Package state persists the history of pipeline runs in SQLite.
package state

import (
	"errors"

	"github.com/leapstack-labs/cmpfill/pkg/core"
)

// DefaultPath is where the history database lives unless configured.
const DefaultPath = ".cmpfill/history.db"

// ErrRunNotFound is returned by GetRun for an unknown ID.
var ErrRunNotFound = errors.New("run not found")

// Ensure SQLiteStore implements the Store interface
var _ core.Store = (*SQLiteStore)(nil)
