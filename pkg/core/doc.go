// Package core defines the shared language of the cmpfill system.
//
// This package contains:
//   - Domain entities (Entry, ProcessResult, Run)
//   - Service interfaces (Store)
//
// The Golden Rule: pkg/core imports ONLY pkg/calc and stdlib.
// All other packages depend on core, not the reverse.
package core
