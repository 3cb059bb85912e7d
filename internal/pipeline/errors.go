package pipeline

import (
	"errors"
	"fmt"
)

// Sentinel errors for pipeline failures.
var (
	// ErrIO matches every *IOError via errors.Is.
	ErrIO = errors.New("i/o failure")
	// ErrInvalidUTF8 is the cause when a tabular file is not valid UTF-8.
	ErrInvalidUTF8 = errors.New("invalid UTF-8")
)

// IOError reports a failure to read, decode or write one of the files a run
// touches. Op is one of "read", "decode" or "write".
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("failed to %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrIO) match any IOError.
func (e *IOError) Is(target error) bool {
	return target == ErrIO
}
