package calc

import (
	"errors"
	"fmt"
)

// ErrInvalidExpression matches every error returned by Evaluate.
// Use errors.Is to branch on it and errors.As with *InvalidExpressionError
// to get at the original input.
var ErrInvalidExpression = errors.New("invalid expression")

// Causes attached to an InvalidExpressionError.
var (
	ErrEmptyExpression   = errors.New("empty expression")
	ErrInvalidCharacters = errors.New("invalid characters")
	ErrUnexpectedEnd     = errors.New("unexpected end of expression")
	ErrDivisionByZero    = errors.New("division by zero")
	ErrNonFinite         = errors.New("result is not a finite number")
)

// InvalidExpressionError is the single error kind returned by Evaluate.
type InvalidExpressionError struct {
	Input string // expression as passed by the caller
	Cause error
}

func (e *InvalidExpressionError) Error() string {
	return fmt.Sprintf("invalid expression %q: %v", e.Input, e.Cause)
}

// Unwrap returns the underlying cause.
func (e *InvalidExpressionError) Unwrap() error {
	return e.Cause
}

// Is makes errors.Is(err, ErrInvalidExpression) hold for any InvalidExpressionError.
func (e *InvalidExpressionError) Is(target error) bool {
	return target == ErrInvalidExpression
}

// UnexpectedTokenError reports a token that cannot start a primary term.
type UnexpectedTokenError struct {
	Token Token
}

func (e *UnexpectedTokenError) Error() string {
	return fmt.Sprintf("unexpected token %q at offset %d", e.Token.Literal, e.Token.Pos)
}

// InvalidNumberError reports a digit/dot run that is not a valid number, such as "1.2.3".
type InvalidNumberError struct {
	Literal string
	Pos     int
}

func (e *InvalidNumberError) Error() string {
	return fmt.Sprintf("invalid number literal %q at offset %d", e.Literal, e.Pos)
}
