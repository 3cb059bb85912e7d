// Package calc evaluates restricted arithmetic expressions such as "191+0+0".
//
// Only decimal literals, the four operators + - * /, unary signs and
// parentheses are accepted. Evaluation happens in float64; the result is
// reported as an integer when it has no fractional part, so "100/4" yields
// the integer 25.
package calc

import "math"

// Evaluate computes the value of expr.
//
// Every failure is returned as an *InvalidExpressionError carrying expr and
// the underlying cause (ErrDivisionByZero, ErrUnexpectedEnd, ...).
// Tokens left over after a complete expression are ignored.
func Evaluate(expr string) (Number, error) {
	v, err := evaluate(expr)
	if err != nil {
		return Number{}, &InvalidExpressionError{Input: expr, Cause: err}
	}
	return Float(v), nil
}

// MustEvaluate is like Evaluate but panics on error. Intended for tests and
// constant tables.
func MustEvaluate(expr string) Number {
	n, err := Evaluate(expr)
	if err != nil {
		panic(err)
	}
	return n
}

func evaluate(expr string) (float64, error) {
	input := stripSpace(expr)
	if input == "" {
		return 0, ErrEmptyExpression
	}
	if !validate(input) {
		return 0, ErrInvalidCharacters
	}

	tokens, err := Tokenize(input)
	if err != nil {
		return 0, err
	}

	p := &parser{tokens: tokens}
	v, err := p.parseAdditive()
	if err != nil {
		return 0, err
	}

	if math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, ErrNonFinite
	}
	return v, nil
}
