package calc

import (
	"strconv"
	"strings"
	"unicode"
)

// stripSpace removes every Unicode whitespace character.
func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

// isAllowed reports whether ch may appear in an expression.
func isAllowed(ch byte) bool {
	if isDigit(ch) {
		return true
	}
	switch ch {
	case '.', '+', '-', '*', '/', '(', ')':
		return true
	}
	return false
}

// validate checks that s consists only of allowed characters.
func validate(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isAllowed(s[i]) {
			return false
		}
	}
	return true
}

// Tokenize splits an expression into tokens.
// Whitespace is removed first. Runs of digits and '.' become one NUMBER
// token; each operator and parenthesis is its own token. Any other
// character is skipped.
func Tokenize(expr string) ([]Token, error) {
	input := stripSpace(expr)
	tokens := make([]Token, 0, len(input))

	for i := 0; i < len(input); {
		ch := input[i]
		switch {
		case isDigit(ch) || ch == '.':
			start := i
			for i < len(input) && (isDigit(input[i]) || input[i] == '.') {
				i++
			}
			lit := input[start:i]
			v, err := strconv.ParseFloat(lit, 64)
			if err != nil {
				return nil, &InvalidNumberError{Literal: lit, Pos: start}
			}
			tokens = append(tokens, Token{
				Type:    NUMBER,
				Literal: lit,
				Value:   v,
				Decimal: strings.Contains(lit, "."),
				Pos:     start,
			})
		case ch == '+' || ch == '-' || ch == '*' || ch == '/':
			tokens = append(tokens, Token{Type: OPERATOR, Literal: string(ch), Pos: i})
			i++
		case ch == '(':
			tokens = append(tokens, Token{Type: LPAREN, Literal: "(", Pos: i})
			i++
		case ch == ')':
			tokens = append(tokens, Token{Type: RPAREN, Literal: ")", Pos: i})
			i++
		default:
			i++
		}
	}

	return tokens, nil
}
