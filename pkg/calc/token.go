package calc

import "fmt"

// TokenType represents the kind of a lexical token in an arithmetic expression.
//
//nolint:revive // calc.TokenType reads better than calc.Type at call sites
type TokenType int

const (
	// NUMBER is a numeric literal such as 191 or 0.5.
	NUMBER TokenType = iota
	// OPERATOR is one of + - * /.
	OPERATOR
	// LPAREN is (.
	LPAREN
	// RPAREN is ).
	RPAREN
)

var tokenNames = map[TokenType]string{
	NUMBER:   "NUMBER",
	OPERATOR: "OPERATOR",
	LPAREN:   "LPAREN",
	RPAREN:   "RPAREN",
}

// String returns a human-readable representation of the token type.
func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TokenType(%d)", int(t))
}

// Token is a single lexical unit of an expression.
type Token struct {
	Type    TokenType
	Literal string  // source text of the token
	Value   float64 // parsed value, NUMBER only
	Decimal bool    // literal contained '.', NUMBER only
	Pos     int     // byte offset in the whitespace-stripped input
}

// String formats the token for diagnostics.
func (t Token) String() string {
	return fmt.Sprintf("%s(%s)", t.Type, t.Literal)
}

// isOperator reports whether the token is the given operator.
func (t Token) isOperator(op byte) bool {
	return t.Type == OPERATOR && len(t.Literal) == 1 && t.Literal[0] == op
}
