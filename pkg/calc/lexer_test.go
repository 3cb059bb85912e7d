package calc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenize(t *testing.T) {
	tokens, err := Tokenize("12 + 3.5*(4-1)")
	require.NoError(t, err)

	want := []struct {
		typ     TokenType
		literal string
		decimal bool
	}{
		{NUMBER, "12", false},
		{OPERATOR, "+", false},
		{NUMBER, "3.5", true},
		{OPERATOR, "*", false},
		{LPAREN, "(", false},
		{NUMBER, "4", false},
		{OPERATOR, "-", false},
		{NUMBER, "1", false},
		{RPAREN, ")", false},
	}

	require.Len(t, tokens, len(want))
	for i, w := range want {
		assert.Equal(t, w.typ, tokens[i].Type, "token %d type", i)
		assert.Equal(t, w.literal, tokens[i].Literal, "token %d literal", i)
		assert.Equal(t, w.decimal, tokens[i].Decimal, "token %d decimal", i)
	}
	assert.Equal(t, 3.5, tokens[2].Value)
}

func TestTokenize_SkipsUnknownCharacters(t *testing.T) {
	tokens, err := Tokenize("1a+b2")
	require.NoError(t, err)
	require.Len(t, tokens, 3)
	assert.Equal(t, "1", tokens[0].Literal)
	assert.Equal(t, "+", tokens[1].Literal)
	assert.Equal(t, "2", tokens[2].Literal)
}

func TestTokenType_String(t *testing.T) {
	assert.Equal(t, "NUMBER", NUMBER.String())
	assert.Equal(t, "RPAREN", RPAREN.String())
	assert.Equal(t, "TokenType(42)", TokenType(42).String())
}
