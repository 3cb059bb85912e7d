package calc

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumber_String(t *testing.T) {
	tests := []struct {
		name string
		n    Number
		want string
	}{
		{"integer", Int(191), "191"},
		{"negative integer", Int(-42), "-42"},
		{"zero", Int(0), "0"},
		{"negative zero", Float(math.Copysign(0, -1)), "0"},
		{"integral float", Float(25.0), "25"},
		{"decimal", Float(3.5), "3.5"},
		{"small decimal", Float(0.125), "0.125"},
		{"negative decimal", Float(-2.75), "-2.75"},
		{"large integer", Float(1e20), "100000000000000000000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.n.String())
		})
	}
}

func TestNumber_EvaluatedTyping(t *testing.T) {
	n := MustEvaluate("100/4")
	assert.True(t, n.IsInteger())
	assert.Equal(t, "25", n.String())
	assert.Equal(t, Int(25), n)

	n = MustEvaluate("0.1+0.2")
	assert.False(t, n.IsInteger())
	assert.Equal(t, "0.30000000000000004", n.String())
}

func TestNumber_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(struct {
		A Number `json:"a"`
		B Number `json:"b"`
	}{Int(7), Float(1.5)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":7,"b":1.5}`, string(data))
}
