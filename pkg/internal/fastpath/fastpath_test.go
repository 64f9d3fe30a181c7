package fastpath

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deepankarm/jsonrepair/pkg/jsonvalue"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"object keeps order", `{"b": 1, "a": [true, null]}`, `{"b":1,"a":[true,null]}`},
		{"nested", `{"a": {"b": {"c": []}}}`, `{"a":{"b":{"c":[]}}}`},
		{"empty array", `[]`, `[]`},
		{"empty object", ` {} `, `{}`},
		{"escapes", `{"k": "a\"b\\né"}`, `{"k":"a\"b\\né"}`},
		{"escaped key", `{"a\"b": 1}`, `{"a\"b":1}`},
		{"escaped backslash in key", `{"a\\nb": 1}`, `{"a\\nb":1}`},
		{"escaped backslash before u", `{"\\u0041": 1}`, `{"\\u0041":1}`},
		{"escaped backslash before slash", `{"k\\/": 1}`, `{"k\\/":1}`},
		{"newline escape in key", `{"a\nb": 1}`, `{"a\nb":1}`},
		{"unicode escape in key", `{"\u0041": 1}`, `{"A":1}`},
		{"escaped slash in key", `{"k\/": 1}`, `{"k/":1}`},
		{"integral float", `[1.0, 2.50]`, `[1,2.5]`},
		{"big integer", `12345678901234567890123`, `12345678901234567890123`},
		{"string", `"hi"`, `"hi"`},
		{"duplicate key keeps first position", `{"a": 1, "b": 2, "a": 3}`, `{"a":3,"b":2}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, ok := Decode([]byte(tt.input))
			require.True(t, ok)
			assert.Equal(t, tt.expected, string(jsonvalue.Encode(v)))
		})
	}
}

func TestDecodeRejects(t *testing.T) {
	for _, input := range []string{
		``,
		`{"a": 1`,
		`{'a': 1}`,
		`[1, 2,]`,
		`{"a": 1} {"b": 2}`,
		`1e400`,
		"{\"key_1\n\": \"value\"}",
		"[\"a\tb\"]",
		"\"\x01\"",
	} {
		t.Run(input, func(t *testing.T) {
			_, ok := Decode([]byte(input))
			assert.False(t, ok)
		})
	}
}

func TestValid(t *testing.T) {
	assert.True(t, Valid([]byte(`{"a": [1, 2]}`)))
	assert.False(t, Valid([]byte(`{"a": [1, 2}`)))
	assert.True(t, Valid([]byte(`{"a\"\\": "\t"}`)))
	assert.False(t, Valid([]byte("{\"a\": \"\t\"}")))
}
