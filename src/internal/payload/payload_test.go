// FILE: src/internal/payload/payload_test.go
package payload

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromAny(t *testing.T) {
	testCases := []struct {
		name     string
		input    any
		expected Kind
	}{
		{"String", "hello", KindScalar},
		{"Float", 3.14, KindScalar},
		{"Bool", true, KindScalar},
		{"Nil", nil, KindScalar},
		{"Mapping", map[string]any{"rc": float64(0)}, KindMapping},
		{"Sequence", []any{"a", "b"}, KindSequence},
		{"NestedMixed", map[string]any{"results": []any{map[string]any{"rc": float64(0)}}}, KindMapping},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			v := FromAny(tc.input)
			assert.Equal(t, tc.expected, v.Kind())
		})
	}
}

func TestFromAny_RoundTrip(t *testing.T) {
	raw := `{"changed": true, "rc": 0, "stdout": "l1\nl2", "results": [{"item": "a"}, {"item": "b"}]}`

	var decoded any
	require.NoError(t, json.Unmarshal([]byte(raw), &decoded))

	v := FromAny(decoded)
	require.Equal(t, KindMapping, v.Kind())

	m := v.MapValue()
	assert.Equal(t, "l1\nl2", m["stdout"].ScalarText())
	assert.Equal(t, KindSequence, m["results"].Kind())
	assert.Len(t, m["results"].SeqValue(), 2)

	// Converting back must preserve structure
	back, err := json.Marshal(v.ToAny())
	require.NoError(t, err)
	var redecoded any
	require.NoError(t, json.Unmarshal(back, &redecoded))
	assert.Equal(t, decoded, redecoded)
}

func TestScalarText(t *testing.T) {
	testCases := []struct {
		name     string
		value    Value
		expected string
	}{
		{"String", String("abc"), "abc"},
		{"Int", Int(42), "42"},
		{"FloatWhole", Number(0), "0"},
		{"FloatFraction", Number(1.5), "1.5"},
		{"BoolTrue", Bool(true), "true"},
		{"Null", Null(), "null"},
		{"ZeroValue", Value{}, "null"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.value.ScalarText())
		})
	}
}

func TestKeys(t *testing.T) {
	v := Map(map[string]Value{
		"stdout": String("x"),
		"rc":     Int(0),
		"cmd":    String("ls"),
	})
	assert.Equal(t, []string{"cmd", "rc", "stdout"}, v.Keys())
	assert.Nil(t, String("scalar").Keys())
}
