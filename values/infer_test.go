package values

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInferScalars(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Value
	}{
		{"integer", "42", Number(42)},
		{"negative", "-3", Number(-3)},
		{"explicit plus", "+7", Number(7)},
		{"decimal", "3.14", Number(3.14)},
		{"leading dot", ".5", Number(0.5)},
		{"signed leading dot", "-.25", Number(-0.25)},
		{"scientific notation", "3.14e-2", Number(0.0314)},
		{"upper exponent", "1E+3", Number(1000)},
		{"surrounding whitespace", "  42\t\n", Number(42)},
		{"true", "true", Boolean(true)},
		{"TRUE", "TRUE", Boolean(true)},
		{"False", "False", Boolean(false)},
		{"padded false", " false ", Boolean(false)},
		{"none", "none", None()},
		{"None", "None", None()},
		{"NONE", "NONE", None()},
		{"plain text", "hello world", String("hello world")},
		{"text is trimmed", "  Request(Weather)  ", String("Request(Weather)")},
		{"empty", "", String("")},
		{"whitespace only", "   ", String("")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Infer(tt.input)
			assert.Equal(t, tt.expected.Kind(), got.Kind())
			assert.True(t, tt.expected.Equal(got), "expected %v, got %v", tt.expected, got)
		})
	}
}

func TestInferRejectsMalformedNumbers(t *testing.T) {
	inputs := []string{
		"1.",
		"1.2.3",
		"+-1",
		"--1",
		"e5",
		"1e",
		"1e+",
		".",
		"-",
		"1 2",
		"0x10",
		"1_000",
		"NaN",
		"nan",
		"Infinity",
		"-Infinity",
		"+Inf",
		"1e400",
		"-1e400",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			got := Infer(input)
			require.Equal(t, KindString, got.Kind())
			assert.Equal(t, input, got.String())
		})
	}
}

func TestInferArrays(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []float64
	}{
		{"mixed literals", "[1.0, 2.5, -3]", []float64{1.0, 2.5, -3.0}},
		{"single element", "[7]", []float64{7}},
		{"no spaces", "[1,2,3]", []float64{1, 2, 3}},
		{"wide spacing", "[1,   2,\t3]", []float64{1, 2, 3}},
		{"scientific", "[1e3, -2.5E-1]", []float64{1000, -0.25}},
		{"trimmed", "  [4, 5]  ", []float64{4, 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Infer(tt.input)
			arr, ok := got.(ArrayValue)
			require.True(t, ok, "expected array, got %T (%v)", got, got)
			assert.Equal(t, tt.expected, arr.Floats())
		})
	}
}

func TestInferSets(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected SetValue
	}{
		{
			name:     "duplicates collapse",
			input:    "[a, b, a]",
			expected: Set(String("a"), String("b")),
		},
		{
			name:     "empty brackets",
			input:    "[]",
			expected: Set(),
		},
		{
			name:     "mixed kinds",
			input:    "[1, a, true, None]",
			expected: Set(Number(1), String("a"), Boolean(true), None()),
		},
		{
			name:     "trailing comma dropped",
			input:    "[1,2,]",
			expected: Set(Number(1), Number(2)),
		},
		{
			name:     "empty tokens dropped",
			input:    "[x,, y , ,]",
			expected: Set(String("x"), String("y")),
		},
		{
			name:     "space after bracket is not an array",
			input:    "[ 1, 2]",
			expected: Set(Number(1), Number(2)),
		},
		{
			name:     "overflowing element",
			input:    "[1e400, 2]",
			expected: Set(String("1e400"), Number(2)),
		},
		{
			name:     "unclosed bracket inside element",
			input:    "[smile :-[, frown, ok]",
			expected: Set(String("smile :-["), String("frown"), String("ok")),
		},
		{
			name:     "unclosed bracket first",
			input:    "[x[, y]",
			expected: Set(String("x["), String("y")),
		},
		{
			name:     "closing bracket before opening",
			input:    "[a], [b]",
			expected: Set(String("a]"), String("[b")),
		},
		{
			name:     "nested array",
			input:    "[[1, 2], a]",
			expected: Set(Array([]float64{1, 2}), String("a")),
		},
		{
			name:     "nested set",
			input:    "[[x, y], [y, x]]",
			expected: Set(Set(String("x"), String("y"))),
		},
		{
			name:     "equal numbers collapse",
			input:    "[1, 1.0, 1e0, one]",
			expected: Set(Number(1), String("one")),
		},
		{
			name:     "only commas",
			input:    "[, ,]",
			expected: Set(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Infer(tt.input)
			set, ok := got.(SetValue)
			require.True(t, ok, "expected set, got %T (%v)", got, got)
			assert.Equal(t, tt.expected.Len(), set.Len())
			assert.True(t, tt.expected.Equal(set), "expected %v, got %v", tt.expected, set)
		})
	}
}

func TestInferPrecedence(t *testing.T) {
	// Numbers win over everything, arrays win over sets
	assert.Equal(t, KindNumber, Infer("1").Kind())
	assert.Equal(t, KindArray, Infer("[1]").Kind())
	assert.Equal(t, KindSet, Infer("[1, x]").Kind())
	assert.Equal(t, KindSet, Infer("[true, false]").Kind())

	// Keywords only match as whole tokens
	assert.Equal(t, KindString, Infer("true false").Kind())
	assert.Equal(t, KindString, Infer("nonexistent").Kind())

	// Brackets must enclose the whole token
	assert.Equal(t, KindString, Infer("[1, 2").Kind())
	assert.Equal(t, KindString, Infer("1, 2]").Kind())
	assert.Equal(t, KindString, Infer("[").Kind())
	assert.Equal(t, KindString, Infer("a [1] b").Kind())
}

func TestNoneIdentity(t *testing.T) {
	assert.True(t, None() == None())
	assert.True(t, Infer("none") == None())
	assert.True(t, Infer("None") == Infer("NONE"))
	assert.True(t, Value(NoneValue{}) == None())
	assert.True(t, IsNone(None()))
	assert.True(t, IsNone(nil))
	assert.False(t, IsNone(String("None")))
	assert.False(t, None().Equal(String("")))
	assert.False(t, None().Equal(Number(0)))
}

func TestRenderRoundTrip(t *testing.T) {
	t.Run("finite numbers", func(t *testing.T) {
		for _, d := range []float64{
			0, -0.0, 1, -1, 3.14, 0.0314, 1e21, 1e-7, 123456789.125,
			math.MaxFloat64, -math.MaxFloat64, math.SmallestNonzeroFloat64,
			1.0 / 3.0, math.Pi,
		} {
			n := Number(d)
			got := Infer(n.String())
			assert.True(t, n.Equal(got), "%v rendered as %q inferred as %v", d, n.String(), got)
		}
	})

	t.Run("other variants", func(t *testing.T) {
		for _, v := range []Value{
			Boolean(true),
			Boolean(false),
			None(),
			String("hello world"),
			Array([]float64{1.5, -2, 3e-9}),
			Set(String("a"), String("b")),
			Set(String("x"), Boolean(true), Array([]float64{1, 2})),
		} {
			got := Infer(v.String())
			assert.True(t, v.Equal(got), "%v inferred as %v", v, got)
		}
	})

	t.Run("non-finite numbers fall back to strings", func(t *testing.T) {
		for _, d := range []float64{math.Inf(1), math.Inf(-1), math.NaN()} {
			assert.Equal(t, KindString, Infer(Number(d).String()).Kind())
		}
	})
}
