package assignment

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ubuntu733/opendial/values"
)

func TestParse(t *testing.T) {
	a, err := Parse("a_u=Request(Weather) ^ coords=[1, 2.5] ^ tags=[x, y, x] ^ !confirmed ^ grounded ^ slot=None")
	require.NoError(t, err)

	assert.Equal(t, 6, a.Len())
	assert.Equal(t, []string{"a_u", "confirmed", "coords", "grounded", "slot", "tags"}, a.Vars())
	assert.True(t, values.String("Request(Weather)").Equal(a.Value("a_u")))
	assert.True(t, values.Array([]float64{1, 2.5}).Equal(a.Value("coords")))
	assert.True(t, values.Set(values.String("x"), values.String("y")).Equal(a.Value("tags")))
	assert.True(t, values.Boolean(false).Equal(a.Value("confirmed")))
	assert.True(t, values.Boolean(true).Equal(a.Value("grounded")))

	slot, ok := a.Get("slot")
	require.True(t, ok)
	assert.True(t, slot == values.None())
}

func TestParseEdgeCases(t *testing.T) {
	a, err := Parse("   ")
	require.NoError(t, err)
	assert.Equal(t, 0, a.Len())

	a, err = Parse("expr = x=y")
	require.NoError(t, err)
	assert.Equal(t, "x=y", a.Value("expr").String())

	// Later conjuncts override earlier ones
	a, err = Parse("n=1 ^ n=2")
	require.NoError(t, err)
	assert.True(t, values.Number(2).Equal(a.Value("n")))

	// An empty right-hand side infers to the empty string
	a, err = Parse("s=")
	require.NoError(t, err)
	assert.Equal(t, values.KindString, a.Value("s").Kind())
}

func TestParseMalformed(t *testing.T) {
	for _, input := range []string{
		"=1",
		" = 1 ^ b=2",
		"a=1 ^ ^ b=2",
		"a=1 ^",
		"!",
		"! ^ a=1",
	} {
		t.Run(input, func(t *testing.T) {
			_, err := Parse(input)
			assert.ErrorIs(t, err, ErrMalformed)
		})
	}
}

func TestStringRoundTrip(t *testing.T) {
	a := New(map[string]values.Value{
		"b":       values.Set(values.String("y"), values.String("x")),
		"a":       values.Number(1),
		"flag":    values.Boolean(true),
		"vector":  values.Array([]float64{0.5, -1}),
		"missing": nil,
	})

	text := a.String()
	assert.Equal(t, "a=1 ^ b=[x, y] ^ flag=true ^ missing=None ^ vector=[0.5, -1]", text)

	parsed, err := Parse(text)
	require.NoError(t, err)
	assert.True(t, a.Equal(parsed))
	assert.Equal(t, a.Hash(), parsed.Hash())
}

func TestImmutability(t *testing.T) {
	m := map[string]values.Value{"a": values.Number(1)}
	a := New(m)
	m["a"] = values.Number(2)
	m["b"] = values.Number(3)
	assert.True(t, values.Number(1).Equal(a.Value("a")))
	assert.Equal(t, 1, a.Len())

	b := a.With("a", values.String("changed")).With("c", nil)
	assert.True(t, values.Number(1).Equal(a.Value("a")))
	assert.Equal(t, "changed", b.Value("a").String())
	assert.True(t, values.IsNone(b.Value("c")))
	assert.Equal(t, 2, b.Len())
}

func TestPointerValuesAreNormalized(t *testing.T) {
	n := values.Number(2)
	var nilNumber *values.NumberValue
	var nilSet *values.SetValue

	a := New(map[string]values.Value{"x": nilNumber, "n": &n})
	assert.True(t, a.Value("x") == values.None())
	assert.Equal(t, values.Number(2), a.Value("n"))
	assert.Equal(t, "n=2 ^ x=None", a.String())

	b := a.With("s", nilSet)
	assert.True(t, b.Value("s") == values.None())
	assert.Equal(t, "n=2 ^ s=None ^ x=None", b.String())

	parsed, err := Parse("n=2 ^ x=None")
	require.NoError(t, err)
	assert.True(t, a.Equal(parsed))
	assert.Equal(t, parsed.Hash(), a.Hash())
}

func TestValueDefaultsToNone(t *testing.T) {
	a := Empty()
	assert.True(t, a.Value("anything") == values.None())
	_, ok := a.Get("anything")
	assert.False(t, ok)
	assert.Equal(t, "", a.String())
}

func TestEqualAndHash(t *testing.T) {
	a, err := Parse("x=[a, b] ^ y=1")
	require.NoError(t, err)
	b, err := Parse("y=1.0 ^ x=[b, a, b]")
	require.NoError(t, err)
	c, err := Parse("y=1 ^ x=[a]")
	require.NoError(t, err)

	assert.True(t, a.Equal(b))
	assert.Equal(t, a.Hash(), b.Hash())
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(Empty()))
	assert.False(t, a.Equal(a.With("z", values.None())))
	assert.True(t, Empty().Equal(New(nil)))
}

func TestLoadYAML(t *testing.T) {
	input := `
name: dialogue-turn-1
values:
  a_u: "Request(Weather)"
  coords: [1.5, 2, -3]
  tags: [red, green, red]
  nested: [[1, 2], x]
  confirmed: TRUE
  quoted: "42"
  slot: None
  unset:
`
	name, a, err := LoadYAML(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, "dialogue-turn-1", name)
	assert.Equal(t, 8, a.Len())

	assert.True(t, values.String("Request(Weather)").Equal(a.Value("a_u")))
	assert.True(t, values.Array([]float64{1.5, 2, -3}).Equal(a.Value("coords")))
	assert.True(t, values.Set(values.String("green"), values.String("red")).Equal(a.Value("tags")))
	assert.True(t, values.Set(values.Array([]float64{1, 2}), values.String("x")).Equal(a.Value("nested")))
	assert.True(t, values.Boolean(true).Equal(a.Value("confirmed")))
	assert.True(t, values.Number(42).Equal(a.Value("quoted")))
	assert.True(t, values.IsNone(a.Value("slot")))

	unset, ok := a.Get("unset")
	require.True(t, ok)
	assert.True(t, values.IsNone(unset))
}

func TestLoadYAMLErrors(t *testing.T) {
	_, _, err := LoadYAML(strings.NewReader("values:\n  m: {a: 1}\n"))
	assert.ErrorIs(t, err, ErrMalformed)

	_, _, err = LoadYAML(strings.NewReader("values:\n  tags: [\"a, b\", c]\n"))
	assert.ErrorIs(t, err, ErrMalformed)

	// A comma in a plain scalar is fine, it is inferred as a whole
	_, a, err := LoadYAML(strings.NewReader("values:\n  note: \"a, b\"\n"))
	require.NoError(t, err)
	assert.Equal(t, values.String("a, b"), a.Value("note"))

	_, _, err = LoadYAML(strings.NewReader("values: [unterminated"))
	assert.Error(t, err)

	var name string
	name, a, err = LoadYAML(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, "", name)
	assert.Equal(t, 0, a.Len())
}
