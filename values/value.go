// Package values implements the typed values carried by variables in a
// dialogue state: numbers, booleans, numeric arrays, sets, strings and the
// shared None marker, plus inference of the right variant from raw text.
package values

// Kind identifies the variant of a Value
type Kind byte

const (
	KindNone Kind = iota
	KindBoolean
	KindNumber
	KindArray
	KindSet
	KindString
)

// String returns the kind name
func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindBoolean:
		return "boolean"
	case KindNumber:
		return "number"
	case KindArray:
		return "array"
	case KindSet:
		return "set"
	case KindString:
		return "string"
	default:
		return "unknown"
	}
}

// Value is an immutable typed value.
//
// The variant set is closed: NoneValue, NumberValue, BooleanValue,
// ArrayValue, SetValue and StringValue are the only implementations.
// Consumers can switch on the concrete type and cover every case.
type Value interface {
	// Kind returns the variant tag
	Kind() Kind

	// String returns the canonical rendering, which Infer reads back
	String() string

	// Equal reports value equality with another Value
	Equal(other Value) bool

	// Hash returns a hash consistent with Equal
	Hash() uint64

	sealed()
}

var (
	_ Value = NoneValue{}
	_ Value = NumberValue{}
	_ Value = BooleanValue{}
	_ Value = ArrayValue{}
	_ Value = SetValue{}
	_ Value = StringValue{}
)
