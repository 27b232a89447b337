package values

// NoneKeyword is the text that infers to None (matched case-insensitively)
const NoneKeyword = "None"

// NoneValue marks the absence of a value.
// It has no state, so every NoneValue is the same value: None() == None()
// holds under ==, and there is no second instance to construct.
type NoneValue struct{}

var none = NoneValue{}

// None returns the shared absence value
func None() Value { return none }

// IsNone reports whether v is the absence value (nil counts as absent)
func IsNone(v Value) bool {
	return deref(v).Kind() == KindNone
}

func (NoneValue) Kind() Kind     { return KindNone }
func (NoneValue) String() string { return NoneKeyword }
func (NoneValue) sealed()        {}

// Equal is true only against another absence value
func (NoneValue) Equal(other Value) bool {
	return IsNone(other)
}

func (NoneValue) Hash() uint64 {
	return newHasher(KindNone).sum()
}
