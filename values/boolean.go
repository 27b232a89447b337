package values

import "strconv"

// BooleanValue wraps a bool
type BooleanValue struct {
	b bool
}

// Boolean creates a boolean value
func Boolean(b bool) BooleanValue {
	return BooleanValue{b: b}
}

// Bool returns the wrapped bool
func (b BooleanValue) Bool() bool { return b.b }

func (BooleanValue) Kind() Kind       { return KindBoolean }
func (BooleanValue) sealed()          {}
func (b BooleanValue) String() string { return strconv.FormatBool(b.b) }

func (b BooleanValue) Equal(other Value) bool {
	o, ok := deref(other).(BooleanValue)
	return ok && o.b == b.b
}

func (b BooleanValue) Hash() uint64 {
	h := newHasher(KindBoolean)
	h.writeBool(b.b)
	return h.sum()
}
