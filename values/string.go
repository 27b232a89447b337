package values

// StringValue wraps arbitrary text.
// Infer falls back to it when no other variant matches.
type StringValue struct {
	s string
}

// String creates a string value without inference
func String(s string) StringValue {
	return StringValue{s: s}
}

func (StringValue) Kind() Kind       { return KindString }
func (StringValue) sealed()          {}
func (s StringValue) String() string { return s.s }

func (s StringValue) Equal(other Value) bool {
	o, ok := deref(other).(StringValue)
	return ok && o.s == s.s
}

func (s StringValue) Hash() uint64 {
	h := newHasher(KindString)
	h.writeString(s.s)
	return h.sum()
}
