package values

import (
	"sort"
	"strings"
)

// SetValue is an unordered collection of values without duplicates.
// Elements are kept sorted by Compare, which makes rendering, hashing and
// equality independent of insertion order.
type SetValue struct {
	elems []Value
}

// Set creates a set value. Elements equal by value collapse into one and
// nil elements are taken as None.
func Set(vs ...Value) SetValue {
	elems := make([]Value, 0, len(vs))
	for _, v := range vs {
		elems = append(elems, deref(v))
	}
	sort.SliceStable(elems, func(i, j int) bool {
		return Compare(elems[i], elems[j]) < 0
	})

	// Sorted, so duplicates are adjacent
	out := elems[:0]
	for _, v := range elems {
		if len(out) > 0 && Compare(out[len(out)-1], v) == 0 {
			continue
		}
		out = append(out, v)
	}
	return SetValue{elems: out}
}

// Len returns the number of distinct elements
func (s SetValue) Len() int { return len(s.elems) }

// Elements returns a copy of the elements in canonical order
func (s SetValue) Elements() []Value {
	out := make([]Value, len(s.elems))
	copy(out, s.elems)
	return out
}

// Has reports whether an element equal to v is in the set
func (s SetValue) Has(v Value) bool {
	v = deref(v)
	i := sort.Search(len(s.elems), func(i int) bool {
		return Compare(s.elems[i], v) >= 0
	})
	return i < len(s.elems) && Compare(s.elems[i], v) == 0
}

func (SetValue) Kind() Kind { return KindSet }
func (SetValue) sealed()    {}

// String renders the elements as [a, b] in canonical order
func (s SetValue) String() string {
	parts := make([]string, len(s.elems))
	for i, v := range s.elems {
		parts[i] = v.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Equal is set equality: order and duplicates are irrelevant
func (s SetValue) Equal(other Value) bool {
	o, ok := deref(other).(SetValue)
	return ok && compareSets(s.elems, o.elems) == 0
}

func (s SetValue) Hash() uint64 {
	h := newHasher(KindSet)
	h.writeLen(len(s.elems))
	for _, v := range s.elems {
		h.writeUint64(v.Hash())
	}
	return h.sum()
}

func compareSets(a, b []Value) int {
	if c := compareInts(len(a), len(b)); c != 0 {
		return c
	}
	for i := range a {
		if c := Compare(a[i], b[i]); c != 0 {
			return c
		}
	}
	return 0
}
