package values

import "strings"

// ArrayValue is a fixed-length, ordered sequence of float64 scalars
// (coordinates, feature vectors and the like)
type ArrayValue struct {
	elems []float64
}

// Array creates an array value from a copy of ds
func Array(ds []float64) ArrayValue {
	elems := make([]float64, len(ds))
	copy(elems, ds)
	return ArrayValue{elems: elems}
}

// Len returns the number of elements
func (a ArrayValue) Len() int { return len(a.elems) }

// At returns the i-th element
func (a ArrayValue) At(i int) float64 { return a.elems[i] }

// Floats returns a copy of the elements
func (a ArrayValue) Floats() []float64 {
	out := make([]float64, len(a.elems))
	copy(out, a.elems)
	return out
}

func (ArrayValue) Kind() Kind { return KindArray }
func (ArrayValue) sealed()    {}

// String renders the elements as [1, 2.5, -3]
func (a ArrayValue) String() string {
	parts := make([]string, len(a.elems))
	for i, d := range a.elems {
		parts[i] = formatFloat(d)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Equal is element-wise and order-sensitive
func (a ArrayValue) Equal(other Value) bool {
	o, ok := deref(other).(ArrayValue)
	return ok && compareArrays(a.elems, o.elems) == 0
}

func (a ArrayValue) Hash() uint64 {
	h := newHasher(KindArray)
	h.writeLen(len(a.elems))
	for _, d := range a.elems {
		h.writeFloat(d)
	}
	return h.sum()
}

func compareArrays(a, b []float64) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if c := compareFloats(a[i], b[i]); c != 0 {
			return c
		}
	}
	return compareInts(len(a), len(b))
}
