package values

import "strings"

// Compare compares two values and returns:
//
//	-1 if left < right
//	 0 if left == right
//	 1 if left > right
//
// The order is total and agrees with Equal. Values of different kinds are
// ordered by kind (None, Boolean, Number, Array, Set, String); within a
// kind the natural order applies. nil is treated as None.
func Compare(left, right Value) int {
	left, right = deref(left), deref(right)

	if c := compareInts(int(left.Kind()), int(right.Kind())); c != 0 {
		return c
	}

	switch l := left.(type) {
	case NoneValue:
		return 0
	case BooleanValue:
		r := right.(BooleanValue)
		if !l.b && r.b {
			return -1
		} else if l.b && !r.b {
			return 1
		}
		return 0
	case NumberValue:
		return compareFloats(l.d, right.(NumberValue).d)
	case ArrayValue:
		return compareArrays(l.elems, right.(ArrayValue).elems)
	case SetValue:
		return compareSets(l.elems, right.(SetValue).elems)
	case StringValue:
		return strings.Compare(l.s, right.(StringValue).s)
	}
	return 0
}

// Equal checks if two values are equal. nil is treated as None.
func Equal(a, b Value) bool {
	return deref(a).Equal(b)
}

// Contains reports whether container holds v:
// set membership, an equal number in an array, or a substring of a string.
// For any other container it falls back to Equal.
func Contains(container, v Value) bool {
	container, v = deref(container), deref(v)
	switch c := container.(type) {
	case SetValue:
		return c.Has(v)
	case ArrayValue:
		n, ok := v.(NumberValue)
		if !ok {
			return false
		}
		for _, d := range c.elems {
			if compareFloats(d, n.d) == 0 {
				return true
			}
		}
		return false
	case StringValue:
		return strings.Contains(c.s, v.String())
	}
	return Equal(container, v)
}

// SubValues returns the elements of a set, or the elements of an array
// as numbers. Other variants have no sub-values.
func SubValues(v Value) []Value {
	switch c := deref(v).(type) {
	case SetValue:
		return c.Elements()
	case ArrayValue:
		out := make([]Value, len(c.elems))
		for i, d := range c.elems {
			out[i] = Number(d)
		}
		return out
	}
	return nil
}

func compareInts(a, b int) int {
	if a < b {
		return -1
	} else if a > b {
		return 1
	}
	return 0
}

// Normalize returns v in its value form: nil and nil pointers become None,
// and a pointer to a variant becomes the variant it points to
func Normalize(v Value) Value {
	return deref(v)
}

// deref maps nil to None and pointers to variants onto the variants
// themselves, so type switches only have to handle the value forms
func deref(v Value) Value {
	switch p := v.(type) {
	case nil:
		return none
	case *NoneValue:
		return none
	case *NumberValue:
		if p == nil {
			return none
		}
		return *p
	case *BooleanValue:
		if p == nil {
			return none
		}
		return *p
	case *ArrayValue:
		if p == nil {
			return none
		}
		return *p
	case *SetValue:
		if p == nil {
			return none
		}
		return *p
	case *StringValue:
		if p == nil {
			return none
		}
		return *p
	}
	return v
}
