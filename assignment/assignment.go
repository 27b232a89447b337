package assignment

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/ubuntu733/opendial/values"
)

// ErrMalformed is returned when assignment text cannot be parsed
var ErrMalformed = errors.New("malformed assignment")

// Separator joins the conjuncts of an assignment's text form
const Separator = " ^ "

// Assignment maps variable names to values. It is immutable: With returns
// a modified copy.
type Assignment struct {
	vars map[string]values.Value
}

// Empty returns an assignment with no variables
func Empty() Assignment {
	return Assignment{}
}

// New creates an assignment from a copy of m. Values are stored in their
// normalized form, so nil and nil pointers become None.
func New(m map[string]values.Value) Assignment {
	vars := make(map[string]values.Value, len(m))
	for name, v := range m {
		vars[name] = values.Normalize(v)
	}
	return Assignment{vars: vars}
}

// With returns a copy with name set to v
func (a Assignment) With(name string, v values.Value) Assignment {
	vars := make(map[string]values.Value, len(a.vars)+1)
	for k, old := range a.vars {
		vars[k] = old
	}
	vars[name] = values.Normalize(v)
	return Assignment{vars: vars}
}

// Get returns the value of name and whether it is set
func (a Assignment) Get(name string) (values.Value, bool) {
	v, ok := a.vars[name]
	return v, ok
}

// Value returns the value of name, or None when it is unset
func (a Assignment) Value(name string) values.Value {
	if v, ok := a.vars[name]; ok {
		return v
	}
	return values.None()
}

// Len returns the number of variables
func (a Assignment) Len() int { return len(a.vars) }

// Vars returns the variable names in sorted order
func (a Assignment) Vars() []string {
	names := make([]string, 0, len(a.vars))
	for name := range a.vars {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Equal reports whether both assignments set the same variables to equal values
func (a Assignment) Equal(other Assignment) bool {
	if len(a.vars) != len(other.vars) {
		return false
	}
	for name, v := range a.vars {
		ov, ok := other.vars[name]
		if !ok || !v.Equal(ov) {
			return false
		}
	}
	return true
}

// Hash returns a hash consistent with Equal
func (a Assignment) Hash() uint64 {
	d := xxhash.New()
	var buf [8]byte
	for _, name := range a.Vars() {
		d.WriteString(name)
		d.Write([]byte{0})
		binary.BigEndian.PutUint64(buf[:], a.vars[name].Hash())
		d.Write(buf[:])
	}
	return d.Sum64()
}

// String renders the assignment as "a=1 ^ b=[x, y]" with sorted variables
func (a Assignment) String() string {
	parts := make([]string, 0, len(a.vars))
	for _, name := range a.Vars() {
		parts = append(parts, name+"="+a.vars[name].String())
	}
	return strings.Join(parts, Separator)
}

// Parse reads the text form produced by String. Each conjunct is
// "name=value", with the value inferred by values.Infer; a bare "name"
// stands for name=true and "!name" for name=false.
// Values must not contain '^'.
func Parse(text string) (Assignment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Empty(), nil
	}

	vars := make(map[string]values.Value)
	for i, conjunct := range strings.Split(text, "^") {
		conjunct = strings.TrimSpace(conjunct)
		name, v, err := parseConjunct(conjunct)
		if err != nil {
			return Assignment{}, fmt.Errorf("conjunct %d %q: %w", i, conjunct, err)
		}
		vars[name] = v
	}
	return Assignment{vars: vars}, nil
}

func parseConjunct(conjunct string) (string, values.Value, error) {
	if name, raw, ok := strings.Cut(conjunct, "="); ok {
		name = strings.TrimSpace(name)
		if name == "" {
			return "", nil, fmt.Errorf("%w: missing variable name", ErrMalformed)
		}
		return name, values.Infer(raw), nil
	}

	if strings.HasPrefix(conjunct, "!") {
		name := strings.TrimSpace(conjunct[1:])
		if name == "" {
			return "", nil, fmt.Errorf("%w: missing variable name", ErrMalformed)
		}
		return name, values.Boolean(false), nil
	}

	if conjunct == "" {
		return "", nil, fmt.Errorf("%w: empty conjunct", ErrMalformed)
	}
	return conjunct, values.Boolean(true), nil
}
