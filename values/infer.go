package values

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

const numberGrammar = `[-+]?[0-9]*\.?[0-9]+([eE][-+]?[0-9]+)?`

var (
	// A single decimal or scientific literal, matched against the whole token
	numberPattern = regexp.MustCompile(`^` + numberGrammar + `$`)

	// One or more numeric literals in brackets, separated by commas
	arrayPattern = regexp.MustCompile(`^\[(` + numberGrammar + `,\s*)*` + numberGrammar + `\]$`)
)

// Infer builds the most specific value for a raw text token.
//
// The token is trimmed, then the first matching rule wins:
//
//  1. a numeric literal ("3", "-.5", "3.14e-2") gives a NumberValue
//  2. "true" or "false", any case, gives a BooleanValue
//  3. "none", any case, gives the shared None value
//  4. a bracketed list of numeric literals ("[1, 2.5, -3]") gives an ArrayValue
//  5. any other bracketed text gives a SetValue of the inferred
//     comma-separated elements; empty elements are dropped
//  6. anything else is kept verbatim as a StringValue
//
// Infer never fails. Literals that overflow float64, and the words NaN and
// Infinity, are not numbers and end up as strings. "[]" is an empty set,
// not an empty array.
func Infer(text string) Value {
	s := strings.TrimSpace(text)

	if numberPattern.MatchString(s) {
		if d, ok := parseFinite(s); ok {
			return Number(d)
		}
	}

	switch {
	case strings.EqualFold(s, "true"):
		return Boolean(true)
	case strings.EqualFold(s, "false"):
		return Boolean(false)
	case strings.EqualFold(s, NoneKeyword):
		return None()
	}

	if arrayPattern.MatchString(s) {
		if ds, ok := parseArray(s); ok {
			return Array(ds)
		}
	}

	if len(s) >= 2 && strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]") {
		return inferSet(s[1 : len(s)-1])
	}

	return String(s)
}

// parseFinite parses a token already accepted by numberPattern.
// Out of range literals parse to ±Inf and are refused.
func parseFinite(s string) (float64, bool) {
	d, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(d, 0) {
		return 0, false
	}
	return d, true
}

func parseArray(s string) ([]float64, bool) {
	parts := strings.Split(s[1:len(s)-1], ",")
	ds := make([]float64, 0, len(parts))
	for _, part := range parts {
		d, ok := parseFinite(strings.TrimSpace(part))
		if !ok {
			return nil, false
		}
		ds = append(ds, d)
	}
	return ds, true
}

func inferSet(body string) SetValue {
	var elems []Value
	for _, token := range splitTopLevel(body) {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		elems = append(elems, Infer(token))
	}
	return Set(elems...)
}

// splitTopLevel splits on commas that are not inside brackets, so that
// "[1, 2], a" yields "[1, 2]" and " a". A body whose brackets do not
// balance is split on every comma.
func splitTopLevel(s string) []string {
	if !balanced(s) {
		return strings.Split(s, ",")
	}

	var parts []string
	depth, start := 0, 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '[':
			depth++
		case ']':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	return append(parts, s[start:])
}

// balanced reports whether every ']' in s closes an earlier '['
// and no '[' is left open
func balanced(s string) bool {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '[':
			depth++
		case ']':
			if depth == 0 {
				return false
			}
			depth--
		}
	}
	return depth == 0
}
