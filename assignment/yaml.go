package assignment

import (
	"fmt"
	"io"
	"strings"

	"github.com/ubuntu733/opendial/values"
	"gopkg.in/yaml.v3"
)

// document is the YAML layout of an assignment file:
//
//	name: turn-1
//	values:
//	  a_u: Request(Weather)
//	  coords: [1.5, 2, -3]
//	  slot: None
type document struct {
	Name   string               `yaml:"name"`
	Values map[string]yaml.Node `yaml:"values"`
}

// LoadYAML reads a named assignment from YAML.
//
// Scalars are inferred from their raw text, not from YAML's own typing, so
// "3" and 3 both give a number. Sequences are rendered back to bracket
// text and inferred, and an empty (null) entry gives None. A sequence
// element cannot contain a comma, since the bracket text has no escape for
// it; such elements give ErrMalformed.
func LoadYAML(r io.Reader) (string, Assignment, error) {
	var doc document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if err == io.EOF {
			return "", Empty(), nil
		}
		return "", Assignment{}, fmt.Errorf("failed to decode assignment: %w", err)
	}

	vars := make(map[string]values.Value, len(doc.Values))
	for name, node := range doc.Values {
		text, err := nodeText(&node, false)
		if err != nil {
			return "", Assignment{}, fmt.Errorf("variable %q: %w", name, err)
		}
		vars[name] = values.Infer(text)
	}
	return doc.Name, Assignment{vars: vars}, nil
}

// nodeText renders n as the text Infer reads. element is set for the
// children of a sequence.
func nodeText(n *yaml.Node, element bool) (string, error) {
	switch n.Kind {
	case yaml.ScalarNode:
		if n.ShortTag() == "!!null" {
			return values.NoneKeyword, nil
		}
		if element && strings.Contains(n.Value, ",") {
			return "", fmt.Errorf("%w: line %d: sequence element %q contains a comma", ErrMalformed, n.Line, n.Value)
		}
		return n.Value, nil
	case yaml.SequenceNode:
		parts := make([]string, len(n.Content))
		for i, child := range n.Content {
			text, err := nodeText(child, true)
			if err != nil {
				return "", err
			}
			parts[i] = text
		}
		return "[" + strings.Join(parts, ", ") + "]", nil
	case yaml.AliasNode:
		return nodeText(n.Alias, element)
	default:
		return "", fmt.Errorf("%w: line %d: only scalars and sequences can be values", ErrMalformed, n.Line)
	}
}
