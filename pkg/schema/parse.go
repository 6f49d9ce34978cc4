package schema

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// maxDecodeDepth bounds alias/nesting expansion so pathological inputs
// cannot blow the stack.
const maxDecodeDepth = 1000

// decodeNode converts a yaml.Node tree into the Value model, preserving
// mapping key order. YAML is a superset of JSON, so .json documents
// decode through the same path.
func decodeNode(n *yaml.Node, depth int) (Value, error) {
	if depth > maxDecodeDepth {
		return nil, fmt.Errorf("document nesting exceeds %d levels", maxDecodeDepth)
	}

	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return decodeNode(n.Content[0], depth+1)

	case yaml.MappingNode:
		obj := NewObject()
		for i := 0; i+1 < len(n.Content); i += 2 {
			keyNode := n.Content[i]
			val, err := decodeNode(n.Content[i+1], depth+1)
			if err != nil {
				return nil, err
			}
			obj.Set(keyNode.Value, val)
		}
		return obj, nil

	case yaml.SequenceNode:
		list := make([]Value, 0, len(n.Content))
		for _, item := range n.Content {
			val, err := decodeNode(item, depth+1)
			if err != nil {
				return nil, err
			}
			list = append(list, val)
		}
		return list, nil

	case yaml.ScalarNode:
		return decodeScalar(n)

	case yaml.AliasNode:
		return decodeNode(n.Alias, depth+1)

	default:
		return nil, fmt.Errorf("line %d: unsupported node kind %d", n.Line, n.Kind)
	}
}

// decodeScalar maps YAML scalar tags onto the Value union. Timestamps
// and other exotic tags stay raw strings; a schema model has no use for
// resolved time values.
func decodeScalar(n *yaml.Node) (Value, error) {
	switch n.Tag {
	case "!!null":
		return nil, nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}
		return b, nil
	case "!!int":
		var i int64
		if err := n.Decode(&i); err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}
		return i, nil
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}
		return f, nil
	default:
		return n.Value, nil
	}
}
