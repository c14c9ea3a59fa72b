package params

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Entry is one key/value pair of an ordered mapping.
type Entry struct {
	Key   any
	Value any
}

// Mapping is an insertion-ordered mapping. Keys are scalars and may be nil.
type Mapping struct {
	entries []Entry
}

// NewMapping creates a mapping holding entries in the given order.
func NewMapping(entries ...Entry) *Mapping {
	return &Mapping{entries: append([]Entry(nil), entries...)}
}

// Len returns the number of entries.
func (m *Mapping) Len() int {
	if m == nil {
		return 0
	}

	return len(m.entries)
}

// Entries returns a copy of the entries in insertion order.
func (m *Mapping) Entries() []Entry {
	if m == nil {
		return nil
	}

	return append([]Entry(nil), m.entries...)
}

// Get returns the value of the first entry whose key is the string key.
func (m *Mapping) Get(key string) (any, bool) {
	if m == nil {
		return nil, false
	}

	for _, e := range m.entries {
		if k, ok := e.Key.(string); ok && k == key {
			return e.Value, true
		}
	}

	return nil, false
}

// UnmarshalYAML decodes a YAML mapping node, keeping entry order.
func (m *Mapping) UnmarshalYAML(node *yaml.Node) error {
	v, err := decodeNode(node)
	if err != nil {
		return err
	}

	decoded, ok := v.(*Mapping)
	if !ok {
		return fmt.Errorf("line %d: expected a mapping, got %s", node.Line, kindName(node))
	}

	*m = *decoded

	return nil
}

// decodeNode converts a YAML node into scalars, []any and *Mapping values.
func decodeNode(node *yaml.Node) (any, error) {
	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return nil, nil
		}

		return decodeNode(node.Content[0])

	case yaml.AliasNode:
		return decodeNode(node.Alias)

	case yaml.ScalarNode:
		var v any

		if err := node.Decode(&v); err != nil {
			return nil, fmt.Errorf("line %d: %w", node.Line, err)
		}

		return v, nil

	case yaml.SequenceNode:
		items := make([]any, 0, len(node.Content))

		for _, item := range node.Content {
			v, err := decodeNode(item)
			if err != nil {
				return nil, err
			}

			items = append(items, v)
		}

		return items, nil

	case yaml.MappingNode:
		m := &Mapping{entries: make([]Entry, 0, len(node.Content)/2)}

		for i := 0; i+1 < len(node.Content); i += 2 {
			keyNode, valueNode := node.Content[i], node.Content[i+1]

			if keyNode.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("line %d: mapping keys must be scalars, got %s", keyNode.Line, kindName(keyNode))
			}

			key, err := decodeNode(keyNode)
			if err != nil {
				return nil, err
			}

			val, err := decodeNode(valueNode)
			if err != nil {
				return nil, err
			}

			m.entries = append(m.entries, Entry{Key: key, Value: val})
		}

		return m, nil

	default:
		return nil, fmt.Errorf("line %d: unsupported YAML node %s", node.Line, kindName(node))
	}
}

func kindName(node *yaml.Node) string {
	switch node.Kind {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return "node"
	}
}
