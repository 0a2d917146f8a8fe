package report

import (
	"bytes"
	"fmt"
	"iter"

	yaml "gopkg.in/yaml.v3"
)

// OrderedMap is a YAML mapping which remembers order of its keys. Values are
// decoded strictly, unknown fields are rejected.
type OrderedMap[V any] struct {
	keys   []string
	values map[string]V
}

func (m *OrderedMap[V]) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: expected mapping", node.Line)
	}
	m.keys = make([]string, 0, len(node.Content)/2)
	m.values = make(map[string]V, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		if _, ok := m.values[key]; ok {
			return fmt.Errorf("line %d: duplicate key %q", node.Content[i].Line, key)
		}
		var v V
		if err := decodeStrict(node.Content[i+1], &v); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		m.keys = append(m.keys, key)
		m.values[key] = v
	}
	return nil
}

// Node.Decode does not support KnownFields, round trip through decoder.
// Subtree is marshalled alone, so aliases to anchors outside of it are
// replaced by copies of what they point to first.
func decodeStrict(node *yaml.Node, out any) error {
	data, err := yaml.Marshal(expandAliases(node))
	if err != nil {
		return err
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	return dec.Decode(out)
}

// expandAliases returns deep copy of node without aliases and anchors.
func expandAliases(node *yaml.Node) *yaml.Node {
	for node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	c := *node
	c.Anchor = ""
	if len(node.Content) > 0 {
		c.Content = make([]*yaml.Node, len(node.Content))
		for i, n := range node.Content {
			c.Content[i] = expandAliases(n)
		}
	}
	return &c
}

func (m *OrderedMap[V]) Len() int {
	return len(m.keys)
}

func (m *OrderedMap[V]) Keys() []string {
	return m.keys
}

func (m *OrderedMap[V]) Get(key string) (V, bool) {
	v, ok := m.values[key]
	return v, ok
}

// All iterates over entries in document order.
func (m *OrderedMap[V]) All() iter.Seq2[string, V] {
	return func(yield func(string, V) bool) {
		for _, k := range m.keys {
			if !yield(k, m.values[k]) {
				return
			}
		}
	}
}

// Set appends or replaces entry, used to build specs in code.
func (m *OrderedMap[V]) Set(key string, v V) {
	if m.values == nil {
		m.values = make(map[string]V)
	}
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = v
}
