package appyaml

import (
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Pair is one key/value entry of a YAML mapping, with the value stringified.
type Pair struct {
	Key   string
	Value string
}

// Lookup returns the value node for key within a mapping node, or nil when
// the mapping does not contain the key. Explicit nulls count as absent, and a
// repeated key resolves to its last value per YAML mapping semantics.
func Lookup(mapping *yaml.Node, key string) *yaml.Node {
	if mapping == nil || mapping.Kind != yaml.MappingNode {
		return nil
	}
	var found *yaml.Node
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			found = mapping.Content[i+1]
		}
	}
	if found != nil && found.Kind == yaml.AliasNode {
		found = found.Alias
	}
	if found == nil || isNull(found) {
		return nil
	}
	return found
}

// MappingOf returns n when it is a mapping node and an empty mapping
// otherwise, so section accessors stay total.
func MappingOf(n *yaml.Node) *yaml.Node {
	if n != nil && n.Kind == yaml.MappingNode {
		return n
	}
	return emptyMapping()
}

// ScalarString stringifies a scalar node to its canonical form: booleans
// become "true"/"false", numbers their decimal rendering, nulls the empty
// string. The second result reports whether n was a scalar.
func ScalarString(n *yaml.Node) (string, bool) {
	if n == nil || n.Kind != yaml.ScalarNode {
		return "", false
	}

	var value any
	if err := n.Decode(&value); err != nil {
		return n.Value, true
	}
	switch v := value.(type) {
	case nil:
		return "", true
	case string:
		return v, true
	case bool:
		return strconv.FormatBool(v), true
	case int:
		return strconv.Itoa(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case uint64:
		return strconv.FormatUint(v, 10), true
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64), true
	default:
		return fmt.Sprintf("%v", v), true
	}
}

// StringList coerces a node to a list of strings: absent yields an empty
// list, a scalar a single element, and a sequence one element per entry.
func StringList(n *yaml.Node) []string {
	switch {
	case n == nil:
		return []string{}
	case n.Kind == yaml.SequenceNode:
		out := make([]string, 0, len(n.Content))
		for _, item := range n.Content {
			s, _ := ScalarString(item)
			out = append(out, s)
		}
		return out
	default:
		s, _ := ScalarString(n)
		return []string{s}
	}
}

// Pairs returns the entries of a mapping node in source order with values
// stringified. A repeated key keeps its first position and takes its last
// value. Non-mapping nodes yield no entries.
func Pairs(mapping *yaml.Node) []Pair {
	if mapping == nil || mapping.Kind != yaml.MappingNode {
		return nil
	}

	index := make(map[string]int, len(mapping.Content)/2)
	pairs := make([]Pair, 0, len(mapping.Content)/2)
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		key := mapping.Content[i].Value
		value, _ := ScalarString(mapping.Content[i+1])
		if at, ok := index[key]; ok {
			pairs[at].Value = value
			continue
		}
		index[key] = len(pairs)
		pairs = append(pairs, Pair{Key: key, Value: value})
	}
	return pairs
}

func isNull(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.Tag == "!!null"
}
