package schema

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// resolve unwraps document and alias nodes. Null scalars resolve to nil so
// that callers treat them exactly like absent keys.
func resolve(node *yaml.Node) *yaml.Node {
	for node != nil {
		switch node.Kind {
		case 0:
			return nil
		case yaml.DocumentNode:
			if len(node.Content) == 0 {
				return nil
			}
			node = node.Content[0]
		case yaml.AliasNode:
			node = node.Alias
		default:
			if node.Kind == yaml.ScalarNode && node.ShortTag() == "!!null" {
				return nil
			}
			return node
		}
	}
	return nil
}

// findNode finds a value by key in a mapping node.
func findNode(mapping *yaml.Node, key string) *yaml.Node {
	if mapping == nil || mapping.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			return resolve(mapping.Content[i+1])
		}
	}
	return nil
}

// keyNode returns the key node for key, used to position errors on fields
// whose value is missing.
func keyNode(mapping *yaml.Node, key string) *yaml.Node {
	if mapping == nil || mapping.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			return mapping.Content[i]
		}
	}
	return nil
}

// optionalMapping returns the mapping at key, or nil when the key is absent.
func optionalMapping(parent *yaml.Node, key, path string) (*yaml.Node, error) {
	node := findNode(parent, key)
	if node == nil {
		return nil, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, typeError(node, path, "must be an object", "object")
	}
	return node, nil
}

// stringField decodes a string value. Absent values decode to "" unless
// required, in which case blank strings are rejected as well.
func stringField(parent *yaml.Node, key, path string, required bool) (string, error) {
	node := findNode(parent, key)
	if node == nil {
		if required {
			at := keyNode(parent, key)
			if at == nil {
				at = parent
			}
			return "", newError(at, path, "must be a non-empty string")
		}
		return "", nil
	}
	if !isString(node) {
		return "", typeError(node, path, "must be a string", "string")
	}
	if required && isBlank(node.Value) {
		return "", newError(node, path, "must be a non-empty string")
	}
	return node.Value, nil
}

// stringList decodes an array of strings. Absent values decode to an empty
// slice.
func stringList(parent *yaml.Node, key, path string) ([]string, error) {
	node := findNode(parent, key)
	if node == nil {
		return []string{}, nil
	}
	if node.Kind != yaml.SequenceNode {
		return nil, typeError(node, path, "must be an array of strings", "array")
	}
	out := make([]string, 0, len(node.Content))
	for i, item := range node.Content {
		item = resolve(item)
		if item == nil || !isString(item) {
			at := item
			if at == nil {
				at = node.Content[i]
			}
			return nil, typeError(at, fmt.Sprintf("%s[%d]", path, i), "must be an array of strings", "string")
		}
		out = append(out, item.Value)
	}
	return out, nil
}

func isString(node *yaml.Node) bool {
	return node.Kind == yaml.ScalarNode && node.ShortTag() == "!!str"
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
