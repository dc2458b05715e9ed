package schema

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Error is a field-qualified decoding failure.
type Error struct {
	Path     string // dotted field location (e.g., "requirements[0].validation.tests")
	Line     int    // 1-based line number, 0 when unknown
	Column   int    // 1-based column number, 0 when unknown
	Message  string
	Expected string
	Actual   string
}

// Error implements the error interface.
func (e *Error) Error() string {
	var sb strings.Builder
	if e.Line > 0 {
		sb.WriteString(fmt.Sprintf("line %d", e.Line))
		if e.Column > 0 {
			sb.WriteString(fmt.Sprintf(":%d", e.Column))
		}
		sb.WriteString(": ")
	}
	if e.Path != "" {
		sb.WriteString(fmt.Sprintf("%s: ", e.Path))
	}
	sb.WriteString(e.Message)
	if e.Expected != "" && e.Actual != "" {
		sb.WriteString(fmt.Sprintf(" (expected %s, got %s)", e.Expected, e.Actual))
	}
	return sb.String()
}

func newError(node *yaml.Node, path, message string) *Error {
	e := &Error{Path: path, Message: message}
	if node != nil {
		e.Line = node.Line
		e.Column = node.Column
	}
	return e
}

func typeError(node *yaml.Node, path, message, expected string) *Error {
	e := newError(node, path, message)
	e.Expected = expected
	e.Actual = describeNode(node)
	return e
}

// describeNode converts a node to a human-readable type name.
func describeNode(node *yaml.Node) string {
	if node == nil {
		return "nothing"
	}
	switch node.Kind {
	case yaml.SequenceNode:
		return "array"
	case yaml.MappingNode:
		return "object"
	case yaml.ScalarNode:
		switch node.ShortTag() {
		case "!!str":
			return "string"
		case "!!int", "!!float":
			return "number"
		case "!!bool":
			return "boolean"
		case "!!null":
			return "null"
		default:
			return "scalar"
		}
	default:
		return "unknown"
	}
}
