package schema

import (
	json "github.com/goccy/go-json"

	"github.com/binbingao/json-schema-validator/ref"
)

// Container pairs a loaded schema document with the absolute reference it was
// loaded from (its locator). Containers are immutable once constructed and
// safe to share across concurrent validation runs.
type Container struct {
	locator  ref.Ref
	document any
}

// NewContainer builds a container for a parsed document rooted at locator.
func NewContainer(locator ref.Ref, document any) *Container {
	return &Container{locator: locator, document: document}
}

// Locator returns the reference the document was loaded from.
func (c *Container) Locator() ref.Ref { return c.locator }

// Document returns the parsed document root.
func (c *Container) Document() any { return c.document }

// Contains reports whether target points into this container's document.
func (c *Container) Contains(target ref.Ref) bool {
	return c.locator.Contains(target)
}

// Node pairs a container with a value inside that container's document: the
// unit the resolution stage operates on. A Node is a value; resolution never
// mutates one in place, it returns a replacement.
type Node struct {
	container *Container
	value     any
}

// NewNode builds a node for value, which must live inside container's
// document.
func NewNode(container *Container, value any) Node {
	return Node{container: container, value: value}
}

// Container returns the container the node's value lives in.
func (n Node) Container() *Container { return n.container }

// Value returns the node's JSON value.
func (n Node) Value() any { return n.value }

// RefString returns the node's $ref member when it is present with a string
// value. The second result is false otherwise.
func (n Node) RefString() (string, bool) {
	obj, ok := n.value.(map[string]any)
	if !ok {
		return "", false
	}
	s, ok := obj["$ref"].(string)
	return s, ok
}

// MarshalJSON encodes the node's value.
func (n Node) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.value)
}
