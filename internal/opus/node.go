// Package opus loads OPUS4 repository XML exports into navigable document nodes.
package opus

import (
	"github.com/beevik/etree"
)

// Node is the read-only view of an XML element that field extraction needs.
// Child lookups search all descendants in document order.
type Node interface {
	// Tag returns the element name.
	Tag() string

	// FindChild returns the first descendant element with the given tag.
	FindChild(tag string) (Node, bool)

	// FindChildren returns every descendant element with the given tag.
	FindChildren(tag string) []Node

	// Attr returns the attribute value, or def when the attribute is absent.
	Attr(name, def string) string

	// HasAttr reports whether the attribute is present (possibly empty).
	HasAttr(name string) bool
}

// element adapts an etree element to Node.
type element struct {
	el *etree.Element
}

// Wrap returns a Node backed by an etree element.
func Wrap(el *etree.Element) Node {
	return &element{el: el}
}

func (e *element) Tag() string {
	return e.el.Tag
}

func (e *element) FindChild(tag string) (Node, bool) {
	child := e.el.FindElement(descendantPath(tag))
	if child == nil {
		return nil, false
	}
	return &element{el: child}, true
}

func (e *element) FindChildren(tag string) []Node {
	found := e.el.FindElements(descendantPath(tag))
	nodes := make([]Node, len(found))
	for i, child := range found {
		nodes[i] = &element{el: child}
	}
	return nodes
}

func (e *element) Attr(name, def string) string {
	return e.el.SelectAttrValue(name, def)
}

func (e *element) HasAttr(name string) bool {
	return e.el.SelectAttr(name) != nil
}

// descendantPath builds an etree path matching tag anywhere below the current element.
func descendantPath(tag string) string {
	return ".//" + tag
}
