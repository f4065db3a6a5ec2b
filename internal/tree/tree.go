// Package tree holds the element tree every wire-format driver normalizes
// into. The public surface is re-exported from the root package via aliases;
// drivers under source/ import this package directly to avoid a cycle with
// the root.
package tree

import (
	"fmt"
	"strings"
)

// Attr is a single name/value attribute. Attributes keep document order so
// re-rendered output stays stable.
type Attr struct {
	Name  string
	Value string
}

// Element is the tree-structured document form shared by every wire format.
type Element struct {
	Name     string
	Attrs    []Attr
	Text     string
	Children []*Element
}

// New returns an element with the given name.
func New(name string) *Element { return &Element{Name: name} }

// SetAttr appends or replaces the named attribute.
func (e *Element) SetAttr(name, value string) *Element {
	for i := range e.Attrs {
		if e.Attrs[i].Name == name {
			e.Attrs[i].Value = value
			return e
		}
	}
	e.Attrs = append(e.Attrs, Attr{Name: name, Value: value})
	return e
}

// Attr returns the named attribute value and whether it was present.
func (e *Element) Attr(name string) (string, bool) {
	for _, a := range e.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// Append adds child elements, preserving order.
func (e *Element) Append(children ...*Element) *Element {
	e.Children = append(e.Children, children...)
	return e
}

// Child returns the first child with the given name, or nil.
func (e *Element) Child(name string) *Element {
	for _, c := range e.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// ChildrenNamed returns every child with the given name in document order.
func (e *Element) ChildrenNamed(name string) []*Element {
	var out []*Element
	for _, c := range e.Children {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// TrimText returns the element text with surrounding whitespace removed.
func (e *Element) TrimText() string { return strings.TrimSpace(e.Text) }

// ChildText returns the trimmed text of the first child with the given name
// and whether that child exists.
func (e *Element) ChildText(name string) (string, bool) {
	c := e.Child(name)
	if c == nil {
		return "", false
	}
	return c.TrimText(), true
}

// Limits bounds tree construction. Zero values disable the corresponding
// check.
type Limits struct {
	MaxDepth int
	MaxBytes int64
}

// LimitError reports an enforcement violation during tree construction.
// Code matches the root package issue codes ("truncated", "parse_error").
type LimitError struct {
	Code    string
	Message string
}

func (e LimitError) Error() string { return fmt.Sprintf("%s: %s", e.Code, e.Message) }

// CheckDepth returns a LimitError when depth exceeds the configured maximum.
func (l Limits) CheckDepth(depth int) error {
	if l.MaxDepth > 0 && depth > l.MaxDepth {
		return LimitError{Code: "parse_error", Message: fmt.Sprintf("max depth %d exceeded", l.MaxDepth)}
	}
	return nil
}
