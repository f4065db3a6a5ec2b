package quakedoc

import "github.com/reoring/quakedoc/internal/tree"

// Element is the tree-structured document form shared by every wire format.
// XML maps onto it directly; the JSON and YAML drivers normalize their
// object/array shapes into the same tree (see source/jsontree for the
// mapping). The implementation lives in internal/tree so wire-format drivers
// can share it without importing the root package.
type Element = tree.Element

// Attr is a single name/value attribute of an Element.
type Attr = tree.Attr

// NewElement returns an element with the given name.
func NewElement(name string) *Element { return tree.New(name) }
