// Package xmltree converts XML documents to and from the shared element
// tree. Namespace prefixes are dropped on input (local names only) and
// xmlns declarations are not carried into the tree.
package xmltree

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"strings"

	"github.com/reoring/quakedoc/internal/tree"
)

// ParseBytes parses an XML document held in memory.
func ParseBytes(b []byte, lim tree.Limits) (*tree.Element, error) {
	return Parse(bytes.NewReader(b), lim)
}

// Parse builds an element tree from XML tokens. Character data inside an
// element is accumulated and trimmed when the element closes, so indentation
// whitespace between children does not survive as text.
func Parse(r io.Reader, lim tree.Limits) (*tree.Element, error) {
	dec := xml.NewDecoder(r)
	var root *tree.Element
	var stack []*tree.Element
	for {
		tok, err := dec.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			el := tree.New(t.Name.Local)
			for _, a := range t.Attr {
				if a.Name.Space == "xmlns" || a.Name.Local == "xmlns" {
					continue
				}
				el.SetAttr(a.Name.Local, a.Value)
			}
			if len(stack) == 0 {
				if root != nil {
					return nil, errors.New("xmltree: multiple root elements")
				}
				root = el
			} else {
				stack[len(stack)-1].Append(el)
			}
			stack = append(stack, el)
			if err := lim.CheckDepth(len(stack)); err != nil {
				return nil, err
			}
		case xml.EndElement:
			if n := len(stack); n > 0 {
				stack[n-1].Text = strings.TrimSpace(stack[n-1].Text)
				stack = stack[:n-1]
			}
		case xml.CharData:
			if n := len(stack); n > 0 {
				stack[n-1].Text += string(t)
			}
		default:
			// comments, directives and processing instructions carry no data
		}
	}
	if root == nil {
		return nil, errors.New("xmltree: empty document")
	}
	return root, nil
}

// Render emits an indented XML document for the tree.
func Render(el *tree.Element) ([]byte, error) {
	if el == nil {
		return nil, errors.New("xmltree: nil element")
	}
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := renderElement(enc, el); err != nil {
		return nil, err
	}
	if err := enc.Flush(); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

func renderElement(enc *xml.Encoder, el *tree.Element) error {
	start := xml.StartElement{Name: xml.Name{Local: el.Name}}
	for _, a := range el.Attrs {
		start.Attr = append(start.Attr, xml.Attr{Name: xml.Name{Local: a.Name}, Value: a.Value})
	}
	if err := enc.EncodeToken(start); err != nil {
		return err
	}
	if t := el.TrimText(); t != "" {
		if err := enc.EncodeToken(xml.CharData(t)); err != nil {
			return err
		}
	}
	for _, c := range el.Children {
		if err := renderElement(enc, c); err != nil {
			return err
		}
	}
	return enc.EncodeToken(xml.EndElement{Name: start.Name})
}
