// Package jsontree converts JSON documents to and from the shared element
// tree using goccy/go-json with number literals preserved verbatim.
//
// Mapping:
//   - the document is a single-key object; the key names the root element
//   - keys prefixed "@" become attributes, "#text" becomes element text
//   - other keys become child elements; arrays repeat the child in order
//   - a scalar value stands for a text-only element
//
// JSON objects cannot interleave differently-named siblings, so relative
// order across element names is not preserved through this format; order
// within one repeated name always is.
package jsontree

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	j "github.com/goccy/go-json"

	"github.com/reoring/quakedoc/internal/tree"
)

// ParseBytes parses a JSON document held in memory.
func ParseBytes(b []byte, lim tree.Limits) (*tree.Element, error) {
	return Parse(bytes.NewReader(b), lim)
}

// Parse builds an element tree from a JSON document.
func Parse(r io.Reader, lim tree.Limits) (*tree.Element, error) {
	dec := j.NewDecoder(r)
	dec.UseNumber()
	var top map[string]any
	if err := dec.Decode(&top); err != nil {
		return nil, err
	}
	if len(top) != 1 {
		return nil, fmt.Errorf("jsontree: expected a single root key, got %d", len(top))
	}
	for name, v := range top {
		return fromValue(name, v, 1, lim)
	}
	return nil, errors.New("jsontree: empty document")
}

// Render emits the tree as indented JSON.
func Render(el *tree.Element) ([]byte, error) {
	if el == nil {
		return nil, errors.New("jsontree: nil element")
	}
	doc := map[string]any{el.Name: toValue(el)}
	return j.MarshalIndent(doc, "", "  ")
}

func fromValue(name string, v any, depth int, lim tree.Limits) (*tree.Element, error) {
	if err := lim.CheckDepth(depth); err != nil {
		return nil, err
	}
	el := tree.New(name)
	switch t := v.(type) {
	case nil:
		return el, nil
	case string:
		el.Text = t
		return el, nil
	case bool:
		el.Text = strconv.FormatBool(t)
		return el, nil
	case j.Number:
		el.Text = t.String()
		return el, nil
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			val := t[k]
			switch {
			case strings.HasPrefix(k, "@"):
				s, ok := val.(string)
				if !ok {
					return nil, fmt.Errorf("jsontree: attribute %s of %s is not a string", k, name)
				}
				el.SetAttr(k[1:], s)
			case k == "#text":
				s, ok := val.(string)
				if !ok {
					return nil, fmt.Errorf("jsontree: #text of %s is not a string", name)
				}
				el.Text = s
			default:
				items, repeated := val.([]any)
				if !repeated {
					items = []any{val}
				}
				for _, item := range items {
					child, err := fromValue(k, item, depth+1, lim)
					if err != nil {
						return nil, err
					}
					el.Append(child)
				}
			}
		}
		return el, nil
	default:
		return nil, fmt.Errorf("jsontree: unsupported value %T for %s", v, name)
	}
}

// toValue inverts fromValue. Scalars are emitted as strings so text survives
// verbatim regardless of how it would re-tokenize as JSON.
func toValue(el *tree.Element) any {
	if len(el.Attrs) == 0 && len(el.Children) == 0 {
		return el.TrimText()
	}
	out := make(map[string]any)
	for _, a := range el.Attrs {
		out["@"+a.Name] = a.Value
	}
	if t := el.TrimText(); t != "" {
		out["#text"] = t
	}
	for _, c := range el.Children {
		v := toValue(c)
		switch prev := out[c.Name].(type) {
		case nil:
			out[c.Name] = v
		case []any:
			out[c.Name] = append(prev, v)
		default:
			out[c.Name] = []any{prev, v}
		}
	}
	return out
}
