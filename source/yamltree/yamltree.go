// Package yamltree converts YAML documents to and from the shared element
// tree via gopkg.in/yaml.v3. It shares the jsontree mapping ("@" attributes,
// "#text", arrays for repeated children) after normalizing YAML's scalar
// typing and map[any]any keys into the JSON-like shape.
package yamltree

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/reoring/quakedoc/internal/tree"
)

// ParseBytes parses a YAML document held in memory.
func ParseBytes(b []byte, lim tree.Limits) (*tree.Element, error) {
	var top any
	if err := yaml.Unmarshal(b, &top); err != nil {
		return nil, err
	}
	m := normalizeMap(top)
	if m == nil {
		return nil, errors.New("yamltree: document root is not a mapping")
	}
	if len(m) != 1 {
		return nil, fmt.Errorf("yamltree: expected a single root key, got %d", len(m))
	}
	for name, v := range m {
		return fromValue(name, v, 1, lim)
	}
	return nil, errors.New("yamltree: empty document")
}

// Render emits the tree as a YAML document.
func Render(el *tree.Element) ([]byte, error) {
	if el == nil {
		return nil, errors.New("yamltree: nil element")
	}
	return yaml.Marshal(map[string]any{el.Name: toValue(el)})
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
				s, ok := scalarText(val)
				if !ok {
					return nil, fmt.Errorf("yamltree: attribute %s of %s is not a scalar", k, name)
				}
				el.SetAttr(k[1:], s)
			case k == "#text":
				s, ok := scalarText(val)
				if !ok {
					return nil, fmt.Errorf("yamltree: #text of %s is not a scalar", name)
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
		if s, ok := scalarText(t); ok {
			el.Text = s
			return el, nil
		}
		return nil, fmt.Errorf("yamltree: unsupported value %T for %s", v, name)
	}
}

// toValue mirrors jsontree: scalars are emitted as strings so element text
// survives verbatim regardless of YAML's scalar typing rules.
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

// scalarText renders a YAML scalar as its text form. Floats use the shortest
// representation that round-trips so "0.012" survives the float detour;
// unquoted ISO8601 scalars arrive as time.Time and go back to their RFC3339
// text.
func scalarText(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case time.Time:
		return t.UTC().Format(time.RFC3339Nano), true
	case bool:
		return strconv.FormatBool(t), true
	case int:
		return strconv.Itoa(t), true
	case int64:
		return strconv.FormatInt(t, 10), true
	case uint64:
		return strconv.FormatUint(t, 10), true
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64), true
	default:
		return "", false
	}
}

// normalizeMap converts YAML-decoded values (which may contain map[any]any)
// into a JSON-like map[string]any recursively. Non-map roots return nil.
func normalizeMap(v any) map[string]any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			out[k] = normalizeValue(vv)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			ks, ok := k.(string)
			if !ok {
				continue
			}
			out[ks] = normalizeValue(vv)
		}
		return out
	default:
		return nil
	}
}

func normalizeValue(v any) any {
	switch t := v.(type) {
	case map[string]any, map[any]any:
		return normalizeMap(t)
	case []any:
		arr := make([]any, len(t))
		for i := range t {
			arr[i] = normalizeValue(t[i])
		}
		return arr
	default:
		return v
	}
}
