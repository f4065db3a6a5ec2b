package quakedoc

import (
	"bytes"
	"errors"
	"io"

	"github.com/reoring/quakedoc/internal/tree"
	"github.com/reoring/quakedoc/source/jsontree"
	"github.com/reoring/quakedoc/source/xmltree"
	"github.com/reoring/quakedoc/source/yamltree"
)

// Opt bundles tree-construction options. Zero values disable a check. When
// passed variadically the last value wins.
type Opt struct {
	MaxDepth int   // Maximum element nesting depth.
	MaxBytes int64 // Size cap on the raw input.
}

// XMLBytes parses an XML document into an Element tree.
func XMLBytes(b []byte, opts ...Opt) (*Element, error) {
	opt := lastOpt(opts)
	if err := checkBytes(int64(len(b)), opt); err != nil {
		return nil, err
	}
	el, err := xmltree.ParseBytes(b, limits(opt))
	return el, toIssues(err)
}

// XMLReader parses an XML document from a reader into an Element tree.
func XMLReader(r io.Reader, opts ...Opt) (*Element, error) {
	opt := lastOpt(opts)
	r, err := capReader(r, opt)
	if err != nil {
		return nil, err
	}
	el, perr := xmltree.Parse(r, limits(opt))
	return el, toIssues(perr)
}

// JSONBytes parses a JSON document into an Element tree.
func JSONBytes(b []byte, opts ...Opt) (*Element, error) {
	opt := lastOpt(opts)
	if err := checkBytes(int64(len(b)), opt); err != nil {
		return nil, err
	}
	el, err := jsontree.ParseBytes(b, limits(opt))
	return el, toIssues(err)
}

// JSONReader parses a JSON document from a reader into an Element tree.
func JSONReader(r io.Reader, opts ...Opt) (*Element, error) {
	opt := lastOpt(opts)
	r, err := capReader(r, opt)
	if err != nil {
		return nil, err
	}
	el, perr := jsontree.Parse(r, limits(opt))
	return el, toIssues(perr)
}

// YAMLBytes parses a YAML document into an Element tree.
func YAMLBytes(b []byte, opts ...Opt) (*Element, error) {
	opt := lastOpt(opts)
	if err := checkBytes(int64(len(b)), opt); err != nil {
		return nil, err
	}
	el, err := yamltree.ParseBytes(b, limits(opt))
	return el, toIssues(err)
}

// EncodeXML renders an Element tree as an indented XML document.
func EncodeXML(el *Element) ([]byte, error) {
	b, err := xmltree.Render(el)
	return b, toIssues(err)
}

// EncodeJSON renders an Element tree as a JSON document.
func EncodeJSON(el *Element) ([]byte, error) {
	b, err := jsontree.Render(el)
	return b, toIssues(err)
}

// EncodeYAML renders an Element tree as a YAML document.
func EncodeYAML(el *Element) ([]byte, error) {
	b, err := yamltree.Render(el)
	return b, toIssues(err)
}

// ---- helpers (option normalization, limit enforcement, error mapping) ----

func lastOpt(opts []Opt) Opt {
	var opt Opt
	if len(opts) > 0 {
		opt = opts[len(opts)-1]
	}
	return opt
}

func limits(o Opt) tree.Limits {
	// MaxBytes is enforced before the driver sees the input.
	return tree.Limits{MaxDepth: o.MaxDepth}
}

func checkBytes(n int64, o Opt) error {
	if o.MaxBytes > 0 && n > o.MaxBytes {
		return singleIssue(CodeTruncated, "max bytes exceeded")
	}
	return nil
}

// capReader bounds a reader by MaxBytes up front, mirroring the byte-slice
// path. Reads one byte past the cap to distinguish "exactly at" from "over".
func capReader(r io.Reader, o Opt) (io.Reader, error) {
	if o.MaxBytes <= 0 {
		return r, nil
	}
	lr := io.LimitReader(r, o.MaxBytes+1)
	data, err := io.ReadAll(lr)
	if err != nil {
		return nil, singleIssue(CodeParseError, err.Error())
	}
	if int64(len(data)) > o.MaxBytes {
		return nil, singleIssue(CodeTruncated, "max bytes exceeded")
	}
	return bytes.NewReader(data), nil
}

func toIssues(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := AsIssues(err); ok {
		return err
	}
	var le tree.LimitError
	if errors.As(err, &le) {
		return Issues{{Code: le.Code, Severity: Error, Message: le.Message}}
	}
	return Issues{{Code: CodeParseError, Severity: Error, Message: err.Error(), Cause: err}}
}

func singleIssue(code, msg string) Issues {
	return AppendIssues(nil, Issue{Code: code, Severity: Error, Message: msg})
}
