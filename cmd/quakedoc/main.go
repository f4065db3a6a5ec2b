package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	quakedoc "github.com/reoring/quakedoc"
	"github.com/reoring/quakedoc/catalog"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	sub := os.Args[1]
	switch sub {
	case "validate":
		validateCmd(os.Args[2:])
	case "convert":
		convertCmd(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "quakedoc CLI\n\nUsage:\n  quakedoc validate [-format xml|json|yaml] [-quiet] [file]\n  quakedoc convert -to xml|json|yaml [-from xml|json|yaml] [file]\n\nNotes:\n  - Reads stdin when no file is given (format defaults to xml).\n  - validate exits 0 when clean, 1 on error-severity diagnostics, 2 on structural errors.")
}

func validateCmd(args []string) {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	var format string
	var quiet bool
	fs.StringVar(&format, "format", "", "input format (xml, json or yaml; inferred from the file extension)")
	fs.BoolVar(&quiet, "quiet", false, "suppress diagnostics, report via exit code only")
	_ = fs.Parse(args)

	data, name := readInput(fs.Arg(0))
	el, err := parseAs(resolveFormat(format, name), data)
	if err != nil {
		fatalf("parse: %v", err)
	}

	res := catalog.Decode(el)
	iss := catalog.Validate(res.Doc)
	if !quiet {
		for _, se := range res.Structural {
			fmt.Fprintf(os.Stderr, "structural %s\n", se.Error())
		}
		for _, it := range append(res.Issues, iss...) {
			fmt.Fprintf(os.Stderr, "%s %s at %s: %s\n", it.Severity, it.Code, it.Path, it.Message)
		}
	}
	switch {
	case len(res.Structural) > 0:
		os.Exit(2)
	case res.Issues.HasError() || iss.HasError():
		os.Exit(1)
	}
}

func convertCmd(args []string) {
	fs := flag.NewFlagSet("convert", flag.ExitOnError)
	var from, to string
	fs.StringVar(&from, "from", "", "input format (inferred from the file extension when empty)")
	fs.StringVar(&to, "to", "", "output format (xml, json or yaml)")
	_ = fs.Parse(args)
	if to == "" {
		fs.Usage()
		os.Exit(2)
	}

	data, name := readInput(fs.Arg(0))
	el, err := parseAs(resolveFormat(from, name), data)
	if err != nil {
		fatalf("parse: %v", err)
	}
	res := catalog.Decode(el)
	if len(res.Structural) > 0 {
		fatalf("refusing to convert a structurally broken document:\n%s", res.Structural.Error())
	}
	out, err := catalog.Encode(res.Doc)
	if err != nil {
		fatalf("encode: %v", err)
	}
	raw, err := renderAs(to, out)
	if err != nil {
		fatalf("render: %v", err)
	}
	if _, err := os.Stdout.Write(raw); err != nil {
		fatalf("write: %v", err)
	}
}

func readInput(path string) ([]byte, string) {
	if path == "" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			fatalf("reading stdin: %v", err)
		}
		return data, ""
	}
	data, err := os.ReadFile(path)
	if err != nil {
		fatalf("reading %s: %v", path, err)
	}
	return data, path
}

func resolveFormat(explicit, name string) string {
	if explicit != "" {
		return explicit
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json":
		return "json"
	case ".yaml", ".yml":
		return "yaml"
	default:
		return "xml"
	}
}

func parseAs(format string, data []byte) (*quakedoc.Element, error) {
	switch format {
	case "xml":
		return quakedoc.XMLBytes(data)
	case "json":
		return quakedoc.JSONBytes(data)
	case "yaml":
		return quakedoc.YAMLBytes(data)
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
}

func renderAs(format string, el *quakedoc.Element) ([]byte, error) {
	switch format {
	case "xml":
		return quakedoc.EncodeXML(el)
	case "json":
		return quakedoc.EncodeJSON(el)
	case "yaml":
		return quakedoc.EncodeYAML(el)
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
}

func fatalf(format string, a ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", a...)
	os.Exit(1)
}
