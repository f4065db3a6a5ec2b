package yamltree

import (
	"testing"

	"github.com/reoring/quakedoc/internal/tree"
)

func TestParse_Mapping(t *testing.T) {
	src := `pick:
  "@publicID": smi:x/pick/1
  time:
    value: "2020-01-01T00:00:00Z"
    uncertainty: 0.012
  comment:
    - text: first
    - text: second
`
	el, err := ParseBytes([]byte(src), tree.Limits{})
	if err != nil {
		t.Fatalf("parse err: %v", err)
	}
	if el.Name != "pick" {
		t.Fatalf("unexpected root: %s", el.Name)
	}
	if id, _ := el.Attr("publicID"); id != "smi:x/pick/1" {
		t.Fatalf("@-key should become attribute: %q", id)
	}
	// YAML types the scalar as a float; the text form must survive
	if u, _ := el.Child("time").ChildText("uncertainty"); u != "0.012" {
		t.Fatalf("scalar text mangled: %q", u)
	}
	comments := el.ChildrenNamed("comment")
	if len(comments) != 2 {
		t.Fatalf("sequence should repeat the child: %d", len(comments))
	}
	if first, _ := comments[0].ChildText("text"); first != "first" {
		t.Fatalf("sequence order lost: %q", first)
	}
}

func TestParse_UnquotedTimestamp(t *testing.T) {
	// plain YAML scalars that look like ISO8601 resolve as timestamps, not
	// strings; the element text must come out as RFC3339 regardless
	src := `pick:
  time:
    value: 2005-09-18T22:04:35Z
  creationInfo:
    creationTime: 2005-10-01T12:23:13.5Z
`
	el, err := ParseBytes([]byte(src), tree.Limits{})
	if err != nil {
		t.Fatalf("parse err: %v", err)
	}
	if got, _ := el.Child("time").ChildText("value"); got != "2005-09-18T22:04:35Z" {
		t.Fatalf("unquoted timestamp mangled: %q", got)
	}
	if got, _ := el.Child("creationInfo").ChildText("creationTime"); got != "2005-10-01T12:23:13.5Z" {
		t.Fatalf("fractional second lost: %q", got)
	}
}

func TestParse_NonMappingRoot(t *testing.T) {
	if _, err := ParseBytes([]byte(`- a`), tree.Limits{}); err == nil {
		t.Fatalf("expected error for sequence root")
	}
	if _, err := ParseBytes([]byte("a: {}\nb: {}\n"), tree.Limits{}); err == nil {
		t.Fatalf("expected error for multiple root keys")
	}
}

func TestParse_DepthLimit(t *testing.T) {
	src := "a:\n  b:\n    c:\n      d: x\n"
	if _, err := ParseBytes([]byte(src), tree.Limits{MaxDepth: 3}); err == nil {
		t.Fatalf("expected depth limit error")
	}
	if _, err := ParseBytes([]byte(src), tree.Limits{MaxDepth: 4}); err != nil {
		t.Fatalf("depth 4 should pass: %v", err)
	}
}

func TestRender_RoundTrip(t *testing.T) {
	el := tree.New("pick").SetAttr("publicID", "smi:x/pick/1")
	tm := tree.New("time")
	val := tree.New("value")
	val.Text = "2020-01-01T00:00:00Z"
	unc := tree.New("uncertainty")
	unc.Text = "0.012"
	tm.Append(val, unc)
	el.Append(tm)

	out, err := Render(el)
	if err != nil {
		t.Fatalf("render err: %v", err)
	}
	back, err := ParseBytes(out, tree.Limits{})
	if err != nil {
		t.Fatalf("reparse err: %v", err)
	}
	if id, _ := back.Attr("publicID"); id != "smi:x/pick/1" {
		t.Fatalf("attr lost: %q", id)
	}
	if u, _ := back.Child("time").ChildText("uncertainty"); u != "0.012" {
		t.Fatalf("text lost: %q", u)
	}
}
