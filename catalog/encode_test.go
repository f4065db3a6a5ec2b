package catalog_test

import (
	"testing"
	"time"

	quakedoc "github.com/reoring/quakedoc"
	"github.com/reoring/quakedoc/catalog"
)

func TestEncode_OmitsAbsentOptionals(t *testing.T) {
	doc := &catalog.EventParameters{
		PublicID: "smi:example.org/catalog",
		Picks:    []catalog.Pick{minimalPick("smi:example.org/pick/1")},
	}
	el, err := catalog.Encode(doc)
	if err != nil {
		t.Fatalf("encode err: %v", err)
	}
	pick := el.Child("pick")
	if pick == nil {
		t.Fatalf("missing pick element")
	}
	for _, name := range []string{"filterID", "methodID", "backazimuth", "onset", "phaseHint",
		"polarity", "evaluationMode", "evaluationStatus", "creationInfo", "comment"} {
		if pick.Child(name) != nil {
			t.Fatalf("absent optional %s was emitted", name)
		}
	}
	wf := pick.Child("waveformID")
	if wf == nil {
		t.Fatalf("missing waveformID")
	}
	if _, ok := wf.Attr("channelCode"); ok {
		t.Fatalf("absent channelCode emitted")
	}
	tq := pick.Child("time")
	if tq.Child("uncertainty") != nil || tq.Child("lowerUncertainty") != nil {
		t.Fatalf("uncertainty form invented for UncertaintyNone")
	}
}

func TestEncode_UncertaintyForms(t *testing.T) {
	sym := minimalPick("smi:example.org/pick/1")
	sym.Time.Uncertainty = catalog.SymmetricUncertainty(0.012)
	asym := minimalPick("smi:example.org/pick/2")
	asym.Time.Uncertainty = catalog.AsymmetricUncertainty(0.0, 0.1)
	doc := &catalog.EventParameters{
		PublicID: "smi:example.org/catalog",
		Picks:    []catalog.Pick{sym, asym},
	}
	el, err := catalog.Encode(doc)
	if err != nil {
		t.Fatalf("encode err: %v", err)
	}
	picks := el.ChildrenNamed("pick")

	st := picks[0].Child("time")
	if got, _ := st.ChildText("uncertainty"); got != "0.012" {
		t.Fatalf("unexpected symmetric uncertainty: %q", got)
	}
	if st.Child("lowerUncertainty") != nil {
		t.Fatalf("asymmetric bounds invented for symmetric variant")
	}

	at := picks[1].Child("time")
	if at.Child("uncertainty") != nil {
		t.Fatalf("symmetric form invented for asymmetric variant")
	}
	if lo, _ := at.ChildText("lowerUncertainty"); lo != "0" {
		t.Fatalf("unexpected lower bound: %q", lo)
	}
	if up, _ := at.ChildText("upperUncertainty"); up != "0.1" {
		t.Fatalf("unexpected upper bound: %q", up)
	}
}

func TestEncode_OrderingPreserved(t *testing.T) {
	p := minimalPick("smi:example.org/pick/1")
	p.Comments = []catalog.Comment{{Text: "first"}, {Text: "second"}, {Text: "third"}}
	doc := &catalog.EventParameters{PublicID: "smi:example.org/catalog", Picks: []catalog.Pick{p}}
	el, err := catalog.Encode(doc)
	if err != nil {
		t.Fatalf("encode err: %v", err)
	}
	comments := el.Child("pick").ChildrenNamed("comment")
	want := []string{"first", "second", "third"}
	if len(comments) != len(want) {
		t.Fatalf("expected %d comments, got %d", len(want), len(comments))
	}
	for i, c := range comments {
		if text, _ := c.ChildText("text"); text != want[i] {
			t.Fatalf("comment %d out of order: %q", i, text)
		}
	}
}

func TestEncode_ContractViolations(t *testing.T) {
	if _, err := catalog.Encode(nil); err == nil {
		t.Fatalf("nil document must fail")
	}
	doc := &catalog.EventParameters{
		PublicID: "smi:example.org/catalog",
		Picks:    []catalog.Pick{{PublicID: "smi:example.org/pick/1"}}, // no time/waveformID
	}
	if _, err := catalog.Encode(doc); err == nil {
		t.Fatalf("internally inconsistent pick must fail")
	}
}

func TestEncode_CanonicalTimestamps(t *testing.T) {
	p := minimalPick("smi:example.org/pick/1")
	loc := time.FixedZone("CET", 3600)
	p.Time.Value = time.Date(2020, 1, 1, 1, 0, 0, 12e6, loc)
	doc := &catalog.EventParameters{PublicID: "smi:example.org/catalog", Picks: []catalog.Pick{p}}
	el, err := catalog.Encode(doc)
	if err != nil {
		t.Fatalf("encode err: %v", err)
	}
	got, _ := el.Child("pick").Child("time").ChildText("value")
	if got != "2020-01-01T00:00:00.012Z" {
		t.Fatalf("unexpected canonical timestamp: %q", got)
	}
}

func TestEncode_RoundTrip_SampleAcrossFormats(t *testing.T) {
	res := decodeSample(t)
	if len(res.Structural) != 0 {
		t.Fatalf("sample must decode cleanly: %v", res.Structural)
	}
	el, err := catalog.Encode(res.Doc)
	if err != nil {
		t.Fatalf("encode err: %v", err)
	}

	type fixture struct {
		name   string
		render func(*quakedoc.Element) ([]byte, error)
		parse  func([]byte) (*quakedoc.Element, error)
	}
	formats := []fixture{
		{"xml", quakedoc.EncodeXML, func(b []byte) (*quakedoc.Element, error) { return quakedoc.XMLBytes(b) }},
		{"json", quakedoc.EncodeJSON, func(b []byte) (*quakedoc.Element, error) { return quakedoc.JSONBytes(b) }},
		{"yaml", quakedoc.EncodeYAML, func(b []byte) (*quakedoc.Element, error) { return quakedoc.YAMLBytes(b) }},
	}
	for _, f := range formats {
		raw, err := f.render(el)
		if err != nil {
			t.Fatalf("%s render err: %v", f.name, err)
		}
		back, err := f.parse(raw)
		if err != nil {
			t.Fatalf("%s parse err: %v", f.name, err)
		}
		again := catalog.Decode(back)
		if len(again.Structural) != 0 {
			t.Fatalf("%s re-decode structural errors: %v", f.name, again.Structural)
		}
		if !res.Doc.Equal(again.Doc) {
			t.Fatalf("%s round trip not field-for-field equal", f.name)
		}
	}
}
