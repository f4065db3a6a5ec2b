package catalog_test

import (
	"strings"
	"testing"
	"time"

	quakedoc "github.com/reoring/quakedoc"
	"github.com/reoring/quakedoc/catalog"
)

func minimalPick(id string) catalog.Pick {
	return catalog.Pick{
		PublicID: catalog.Identifier(id),
		Time:     catalog.TimeQuantity{Value: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)},
		WaveformID: catalog.WaveformStreamID{
			Network: "NZ",
			Station: "WEL",
		},
	}
}

func TestValidate_NilDocument(t *testing.T) {
	if iss := catalog.Validate(nil); iss != nil {
		t.Fatalf("expected no issues, got %v", iss)
	}
}

func TestValidate_DuplicatePublicID(t *testing.T) {
	doc := &catalog.EventParameters{
		PublicID: "smi:example.org/catalog",
		Picks: []catalog.Pick{
			minimalPick("smi:example.org/pick/1"),
			minimalPick("smi:example.org/pick/1"),
		},
	}
	iss := catalog.Validate(doc)
	var found bool
	for _, it := range iss {
		if it.Code != quakedoc.CodeUniqueness {
			continue
		}
		found = true
		if it.Severity != quakedoc.Error {
			t.Fatalf("duplicate publicID must be an error: %+v", it)
		}
		// the diagnostic names both positions
		if it.Path != "/pick/1" || !strings.Contains(it.Message, "/pick/0") {
			t.Fatalf("diagnostic should name both positions: %+v", it)
		}
	}
	if !found {
		t.Fatalf("expected a uniqueness diagnostic, got %v", iss)
	}
}

func TestValidate_DuplicateAcrossKinds(t *testing.T) {
	doc := &catalog.EventParameters{
		PublicID: "smi:example.org/catalog",
		Picks:    []catalog.Pick{minimalPick("smi:example.org/shared")},
		Events:   []catalog.Event{{PublicID: "smi:example.org/shared"}},
	}
	iss := catalog.Validate(doc)
	var count int
	for _, it := range iss {
		if it.Code == quakedoc.CodeUniqueness {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected one uniqueness diagnostic, got %v", iss)
	}
}

func TestValidate_UnresolvedInternalReference_Warns(t *testing.T) {
	p := minimalPick("smi:example.org/pick/1")
	missing := catalog.Identifier("smi:example.org/filter/nope")
	p.FilterID = &missing
	doc := &catalog.EventParameters{PublicID: "smi:example.org/catalog", Picks: []catalog.Pick{p}}

	iss := catalog.Validate(doc)
	var found bool
	for _, it := range iss {
		if it.Code == quakedoc.CodeUnresolvedRef {
			found = true
			if it.Severity != quakedoc.Warning {
				t.Fatalf("unresolved internal ref must be a warning: %+v", it)
			}
			if it.Path != "/pick/0/filterID" {
				t.Fatalf("unexpected path: %s", it.Path)
			}
		}
	}
	if !found {
		t.Fatalf("expected an unresolved_ref warning, got %v", iss)
	}
}

func TestValidate_ExternalReference_Passes(t *testing.T) {
	p := minimalPick("smi:example.org/pick/1")
	external := catalog.Identifier("smi:registry.elsewhere.net/filter/standard")
	p.FilterID = &external
	doc := &catalog.EventParameters{PublicID: "smi:example.org/catalog", Picks: []catalog.Pick{p}}

	for _, it := range catalog.Validate(doc) {
		if it.Code == quakedoc.CodeUnresolvedRef {
			t.Fatalf("external registries are legitimate targets: %+v", it)
		}
	}
}

func TestValidate_ResolvedReference_Passes(t *testing.T) {
	p := minimalPick("smi:example.org/pick/1")
	target := p.PublicID
	doc := &catalog.EventParameters{
		PublicID: "smi:example.org/catalog",
		Picks:    []catalog.Pick{p},
		Events: []catalog.Event{{
			PublicID:          "smi:example.org/event/1",
			PreferredOriginID: &target,
		}},
	}
	for _, it := range catalog.Validate(doc) {
		if it.Code == quakedoc.CodeUnresolvedRef {
			t.Fatalf("resolved reference flagged: %+v", it)
		}
	}
}

func TestValidate_NegativeUncertainty(t *testing.T) {
	p := minimalPick("smi:example.org/pick/1")
	p.Time.Uncertainty = catalog.SymmetricUncertainty(-0.25)
	doc := &catalog.EventParameters{PublicID: "smi:example.org/catalog", Picks: []catalog.Pick{p}}

	iss := catalog.Validate(doc)
	var found bool
	for _, it := range iss {
		if it.Code == quakedoc.CodeDomainRange && it.Severity == quakedoc.Error {
			found = true
			if it.Path != "/pick/0/time/uncertainty" {
				t.Fatalf("unexpected path: %s", it.Path)
			}
		}
	}
	if !found {
		t.Fatalf("expected a domain_range error, got %v", iss)
	}
}

func TestValidate_NegativeAsymmetricBounds_BothReported(t *testing.T) {
	p := minimalPick("smi:example.org/pick/1")
	p.Time.Uncertainty = catalog.AsymmetricUncertainty(-0.1, -0.2)
	doc := &catalog.EventParameters{PublicID: "smi:example.org/catalog", Picks: []catalog.Pick{p}}

	var count int
	for _, it := range catalog.Validate(doc) {
		if it.Code == quakedoc.CodeDomainRange {
			count++
		}
	}
	if count != 2 {
		t.Fatalf("both bounds should be reported, got %d", count)
	}
}

func TestValidate_BackazimuthRange(t *testing.T) {
	cases := []struct {
		value float64
		bad   bool
	}{
		{0, false},
		{359.9, false},
		{360, true},
		{-1, true},
	}
	for _, tc := range cases {
		p := minimalPick("smi:example.org/pick/1")
		p.Backazimuth = &catalog.RealQuantity{Value: tc.value}
		doc := &catalog.EventParameters{PublicID: "smi:example.org/catalog", Picks: []catalog.Pick{p}}

		var flagged bool
		for _, it := range catalog.Validate(doc) {
			if it.Code == quakedoc.CodeDomainRange && it.Path == "/pick/0/backazimuth" {
				flagged = true
			}
		}
		if flagged != tc.bad {
			t.Fatalf("backazimuth %v: flagged=%v want %v", tc.value, flagged, tc.bad)
		}
	}
}

func TestValidate_KnownEnums_NoWarnings(t *testing.T) {
	p := minimalPick("smi:example.org/pick/1")
	onset := catalog.OnsetEmergent
	pol := catalog.PolarityUndecidable
	mode := catalog.EvaluationAutomatic
	status := catalog.StatusReviewed
	p.Onset = &onset
	p.Polarity = &pol
	p.EvaluationMode = &mode
	p.EvaluationStatus = &status
	doc := &catalog.EventParameters{PublicID: "smi:example.org/catalog", Picks: []catalog.Pick{p}}

	for _, it := range catalog.Validate(doc) {
		if it.Code == quakedoc.CodeInvalidEnum {
			t.Fatalf("known enum flagged: %+v", it)
		}
	}
}

func TestValidate_CheckOrdering(t *testing.T) {
	// A document triggering uniqueness, enum and range findings at once:
	// diagnostics arrive grouped by check priority and all checks run.
	p1 := minimalPick("smi:example.org/pick/dup")
	bad := catalog.Polarity("sideways")
	p1.Polarity = &bad
	p2 := minimalPick("smi:example.org/pick/dup")
	p2.Time.Uncertainty = catalog.SymmetricUncertainty(-1)
	doc := &catalog.EventParameters{PublicID: "smi:example.org/catalog", Picks: []catalog.Pick{p1, p2}}

	iss := catalog.Validate(doc)
	var order []string
	for _, it := range iss {
		order = append(order, it.Code)
	}
	if len(order) != 3 {
		t.Fatalf("expected 3 diagnostics, got %v", iss)
	}
	if order[0] != quakedoc.CodeUniqueness || order[1] != quakedoc.CodeInvalidEnum || order[2] != quakedoc.CodeDomainRange {
		t.Fatalf("unexpected diagnostic order: %v", order)
	}
}

func TestIssues_HasError(t *testing.T) {
	iss := quakedoc.Issues{
		{Code: quakedoc.CodeInvalidEnum, Severity: quakedoc.Warning},
	}
	if iss.HasError() {
		t.Fatalf("warnings are not errors")
	}
	iss = append(iss, quakedoc.Issue{Code: quakedoc.CodeUniqueness, Severity: quakedoc.Error})
	if !iss.HasError() {
		t.Fatalf("expected HasError")
	}
}
