package catalog

import (
	"fmt"
	"strconv"

	quakedoc "github.com/reoring/quakedoc"
)

// Validate is a pure function over a decoded document. It returns every
// applicable diagnostic ordered by check priority, then document order;
// earlier findings never suppress later ones and the model is never
// mutated. Checks:
//
//  1. publicID uniqueness across the document
//  2. cross-reference resolvability (warnings: external registries are
//     legitimate targets)
//  3. uncertainty mutual exclusivity
//  4. enumeration membership against the closed vocabularies
//  5. range checks (uncertainty magnitudes, backazimuth)
func Validate(doc *EventParameters) quakedoc.Issues {
	if doc == nil {
		return nil
	}
	v := &validator{doc: doc}
	v.checkUniqueness()
	v.checkReferences()
	v.checkExclusivity()
	v.checkEnums()
	v.checkRanges()
	return v.issues
}

type validator struct {
	doc    *EventParameters
	issues quakedoc.Issues
}

func (v *validator) add(sev quakedoc.Severity, path, code, msg string, params map[string]any) {
	v.issues = quakedoc.AppendIssues(v.issues, quakedoc.Issue{
		Path: path, Code: code, Severity: sev, Message: msg, Params: params,
	})
}

// publicIDs yields every entity identity in document order.
func (v *validator) publicIDs(fn func(path string, id Identifier)) {
	if v.doc.PublicID != "" {
		fn("/", v.doc.PublicID)
	}
	for i := range v.doc.Picks {
		fn("/pick/"+strconv.Itoa(i), v.doc.Picks[i].PublicID)
	}
	for i := range v.doc.Events {
		fn("/event/"+strconv.Itoa(i), v.doc.Events[i].PublicID)
	}
}

func (v *validator) checkUniqueness() {
	first := make(map[Identifier]string)
	v.publicIDs(func(path string, id Identifier) {
		if prev, dup := first[id]; dup {
			v.add(quakedoc.Error, path, quakedoc.CodeUniqueness,
				fmt.Sprintf("publicID %q already used at %s", id, prev),
				map[string]any{"first": prev, "duplicate": path})
			return
		}
		first[id] = path
	})
}

// checkReferences warns about references that look document-internal (same
// naming authority as some publicID in this document) but resolve to no
// entity. References into other authorities are presumed to target external
// registries and pass silently.
func (v *validator) checkReferences() {
	ids := make(map[Identifier]bool)
	authorities := make(map[string]bool)
	v.publicIDs(func(_ string, id Identifier) {
		ids[id] = true
		if a := id.Authority(); a != "" {
			authorities[a] = true
		}
	})

	check := func(path string, ref *Identifier) {
		if ref == nil || ids[*ref] {
			return
		}
		if a := ref.Authority(); a != "" && authorities[a] {
			v.add(quakedoc.Warning, path, quakedoc.CodeUnresolvedRef,
				fmt.Sprintf("reference %q does not resolve within this document", *ref), nil)
		}
	}
	checkCreation := func(path string, ci *CreationInfo) {
		if ci == nil {
			return
		}
		check(path+"/agencyURI", ci.AgencyURI)
		check(path+"/authorURI", ci.AuthorURI)
	}
	checkComments := func(path string, comments []Comment) {
		for i := range comments {
			cp := path + "/comment/" + strconv.Itoa(i)
			check(cp+"/id", comments[i].ID)
			checkCreation(cp+"/creationInfo", comments[i].CreationInfo)
		}
	}

	for i := range v.doc.Picks {
		p := &v.doc.Picks[i]
		path := "/pick/" + strconv.Itoa(i)
		check(path+"/filterID", p.FilterID)
		check(path+"/methodID", p.MethodID)
		checkCreation(path+"/creationInfo", p.CreationInfo)
		checkComments(path, p.Comments)
	}
	for i := range v.doc.Events {
		e := &v.doc.Events[i]
		path := "/event/" + strconv.Itoa(i)
		check(path+"/preferredOriginID", e.PreferredOriginID)
		checkCreation(path+"/creationInfo", e.CreationInfo)
		checkComments(path, e.Comments)
	}
}

func (v *validator) checkExclusivity() {
	for i := range v.doc.Picks {
		p := &v.doc.Picks[i]
		path := "/pick/" + strconv.Itoa(i)
		if p.Time.Uncertainty.bothPresent() {
			v.add(quakedoc.Error, path+"/time", quakedoc.CodeConflict,
				"symmetric and asymmetric uncertainty must not both be present", nil)
		}
		if p.Backazimuth != nil && p.Backazimuth.Uncertainty.bothPresent() {
			v.add(quakedoc.Error, path+"/backazimuth", quakedoc.CodeConflict,
				"symmetric and asymmetric uncertainty must not both be present", nil)
		}
	}
}

func (v *validator) checkEnums() {
	for i := range v.doc.Picks {
		p := &v.doc.Picks[i]
		path := "/pick/" + strconv.Itoa(i)
		if p.Onset != nil && !p.Onset.Known() {
			v.enumWarning(path+"/onset", string(*p.Onset), "onset")
		}
		if p.Polarity != nil && !p.Polarity.Known() {
			v.enumWarning(path+"/polarity", string(*p.Polarity), "polarity")
		}
		if p.EvaluationMode != nil && !p.EvaluationMode.Known() {
			v.enumWarning(path+"/evaluationMode", string(*p.EvaluationMode), "evaluation mode")
		}
		if p.EvaluationStatus != nil && !p.EvaluationStatus.Known() {
			v.enumWarning(path+"/evaluationStatus", string(*p.EvaluationStatus), "evaluation status")
		}
	}
}

func (v *validator) enumWarning(path, raw, vocab string) {
	v.add(quakedoc.Warning, path, quakedoc.CodeInvalidEnum,
		fmt.Sprintf("%q is not in the %s vocabulary", raw, vocab),
		map[string]any{"got": raw})
}

func (v *validator) checkRanges() {
	for i := range v.doc.Picks {
		p := &v.doc.Picks[i]
		path := "/pick/" + strconv.Itoa(i)
		v.checkUncertaintyRange(path+"/time", p.Time.Uncertainty)
		if p.Backazimuth != nil {
			v.checkUncertaintyRange(path+"/backazimuth", p.Backazimuth.Uncertainty)
			if baz := p.Backazimuth.Value; baz < 0 || baz >= 360 {
				v.add(quakedoc.Error, path+"/backazimuth", quakedoc.CodeDomainRange,
					fmt.Sprintf("backazimuth %v outside [0, 360)", baz),
					map[string]any{"got": baz})
			}
		}
	}
}

func (v *validator) checkUncertaintyRange(path string, u Uncertainty) {
	switch u.Kind() {
	case UncertaintySymmetric:
		if u.Value() < 0 {
			v.add(quakedoc.Error, path+"/uncertainty", quakedoc.CodeDomainRange,
				fmt.Sprintf("uncertainty %v must be >= 0", u.Value()),
				map[string]any{"got": u.Value()})
		}
	case UncertaintyAsymmetric:
		lower, upper := u.Bounds()
		if lower < 0 {
			v.add(quakedoc.Error, path+"/lowerUncertainty", quakedoc.CodeDomainRange,
				fmt.Sprintf("uncertainty %v must be >= 0", lower),
				map[string]any{"got": lower})
		}
		if upper < 0 {
			v.add(quakedoc.Error, path+"/upperUncertainty", quakedoc.CodeDomainRange,
				fmt.Sprintf("uncertainty %v must be >= 0", upper),
				map[string]any{"got": upper})
		}
	}
}
