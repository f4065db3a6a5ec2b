package catalog

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	quakedoc "github.com/reoring/quakedoc"
)

// Result is the decode outcome. Decode never aborts the whole document on
// one bad entity: Doc is the best-effort model, Structural lists the
// entities that failed to take the schema's shape, Issues carries the
// decode-time diagnostics the validator cannot reconstruct from the model
// (offset-bearing timestamps, the uncertainty tie-break note).
type Result struct {
	Doc        *EventParameters
	Structural quakedoc.StructuralErrors
	Issues     quakedoc.Issues
}

// Decode converts a tree-structured document into an EventParameters model.
// A "quakeml" wrapper element is unwrapped transparently.
func Decode(root *quakedoc.Element) Result {
	d := &decoder{}
	doc := &EventParameters{}
	if root != nil && root.Name == "quakeml" {
		root = root.Child("eventParameters")
	}
	if root == nil || root.Name != "eventParameters" {
		d.structuralf("/", "", "missing eventParameters root element")
		return Result{Doc: doc, Structural: d.structural, Issues: d.issues}
	}

	if id, ok := root.Attr("publicID"); ok && id != "" {
		doc.PublicID = Identifier(id)
	} else {
		d.structuralf("/", "publicID", "missing required attribute")
	}

	for i, el := range root.ChildrenNamed("pick") {
		path := "/pick/" + strconv.Itoa(i)
		if p, ok := d.decodePick(el, path); ok {
			doc.Picks = append(doc.Picks, p)
		}
	}
	for i, el := range root.ChildrenNamed("event") {
		path := "/event/" + strconv.Itoa(i)
		if ev, ok := d.decodeEvent(el, path); ok {
			doc.Events = append(doc.Events, ev)
		}
	}
	return Result{Doc: doc, Structural: d.structural, Issues: d.issues}
}

type decoder struct {
	structural quakedoc.StructuralErrors
	issues     quakedoc.Issues
}

func (d *decoder) structuralf(path, field, format string, args ...any) {
	d.structural = append(d.structural, quakedoc.StructuralError{
		Path:    path,
		Field:   field,
		Message: fmt.Sprintf(format, args...),
	})
}

func (d *decoder) warn(path, code, msg string) {
	d.issues = quakedoc.AppendIssues(d.issues, quakedoc.Issue{
		Path: path, Code: code, Severity: quakedoc.Warning, Message: msg,
	})
}

func (d *decoder) info(path, code, msg string) {
	d.issues = quakedoc.AppendIssues(d.issues, quakedoc.Issue{
		Path: path, Code: code, Severity: quakedoc.Info, Message: msg,
	})
}

// decodePick returns ok=false when the element misses a mandatory field; the
// structural error is recorded and siblings decode unaffected.
func (d *decoder) decodePick(el *quakedoc.Element, path string) (Pick, bool) {
	var p Pick
	id, ok := el.Attr("publicID")
	if !ok || id == "" {
		d.structuralf(path, "publicID", "missing required attribute")
		return p, false
	}
	p.PublicID = Identifier(id)

	timeEl := el.Child("time")
	if timeEl == nil {
		d.structuralf(path, "time", "missing required element")
		return p, false
	}
	tq, ok := d.decodeTimeQuantity(timeEl, path+"/time", path)
	if !ok {
		return p, false
	}
	p.Time = tq

	wfEl := el.Child("waveformID")
	if wfEl == nil {
		d.structuralf(path, "waveformID", "missing required element")
		return p, false
	}
	wf, ok := d.decodeWaveformID(wfEl, path)
	if !ok {
		return p, false
	}
	p.WaveformID = wf

	p.FilterID = optIdentifier(el, "filterID")
	p.MethodID = optIdentifier(el, "methodID")
	if bazEl := el.Child("backazimuth"); bazEl != nil {
		if rq, ok := d.decodeRealQuantity(bazEl, path+"/backazimuth"); ok {
			p.Backazimuth = &rq
		}
	}
	p.Onset = optEnum[Onset](el, "onset")
	p.PhaseHint = optText(el, "phaseHint")
	p.Polarity = optEnum[Polarity](el, "polarity")
	p.EvaluationMode = optEnum[EvaluationMode](el, "evaluationMode")
	p.EvaluationStatus = optEnum[EvaluationStatus](el, "evaluationStatus")
	p.CreationInfo = d.decodeCreationInfo(el.Child("creationInfo"), path+"/creationInfo")
	p.Comments = d.decodeComments(el, path)
	return p, true
}

func (d *decoder) decodeEvent(el *quakedoc.Element, path string) (Event, bool) {
	var ev Event
	id, ok := el.Attr("publicID")
	if !ok || id == "" {
		d.structuralf(path, "publicID", "missing required attribute")
		return ev, false
	}
	ev.PublicID = Identifier(id)
	ev.PreferredOriginID = optIdentifier(el, "preferredOriginID")
	ev.CreationInfo = d.decodeCreationInfo(el.Child("creationInfo"), path+"/creationInfo")
	ev.Comments = d.decodeComments(el, path)
	return ev, true
}

// decodeTimeQuantity requires a parsable <value>. When the symmetric and
// asymmetric uncertainty groups are both present the symmetric form wins
// deterministically; the tie-break is flagged on the value (validator raises
// the error) and noted as an info diagnostic here.
func (d *decoder) decodeTimeQuantity(el *quakedoc.Element, path, entityPath string) (TimeQuantity, bool) {
	var tq TimeQuantity
	raw, ok := el.ChildText("value")
	if !ok || raw == "" {
		d.structuralf(entityPath, "time/value", "missing required element")
		return tq, false
	}
	t, hadOffset, err := parseTimestamp(raw)
	if err != nil {
		d.structuralf(entityPath, "time/value", "invalid timestamp %q", raw)
		return tq, false
	}
	if hadOffset {
		d.warn(path+"/value", quakedoc.CodeInvalidFormat, "timestamp carries a UTC offset; normalized to UTC")
	}
	tq.Value = t

	u, tiebreak, uerr := parseUncertainty(el)
	if uerr != nil {
		d.structuralf(entityPath, "time/"+uerr.field, "%s", uerr.msg)
		return tq, false
	}
	if tiebreak {
		d.info(path, quakedoc.CodeConflict, "both uncertainty forms present; symmetric value takes precedence")
	}
	tq.Uncertainty = u
	return tq, true
}

// decodeRealQuantity is tolerant: a malformed optional quantity drops the
// field with a warning instead of aborting the entity.
func (d *decoder) decodeRealQuantity(el *quakedoc.Element, path string) (RealQuantity, bool) {
	var rq RealQuantity
	raw, ok := el.ChildText("value")
	if !ok || raw == "" {
		d.warn(path, quakedoc.CodeInvalidType, "quantity has no value; field dropped")
		return rq, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		d.warn(path+"/value", quakedoc.CodeInvalidType, fmt.Sprintf("invalid number %q; field dropped", raw))
		return rq, false
	}
	rq.Value = v
	u, tiebreak, uerr := parseUncertainty(el)
	if uerr != nil {
		// uncertainty on an optional quantity: drop the descriptor, keep the value
		d.warn(path+"/"+uerr.field, quakedoc.CodeInvalidType, uerr.msg+"; uncertainty dropped")
		return rq, true
	}
	if tiebreak {
		d.info(path, quakedoc.CodeConflict, "both uncertainty forms present; symmetric value takes precedence")
	}
	rq.Uncertainty = u
	return rq, true
}

type uncertaintyError struct {
	field string
	msg   string
}

// parseUncertainty reads the positional variant: <uncertainty> for the
// symmetric form, <lowerUncertainty>/<upperUncertainty> for the asymmetric
// one. When both groups are present the symmetric value wins and tiebreak is
// reported so callers can note the choice.
func parseUncertainty(el *quakedoc.Element) (u Uncertainty, tiebreak bool, _ *uncertaintyError) {
	symRaw, hasSym := el.ChildText("uncertainty")
	lowRaw, hasLow := el.ChildText("lowerUncertainty")
	upRaw, hasUp := el.ChildText("upperUncertainty")

	var sym, low, up float64
	var err error
	if hasSym {
		if sym, err = strconv.ParseFloat(symRaw, 64); err != nil {
			return u, false, &uncertaintyError{field: "uncertainty", msg: fmt.Sprintf("invalid number %q", symRaw)}
		}
	}
	if hasLow {
		if low, err = strconv.ParseFloat(lowRaw, 64); err != nil {
			return u, false, &uncertaintyError{field: "lowerUncertainty", msg: fmt.Sprintf("invalid number %q", lowRaw)}
		}
	}
	if hasUp {
		if up, err = strconv.ParseFloat(upRaw, 64); err != nil {
			return u, false, &uncertaintyError{field: "upperUncertainty", msg: fmt.Sprintf("invalid number %q", upRaw)}
		}
	}

	switch {
	case hasSym && (hasLow || hasUp):
		return SymmetricUncertainty(sym).withBothPresent(), true, nil
	case hasSym:
		return SymmetricUncertainty(sym), false, nil
	case hasLow && hasUp:
		return AsymmetricUncertainty(low, up), false, nil
	case hasLow || hasUp:
		return u, false, &uncertaintyError{field: "lowerUncertainty", msg: "asymmetric uncertainty requires both bounds"}
	default:
		return u, false, nil
	}
}

func (d *decoder) decodeWaveformID(el *quakedoc.Element, entityPath string) (WaveformStreamID, bool) {
	var wf WaveformStreamID
	net, _ := el.Attr("networkCode")
	sta, _ := el.Attr("stationCode")
	wf.Network = trimToken(net)
	wf.Station = trimToken(sta)
	if wf.Network == "" {
		d.structuralf(entityPath, "waveformID/networkCode", "missing required attribute")
		return wf, false
	}
	if wf.Station == "" {
		d.structuralf(entityPath, "waveformID/stationCode", "missing required attribute")
		return wf, false
	}
	if ch, ok := el.Attr("channelCode"); ok && trimToken(ch) != "" {
		c := trimToken(ch)
		wf.Channel = &c
	}
	if loc, ok := el.Attr("locationCode"); ok && trimToken(loc) != "" {
		l := trimToken(loc)
		wf.Location = &l
	}
	if uri := el.TrimText(); uri != "" {
		r := Identifier(uri)
		wf.ResourceURI = &r
	}
	return wf, true
}

// decodeCreationInfo returns nil for an absent block. Every field is
// optional; a malformed creationTime drops the field with a warning.
func (d *decoder) decodeCreationInfo(el *quakedoc.Element, path string) *CreationInfo {
	if el == nil {
		return nil
	}
	ci := &CreationInfo{
		AgencyID:  optText(el, "agencyID"),
		AgencyURI: optIdentifier(el, "agencyURI"),
		Author:    optText(el, "author"),
		AuthorURI: optIdentifier(el, "authorURI"),
		Version:   optText(el, "version"),
	}
	if raw, ok := el.ChildText("creationTime"); ok && raw != "" {
		t, hadOffset, err := parseTimestamp(raw)
		if err != nil {
			d.warn(path+"/creationTime", quakedoc.CodeInvalidFormat, fmt.Sprintf("invalid timestamp %q; field dropped", raw))
		} else {
			if hadOffset {
				d.warn(path+"/creationTime", quakedoc.CodeInvalidFormat, "timestamp carries a UTC offset; normalized to UTC")
			}
			ci.CreationTime = &t
		}
	}
	return ci
}

func (d *decoder) decodeComments(el *quakedoc.Element, entityPath string) []Comment {
	var out []Comment
	for i, c := range el.ChildrenNamed("comment") {
		var cm Comment
		if id, ok := c.Attr("id"); ok && id != "" {
			ident := Identifier(id)
			cm.ID = &ident
		}
		cm.Text, _ = c.ChildText("text")
		cm.CreationInfo = d.decodeCreationInfo(c.Child("creationInfo"),
			entityPath+"/comment/"+strconv.Itoa(i)+"/creationInfo")
		out = append(out, cm)
	}
	return out
}

// ---- field helpers ----

func optText(el *quakedoc.Element, name string) *string {
	s, ok := el.ChildText(name)
	if !ok || s == "" {
		return nil
	}
	return &s
}

func optIdentifier(el *quakedoc.Element, name string) *Identifier {
	s, ok := el.ChildText(name)
	if !ok || s == "" {
		return nil
	}
	id := Identifier(s)
	return &id
}

func optEnum[T ~string](el *quakedoc.Element, name string) *T {
	s, ok := el.ChildText(name)
	if !ok || s == "" {
		return nil
	}
	v := T(s)
	return &v
}

func trimToken(s string) string {
	return strings.TrimSpace(s)
}

// parseTimestamp accepts RFC3339 with optional fractional seconds, reports
// whether the input spelled a numeric UTC offset and normalizes to UTC with
// sub-second precision intact. The offset is read off the raw text: "+00:00"
// is an offset spelling even though its instant already is UTC.
func parseTimestamp(s string) (time.Time, bool, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		t2, err2 := time.Parse(time.RFC3339, s)
		if err2 != nil {
			return time.Time{}, false, err
		}
		t = t2
	}
	return t.UTC(), !strings.HasSuffix(s, "Z"), nil
}
