package catalog

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	quakedoc "github.com/reoring/quakedoc"
)

// Encode converts a model back into a tree-structured document. Absent
// optional fields produce no elements, repeated elements keep their stored
// order and the uncertainty variant actually populated is the one emitted.
// It fails only when the model violates the construction contract (nil
// document, a pick missing its mandatory fields), which Decode never
// produces.
func Encode(doc *EventParameters) (*quakedoc.Element, error) {
	if doc == nil {
		return nil, errors.New("catalog: nil document")
	}
	root := quakedoc.NewElement("eventParameters")
	if doc.PublicID != "" {
		root.SetAttr("publicID", string(doc.PublicID))
	}
	for i := range doc.Picks {
		el, err := encodePick(&doc.Picks[i])
		if err != nil {
			return nil, fmt.Errorf("catalog: pick %d: %w", i, err)
		}
		root.Append(el)
	}
	for i := range doc.Events {
		el, err := encodeEvent(&doc.Events[i])
		if err != nil {
			return nil, fmt.Errorf("catalog: event %d: %w", i, err)
		}
		root.Append(el)
	}
	return root, nil
}

func encodePick(p *Pick) (*quakedoc.Element, error) {
	if p.PublicID == "" {
		return nil, errors.New("missing publicID")
	}
	if p.Time.Value.IsZero() {
		return nil, errors.New("missing time value")
	}
	if p.WaveformID.Network == "" || p.WaveformID.Station == "" {
		return nil, errors.New("incomplete waveformID")
	}
	el := quakedoc.NewElement("pick").SetAttr("publicID", string(p.PublicID))
	el.Append(encodeTimeQuantity(p.Time))
	el.Append(encodeWaveformID(p.WaveformID))
	appendIdentifier(el, "filterID", p.FilterID)
	appendIdentifier(el, "methodID", p.MethodID)
	if p.Backazimuth != nil {
		el.Append(encodeRealQuantity("backazimuth", *p.Backazimuth))
	}
	appendEnum(el, "onset", p.Onset)
	appendText(el, "phaseHint", p.PhaseHint)
	appendEnum(el, "polarity", p.Polarity)
	appendEnum(el, "evaluationMode", p.EvaluationMode)
	appendEnum(el, "evaluationStatus", p.EvaluationStatus)
	appendCreationInfo(el, p.CreationInfo)
	appendComments(el, p.Comments)
	return el, nil
}

func encodeEvent(e *Event) (*quakedoc.Element, error) {
	if e.PublicID == "" {
		return nil, errors.New("missing publicID")
	}
	el := quakedoc.NewElement("event").SetAttr("publicID", string(e.PublicID))
	appendIdentifier(el, "preferredOriginID", e.PreferredOriginID)
	appendCreationInfo(el, e.CreationInfo)
	appendComments(el, e.Comments)
	return el, nil
}

func encodeTimeQuantity(t TimeQuantity) *quakedoc.Element {
	el := quakedoc.NewElement("time")
	el.Append(textElement("value", formatTimestamp(t.Value)))
	appendUncertainty(el, t.Uncertainty)
	return el
}

func encodeRealQuantity(name string, r RealQuantity) *quakedoc.Element {
	el := quakedoc.NewElement(name)
	el.Append(textElement("value", formatFloat(r.Value)))
	appendUncertainty(el, r.Uncertainty)
	return el
}

func appendUncertainty(el *quakedoc.Element, u Uncertainty) {
	switch u.Kind() {
	case UncertaintySymmetric:
		el.Append(textElement("uncertainty", formatFloat(u.Value())))
	case UncertaintyAsymmetric:
		lower, upper := u.Bounds()
		el.Append(textElement("lowerUncertainty", formatFloat(lower)))
		el.Append(textElement("upperUncertainty", formatFloat(upper)))
	}
}

func encodeWaveformID(w WaveformStreamID) *quakedoc.Element {
	el := quakedoc.NewElement("waveformID").
		SetAttr("networkCode", w.Network).
		SetAttr("stationCode", w.Station)
	if w.Channel != nil {
		el.SetAttr("channelCode", *w.Channel)
	}
	if w.Location != nil {
		el.SetAttr("locationCode", *w.Location)
	}
	if w.ResourceURI != nil {
		el.Text = string(*w.ResourceURI)
	}
	return el
}

func appendCreationInfo(el *quakedoc.Element, ci *CreationInfo) {
	if ci == nil {
		return
	}
	c := quakedoc.NewElement("creationInfo")
	appendText(c, "agencyID", ci.AgencyID)
	appendIdentifier(c, "agencyURI", ci.AgencyURI)
	appendText(c, "author", ci.Author)
	appendIdentifier(c, "authorURI", ci.AuthorURI)
	if ci.CreationTime != nil {
		c.Append(textElement("creationTime", formatTimestamp(*ci.CreationTime)))
	}
	appendText(c, "version", ci.Version)
	el.Append(c)
}

func appendComments(el *quakedoc.Element, comments []Comment) {
	for i := range comments {
		cm := &comments[i]
		c := quakedoc.NewElement("comment")
		if cm.ID != nil {
			c.SetAttr("id", string(*cm.ID))
		}
		if cm.Text != "" {
			c.Append(textElement("text", cm.Text))
		}
		appendCreationInfo(c, cm.CreationInfo)
		el.Append(c)
	}
}

// ---- element helpers ----

func textElement(name, text string) *quakedoc.Element {
	el := quakedoc.NewElement(name)
	el.Text = text
	return el
}

func appendText(el *quakedoc.Element, name string, v *string) {
	if v != nil {
		el.Append(textElement(name, *v))
	}
}

func appendIdentifier(el *quakedoc.Element, name string, v *Identifier) {
	if v != nil {
		el.Append(textElement(name, string(*v)))
	}
}

func appendEnum[T ~string](el *quakedoc.Element, name string, v *T) {
	if v != nil {
		el.Append(textElement(name, string(*v)))
	}
}

// formatTimestamp renders canonical UTC RFC3339 with trailing zeros trimmed,
// preserving whatever sub-second precision the value carries.
func formatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
