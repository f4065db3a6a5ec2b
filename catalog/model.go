// Package catalog models one EventParameters document and the pure
// transformations over it: Decode (tree to model), Validate (model to
// diagnostics) and Encode (model to tree). Decoded models are snapshots;
// nothing in this package mutates one after Decode returns.
package catalog

import (
	"strings"
	"time"
)

// Identifier is an opaque, globally-unique URI-like token. It serves both as
// an entity's public identity and as a weak cross-reference to another
// entity; resolution is a validator concern, never an ownership edge.
type Identifier string

func (id Identifier) String() string { return string(id) }

// Authority extracts the naming authority of a smi:/quakeml: style
// identifier, the segment between the scheme and the first path slash.
// Returns "" when the token has no recognizable authority.
func (id Identifier) Authority() string {
	s := string(id)
	i := strings.IndexByte(s, ':')
	if i < 0 {
		return ""
	}
	rest := s[i+1:]
	if j := strings.IndexByte(rest, '/'); j >= 0 {
		rest = rest[:j]
	}
	return rest
}

// WaveformStreamID identifies the data channel a pick was measured on.
// Network and station are mandatory non-empty tokens; the rest is optional.
type WaveformStreamID struct {
	Network     string
	Station     string
	Channel     *string
	Location    *string
	ResourceURI *Identifier
}

func (w WaveformStreamID) Equal(o WaveformStreamID) bool {
	return w.Network == o.Network &&
		w.Station == o.Station &&
		ptrEqual(w.Channel, o.Channel) &&
		ptrEqual(w.Location, o.Location) &&
		ptrEqual(w.ResourceURI, o.ResourceURI)
}

// CreationInfo is the provenance block attachable to most entities. Every
// field is optional; a fully absent block is a nil *CreationInfo.
type CreationInfo struct {
	AgencyID     *string
	AgencyURI    *Identifier
	Author       *string
	AuthorURI    *Identifier
	CreationTime *time.Time
	Version      *string
}

func (c *CreationInfo) Equal(o *CreationInfo) bool {
	if c == nil || o == nil {
		return c == nil && o == nil
	}
	return ptrEqual(c.AgencyID, o.AgencyID) &&
		ptrEqual(c.AgencyURI, o.AgencyURI) &&
		ptrEqual(c.Author, o.Author) &&
		ptrEqual(c.AuthorURI, o.AuthorURI) &&
		timePtrEqual(c.CreationTime, o.CreationTime) &&
		ptrEqual(c.Version, o.Version)
}

// Comment is a free-text annotation. Multiple comments without an ID are
// legal and distinguished only by position, so holders keep them as ordered
// slices, never sets.
type Comment struct {
	ID           *Identifier
	Text         string
	CreationInfo *CreationInfo
}

func (c Comment) Equal(o Comment) bool {
	return ptrEqual(c.ID, o.ID) && c.Text == o.Text && c.CreationInfo.Equal(o.CreationInfo)
}

// Pick is a single timed detection of a seismic phase arrival on one
// waveform channel.
type Pick struct {
	PublicID   Identifier
	Time       TimeQuantity
	WaveformID WaveformStreamID

	FilterID         *Identifier
	MethodID         *Identifier
	Backazimuth      *RealQuantity
	Onset            *Onset
	PhaseHint        *string
	Polarity         *Polarity
	EvaluationMode   *EvaluationMode
	EvaluationStatus *EvaluationStatus
	CreationInfo     *CreationInfo
	Comments         []Comment
}

func (p Pick) Equal(o Pick) bool {
	if p.PublicID != o.PublicID ||
		!p.Time.Equal(o.Time) ||
		!p.WaveformID.Equal(o.WaveformID) ||
		!ptrEqual(p.FilterID, o.FilterID) ||
		!ptrEqual(p.MethodID, o.MethodID) ||
		!ptrEqual(p.Onset, o.Onset) ||
		!ptrEqual(p.PhaseHint, o.PhaseHint) ||
		!ptrEqual(p.Polarity, o.Polarity) ||
		!ptrEqual(p.EvaluationMode, o.EvaluationMode) ||
		!ptrEqual(p.EvaluationStatus, o.EvaluationStatus) ||
		!p.CreationInfo.Equal(o.CreationInfo) {
		return false
	}
	if (p.Backazimuth == nil) != (o.Backazimuth == nil) {
		return false
	}
	if p.Backazimuth != nil && !p.Backazimuth.Equal(*o.Backazimuth) {
		return false
	}
	return commentsEqual(p.Comments, o.Comments)
}

// Event is an aggregate seismic occurrence. In the general schema it
// references associated picks and origins; the exchange subset carries its
// identity, an optional preferred origin reference and annotations.
type Event struct {
	PublicID          Identifier
	PreferredOriginID *Identifier
	CreationInfo      *CreationInfo
	Comments          []Comment
}

func (e Event) Equal(o Event) bool {
	return e.PublicID == o.PublicID &&
		ptrEqual(e.PreferredOriginID, o.PreferredOriginID) &&
		e.CreationInfo.Equal(o.CreationInfo) &&
		commentsEqual(e.Comments, o.Comments)
}

// EventParameters is the document root. It exclusively owns the contained
// entities for the lifetime of one decoded document; entities point at each
// other only by Identifier value.
type EventParameters struct {
	PublicID Identifier
	Picks    []Pick
	Events   []Event
}

// Equal compares two documents field-for-field with ordering preserved.
// Decode diagnostics and uncertainty tie-break provenance are not part of
// the model and do not participate.
func (d *EventParameters) Equal(o *EventParameters) bool {
	if d == nil || o == nil {
		return d == nil && o == nil
	}
	if d.PublicID != o.PublicID || len(d.Picks) != len(o.Picks) || len(d.Events) != len(o.Events) {
		return false
	}
	for i := range d.Picks {
		if !d.Picks[i].Equal(o.Picks[i]) {
			return false
		}
	}
	for i := range d.Events {
		if !d.Events[i].Equal(o.Events[i]) {
			return false
		}
	}
	return true
}

func commentsEqual(a, b []Comment) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

func ptrEqual[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func timePtrEqual(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}
