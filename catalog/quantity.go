package catalog

import "time"

// UncertaintyKind tags the variant held by an Uncertainty.
type UncertaintyKind int

const (
	UncertaintyNone       UncertaintyKind = iota // Uncertainty unknown.
	UncertaintySymmetric                         // Single magnitude applied in both directions.
	UncertaintyAsymmetric                        // Independent lower/upper bounds.
)

// Uncertainty models a quantity's error bounds as a tagged variant. The
// source format expresses the choice positionally (which elements are
// present); in memory the tag is explicit so the encoder can re-emit exactly
// the form that was populated and never invent one. The zero value means
// "unknown".
type Uncertainty struct {
	kind  UncertaintyKind
	value float64
	lower float64
	upper float64
	// both records that the input carried the symmetric and asymmetric forms
	// at once and the symmetric one won the tie-break. Provenance for the
	// validator only: Equal ignores it and the encoder never consults it.
	both bool
}

// SymmetricUncertainty returns a single-magnitude uncertainty.
func SymmetricUncertainty(v float64) Uncertainty {
	return Uncertainty{kind: UncertaintySymmetric, value: v}
}

// AsymmetricUncertainty returns an uncertainty with independent bounds.
func AsymmetricUncertainty(lower, upper float64) Uncertainty {
	return Uncertainty{kind: UncertaintyAsymmetric, lower: lower, upper: upper}
}

// Kind returns the populated variant.
func (u Uncertainty) Kind() UncertaintyKind { return u.kind }

// Value returns the symmetric magnitude. Meaningful only for
// UncertaintySymmetric.
func (u Uncertainty) Value() float64 { return u.value }

// Bounds returns the asymmetric lower/upper bounds. Meaningful only for
// UncertaintyAsymmetric.
func (u Uncertainty) Bounds() (lower, upper float64) { return u.lower, u.upper }

// withBothPresent marks the tie-break provenance flag. Used by the decoder
// when an input carries both forms.
func (u Uncertainty) withBothPresent() Uncertainty {
	u.both = true
	return u
}

// bothPresent reports the tie-break provenance flag for the validator.
func (u Uncertainty) bothPresent() bool { return u.both }

// Equal compares variants field-for-field, excluding provenance.
func (u Uncertainty) Equal(o Uncertainty) bool {
	if u.kind != o.kind {
		return false
	}
	switch u.kind {
	case UncertaintySymmetric:
		return u.value == o.value
	case UncertaintyAsymmetric:
		return u.lower == o.lower && u.upper == o.upper
	default:
		return true
	}
}

// TimeQuantity is a timestamp with an uncertainty descriptor. Value is
// always UTC with sub-second precision preserved.
type TimeQuantity struct {
	Value       time.Time
	Uncertainty Uncertainty
}

// Equal compares instants and uncertainty variants.
func (t TimeQuantity) Equal(o TimeQuantity) bool {
	return t.Value.Equal(o.Value) && t.Uncertainty.Equal(o.Uncertainty)
}

// RealQuantity is a floating-point measurement with an uncertainty
// descriptor. Value-only quantities leave the variant at UncertaintyNone.
type RealQuantity struct {
	Value       float64
	Uncertainty Uncertainty
}

// Equal compares values and uncertainty variants.
func (r RealQuantity) Equal(o RealQuantity) bool {
	return r.Value == o.Value && r.Uncertainty.Equal(o.Uncertainty)
}
