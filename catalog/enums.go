package catalog

// Open enumerations. Raw input text is retained verbatim so
// forward-compatible catalogs survive a round trip; Known reports membership
// in the closed vocabulary and the validator downgrades unknown values to
// warnings instead of rejecting them.

// Onset describes how sharply a phase arrival emerges from the noise.
type Onset string

const (
	OnsetImpulsive    Onset = "impulsive"
	OnsetEmergent     Onset = "emergent"
	OnsetQuestionable Onset = "questionable"
)

func (o Onset) Known() bool {
	switch o {
	case OnsetImpulsive, OnsetEmergent, OnsetQuestionable:
		return true
	}
	return false
}

// Polarity is the first-motion direction of a pick.
type Polarity string

const (
	PolarityPositive    Polarity = "positive"
	PolarityNegative    Polarity = "negative"
	PolarityUndecidable Polarity = "undecidable"
)

func (p Polarity) Known() bool {
	switch p {
	case PolarityPositive, PolarityNegative, PolarityUndecidable:
		return true
	}
	return false
}

// EvaluationMode records whether an entity was produced by a human or a
// machine.
type EvaluationMode string

const (
	EvaluationManual    EvaluationMode = "manual"
	EvaluationAutomatic EvaluationMode = "automatic"
)

func (m EvaluationMode) Known() bool {
	switch m {
	case EvaluationManual, EvaluationAutomatic:
		return true
	}
	return false
}

// EvaluationStatus records the review state of an entity.
type EvaluationStatus string

const (
	StatusPreliminary EvaluationStatus = "preliminary"
	StatusConfirmed   EvaluationStatus = "confirmed"
	StatusReviewed    EvaluationStatus = "reviewed"
	StatusFinal       EvaluationStatus = "final"
	StatusRejected    EvaluationStatus = "rejected"
	StatusReported    EvaluationStatus = "reported"
)

func (s EvaluationStatus) Known() bool {
	switch s {
	case StatusPreliminary, StatusConfirmed, StatusReviewed, StatusFinal, StatusRejected, StatusReported:
		return true
	}
	return false
}
