package quakedoc

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	CodeInvalidType   = "invalid_type"
	CodeRequired      = "required"
	CodeInvalidEnum   = "invalid_enum"
	CodeInvalidFormat = "invalid_format"
	CodeParseError    = "parse_error"
	CodeTruncated     = "truncated"
	// Semantic checks over a decoded catalog
	CodeUniqueness    = "uniqueness"
	CodeDomainRange   = "domain_range"
	CodeConflict      = "conflict"
	CodeUnresolvedRef = "unresolved_ref"
)

// Severity expresses the severity level for issues. Errors indicate a
// violation of the schema's semantic contract; warnings are departures
// tolerated for interoperability; info notes intentional lossy choices made
// during decoding.
type Severity int

const (
	Info Severity = iota
	Warning
	Error
)

func (s Severity) String() string {
	switch s {
	case Info:
		return "info"
	case Warning:
		return "warning"
	case Error:
		return "error"
	default:
		return fmt.Sprintf("severity(%d)", int(s))
	}
}

// Issue represents a single diagnostic entry.
type Issue struct {
	Path     string // Slash path to the entity (for example: /pick/1/time).
	Code     string // One of the codes listed above.
	Severity Severity
	Message  string
	Hint     string // Optional: remediation hints, vocabulary names, etc.
	Cause    error  // Optional: underlying error.
	// Params carries structured parameters (e.g., {"got": -0.5}) for
	// observability.
	Params map[string]any
}

// Issues is a collection of diagnostics that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. invalid_enum at /pick/0/polarity
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// HasError reports whether any issue carries error severity. Callers gating
// on diagnostics (reject vs. log) branch on this.
func (iss Issues) HasError() bool {
	for _, it := range iss {
		if it.Severity == Error {
			return true
		}
	}
	return false
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// StructuralError reports that one top-level entity did not parse into the
// shape of the schema (missing mandatory field, wrong value type). It is
// scoped to the entity named by Path; siblings decode independently.
type StructuralError struct {
	Path    string // Slash path to the offending entity (document order index).
	Field   string // Missing or malformed field, when known.
	Message string
}

func (e StructuralError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s: %s", e.Path, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// StructuralErrors is the per-entity error list returned alongside a
// best-effort model.
type StructuralErrors []StructuralError

func (es StructuralErrors) Error() string {
	if len(es) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	lim := len(es)
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(es[i].Error())
	}
	if len(es) > lim {
		fmt.Fprintf(b, "; ... (total %d)", len(es))
	}
	return b.String()
}
