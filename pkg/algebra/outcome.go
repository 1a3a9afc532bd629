package algebra

// Kind tags an Outcome. Exactly one kind applies to every request.
type Kind string

const (
	// KindSolved: at least one solution candidate was found.
	KindSolved Kind = "solved"

	// KindNoSolution: the system provably has no solution.
	KindNoSolution Kind = "no_solution"

	// KindIndeterminate: infinitely many solutions, or uniqueness
	// could not be determined.
	KindIndeterminate Kind = "indeterminate"

	// KindUnsupported: the system's mathematical structure is beyond
	// the engine.
	KindUnsupported Kind = "unsupported"

	// KindInputError: the request was malformed before solving was
	// attempted.
	KindInputError Kind = "input_error"

	// KindInternalError: an unanticipated failure during solving.
	KindInternalError Kind = "internal_error"
)

// Outcome is the single tagged result of a solve request. Candidates is
// non-empty exactly when Kind is KindSolved; every other kind carries a
// human-readable Message instead.
type Outcome struct {
	Kind       Kind        `json:"kind"`
	Candidates []Candidate `json:"candidates,omitempty"`
	Message    string      `json:"message,omitempty"`
}

// Solved reports whether the outcome carries solution candidates.
func (o Outcome) Solved() bool { return o.Kind == KindSolved }

// Failed reports whether the outcome represents a request the caller
// must correct or a defect to investigate, as opposed to a legitimate
// mathematical result (no solution and indeterminate are results, not
// failures).
func (o Outcome) Failed() bool {
	switch o.Kind {
	case KindUnsupported, KindInputError, KindInternalError:
		return true
	}
	return false
}
