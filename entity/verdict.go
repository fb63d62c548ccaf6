package entity

// Verdict is the three-valued outcome of a file comparison.
// Indeterminate is a valid result, not an error: it means neither side had
// loaded content to compare.
type Verdict int

const (
	// VerdictIndeterminate means the comparison could not be decided
	// because content was not loaded on both sides.
	VerdictIndeterminate Verdict = iota
	// VerdictMismatch means the compared entities differ.
	VerdictMismatch
	// VerdictMatch means the compared entities are byte-identical.
	VerdictMatch
)

// String returns a string representation of the Verdict.
func (v Verdict) String() string {
	switch v {
	case VerdictMatch:
		return "match"
	case VerdictMismatch:
		return "mismatch"
	default:
		return "indeterminate"
	}
}
