// Package check validates cross-references between the edition documents:
// person/location refs in the metadata, letter identities, hand/edit/app
// refs, intlink and marginal anchors against the merged location map, and
// commentary links against the register pools.
package check

// Violation is a single detected integrity defect. Line is 0 when the
// source position could not be determined.
type Violation struct {
	File    string
	Line    int
	Message string
}

// Accumulator gathers violations across all checks. Append-only; order is
// detection order and no deduplication happens, so a document with five
// dangling references yields five records.
type Accumulator struct {
	violations []Violation
}

// NewAccumulator returns an empty accumulator.
func NewAccumulator() *Accumulator {
	return &Accumulator{}
}

// Add appends one violation.
func (a *Accumulator) Add(file string, line int, message string) {
	a.violations = append(a.violations, Violation{File: file, Line: line, Message: message})
}

// Violations returns the accumulated violations in detection order.
func (a *Accumulator) Violations() []Violation {
	return a.violations
}

// Empty reports whether no violation was recorded.
func (a *Accumulator) Empty() bool {
	return len(a.violations) == 0
}

// Len returns the number of recorded violations.
func (a *Accumulator) Len() int {
	return len(a.violations)
}
