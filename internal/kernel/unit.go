// Package kernel implements the unit and inference store (component B
// of the proof core): the mapping from unit-number to Unit, parent
// iteration, and the bookkeeping the interpolant minimizer mutates
// while walking the proof DAG.
package kernel

import (
	"strconv"

	"github.com/proofcore/proofcore/internal/term"
)

// UnitNumber is the globally unique, monotonically assigned number
// every Unit carries. Parents are always earlier-numbered units, so a
// DAG walk keyed purely by number never needs cycle detection.
type UnitNumber uint64

// InputType tags how a unit entered the proof.
type InputType int

const (
	AXIOM InputType = iota
	ASSUMPTION
	LEMMA
	CONJECTURE
)

func (t InputType) String() string {
	switch t {
	case AXIOM:
		return "axiom"
	case ASSUMPTION:
		return "assumption"
	case LEMMA:
		return "lemma"
	case CONJECTURE:
		return "conjecture"
	default:
		return "unknown"
	}
}

// UnitKind discriminates the Clause/FormulaUnit tagged union.
type UnitKind int

const (
	ClauseKind UnitKind = iota
	FormulaKind
)

// TraceMarks holds the mutable per-unit bookkeeping the interpolant
// minimizer's DAG traversal fills in. Reference count and these trace
// marks are the only fields of a published unit that ever change.
type TraceMarks struct {
	LeadsToColor          bool
	IsParentOfLeft        bool
	IsParentOfRight       bool
	LeftSuccessors        []UnitNumber
	RightSuccessors       []UnitNumber
	TransparentSuccessors []UnitNumber
	InputInheritedColor   term.Color
	visited               bool // internal: unused; Traverse keeps its own visited set
}

// Unit is the tagged union of Clause and FormulaUnit.
type Unit interface {
	Number() UnitNumber
	Kind() UnitKind
	InputType() InputType
	Color() term.Color
	Inference() *Inference
	Trace() *TraceMarks
	// IDString returns the stable textual identifier suitable as a
	// key for the minimization encoding.
	IDString() string
}

// idString is shared by Clause and FormulaUnit.
func idString(n UnitNumber) string {
	return strconv.FormatUint(uint64(n), 10)
}

// Inference records the rule that produced a unit, its ordered
// parents (by unit number), and rule-specific auxiliary data.
// Inferences form the proof DAG.
type Inference struct {
	Rule    string
	Parents []UnitNumber
	Aux     any
}
