// Package smt wraps a weighted boolean minimization backend behind a
// small interface. GiniBackend, the one real implementation, reduces
// "assign booleans to named problem elements subject to named
// constraints, minimizing a weighted objective" onto
// github.com/irifrance/gini's logic.C circuit builder and CardSort
// cardinality network.
package smt

import "context"

// Lit is an opaque boolean variable (or derived circuit node) handle.
// Backend implementations hand these out from NewLit/And/Or/Not; a
// caller never inspects their internals, only threads them back into
// later Backend calls.
type Lit struct{ id int32 }

// WeightedLit is one term of a weighted-sum objective: weight(c) * V(c)
// from a cost function over named components.
type WeightedLit struct {
	Lit    Lit
	Weight int
}

// Outcome classifies how MinimizeWeighted's search concluded.
type Outcome int

const (
	// Unsat: the asserted formula has no satisfying assignment.
	Unsat Outcome = iota
	// Optimal: Model minimizes the weighted objective subject to the
	// formula.
	Optimal
	// Approximate: a satisfying Model was found but the search was
	// cut short (context cancellation) before optimality could be
	// established. Callers should use the model anyway.
	Approximate
	// Timeout: the initial solve ended with neither a model nor a
	// proof of unsatisfiability; callers fall back to an unminimized
	// search. GiniBackend's initial solve does not consult the context.
	Timeout
)

func (o Outcome) String() string {
	switch o {
	case Unsat:
		return "Unsat"
	case Optimal:
		return "Optimal"
	case Approximate:
		return "Approximate"
	case Timeout:
		return "Timeout"
	default:
		return "UnknownOutcome"
	}
}

// Model is a satisfying assignment returned alongside Optimal or
// Approximate outcomes.
type Model interface {
	Value(l Lit) bool
}

// Backend is the minimal contract internal/interpolant needs from an
// external weighted-boolean solver. A future SMT-LIB-speaking backend
// can implement this without internal/interpolant changing at all.
type Backend interface {
	// NewLit allocates a fresh named boolean variable.
	NewLit(name string) Lit
	// And returns a literal true iff every operand is true.
	And(lits ...Lit) Lit
	// Or returns a literal true iff at least one operand is true.
	Or(lits ...Lit) Lit
	// Not returns the negation of lit.
	Not(lit Lit) Lit
	// Assert requires lit to be true in every solution.
	Assert(lit Lit)
	// MinimizeWeighted solves the asserted formula, searching for an
	// assignment that minimizes the weighted sum of terms.
	MinimizeWeighted(ctx context.Context, terms []WeightedLit) (Model, Outcome, error)
}
