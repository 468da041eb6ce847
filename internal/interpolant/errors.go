// Package interpolant implements the proof-DAG traversal and weighted
// boolean encoding that minimizes a Craig interpolant (component E): a
// four-step pipeline of traverse, encode, solve, and reconstruct that
// reduces "assign booleans to named problem elements subject to named
// constraints, minimizing a weighted objective" onto
// github.com/irifrance/gini through internal/smt.
package interpolant

import "github.com/pkg/errors"

// ErrBothColoredParents fires when a unit received both a
// LEFT-colored parent and a RIGHT-colored parent, which the proof DAG
// traversal treats as an invariant violation.
var ErrBothColoredParents = errors.New("interpolant: unit has both a LEFT parent and a RIGHT parent")

// ErrMinimizerUnsat and ErrMinimizerTimeout report that the weighted
// boolean encoding itself had no model, or that the backend's search
// was cut short before one was found. Minimize never returns these
// directly (a Result.Fallback is always produced when possible);
// callers that want to surface the distinction as an error use
// Result.Err().
var (
	ErrMinimizerUnsat   = errors.New("interpolant: minimizer encoding is unsatisfiable")
	ErrMinimizerTimeout = errors.New("interpolant: minimizer search timed out with no model")
)
