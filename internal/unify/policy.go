// Package unify implements substitution and unification-with-
// abstraction (component C): Robinson unification generalized so that
// a controlled mismatch between interpreted symbols does not fail but
// is retained as a residual disequality constraint.
package unify

import "github.com/proofcore/proofcore/internal/term"

// Policy selects which abstraction is in force for one unification
// attempt. Exactly one policy applies per call to Unify.
type Policy int

const (
	// OFF performs standard syntactic unification: no abstraction.
	OFF Policy = iota
	// INTERP_ONLY abstracts a mismatch only when both roots are
	// theory-interpreted.
	INTERP_ONLY
	// ONE_INTERP abstracts a mismatch when at least one root is
	// theory-interpreted.
	ONE_INTERP
	// AC1 behaves like ONE_INTERP but additionally flattens
	// associative-commutative operators and matches them with cheap
	// syntactic (non-exhaustive) pairing before residualizing the
	// unmatched remainder as one disequality of sums.
	AC1
	// AC2 refines AC1 by first removing ground (variable-free)
	// pieces that multiset-match exactly, before the AC1-style pass.
	AC2
	// FUNC_EXT abstracts higher-order applicative terms whose head
	// symbols differ but whose result sorts coincide; the residue is
	// a disequality between the whole applications.
	FUNC_EXT
)

func (p Policy) String() string {
	switch p {
	case OFF:
		return "OFF"
	case INTERP_ONLY:
		return "INTERP_ONLY"
	case ONE_INTERP:
		return "ONE_INTERP"
	case AC1:
		return "AC1"
	case AC2:
		return "AC2"
	case FUNC_EXT:
		return "FUNC_EXT"
	default:
		return "UNKNOWN_POLICY"
	}
}

// interpretedOperators enumerates, per numeric sort, the functors the
// arithmetic abstraction policies treat as theory-interpreted, rather
// than deriving the set implicitly from a sort hierarchy.
var interpretedOperators = map[term.Sort]map[string]bool{
	term.IntSort:  {"+": true, "-": true, "*": true, "div": true, "mod": true},
	term.RatSort:  {"+": true, "-": true, "*": true, "/": true},
	term.RealSort: {"+": true, "-": true, "*": true, "/": true},
}

// acOperators is the subset of interpretedOperators that AC1/AC2 treat
// as associative-commutative and therefore flatten before matching.
var acOperators = map[string]bool{"+": true, "*": true}

func isInterpreted(n *term.Node) bool {
	if n == nil || !n.IsApply() {
		return false
	}
	return n.Sort.IsNumeric() && interpretedOperators[n.Sort][n.Functor]
}

func isAC(functor string) bool {
	return acOperators[functor]
}
