package unify

import "github.com/proofcore/proofcore/internal/term"

// AbstractingUnifier is the result of a successful Unify call: a
// substitution plus a set of residual disequality literals such that
// sigma(a) and sigma(b) become equal modulo the conjunction of
// negations in Constraints.
type AbstractingUnifier struct {
	Sigma       *Substitution
	Constraints map[term.LitID]struct{}
}

// ConstraintSlice returns the residual disequalities in an arbitrary
// but stable order (sorted by literal id); callers often want
// determinism for testing even though no ordering is guaranteed.
func (u *AbstractingUnifier) ConstraintSlice() []term.LitID {
	out := make([]term.LitID, 0, len(u.Constraints))
	for c := range u.Constraints {
		out = append(out, c)
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j-1] > out[j]; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out
}

type state struct {
	store       *term.Store
	sigma       *Substitution
	constraints map[term.LitID]struct{}
	policy      Policy
}

// Unify attempts to unify a (read under aBank) with b (read under
// bBank) according to policy. It returns nil, nil if the pair is
// unifiable under no extension the policy permits (occurs-check
// failure, or a clashing uninterpreted head under OFF); it never
// panics on a failed attempt. The occurs check is always performed on
// the syntactic part; abstraction never bypasses it.
func Unify(store *term.Store, a term.TermID, aBank Bank, b term.TermID, bBank Bank, policy Policy, runFixedPoint bool) (*AbstractingUnifier, error) {
	return UnifyWith(NewSubstitution(store), a, aBank, b, bBank, policy, runFixedPoint)
}

// UnifyWith is Unify but extends an existing substitution in place.
// When the pair does not unify, the bindings this attempt made are
// undone.
func UnifyWith(sigma *Substitution, a term.TermID, aBank Bank, b term.TermID, bBank Bank, policy Policy, runFixedPoint bool) (*AbstractingUnifier, error) {
	st := &state{store: sigma.store, sigma: sigma, constraints: make(map[term.LitID]struct{}), policy: policy}
	mark := sigma.Mark()
	ok, err := st.unifyPair(Spec{Term: a, Bank: aBank}, Spec{Term: b, Bank: bBank})
	if err != nil {
		return nil, err
	}
	if !ok {
		sigma.Undo(mark)
		return nil, nil
	}
	result := &AbstractingUnifier{Sigma: sigma, Constraints: st.constraints}
	if runFixedPoint {
		if err := result.runFixedPoint(st.store, policy); err != nil {
			return nil, err
		}
	}
	return result, nil
}

func (s *state) unifyPair(da, db Spec) (bool, error) {
	da = s.sigma.deref(da)
	db = s.sigma.deref(db)

	if da.Term == db.Term && da.Bank == db.Bank {
		return true, nil
	}

	na := s.store.Term(da.Term)
	nb := s.store.Term(db.Term)
	if na == nil || nb == nil {
		return false, nil
	}

	if na.IsVariable() {
		if occurs(s.sigma, VarRef{ID: na.VarID, Bank: da.Bank}, db) {
			return false, nil
		}
		s.sigma.bind(VarRef{ID: na.VarID, Bank: da.Bank}, db)
		return true, nil
	}
	if nb.IsVariable() {
		if occurs(s.sigma, VarRef{ID: nb.VarID, Bank: db.Bank}, da) {
			return false, nil
		}
		s.sigma.bind(VarRef{ID: nb.VarID, Bank: db.Bank}, da)
		return true, nil
	}

	// Both compounds (possibly zero-arity, i.e. constants).
	//
	// The arithmetic abstraction policies treat an interpreted-
	// operator root as opaque: rather than decomposing it structurally
	// (which would fail the first time two differently-valued numeral
	// leaves are compared several levels down), the whole pair is
	// compared as a unit and, if eligible, residualized directly. AC1
	// and AC2 are the exception: when both roots share the same AC
	// functor, they flatten and attempt a cheap syntactic match
	// instead of residualizing the pair wholesale.
	if s.policy == INTERP_ONLY || s.policy == ONE_INTERP || s.policy == AC1 || s.policy == AC2 {
		var eligible bool
		if s.policy == INTERP_ONLY {
			eligible = isInterpreted(na) && isInterpreted(nb)
		} else {
			eligible = isInterpreted(na) || isInterpreted(nb)
		}
		if eligible {
			if na.Functor == nb.Functor && len(na.Args) == len(nb.Args) &&
				len(na.Args) > 0 && isAC(na.Functor) && (s.policy == AC1 || s.policy == AC2) {
				return s.unifyAC(na.Functor, da, db)
			}
			return true, s.residualize(da, db)
		}
	}

	if na.Functor == nb.Functor && len(na.Args) == len(nb.Args) {
		for i := range na.Args {
			ok, err := s.unifyPair(Spec{Term: na.Args[i], Bank: da.Bank}, Spec{Term: nb.Args[i], Bank: db.Bank})
			if err != nil || !ok {
				return false, err
			}
		}
		return true, nil
	}

	// FUNC_EXT abstracts exactly at a mismatching pair (differing
	// head symbols) of matching result sort; it does not treat any
	// root as opaque up front the way the arithmetic policies do.
	if s.policy == FUNC_EXT && na.Sort != "" && na.Sort == nb.Sort {
		return true, s.residualize(da, db)
	}

	return false, nil
}

// occurs reports whether v occurs free in spec, dereferencing bound
// variables along the way. This check is unconditional: abstraction
// never bypasses it.
func occurs(sigma *Substitution, v VarRef, spec Spec) bool {
	spec = sigma.deref(spec)
	node := sigma.store.Term(spec.Term)
	if node == nil {
		return false
	}
	if node.IsVariable() {
		return node.VarID == v.ID && spec.Bank == v.Bank
	}
	for _, a := range node.Args {
		if occurs(sigma, v, Spec{Term: a, Bank: spec.Bank}) {
			return true
		}
	}
	return false
}

// residualize applies the current substitution to da and db and
// records their (canonicalized) disequality as a constraint literal.
func (s *state) residualize(da, db Spec) error {
	ta, err := s.sigma.applySpec(da)
	if err != nil {
		return err
	}
	tb, err := s.sigma.applySpec(db)
	if err != nil {
		return err
	}
	lit, err := s.constraintLiteral(ta, tb)
	if err != nil {
		return err
	}
	s.constraints[lit] = struct{}{}
	return nil
}

// constraintLiteral interns the disequality ta ≠ tb as a negated "="
// literal, canonicalizing argument order by term id so that a ≠ b and
// b ≠ a hash-cons to the same literal.
func (s *state) constraintLiteral(ta, tb term.TermID) (term.LitID, error) {
	if ta > tb {
		ta, tb = tb, ta
	}
	return s.store.InternLiteral("=", false, []term.TermID{ta, tb})
}

// runFixedPoint re-examines each residual disequality and attempts
// syntactic unification of its two sides; a successful reduction
// either eliminates the constraint (sides became identical under the
// grown substitution) or refines it (sides reduced to simpler
// residues). The loop terminates when no constraint changes.
func (u *AbstractingUnifier) runFixedPoint(store *term.Store, policy Policy) error {
	changed := true
	for changed {
		changed = false
		for lit := range u.Constraints {
			node := store.Literal(lit)
			if node == nil || len(node.Args) != 2 {
				continue
			}
			mark := u.Sigma.Mark()
			sub := &state{store: store, sigma: u.Sigma, constraints: make(map[term.LitID]struct{}), policy: policy}
			ok, err := sub.unifyPair(Spec{Term: node.Args[0], Bank: INTERNAL}, Spec{Term: node.Args[1], Bank: INTERNAL})
			if err != nil {
				return err
			}
			if !ok {
				u.Sigma.Undo(mark)
				continue
			}
			delete(u.Constraints, lit)
			for c := range sub.constraints {
				if c != lit {
					u.Constraints[c] = struct{}{}
				}
			}
			changed = true
		}
	}
	return nil
}
