package unify

import "github.com/proofcore/proofcore/internal/term"

// Bank disambiguates the variable namespaces of the two sides of a
// unification (and any internal working terms), so that, e.g., the
// query side's X0 and the indexed side's X0 never clash.
type Bank int

const (
	QUERY Bank = iota
	RESULT
	INTERNAL
)

// VarRef names one variable within one bank.
type VarRef struct {
	ID   int
	Bank Bank
}

// Spec pairs a stored term with the bank its free variables are to be
// read under.
type Spec struct {
	Term term.TermID
	Bank Bank
}

// Substitution is a partial, trail-backed map from VarRef to Spec.
// The trail lets callers (AC matching, UnifyWith) mark a point and
// cheaply undo bindings
// made since, supporting backtracking search without discarding the
// whole substitution.
type Substitution struct {
	store    *term.Store
	bindings map[VarRef]Spec
	trail    []VarRef
}

// NewSubstitution returns an empty substitution over store.
func NewSubstitution(store *term.Store) *Substitution {
	return &Substitution{
		store:    store,
		bindings: make(map[VarRef]Spec),
	}
}

// Lookup returns the binding for v, if any.
func (s *Substitution) Lookup(v VarRef) (Spec, bool) {
	spec, ok := s.bindings[v]
	return spec, ok
}

// Mark returns a position in the trail suitable for a later Undo.
func (s *Substitution) Mark() int { return len(s.trail) }

// Undo removes every binding made since mark.
func (s *Substitution) Undo(mark int) {
	for len(s.trail) > mark {
		last := s.trail[len(s.trail)-1]
		delete(s.bindings, last)
		s.trail = s.trail[:len(s.trail)-1]
	}
}

func (s *Substitution) bind(v VarRef, spec Spec) {
	s.bindings[v] = spec
	s.trail = append(s.trail, v)
}

// deref follows variable bindings to a fixed point: either an unbound
// variable or a non-variable term.
func (s *Substitution) deref(spec Spec) Spec {
	for {
		node := s.store.Term(spec.Term)
		if node == nil || !node.IsVariable() {
			return spec
		}
		bound, ok := s.bindings[VarRef{ID: node.VarID, Bank: spec.Bank}]
		if !ok {
			return spec
		}
		spec = bound
	}
}

// Apply performs closed-form substitution of term under bank,
// hash-consing the result. Distinct banks are encoded into the
// result's variable identifiers so that an unbound variable from bank
// b never collides, in the returned term, with the "same named"
// variable from a different bank.
func (s *Substitution) Apply(t term.TermID, bank Bank) (term.TermID, error) {
	return s.applySpec(Spec{Term: t, Bank: bank})
}

func (s *Substitution) applySpec(spec Spec) (term.TermID, error) {
	spec = s.deref(spec)
	node := s.store.Term(spec.Term)
	if node.IsVariable() {
		return s.store.InternVariable(bankedVarID(node.VarID, spec.Bank), node.Sort)
	}
	if len(node.Args) == 0 {
		return spec.Term, nil
	}
	newArgs := make([]term.TermID, len(node.Args))
	changed := false
	for i, a := range node.Args {
		r, err := s.applySpec(Spec{Term: a, Bank: spec.Bank})
		if err != nil {
			return 0, err
		}
		if r != a {
			changed = true
		}
		newArgs[i] = r
	}
	if !changed {
		return spec.Term, nil
	}
	return s.store.InternApply(node.Functor, node.Sort, newArgs)
}

// bankedVarID folds a bank into a variable id so that two banks never
// collide in a concrete, hash-consed result term. Three banks are in
// play (QUERY, RESULT, INTERNAL); encoding the bank in the low bits is
// sufficient and keeps Apply's output directly hash-consable through
// the ordinary variable-interning path.
func bankedVarID(id int, bank Bank) int {
	return id*8 + int(bank)
}
