package index

import "github.com/proofcore/proofcore/internal/term"

// isVariant reports whether a and b are alpha-equivalent: structurally
// identical up to a consistent bijective renaming of variables. This
// is the rename-only counterpart of full unification, used by
// RetrieveVariants.
func isVariant(store *term.Store, a, b term.TermID) bool {
	return variantWalk(store, a, b, make(map[int]int), make(map[int]int))
}

func variantWalk(store *term.Store, a, b term.TermID, fwd, bwd map[int]int) bool {
	na := store.Term(a)
	nb := store.Term(b)
	if na == nil || nb == nil {
		return false
	}
	if na.IsVariable() != nb.IsVariable() {
		return false
	}
	if na.IsVariable() {
		if mapped, ok := fwd[na.VarID]; ok {
			return mapped == nb.VarID
		}
		if _, ok := bwd[nb.VarID]; ok {
			return false // nb.VarID already claimed by a different a-variable
		}
		fwd[na.VarID] = nb.VarID
		bwd[nb.VarID] = na.VarID
		return na.Sort == nb.Sort
	}
	if na.Functor != nb.Functor || na.Sort != nb.Sort || len(na.Args) != len(nb.Args) {
		return false
	}
	for i := range na.Args {
		if !variantWalk(store, na.Args[i], nb.Args[i], fwd, bwd) {
			return false
		}
	}
	return true
}

// matchGeneralization reports whether key generalizes query: there is
// a substitution, recorded in bindings, mapping key's variables onto
// query subterms such that applying it to key yields query exactly.
// query's own variables never bind; they must appear identically
// (same TermID) on both sides. This is the "match-only" unifier
// constructor for retrieve_generalizations.
func matchGeneralization(store *term.Store, key, query term.TermID, bindings map[int]term.TermID) bool {
	nk := store.Term(key)
	nq := store.Term(query)
	if nk == nil || nq == nil {
		return false
	}
	if nk.IsVariable() {
		if bound, ok := bindings[nk.VarID]; ok {
			return bound == query
		}
		bindings[nk.VarID] = query
		return true
	}
	if nq.IsVariable() {
		return false // key is non-variable but query is; key cannot generalize a strictly more general term
	}
	if nk.Functor != nq.Functor || nk.Sort != nq.Sort || len(nk.Args) != len(nq.Args) {
		return false
	}
	for i := range nk.Args {
		if !matchGeneralization(store, nk.Args[i], nq.Args[i], bindings) {
			return false
		}
	}
	return true
}
