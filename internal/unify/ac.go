package unify

import (
	"sort"
	"strings"

	"github.com/blang/semver/v4"

	"github.com/proofcore/proofcore/internal/term"
)

// flattenAC walks an AC-operator chain (e.g. repeated "+") and returns
// its leaf addends as Specs, in left-to-right order. A leaf is any
// subterm whose root is not the same functor (so "a+b+c" parsed as
// "+(+(a,b),c)" flattens to [a,b,c]).
func flattenAC(store *term.Store, functor string, spec Spec, sigma *Substitution) []Spec {
	spec = sigma.deref(spec)
	node := store.Term(spec.Term)
	if node != nil && node.IsApply() && node.Functor == functor && len(node.Args) == 2 {
		left := flattenAC(store, functor, Spec{Term: node.Args[0], Bank: spec.Bank}, sigma)
		right := flattenAC(store, functor, Spec{Term: node.Args[1], Bank: spec.Bank}, sigma)
		return append(left, right...)
	}
	return []Spec{spec}
}

// isGround reports whether spec denotes a variable-free term (after
// dereferencing), needed by AC2's ground-match pre-pass.
func isGround(store *term.Store, spec Spec, sigma *Substitution) bool {
	spec = sigma.deref(spec)
	node := store.Term(spec.Term)
	if node == nil {
		return false
	}
	if node.IsVariable() {
		return false
	}
	for _, a := range node.Args {
		if !isGround(store, Spec{Term: a, Bank: spec.Bank}, sigma) {
			return false
		}
	}
	return true
}

// unifyAC unifies two AC-operator chains. AC1 flattens both sides and
// unifies modulo AC to the extent cheap syntactic matching allows;
// unmatched residues become one disequality of the sums. AC2
// additionally removes ground pieces that multiset-match exactly
// before that pass.
func (s *state) unifyAC(functor string, da, db Spec) (bool, error) {
	as := canonicalizeNumericLeaves(s.store, flattenAC(s.store, functor, da, s.sigma), s.sigma)
	bs := canonicalizeNumericLeaves(s.store, flattenAC(s.store, functor, db, s.sigma), s.sigma)
	usedA := make([]bool, len(as))
	usedB := make([]bool, len(bs))

	if s.policy == AC2 {
		for i := range as {
			if !isGround(s.store, as[i], s.sigma) {
				continue
			}
			ai := s.sigma.deref(as[i])
			for j := range bs {
				if usedB[j] || !isGround(s.store, bs[j], s.sigma) {
					continue
				}
				bj := s.sigma.deref(bs[j])
				if ai.Term == bj.Term {
					usedA[i] = true
					usedB[j] = true
					break
				}
			}
		}
	}

	// Cheap greedy pass: for each unmatched a-element, try the first
	// unmatched b-element it actually unifies with.
	for i := range as {
		if usedA[i] {
			continue
		}
		for j := range bs {
			if usedB[j] {
				continue
			}
			mark := s.sigma.Mark()
			ok, err := s.unifyPair(as[i], bs[j])
			if err != nil {
				return false, err
			}
			if ok {
				usedA[i] = true
				usedB[j] = true
				break
			}
			s.sigma.Undo(mark)
		}
	}

	var leftA, leftB []Spec
	for i := range as {
		if !usedA[i] {
			leftA = append(leftA, as[i])
		}
	}
	for j := range bs {
		if !usedB[j] {
			leftB = append(leftB, bs[j])
		}
	}

	if len(leftA) == 0 && len(leftB) == 0 {
		return true, nil
	}
	if len(leftA) == 0 || len(leftB) == 0 {
		// Surplus only on one side: the sums cannot be made equal by
		// any extension of this AC match; record it as a residual
		// disequality against the interpreted root rather than
		// failing outright, since at least one side is interpreted.
	}
	sumA, err := rebuildAC(s.store, functor, leftA, s.sigma)
	if err != nil {
		return false, err
	}
	sumB, err := rebuildAC(s.store, functor, leftB, s.sigma)
	if err != nil {
		return false, err
	}
	return true, s.residualize(sumA, sumB)
}

// canonicalizeNumericLeaves stable-sorts an AC chain's leaves by a
// semver-derived key when they are ground numeric-sort constants,
// giving the ground pre-pass and the greedy matching pass a
// deterministic, reproducible order to attempt matches in, so that
// unmatched residues stay minimal and stable across runs. Leaves that
// aren't parseable ground numerals keep their original relative
// order, appended after the parseable ones; this never changes which
// matches are found, only the order they're attempted in.
func canonicalizeNumericLeaves(store *term.Store, leaves []Spec, sigma *Substitution) []Spec {
	type keyed struct {
		spec    Spec
		version semver.Version
		ok      bool
		index   int
	}
	ks := make([]keyed, len(leaves))
	for i, l := range leaves {
		d := sigma.deref(l)
		node := store.Term(d.Term)
		v, ok := semver.Version{}, false
		if node != nil && node.Sort.IsNumeric() && node.IsApply() && len(node.Args) == 0 {
			v, ok = numeralSemver(node.Functor)
		}
		ks[i] = keyed{spec: l, version: v, ok: ok, index: i}
	}
	sort.SliceStable(ks, func(i, j int) bool {
		if ks[i].ok != ks[j].ok {
			return ks[i].ok // parseable numerals sort before everything else
		}
		if !ks[i].ok {
			return false // preserve original relative order among non-numerals
		}
		return ks[i].version.LT(ks[j].version)
	})
	out := make([]Spec, len(leaves))
	for i, k := range ks {
		out[i] = k.spec
	}
	return out
}

// numeralSemver parses a numeric-sort constant's functor text (an
// integer or decimal literal, e.g. "3", "-2", "1.5") into a
// semver.Version for ordering purposes. A leading '-' is dropped
// (magnitude-only ordering: this is a best-effort canonicalization for
// match order, not a total order over signed numerals) and the
// literal is padded to MAJOR.MINOR.PATCH form.
func numeralSemver(functor string) (semver.Version, bool) {
	s := strings.TrimPrefix(functor, "-")
	if s == "" {
		return semver.Version{}, false
	}
	for _, r := range s {
		if (r < '0' || r > '9') && r != '.' {
			return semver.Version{}, false
		}
	}
	parts := strings.Split(s, ".")
	if len(parts) > 3 {
		return semver.Version{}, false
	}
	for len(parts) < 3 {
		parts = append(parts, "0")
	}
	v, err := semver.Parse(strings.Join(parts, "."))
	if err != nil {
		return semver.Version{}, false
	}
	return v, true
}

// rebuildAC folds a (possibly empty) list of leaf Specs back into one
// chained AC term under functor. An empty list yields the 0-ary
// identity application "<functor>_unit", a synthetic placeholder
// distinct from any user symbol of that arity.
func rebuildAC(store *term.Store, functor string, leaves []Spec, sigma *Substitution) (Spec, error) {
	if len(leaves) == 0 {
		id, err := store.InternApply(functor+"_unit", term.Unsorted, nil)
		return Spec{Term: id, Bank: INTERNAL}, err
	}
	acc, err := sigma.applySpec(leaves[0])
	if err != nil {
		return Spec{}, err
	}
	sort := store.Term(acc).Sort
	for _, leaf := range leaves[1:] {
		t, err := sigma.applySpec(leaf)
		if err != nil {
			return Spec{}, err
		}
		acc, err = store.InternApply(functor, sort, []term.TermID{acc, t})
		if err != nil {
			return Spec{}, err
		}
	}
	return Spec{Term: acc, Bank: INTERNAL}, nil
}
