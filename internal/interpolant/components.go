package interpolant

import (
	"sort"
	"strconv"
	"strings"

	"github.com/proofcore/proofcore/internal/kernel"
	"github.com/proofcore/proofcore/internal/term"
)

// ComponentID is the canonical identity of one maximal variable-disjoint
// piece of a clause (or a whole formula): two pieces that are renamings
// of each other share the same ComponentID.
type ComponentID string

// ComponentInfo carries the per-component metadata the cost function
// needs: Weight is the symbol-count weight, VarCount is the number of
// distinct variables (used by the QUANTIFIERS target).
type ComponentInfo struct {
	ID       ComponentID
	Weight   int
	VarCount int
}

// ComponentsOf splits u into its maximal variable-disjoint components.
// A FormulaUnit is always one atomic component keyed by its textual
// form; a Clause is split by a union-find over shared variables, with
// single-literal components additionally canonicalized to their
// positive, variable-normalized form.
func ComponentsOf(store *term.Store, u kernel.Unit) []ComponentInfo {
	if fu, ok := u.(*kernel.FormulaUnit); ok {
		text := fu.Formula().String()
		return []ComponentInfo{{ID: ComponentID("formula:" + text), Weight: len(text), VarCount: 0}}
	}
	c, ok := u.(*kernel.Clause)
	if !ok {
		return nil
	}
	return clauseComponents(store, c.Literals())
}

func clauseComponents(store *term.Store, lits []term.LitID) []ComponentInfo {
	n := len(lits)
	if n == 0 {
		return nil
	}
	parent := make([]int, n)
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(x int) int {
		if parent[x] != x {
			parent[x] = find(parent[x])
		}
		return parent[x]
	}
	union := func(a, b int) {
		ra, rb := find(a), find(b)
		if ra != rb {
			parent[ra] = rb
		}
	}

	varsOf := make([]map[int]bool, n)
	for i, lid := range lits {
		l := store.Literal(lid)
		vs := make(map[int]bool)
		for _, a := range l.Args {
			collectVars(store, a, vs)
		}
		varsOf[i] = vs
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if sharesVar(varsOf[i], varsOf[j]) {
				union(i, j)
			}
		}
	}

	groups := make(map[int][]int)
	for i := 0; i < n; i++ {
		r := find(i)
		groups[r] = append(groups[r], i)
	}

	infos := make([]ComponentInfo, 0, len(groups))
	for _, idxs := range groups {
		if len(idxs) == 1 {
			infos = append(infos, singleLiteralComponent(store, lits[idxs[0]], len(varsOf[idxs[0]])))
		} else {
			infos = append(infos, multiLiteralComponent(store, lits, idxs, varsOf))
		}
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].ID < infos[j].ID })
	return infos
}

func collectVars(store *term.Store, tid term.TermID, out map[int]bool) {
	n := store.Term(tid)
	if n == nil {
		return
	}
	if n.IsVariable() {
		out[n.VarID] = true
		return
	}
	for _, a := range n.Args {
		collectVars(store, a, out)
	}
}

func sharesVar(a, b map[int]bool) bool {
	for v := range a {
		if b[v] {
			return true
		}
	}
	return false
}

func singleLiteralComponent(store *term.Store, lid term.LitID, varCount int) ComponentInfo {
	l := store.Literal(lid)
	renaming := make(map[int]int)
	next := 0
	key := "atom:" + renderLiteral(store, lid, true, renaming, &next)
	return ComponentInfo{ID: ComponentID(key), Weight: l.Weight, VarCount: varCount}
}

// multiLiteralComponent canonicalizes a variable-disjoint group of two
// or more literals. Literals are ordered by their variable-agnostic
// skeleton before variable renaming is assigned, so that two
// components differing only by literal order or variable names produce
// the same key.
func multiLiteralComponent(store *term.Store, lits []term.LitID, idxs []int, varsOf []map[int]bool) ComponentInfo {
	type item struct {
		lid      term.LitID
		skeleton string
	}
	items := make([]item, len(idxs))
	for i, idx := range idxs {
		items[i] = item{lid: lits[idx], skeleton: skeletonOf(store, lits[idx])}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].skeleton < items[j].skeleton })

	renaming := make(map[int]int)
	next := 0
	parts := make([]string, len(items))
	weight := 0
	allVars := make(map[int]bool)
	for i, it := range items {
		parts[i] = renderLiteral(store, it.lid, false, renaming, &next)
		weight += store.Literal(it.lid).Weight
	}
	for _, idx := range idxs {
		for v := range varsOf[idx] {
			allVars[v] = true
		}
	}
	return ComponentInfo{ID: ComponentID("clause:" + strings.Join(parts, "|")), Weight: weight, VarCount: len(allVars)}
}

func skeletonOf(store *term.Store, lid term.LitID) string {
	renaming := make(map[int]int)
	next := 0
	return renderLiteral(store, lid, false, renaming, &next)
}

func renderLiteral(store *term.Store, lid term.LitID, forcePositive bool, renaming map[int]int, next *int) string {
	l := store.Literal(lid)
	var b strings.Builder
	if l.Polarity || forcePositive {
		b.WriteByte('+')
	} else {
		b.WriteByte('-')
	}
	b.WriteString(l.Pred)
	b.WriteByte('(')
	for i, a := range l.Args {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(renderTerm(store, a, renaming, next))
	}
	b.WriteByte(')')
	return b.String()
}

func renderTerm(store *term.Store, tid term.TermID, renaming map[int]int, next *int) string {
	n := store.Term(tid)
	if n.IsVariable() {
		idx, ok := renaming[n.VarID]
		if !ok {
			idx = *next
			renaming[n.VarID] = idx
			*next++
		}
		return "V" + strconv.Itoa(idx)
	}
	var b strings.Builder
	b.WriteString(n.Functor)
	if len(n.Args) > 0 {
		b.WriteByte('(')
		for i, a := range n.Args {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(renderTerm(store, a, renaming, next))
		}
		b.WriteByte(')')
	}
	return b.String()
}
