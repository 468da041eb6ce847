package smt

import (
	"context"

	"github.com/irifrance/gini"
	"github.com/irifrance/gini/logic"
	"github.com/irifrance/gini/z"
)

const (
	satisfiable   = 1
	unsatisfiable = -1
)

// GiniBackend implements Backend over github.com/irifrance/gini:
// boolean gates are built through a logic.C circuit, compiled to CNF
// once, and a minimal-weight model is found by iteratively tightening
// a logic.CardSort cardinality bound over a weight-duplicated literal
// list. Each WeightedLit contributes `weight` copies of its literal to
// the cardinality network instead of one, approximating a weighted sum
// with an unweighted cardinality minimization.
type GiniBackend struct {
	c        *logic.C
	g        *gini.Gini
	assumed  []z.Lit
	compiled bool

	nextID int32
	lits   map[int32]z.Lit
}

// NewGiniBackend returns a ready-to-use backend with an empty circuit.
func NewGiniBackend() *GiniBackend {
	return &GiniBackend{
		c:    logic.NewCCap(256),
		g:    gini.New(),
		lits: make(map[int32]z.Lit),
	}
}

func (b *GiniBackend) alloc(m z.Lit) Lit {
	id := b.nextID
	b.nextID++
	b.lits[id] = m
	return Lit{id: id}
}

func (b *GiniBackend) resolve(l Lit) z.Lit { return b.lits[l.id] }

func (b *GiniBackend) toZ(lits []Lit) []z.Lit {
	out := make([]z.Lit, len(lits))
	for i, l := range lits {
		out[i] = b.resolve(l)
	}
	return out
}

func (b *GiniBackend) NewLit(name string) Lit { return b.alloc(b.c.Lit()) }

func (b *GiniBackend) And(lits ...Lit) Lit { return b.alloc(b.c.Ands(b.toZ(lits)...)) }

func (b *GiniBackend) Or(lits ...Lit) Lit { return b.alloc(b.c.Ors(b.toZ(lits)...)) }

func (b *GiniBackend) Not(lit Lit) Lit { return b.alloc(b.resolve(lit).Not()) }

func (b *GiniBackend) Assert(lit Lit) { b.assumed = append(b.assumed, b.resolve(lit)) }

type giniModel struct{ values map[int32]bool }

func (m giniModel) Value(l Lit) bool { return m.values[l.id] }

func (b *GiniBackend) snapshotModel() Model {
	vals := make(map[int32]bool, len(b.lits))
	for id, m := range b.lits {
		vals[id] = b.g.Value(m)
	}
	return giniModel{values: vals}
}

// MinimizeWeighted solves the asserted formula and searches for the
// minimal-weight model.
func (b *GiniBackend) MinimizeWeighted(ctx context.Context, terms []WeightedLit) (Model, Outcome, error) {
	if !b.compiled {
		b.c.ToCnf(b.g)
		b.compiled = true
	}

	b.g.Assume(b.assumed...)
	outcome, _ := b.g.Test(nil)
	if outcome != satisfiable && outcome != unsatisfiable {
		b.g.Untest()
		b.g.Assume(b.assumed...)
		outcome = b.g.Solve()
	} else {
		b.g.Untest()
		b.g.Assume(b.assumed...)
		outcome = b.g.Solve()
	}
	if outcome == unsatisfiable {
		return nil, Unsat, nil
	}
	if outcome != satisfiable {
		return nil, Timeout, nil
	}
	baseline := b.snapshotModel()

	// Duplicate each weighted literal `weight` times so an unweighted
	// cardinality network over the expanded list approximates the
	// weighted sum.
	preCardLen := b.c.Len()
	var expanded []z.Lit
	for _, t := range terms {
		if t.Weight <= 0 {
			continue
		}
		m := b.resolve(t.Lit)
		for i := 0; i < t.Weight; i++ {
			expanded = append(expanded, m)
		}
	}
	if len(expanded) == 0 {
		return baseline, Optimal, nil
	}

	cs := b.c.CardSort(expanded)
	marks := make([]int8, preCardLen, b.c.Len())
	for i := range marks {
		marks[i] = 1
	}
	for w := 0; w <= cs.N(); w++ {
		marks, _ = b.c.CnfSince(b.g, marks, cs.Leq(w))
	}
	for w := 0; w <= cs.N(); w++ {
		select {
		case <-ctx.Done():
			return baseline, Approximate, nil
		default:
		}
		b.g.Assume(b.assumed...)
		b.g.Assume(cs.Leq(w))
		if b.g.Solve() == satisfiable {
			return b.snapshotModel(), Optimal, nil
		}
	}
	return baseline, Approximate, nil
}
