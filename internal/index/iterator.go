package index

import (
	"github.com/proofcore/proofcore/internal/term"
	"github.com/proofcore/proofcore/internal/unify"
)

// QueryRes is one result yielded by an Iterator: the matched entry,
// plus whichever of Unifier/Bindings applies to the retrieval mode
// that produced it.
type QueryRes struct {
	Entry *Entry

	// Unifier is populated by RetrieveUnifiable: the full
	// AbstractingUnifier (substitution plus residual disequalities).
	Unifier *unify.AbstractingUnifier

	// Bindings is populated by RetrieveGeneralizations: the map from
	// the indexed entry's variable ids to the query subterms they
	// stand for.
	Bindings map[int]term.TermID
}

type retrievalMode int

const (
	modeUnify retrievalMode = iota
	modeVariant
	modeGeneralize
)

// Iterator is a lazy, restartable-per-call traversal over a Tree's
// entries. It is not reentrant across tree mutation: a live Iterator
// causes concurrent Insert/Remove calls on its Tree to be buffered
// rather than applied (see Tree.acquireIterator/Close).
type Iterator struct {
	tree *Tree
	mode retrievalMode

	query         term.TermID
	queryBank     unify.Bank
	policy        unify.Policy
	runFixedPoint bool

	candidates []*Entry
	cursor     int
	closed     bool
}

// RetrieveUnifiable returns a lazy iterator over every indexed entry T
// such that unify(query, T, policy) succeeds.
func (t *Tree) RetrieveUnifiable(query term.TermID, queryBank unify.Bank, policy unify.Policy, runFixedPoint bool) *Iterator {
	t.acquireIterator()
	return &Iterator{
		tree:          t,
		mode:          modeUnify,
		query:         query,
		queryBank:     queryBank,
		policy:        policy,
		runFixedPoint: runFixedPoint,
		candidates:    t.candidatesFor(query, policy == unify.OFF),
	}
}

// RetrieveVariants returns entries alpha-equivalent to query.
func (t *Tree) RetrieveVariants(query term.TermID) *Iterator {
	t.acquireIterator()
	return &Iterator{tree: t, mode: modeVariant, query: query, candidates: t.allEntries()}
}

// RetrieveGeneralizations returns entries T such that some
// substitution of T's variables (T's alone) yields query exactly.
func (t *Tree) RetrieveGeneralizations(query term.TermID) *Iterator {
	t.acquireIterator()
	return &Iterator{tree: t, mode: modeGeneralize, query: query, candidates: t.allEntries()}
}

// Next advances the iterator, returning the next match (ok == true)
// or (nil, false, nil) once exhausted.
func (it *Iterator) Next() (*QueryRes, bool, error) {
	if it.closed {
		return nil, false, nil
	}
	for it.cursor < len(it.candidates) {
		e := it.candidates[it.cursor]
		it.cursor++
		switch it.mode {
		case modeUnify:
			u, err := unify.Unify(it.tree.store, it.query, it.queryBank, e.Key, unify.RESULT, it.policy, it.runFixedPoint)
			if err != nil {
				return nil, false, err
			}
			if u != nil {
				return &QueryRes{Entry: e, Unifier: u}, true, nil
			}
		case modeVariant:
			if isVariant(it.tree.store, it.query, e.Key) {
				return &QueryRes{Entry: e}, true, nil
			}
		case modeGeneralize:
			bindings := make(map[int]term.TermID)
			if matchGeneralization(it.tree.store, e.Key, it.query, bindings) {
				return &QueryRes{Entry: e, Bindings: bindings}, true, nil
			}
		}
	}
	return nil, false, nil
}

// Close releases the iterator's hold on its Tree, draining any
// mutations buffered while it was live. Callers must Close every
// Iterator they obtain, on every exit path, including early abort from
// cancellation.
func (it *Iterator) Close() {
	if it.closed {
		return
	}
	it.closed = true
	it.tree.releaseIterator()
}

// Collect drains the iterator into a slice and closes it; a
// convenience for callers (and tests) that don't need streaming.
func (it *Iterator) Collect() ([]*QueryRes, error) {
	defer it.Close()
	var out []*QueryRes
	for {
		res, ok, err := it.Next()
		if err != nil {
			return out, err
		}
		if !ok {
			return out, nil
		}
		out = append(out, res)
	}
}
