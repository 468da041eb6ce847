package index

import (
	"github.com/proofcore/proofcore/internal/term"
)

// Entry is one stored (key, payload) pair. Payload is typically a
// *kernel.Clause or *kernel.FormulaUnit pointer, but the index is
// payload-agnostic; it only hash-conses and unifies on Key. Payload
// must be comparable (a pointer, typically) for Remove to locate it.
type Entry struct {
	Key     term.TermID
	Payload interface{}
}

type bucketKey struct {
	functor string
	arity   int
}

type pendingOp struct {
	remove bool
	entry  Entry
}

// Tree is a substitution-tree-style index over term.TermID keys.
// Internally it buckets entries by (functor, arity) of their root so
// that an OFF-policy query, which can never abstract a root-level
// mismatch, only scans candidates that could possibly unify.
// Abstraction policies other than OFF can residualize at the root
// itself (an interpreted-operator root may unify wholesale against an
// unrelated functor), so non-OFF retrieval falls back to a full scan
// for soundness and completeness; this trades index selectivity for
// retrieval correctness under those policies.
type Tree struct {
	store   *term.Store
	buckets map[bucketKey][]*Entry
	varKey  []*Entry // entries whose root is itself a variable

	liveIterators int
	pending       []pendingOp
}

// New returns an empty index over store.
func New(store *term.Store) *Tree {
	return &Tree{store: store, buckets: make(map[bucketKey][]*Entry)}
}

// Insert adds (key, payload) to the index. If an Iterator over this
// tree is currently live, the insertion is buffered and applied when
// the last live iterator closes.
func (t *Tree) Insert(key term.TermID, payload interface{}) {
	if t.liveIterators > 0 {
		t.pending = append(t.pending, pendingOp{entry: Entry{Key: key, Payload: payload}})
		return
	}
	t.insertNow(Entry{Key: key, Payload: payload})
}

func (t *Tree) insertNow(e Entry) {
	node := t.store.Term(e.Key)
	if node == nil {
		return
	}
	entry := &Entry{Key: e.Key, Payload: e.Payload}
	if node.IsVariable() {
		t.varKey = append(t.varKey, entry)
		return
	}
	bk := bucketKey{functor: node.Functor, arity: len(node.Args)}
	t.buckets[bk] = append(t.buckets[bk], entry)
}

// Remove deletes the first entry matching (key, payload). It reports
// whether an entry was found. Like Insert, it is buffered while an
// iterator is live; a buffered Remove reports true without looking.
func (t *Tree) Remove(key term.TermID, payload interface{}) bool {
	if t.liveIterators > 0 {
		t.pending = append(t.pending, pendingOp{remove: true, entry: Entry{Key: key, Payload: payload}})
		return true
	}
	return t.removeNow(Entry{Key: key, Payload: payload})
}

func (t *Tree) removeNow(e Entry) bool {
	node := t.store.Term(e.Key)
	if node == nil {
		return false
	}
	if node.IsVariable() {
		for i, entry := range t.varKey {
			if entry.Key == e.Key && entry.Payload == e.Payload {
				t.varKey = append(t.varKey[:i], t.varKey[i+1:]...)
				return true
			}
		}
		return false
	}
	bk := bucketKey{functor: node.Functor, arity: len(node.Args)}
	bucket := t.buckets[bk]
	for i, entry := range bucket {
		if entry.Key == e.Key && entry.Payload == e.Payload {
			t.buckets[bk] = append(bucket[:i], bucket[i+1:]...)
			return true
		}
	}
	return false
}

// allEntries returns every stored entry, used both for non-OFF
// retrieval and for the variant/generalization traversals (which are
// not bucket-selective, since alpha-equivalence and matching don't
// respect the functor/arity bucketing the same way unification does
// for OFF).
func (t *Tree) allEntries() []*Entry {
	out := append([]*Entry(nil), t.varKey...)
	for _, b := range t.buckets {
		out = append(out, b...)
	}
	return out
}

func (t *Tree) candidatesFor(key term.TermID, offOnly bool) []*Entry {
	node := t.store.Term(key)
	if node == nil {
		return nil
	}
	if !offOnly || node.IsVariable() {
		return t.allEntries()
	}
	bk := bucketKey{functor: node.Functor, arity: len(node.Args)}
	out := append([]*Entry(nil), t.varKey...)
	out = append(out, t.buckets[bk]...)
	return out
}

// acquireIterator and releaseIterator track live iterators so Insert
// and Remove know whether to buffer.
func (t *Tree) acquireIterator() { t.liveIterators++ }

func (t *Tree) releaseIterator() {
	t.liveIterators--
	if t.liveIterators > 0 {
		return
	}
	pending := t.pending
	t.pending = nil
	for _, op := range pending {
		if op.remove {
			t.removeNow(op.entry)
		} else {
			t.insertNow(op.entry)
		}
	}
}

// Len reports the total number of stored entries.
func (t *Tree) Len() int {
	n := len(t.varKey)
	for _, b := range t.buckets {
		n += len(b)
	}
	return n
}
