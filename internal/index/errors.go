// Package index implements the term/literal substitution-tree index
// (component D): insert, remove, and unification/variant/generalization
// retrieval over a set of keyed entries.
package index

import "github.com/pkg/errors"

// ErrMutationDuringIteration names the case of a caller mutating the
// index while an Iterator is live. No index operation returns it:
// Insert and Remove have no error return, and a mutation issued during
// iteration is buffered and drained on Close instead of applied.
var ErrMutationDuringIteration = errors.New("index: mutation buffered until live iterator closes")
