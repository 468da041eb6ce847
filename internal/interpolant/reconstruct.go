package interpolant

import (
	"sort"
	"strings"

	"github.com/proofcore/proofcore/internal/smt"
)

// Formula is the minimal reconstructed-interpolant representation: the
// conjunction of the distinct digest components' canonical text, sorted
// for determinism. It satisfies kernel.Formula so a caller can wrap the
// result directly in a kernel.FormulaUnit.
type Formula struct{ text string }

func (f Formula) String() string { return f.text }

// reconstruct builds the interpolant content from a solved model: every
// component c with V(c) true in the model. Sliced units contribute
// nothing of their own; their parents' digest membership already
// accounts for whatever content survives through them, which is
// exactly what the D(u) = (RC∧¬RF)∨(BC∧¬BF) propagation is for.
func reconstruct(enc *Encoding, model smt.Model) (Formula, []ComponentID) {
	var ids []ComponentID
	for id, lit := range enc.V {
		if model.Value(lit) {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = string(id)
	}
	return Formula{text: strings.Join(parts, " & ")}, ids
}
