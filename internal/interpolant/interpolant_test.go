package interpolant

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/proofcore/proofcore/internal/kernel"
	"github.com/proofcore/proofcore/internal/smt"
	"github.com/proofcore/proofcore/internal/term"
)

func groundAtom(t *testing.T, ts *term.Store, pred string, polarity bool, arg string) term.LitID {
	t.Helper()
	c, err := ts.InternApply(arg, term.Unsorted, nil)
	require.NoError(t, err)
	lid, err := ts.InternLiteral(pred, polarity, []term.TermID{c})
	require.NoError(t, err)
	return lid
}

// twoStepProof builds ax_L --> u --> refutation: ax_L is LEFT-colored
// and axiom-only, u is a TRANSPARENT unit derived from it, and
// refutation is the empty clause derived from u.
func twoStepProof(t *testing.T) (ts *term.Store, ks *kernel.Store, axL, u, refutation *kernel.Clause) {
	t.Helper()
	ts = term.NewStore(nil)
	ts.DeclareSymbolColor("pL", term.LEFT)
	ks = kernel.NewStore(nil)

	litL := groundAtom(t, ts, "pL", true, "a")
	axLNum := ks.NextNumber()
	axL = kernel.NewClause(axLNum, ts, []term.LitID{litL}, &kernel.Inference{Rule: "axiom"}, kernel.AXIOM)
	require.NoError(t, ks.Register(axL))
	require.Equal(t, term.LEFT, axL.Color())

	litU := groundAtom(t, ts, "q", true, "a")
	uNum := ks.NextNumber()
	u = kernel.NewClause(uNum, ts, []term.LitID{litU}, &kernel.Inference{Rule: "resolve", Parents: []kernel.UnitNumber{axLNum}}, kernel.LEMMA)
	require.NoError(t, ks.Register(u))
	require.Equal(t, term.TRANSPARENT, u.Color())

	refNum := ks.NextNumber()
	refutation = kernel.NewClause(refNum, ts, nil, &kernel.Inference{Rule: "resolve", Parents: []kernel.UnitNumber{uNum}}, kernel.LEMMA)
	require.NoError(t, ks.Register(refutation))
	require.Equal(t, term.TRANSPARENT, refutation.Color())

	return ts, ks, axL, u, refutation
}

func TestTraverseLeadsToColorAndSuccessors(t *testing.T) {
	_, ks, axL, u, refutation := twoStepProof(t)

	order, err := Traverse(ks, refutation)
	require.NoError(t, err)
	require.Len(t, order, 3)

	assert.True(t, axL.Trace().LeadsToColor)
	assert.True(t, u.Trace().LeadsToColor)
	assert.True(t, refutation.Trace().LeadsToColor)

	assert.False(t, axL.Trace().IsParentOfLeft)
	assert.Contains(t, axL.Trace().TransparentSuccessors, u.Number())
	assert.Contains(t, u.Trace().TransparentSuccessors, refutation.Number())

	// Post-order: every unit precedes none of its own ancestors.
	positions := make(map[kernel.UnitNumber]int, len(order))
	for i, unit := range order {
		positions[unit.Number()] = i
	}
	assert.Less(t, positions[axL.Number()], positions[u.Number()])
	assert.Less(t, positions[u.Number()], positions[refutation.Number()])
}

func TestTraverseBothColoredParentsIsAnError(t *testing.T) {
	ts := term.NewStore(nil)
	ts.DeclareSymbolColor("pL", term.LEFT)
	ts.DeclareSymbolColor("pR", term.RIGHT)
	ks := kernel.NewStore(nil)

	litL := groundAtom(t, ts, "pL", true, "a")
	leftNum := ks.NextNumber()
	left := kernel.NewClause(leftNum, ts, []term.LitID{litL}, &kernel.Inference{Rule: "axiom"}, kernel.AXIOM)
	require.NoError(t, ks.Register(left))

	litR := groundAtom(t, ts, "pR", true, "b")
	rightNum := ks.NextNumber()
	right := kernel.NewClause(rightNum, ts, []term.LitID{litR}, &kernel.Inference{Rule: "axiom"}, kernel.AXIOM)
	require.NoError(t, ks.Register(right))

	litU := groundAtom(t, ts, "q", true, "c")
	uNum := ks.NextNumber()
	u := kernel.NewClause(uNum, ts, []term.LitID{litU}, &kernel.Inference{Rule: "resolve", Parents: []kernel.UnitNumber{leftNum, rightNum}}, kernel.LEMMA)
	require.NoError(t, ks.Register(u))

	_, err := Traverse(ks, u)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBothColoredParents)
}

func TestEncodeRelevantUnitsExcludeColoredAndIncludeTransparentOnPathToColor(t *testing.T) {
	ts, ks, axL, u, refutation := twoStepProof(t)

	order, err := Traverse(ks, refutation)
	require.NoError(t, err)

	backend := smt.NewGiniBackend()
	enc := Encode(backend, ts, ks, order, refutation, true)

	var gotNumbers []kernel.UnitNumber
	for _, unit := range enc.Relevant {
		gotNumbers = append(gotNumbers, unit.Number())
	}
	assert.NotContains(t, gotNumbers, axL.Number(), "a LEFT-colored unit is never itself part of the boolean encoding")
	assert.Contains(t, gotNumbers, u.Number())
	assert.Contains(t, gotNumbers, refutation.Number())
	assert.Len(t, enc.Relevant, 2)
}

func TestMinimizeTwoStepProofProducesOptimalModelWithRefutationNeverSliced(t *testing.T) {
	ts, ks, _, u, refutation := twoStepProof(t)

	result, err := Minimize(context.Background(), func() smt.Backend { return smt.NewGiniBackend() }, ts, ks, refutation, WEIGHT, true, nil)
	require.NoError(t, err)
	require.False(t, result.Fallback)
	assert.Contains(t, []smt.Outcome{smt.Optimal, smt.Approximate}, result.Outcome)

	// Rule 8 forces S(refutation) = false unconditionally.
	assert.False(t, result.SlicedOff[refutation.Number()])
	_ = u
}

func TestMinimizeNoSlicingForcesEveryUnitUnsliced(t *testing.T) {
	ts, ks, _, u, refutation := twoStepProof(t)

	result, err := Minimize(context.Background(), func() smt.Backend { return smt.NewGiniBackend() }, ts, ks, refutation, WEIGHT, false, nil)
	require.NoError(t, err)
	require.False(t, result.Fallback)
	assert.False(t, result.SlicedOff[u.Number()], "allowSlicing=false forces S(u) false via rule 8")
	assert.False(t, result.SlicedOff[refutation.Number()])
}

func TestWeightForTarget(t *testing.T) {
	info := ComponentInfo{Weight: 7, VarCount: 3}
	assert.Equal(t, 7, weightForTarget(info, WEIGHT))
	assert.Equal(t, 1, weightForTarget(info, COUNT))
	assert.Equal(t, 3, weightForTarget(info, QUANTIFIERS))

	zero := ComponentInfo{Weight: 0, VarCount: 0}
	assert.Equal(t, 0, weightForTarget(zero, COUNT))
}

func TestComponentsOfGroundClauseIsOneAtomicComponent(t *testing.T) {
	ts, ks, _, u, _ := twoStepProof(t)
	_ = ks

	infos := ComponentsOf(ts, u)
	require.Len(t, infos, 1)
	assert.Greater(t, infos[0].Weight, 0)
}

func TestComponentsOfFormulaUnitIsKeyedByText(t *testing.T) {
	f := Formula{text: "p(a) & q(b)"}
	fu := kernel.NewFormulaUnit(kernel.UnitNumber(99), f, &kernel.Inference{}, kernel.AXIOM, term.TRANSPARENT)

	infos := ComponentsOf(nil, fu)
	require.Len(t, infos, 1)
	assert.Equal(t, ComponentID("formula:p(a) & q(b)"), infos[0].ID)
}
