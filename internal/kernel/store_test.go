package kernel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/proofcore/proofcore/internal/term"
)

func axiomClause(t *testing.T, ts *term.Store, ks *Store, lits ...term.LitID) *Clause {
	t.Helper()
	n := ks.NextNumber()
	c := NewClause(n, ts, lits, &Inference{Rule: "input"}, AXIOM)
	require.NoError(t, ks.Register(c))
	return c
}

func TestRegisterDuplicateNumberFails(t *testing.T) {
	ks := NewStore(nil)
	ts := term.NewStore(nil)
	c := axiomClause(t, ts, ks)

	dup := NewClause(c.Number(), ts, nil, &Inference{Rule: "input"}, AXIOM)
	err := ks.Register(dup)
	require.ErrorIs(t, err, ErrDuplicateRegistration)
}

func TestRegisterUnknownParentFails(t *testing.T) {
	ks := NewStore(nil)
	ts := term.NewStore(nil)
	n := ks.NextNumber()
	c := NewClause(n, ts, nil, &Inference{Rule: "resolution", Parents: []UnitNumber{999}}, LEMMA)
	err := ks.Register(c)
	require.ErrorIs(t, err, ErrUnknownParent)
}

func TestParentsOf(t *testing.T) {
	ks := NewStore(nil)
	ts := term.NewStore(nil)
	p1 := axiomClause(t, ts, ks)
	p2 := axiomClause(t, ts, ks)

	n := ks.NextNumber()
	child := NewClause(n, ts, nil, &Inference{Rule: "resolution", Parents: []UnitNumber{p1.Number(), p2.Number()}}, LEMMA)
	require.NoError(t, ks.Register(child))

	parents := ks.ParentsOf(child)
	require.Len(t, parents, 2)
	assert.Equal(t, p1.Number(), parents[0].Number())
	assert.Equal(t, p2.Number(), parents[1].Number())
}

func TestClauseLiteralsSortedCanonically(t *testing.T) {
	ts := term.NewStore(nil)
	a, err := ts.InternApply("a", term.Unsorted, nil)
	require.NoError(t, err)
	l3, err := ts.InternLiteral("r", true, []term.TermID{a})
	require.NoError(t, err)
	l1, err := ts.InternLiteral("p", true, []term.TermID{a})
	require.NoError(t, err)
	l2, err := ts.InternLiteral("q", true, []term.TermID{a})
	require.NoError(t, err)

	ks := NewStore(nil)
	c := NewClause(ks.NextNumber(), ts, []term.LitID{l3, l1, l2}, &Inference{Rule: "input"}, AXIOM)

	lits := c.Literals()
	require.Len(t, lits, 3)
	for i := 1; i < len(lits); i++ {
		assert.Less(t, lits[i-1], lits[i], "literals must be sorted ascending by id")
	}
}

func TestRefCountUnderflowIsFatal(t *testing.T) {
	ts := term.NewStore(nil)
	ks := NewStore(nil)
	c := NewClause(ks.NextNumber(), ts, nil, &Inference{Rule: "input"}, AXIOM)

	_, err := c.DecRef()
	require.ErrorIs(t, err, ErrRefCountUnderflow)

	c.IncRef()
	destroyed, err := c.DecRef()
	require.NoError(t, err)
	assert.True(t, destroyed)
}
