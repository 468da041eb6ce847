package smt

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBasicAssertSatisfiable(t *testing.T) {
	b := NewGiniBackend()
	a := b.NewLit("a")
	c := b.NewLit("c")
	b.Assert(b.Or(a, c))

	model, outcome, err := b.MinimizeWeighted(context.Background(), nil)
	require.NoError(t, err)
	require.Equal(t, Optimal, outcome)
	assert.True(t, model.Value(a) || model.Value(c))
}

func TestUnsatDetected(t *testing.T) {
	b := NewGiniBackend()
	a := b.NewLit("a")
	b.Assert(a)
	b.Assert(b.Not(a))

	_, outcome, err := b.MinimizeWeighted(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, Unsat, outcome)
}

func TestMinimizeWeightedPicksMinimalWeightModel(t *testing.T) {
	b := NewGiniBackend()
	a := b.NewLit("a")
	c := b.NewLit("c")
	// Exactly one of a, c must be true.
	b.Assert(b.Or(a, c))
	b.Assert(b.Not(b.And(a, c)))

	// a costs 5, c costs 1: the minimal model must pick c.
	model, outcome, err := b.MinimizeWeighted(context.Background(), []WeightedLit{
		{Lit: a, Weight: 5},
		{Lit: c, Weight: 1},
	})
	require.NoError(t, err)
	require.Equal(t, Optimal, outcome)
	assert.False(t, model.Value(a))
	assert.True(t, model.Value(c))
}

func TestMinimizeWeightedRespectsNotOperand(t *testing.T) {
	b := NewGiniBackend()
	a := b.NewLit("a")
	c := b.NewLit("c")
	b.Assert(b.And(a, b.Not(c)))

	model, outcome, err := b.MinimizeWeighted(context.Background(), []WeightedLit{
		{Lit: a, Weight: 1},
		{Lit: c, Weight: 1},
	})
	require.NoError(t, err)
	require.Equal(t, Optimal, outcome)
	assert.True(t, model.Value(a))
	assert.False(t, model.Value(c))
}

func TestMinimizeWeightedCancelledContextYieldsApproximate(t *testing.T) {
	b := NewGiniBackend()
	a := b.NewLit("a")
	b.Assert(a)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	model, outcome, err := b.MinimizeWeighted(ctx, []WeightedLit{{Lit: a, Weight: 1}})
	require.NoError(t, err)
	assert.Equal(t, Approximate, outcome)
	assert.True(t, model.Value(a))
}

func TestOutcomeString(t *testing.T) {
	assert.Equal(t, "Unsat", Unsat.String())
	assert.Equal(t, "Optimal", Optimal.String())
	assert.Equal(t, "Approximate", Approximate.String())
	assert.Equal(t, "Timeout", Timeout.String())
}
