package term

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashConsIdentity(t *testing.T) {
	s := NewStore(nil)

	x1, err := s.InternVariable(1, Unsorted)
	require.NoError(t, err)
	x2, err := s.InternVariable(1, Unsorted)
	require.NoError(t, err)
	assert.Equal(t, x1, x2, "interning the same variable twice must return the same id")

	a1, err := s.InternApply("a", Unsorted, nil)
	require.NoError(t, err)
	a2, err := s.InternApply("a", Unsorted, nil)
	require.NoError(t, err)
	assert.Equal(t, a1, a2)

	f1, err := s.InternApply("f", Unsorted, []TermID{a1, x1})
	require.NoError(t, err)
	f2, err := s.InternApply("f", Unsorted, []TermID{a2, x2})
	require.NoError(t, err)
	assert.Equal(t, f1, f2, "structurally equal compounds must share one instance")

	// A different argument order is a different term.
	g, err := s.InternApply("f", Unsorted, []TermID{x1, a1})
	require.NoError(t, err)
	assert.NotEqual(t, f1, g)
}

func TestWeightCaching(t *testing.T) {
	s := NewStore(nil)
	a, err := s.InternApply("a", Unsorted, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, s.Term(a).Weight)

	x, err := s.InternVariable(0, Unsorted)
	require.NoError(t, err)

	f, err := s.InternApply("f", Unsorted, []TermID{a, x})
	require.NoError(t, err)
	// weight = sum(children) + 1 = 1 + 1 + 1 = 3
	assert.Equal(t, 3, s.Term(f).Weight)
}

func TestColorPropagation(t *testing.T) {
	s := NewStore(nil)
	s.DeclareSymbolColor("leftOnly", LEFT)
	s.DeclareSymbolColor("rightOnly", RIGHT)

	l, err := s.InternApply("leftOnly", Unsorted, nil)
	require.NoError(t, err)
	assert.Equal(t, LEFT, s.Term(l).Color)

	r, err := s.InternApply("rightOnly", Unsorted, nil)
	require.NoError(t, err)
	assert.Equal(t, RIGHT, s.Term(r).Color)

	wrap, err := s.InternApply("wrap", Unsorted, []TermID{l})
	require.NoError(t, err)
	assert.Equal(t, LEFT, s.Term(wrap).Color, "a transparent symbol over a LEFT child is LEFT")

	_, err = s.InternApply("mixed", Unsorted, []TermID{l, r})
	require.ErrorIs(t, err, ErrInvalidColor)
}

func TestLiteralHashConsIdentity(t *testing.T) {
	s := NewStore(nil)
	a, err := s.InternApply("a", Unsorted, nil)
	require.NoError(t, err)

	l1, err := s.InternLiteral("p", true, []TermID{a})
	require.NoError(t, err)
	l2, err := s.InternLiteral("p", true, []TermID{a})
	require.NoError(t, err)
	assert.Equal(t, l1, l2)

	l3, err := s.InternLiteral("p", false, []TermID{a})
	require.NoError(t, err)
	assert.NotEqual(t, l1, l3, "polarity differentiates literals")
}

func TestStats(t *testing.T) {
	s := NewStore(nil)
	_, err := s.InternVariable(0, Unsorted)
	require.NoError(t, err)
	_, err = s.InternApply("a", Unsorted, nil)
	require.NoError(t, err)

	stats := s.Stats()
	assert.Equal(t, 2, stats.NumTerms)
	assert.Equal(t, 0, stats.NumLiterals)
}
