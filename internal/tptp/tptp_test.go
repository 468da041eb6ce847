package tptp

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/proofcore/proofcore/internal/kernel"
	"github.com/proofcore/proofcore/internal/term"
)

func TestReadClausesParsesGroundAndVariableLiterals(t *testing.T) {
	input := `% a comment line
cnf(c1, axiom, p(a) | ~q(X,f(X))).
cnf(c2, negated_conjecture, r).
`
	clauses, err := ReadClauses(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, clauses, 2)

	assert.Equal(t, "c1", clauses[0].Name)
	assert.Equal(t, "axiom", clauses[0].Role)
	require.Len(t, clauses[0].Literals, 2)
	assert.Equal(t, "p", clauses[0].Literals[0].Pred)
	assert.False(t, clauses[0].Literals[0].Negated)
	assert.Equal(t, "q", clauses[0].Literals[1].Pred)
	assert.True(t, clauses[0].Literals[1].Negated)
	require.Len(t, clauses[0].Literals[1].Args, 2)
	assert.Equal(t, "X", clauses[0].Literals[1].Args[0].Name)
	assert.Equal(t, "f", clauses[0].Literals[1].Args[1].Name)

	assert.Equal(t, "negated_conjecture", clauses[1].Role)
	require.Len(t, clauses[1].Literals, 1)
	assert.Equal(t, "r", clauses[1].Literals[0].Pred)
}

func TestReadClausesAcrossMultipleLines(t *testing.T) {
	input := "cnf(c1, axiom,\n  p(a) |\n  q(b)).\n"
	clauses, err := ReadClauses(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, clauses, 1)
	require.Len(t, clauses[0].Literals, 2)
}

func TestReadClausesRejectsMalformedInput(t *testing.T) {
	_, err := ReadClauses(strings.NewReader("cnf(c1 axiom, p(a))."))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedInput)
}

func TestBuildAndWriteClauseRoundTrips(t *testing.T) {
	ts := term.NewStore(nil)
	ks := kernel.NewStore(nil)

	clauses, err := ReadClauses(strings.NewReader("cnf(c1, axiom, p(a) | ~q(X,f(X))).\n"))
	require.NoError(t, err)

	clause, err := BuildClause(ts, ks, clauses[0])
	require.NoError(t, err)
	require.Len(t, clause.Literals(), 2)

	var buf bytes.Buffer
	require.NoError(t, WriteClause(&buf, ts, clause))
	out := buf.String()
	assert.Contains(t, out, "cnf(c")
	assert.Contains(t, out, "p(a)")
	assert.Contains(t, out, "~q(X0,f(X0))")
}

func TestBuildClauseEmptyClauseWritesAsFalse(t *testing.T) {
	ts := term.NewStore(nil)
	ks := kernel.NewStore(nil)

	expr := &ClauseExpr{Name: "empty", Role: "plain"}
	clause, err := BuildClause(ts, ks, expr)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteClause(&buf, ts, clause))
	assert.Contains(t, buf.String(), "$false")
}
