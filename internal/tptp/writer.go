package tptp

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/proofcore/proofcore/internal/kernel"
	"github.com/proofcore/proofcore/internal/term"
)

// WriteClause serializes one registered clause as a single
// "cnf(name, role, ...)." line, using the clause's unit number as its
// TPTP name. An empty clause is rendered as cnf(name, role, $false).
func WriteClause(w io.Writer, ts *term.Store, c *kernel.Clause) error {
	var b strings.Builder
	fmt.Fprintf(&b, "cnf(c%s, %s, ", c.IDString(), inputTypeToRole(c.InputType()))

	if len(c.Literals()) == 0 {
		b.WriteString("$false")
	} else {
		renaming := make(map[int]string)
		for i, lid := range c.Literals() {
			if i > 0 {
				b.WriteString(" | ")
			}
			writeLiteral(&b, ts, lid, renaming)
		}
	}
	b.WriteString(").\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func inputTypeToRole(t kernel.InputType) string {
	switch t {
	case kernel.ASSUMPTION:
		return "hypothesis"
	case kernel.LEMMA:
		return "plain"
	case kernel.CONJECTURE:
		return "negated_conjecture"
	default:
		return "axiom"
	}
}

func writeLiteral(b *strings.Builder, ts *term.Store, lid term.LitID, renaming map[int]string) {
	l := ts.Literal(lid)
	if l == nil {
		return
	}
	if !l.Polarity {
		b.WriteByte('~')
	}
	b.WriteString(l.Pred)
	if len(l.Args) > 0 {
		b.WriteByte('(')
		for i, a := range l.Args {
			if i > 0 {
				b.WriteByte(',')
			}
			writeTerm(b, ts, a, renaming)
		}
		b.WriteByte(')')
	}
}

func writeTerm(b *strings.Builder, ts *term.Store, tid term.TermID, renaming map[int]string) {
	n := ts.Term(tid)
	if n == nil {
		return
	}
	if n.IsVariable() {
		name, ok := renaming[n.VarID]
		if !ok {
			name = "X" + strconv.Itoa(len(renaming))
			renaming[n.VarID] = name
		}
		b.WriteString(name)
		return
	}
	b.WriteString(n.Functor)
	if len(n.Args) > 0 {
		b.WriteByte('(')
		for i, a := range n.Args {
			if i > 0 {
				b.WriteByte(',')
			}
			writeTerm(b, ts, a, renaming)
		}
		b.WriteByte(')')
	}
}
