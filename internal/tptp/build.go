package tptp

import (
	"github.com/proofcore/proofcore/internal/kernel"
	"github.com/proofcore/proofcore/internal/term"
)

// roleToInputType maps a TPTP formula role to the closest InputType;
// anything not recognized is treated as a plain axiom.
func roleToInputType(role string) kernel.InputType {
	switch role {
	case "hypothesis", "assumption":
		return kernel.ASSUMPTION
	case "lemma":
		return kernel.LEMMA
	case "conjecture", "negated_conjecture":
		return kernel.CONJECTURE
	default:
		return kernel.AXIOM
	}
}

// BuildClause interns one parsed ClauseExpr's literals into ts and
// registers a Clause under ks. Each clause gets its own fresh variable
// numbering (TPTP variables are scoped to the formula they appear in).
func BuildClause(ts *term.Store, ks *kernel.Store, expr *ClauseExpr) (*kernel.Clause, error) {
	vars := make(map[string]int)
	nextVar := 0

	var internTerm func(t *TermExpr) (term.TermID, error)
	internTerm = func(t *TermExpr) (term.TermID, error) {
		if t.isVariable() {
			id, ok := vars[t.Name]
			if !ok {
				id = nextVar
				nextVar++
				vars[t.Name] = id
			}
			return ts.InternVariable(id, term.Unsorted)
		}
		args := make([]term.TermID, len(t.Args))
		for i, a := range t.Args {
			tid, err := internTerm(a)
			if err != nil {
				return 0, err
			}
			args[i] = tid
		}
		return ts.InternApply(t.Name, term.Unsorted, args)
	}

	lits := make([]term.LitID, 0, len(expr.Literals))
	for _, le := range expr.Literals {
		args := make([]term.TermID, len(le.Args))
		for i, a := range le.Args {
			tid, err := internTerm(a)
			if err != nil {
				return nil, err
			}
			args[i] = tid
		}
		lid, err := ts.InternLiteral(le.Pred, !le.Negated, args)
		if err != nil {
			return nil, err
		}
		lits = append(lits, lid)
	}

	number := ks.NextNumber()
	clause := kernel.NewClause(number, ts, lits, &kernel.Inference{Rule: "input"}, roleToInputType(expr.Role))
	if err := ks.Register(clause); err != nil {
		return nil, err
	}
	return clause, nil
}
