package interpolant

import (
	"github.com/pkg/errors"

	"github.com/proofcore/proofcore/internal/kernel"
	"github.com/proofcore/proofcore/internal/term"
)

// Traverse walks the proof DAG depth-first from refutation toward its
// axioms, filling in each visited unit's TraceMarks: LeadsToColor, the
// three color-keyed successor lists, and IsParentOfLeft/IsParentOfRight.
// It returns every visited unit in
// post-order (each unit's parents precede it), which callers use both
// as the encoding's unit set and as a valid dependency order for any
// pass that needs parents resolved before children.
//
// TraceMarks.InputInheritedColor is read, never written, here: it is a
// caller-supplied fact (an axiom's side-of-origin, independent of
// symbol-based coloring) consulted by the encoder's "leaf with
// inherited color" rule.
func Traverse(store *kernel.Store, refutation kernel.Unit) ([]kernel.Unit, error) {
	visited := make(map[kernel.UnitNumber]bool)
	var order []kernel.Unit
	var visit func(u kernel.Unit) error
	visit = func(u kernel.Unit) error {
		if visited[u.Number()] {
			return nil
		}
		visited[u.Number()] = true

		parents := store.ParentsOf(u)
		var sawLeftParent, sawRightParent bool
		leadsToColor := u.Color() != term.TRANSPARENT

		for _, p := range parents {
			if err := visit(p); err != nil {
				return err
			}
			if p.Trace().LeadsToColor {
				leadsToColor = true
			}
			switch p.Color() {
			case term.LEFT:
				sawLeftParent = true
			case term.RIGHT:
				sawRightParent = true
			}

			switch u.Color() {
			case term.LEFT:
				p.Trace().LeftSuccessors = append(p.Trace().LeftSuccessors, u.Number())
				p.Trace().IsParentOfLeft = true
			case term.RIGHT:
				p.Trace().RightSuccessors = append(p.Trace().RightSuccessors, u.Number())
				p.Trace().IsParentOfRight = true
			default:
				p.Trace().TransparentSuccessors = append(p.Trace().TransparentSuccessors, u.Number())
			}
		}
		if sawLeftParent && sawRightParent {
			return errors.Wrapf(ErrBothColoredParents, "unit %s", u.IDString())
		}

		u.Trace().LeadsToColor = leadsToColor
		order = append(order, u)
		return nil
	}
	if err := visit(refutation); err != nil {
		return nil, err
	}
	return order, nil
}
