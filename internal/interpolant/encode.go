package interpolant

import (
	"github.com/proofcore/proofcore/internal/kernel"
	"github.com/proofcore/proofcore/internal/smt"
	"github.com/proofcore/proofcore/internal/term"
)

// Encoding is the weighted-boolean problem built over a colored proof
// DAG: one set of R/B/G/S/RC/BC/RF/BF/D variables per transparent unit
// on a path to color, plus one V variable per atomic component.
type Encoding struct {
	R, B, G, S, RC, BC, RF, BF, D map[kernel.UnitNumber]smt.Lit
	V                             map[ComponentID]smt.Lit
	Components                    map[ComponentID]ComponentInfo
	Relevant                      []kernel.Unit // transparent, leadsToColor units, in Traverse's order
}

func implies(b smt.Backend, a, c smt.Lit) smt.Lit { return b.Or(b.Not(a), c) }

func iff(b smt.Backend, a, c smt.Lit) smt.Lit { return b.And(implies(b, a, c), implies(b, c, a)) }

func assertIff(b smt.Backend, a, c smt.Lit) { b.Assert(iff(b, a, c)) }

func assertImplies(b smt.Backend, a, c smt.Lit) { b.Assert(implies(b, a, c)) }

// Encode builds the weighted-boolean problem over backend for the unit
// set order returned by Traverse. allowSlicing disables slicing
// entirely when false.
func Encode(backend smt.Backend, store *term.Store, kstore *kernel.Store, order []kernel.Unit, refutation kernel.Unit, allowSlicing bool) *Encoding {
	enc := &Encoding{
		R: make(map[kernel.UnitNumber]smt.Lit), B: make(map[kernel.UnitNumber]smt.Lit),
		G: make(map[kernel.UnitNumber]smt.Lit), S: make(map[kernel.UnitNumber]smt.Lit),
		RC: make(map[kernel.UnitNumber]smt.Lit), BC: make(map[kernel.UnitNumber]smt.Lit),
		RF: make(map[kernel.UnitNumber]smt.Lit), BF: make(map[kernel.UnitNumber]smt.Lit),
		D: make(map[kernel.UnitNumber]smt.Lit),
		V: make(map[ComponentID]smt.Lit), Components: make(map[ComponentID]ComponentInfo),
	}

	var relevant []kernel.Unit
	for _, u := range order {
		if u.Color() == term.TRANSPARENT && u.Trace().LeadsToColor {
			relevant = append(relevant, u)
		}
	}
	enc.Relevant = relevant

	// Phase 1: allocate every boolean variable this unit set needs,
	// before any gate references them, so Phase 2 can build formulas
	// in any order.
	for _, u := range relevant {
		n := u.Number()
		enc.R[n] = backend.NewLit("r_" + u.IDString())
		enc.B[n] = backend.NewLit("b_" + u.IDString())
		enc.G[n] = backend.NewLit("g_" + u.IDString())
		enc.S[n] = backend.NewLit("s_" + u.IDString())
		enc.RC[n] = backend.NewLit("rc_" + u.IDString())
		enc.BC[n] = backend.NewLit("bc_" + u.IDString())
		enc.RF[n] = backend.NewLit("rf_" + u.IDString())
		enc.BF[n] = backend.NewLit("bf_" + u.IDString())
		enc.D[n] = backend.NewLit("d_" + u.IDString())
		for _, info := range ComponentsOf(store, u) {
			if _, ok := enc.V[info.ID]; !ok {
				enc.V[info.ID] = backend.NewLit("v_" + string(info.ID))
				enc.Components[info.ID] = info
			}
		}
	}

	// Phase 2: assert the per-unit formulas of rules 1-9.
	for _, u := range relevant {
		n := u.Number()

		// Rule 1: distinct trace color, R xor B xor G.
		backend.Assert(backend.Or(enc.R[n], enc.B[n], enc.G[n]))
		backend.Assert(backend.Not(backend.And(enc.R[n], enc.B[n])))
		backend.Assert(backend.Not(backend.And(enc.R[n], enc.G[n])))
		backend.Assert(backend.Not(backend.And(enc.B[n], enc.G[n])))

		parents := kstore.ParentsOf(u)
		var transparentParents, leftParents, rightParents []kernel.Unit
		for _, p := range parents {
			switch p.Color() {
			case term.LEFT:
				leftParents = append(leftParents, p)
			case term.RIGHT:
				rightParents = append(rightParents, p)
			default:
				transparentParents = append(transparentParents, p)
			}
		}

		switch {
		case len(leftParents) == 0 && len(rightParents) == 0:
			// Grey-parent case: neither side's color dominates, so the
			// unit's own trace color falls out of its parents' R/B
			// marks, gated by whether this unit slices.
			var rs, bs []smt.Lit
			for _, p := range transparentParents {
				rs = append(rs, enc.R[p.Number()])
				bs = append(bs, enc.B[p.Number()])
			}
			orR := backend.Or(rs...)
			orB := backend.Or(bs...)
			assertIff(backend, enc.RC[n], backend.And(backend.Not(enc.S[n]), orR))
			assertIff(backend, enc.BC[n], backend.And(backend.Not(enc.S[n]), orB))
			backend.Assert(backend.Not(backend.And(orR, orB)))
			assertImplies(backend, backend.And(enc.S[n], orR), enc.R[n])
			assertImplies(backend, backend.And(enc.S[n], orB), enc.B[n])
			assertImplies(backend, backend.Not(enc.S[n]), enc.G[n])
		case len(leftParents) > 0:
			// Colored-parent case, left: a left parent forces this
			// unit's own color unless it slices away.
			assertIff(backend, enc.RC[n], backend.Not(enc.S[n]))
			backend.Assert(backend.Not(enc.BC[n]))
			assertImplies(backend, backend.Not(enc.S[n]), enc.G[n])
		default:
			// Colored-parent case, right: symmetric to the left case.
			assertIff(backend, enc.BC[n], backend.Not(enc.S[n]))
			backend.Assert(backend.Not(enc.RC[n]))
			assertImplies(backend, backend.Not(enc.S[n]), enc.G[n])
		}

		// A leaf with inherited color (a caller-tagged axiom whose side
		// of origin doesn't come from symbol coloring) can never slice
		// and always marks grey/digest.
		if len(parents) == 0 && u.Trace().InputInheritedColor != term.TRANSPARENT {
			backend.Assert(backend.Not(enc.S[n]))
			backend.Assert(enc.G[n])
			backend.Assert(enc.D[n])
		}

		// Fringe propagation, or the refutation's base case: at the empty
		// clause RF is false and BF is true.
		if u.Number() == refutation.Number() {
			backend.Assert(backend.Not(enc.RF[n]))
			backend.Assert(enc.BF[n])
		} else {
			var rfTerms, bfTerms []smt.Lit
			for _, sNum := range u.Trace().TransparentSuccessors {
				s := kstore.Get(sNum)
				if s == nil {
					continue
				}
				rfTerms = append(rfTerms, backend.And(backend.Or(enc.RF[sNum], enc.RC[sNum]), backend.Not(enc.BC[sNum])))
				bfTerms = append(bfTerms, backend.And(backend.Or(enc.BF[sNum], enc.BC[sNum]), backend.Not(enc.RC[sNum])))
			}
			assertIff(backend, enc.RF[n], backend.And(rfTerms...))
			assertIff(backend, enc.BF[n], backend.And(bfTerms...))
		}

		// Digest membership: a unit belongs to the interpolant digest
		// exactly when it is colored and has crossed its own fringe.
		assertIff(backend, enc.D[n], backend.Or(
			backend.And(enc.RC[n], backend.Not(enc.RF[n])),
			backend.And(enc.BC[n], backend.Not(enc.BF[n])),
		))

		// Atom implication: any unit in the digest forces every atomic
		// component it mentions into the interpolant's vocabulary.
		if infos := ComponentsOf(store, u); len(infos) > 0 {
			vs := make([]smt.Lit, len(infos))
			for i, info := range infos {
				vs[i] = enc.V[info.ID]
			}
			assertImplies(backend, enc.D[n], backend.And(vs...))
		}

		// No-slice overrides: the refutation itself never slices, and
		// neither does anything when slicing is disabled wholesale.
		if u.Number() == refutation.Number() || !allowSlicing {
			backend.Assert(backend.Not(enc.S[n]))
		}

		// Parent-of-colored exclusion: a unit that feeds a right-colored
		// successor can never itself trace red, and vice versa.
		if u.Trace().IsParentOfLeft {
			backend.Assert(backend.Not(enc.B[n]))
		}
		if u.Trace().IsParentOfRight {
			backend.Assert(backend.Not(enc.R[n]))
		}
	}

	return enc
}
