package interpolant

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/proofcore/proofcore/internal/kernel"
	"github.com/proofcore/proofcore/internal/smt"
	"github.com/proofcore/proofcore/internal/term"
)

// Target selects which symbol-count proxy the minimizer's cost
// function optimizes.
type Target int

const (
	// WEIGHT minimizes total symbol-count weight of digest components.
	WEIGHT Target = iota
	// COUNT minimizes the number of distinct non-trivial components.
	COUNT
	// QUANTIFIERS minimizes total distinct-variable count.
	QUANTIFIERS
)

// Result is the outcome of Minimize.
type Result struct {
	// SlicedOff holds the units reconstruction collapsed through their
	// children: transparent, leadsToColor, and S(u) true in the chosen
	// model. Empty when Fallback is true.
	SlicedOff map[kernel.UnitNumber]bool
	// Digest is the sorted set of atomic components the reconstructed
	// interpolant actually contains (V(c) true in the chosen model).
	Digest []ComponentID
	// Interpolant is the reconstructed interpolant content: the
	// conjunction of Digest's component texts.
	Interpolant Formula
	Outcome     smt.Outcome
	// Fallback is true when minimization could not produce a model
	// (Unsat or Timeout) and Interpolant was instead reconstructed from
	// a plain satisfiability search with slicing disabled.
	Fallback bool
}

// Minimize runs the full pipeline: traverse the proof DAG from
// refutation, encode the weighted boolean problem, hand it to a
// backend built by newBackend, and translate the result back into a
// slicing set and reconstructed interpolant. newBackend is a factory
// rather than a single instance because the Unsat/Timeout fallback path
// re-encodes with slicing disabled and needs its own fresh, unsolved
// backend to do it on.
func Minimize(ctx context.Context, newBackend func() smt.Backend, store *term.Store, kstore *kernel.Store, refutation kernel.Unit, target Target, allowSlicing bool, logger logrus.FieldLogger) (*Result, error) {
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	order, err := Traverse(kstore, refutation)
	if err != nil {
		return nil, err
	}

	backend := newBackend()
	enc := Encode(backend, store, kstore, order, refutation, allowSlicing)

	var terms []smt.WeightedLit
	for id, lit := range enc.V {
		info := enc.Components[id]
		if w := weightForTarget(info, target); w > 0 {
			terms = append(terms, smt.WeightedLit{Lit: lit, Weight: w})
		}
	}

	model, outcome, err := backend.MinimizeWeighted(ctx, terms)
	if err != nil {
		return nil, err
	}

	if outcome == smt.Unsat || outcome == smt.Timeout {
		return minimizeFallback(ctx, newBackend, store, kstore, order, refutation, outcome, logger)
	}
	if outcome == smt.Approximate {
		logger.WithField("outcome", outcome.String()).Info("interpolant minimizer: using an approximate (non-optimal) model")
	}

	sliced := make(map[kernel.UnitNumber]bool)
	for _, u := range enc.Relevant {
		if model.Value(enc.S[u.Number()]) {
			sliced[u.Number()] = true
		}
	}
	formula, digest := reconstruct(enc, model)
	return &Result{
		SlicedOff:   sliced,
		Digest:      digest,
		Interpolant: formula,
		Outcome:     outcome,
		Fallback:    false,
	}, nil
}

// minimizeFallback re-encodes the same unit order with slicing disabled
// and asks for any satisfying assignment (no weighted objective): a
// valid, un-minimized digest is good enough when the optimizer itself
// couldn't produce one.
func minimizeFallback(ctx context.Context, newBackend func() smt.Backend, store *term.Store, kstore *kernel.Store, order []kernel.Unit, refutation kernel.Unit, origOutcome smt.Outcome, logger logrus.FieldLogger) (*Result, error) {
	logger.WithField("outcome", origOutcome.String()).Warn("interpolant minimizer: falling back to unminimized interpolant")

	backend := newBackend()
	enc := Encode(backend, store, kstore, order, refutation, false)
	model, outcome, err := backend.MinimizeWeighted(ctx, nil)
	if err != nil {
		return nil, err
	}
	if outcome == smt.Unsat || outcome == smt.Timeout {
		logger.WithField("outcome", outcome.String()).Error("interpolant minimizer: even the unminimized encoding has no model")
		return &Result{SlicedOff: map[kernel.UnitNumber]bool{}, Outcome: outcome, Fallback: true}, nil
	}
	formula, digest := reconstruct(enc, model)
	return &Result{
		SlicedOff:   map[kernel.UnitNumber]bool{},
		Digest:      digest,
		Interpolant: formula,
		Outcome:     origOutcome,
		Fallback:    true,
	}, nil
}

// Err reports the sentinel matching r.Outcome when even the
// unminimized fallback produced no model (empty Interpolant), nil
// otherwise. This is a soft failure a caller may choose to treat as a
// CLI-level error or log and continue with a degraded (empty)
// interpolant.
func (r *Result) Err() error {
	if r.Interpolant.text != "" || len(r.Digest) > 0 {
		return nil
	}
	switch r.Outcome {
	case smt.Unsat:
		return ErrMinimizerUnsat
	case smt.Timeout:
		return ErrMinimizerTimeout
	default:
		return nil
	}
}

func weightForTarget(info ComponentInfo, target Target) int {
	switch target {
	case COUNT:
		if info.Weight > 0 {
			return 1
		}
		return 0
	case QUANTIFIERS:
		return info.VarCount
	default:
		return info.Weight
	}
}
