package main

import (
	"context"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/proofcore/proofcore/internal/budget"
	"github.com/proofcore/proofcore/internal/kernel"
	"github.com/proofcore/proofcore/internal/signals"
	"github.com/proofcore/proofcore/internal/stats"
	"github.com/proofcore/proofcore/internal/term"
	"github.com/proofcore/proofcore/internal/tptp"
)

// ErrUnsupportedOptions reports any --mode value other than
// "clausify", the only one currently supported.
var ErrUnsupportedOptions = errors.New("clausify: unsupported --mode value")

// run executes one clausify invocation: parse o.inputPath (or stdin),
// intern every clause through internal/term and internal/kernel, and
// re-emit it through internal/tptp. This is deliberately a
// normalizing round-trip rather than a FOF-to-CNF transformation: the
// saturation front end and full TPTP parsing are external
// collaborators outside this module's scope, so clausify mode here
// operates on TPTP's CNF subset only.
func run(handler *signals.Handler, o options, logger logrus.FieldLogger) error {
	if o.mode != "clausify" {
		return errors.Wrapf(ErrUnsupportedOptions, "mode %q", o.mode)
	}

	b := budget.New(o.timeLimit, o.memoryLimitMB)
	ctx, cancel := b.WithContext(handler.Context())
	defer cancel()

	in, closeIn, err := openInput(o.inputPath)
	if err != nil {
		return err
	}
	defer closeIn()

	out, closeOut, err := openOutput(o.outputPath)
	if err != nil {
		return err
	}
	defer closeOut()

	exprs, err := tptp.ReadClauses(in)
	if err != nil {
		return err
	}

	ts := term.NewStore(logger)
	ks := kernel.NewStore(logger)

	for i, expr := range exprs {
		if i%64 == 0 {
			if err := checkCancelled(ctx, b, handler); err != nil {
				return err
			}
		}
		clause, err := tptp.BuildClause(ts, ks, expr)
		if err != nil {
			return err
		}
		if err := tptp.WriteClause(out, ts, clause); err != nil {
			return err
		}
	}

	snap := ts.Stats()
	stats.ObserveStore(stats.StoreSnapshot{NumTerms: snap.NumTerms, NumLiterals: snap.NumLiterals, TotalWeight: snap.TotalWeight})
	stats.ObserveClauseCount(ks.Len())
	logger.WithFields(logrus.Fields{
		"terms":    snap.NumTerms,
		"literals": snap.NumLiterals,
		"clauses":  ks.Len(),
		"weight":   snap.TotalWeight,
	}).Info("clausify: done")

	return checkCancelled(ctx, b, handler)
}

// checkCancelled folds the three ways a run can be asked to stop
// (wall-clock/memory budget, parent context, OS signal) into the
// sentinel errors exitCode understands.
func checkCancelled(ctx context.Context, b *budget.Budget, handler *signals.Handler) error {
	if err := b.Check(); err != nil {
		return err
	}
	select {
	case <-ctx.Done():
		if handler.IsInterrupt() {
			return errSIGINT
		}
		if handler.Caught() != nil {
			return errOtherSignal
		}
		return ctx.Err()
	default:
		return nil
	}
}

func openInput(path string) (io.Reader, func(), error) {
	if path == "" || path == "-" {
		return os.Stdin, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "clausify: opening input %q", path)
	}
	return f, func() { f.Close() }, nil
}

func openOutput(path string) (io.Writer, func(), error) {
	if path == "" || path == "-" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "clausify: creating output %q", path)
	}
	return f, func() { f.Close() }, nil
}
