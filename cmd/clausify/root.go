package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/proofcore/proofcore/internal/signals"
	"github.com/proofcore/proofcore/internal/stats"
)

// newRootCmd builds the clausify CLI: a cobra.Command with one flat
// options struct bound directly to its flags, and RunE wrapping a
// signal-aware context.
func newRootCmd() *cobra.Command {
	o := options{}

	cmd := &cobra.Command{
		Use:          "clausify",
		Short:        "Parse, intern, and re-emit TPTP CNF clauses",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logrus.New()
			if o.debug {
				logger.SetLevel(logrus.DebugLevel)
			}

			stats.Register()
			handler := signals.NewHandler()
			return run(handler, o, logger)
		},
	}

	cmd.Flags().StringVar(&o.mode, "mode", "clausify", "operating mode (only \"clausify\" is supported)")
	cmd.Flags().StringVar(&o.inputPath, "input", "-", "TPTP input file, or - for stdin")
	cmd.Flags().StringVar(&o.outputPath, "output", "-", "output file, or - for stdout")
	cmd.Flags().IntVar(&o.memoryLimitMB, "memory-limit", 0, "heap limit in MB; 0 disables the check")
	cmd.Flags().Int64Var(&o.randomSeed, "random-seed", 0, "seed for any randomized tie-breaking")
	cmd.Flags().DurationVar(&o.timeLimit, "time-limit", 0, "wall-clock time limit; 0 disables the check")
	cmd.Flags().BoolVar(&o.debug, "debug", false, "use debug log level")

	return cmd
}
