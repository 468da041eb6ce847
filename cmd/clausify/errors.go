package main

import "github.com/pkg/errors"

// errSIGINT and errOtherSignal distinguish the CLI's two
// signal-triggered exit codes (3 for SIGINT, 2 for anything else that
// cancelled the run) from ordinary failure (1).
var (
	errSIGINT      = errors.New("clausify: interrupted (SIGINT)")
	errOtherSignal = errors.New("clausify: terminated by signal")
)

// exitCode maps a run() error to the CLI's exit codes.
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, errSIGINT):
		return 3
	case errors.Is(err, errOtherSignal):
		return 2
	default:
		return 1
	}
}
