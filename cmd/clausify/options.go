package main

import "time"

// options holds cmd/clausify's flags: one flat struct, bound directly
// to cobra.Command.Flags().
type options struct {
	mode          string
	inputPath     string
	outputPath    string
	memoryLimitMB int
	randomSeed    int64
	timeLimit     time.Duration
	debug         bool
}
