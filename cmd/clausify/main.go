// Command clausify is the CLI front end for the proof core: it parses
// a TPTP CNF-subset input, interns every clause through the term and
// unit stores, and re-emits them, exiting 0 on success, 1 on failure,
// 2 on a non-SIGINT terminating signal, or 3 on SIGINT.
package main

import "os"

func main() {
	cmd := newRootCmd()
	err := cmd.Execute()
	os.Exit(exitCode(err))
}
