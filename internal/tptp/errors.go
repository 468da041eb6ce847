// Package tptp implements a minimal reader/writer for the CNF subset
// of the TPTP format: enough to round-trip the clausifier's own
// output, which is restricted to cnf(...) wrappers. Full FOF parsing
// and Skolemizing clausification are out of scope; this package only
// ever sees clauses already in CNF, hand-parsed against the standard
// library's tokenizing primitives rather than a third-party grammar.
package tptp

import "github.com/pkg/errors"

// ErrMalformedInput reports a syntax error in a cnf(...) line.
var ErrMalformedInput = errors.New("tptp: malformed cnf input")
