package term

import "github.com/pkg/errors"

// ErrAllocation is a fatal error raised when the store cannot grow its
// backing tables (identifier space exhausted). Callers never recover
// from it.
var ErrAllocation = errors.New("term store: insufficient system memory")

// ErrInvalidColor is raised when interning a compound whose symbol
// colors collide (LEFT and RIGHT both present). The data model
// requires the constructor to refuse such a term.
var ErrInvalidColor = errors.New("term store: mixed LEFT/RIGHT colors disallowed at creation")

// maxID bounds the identifier space; crossing it is an allocation
// failure rather than silent wraparound.
const maxID = TermID(1<<32 - 2)
