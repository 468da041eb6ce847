package kernel

import "github.com/pkg/errors"

// ErrDomainInvariant is a violated domain invariant discovered at
// runtime. The CLI's top-level handler maps it, like any other
// error, to exit code 1; it prints no statistics block or marker.
var ErrDomainInvariant = errors.New("kernel: domain invariant violated")

// ErrDuplicateRegistration fires when a unit number is registered
// twice: a unit number is assigned exactly once, and a duplicate
// registration is a programming error in the caller.
var ErrDuplicateRegistration = errors.New("kernel: unit number already registered")

// ErrRefCountUnderflow is fatal: decrementing a clause's reference
// count below zero indicates a bookkeeping bug in a caller.
var ErrRefCountUnderflow = errors.New("kernel: clause reference count underflow")

// ErrUnknownParent fires when an Inference names a parent unit number
// that was never registered.
var ErrUnknownParent = errors.New("kernel: unknown parent unit number")
