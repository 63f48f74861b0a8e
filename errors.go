package qunit

import "errors"

// Sentinel errors, wrapped with fmt.Errorf at call sites, following a flat
// errors.New convention rather than a wrapping library.
var (
	// ErrUnsupportedOperation marks an invariant violation: the caller
	// asked for something the core deliberately does not implement, such
	// as controlled-with-carry arithmetic.
	ErrUnsupportedOperation = errors.New("qunit: unsupported operation")

	// ErrOutOfMemory marks a backend resource exhaustion. The core never
	// retries; it surfaces the failure to the caller unchanged.
	ErrOutOfMemory = errors.New("qunit: engine backend out of memory")

	// ErrQubitOutOfRange is raised for a logical qubit identifier outside
	// [0, qubitCount).
	ErrQubitOutOfRange = errors.New("qunit: qubit index out of range")
)
