package chain

import "fmt"

// InvariantErrType enumerates the ways a store insertion can find the store
// in a state that the invariants rule out.
type InvariantErrType uint32

const (
	// NoParentScore means the parent post is present but its cumulative
	// score is missing.
	NoParentScore InvariantErrType = iota
	// ScoreOverflow means a cumulative score exceeded 2^256 - 1.
	ScoreOverflow
)

// InvariantErr reports a broken store invariant. The policy is to log it and
// skip the offending post; the node loop never crashes on one.
type InvariantErr struct {
	errType InvariantErrType
	hash    Hash
}

// NewInvariantErr creates a new InvariantErr for the post with the given hash.
func NewInvariantErr(errType InvariantErrType, hash Hash) InvariantErr {
	return InvariantErr{
		errType: errType,
		hash:    hash,
	}
}

// Error implements the error interface.
func (e InvariantErr) Error() string {
	m := ""
	switch e.errType {
	case NoParentScore:
		m = "parent has no score"
	case ScoreOverflow:
		m = "cumulative score overflow"
	}

	return fmt.Sprintf("%s, %s", e.hash.Short(), m)
}

// IsInvariant checks that an error is an InvariantErr of the given type.
func IsInvariant(err error, t InvariantErrType) bool {
	invErr, ok := err.(InvariantErr)
	return ok && invErr.errType == t
}
