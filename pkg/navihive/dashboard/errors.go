package dashboard

import "errors"

var (
	// ErrSessionActive is returned when starting a sort session while
	// another one is open. At most one staging buffer exists at a time.
	ErrSessionActive = errors.New("a sort session is already active")

	// ErrNoSession is returned by Move, Commit and Cancel when no sort
	// session is open.
	ErrNoSession = errors.New("no sort session is active")

	// ErrTooFewSites is the user-facing warning for starting a site sort
	// on a group with fewer than two sites.
	ErrTooFewSites = errors.New("group needs at least two sites to reorder")

	// ErrBadIndex is returned by Move for an out-of-range index.
	ErrBadIndex = errors.New("move index out of range")

	// ErrOrderRejected is returned when storage refuses a batched order
	// commit without a transport failure; the entity store keeps its
	// pre-commit order.
	ErrOrderRejected = errors.New("order update rejected by storage")

	// ErrNotFound is returned when an operation's target no longer exists
	// in storage. The controller refreshes afterwards to reconcile drift.
	ErrNotFound = errors.New("not found")

	// ErrAuthRequired is returned when storage rejects the caller's
	// credentials. Callers drop to a re-authentication flow rather than
	// showing a local error.
	ErrAuthRequired = errors.New("authentication required")
)
