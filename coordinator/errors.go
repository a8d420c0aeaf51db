package coordinator

import "errors"

// ErrCollaboratorUnreachable names the failure kind that recordFailure
// counts when the snapshot publisher (Simulator) or light-state source
// (Controller) fails to exchange within its deadline (spec.md §7).
// recordFailure logs the reason as text; no function in this package
// returns or wraps this value.
var ErrCollaboratorUnreachable = errors.New("coordinator: collaborator unreachable")

// ErrCancelled names a clean shutdown (spec.md §7). No function in
// this package returns it: the loops end when the done channel closes
// at their next cycle boundary, and Stop returns nothing.
var ErrCancelled = errors.New("coordinator: cancelled")

// ErrAlreadyRunning is returned by Start when the Coordinator is not
// IDLE.
var ErrAlreadyRunning = errors.New("coordinator: already running")
