package controller

import "errors"

// ErrUnknownStrategy is returned when a strategy identifier does not
// name one of the Controller's built-in scoring strategies (spec.md
// §6 "Control intake").
var ErrUnknownStrategy = errors.New("controller: unknown strategy")

// ErrNotRunning is returned by Decide when the Controller's state
// machine is not in the RUNNING state (spec.md §4.3 "State machine").
var ErrNotRunning = errors.New("controller: not running")
