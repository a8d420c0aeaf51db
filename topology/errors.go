package topology

import "errors"

// ErrInvalidTopology is returned by Build when the supplied topology
// violates one of spec.md §3/§4.1's construction invariants. No
// partial Junction is retained on this error (spec.md §7).
var ErrInvalidTopology = errors.New("topology: invalid junction topology")
