package topology

// State is the binary signal state of a TrafficLight.
type State int

const (
	Red State = iota
	Green
)

func (s State) String() string {
	if s == Green {
		return "GREEN"
	}
	return "RED"
}

// TrafficLight controls one set of origin lanes (all on the same
// road) permitting movement into a set of destination lanes (each on
// some other road). Invariants enforced at construction (spec.md §3,
// §4.1): every origin shares one road; every destination's road
// differs from the origin road.
type TrafficLight struct {
	ID int32

	OriginLaneIDs      []int32
	DestinationLaneIDs []int32

	State   State
	InAmber bool
}
