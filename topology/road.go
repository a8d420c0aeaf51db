package topology

// Road is an immutable description of one approach/departure leg of
// the junction: its compass endpoints and its ordered lanes, from
// rightmost to leftmost as seen from the origin side (spec.md §3).
type Road struct {
	ID       int32
	FromSide Side
	ToSide   Side
	Lanes    []*Lane
}

// LaneIDs returns the IDs of this road's lanes, preserving order.
func (r *Road) LaneIDs() []int32 {
	ids := make([]int32, len(r.Lanes))
	for i, l := range r.Lanes {
		ids[i] = l.ID
	}
	return ids
}
