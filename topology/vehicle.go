package topology

// VehicleKind distinguishes ordinary traffic from priority vehicles
// (spec.md §3); SPEC_FULL.md's priority-weight scoring reads this.
type VehicleKind int

const (
	KindNormal VehicleKind = iota
	KindPriority
)

// Vehicle is one simulated car. Vehicles are owned by their current
// Lane and transferred by move semantics on lane change (spec.md §3,
// §9): there is no back-pointer to a "current lane" field here, the
// owning Lane's vehicle list is the sole source of truth for where a
// vehicle lives, mirroring the teacher's lane-list ownership model
// (entity/lane/lane.go's laneList).
type Vehicle struct {
	ID int64

	// Distance is the signed distance to the stop line: positive
	// before the junction, zero at the line, negative after.
	Distance float64
	Velocity float64

	OriginLaneID      int32
	DestinationLaneID int32
	Kind              VehicleKind

	// destinationChosen records whether DestinationLaneID has been
	// assigned. The simulator draws it at spawn (spec.md §3), or at
	// lane transfer for a vehicle that has none yet.
	destinationChosen bool
}

// HasDestination reports whether a destination lane has been assigned.
func (v *Vehicle) HasDestination() bool { return v.destinationChosen }

// SetDestination assigns the destination lane and marks it chosen.
func (v *Vehicle) SetDestination(laneID int32) {
	v.DestinationLaneID = laneID
	v.destinationChosen = true
}
