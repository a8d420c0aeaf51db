package topology

import "sort"

// Lane is one lane of a Road. Identifiers are encoded so that
// laneID/10 == roadID
// (spec.md §3/§4.1).
type Lane struct {
	ID      int32
	RoadID  int32
	Index   int // position within the road, 0 = rightmost from the origin side

	Lambda float64 // Poisson arrival rate, vehicles/sec; may be 0
	Length float64 // L
	VMax   float64 // speed ceiling
	AccelMax float64 // A+
	DecelMax float64 // A-

	vehicles []*Vehicle // kept sorted ascending by Distance
}

// NewLane constructs a lane with no vehicles.
func NewLane(id, roadID int32, index int, lambda, length, vmax, accelMax, decelMax float64) *Lane {
	return &Lane{
		ID: id, RoadID: roadID, Index: index,
		Lambda: lambda, Length: length, VMax: vmax,
		AccelMax: accelMax, DecelMax: decelMax,
	}
}

// Vehicles returns the lane's vehicles ordered from closest to the
// stop line (smallest Distance) to farthest.
func (l *Lane) Vehicles() []*Vehicle {
	return l.vehicles
}

// Insert adds v to the lane, keeping vehicles sorted by Distance.
func (l *Lane) Insert(v *Vehicle) {
	i := sort.Search(len(l.vehicles), func(i int) bool {
		return l.vehicles[i].Distance >= v.Distance
	})
	l.vehicles = append(l.vehicles, nil)
	copy(l.vehicles[i+1:], l.vehicles[i:])
	l.vehicles[i] = v
}

// Remove deletes v from the lane's vehicle list. It is a no-op if v is
// not present.
func (l *Lane) Remove(v *Vehicle) {
	for i, o := range l.vehicles {
		if o == v {
			l.vehicles = append(l.vehicles[:i], l.vehicles[i+1:]...)
			return
		}
	}
}

// Resort re-establishes sorted order after in-place Distance mutation,
// which the kinematic update performs on every vehicle every tick.
// Insertion sort is used since a single tick rarely reorders more than
// adjacent pairs.
func (l *Lane) Resort() {
	for i := 1; i < len(l.vehicles); i++ {
		for j := i; j > 0 && l.vehicles[j-1].Distance > l.vehicles[j].Distance; j-- {
			l.vehicles[j-1], l.vehicles[j] = l.vehicles[j], l.vehicles[j-1]
		}
	}
}

// VehicleAhead returns the nearest vehicle with a strictly smaller
// Distance than before (i.e. strictly closer to/through the stop
// line), or nil if none.
func (l *Lane) VehicleAhead(before float64) *Vehicle {
	var ahead *Vehicle
	for _, v := range l.vehicles {
		if v.Distance < before {
			ahead = v
		} else {
			break
		}
	}
	return ahead
}

// Occupancy returns the bumper-to-bumper occupied length as a fraction
// of the lane's length, the formula SPEC_FULL.md's SUPPLEMENTED
// FEATURES section grounds on original_source/utils/Road.py's congestion
// computation. Only vehicles still approaching (Distance in [0, L])
// count.
func (l *Lane) Occupancy(vehicleFootprint float64) float64 {
	if l.Length <= 0 {
		return 0
	}
	occupied := 0.0
	for _, v := range l.vehicles {
		if v.Distance >= 0 && v.Distance <= l.Length {
			occupied += vehicleFootprint
		}
	}
	frac := occupied / l.Length
	if frac > 1 {
		frac = 1
	}
	return frac
}
