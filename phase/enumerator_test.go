package phase_test

import (
	"testing"

	"github.com/junctionsim/core/phase"
	"github.com/junctionsim/core/topology"
	"github.com/stretchr/testify/require"
)

// fourArmSpec builds a symmetric four-arm, two-lane-per-arm junction.
//
// spec.md §4.1 requires every destination lane's road to differ from
// its light's origin road, so (unlike the legacy fixture this is
// modelled after) each arm needs a separate inbound and outbound road:
// the inbound road carries a single light's origin lanes, the outbound
// road carries other lights' destination lanes for that compass
// direction. Roads 11/12/13/14 are the South/North/West/East inbound
// approaches; roads 15/16/17/18 are their outbound counterparts.
//
// Per arm, the right lane permits straight+right and the left lane
// permits straight+left, matching a conventional channelized approach.
func fourArmSpec() topology.JunctionSpec {
	lane := func(id int32) topology.LaneSpec {
		return topology.LaneSpec{ID: id, Length: 120, VMax: 15, AccelMax: 2, DecelMax: 4}
	}
	road := func(id int32, from, to topology.Side, lanes ...int32) topology.RoadSpec {
		spec := topology.RoadSpec{ID: id, FromSide: from, ToSide: to}
		for _, l := range lanes {
			spec.Lanes = append(spec.Lanes, lane(l))
		}
		return spec
	}

	return topology.JunctionSpec{
		ID: 1,
		Roads: []topology.RoadSpec{
			// Inbound approaches.
			road(11, topology.South, topology.North, 111, 112),
			road(12, topology.North, topology.South, 121, 122),
			road(13, topology.West, topology.East, 131, 132),
			road(14, topology.East, topology.West, 141, 142),
			// Outbound continuations.
			road(15, topology.South, topology.North, 151, 152),
			road(16, topology.North, topology.South, 161, 162),
			road(17, topology.West, topology.East, 171, 172),
			road(18, topology.East, topology.West, 181, 182),
		},
		Lights: []topology.LightSpec{
			// South approach (origin road 11).
			{ID: 1, OriginLaneIDs: []int32{111}, DestinationLaneIDs: []int32{151, 171}}, // straight, right
			{ID: 2, OriginLaneIDs: []int32{112}, DestinationLaneIDs: []int32{152, 181}}, // straight, left
			// North approach (origin road 12).
			{ID: 3, OriginLaneIDs: []int32{121}, DestinationLaneIDs: []int32{161, 181}}, // straight, right
			{ID: 4, OriginLaneIDs: []int32{122}, DestinationLaneIDs: []int32{162, 171}}, // straight, left
			// West approach (origin road 13).
			{ID: 5, OriginLaneIDs: []int32{131}, DestinationLaneIDs: []int32{171, 161}}, // straight, right
			{ID: 6, OriginLaneIDs: []int32{132}, DestinationLaneIDs: []int32{172, 151}}, // straight, left
			// East approach (origin road 14).
			{ID: 7, OriginLaneIDs: []int32{141}, DestinationLaneIDs: []int32{181, 151}}, // straight, right
			{ID: 8, OriginLaneIDs: []int32{142}, DestinationLaneIDs: []int32{182, 161}}, // straight, left
		},
	}
}

// allCompatible reports whether every pairwise combination within a
// phase satisfies Compatible, i.e. property P1 (Safety).
func allCompatible(t *testing.T, j *topology.Junction, ids []int32) bool {
	t.Helper()
	for i := 0; i < len(ids); i++ {
		for k := i + 1; k < len(ids); k++ {
			a, aok := j.Light(ids[i])
			b, bok := j.Light(ids[k])
			require.True(t, aok)
			require.True(t, bok)
			if !phase.Compatible(j, a, b) {
				return false
			}
		}
	}
	return true
}

func contains(ids []int32, id int32) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func TestEnumerateSafety(t *testing.T) {
	j, err := topology.Build(fourArmSpec())
	require.NoError(t, err)

	phases := phase.Enumerate(j)
	require.NotEmpty(t, phases)

	for _, p := range phases {
		require.True(t, allCompatible(t, j, p), "phase %v contains an incompatible pair", p)
	}
}

func TestEnumerateMaximality(t *testing.T) {
	j, err := topology.Build(fourArmSpec())
	require.NoError(t, err)

	phases := phase.Enumerate(j)
	require.NotEmpty(t, phases)

	allLights := j.Lights()
	for _, p := range phases {
		for _, light := range allLights {
			if contains(p, light.ID) {
				continue
			}
			extended := append(append([]int32{}, p...), light.ID)
			require.False(t, allCompatible(t, j, extended),
				"phase %v is not maximal: light %d could be added", p, light.ID)
		}
	}
}

// TestEnumerateKnownPairs spot-checks specific movement pairs against
// spec.md §4.2's three sub-predicates directly, independent of the
// full enumeration.
func TestEnumerateKnownPairs(t *testing.T) {
	j, err := topology.Build(fourArmSpec())
	require.NoError(t, err)

	get := func(id int32) *topology.TrafficLight {
		l, ok := j.Light(id)
		require.True(t, ok)
		return l
	}

	// Light 1 (South, straight+right) and Light 5 (West, straight+right)
	// both permit straight-through on perpendicular origin roads
	// (South=2, West=3, sum odd): sub-predicate 2 forbids this pair.
	require.False(t, phase.Compatible(j, get(1), get(5)))

	// Light 1 (South) and Light 3 (North): opposite origins, no
	// destination overlap, neither permits a left turn. Compatible.
	require.True(t, phase.Compatible(j, get(1), get(3)))

	// Light 2 (South, straight+left) and Light 4 (North, straight+left):
	// both permit a protected left from different origins, and neither
	// is all-right-turn, so sub-predicate 3 forbids this pair even
	// though the two lefts geometrically do not cross.
	require.False(t, phase.Compatible(j, get(2), get(4)))

	// Light 1 (South, straight+right) and Light 7 (East, straight+right):
	// perpendicular origins (South=2, East=1, sum odd) both straight:
	// forbidden by sub-predicate 2.
	require.False(t, phase.Compatible(j, get(1), get(7)))
}
