package controller_test

import (
	"testing"

	"github.com/junctionsim/core/controller"
	"github.com/junctionsim/core/snapshot"
	"github.com/junctionsim/core/topology"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func threeLightJunction(t *testing.T) *topology.Junction {
	t.Helper()
	lane := func(id int32) topology.LaneSpec {
		return topology.LaneSpec{ID: id, Length: 100, VMax: 15, AccelMax: 2, DecelMax: 4}
	}
	spec := topology.JunctionSpec{
		ID: 1,
		Roads: []topology.RoadSpec{
			{ID: 11, FromSide: topology.South, ToSide: topology.North, Lanes: []topology.LaneSpec{lane(111)}},
			{ID: 12, FromSide: topology.North, ToSide: topology.South, Lanes: []topology.LaneSpec{lane(121)}},
			{ID: 13, FromSide: topology.West, ToSide: topology.East, Lanes: []topology.LaneSpec{lane(131)}},
		},
		Lights: []topology.LightSpec{
			{ID: 1, OriginLaneIDs: []int32{111}, DestinationLaneIDs: []int32{121}},
			{ID: 2, OriginLaneIDs: []int32{121}, DestinationLaneIDs: []int32{111}},
			{ID: 3, OriginLaneIDs: []int32{131}, DestinationLaneIDs: []int32{111}},
		},
	}
	j, err := topology.Build(spec)
	require.NoError(t, err)
	return j
}

func snapWithVehicles(laneCounts map[int32]int) snapshot.Snapshot {
	var lanes []snapshot.LaneView
	var id int64
	for laneID, n := range laneCounts {
		var vs []snapshot.VehicleView
		for i := 0; i < n; i++ {
			id++
			vs = append(vs, snapshot.VehicleView{ID: id, LaneID: laneID, Distance: 10, Kind: topology.KindNormal})
		}
		lanes = append(lanes, snapshot.LaneView{ID: laneID, Vehicles: vs})
	}
	return snapshot.Snapshot{JunctionID: 1, Lanes: lanes}
}

func TestParseStrategyUnknown(t *testing.T) {
	_, err := controller.ParseStrategy("not_a_strategy")
	assert.ErrorIs(t, err, controller.ErrUnknownStrategy)
}

func TestDecideRequiresRunning(t *testing.T) {
	c := controller.New(controller.SmartFair, controller.DefaultTunables())
	j := threeLightJunction(t)
	c.Retopology([][]int32{{1}, {2}, {3}})
	_, err := c.Decide(j, snapshot.Snapshot{}, 0)
	assert.ErrorIs(t, err, controller.ErrNotRunning)
}

func TestDecidePicksHeaviestVolume(t *testing.T) {
	c := controller.New(controller.VolumeBased, controller.DefaultTunables())
	j := threeLightJunction(t)
	c.Retopology([][]int32{{1}, {2}, {3}})
	require.NoError(t, c.Start())

	snap := snapWithVehicles(map[int32]int{111: 1, 121: 0, 131: 5})
	states, err := c.Decide(j, snap, 0)
	require.NoError(t, err)
	assert.Equal(t, topology.Green, states[3])
	assert.Equal(t, topology.Red, states[1])
	assert.Equal(t, topology.Red, states[2])
}

func TestDecideHysteresisHoldsCurrentPhase(t *testing.T) {
	tunables := controller.DefaultTunables()
	tunables.Hysteresis = 1000 // effectively never switch on a small margin
	c := controller.New(controller.VolumeBased, tunables)
	j := threeLightJunction(t)
	c.Retopology([][]int32{{1}, {2}, {3}})
	require.NoError(t, c.Start())

	first, err := c.Decide(j, snapWithVehicles(map[int32]int{111: 5}), 0)
	require.NoError(t, err)
	assert.Equal(t, topology.Green, first[1])

	// Light 3's lane now has more vehicles, but the margin is far below
	// the (artificially huge) hysteresis threshold, so phase {1} holds.
	second, err := c.Decide(j, snapWithVehicles(map[int32]int{111: 5, 131: 6}), 1)
	require.NoError(t, err)
	assert.Equal(t, topology.Green, second[1])
	assert.Equal(t, topology.Red, second[3])
}

func TestDecideRoundRobinCyclesByDwellTime(t *testing.T) {
	tunables := controller.DefaultTunables()
	tunables.RoundRobinT = 10
	c := controller.New(controller.RoundRobin, tunables)
	j := threeLightJunction(t)
	c.Retopology([][]int32{{1}, {2}, {3}})
	require.NoError(t, c.Start())

	empty := snapshot.Snapshot{}
	first, err := c.Decide(j, empty, 0)
	require.NoError(t, err)
	assert.Equal(t, topology.Green, first[1], "the first activation must serve phases[0], not skip ahead")

	second, err := c.Decide(j, empty, 1) // inside dwell time, no switch
	require.NoError(t, err)
	assert.Equal(t, first, second)

	third, err := c.Decide(j, empty, 11) // past dwell time, must switch
	require.NoError(t, err)
	assert.NotEqual(t, first, third)
	assert.Equal(t, topology.Green, third[2], "after one dwell period the sequence must advance to phases[1]")
}

func TestRetopologyDropsStalePhaseWaits(t *testing.T) {
	c := controller.New(controller.SmartFair, controller.DefaultTunables())
	j := threeLightJunction(t)
	c.Retopology([][]int32{{1}, {2}, {3}})
	require.NoError(t, c.Start())

	_, err := c.Decide(j, snapWithVehicles(map[int32]int{111: 2}), 0)
	require.NoError(t, err)

	// Drop phase {1} from the enumeration (as if topology changed).
	c.Retopology([][]int32{{2}, {3}})
	states, err := c.Decide(j, snapWithVehicles(map[int32]int{121: 1}), 1)
	require.NoError(t, err)
	assert.Equal(t, topology.Green, states[2])
}
