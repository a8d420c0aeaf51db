package coordinator_test

import (
	"testing"
	"time"

	"github.com/junctionsim/core/clock"
	"github.com/junctionsim/core/controller"
	"github.com/junctionsim/core/coordinator"
	"github.com/junctionsim/core/metrics"
	"github.com/junctionsim/core/randengine"
	"github.com/junctionsim/core/simulator"
	"github.com/junctionsim/core/topology"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoApproachSpec() topology.JunctionSpec {
	return topology.JunctionSpec{
		ID: 1,
		Roads: []topology.RoadSpec{
			{ID: 11, FromSide: topology.South, ToSide: topology.North, Lanes: []topology.LaneSpec{
				{ID: 111, Length: 100, VMax: 10, AccelMax: 2, DecelMax: 4},
			}},
			{ID: 12, FromSide: topology.North, ToSide: topology.South, Lanes: []topology.LaneSpec{
				{ID: 121, Length: 100, VMax: 10, AccelMax: 2, DecelMax: 4},
			}},
			{ID: 13, FromSide: topology.West, ToSide: topology.East, Lanes: []topology.LaneSpec{
				{ID: 131, Length: 100, VMax: 10, AccelMax: 2, DecelMax: 4},
			}},
		},
		Lights: []topology.LightSpec{
			{ID: 1, OriginLaneIDs: []int32{111}, DestinationLaneIDs: []int32{121}, InitialState: topology.Red},
			{ID: 2, OriginLaneIDs: []int32{131}, DestinationLaneIDs: []int32{111}, InitialState: topology.Red},
		},
	}
}

func newTestCoordinator(t *testing.T) *coordinator.Coordinator {
	t.Helper()
	ctrl := controller.New(controller.VolumeBased, controller.DefaultTunables())
	sim := simulator.New(0.01, randengine.New(7), simulator.DefaultTunables(), metrics.New())
	clk := clock.New(0.01)
	coord := coordinator.New(ctrl, sim, clk, 20*time.Millisecond, coordinator.DefaultTunables(), metrics.New())
	require.NoError(t, coord.Build(twoApproachSpec()))
	return coord
}

func TestBuildLeavesCoordinatorIdle(t *testing.T) {
	coord := newTestCoordinator(t)
	assert.Equal(t, coordinator.Idle, coord.State())
	// Nothing public exposes phases directly, but Start/Stop must not
	// panic against an installed topology, exercised below.
}

func TestStartStopLifecycle(t *testing.T) {
	coord := newTestCoordinator(t)
	require.NoError(t, coord.Start())
	assert.Equal(t, coordinator.Running, coord.State())

	assert.ErrorIs(t, coord.Start(), coordinator.ErrAlreadyRunning)

	time.Sleep(100 * time.Millisecond)
	coord.Stop()
	assert.Equal(t, coordinator.Stopped, coord.State())

	snap := coord.Snapshot()
	assert.Equal(t, int32(1), snap.JunctionID, "sim loop should have ticked and published at least one snapshot")
}

func TestSafeFallbackNotActiveUnderNormalOperation(t *testing.T) {
	coord := newTestCoordinator(t)
	require.NoError(t, coord.Start())
	time.Sleep(150 * time.Millisecond)
	coord.Stop()
	assert.False(t, coord.SafeFallback(), "no collaborator failures were injected, safe fallback should not trigger")
}

func TestUpdateTopologyAppliesAtomically(t *testing.T) {
	coord := newTestCoordinator(t)
	require.NoError(t, coord.Start())
	defer coord.Stop()

	newSpec := twoApproachSpec()
	newSpec.ID = 2
	require.NoError(t, coord.UpdateTopology(newSpec))

	time.Sleep(50 * time.Millisecond)
	snap := coord.Snapshot()
	assert.Equal(t, int32(2), snap.JunctionID, "sim loop should pick up the swapped topology on its next tick")
}

func TestSetStrategyRejectsUnknownIdentifier(t *testing.T) {
	coord := newTestCoordinator(t)
	err := coord.SetStrategy("not_a_strategy", controller.DefaultTunables())
	assert.ErrorIs(t, err, controller.ErrUnknownStrategy)
}
