// Package coordinator implements the Closed-Loop Coordinator
// (spec.md §4.5): it owns the Controller and Simulator lifecycles,
// runs their two periodic loops concurrently, arbitrates the
// observation/actuation exchange between them, and applies amber
// signal-transition smoothing.
//
// Grounded on the teacher's task.Context.Run step loop (prepare ->
// update -> publish, entity managers fanned out with sync.WaitGroup
// each step) for the overall tick shape, and on
// github.com/niceyeti/channerics/channels (pack: niceyeti-tabular,
// reinforcement/learning.go and main.go's print_values_async) for the
// "communication by message passing instead of shared locks" style
// spec.md §9 calls for: two independent channerics.NewTicker-driven
// loops instead of a background-thread-with-lock model, coordinated
// through single-slot atomic pointers rather than a mutex-guarded
// global.
package coordinator

import (
	"sync"
	"sync/atomic"
	"time"

	channerics "github.com/niceyeti/channerics/channels"
	"github.com/junctionsim/core/clock"
	"github.com/junctionsim/core/controller"
	"github.com/junctionsim/core/metrics"
	"github.com/junctionsim/core/phase"
	"github.com/junctionsim/core/simulator"
	"github.com/junctionsim/core/snapshot"
	"github.com/junctionsim/core/topology"
	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("module", "coordinator")

// Coordinator owns the Sim loop and Control loop goroutines and is
// the single source of truth for the current light-state decision and
// the current observation snapshot (spec.md §4.5).
type Coordinator struct {
	ctrl *controller.Controller
	sim  *simulator.Simulator
	clk  *clock.Clock
	m    *metrics.Metrics

	tunables        Tunables
	simInterval     time.Duration
	controlInterval time.Duration

	junction atomic.Pointer[topology.Junction]

	// decidedLights is the Control loop's single-slot published
	// decision, consumed by the Sim loop at the start of every tick
	// (spec.md §5 "Light states": "Single-slot overwrite; Sim reads
	// the latest complete set atomically").
	decidedLights atomic.Pointer[map[int32]topology.State]

	// lastSnapshot is the Sim loop's single-slot published
	// observation, consumed by the Control loop (spec.md §5
	// "Vehicle positions": "snapshot is a deep-copy / immutable view
	// published at tick end").
	lastSnapshot atomic.Pointer[snapshot.Snapshot]

	// amberExpiry is owned exclusively by the Sim loop's ingest step;
	// see amber.go.
	amberExpiry map[int32]float64

	mu    sync.Mutex // guards state and the done/wg lifecycle
	state RunState
	done  chan struct{}
	wg    sync.WaitGroup

	consecutiveFailures int // owned by the Control loop only
	safeFallback        atomic.Bool
}

// New builds an IDLE Coordinator. No topology is installed until
// Build is called.
func New(ctrl *controller.Controller, sim *simulator.Simulator, clk *clock.Clock, controlInterval time.Duration, tunables Tunables, m *metrics.Metrics) *Coordinator {
	return &Coordinator{
		ctrl:            ctrl,
		sim:             sim,
		clk:             clk,
		m:               m,
		tunables:        tunables,
		simInterval:     time.Duration(clk.DT * float64(time.Second)),
		controlInterval: controlInterval,
		amberExpiry:     make(map[int32]float64),
		state:           Idle,
	}
}

// buildJunction validates spec, enumerates its phases, and returns a
// ready-to-run Junction (spec.md §4.1, §4.2, §6 "Topology intake").
func buildJunction(spec topology.JunctionSpec) (*topology.Junction, error) {
	j, err := topology.Build(spec)
	if err != nil {
		return nil, err
	}
	j.SetPhases(phase.Enumerate(j))
	return j, nil
}

// Build installs the initial topology (spec.md §6 `build(topology)`).
// It may be called only once, before Start.
func (c *Coordinator) Build(spec topology.JunctionSpec) error {
	j, err := buildJunction(spec)
	if err != nil {
		return err
	}
	c.junction.Store(j)
	c.ctrl.Retopology(j.Phases)
	return nil
}

// UpdateTopology rebuilds and atomically swaps in a new topology
// (spec.md §4.5 "Topology updates"): phases are re-enumerated, the
// Controller's per-phase wait maps are re-keyed (handled by
// Controller.Retopology), and the published light-state decision is
// reset since it is indexed by the old light set. The amber expiry
// map stays with the Sim loop: the new Junction's lights start out of
// amber, so stale entries are never consulted and are overwritten on
// the next state change. The next Sim tick picks up the new Junction.
func (c *Coordinator) UpdateTopology(spec topology.JunctionSpec) error {
	j, err := buildJunction(spec)
	if err != nil {
		return err
	}
	c.junction.Store(j)
	c.ctrl.Retopology(j.Phases)
	c.decidedLights.Store(nil)
	log.Infof("topology %d updated: %d lights, %d phases", j.ID, len(j.Lights()), len(j.Phases))
	return nil
}

// SetStrategy reconfigures the Controller's scoring strategy and
// tunables (spec.md §6 "Control intake", `set_strategy`). Unknown
// strategy identifiers fail with controller.ErrUnknownStrategy.
func (c *Coordinator) SetStrategy(name string, tunables controller.Tunables) error {
	strategy, err := controller.ParseStrategy(name)
	if err != nil {
		return err
	}
	c.ctrl.SetStrategy(strategy)
	c.ctrl.SetTunables(tunables)
	return nil
}

// Start transitions IDLE -> RUNNING, launching the Sim loop and
// Control loop goroutines (spec.md §4.5, §5). Long-lived resources
// (the two tickers) are acquired here and released along every exit
// path of Stop (spec.md §5 "Resource acquisition").
func (c *Coordinator) Start() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != Idle {
		return ErrAlreadyRunning
	}
	if err := c.ctrl.Start(); err != nil {
		return err
	}
	c.state = Running
	c.done = make(chan struct{})
	c.wg.Add(2)
	go func() {
		defer c.wg.Done()
		c.simLoop(c.done)
	}()
	go func() {
		defer c.wg.Done()
		c.controlLoop(c.done)
	}()
	return nil
}

// Stop signals cancellation, checked at each loop's next cycle
// boundary (spec.md §5 "Cancellation and timeouts"), and blocks until
// both loops have exited.
func (c *Coordinator) Stop() {
	c.mu.Lock()
	if c.state != Running {
		c.mu.Unlock()
		return
	}
	c.state = Stopped
	close(c.done)
	c.mu.Unlock()

	c.wg.Wait()
	c.ctrl.Stop()
}

// simLoop runs the Sim-loop at the configured Δt cadence
// (spec.md §5) until done closes.
func (c *Coordinator) simLoop(done <-chan struct{}) {
	for range channerics.NewTicker(done, c.simInterval) {
		c.safely("sim", c.simTick)
	}
}

// controlLoop runs the Control-loop at Δt_ctrl cadence (spec.md §5)
// until done closes.
func (c *Coordinator) controlLoop(done <-chan struct{}) {
	for range channerics.NewTicker(done, c.controlInterval) {
		c.safely("control", c.controlTick)
	}
}

// safely runs fn, recovering any panic, logging it and counting it in
// the TransientErrors metric the way spec.md §4.3/§7 requires: the
// loop continues, the tick is simply skipped.
func (c *Coordinator) safely(loop string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			log.Errorf("%s loop: recovered transient error: %v", loop, r)
			if c.m != nil {
				c.m.TransientErrors.Inc()
			}
		}
	}()
	fn()
}

// simTick advances the Junction by one Δt and publishes the resulting
// snapshot (spec.md §4.4).
func (c *Coordinator) simTick() {
	j := c.junction.Load()
	if j == nil {
		return
	}
	now := c.clk.Advance()
	c.ingestLightStates(j, now)
	snap := c.sim.Step(j, now)
	c.lastSnapshot.Store(&snap)
}

// controlTick runs one Control-loop decision cycle: it reads the
// latest snapshot, asks the Controller for a decision under a
// deadline, and publishes the result (spec.md §4.3, §5). A tick
// exceeding 2·Δt_ctrl is abandoned and its score map discarded
// (spec.md §5); collaborator-unreachable or deadline failures are
// tracked toward the two-consecutive-failure safe fallback
// (spec.md §4.5, §7).
func (c *Coordinator) controlTick() {
	if c.m != nil {
		c.m.ControlTicks.Inc()
	}

	j := c.junction.Load()
	if j == nil {
		return
	}
	snapPtr := c.lastSnapshot.Load()
	if snapPtr == nil {
		c.recordFailure(j, "no snapshot published yet")
		return
	}

	type result struct {
		decision map[int32]topology.State
		err      error
	}
	done := make(chan result, 1)
	prevPhase := c.ctrl.CurrentPhase()
	// Derive now from the published snapshot rather than reading
	// c.clk.T directly: clk is owned by the Sim loop and Advance()
	// mutates it concurrently with this goroutine (spec.md §5 single
	// rendezvous). snapPtr.Timestamp is the sim clock value already
	// stamped at that tick's end.
	now := snapPtr.Timestamp
	go func() {
		decision, err := c.ctrl.Decide(j, *snapPtr, now)
		done <- result{decision, err}
	}()

	select {
	case res := <-done:
		if res.err != nil {
			c.recordFailure(j, res.err.Error())
			return
		}
		c.recordSuccess()
		c.decidedLights.Store(&res.decision)
		if newPhase := c.ctrl.CurrentPhase(); newPhase != prevPhase && c.m != nil {
			c.m.PhaseSwitches.Inc()
		}
	case <-time.After(c.tunables.controlDeadline(c.controlInterval)):
		log.Warnf("control tick abandoned: exceeded %v deadline", c.tunables.controlDeadline(c.controlInterval))
		c.recordFailure(j, "deadline exceeded")
	}
}

// recordFailure counts one collaborator-exchange failure
// (ErrCollaboratorUnreachable) and, once the threshold is reached,
// forces every light RED until an exchange succeeds again
// (spec.md §4.5 "Backpressure and failure").
func (c *Coordinator) recordFailure(j *topology.Junction, reason string) {
	c.consecutiveFailures++
	log.Warnf("control exchange failed (%d consecutive): %s", c.consecutiveFailures, reason)
	if c.m != nil {
		c.m.TransientErrors.Inc()
	}
	if c.consecutiveFailures >= c.tunables.FailureThreshold {
		red := allRed(j)
		c.decidedLights.Store(&red)
		if !c.safeFallback.Swap(true) {
			log.Warn("entering safe fallback: all lights RED")
		}
		if c.m != nil {
			c.m.SafeFallback.Set(1)
		}
	}
}

// recordSuccess resets the failure streak and exits safe fallback if
// it was active (spec.md §4.5: "recovery is automatic once exchanges
// succeed again").
func (c *Coordinator) recordSuccess() {
	c.consecutiveFailures = 0
	if c.safeFallback.Swap(false) {
		log.Info("exited safe fallback: control exchanges recovered")
	}
	if c.m != nil {
		c.m.SafeFallback.Set(0)
	}
}

// Snapshot returns the most recently published observation, or the
// zero Snapshot if the Sim loop has not ticked yet.
func (c *Coordinator) Snapshot() snapshot.Snapshot {
	if p := c.lastSnapshot.Load(); p != nil {
		return *p
	}
	return snapshot.Snapshot{}
}

// SafeFallback reports whether the Coordinator is currently forcing
// all lights RED due to repeated collaborator failures.
func (c *Coordinator) SafeFallback() bool {
	return c.safeFallback.Load()
}

// State reports the Coordinator's lifecycle state (spec.md §6).
func (c *Coordinator) State() RunState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}
