// Package metrics instruments the Coordinator and Simulator with
// Prometheus collectors. Only the registry is exposed — serving
// /metrics over HTTP is transport glue and stays a collaborator
// concern (spec.md §1, §6); nothing in this package starts a server.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Metrics groups the counters and gauges the closed loop updates every
// tick. A fresh Metrics is safe to register into its own registry so
// that multiple Coordinators (e.g. in tests) don't collide on the
// default global registry.
type Metrics struct {
	registry *prometheus.Registry

	SimTicks          prometheus.Counter
	ControlTicks      prometheus.Counter
	TransientErrors   prometheus.Counter
	PhaseSwitches     prometheus.Counter
	Collisions        prometheus.Counter
	VehiclesSpawned   prometheus.Counter
	VehiclesDestroyed prometheus.Counter
	SafeFallback       prometheus.Gauge
	ActiveVehicles     prometheus.Gauge
}

// New builds and registers a fresh Metrics instance.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		SimTicks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "junctionsim_sim_ticks_total",
			Help: "Number of Sim-loop ticks executed.",
		}),
		ControlTicks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "junctionsim_control_ticks_total",
			Help: "Number of Control-loop ticks executed.",
		}),
		TransientErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "junctionsim_transient_errors_total",
			Help: "Number of ticks skipped due to a recovered transient error.",
		}),
		PhaseSwitches: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "junctionsim_phase_switches_total",
			Help: "Number of times the Controller changed the active phase.",
		}),
		Collisions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "junctionsim_collisions_total",
			Help: "Number of collisions observed by the Simulator.",
		}),
		VehiclesSpawned: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "junctionsim_vehicles_spawned_total",
			Help: "Number of vehicles spawned by the Simulator.",
		}),
		VehiclesDestroyed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "junctionsim_vehicles_destroyed_total",
			Help: "Number of vehicles destroyed by the Simulator.",
		}),
		SafeFallback: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "junctionsim_safe_fallback",
			Help: "1 if the Coordinator is currently in all-RED safe fallback.",
		}),
		ActiveVehicles: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "junctionsim_active_vehicles",
			Help: "Number of vehicles currently present in the junction.",
		}),
	}
	reg.MustRegister(
		m.SimTicks, m.ControlTicks, m.TransientErrors, m.PhaseSwitches,
		m.Collisions, m.VehiclesSpawned, m.VehiclesDestroyed,
		m.SafeFallback, m.ActiveVehicles,
	)
	return m
}

// Registry returns the Prometheus registry backing this Metrics, for a
// collaborator to expose however it sees fit (HTTP handler, push
// gateway, ...).
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
