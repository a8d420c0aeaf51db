package simulator

import "math"

// stepVehicle advances one vehicle by dt, implementing spec.md §4.4's
// kinematic sub-model. gap is the signed distance to the vehicle
// immediately ahead in the same lane (math.Inf(1) if none). red
// reports whether the controlling light is RED or in amber.
func stepVehicle(v, d, gap, vmax, accelMax, decelMax, dt float64, red bool, t Tunables) (newV, newD float64) {
	safeGap := math.Max(t.MinGap, v*v/(2*decelMax))

	var desired float64
	switch {
	case red && d >= t.RedApproachTo && d < t.RedApproachFrom:
		desired = 0
	case gap < safeGap:
		desired = math.Min(vmax, v*gap/safeGap)
	default:
		desired = vmax
	}

	accel := clamp((desired-v)/dt, -decelMax, accelMax)

	oldV := v
	newV = v + accel*dt
	if newV < 0 {
		newV = 0
	}
	newD = d - (oldV*dt + 0.5*accel*dt*dt)
	return newV, newD
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
