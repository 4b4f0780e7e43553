package steer

import "math"

// WrapAngle normalizes a to (-π, π].
func WrapAngle(a float64) float64 {
	a = math.Mod(a+math.Pi, 2*math.Pi)
	if a <= 0 {
		a += 2 * math.Pi
	}
	return a - math.Pi
}

// LerpAngle moves from a toward b along the shortest arc by factor t in [0,1].
func LerpAngle(a, b, t float64) float64 {
	return WrapAngle(a + WrapAngle(b-a)*t)
}

// DampFactor converts rate and dt into an interpolation factor clamped to [0,1].
func DampFactor(rate, dt float64) float64 {
	f := rate * dt
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

// Heading returns facing angle looking from (fx, fz) toward (tx, tz).
// Facing 0 looks down +Z, π/2 looks down +X.
func Heading(fx, fz, tx, tz float64) float64 {
	return math.Atan2(tx-fx, tz-fz)
}

// Forward returns planar unit direction for facing angle a.
func Forward(a float64) (x, z float64) {
	return math.Sin(a), math.Cos(a)
}
