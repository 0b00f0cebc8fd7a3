package gamemath

// Epsilon is the distance under which a point counts as lying on a surface.
const Epsilon = 1e-6

// Clamp constrains value to [lo, hi].
func Clamp(value, lo, hi float64) float64 {
	if value < lo {
		return lo
	}
	if value > hi {
		return hi
	}
	return value
}

// Linear evaluates a*x + b.
func Linear(a, b, x float64) float64 {
	return a*x + b
}

// Lerp interpolates between from and to with t in [0, 1].
func Lerp(from, to, t float64) float64 {
	return from + (to-from)*t
}

// NearZero reports whether v is within Epsilon of zero.
func NearZero(v float64) bool {
	return v <= Epsilon && v >= -Epsilon
}

// CrossingParam returns where a signed distance going linearly from d0 to d1
// reaches zero, as a parameter in [0, 1].
func CrossingParam(d0, d1 float64) float64 {
	if d0 == d1 {
		return 0
	}
	return Clamp(d0/(d0-d1), 0, 1)
}

// ClipInterval returns the part of [0, 1] where from + t*delta stays inside
// [lo, hi]. ok is false when the segment never enters the interval.
func ClipInterval(from, delta, lo, hi float64) (t0, t1 float64, ok bool) {
	if delta == 0 {
		if from < lo || from > hi {
			return 0, 0, false
		}
		return 0, 1, true
	}
	ta := (lo - from) / delta
	tb := (hi - from) / delta
	if ta > tb {
		ta, tb = tb, ta
	}
	t0, t1 = max(ta, 0), min(tb, 1)
	if t0 > t1 {
		return 0, 0, false
	}
	return t0, t1, true
}
