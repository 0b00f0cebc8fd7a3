package gamemath

import "math"

// ClampSpeed clamps a value to [-max, max].
func ClampSpeed(speed, max float64) float64 {
	if speed > max {
		return max
	}
	if speed < -max {
		return -max
	}
	return speed
}

// SweepSteps returns how many sub steps a move of (dx, dy) needs so that no
// step is longer than one tile. The result is at least 1 and at most maxSteps
// when maxSteps is positive.
func SweepSteps(dx, dy float64, tileW, tileH, maxSteps int) int {
	steps := int(math.Ceil(math.Max(math.Abs(dx)/float64(tileW), math.Abs(dy)/float64(tileH))))
	if steps < 1 {
		steps = 1
	}
	if maxSteps > 0 && steps > maxSteps {
		steps = maxSteps
	}
	return steps
}
