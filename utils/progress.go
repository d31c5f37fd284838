package utils

import "math"

// CalculateProgress returns raised as a percentage of target, clamped to
// [0, 100]. A zero or negative target yields 0.
func CalculateProgress(raised, target float64) float64 {
	if target <= 0 || raised <= 0 || math.IsNaN(raised) || math.IsNaN(target) {
		return 0
	}
	p := raised / target * 100
	if math.IsNaN(p) {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

// Remaining returns how much is still needed to reach target, never negative.
func Remaining(raised, target float64) float64 {
	if raised >= target {
		return 0
	}
	return target - raised
}
