// Package cooldown decides whether a time-gated grant is available again.
package cooldown

import "time"

type Result struct {
	Eligible  bool
	Remaining time.Duration
}

// Evaluate reports whether a grant last taken at lastAt is available at
// now given the required cooldown d. A lastAt in the future (clock skew)
// counts as a full cooldown, never as eligible.
func Evaluate(lastAt, now time.Time, d time.Duration) Result {
	if now.Before(lastAt) {
		return Result{Eligible: false, Remaining: d}
	}
	elapsed := now.Sub(lastAt)
	if elapsed >= d {
		return Result{Eligible: true}
	}
	return Result{Eligible: false, Remaining: d - elapsed}
}

// WholeHours floors d to whole hours for display.
func WholeHours(d time.Duration) int {
	if d < 0 {
		return 0
	}
	return int(d / time.Hour)
}
