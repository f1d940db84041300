package cooldown

import (
	"testing"
	"time"
)

func TestEvaluate(t *testing.T) {
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	d := 6 * time.Hour

	tests := []struct {
		name          string
		now           time.Time
		wantEligible  bool
		wantRemaining time.Duration
	}{
		{name: "cooldown elapsed", now: base.Add(7 * time.Hour), wantEligible: true},
		{name: "exactly at boundary", now: base.Add(6 * time.Hour), wantEligible: true},
		{name: "one second short", now: base.Add(6*time.Hour - time.Second), wantEligible: false, wantRemaining: time.Second},
		{name: "same instant", now: base, wantEligible: false, wantRemaining: d},
		{name: "clock skew, now before lastAt", now: base.Add(-time.Hour), wantEligible: false, wantRemaining: d},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate(base, tt.now, d)
			if got.Eligible != tt.wantEligible {
				t.Fatalf("Eligible = %v, want %v", got.Eligible, tt.wantEligible)
			}
			if got.Remaining != tt.wantRemaining {
				t.Fatalf("Remaining = %v, want %v", got.Remaining, tt.wantRemaining)
			}
			if got.Remaining < 0 {
				t.Fatalf("Remaining went negative: %v", got.Remaining)
			}
		})
	}
}

func TestWholeHours(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want int
	}{
		{d: 0, want: 0},
		{d: 59 * time.Minute, want: 0},
		{d: time.Hour, want: 1},
		{d: 5*time.Hour + 59*time.Minute, want: 5},
		{d: -time.Hour, want: 0},
	}
	for _, tt := range tests {
		if got := WholeHours(tt.d); got != tt.want {
			t.Fatalf("WholeHours(%v) = %d, want %d", tt.d, got, tt.want)
		}
	}
}
