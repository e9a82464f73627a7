package ratelimit

import "testing"

func TestKeyedRateLimiter_Allow(t *testing.T) {
	tests := []struct {
		name     string
		rps      float64
		burst    int
		calls    int
		wantPass int
	}{
		{
			name:     "burst allows initial events",
			rps:      1,
			burst:    3,
			calls:    3,
			wantPass: 3,
		},
		{
			name:     "exceeding burst blocks",
			rps:      1,
			burst:    2,
			calls:    5,
			wantPass: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			krl := New(tt.rps, tt.burst)

			passed := 0
			for range tt.calls {
				if krl.Allow("stats") {
					passed++
				}
			}

			if passed != tt.wantPass {
				t.Errorf("passed %d events, want %d", passed, tt.wantPass)
			}
		})
	}
}

func TestKeyedRateLimiter_IndependentKeys(t *testing.T) {
	krl := New(1, 1)

	if !krl.Allow("stats") {
		t.Error("first event for stats should pass")
	}
	if krl.Allow("stats") {
		t.Error("second event for stats should be limited")
	}
	if !krl.Allow("alarm") {
		t.Error("first event for alarm should pass despite stats being limited")
	}
}
