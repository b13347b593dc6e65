package calculator

import (
	"math"
	"testing"

	"splitledger/internal/models"
)

func TestComputeSplitsEqual(t *testing.T) {
	tests := []struct {
		name         string
		amount       float64
		participants []string
		wantShare    float64
		wantSum      float64
	}{
		{
			name:         "two-way split",
			amount:       50.0,
			participants: []string{"a@x.com", "b@x.com"},
			wantShare:    25.0,
			wantSum:      50.0,
		},
		{
			name:         "three-way split leaves residual cent",
			amount:       100.0,
			participants: []string{"a@x.com", "b@x.com", "c@x.com"},
			wantShare:    33.33,
			wantSum:      99.99,
		},
		{
			name:         "single participant",
			amount:       42.5,
			participants: []string{"a@x.com"},
			wantShare:    42.5,
			wantSum:      42.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome := ComputeSplits(tt.amount, tt.participants, models.SplitEqual, nil)

			if outcome.UsedFallback {
				t.Errorf("UsedFallback = true, want false (reason %q)", outcome.Reason)
			}
			if len(outcome.Splits) != len(tt.participants) {
				t.Fatalf("got %d splits, want %d", len(outcome.Splits), len(tt.participants))
			}
			sum := 0.0
			for p, share := range outcome.Splits {
				if math.Abs(share-tt.wantShare) > 0.001 {
					t.Errorf("split[%s] = %v, want %v", p, share, tt.wantShare)
				}
				sum += share
			}
			// The residual cent is accepted, not redistributed.
			if math.Abs(sum-tt.wantSum) > 0.001 {
				t.Errorf("sum of splits = %v, want %v", sum, tt.wantSum)
			}
		})
	}
}

func TestComputeSplitsCustom(t *testing.T) {
	participants := []string{"a@x.com", "b@x.com"}

	t.Run("valid custom splits are kept verbatim", func(t *testing.T) {
		splits := map[string]float64{"a@x.com": 60.0, "b@x.com": 40.0}
		outcome := ComputeSplits(100.0, participants, models.SplitCustom, splits)

		if outcome.UsedFallback {
			t.Errorf("UsedFallback = true, want false (reason %q)", outcome.Reason)
		}
		if outcome.Splits["a@x.com"] != 60.0 || outcome.Splits["b@x.com"] != 40.0 {
			t.Errorf("splits = %v, want the explicit mapping unchanged", outcome.Splits)
		}
	})

	invalid := []struct {
		name       string
		splits     map[string]float64
		wantReason string
	}{
		{
			name:       "missing splits",
			splits:     nil,
			wantReason: "missing split amounts",
		},
		{
			name:       "extra key",
			splits:     map[string]float64{"a@x.com": 50.0, "b@x.com": 30.0, "c@x.com": 20.0},
			wantReason: "split keys do not match participants",
		},
		{
			name:       "wrong key",
			splits:     map[string]float64{"a@x.com": 50.0, "c@x.com": 50.0},
			wantReason: "split keys do not match participants",
		},
		{
			name:       "sum mismatch",
			splits:     map[string]float64{"a@x.com": 60.0, "b@x.com": 41.0},
			wantReason: "split amounts do not sum to total",
		},
	}

	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			outcome := ComputeSplits(100.0, participants, models.SplitCustom, tt.splits)

			if !outcome.UsedFallback {
				t.Fatal("UsedFallback = false, want fallback to equal split")
			}
			if outcome.Reason != tt.wantReason {
				t.Errorf("Reason = %q, want %q", outcome.Reason, tt.wantReason)
			}
			for p, share := range outcome.Splits {
				if math.Abs(share-50.0) > 0.001 {
					t.Errorf("fallback split[%s] = %v, want 50.0", p, share)
				}
			}
		})
	}
}

func TestComputeSplitsUnknownMethod(t *testing.T) {
	outcome := ComputeSplits(30.0, []string{"a@x.com", "b@x.com", "c@x.com"}, "percentage", nil)

	if !outcome.UsedFallback {
		t.Fatal("UsedFallback = false, want fallback for unknown method")
	}
	for p, share := range outcome.Splits {
		if math.Abs(share-10.0) > 0.001 {
			t.Errorf("split[%s] = %v, want 10.0", p, share)
		}
	}
}

func TestPerspectiveBalances(t *testing.T) {
	splits := map[string]float64{"a@x.com": 33.33, "b@x.com": 33.33, "c@x.com": 33.33}

	t.Run("payer is owed by everyone else", func(t *testing.T) {
		balances := PerspectiveBalances(splits, "a@x.com", "a@x.com")

		if len(balances) != 2 {
			t.Fatalf("got %d balances, want 2", len(balances))
		}
		for _, p := range []string{"b@x.com", "c@x.com"} {
			if math.Abs(balances[p]-33.33) > 0.001 {
				t.Errorf("balances[%s] = %v, want 33.33", p, balances[p])
			}
		}
	})

	t.Run("participant owes the payer their share", func(t *testing.T) {
		balances := PerspectiveBalances(splits, "a@x.com", "b@x.com")

		if len(balances) != 1 {
			t.Fatalf("got %d balances, want 1", len(balances))
		}
		if math.Abs(balances["a@x.com"]+33.33) > 0.001 {
			t.Errorf("balances[a@x.com] = %v, want -33.33", balances["a@x.com"])
		}
	})

	t.Run("outsider sees nothing", func(t *testing.T) {
		balances := PerspectiveBalances(splits, "a@x.com", "d@x.com")

		if len(balances) != 0 {
			t.Errorf("got %v, want empty", balances)
		}
	})
}

func TestRound2(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{33.333333, 33.33},
		{100.0 / 3.0, 33.33},
		{66.666666, 66.67},
		{0.1 + 0.2, 0.3},
		{100.0, 100.0},
	}
	for _, tt := range tests {
		if got := Round2(tt.in); got != tt.want {
			t.Errorf("Round2(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
