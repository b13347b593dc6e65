// Package calculator derives per-participant shares for a single expense and
// folds a user's expenses and payments into net balances.
package calculator

import (
	"log/slog"
	"math"

	"splitledger/internal/models"
)

// Round2 rounds to two decimal places, the precision of every stored and
// derived amount.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Outcome is the result of a split computation. UsedFallback reports that the
// requested method could not be honored and an equal split was substituted;
// Reason says why. Callers and tests assert on the outcome instead of parsing
// log output.
type Outcome struct {
	Splits       map[string]float64
	UsedFallback bool
	Reason       string
}

// ComputeSplits derives each participant's owed share of amount.
//
// For the equal method every share is round(amount/n, 2); the rounding may
// leave a residual cent unassigned (100/3 -> 33.33 each, sum 99.99), which is
// accepted rather than redistributed.
//
// For the custom method the explicit mapping must be present, its key set
// must equal the participant set exactly, and its values must sum to amount
// at two decimals. Any violation downgrades to an equal split: split
// correctness is advisory at read time and never blocks. Write-time
// validation rejects the same data outright, so the fallback only fires for
// records persisted before validation existed or via an unvalidated path.
func ComputeSplits(amount float64, participants []string, method string, explicit map[string]float64) Outcome {
	switch method {
	case models.SplitEqual:
		return Outcome{Splits: equalSplits(amount, participants)}

	case models.SplitCustom:
		if reason := CheckCustomSplits(amount, participants, explicit); reason != "" {
			slog.Warn("Invalid custom splits, falling back to equal split",
				"amount", amount,
				"reason", reason,
			)
			return Outcome{
				Splits:       equalSplits(amount, participants),
				UsedFallback: true,
				Reason:       reason,
			}
		}
		return Outcome{Splits: explicit}

	default:
		slog.Error("Unknown split method, falling back to equal split",
			"method", method,
			"amount", amount,
		)
		return Outcome{
			Splits:       equalSplits(amount, participants),
			UsedFallback: true,
			Reason:       "unknown split method '" + method + "'",
		}
	}
}

// CheckCustomSplits reports why an explicit split mapping is invalid for the
// given amount and participants, or "" when it is valid. Shared between the
// read-time fallback, write-time validation and the fix-expenses sweep so the
// three can never disagree.
func CheckCustomSplits(amount float64, participants []string, explicit map[string]float64) string {
	if explicit == nil {
		return "missing split amounts"
	}
	if len(explicit) != len(participants) {
		return "split keys do not match participants"
	}
	sum := 0.0
	for _, p := range participants {
		share, ok := explicit[p]
		if !ok {
			return "split keys do not match participants"
		}
		sum += share
	}
	if Round2(sum) != Round2(amount) {
		return "split amounts do not sum to total"
	}
	return ""
}

func equalSplits(amount float64, participants []string) map[string]float64 {
	share := Round2(amount / float64(len(participants)))
	splits := make(map[string]float64, len(participants))
	for _, p := range participants {
		splits[p] = share
	}
	return splits
}

// PerspectiveBalances views one expense's splits from a single user.
// If viewer is the payer, every other participant owes viewer their share
// (positive). If viewer is a non-paying participant, viewer owes the payer
// their own share (negative). Anyone else sees no contribution.
func PerspectiveBalances(splits map[string]float64, paidBy, viewer string) map[string]float64 {
	balances := make(map[string]float64)
	if viewer == paidBy {
		for p, share := range splits {
			if p != viewer {
				balances[p] = share
			}
		}
	} else if share, ok := splits[viewer]; ok {
		balances[paidBy] = -share
	}
	return balances
}
