// Package validation enforces the structural invariants that expense, payment
// and group records must satisfy before they are persisted.
//
// Rejections here are hard: a custom split that fails validation is a 400 at
// write time, even though the same data encountered in an already-stored
// record only downgrades to an equal split at read time.
package validation

import (
	"slices"

	"splitledger/internal/calculator"
	"splitledger/internal/models"
	"splitledger/pkg/serrs"
)

// Group checks invariants for a new group.
func Group(g *models.Group) error {
	if len(g.Members) == 0 {
		return serrs.With(serrs.ErrValidation, "members list cannot be empty")
	}
	return nil
}

// Expense checks invariants for a new expense. requester is the authenticated
// caller, who must share in the expense.
func Expense(e *models.Expense, requester string) error {
	if e.Amount <= 0 {
		return serrs.With(serrs.ErrValidation, "amount must be positive")
	}
	if len(e.Participants) == 0 {
		return serrs.With(serrs.ErrValidation, "participants list cannot be empty")
	}
	if !slices.Contains(e.Participants, requester) {
		return serrs.With(serrs.ErrForbidden, "current user must be a participant")
	}
	if !slices.Contains(e.Participants, e.PaidBy) {
		return serrs.With(serrs.ErrValidation, "paid_by must be one of participants")
	}
	switch e.SplitMethod {
	case models.SplitEqual:
	case models.SplitCustom:
		if reason := calculator.CheckCustomSplits(e.Amount, e.Participants, e.Splits); reason != "" {
			return serrs.With(serrs.ErrValidation, "invalid custom splits: %s", reason)
		}
	default:
		// The calculator's equal-split fallback is for stored legacy records
		// only; new writes must name a known method.
		return serrs.With(serrs.ErrValidation, "split_method must be equal or custom")
	}
	return nil
}

// ExpenseGroup checks that every participant and the payer belong to the
// expense's group.
func ExpenseGroup(e *models.Expense, g *models.Group) error {
	return membersOfGroup(append([]string{e.PaidBy}, e.Participants...), g)
}

// Payment checks invariants for a new payment. requester is the authenticated
// caller, who must be one of the two parties.
func Payment(p *models.Payment, requester string) error {
	if p.Amount <= 0 {
		return serrs.With(serrs.ErrValidation, "amount must be positive")
	}
	if p.Payer == p.Payee {
		return serrs.With(serrs.ErrValidation, "payer and payee must be different")
	}
	if requester != p.Payer && requester != p.Payee {
		return serrs.With(serrs.ErrForbidden, "current user must be either payer or payee")
	}
	return nil
}

// PaymentGroup checks that both parties of a payment belong to its group.
func PaymentGroup(p *models.Payment, g *models.Group) error {
	return membersOfGroup([]string{p.Payer, p.Payee}, g)
}

func membersOfGroup(emails []string, g *models.Group) error {
	for _, email := range emails {
		if !slices.Contains(g.Members, email) {
			return serrs.With(serrs.ErrValidation, "all participants and paid_by must be group members")
		}
	}
	return nil
}
