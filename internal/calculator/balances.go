package calculator

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"splitledger/internal/models"
)

// Group labels surfaced in expense listings and group balance keys.
const (
	// GroupLabelNone marks a standalone expense in listings.
	GroupLabelNone = "Single"
	// GroupLabelUnknown is used when the referenced group record is missing.
	GroupLabelUnknown = "Unknown Group"
	// GroupLabelInvalid is used when the stored group ID is malformed. Such
	// records are surfaced in the expense list but excluded from structured
	// group balances.
	GroupLabelInvalid = "Invalid Group"
)

// ExpenseEntry is one expense as seen in a user's view, with its splits
// recomputed and its group resolved to a display name.
type ExpenseEntry struct {
	ID           string             `json:"id"`
	Description  string             `json:"description"`
	Amount       float64            `json:"amount"`
	PaidBy       string             `json:"paid_by"`
	Participants []string           `json:"participants"`
	Splits       map[string]float64 `json:"splits"`
	CreatedAt    string             `json:"created_at"`
	GroupID      string             `json:"group_id,omitempty"`
	GroupName    string             `json:"group_name"`
}

// UserView is the full derived view for one user: the expenses they share in,
// net balances per counterparty (positive = counterparty owes the viewer) and
// net balances per group label.
type UserView struct {
	Expenses      []ExpenseEntry     `json:"expenses"`
	NetBalances   map[string]float64 `json:"net_balances"`
	GroupBalances map[string]float64 `json:"group_balances"`
}

// BuildUserView folds expenses and payments into the derived view for email.
// groups maps group ID to the group record for every resolvable reference;
// IDs absent from the map are labeled unknown.
//
// Splits are recomputed from each expense's stored method and amounts on
// every call. Balances are never persisted, so they cannot drift from the
// split-fallback rules and no cache invalidation exists. Records with a
// malformed created_at are dropped whole, with a logged warning.
func BuildUserView(email string, expenses []*models.Expense, payments []*models.Payment, groups map[string]*models.Group) *UserView {
	view := &UserView{
		Expenses:      []ExpenseEntry{},
		NetBalances:   make(map[string]float64),
		GroupBalances: make(map[string]float64),
	}

	for _, e := range expenses {
		if _, err := time.Parse(time.RFC3339, e.CreatedAt); err != nil {
			slog.Warn("Skipping expense with malformed created_at",
				"expense_id", e.ID,
				"created_at", e.CreatedAt,
			)
			continue
		}

		outcome := ComputeSplits(e.Amount, e.Participants, e.SplitMethod, e.Splits)
		balances := PerspectiveBalances(outcome.Splits, e.PaidBy, email)

		groupName := GroupLabelNone
		if e.GroupID != "" {
			var groupKey string
			groupName, groupKey = resolveGroup(e.GroupID, groups)
			if groupKey != "" {
				for _, amount := range balances {
					view.GroupBalances[groupKey] += amount
				}
			}
		}

		for counterparty, amount := range balances {
			view.NetBalances[counterparty] += amount
		}

		view.Expenses = append(view.Expenses, ExpenseEntry{
			ID:           e.ID,
			Description:  e.Description,
			Amount:       e.Amount,
			PaidBy:       e.PaidBy,
			Participants: e.Participants,
			Splits:       outcome.Splits,
			CreatedAt:    e.CreatedAt,
			GroupID:      e.GroupID,
			GroupName:    groupName,
		})
	}

	for _, p := range payments {
		if _, err := time.Parse(time.RFC3339, p.CreatedAt); err != nil {
			slog.Warn("Skipping payment with malformed created_at",
				"payment_id", p.ID,
				"created_at", p.CreatedAt,
			)
			continue
		}

		// A payment always nets as "payer's debt to payee decreases".
		var counterparty string
		var amount float64
		switch email {
		case p.Payer:
			counterparty, amount = p.Payee, -p.Amount
		case p.Payee:
			counterparty, amount = p.Payer, p.Amount
		default:
			continue
		}

		view.NetBalances[counterparty] += amount
		if p.GroupID != "" {
			if _, groupKey := resolveGroup(p.GroupID, groups); groupKey != "" {
				view.GroupBalances[groupKey] += amount
			}
		}
	}

	for counterparty, amount := range view.NetBalances {
		view.NetBalances[counterparty] = Round2(amount)
	}
	for groupKey, amount := range view.GroupBalances {
		view.GroupBalances[groupKey] = Round2(amount)
	}

	return view
}

// resolveGroup maps a stored group ID to its display name and balance key.
// A malformed ID yields the invalid label and no key, excluding the record
// from structured group balances.
func resolveGroup(groupID string, groups map[string]*models.Group) (name, key string) {
	if _, err := uuid.Parse(groupID); err != nil {
		slog.Warn("Malformed group reference on stored record", "group_id", groupID)
		return GroupLabelInvalid, ""
	}
	name = GroupLabelUnknown
	if g, ok := groups[groupID]; ok {
		name = g.Name
	}
	return name, fmt.Sprintf("%s (%s)", name, groupID)
}
