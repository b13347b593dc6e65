package models

// Split methods understood by the calculator.
const (
	SplitEqual  = "equal"
	SplitCustom = "custom"
)

// Expense represents a shared cost split among participants.
// Immutable after creation except for the fix-expenses sweep, which may
// rewrite Splits and downgrade SplitMethod to equal.
type Expense struct {
	// ID is the unique identifier assigned by the store.
	ID string

	// Description is a human-readable label for the expense.
	Description string

	// Amount is the total cost. Always positive.
	Amount float64

	// Participants is the non-empty set of emails sharing the cost.
	Participants []string

	// PaidBy is the email of the participant who fronted the money.
	// Always one of Participants.
	PaidBy string

	// SplitMethod is SplitEqual or SplitCustom.
	SplitMethod string

	// Splits maps participant email to owed share. Required for custom
	// splits; for equal splits it holds the computed shares.
	Splits map[string]float64

	// CreatedAt is the RFC 3339 timestamp when the expense was recorded.
	// Stored records may carry malformed values written by older clients;
	// the aggregator skips such records.
	CreatedAt string

	// GroupID is the owning group's ID, or empty for a standalone expense.
	GroupID string

	// CreatedBy is the email of the authenticated user who recorded the
	// expense.
	CreatedBy string

	// UnregisteredParticipants lists participant emails that had no account
	// at creation time.
	UnregisteredParticipants []string
}
