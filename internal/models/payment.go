package models

// Payment represents a direct transfer between two users, typically settling
// part of a debt. Immutable once created.
type Payment struct {
	// ID is the unique identifier assigned by the store.
	ID string

	// Amount is the transferred amount. Always positive.
	Amount float64

	// Payer is the email of the user who sent the money.
	Payer string

	// Payee is the email of the user who received it. Never equal to Payer.
	Payee string

	// Description is a human-readable label for the payment.
	Description string

	// CreatedAt is the RFC 3339 timestamp when the payment was recorded.
	CreatedAt string

	// GroupID is the owning group's ID, or empty.
	GroupID string

	// Unregistered lists payer/payee emails that had no account at creation
	// time.
	Unregistered []string
}
