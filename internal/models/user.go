package models

// User represents a registered account.
// The email is the unique, case-sensitive key; other records reference users
// by email, never by ID.
type User struct {
	// ID is the unique identifier assigned by the store.
	ID string

	// Email is the user's email address (unique).
	Email string

	// Name is the display name of the user.
	Name string

	// PasswordHash is the bcrypt hash of the user's password.
	PasswordHash string

	// CreatedAt is the RFC 3339 timestamp when the account was created.
	CreatedAt string
}
