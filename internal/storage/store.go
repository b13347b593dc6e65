// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"

	"splitledger/internal/models"
)

// Counts holds per-collection record counts for the debug endpoint.
type Counts struct {
	Users    int `json:"users_count"`
	Expenses int `json:"expenses_count"`
	Groups   int `json:"groups_count"`
	Payments int `json:"payments_count"`
}

// Store defines typed CRUD operations over the four record collections.
// The store is the only shared mutable state in the system; core logic takes
// it as an injected dependency, so tests run against the in-memory
// implementation. Errors surface immediately; nothing here retries.
type Store interface {
	// CreateUser persists a new user. ID and CreatedAt are assigned if unset.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByEmail retrieves a user by email.
	// Returns (nil, nil) if no such user exists.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// CreateGroup persists a new group. ID and CreatedAt are assigned if unset.
	CreateGroup(ctx context.Context, group *models.Group) error

	// GetGroup retrieves a group by ID. Returns (nil, nil) if missing.
	GetGroup(ctx context.Context, id string) (*models.Group, error)

	// GetGroupByNameAndCreator retrieves a group by its per-creator unique
	// name. Returns (nil, nil) if missing.
	GetGroupByNameAndCreator(ctx context.Context, name, creator string) (*models.Group, error)

	// ListGroupsForUser retrieves groups created by or including email.
	ListGroupsForUser(ctx context.Context, email string) ([]*models.Group, error)

	// CreateExpense persists a new expense. ID is assigned if unset.
	CreateExpense(ctx context.Context, expense *models.Expense) error

	// GetExpense retrieves an expense by ID. Returns (nil, nil) if missing.
	GetExpense(ctx context.Context, id string) (*models.Expense, error)

	// ListExpensesByParticipant retrieves expenses where email is a participant.
	ListExpensesByParticipant(ctx context.Context, email string) ([]*models.Expense, error)

	// ListExpensesByCreator retrieves expenses recorded by email.
	ListExpensesByCreator(ctx context.Context, email string) ([]*models.Expense, error)

	// ListExpensesByMethod retrieves expenses with the given split method.
	ListExpensesByMethod(ctx context.Context, method string) ([]*models.Expense, error)

	// UpdateExpenseSplits rewrites an expense's splits and method in place.
	// Used only by the fix-expenses repair sweep.
	UpdateExpenseSplits(ctx context.Context, id string, splits map[string]float64, method string) error

	// CreatePayment persists a new payment. ID is assigned if unset.
	CreatePayment(ctx context.Context, payment *models.Payment) error

	// ListPaymentsByUser retrieves payments where email is payer or payee.
	ListPaymentsByUser(ctx context.Context, email string) ([]*models.Payment, error)

	// Counts returns per-collection record counts.
	Counts(ctx context.Context) (Counts, error)

	// Name identifies the backend ("sqlite", "mongo", "memory").
	Name() string

	// Collections lists the backend's collection/table identifiers.
	Collections() []string

	// Ping checks backend connectivity.
	Ping(ctx context.Context) error

	// Close releases any resources held by the store.
	Close() error
}
