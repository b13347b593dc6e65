// Package memory provides an in-memory implementation of storage.Store,
// used by tests and as a throwaway dev backend.
package memory

import (
	"context"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"splitledger/internal/models"
	"splitledger/internal/storage"
)

// Ensure MemoryStore implements storage.Store
var _ storage.Store = (*MemoryStore)(nil)

// MemoryStore implements storage.Store with mutex-guarded maps.
type MemoryStore struct {
	mu       sync.RWMutex
	users    map[string]*models.User // keyed by email
	groups   map[string]*models.Group
	expenses map[string]*models.Expense
	payments map[string]*models.Payment
}

// New creates an empty MemoryStore.
func New() *MemoryStore {
	return &MemoryStore{
		users:    make(map[string]*models.User),
		groups:   make(map[string]*models.Group),
		expenses: make(map[string]*models.Expense),
		payments: make(map[string]*models.Payment),
	}
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// CreateUser persists a new user.
func (s *MemoryStore) CreateUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.CreatedAt == "" {
		user.CreatedAt = now()
	}
	s.users[user.Email] = copyUser(user)
	return nil
}

// GetUserByEmail retrieves a user by email, or (nil, nil) if missing.
func (s *MemoryStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[email]
	if !ok {
		return nil, nil
	}
	return copyUser(user), nil
}

// CreateGroup persists a new group.
func (s *MemoryStore) CreateGroup(_ context.Context, group *models.Group) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if group.ID == "" {
		group.ID = uuid.New().String()
	}
	if group.CreatedAt == "" {
		group.CreatedAt = now()
	}
	s.groups[group.ID] = copyGroup(group)
	return nil
}

// GetGroup retrieves a group by ID, or (nil, nil) if missing.
func (s *MemoryStore) GetGroup(_ context.Context, id string) (*models.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	group, ok := s.groups[id]
	if !ok {
		return nil, nil
	}
	return copyGroup(group), nil
}

// GetGroupByNameAndCreator retrieves a group by its per-creator name.
func (s *MemoryStore) GetGroupByNameAndCreator(_ context.Context, name, creator string) (*models.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, group := range s.groups {
		if group.Name == name && group.CreatedBy == creator {
			return copyGroup(group), nil
		}
	}
	return nil, nil
}

// ListGroupsForUser retrieves groups created by or including email.
func (s *MemoryStore) ListGroupsForUser(_ context.Context, email string) ([]*models.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var groups []*models.Group
	for _, group := range s.groups {
		if group.CreatedBy == email || slices.Contains(group.Members, email) {
			groups = append(groups, copyGroup(group))
		}
	}
	return groups, nil
}

// CreateExpense persists a new expense.
func (s *MemoryStore) CreateExpense(_ context.Context, expense *models.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.CreatedAt == "" {
		expense.CreatedAt = now()
	}
	s.expenses[expense.ID] = copyExpense(expense)
	return nil
}

// GetExpense retrieves an expense by ID, or (nil, nil) if missing.
func (s *MemoryStore) GetExpense(_ context.Context, id string) (*models.Expense, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	expense, ok := s.expenses[id]
	if !ok {
		return nil, nil
	}
	return copyExpense(expense), nil
}

// ListExpensesByParticipant retrieves expenses where email participates.
func (s *MemoryStore) ListExpensesByParticipant(_ context.Context, email string) ([]*models.Expense, error) {
	return s.listExpenses(func(e *models.Expense) bool {
		return slices.Contains(e.Participants, email)
	}), nil
}

// ListExpensesByCreator retrieves expenses recorded by email.
func (s *MemoryStore) ListExpensesByCreator(_ context.Context, email string) ([]*models.Expense, error) {
	return s.listExpenses(func(e *models.Expense) bool {
		return e.CreatedBy == email
	}), nil
}

// ListExpensesByMethod retrieves expenses with the given split method.
func (s *MemoryStore) ListExpensesByMethod(_ context.Context, method string) ([]*models.Expense, error) {
	return s.listExpenses(func(e *models.Expense) bool {
		return e.SplitMethod == method
	}), nil
}

func (s *MemoryStore) listExpenses(match func(*models.Expense) bool) []*models.Expense {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var expenses []*models.Expense
	for _, expense := range s.expenses {
		if match(expense) {
			expenses = append(expenses, copyExpense(expense))
		}
	}
	return expenses
}

// UpdateExpenseSplits rewrites an expense's splits and method in place.
func (s *MemoryStore) UpdateExpenseSplits(_ context.Context, id string, splits map[string]float64, method string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	expense, ok := s.expenses[id]
	if !ok {
		return nil
	}
	expense.Splits = maps.Clone(splits)
	expense.SplitMethod = method
	return nil
}

// CreatePayment persists a new payment.
func (s *MemoryStore) CreatePayment(_ context.Context, payment *models.Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if payment.ID == "" {
		payment.ID = uuid.New().String()
	}
	if payment.CreatedAt == "" {
		payment.CreatedAt = now()
	}
	s.payments[payment.ID] = copyPayment(payment)
	return nil
}

// ListPaymentsByUser retrieves payments where email is payer or payee.
func (s *MemoryStore) ListPaymentsByUser(_ context.Context, email string) ([]*models.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var payments []*models.Payment
	for _, payment := range s.payments {
		if payment.Payer == email || payment.Payee == email {
			payments = append(payments, copyPayment(payment))
		}
	}
	return payments, nil
}

// Counts returns per-collection record counts.
func (s *MemoryStore) Counts(_ context.Context) (storage.Counts, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return storage.Counts{
		Users:    len(s.users),
		Expenses: len(s.expenses),
		Groups:   len(s.groups),
		Payments: len(s.payments),
	}, nil
}

// Name identifies the backend.
func (s *MemoryStore) Name() string { return "memory" }

// Collections lists the map identifiers.
func (s *MemoryStore) Collections() []string {
	return []string{"users", "expenses", "groups", "payments"}
}

// Ping always succeeds.
func (s *MemoryStore) Ping(_ context.Context) error { return nil }

// Close is a no-op.
func (s *MemoryStore) Close() error { return nil }

// Records are copied on the way in and out so callers can never mutate
// stored state through a shared pointer.

func copyUser(u *models.User) *models.User {
	c := *u
	return &c
}

func copyGroup(g *models.Group) *models.Group {
	c := *g
	c.Members = slices.Clone(g.Members)
	c.UnregisteredMembers = slices.Clone(g.UnregisteredMembers)
	return &c
}

func copyExpense(e *models.Expense) *models.Expense {
	c := *e
	c.Participants = slices.Clone(e.Participants)
	c.UnregisteredParticipants = slices.Clone(e.UnregisteredParticipants)
	c.Splits = maps.Clone(e.Splits)
	return &c
}

func copyPayment(p *models.Payment) *models.Payment {
	c := *p
	c.Unregistered = slices.Clone(p.Unregistered)
	return &c
}
