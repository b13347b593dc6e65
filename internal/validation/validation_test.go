package validation

import (
	"errors"
	"testing"

	"splitledger/internal/models"
	"splitledger/pkg/serrs"
)

func TestGroup(t *testing.T) {
	if err := Group(&models.Group{Name: "Trip", Members: []string{"a@x.com"}}); err != nil {
		t.Errorf("valid group rejected: %v", err)
	}

	err := Group(&models.Group{Name: "Trip"})
	if !errors.Is(err, serrs.ErrValidation) {
		t.Errorf("empty members: got %v, want validation error", err)
	}
}

func TestExpense(t *testing.T) {
	valid := func() *models.Expense {
		return &models.Expense{
			Description:  "dinner",
			Amount:       60.0,
			Participants: []string{"a@x.com", "b@x.com"},
			PaidBy:       "a@x.com",
			SplitMethod:  models.SplitEqual,
		}
	}

	tests := []struct {
		name      string
		mutate    func(e *models.Expense)
		requester string
		wantKind  serrs.Kind
	}{
		{
			name:      "valid equal expense",
			mutate:    func(e *models.Expense) {},
			requester: "a@x.com",
		},
		{
			name:      "zero amount",
			mutate:    func(e *models.Expense) { e.Amount = 0 },
			requester: "a@x.com",
			wantKind:  serrs.ErrValidation,
		},
		{
			name:      "negative amount",
			mutate:    func(e *models.Expense) { e.Amount = -5 },
			requester: "a@x.com",
			wantKind:  serrs.ErrValidation,
		},
		{
			name:      "no participants",
			mutate:    func(e *models.Expense) { e.Participants = nil },
			requester: "a@x.com",
			wantKind:  serrs.ErrValidation,
		},
		{
			name:      "requester not a participant",
			mutate:    func(e *models.Expense) {},
			requester: "c@x.com",
			wantKind:  serrs.ErrForbidden,
		},
		{
			name:      "payer not a participant",
			mutate:    func(e *models.Expense) { e.PaidBy = "c@x.com" },
			requester: "a@x.com",
			wantKind:  serrs.ErrValidation,
		},
		{
			name: "valid custom splits",
			mutate: func(e *models.Expense) {
				e.SplitMethod = models.SplitCustom
				e.Splits = map[string]float64{"a@x.com": 45.0, "b@x.com": 15.0}
			},
			requester: "a@x.com",
		},
		{
			name: "custom splits sum mismatch is a hard rejection",
			mutate: func(e *models.Expense) {
				e.SplitMethod = models.SplitCustom
				e.Splits = map[string]float64{"a@x.com": 45.0, "b@x.com": 16.0}
			},
			requester: "a@x.com",
			wantKind:  serrs.ErrValidation,
		},
		{
			name: "custom splits missing",
			mutate: func(e *models.Expense) {
				e.SplitMethod = models.SplitCustom
			},
			requester: "a@x.com",
			wantKind:  serrs.ErrValidation,
		},
		{
			name:      "unknown split method",
			mutate:    func(e *models.Expense) { e.SplitMethod = "percentage" },
			requester: "a@x.com",
			wantKind:  serrs.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := valid()
			tt.mutate(e)

			err := Expense(e, tt.requester)
			if tt.wantKind == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantKind) {
				t.Errorf("got %v, want kind %v", err, tt.wantKind)
			}
		})
	}
}

func TestExpenseGroup(t *testing.T) {
	group := &models.Group{
		ID:      "g1",
		Name:    "Trip",
		Members: []string{"a@x.com", "b@x.com"},
	}

	ok := &models.Expense{
		Participants: []string{"a@x.com", "b@x.com"},
		PaidBy:       "a@x.com",
	}
	if err := ExpenseGroup(ok, group); err != nil {
		t.Errorf("members-only expense rejected: %v", err)
	}

	outsider := &models.Expense{
		Participants: []string{"a@x.com", "c@x.com"},
		PaidBy:       "a@x.com",
	}
	if err := ExpenseGroup(outsider, group); !errors.Is(err, serrs.ErrValidation) {
		t.Errorf("non-member participant: got %v, want validation error", err)
	}
}

func TestPayment(t *testing.T) {
	tests := []struct {
		name      string
		payment   *models.Payment
		requester string
		wantKind  serrs.Kind
	}{
		{
			name:      "valid payment by payer",
			payment:   &models.Payment{Amount: 20.0, Payer: "a@x.com", Payee: "b@x.com"},
			requester: "a@x.com",
		},
		{
			name:      "valid payment by payee",
			payment:   &models.Payment{Amount: 20.0, Payer: "a@x.com", Payee: "b@x.com"},
			requester: "b@x.com",
		},
		{
			name:      "zero amount",
			payment:   &models.Payment{Amount: 0, Payer: "a@x.com", Payee: "b@x.com"},
			requester: "a@x.com",
			wantKind:  serrs.ErrValidation,
		},
		{
			name:      "payer equals payee",
			payment:   &models.Payment{Amount: 20.0, Payer: "a@x.com", Payee: "a@x.com"},
			requester: "a@x.com",
			wantKind:  serrs.ErrValidation,
		},
		{
			name:      "requester is neither party",
			payment:   &models.Payment{Amount: 20.0, Payer: "a@x.com", Payee: "b@x.com"},
			requester: "c@x.com",
			wantKind:  serrs.ErrForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Payment(tt.payment, tt.requester)
			if tt.wantKind == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantKind) {
				t.Errorf("got %v, want kind %v", err, tt.wantKind)
			}
		})
	}
}

func TestPaymentGroup(t *testing.T) {
	group := &models.Group{ID: "g1", Name: "Flat", Members: []string{"a@x.com", "b@x.com"}}

	if err := PaymentGroup(&models.Payment{Payer: "a@x.com", Payee: "b@x.com"}, group); err != nil {
		t.Errorf("members-only payment rejected: %v", err)
	}
	if err := PaymentGroup(&models.Payment{Payer: "a@x.com", Payee: "c@x.com"}, group); !errors.Is(err, serrs.ErrValidation) {
		t.Errorf("non-member payee: got %v, want validation error", err)
	}
}
