package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"splitledger/internal/models"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteStore(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("CreateUser assigns ID and timestamp", func(t *testing.T) {
		user := &models.User{Email: "alice@x.com", Name: "Alice", PasswordHash: "hash"}
		if err := store.CreateUser(ctx, user); err != nil {
			t.Fatalf("CreateUser failed: %v", err)
		}
		if user.ID == "" {
			t.Error("expected user ID to be generated")
		}
		if user.CreatedAt == "" {
			t.Error("expected CreatedAt to be set")
		}

		got, err := store.GetUserByEmail(ctx, "alice@x.com")
		if err != nil {
			t.Fatalf("GetUserByEmail failed: %v", err)
		}
		if got == nil || got.Name != "Alice" || got.PasswordHash != "hash" {
			t.Errorf("retrieved user = %+v", got)
		}
	})

	t.Run("GetUserByEmail misses cleanly", func(t *testing.T) {
		got, err := store.GetUserByEmail(ctx, "nobody@x.com")
		if err != nil || got != nil {
			t.Errorf("got (%v, %v), want (nil, nil)", got, err)
		}
	})

	t.Run("Group round trip with unregistered members", func(t *testing.T) {
		group := &models.Group{
			Name:                "Trip",
			Members:             []string{"alice@x.com", "bob@x.com"},
			CreatedBy:           "alice@x.com",
			UnregisteredMembers: []string{"bob@x.com"},
		}
		if err := store.CreateGroup(ctx, group); err != nil {
			t.Fatalf("CreateGroup failed: %v", err)
		}

		got, err := store.GetGroup(ctx, group.ID)
		if err != nil || got == nil {
			t.Fatalf("GetGroup: got (%v, %v)", got, err)
		}
		if len(got.Members) != 2 || len(got.UnregisteredMembers) != 1 {
			t.Errorf("retrieved group = %+v", got)
		}

		byName, err := store.GetGroupByNameAndCreator(ctx, "Trip", "alice@x.com")
		if err != nil || byName == nil || byName.ID != group.ID {
			t.Errorf("GetGroupByNameAndCreator: got (%+v, %v)", byName, err)
		}

		listed, err := store.ListGroupsForUser(ctx, "bob@x.com")
		if err != nil || len(listed) != 1 {
			t.Errorf("ListGroupsForUser(bob) = (%d, %v), want 1 group", len(listed), err)
		}
	})

	t.Run("Expense round trip preserves splits and group reference", func(t *testing.T) {
		group := &models.Group{
			Name:      "Flat",
			Members:   []string{"alice@x.com", "bob@x.com"},
			CreatedBy: "alice@x.com",
		}
		if err := store.CreateGroup(ctx, group); err != nil {
			t.Fatalf("CreateGroup failed: %v", err)
		}

		expense := &models.Expense{
			Description:              "groceries",
			Amount:                   60.0,
			Participants:             []string{"alice@x.com", "bob@x.com"},
			PaidBy:                   "alice@x.com",
			SplitMethod:              models.SplitCustom,
			Splits:                   map[string]float64{"alice@x.com": 40.0, "bob@x.com": 20.0},
			GroupID:                  group.ID,
			CreatedBy:                "alice@x.com",
			UnregisteredParticipants: []string{"bob@x.com"},
		}
		if err := store.CreateExpense(ctx, expense); err != nil {
			t.Fatalf("CreateExpense failed: %v", err)
		}

		got, err := store.GetExpense(ctx, expense.ID)
		if err != nil || got == nil {
			t.Fatalf("GetExpense: got (%v, %v)", got, err)
		}
		if got.GroupID != group.ID || got.Splits["bob@x.com"] != 20.0 {
			t.Errorf("retrieved expense = %+v", got)
		}
		if len(got.Participants) != 2 || len(got.UnregisteredParticipants) != 1 {
			t.Errorf("participant details lost: %+v", got)
		}
	})

	t.Run("Ungrouped expense round trips with empty group id", func(t *testing.T) {
		expense := &models.Expense{
			Description:  "taxi",
			Amount:       15.0,
			Participants: []string{"alice@x.com"},
			PaidBy:       "alice@x.com",
			SplitMethod:  models.SplitEqual,
			Splits:       map[string]float64{"alice@x.com": 15.0},
			CreatedBy:    "alice@x.com",
		}
		if err := store.CreateExpense(ctx, expense); err != nil {
			t.Fatalf("CreateExpense failed: %v", err)
		}

		got, err := store.GetExpense(ctx, expense.ID)
		if err != nil || got == nil {
			t.Fatalf("GetExpense: got (%v, %v)", got, err)
		}
		if got.GroupID != "" {
			t.Errorf("GroupID = %q, want empty", got.GroupID)
		}
	})

	t.Run("Expense listings filter correctly", func(t *testing.T) {
		byCreator, err := store.ListExpensesByCreator(ctx, "alice@x.com")
		if err != nil {
			t.Fatalf("ListExpensesByCreator failed: %v", err)
		}
		if len(byCreator) != 2 {
			t.Errorf("ListExpensesByCreator(alice) = %d, want 2", len(byCreator))
		}

		byMethod, err := store.ListExpensesByMethod(ctx, models.SplitCustom)
		if err != nil {
			t.Fatalf("ListExpensesByMethod failed: %v", err)
		}
		if len(byMethod) != 1 {
			t.Errorf("ListExpensesByMethod(custom) = %d, want 1", len(byMethod))
		}
	})

	t.Run("UpdateExpenseSplits rewrites splits and method", func(t *testing.T) {
		byMethod, err := store.ListExpensesByMethod(ctx, models.SplitCustom)
		if err != nil || len(byMethod) == 0 {
			t.Fatalf("no custom expense to rewrite: %v", err)
		}
		target := byMethod[0]

		newSplits := map[string]float64{"alice@x.com": 30.0, "bob@x.com": 30.0}
		if err := store.UpdateExpenseSplits(ctx, target.ID, newSplits, models.SplitEqual); err != nil {
			t.Fatalf("UpdateExpenseSplits failed: %v", err)
		}

		got, err := store.GetExpense(ctx, target.ID)
		if err != nil || got == nil {
			t.Fatalf("GetExpense: got (%v, %v)", got, err)
		}
		if got.SplitMethod != models.SplitEqual || got.Splits["alice@x.com"] != 30.0 {
			t.Errorf("expense not rewritten: %+v", got)
		}
	})

	t.Run("Payment round trip", func(t *testing.T) {
		payment := &models.Payment{
			Amount:      25.0,
			Payer:       "alice@x.com",
			Payee:       "bob@x.com",
			Description: "settling up",
		}
		if err := store.CreatePayment(ctx, payment); err != nil {
			t.Fatalf("CreatePayment failed: %v", err)
		}

		for _, email := range []string{"alice@x.com", "bob@x.com"} {
			payments, err := store.ListPaymentsByUser(ctx, email)
			if err != nil || len(payments) != 1 {
				t.Errorf("ListPaymentsByUser(%s) = (%d, %v), want 1", email, len(payments), err)
			}
		}
	})

	t.Run("Counts reflects inserts", func(t *testing.T) {
		counts, err := store.Counts(ctx)
		if err != nil {
			t.Fatalf("Counts failed: %v", err)
		}
		if counts.Users != 1 || counts.Groups != 2 || counts.Expenses != 2 || counts.Payments != 1 {
			t.Errorf("counts = %+v", counts)
		}
	})
}
