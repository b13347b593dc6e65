package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"splitledger/internal/models"
)

// CreateExpense persists a new expense with its participant and split rows.
func (s *SQLiteStore) CreateExpense(ctx context.Context, expense *models.Expense) error {
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.CreatedAt == "" {
		expense.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO expenses (id, description, amount, paid_by, split_method, created_at, group_id, created_by)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		expense.ID, expense.Description, expense.Amount, expense.PaidBy,
		expense.SplitMethod, expense.CreatedAt, nullable(expense.GroupID), expense.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}

	for _, email := range expense.Participants {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO expense_participants (expense_id, email) VALUES (?, ?)",
			expense.ID, email,
		); err != nil {
			return fmt.Errorf("failed to insert participant: %w", err)
		}
	}

	for email, amount := range expense.Splits {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO expense_splits (expense_id, email, amount) VALUES (?, ?, ?)",
			expense.ID, email, amount,
		); err != nil {
			return fmt.Errorf("failed to insert split: %w", err)
		}
	}

	for _, email := range expense.UnregisteredParticipants {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO expense_unregistered (expense_id, email) VALUES (?, ?)",
			expense.ID, email,
		); err != nil {
			return fmt.Errorf("failed to insert unregistered participant: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetExpense retrieves an expense by ID, including participants and splits.
func (s *SQLiteStore) GetExpense(ctx context.Context, id string) (*models.Expense, error) {
	expense, err := s.scanExpense(s.db.QueryRowContext(ctx,
		`SELECT id, description, amount, paid_by, split_method, created_at, group_id, created_by
		 FROM expenses WHERE id = ?`,
		id,
	))
	if err == sql.ErrNoRows {
		return nil, nil // Expense not found
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}

	if err := s.loadExpenseDetails(ctx, expense); err != nil {
		return nil, err
	}

	return expense, nil
}

// ListExpensesByParticipant retrieves expenses where email is a participant.
func (s *SQLiteStore) ListExpensesByParticipant(ctx context.Context, email string) ([]*models.Expense, error) {
	return s.listExpenses(ctx,
		`SELECT e.id, e.description, e.amount, e.paid_by, e.split_method, e.created_at, e.group_id, e.created_by
		 FROM expenses e
		 JOIN expense_participants p ON p.expense_id = e.id
		 WHERE p.email = ?
		 ORDER BY e.created_at`,
		email,
	)
}

// ListExpensesByCreator retrieves expenses recorded by email.
func (s *SQLiteStore) ListExpensesByCreator(ctx context.Context, email string) ([]*models.Expense, error) {
	return s.listExpenses(ctx,
		`SELECT id, description, amount, paid_by, split_method, created_at, group_id, created_by
		 FROM expenses WHERE created_by = ? ORDER BY created_at`,
		email,
	)
}

// ListExpensesByMethod retrieves expenses with the given split method.
func (s *SQLiteStore) ListExpensesByMethod(ctx context.Context, method string) ([]*models.Expense, error) {
	return s.listExpenses(ctx,
		`SELECT id, description, amount, paid_by, split_method, created_at, group_id, created_by
		 FROM expenses WHERE split_method = ? ORDER BY created_at`,
		method,
	)
}

// UpdateExpenseSplits rewrites an expense's split rows and method in place.
func (s *SQLiteStore) UpdateExpenseSplits(ctx context.Context, id string, splits map[string]float64, method string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		"UPDATE expenses SET split_method = ? WHERE id = ?", method, id,
	); err != nil {
		return fmt.Errorf("failed to update split method: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM expense_splits WHERE expense_id = ?", id,
	); err != nil {
		return fmt.Errorf("failed to delete old splits: %w", err)
	}

	for email, amount := range splits {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO expense_splits (expense_id, email, amount) VALUES (?, ?, ?)",
			id, email, amount,
		); err != nil {
			return fmt.Errorf("failed to insert split: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func (s *SQLiteStore) listExpenses(ctx context.Context, query string, arg any) ([]*models.Expense, error) {
	rows, err := s.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*models.Expense
	for rows.Next() {
		expense, err := s.scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, expense)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}

	for _, expense := range expenses {
		if err := s.loadExpenseDetails(ctx, expense); err != nil {
			return nil, err
		}
	}

	return expenses, nil
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func (s *SQLiteStore) scanExpense(row scanner) (*models.Expense, error) {
	expense := &models.Expense{}
	var groupID sql.NullString
	if err := row.Scan(
		&expense.ID, &expense.Description, &expense.Amount, &expense.PaidBy,
		&expense.SplitMethod, &expense.CreatedAt, &groupID, &expense.CreatedBy,
	); err != nil {
		return nil, err
	}
	if groupID.Valid {
		expense.GroupID = groupID.String
	}
	return expense, nil
}

func (s *SQLiteStore) loadExpenseDetails(ctx context.Context, expense *models.Expense) error {
	var err error
	expense.Participants, err = s.listEmails(ctx,
		"SELECT email FROM expense_participants WHERE expense_id = ? ORDER BY email", expense.ID)
	if err != nil {
		return fmt.Errorf("failed to get participants: %w", err)
	}

	expense.UnregisteredParticipants, err = s.listEmails(ctx,
		"SELECT email FROM expense_unregistered WHERE expense_id = ? ORDER BY email", expense.ID)
	if err != nil {
		return fmt.Errorf("failed to get unregistered participants: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT email, amount FROM expense_splits WHERE expense_id = ?", expense.ID)
	if err != nil {
		return fmt.Errorf("failed to get splits: %w", err)
	}
	defer rows.Close()

	splits := make(map[string]float64)
	for rows.Next() {
		var email string
		var amount float64
		if err := rows.Scan(&email, &amount); err != nil {
			return fmt.Errorf("failed to scan split: %w", err)
		}
		splits[email] = amount
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate splits: %w", err)
	}
	if len(splits) > 0 {
		expense.Splits = splits
	}

	return nil
}
