package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"splitledger/internal/models"
)

// CreatePayment persists a new payment.
func (s *SQLiteStore) CreatePayment(ctx context.Context, payment *models.Payment) error {
	if payment.ID == "" {
		payment.ID = uuid.New().String()
	}
	if payment.CreatedAt == "" {
		payment.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO payments (id, amount, payer, payee, description, created_at, group_id)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		payment.ID, payment.Amount, payment.Payer, payment.Payee,
		payment.Description, payment.CreatedAt, nullable(payment.GroupID),
	)
	if err != nil {
		return fmt.Errorf("failed to insert payment: %w", err)
	}

	for _, email := range payment.Unregistered {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO payment_unregistered (payment_id, email) VALUES (?, ?)",
			payment.ID, email,
		); err != nil {
			return fmt.Errorf("failed to insert unregistered party: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// ListPaymentsByUser retrieves payments where email is payer or payee.
func (s *SQLiteStore) ListPaymentsByUser(ctx context.Context, email string) ([]*models.Payment, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, amount, payer, payee, description, created_at, group_id
		 FROM payments WHERE payer = ? OR payee = ? ORDER BY created_at`,
		email, email,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	defer rows.Close()

	var payments []*models.Payment
	for rows.Next() {
		payment := &models.Payment{}
		var groupID sql.NullString
		if err := rows.Scan(
			&payment.ID, &payment.Amount, &payment.Payer, &payment.Payee,
			&payment.Description, &payment.CreatedAt, &groupID,
		); err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		if groupID.Valid {
			payment.GroupID = groupID.String
		}
		payments = append(payments, payment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payments: %w", err)
	}

	for _, payment := range payments {
		payment.Unregistered, err = s.listEmails(ctx,
			"SELECT email FROM payment_unregistered WHERE payment_id = ? ORDER BY email", payment.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to get unregistered parties: %w", err)
		}
	}

	return payments, nil
}
