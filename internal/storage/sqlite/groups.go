package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"splitledger/internal/models"
)

// CreateGroup persists a new group with its membership rows.
func (s *SQLiteStore) CreateGroup(ctx context.Context, group *models.Group) error {
	if group.ID == "" {
		group.ID = uuid.New().String()
	}
	if group.CreatedAt == "" {
		group.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO groups (id, name, created_by, created_at) VALUES (?, ?, ?, ?)",
		group.ID, group.Name, group.CreatedBy, group.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert group: %w", err)
	}

	for _, email := range group.Members {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO group_members (group_id, email) VALUES (?, ?)",
			group.ID, email,
		); err != nil {
			return fmt.Errorf("failed to insert group member: %w", err)
		}
	}

	for _, email := range group.UnregisteredMembers {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO group_unregistered (group_id, email) VALUES (?, ?)",
			group.ID, email,
		); err != nil {
			return fmt.Errorf("failed to insert unregistered member: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetGroup retrieves a group by ID, including its members.
func (s *SQLiteStore) GetGroup(ctx context.Context, id string) (*models.Group, error) {
	group := &models.Group{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, created_by, created_at FROM groups WHERE id = ?",
		id,
	).Scan(&group.ID, &group.Name, &group.CreatedBy, &group.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil // Group not found
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get group: %w", err)
	}

	if err := s.loadGroupMembers(ctx, group); err != nil {
		return nil, err
	}

	return group, nil
}

// GetGroupByNameAndCreator retrieves a group by its per-creator unique name.
func (s *SQLiteStore) GetGroupByNameAndCreator(ctx context.Context, name, creator string) (*models.Group, error) {
	var id string
	err := s.db.QueryRowContext(ctx,
		"SELECT id FROM groups WHERE name = ? AND created_by = ?",
		name, creator,
	).Scan(&id)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get group by name: %w", err)
	}

	return s.GetGroup(ctx, id)
}

// ListGroupsForUser retrieves groups created by or including email.
func (s *SQLiteStore) ListGroupsForUser(ctx context.Context, email string) ([]*models.Group, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT DISTINCT g.id, g.name, g.created_by, g.created_at
		 FROM groups g
		 LEFT JOIN group_members m ON m.group_id = g.id
		 WHERE g.created_by = ? OR m.email = ?
		 ORDER BY g.created_at`,
		email, email,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	defer rows.Close()

	var groups []*models.Group
	for rows.Next() {
		group := &models.Group{}
		if err := rows.Scan(&group.ID, &group.Name, &group.CreatedBy, &group.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan group: %w", err)
		}
		groups = append(groups, group)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate groups: %w", err)
	}

	for _, group := range groups {
		if err := s.loadGroupMembers(ctx, group); err != nil {
			return nil, err
		}
	}

	return groups, nil
}

func (s *SQLiteStore) loadGroupMembers(ctx context.Context, group *models.Group) error {
	var err error
	group.Members, err = s.listEmails(ctx,
		"SELECT email FROM group_members WHERE group_id = ? ORDER BY email", group.ID)
	if err != nil {
		return fmt.Errorf("failed to get group members: %w", err)
	}
	group.UnregisteredMembers, err = s.listEmails(ctx,
		"SELECT email FROM group_unregistered WHERE group_id = ? ORDER BY email", group.ID)
	if err != nil {
		return fmt.Errorf("failed to get unregistered members: %w", err)
	}
	return nil
}

// listEmails runs a single-column email query for a parent record.
func (s *SQLiteStore) listEmails(ctx context.Context, query, parentID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, query, parentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var emails []string
	for rows.Next() {
		var email string
		if err := rows.Scan(&email); err != nil {
			return nil, err
		}
		emails = append(emails, email)
	}
	return emails, rows.Err()
}
