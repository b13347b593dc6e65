// Package service implements the HTTP handlers of the ledger API.
// Each service takes the storage adapter as an injected dependency; handlers
// validate, persist and assemble responses, leaving balance math to the
// calculator package.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"splitledger/internal/calculator"
	"splitledger/internal/models"
	"splitledger/internal/storage"
	"splitledger/pkg/serrs"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

// writeError maps an error to its HTTP status and a {"detail": ...} body.
func writeError(w http.ResponseWriter, err error) {
	status := serrs.Status(err)
	if status == http.StatusInternalServerError {
		slog.Error("Request failed", "error", err)
	}
	detail := err.Error()
	var serr *serrs.Error
	if errors.As(err, &serr) {
		detail = serr.Message()
	}
	writeJSON(w, status, map[string]string{"detail": detail})
}

func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return serrs.Wrap(serrs.ErrValidation, err, "invalid request body")
	}
	return nil
}

// detectUnregistered flags emails with no account. Detection never rejects;
// the record is created anyway and the list is kept for later notification.
func detectUnregistered(ctx context.Context, store storage.Store, emails ...string) ([]string, error) {
	seen := make(map[string]bool, len(emails))
	var unregistered []string
	for _, email := range emails {
		if seen[email] {
			continue
		}
		seen[email] = true

		user, err := store.GetUserByEmail(ctx, email)
		if err != nil {
			return nil, serrs.Wrap(serrs.ErrStore, err, "failed to look up user")
		}
		if user == nil {
			unregistered = append(unregistered, email)
			slog.Info("Sending registration request", "email", email)
		}
	}
	return unregistered, nil
}

// userView assembles the full derived view for email: all expenses they
// share in plus all payments they are party to.
func userView(ctx context.Context, store storage.Store, email string) (*calculator.UserView, error) {
	expenses, err := store.ListExpensesByParticipant(ctx, email)
	if err != nil {
		return nil, serrs.Wrap(serrs.ErrStore, err, "failed to fetch expenses")
	}
	payments, err := store.ListPaymentsByUser(ctx, email)
	if err != nil {
		return nil, serrs.Wrap(serrs.ErrStore, err, "failed to fetch payments")
	}
	groups, err := resolveGroups(ctx, store, expenses, payments)
	if err != nil {
		return nil, err
	}
	return calculator.BuildUserView(email, expenses, payments, groups), nil
}

// createdView assembles the view restricted to expenses the user authored.
// Payments are not included, matching the authored-records semantics.
func createdView(ctx context.Context, store storage.Store, email string) (*calculator.UserView, error) {
	expenses, err := store.ListExpensesByCreator(ctx, email)
	if err != nil {
		return nil, serrs.Wrap(serrs.ErrStore, err, "failed to fetch expenses")
	}
	groups, err := resolveGroups(ctx, store, expenses, nil)
	if err != nil {
		return nil, err
	}
	return calculator.BuildUserView(email, expenses, nil, groups), nil
}

// resolveGroups fetches every well-formed group reference appearing in the
// given records. Malformed IDs are left for the aggregator to label.
func resolveGroups(ctx context.Context, store storage.Store, expenses []*models.Expense, payments []*models.Payment) (map[string]*models.Group, error) {
	ids := make(map[string]bool)
	for _, e := range expenses {
		if e.GroupID != "" {
			ids[e.GroupID] = true
		}
	}
	for _, p := range payments {
		if p.GroupID != "" {
			ids[p.GroupID] = true
		}
	}

	groups := make(map[string]*models.Group, len(ids))
	for id := range ids {
		if _, err := uuid.Parse(id); err != nil {
			continue
		}
		group, err := store.GetGroup(ctx, id)
		if err != nil {
			return nil, serrs.Wrap(serrs.ErrStore, err, "failed to fetch group")
		}
		if group != nil {
			groups[id] = group
		}
	}
	return groups, nil
}

// loadGroupRef resolves a caller-supplied group reference, rejecting
// malformed IDs and dangling references.
func loadGroupRef(ctx context.Context, store storage.Store, groupID string) (*models.Group, error) {
	if _, err := uuid.Parse(groupID); err != nil {
		return nil, serrs.With(serrs.ErrValidation, "invalid group_id")
	}
	group, err := store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, serrs.Wrap(serrs.ErrStore, err, "failed to fetch group")
	}
	if group == nil {
		return nil, serrs.With(serrs.ErrValidation, "group not found")
	}
	return group, nil
}
