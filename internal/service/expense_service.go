package service

import (
	"fmt"
	"log/slog"
	"net/http"
	"slices"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"splitledger/internal/calculator"
	"splitledger/internal/middleware"
	"splitledger/internal/models"
	"splitledger/internal/storage"
	"splitledger/internal/validation"
	"splitledger/pkg/serrs"
)

// ExpenseService handles expense creation, listings, reminders and the
// split repair sweep.
type ExpenseService struct {
	store storage.Store
}

// NewExpenseService creates a new ExpenseService.
func NewExpenseService(store storage.Store) *ExpenseService {
	return &ExpenseService{store: store}
}

type expenseRequest struct {
	Description  string             `json:"description"`
	Amount       float64            `json:"amount"`
	Participants []string           `json:"participants"`
	PaidBy       string             `json:"paid_by"`
	SplitMethod  string             `json:"split_method"`
	Splits       map[string]float64 `json:"splits"`
	GroupID      string             `json:"group_id"`
}

type expenseResponse struct {
	ID                       string             `json:"id"`
	Description              string             `json:"description"`
	Amount                   float64            `json:"amount"`
	PaidBy                   string             `json:"paid_by"`
	Participants             []string           `json:"participants"`
	Splits                   map[string]float64 `json:"splits"`
	BalancesForCurrentUser   map[string]float64 `json:"balances_for_current_user"`
	GroupID                  string             `json:"group_id,omitempty"`
	GroupName                string             `json:"group_name,omitempty"`
	UnregisteredParticipants []string           `json:"unregistered_participants,omitempty"`
}

// Create records a single expense.
func (s *ExpenseService) Create(w http.ResponseWriter, r *http.Request) {
	email := middleware.GetEmail(r.Context())

	var req expenseRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	resp, err := s.createExpense(r, &req, email, nil)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// createExpense validates, splits and persists one expense. When the caller
// already resolved the group (the batch endpoint), it is passed in to avoid
// refetching per item.
func (s *ExpenseService) createExpense(r *http.Request, req *expenseRequest, email string, group *models.Group) (*expenseResponse, error) {
	if req.SplitMethod == "" {
		req.SplitMethod = models.SplitEqual
	}

	expense := &models.Expense{
		Description:  req.Description,
		Amount:       req.Amount,
		Participants: req.Participants,
		PaidBy:       req.PaidBy,
		SplitMethod:  req.SplitMethod,
		Splits:       req.Splits,
		GroupID:      req.GroupID,
		CreatedBy:    email,
	}
	if group != nil {
		expense.GroupID = group.ID
	}

	if err := validation.Expense(expense, email); err != nil {
		return nil, err
	}

	if group == nil && expense.GroupID != "" {
		var err error
		group, err = loadGroupRef(r.Context(), s.store, expense.GroupID)
		if err != nil {
			return nil, err
		}
	}
	if group != nil {
		if err := validation.ExpenseGroup(expense, group); err != nil {
			return nil, err
		}
	}

	unregistered, err := detectUnregistered(r.Context(), s.store, append(slices.Clone(expense.Participants), expense.PaidBy)...)
	if err != nil {
		return nil, err
	}
	expense.UnregisteredParticipants = unregistered

	// Validation already rejected bad custom splits, so no fallback here.
	outcome := calculator.ComputeSplits(expense.Amount, expense.Participants, expense.SplitMethod, expense.Splits)
	expense.Splits = outcome.Splits

	if err := s.store.CreateExpense(r.Context(), expense); err != nil {
		return nil, serrs.Wrap(serrs.ErrStore, err, "failed to create expense")
	}

	resp := &expenseResponse{
		ID:                       expense.ID,
		Description:              expense.Description,
		Amount:                   expense.Amount,
		PaidBy:                   expense.PaidBy,
		Participants:             expense.Participants,
		Splits:                   expense.Splits,
		BalancesForCurrentUser:   calculator.PerspectiveBalances(expense.Splits, expense.PaidBy, email),
		GroupID:                  expense.GroupID,
		UnregisteredParticipants: expense.UnregisteredParticipants,
	}
	if group != nil {
		resp.GroupName = group.Name
	}
	return resp, nil
}

type groupExpenseRequest struct {
	GroupID  string           `json:"group_id"`
	Expenses []expenseRequest `json:"expenses"`
}

// CreateBatch records several expenses against one group. Inserts are not
// atomic: a failure aborts the batch but earlier inserts remain.
func (s *ExpenseService) CreateBatch(w http.ResponseWriter, r *http.Request) {
	email := middleware.GetEmail(r.Context())

	var req groupExpenseRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if len(req.Expenses) == 0 {
		writeError(w, serrs.With(serrs.ErrValidation, "expenses list cannot be empty"))
		return
	}

	group, err := loadGroupRef(r.Context(), s.store, req.GroupID)
	if err != nil {
		writeError(w, err)
		return
	}
	if !slices.Contains(group.Members, email) {
		writeError(w, serrs.With(serrs.ErrForbidden, "current user must be a group member"))
		return
	}

	inserted := make([]string, 0, len(req.Expenses))
	details := make([]*expenseResponse, 0, len(req.Expenses))
	for i := range req.Expenses {
		resp, err := s.createExpense(r, &req.Expenses[i], email, group)
		if err != nil {
			writeError(w, err)
			return
		}
		inserted = append(inserted, resp.ID)
		details = append(details, resp)
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"inserted": inserted,
		"details":  details,
	})
}

// Remind acknowledges a reminder for an expense share. The caller must be a
// participant; a missing expense and a foreign expense are indistinguishable
// in the response.
func (s *ExpenseService) Remind(w http.ResponseWriter, r *http.Request) {
	email := middleware.GetEmail(r.Context())
	vars := mux.Vars(r)
	expenseID, toEmail := vars["expenseId"], vars["toEmail"]

	if _, err := uuid.Parse(expenseID); err != nil {
		writeError(w, serrs.With(serrs.ErrValidation, "invalid expense_id"))
		return
	}

	expense, err := s.store.GetExpense(r.Context(), expenseID)
	if err != nil {
		writeError(w, serrs.Wrap(serrs.ErrStore, err, "failed to fetch expense"))
		return
	}
	if expense == nil || !slices.Contains(expense.Participants, email) {
		writeError(w, serrs.With(serrs.ErrNotFound, "expense not found or not authorized"))
		return
	}
	if !slices.Contains(expense.Participants, toEmail) {
		writeError(w, serrs.With(serrs.ErrValidation, "to_email must be a participant in the expense"))
		return
	}

	slog.Info("Reminder sent", "expense_id", expenseID, "from", email, "to", toEmail)
	writeJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Reminder sent to %s", toEmail),
	})
}

// UserExpenses returns the caller's full derived view: expense history plus
// net and per-group balances, recomputed from the stored records.
func (s *ExpenseService) UserExpenses(w http.ResponseWriter, r *http.Request) {
	email := middleware.GetEmail(r.Context())

	view, err := userView(r.Context(), s.store, email)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// CreatedExpenses returns the same derived view restricted to expenses the
// caller recorded.
func (s *ExpenseService) CreatedExpenses(w http.ResponseWriter, r *http.Request) {
	email := middleware.GetEmail(r.Context())

	view, err := createdView(r.Context(), s.store, email)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// FixExpenses rewrites every stored custom expense whose splits no longer
// validate to an equal split. Idempotent: a second run finds nothing to fix.
func (s *ExpenseService) FixExpenses(w http.ResponseWriter, r *http.Request) {
	expenses, err := s.store.ListExpensesByMethod(r.Context(), models.SplitCustom)
	if err != nil {
		writeError(w, serrs.Wrap(serrs.ErrStore, err, "failed to list expenses"))
		return
	}

	fixed := 0
	for _, e := range expenses {
		reason := calculator.CheckCustomSplits(e.Amount, e.Participants, e.Splits)
		if reason == "" {
			continue
		}
		outcome := calculator.ComputeSplits(e.Amount, e.Participants, models.SplitEqual, nil)
		if err := s.store.UpdateExpenseSplits(r.Context(), e.ID, outcome.Splits, models.SplitEqual); err != nil {
			writeError(w, serrs.Wrap(serrs.ErrStore, err, "failed to update expense %s", e.ID))
			return
		}
		slog.Info("Rewrote invalid custom splits", "expense_id", e.ID, "reason", reason)
		fixed++
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Fixed %d expenses", fixed),
	})
}

type debugResponse struct {
	Backend     string   `json:"backend"`
	Collections []string `json:"collections"`
	storage.Counts
}

// Debug reports the storage backend, its collections and record counts.
func (s *ExpenseService) Debug(w http.ResponseWriter, r *http.Request) {
	counts, err := s.store.Counts(r.Context())
	if err != nil {
		writeError(w, serrs.Wrap(serrs.ErrStore, err, "failed to count records"))
		return
	}
	writeJSON(w, http.StatusOK, debugResponse{
		Backend:     s.store.Name(),
		Collections: s.store.Collections(),
		Counts:      counts,
	})
}
