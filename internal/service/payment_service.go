package service

import (
	"net/http"

	"splitledger/internal/middleware"
	"splitledger/internal/models"
	"splitledger/internal/storage"
	"splitledger/internal/validation"
	"splitledger/pkg/serrs"
)

// PaymentService handles direct settlement payments between two users.
type PaymentService struct {
	store storage.Store
}

// NewPaymentService creates a new PaymentService.
func NewPaymentService(store storage.Store) *PaymentService {
	return &PaymentService{store: store}
}

type paymentRequest struct {
	Amount      float64 `json:"amount"`
	Payer       string  `json:"payer"`
	Payee       string  `json:"payee"`
	Description string  `json:"description"`
	GroupID     string  `json:"group_id"`
}

type paymentResponse struct {
	ID           string   `json:"id"`
	Amount       float64  `json:"amount"`
	Payer        string   `json:"payer"`
	Payee        string   `json:"payee"`
	Description  string   `json:"description"`
	GroupID      string   `json:"group_id,omitempty"`
	GroupName    string   `json:"group_name,omitempty"`
	Unregistered []string `json:"unregistered,omitempty"`
}

// Create records a payment from payer to payee. A payment reduces what the
// payer owes the payee when balances are recomputed.
func (s *PaymentService) Create(w http.ResponseWriter, r *http.Request) {
	email := middleware.GetEmail(r.Context())

	var req paymentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	payment := &models.Payment{
		Amount:      req.Amount,
		Payer:       req.Payer,
		Payee:       req.Payee,
		Description: req.Description,
		GroupID:     req.GroupID,
	}
	if err := validation.Payment(payment, email); err != nil {
		writeError(w, err)
		return
	}

	var groupName string
	if payment.GroupID != "" {
		group, err := loadGroupRef(r.Context(), s.store, payment.GroupID)
		if err != nil {
			writeError(w, err)
			return
		}
		if err := validation.PaymentGroup(payment, group); err != nil {
			writeError(w, err)
			return
		}
		groupName = group.Name
	}

	unregistered, err := detectUnregistered(r.Context(), s.store, payment.Payer, payment.Payee)
	if err != nil {
		writeError(w, err)
		return
	}
	payment.Unregistered = unregistered

	if err := s.store.CreatePayment(r.Context(), payment); err != nil {
		writeError(w, serrs.Wrap(serrs.ErrStore, err, "failed to create payment"))
		return
	}

	writeJSON(w, http.StatusOK, paymentResponse{
		ID:           payment.ID,
		Amount:       payment.Amount,
		Payer:        payment.Payer,
		Payee:        payment.Payee,
		Description:  payment.Description,
		GroupID:      payment.GroupID,
		GroupName:    groupName,
		Unregistered: payment.Unregistered,
	})
}
