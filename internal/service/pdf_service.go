package service

import (
	"net/http"

	"splitledger/internal/middleware"
	"splitledger/internal/pdf"
	"splitledger/pkg/serrs"
)

// PDFService proxies report generation to the external renderer.
type PDFService struct {
	client *pdf.Client
}

// NewPDFService creates a new PDFService.
func NewPDFService(client *pdf.Client) *PDFService {
	return &PDFService{client: client}
}

type pdfRequest struct {
	Email   string `json:"email"`
	GroupID string `json:"group_id"`
}

// Generate returns a PDF report for the caller's own activity. Requesting a
// report for another email is rejected.
func (s *PDFService) Generate(w http.ResponseWriter, r *http.Request) {
	email := middleware.GetEmail(r.Context())

	var req pdfRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.Email == "" {
		req.Email = email
	}
	if req.Email != email {
		writeError(w, serrs.With(serrs.ErrForbidden, "cannot generate a report for another user"))
		return
	}

	data, err := s.client.Generate(r.Context(), req.Email, req.GroupID)
	if err != nil {
		writeError(w, serrs.Wrap(serrs.ErrStore, err, "failed to generate report"))
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="expense_report.pdf"`)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
