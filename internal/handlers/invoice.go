package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/ordosuite/salesbridge/internal/erp"
	"github.com/ordosuite/salesbridge/internal/services/billing"
)

type invoiceValidationRequest struct {
	InvoiceNumber     string `json:"invoice_number" validate:"required"`
	InvoiceID         int64  `json:"invoice_id" validate:"required"`
	IsRegisterPayment bool   `json:"is_register_payment"`
	JournalID         int64  `json:"journal_id"`
}

// validateInvoice posts a draft invoice identified by number or id, and
// optionally registers a payment against it. Both identifiers must be
// supplied; the lookup is an OR and the first match wins.
func (r *Router) validateInvoice(w http.ResponseWriter, req *http.Request) {
	var in invoiceValidationRequest
	if err := decodeBody(req, &in); err != nil {
		if field, ok := typeErrorField(err); ok {
			respondInvalid(w, http.StatusBadRequest, "invalid_parameter",
				"Parameter has the wrong type ["+field+"]")
			return
		}
		respondInvalid(w, http.StatusBadRequest, "invalid_payload", "Request body must be valid JSON")
		return
	}

	if err := validate.Struct(in); err != nil {
		// Nominal status 200: callers of this endpoint inspect the body.
		respondInvalid(w, http.StatusOK, "missing_parameter",
			"Missing required parameters [invoice_number, invoice_id]")
		return
	}

	if in.IsRegisterPayment {
		if in.JournalID == 0 {
			respondInvalid(w, http.StatusOK, "missing_parameter",
				"Please provide a journal id [journal_id]")
			return
		}
		exists, err := r.svc.Billing.JournalExists(req.Context(), in.JournalID)
		if err != nil {
			respondFailure(w, err.Error())
			return
		}
		if !exists {
			respondInvalid(w, http.StatusOK, "missing_parameter",
				"Provided Journal id does not exist in the database [journal_id]")
			return
		}
	}

	result, err := r.svc.Billing.ValidateInvoice(req.Context(), billing.ValidateInput{
		InvoiceNumber:   in.InvoiceNumber,
		InvoiceID:       in.InvoiceID,
		RegisterPayment: in.IsRegisterPayment,
		JournalID:       in.JournalID,
	})
	if err != nil {
		if errors.Is(err, erp.ErrNotFound) {
			respondFailure(w, "No invoice found")
			return
		}
		r.logger.Error("invoice validation failed", zap.Error(err))
		respondFailure(w, err.Error())
		return
	}

	respondData(w, result)
}
