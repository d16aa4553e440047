package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/ordosuite/salesbridge/internal/services/billing"
)

type createPaymentRequest struct {
	InvoiceNo        string `json:"invoice_no" validate:"required"`
	UserID           int64  `json:"user_id" validate:"required"`
	PaymentReference string `json:"payment_reference" validate:"required"`
}

// createPayment registers a payment for an already-posted invoice, on
// behalf of an external payment gateway reporting a settled transaction.
func (r *Router) createPayment(w http.ResponseWriter, req *http.Request) {
	var in createPaymentRequest
	if err := decodeBody(req, &in); err != nil {
		respondInvalid(w, http.StatusBadRequest, "invalid_payload", "Request body must be valid JSON")
		return
	}
	if err := validate.Struct(in); err != nil {
		respondInvalid(w, http.StatusBadRequest, "missing_parameter",
			"either of the following are missing [invoice_no, user_id, payment_reference]")
		return
	}

	paymentID, err := r.svc.Billing.RegisterPayment(req.Context(), billing.PaymentInput{
		InvoiceNumber:    in.InvoiceNo,
		UserID:           in.UserID,
		PaymentReference: in.PaymentReference,
		CompanyID:        r.cfg.Odoo.CompanyID,
	})
	switch {
	case err == nil:
		respondData(w, map[string]interface{}{"payment_id": paymentID})
	case errors.Is(err, billing.ErrAlreadyPaid):
		respondMessage(w, "Invoice is already paid")
	case errors.Is(err, billing.ErrUserNotFound):
		respondInvalid(w, http.StatusBadRequest, "user_not_found",
			fmt.Sprintf("User with ID %d not found.", in.UserID))
	case errors.Is(err, billing.ErrPartnerNotFound):
		respondInvalid(w, http.StatusBadRequest, "partner_not_found",
			fmt.Sprintf("User with ID %d don't have a related partner", in.UserID))
	case errors.Is(err, billing.ErrInvoiceNotFound):
		respondInvalid(w, http.StatusBadRequest, "invoice_not_found",
			fmt.Sprintf("Invoice with number %s not found.", in.InvoiceNo))
	case errors.Is(err, billing.ErrInvoiceNotPosted):
		respondInvalid(w, http.StatusBadRequest, "invalid_invoice_state",
			"You can only register payment for posted invoices.")
	default:
		r.logger.Error("payment registration failed", zap.Error(err))
		respondFailure(w, err.Error())
	}
}
