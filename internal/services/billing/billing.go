// Package billing owns invoice posting and payment registration.
package billing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/ordosuite/salesbridge/internal/config"
	"github.com/ordosuite/salesbridge/internal/erp"
	"github.com/ordosuite/salesbridge/internal/models"
)

// Typed failures the handlers translate into stable response codes.
var (
	ErrUserNotFound     = errors.New("billing: user not found")
	ErrPartnerNotFound  = errors.New("billing: user has no related partner")
	ErrInvoiceNotFound  = errors.New("billing: invoice not found")
	ErrInvoiceNotPosted = errors.New("billing: invoice is not posted")
	ErrAlreadyPaid      = errors.New("billing: invoice is already paid")
)

// Service wraps the accounting operations of the gateway.
type Service struct {
	gw      erp.Gateway
	logger  *zap.Logger
	payment config.PaymentConfig
}

// New creates a billing service.
func New(gw erp.Gateway, logger *zap.Logger, payment config.PaymentConfig) *Service {
	return &Service{gw: gw, logger: logger, payment: payment}
}

// ValidateInput identifies the invoice to validate and whether a payment
// should be registered against it.
type ValidateInput struct {
	InvoiceNumber   string
	InvoiceID       int64
	RegisterPayment bool
	JournalID       int64
}

// ValidateResult echoes the validated invoice back to the caller.
type ValidateResult struct {
	InvoiceID     int64  `json:"invoice_id"`
	InvoiceNumber string `json:"invoice_number"`
}

// JournalExists reports whether an accounting journal with the given id
// exists. The invoice-validation endpoint checks the caller-supplied
// journal even though the payment is booked on the configured one; see
// RegisterInvoicePayment.
func (s *Service) JournalExists(ctx context.Context, id int64) (bool, error) {
	ids, err := s.gw.Search(ctx, erp.ModelAccountJournal, erp.Domain{{"id", "=", id}}, &erp.Options{Limit: 1})
	if err != nil {
		return false, err
	}
	return len(ids) > 0, nil
}

// ValidateInvoice looks up the invoice by number or id (first match wins),
// posts it if still draft, and optionally registers a payment. Posting an
// already-posted invoice is a no-op.
func (s *Service) ValidateInvoice(ctx context.Context, in ValidateInput) (*ValidateResult, error) {
	domain := erp.Or(
		erp.Condition{"name", "=", in.InvoiceNumber},
		erp.Condition{"id", "=", in.InvoiceID},
	)

	var invoices []models.Invoice
	if err := s.gw.SearchRead(ctx, erp.ModelAccountMove, domain, models.InvoiceFields, nil, &invoices); err != nil {
		return nil, err
	}
	if len(invoices) == 0 {
		return nil, erp.ErrNotFound
	}
	inv := invoices[0]

	if inv.State == models.InvoiceStateDraft {
		if _, err := s.gw.CallMethod(ctx, erp.ModelAccountMove, "action_post", []int64{inv.ID}, nil); err != nil {
			return nil, err
		}
		s.logger.Info("invoice posted", zap.Int64("invoice_id", inv.ID), zap.String("number", inv.Name.String()))
	}

	if in.RegisterPayment {
		if err := s.registerInvoicePayment(ctx, inv); err != nil {
			return nil, err
		}
	}

	return &ValidateResult{InvoiceID: inv.ID, InvoiceNumber: inv.Name.String()}, nil
}

// registerInvoicePayment creates and posts an inbound customer payment for
// the invoice total. The payment is booked on the journal and payment
// method line from configuration, not on the journal the caller supplied:
// the legacy integration validated the supplied journal but hard-coded the
// booked one, and downstream reconciliation depends on that journal.
func (s *Service) registerInvoicePayment(ctx context.Context, inv models.Invoice) error {
	values := erp.Values{
		"date":                   time.Now().Format("2006-01-02"),
		"amount":                 inv.AmountTotal,
		"payment_type":           "inbound",
		"partner_type":           "customer",
		"ref":                    inv.Name.String(),
		"currency_id":            inv.CurrencyID.ID,
		"partner_id":             inv.PartnerID.ID,
		"journal_id":             s.payment.JournalID,
		"payment_method_line_id": s.payment.PaymentMethodLine,
	}

	// Without these keys Odoo rejects the entry for lacking a single
	// outstanding payments/receipts line.
	opts := &erp.Options{Context: map[string]interface{}{
		"skip_invoice_sync":                 true,
		"skip_invoice_line_sync":            true,
		"skip_account_move_synchronization": true,
		"check_move_validity":               false,
	}}

	paymentID, err := s.gw.Create(ctx, erp.ModelAccountPayment, values, opts)
	if err != nil {
		return fmt.Errorf("failed to create payment: %w", err)
	}
	if _, err := s.gw.CallMethod(ctx, erp.ModelAccountPayment, "action_post", []int64{paymentID}, nil); err != nil {
		return fmt.Errorf("failed to post payment: %w", err)
	}

	s.logger.Info("payment registered",
		zap.Int64("invoice_id", inv.ID),
		zap.Int64("payment_id", paymentID),
		zap.Int64("journal_id", s.payment.JournalID))
	return nil
}

// PaymentInput identifies a posted invoice and the external payment
// reference to register against it.
type PaymentInput struct {
	InvoiceNumber    string
	UserID           int64
	PaymentReference string
	CompanyID        int64
}

// RegisterPayment books an inbound manual payment for the residual amount
// of an already-posted invoice. Used by external payment gateways to
// report settled transactions.
func (s *Service) RegisterPayment(ctx context.Context, in PaymentInput) (int64, error) {
	var users []models.User
	userDomain := erp.Domain{{"id", "=", in.UserID}}
	if err := s.gw.SearchRead(ctx, erp.ModelResUsers, userDomain, []string{"name", "partner_id"}, nil, &users); err != nil {
		return 0, err
	}
	if len(users) == 0 {
		return 0, ErrUserNotFound
	}
	if !users[0].PartnerID.IsSet() {
		return 0, ErrPartnerNotFound
	}

	var invoices []models.Invoice
	invDomain := erp.Domain{{"name", "=", in.InvoiceNumber}}
	if err := s.gw.SearchRead(ctx, erp.ModelAccountMove, invDomain, models.InvoiceFields, nil, &invoices); err != nil {
		return 0, err
	}
	if len(invoices) == 0 {
		return 0, ErrInvoiceNotFound
	}
	inv := invoices[0]

	if inv.State != models.InvoiceStatePosted {
		return 0, ErrInvoiceNotPosted
	}
	residual := decimal.NewFromFloat(inv.AmountResidual)
	if inv.PaymentState.String() == models.PaymentStatePaid || residual.LessThanOrEqual(decimal.Zero) {
		return 0, ErrAlreadyPaid
	}

	journalDomain := erp.Domain{{"type", "=", "bank"}, {"company_id", "=", in.CompanyID}}
	var journals []models.Journal
	if err := s.gw.SearchRead(ctx, erp.ModelAccountJournal, journalDomain, []string{"name", "type"}, &erp.Options{Limit: 1}, &journals); err != nil {
		return 0, err
	}

	methodDomain := erp.Domain{{"code", "=", "manual"}, {"payment_type", "=", "inbound"}}
	var methods []models.PaymentMethod
	if err := s.gw.SearchRead(ctx, erp.ModelAccountPaymentMethod, methodDomain, []string{"code", "payment_type"}, &erp.Options{Limit: 1}, &methods); err != nil {
		return 0, err
	}

	values := erp.Values{
		"payment_date": time.Now().Format("2006-01-02"),
		"move_id":      inv.ID,
		"amount":       residual.InexactFloat64(),
		"ref":          in.PaymentReference,
		"payment_type": "inbound",
		"partner_type": "customer",
		"partner_id":   users[0].PartnerID.ID,
	}
	if len(journals) > 0 {
		values["journal_id"] = journals[0].ID
	}
	if len(methods) > 0 {
		values["payment_method_id"] = methods[0].ID
	} else {
		values["payment_method_id"] = 1
	}

	paymentID, err := s.gw.Create(ctx, erp.ModelAccountPayment, values, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create payment: %w", err)
	}
	if _, err := s.gw.CallMethod(ctx, erp.ModelAccountPayment, "action_post", []int64{paymentID}, nil); err != nil {
		return 0, fmt.Errorf("failed to post payment: %w", err)
	}
	return paymentID, nil
}
