package models

// Invoice states as used by account.move
const (
	InvoiceStateDraft  = "draft"
	InvoiceStatePosted = "posted"

	PaymentStatePaid = "paid"
)

// Invoice mirrors the Odoo 'account.move' fields this service reads
type Invoice struct {
	ID             int64        `json:"id" xmlrpc:"id"`
	Name           OdooString   `json:"name" xmlrpc:"name"`
	State          string       `json:"state" xmlrpc:"state"`
	PaymentState   OdooString   `json:"payment_state" xmlrpc:"payment_state"`
	AmountTotal    float64      `json:"amount_total" xmlrpc:"amount_total"`
	AmountResidual float64      `json:"amount_residual_signed" xmlrpc:"amount_residual_signed"`
	CurrencyID     OdooRelation `json:"currency_id" xmlrpc:"currency_id"`
	PartnerID      OdooRelation `json:"partner_id" xmlrpc:"partner_id"`
}

// InvoiceFields is the field set fetched for invoice lookups
var InvoiceFields = []string{
	"name", "state", "payment_state", "amount_total", "amount_residual_signed", "currency_id", "partner_id",
}

// Journal mirrors 'account.journal'
type Journal struct {
	ID   int64      `json:"id" xmlrpc:"id"`
	Name OdooString `json:"name" xmlrpc:"name"`
	Type OdooString `json:"type" xmlrpc:"type"`
}

// PaymentMethod mirrors 'account.payment.method'
type PaymentMethod struct {
	ID          int64      `json:"id" xmlrpc:"id"`
	Code        OdooString `json:"code" xmlrpc:"code"`
	PaymentType OdooString `json:"payment_type" xmlrpc:"payment_type"`
}
