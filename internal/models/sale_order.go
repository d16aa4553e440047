package models

// SalesOrder mirrors the 'sale.order' header fields this service reads.
// DateOrder is kept as the "YYYY-MM-DD HH:MM:SS" string Odoo's external
// API serializes datetimes to; callers receive it unchanged.
type SalesOrder struct {
	ID        int64        `json:"id" xmlrpc:"id"`
	Name      OdooString   `json:"name" xmlrpc:"name"`
	PartnerID OdooRelation `json:"partner_id" xmlrpc:"partner_id"`
	DateOrder OdooString   `json:"date_order" xmlrpc:"date_order"`
}

// SalesOrderFields is the field set fetched for order lookups
var SalesOrderFields = []string{"name", "partner_id", "date_order"}

// OrderLine mirrors 'sale.order.line'
type OrderLine struct {
	ID            int64        `json:"id" xmlrpc:"id"`
	ProductID     OdooRelation `json:"product_id" xmlrpc:"product_id"`
	ProductUomQty float64      `json:"product_uom_qty" xmlrpc:"product_uom_qty"`
	PriceUnit     float64      `json:"price_unit" xmlrpc:"price_unit"`
}

// OrderLineFields is the field set fetched for order line lookups
var OrderLineFields = []string{"product_id", "product_uom_qty", "price_unit"}
