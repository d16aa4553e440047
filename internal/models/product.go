package models

// DetailedTypeStorable marks products tracked by quantity; everything else
// (service, consumable) has no meaningful availability.
const DetailedTypeStorable = "product"

// Product mirrors Odoo 'product.product'
type Product struct {
	ID           int64      `json:"id" xmlrpc:"id"`
	Name         OdooString `json:"name" xmlrpc:"name"`
	Active       bool       `json:"active" xmlrpc:"active"`
	DetailedType OdooString `json:"detailed_type" xmlrpc:"detailed_type"`
	ListPrice    float64    `json:"list_price" xmlrpc:"list_price"`
}

// ProductFields is the field set fetched for product queries
var ProductFields = []string{"name", "active", "detailed_type", "list_price"}

// Branch mirrors the branch directory model ('multi.branch')
type Branch struct {
	ID   int64      `json:"id" xmlrpc:"id"`
	Name OdooString `json:"name" xmlrpc:"name"`
}
