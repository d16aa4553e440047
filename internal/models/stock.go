package models

// Warehouse mirrors Odoo 'stock.warehouse'
type Warehouse struct {
	ID         int64        `json:"id" xmlrpc:"id"`
	Name       OdooString   `json:"name" xmlrpc:"name"`
	LotStockID OdooRelation `json:"lot_stock_id" xmlrpc:"lot_stock_id"`
}

// StockQuant mirrors Odoo 'stock.quant'
type StockQuant struct {
	ID               int64        `json:"id" xmlrpc:"id"`
	ProductID        OdooRelation `json:"product_id" xmlrpc:"product_id"`
	LocationID       OdooRelation `json:"location_id" xmlrpc:"location_id"`
	Quantity         float64      `json:"quantity" xmlrpc:"quantity"`
	ReservedQuantity float64      `json:"reserved_quantity" xmlrpc:"reserved_quantity"`
}
