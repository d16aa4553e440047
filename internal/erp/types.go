package erp

// Model is an Odoo model name. Constants below cover the models this
// gateway touches; extend as endpoints grow.
type Model string

const (
	ModelAccountMove          Model = "account.move"
	ModelAccountJournal       Model = "account.journal"
	ModelAccountPayment       Model = "account.payment"
	ModelAccountPaymentMethod Model = "account.payment.method"
	ModelProductProduct       Model = "product.product"
	ModelStockWarehouse       Model = "stock.warehouse"
	ModelStockQuant           Model = "stock.quant"
	ModelMultiBranch          Model = "multi.branch"
	ModelResPartner           Model = "res.partner"
	ModelResUsers             Model = "res.users"
	ModelSaleOrder            Model = "sale.order"
	ModelSaleOrderLine        Model = "sale.order.line"
)

// Condition is a single element of an Odoo domain: either a
// [field, operator, value] triple or a lone logical operator ("|", "&").
type Condition []interface{}

// Domain is an Odoo search domain.
//
// Example:
//
//	erp.Domain{{"name", "=", "INV/2024/00001"}}
//	erp.Domain{{"|"}, {"id", "=", 5}, {"name", "=", "Maduka"}}
type Domain []Condition

// ToRPC converts the domain to the []interface{} shape execute_kw expects.
// Lone operators are flattened to bare strings.
func (d Domain) ToRPC() []interface{} {
	rpc := make([]interface{}, 0, len(d))
	for _, cond := range d {
		if len(cond) == 1 {
			if op, ok := cond[0].(string); ok {
				rpc = append(rpc, op)
				continue
			}
		}
		rpc = append(rpc, []interface{}(cond))
	}
	return rpc
}

// Or builds a two-branch OR domain from alternative key conditions.
// Nil conditions are skipped; a single remaining condition is returned
// as-is. This is the shared lookup-by-id-or-name pattern used across
// the directory, user and sales-order endpoints.
func Or(conds ...Condition) Domain {
	var kept []Condition
	for _, c := range conds {
		if c != nil {
			kept = append(kept, c)
		}
	}
	if len(kept) == 0 {
		return Domain{}
	}
	d := make(Domain, 0, len(kept)*2-1)
	for i := 1; i < len(kept); i++ {
		d = append(d, Condition{"|"})
	}
	for _, c := range kept {
		d = append(d, c)
	}
	return d
}

// Values is a field-value map for create/write calls.
type Values map[string]interface{}

// Options carries the common execute_kw keyword arguments.
type Options struct {
	Limit   int
	Offset  int
	Order   string
	Context map[string]interface{}
	Fields  []string
}

// ToRPC converts Options to the kwargs map execute_kw expects.
// execute_kw always wants a kwargs dict, even if empty.
func (o *Options) ToRPC() map[string]interface{} {
	kwargs := map[string]interface{}{}
	if o == nil {
		return kwargs
	}
	if o.Limit > 0 {
		kwargs["limit"] = o.Limit
	}
	if o.Offset > 0 {
		kwargs["offset"] = o.Offset
	}
	if o.Order != "" {
		kwargs["order"] = o.Order
	}
	if len(o.Fields) > 0 {
		kwargs["fields"] = o.Fields
	}
	if len(o.Context) > 0 {
		kwargs["context"] = o.Context
	}
	return kwargs
}

// LineCreate builds the (0, 0, values) one2many command that appends a
// new line to an order.
func LineCreate(values map[string]interface{}) []interface{} {
	return []interface{}{0, 0, values}
}

// LineUpdate builds the (1, id, values) one2many command that updates an
// existing line in place.
func LineUpdate(id int64, values map[string]interface{}) []interface{} {
	return []interface{}{1, id, values}
}
