// Package sales owns the sales-order operations: create-confirm-invoice,
// line-merging updates, and order reads.
package sales

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/ordosuite/salesbridge/internal/erp"
	"github.com/ordosuite/salesbridge/internal/models"
)

// ErrNoInvoiceGenerated is returned when order confirmation succeeded but
// invoice generation produced nothing. The order stays confirmed; there is
// no compensating action for the create-confirm-invoice sequence.
var ErrNoInvoiceGenerated = errors.New("sales: order confirmed but no invoice was generated")

// Service wraps sales-order operations.
type Service struct {
	gw     erp.Gateway
	logger *zap.Logger
}

// New creates a sales service.
func New(gw erp.Gateway, logger *zap.Logger) *Service {
	return &Service{gw: gw, logger: logger}
}

// CreateInput carries the order header plus raw line payloads. Lines are
// passed through to the ERP untouched (product_id, product_uom_qty,
// price_unit, and whatever else the caller supplies).
type CreateInput struct {
	PartnerID  int64
	CompanyID  int64
	OrderLines []map[string]interface{}
}

// CreateResult reports the created order and its generated invoice.
type CreateResult struct {
	OrderID   int64  `json:"so_id"`
	OrderName string `json:"so_number"`
	InvoiceID int64  `json:"invoice_id"`
}

// Create creates the order with nested lines, confirms it, and generates
// its invoice, returning the first invoice produced. The three steps are
// synchronous and irreversible: a failure after confirmation leaves the
// order confirmed but uninvoiced.
func (s *Service) Create(ctx context.Context, in CreateInput) (*CreateResult, error) {
	commands := make([]interface{}, 0, len(in.OrderLines))
	for _, line := range in.OrderLines {
		commands = append(commands, erp.LineCreate(line))
	}

	values := erp.Values{
		"partner_id": in.PartnerID,
		"order_line": commands,
	}
	if in.CompanyID > 0 {
		values["company_id"] = in.CompanyID
	}

	orderID, err := s.gw.Create(ctx, erp.ModelSaleOrder, values, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	if _, err := s.gw.CallMethod(ctx, erp.ModelSaleOrder, "action_confirm", []int64{orderID}, nil); err != nil {
		return nil, fmt.Errorf("failed to confirm order: %w", err)
	}

	raw, err := s.gw.CallMethod(ctx, erp.ModelSaleOrder, "_create_invoices", []int64{orderID}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to generate invoice: %w", err)
	}
	invoiceIDs := erp.ToIDs(raw)
	if len(invoiceIDs) == 0 {
		return nil, ErrNoInvoiceGenerated
	}

	var orders []models.SalesOrder
	if err := s.gw.SearchRead(ctx, erp.ModelSaleOrder, erp.Domain{{"id", "=", orderID}}, models.SalesOrderFields, &erp.Options{Limit: 1}, &orders); err != nil {
		return nil, err
	}
	name := ""
	if len(orders) > 0 {
		name = orders[0].Name.String()
	}

	s.logger.Info("sales order created",
		zap.Int64("order_id", orderID),
		zap.String("order_name", name),
		zap.Int64("invoice_id", invoiceIDs[0]))

	return &CreateResult{OrderID: orderID, OrderName: name, InvoiceID: invoiceIDs[0]}, nil
}

// Update writes the supplied header fields onto the order and merges the
// supplied lines into the existing ones: a line whose product already
// exists on the order updates that line in place, any other line is
// appended. A product id repeated within one call collapses onto a single
// command, so no product is ever duplicated by an update.
func (s *Service) Update(ctx context.Context, orderID int64, fields map[string]interface{}, lines []map[string]interface{}) error {
	ids, err := s.gw.Search(ctx, erp.ModelSaleOrder, erp.Domain{{"id", "=", orderID}}, &erp.Options{Limit: 1})
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		return erp.ErrNotFound
	}

	values := erp.Values{}
	for k, v := range fields {
		values[k] = v
	}

	if len(lines) > 0 {
		var existing []models.OrderLine
		lineDomain := erp.Domain{{"order_id", "=", orderID}}
		if err := s.gw.SearchRead(ctx, erp.ModelSaleOrderLine, lineDomain, models.OrderLineFields, nil, &existing); err != nil {
			return err
		}
		lineIDByProduct := make(map[int64]int64, len(existing))
		for _, line := range existing {
			lineIDByProduct[line.ProductID.ID] = line.ID
		}

		var commands []interface{}
		seen := make(map[int64]int) // product id -> command index
		for _, line := range lines {
			productID, _ := erp.ToInt64(line["product_id"])
			var cmd []interface{}
			if lineID, ok := lineIDByProduct[productID]; ok {
				cmd = erp.LineUpdate(lineID, line)
			} else {
				cmd = erp.LineCreate(line)
			}
			if productID != 0 {
				if idx, dup := seen[productID]; dup {
					commands[idx] = cmd
					continue
				}
				seen[productID] = len(commands)
			}
			commands = append(commands, cmd)
		}
		values["order_line"] = commands
	}

	if err := s.gw.Write(ctx, erp.ModelSaleOrder, []int64{orderID}, values); err != nil {
		return err
	}
	s.logger.Info("sales order updated", zap.Int64("order_id", orderID))
	return nil
}

// OrderDetails is the normalized order DTO returned by Get.
type OrderDetails struct {
	ID        int64         `json:"id"`
	Name      string        `json:"name"`
	PartnerID int64         `json:"partner_id"`
	DateOrder string        `json:"date_order"`
	Lines     []LineDetails `json:"order_line"`
}

// LineDetails is one order line of the DTO.
type LineDetails struct {
	ProductID     int64   `json:"product_id"`
	ProductUomQty float64 `json:"product_uom_qty"`
	PriceUnit     float64 `json:"price_unit"`
}

// Get looks up an order by id or order number (first match) and returns
// the normalized DTO with its line items.
func (s *Service) Get(ctx context.Context, id int64, number string) (*OrderDetails, error) {
	domain := erp.Or(
		erp.Condition{"id", "=", id},
		erp.Condition{"name", "=", number},
	)

	var orders []models.SalesOrder
	if err := s.gw.SearchRead(ctx, erp.ModelSaleOrder, domain, models.SalesOrderFields, &erp.Options{Limit: 1}, &orders); err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, erp.ErrNotFound
	}
	order := orders[0]

	var lines []models.OrderLine
	lineDomain := erp.Domain{{"order_id", "=", order.ID}}
	if err := s.gw.SearchRead(ctx, erp.ModelSaleOrderLine, lineDomain, models.OrderLineFields, nil, &lines); err != nil {
		return nil, err
	}

	details := &OrderDetails{
		ID:        order.ID,
		Name:      order.Name.String(),
		PartnerID: order.PartnerID.ID,
		DateOrder: order.DateOrder.String(),
		Lines:     make([]LineDetails, 0, len(lines)),
	}
	for _, line := range lines {
		details.Lines = append(details.Lines, LineDetails{
			ProductID:     line.ProductID.ID,
			ProductUomQty: line.ProductUomQty,
			PriceUnit:     line.PriceUnit,
		})
	}
	return details, nil
}
