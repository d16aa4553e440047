// Package inventory answers stock-availability questions against the
// company warehouse.
package inventory

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/ordosuite/salesbridge/internal/erp"
	"github.com/ordosuite/salesbridge/internal/models"
)

// Service checks product availability.
type Service struct {
	gw        erp.Gateway
	logger    *zap.Logger
	companyID int64
}

// New creates an inventory service scoped to the service account's company.
func New(gw erp.Gateway, logger *zap.Logger, companyID int64) *Service {
	return &Service{gw: gw, logger: logger, companyID: companyID}
}

// Availability is the outcome of a stock check.
type Availability struct {
	ProductName string
	Storable    bool
	Available   decimal.Decimal
	Requested   decimal.Decimal
	Sufficient  bool
}

// Check resolves the product and compares the requested quantity against
// the quantity available at the company warehouse's stock location.
// Availability is never negative. Non-storable products (services,
// consumables) carry no quantity; Storable is false and no comparison is
// made.
func (s *Service) Check(ctx context.Context, productID int64, requestingQty float64) (*Availability, error) {
	productDomain := erp.Domain{{"active", "=", true}, {"id", "=", productID}}
	var products []models.Product
	if err := s.gw.SearchRead(ctx, erp.ModelProductProduct, productDomain, models.ProductFields, &erp.Options{Limit: 1}, &products); err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, erp.ErrNotFound
	}
	product := products[0]

	av := &Availability{
		ProductName: product.Name.String(),
		Requested:   decimal.NewFromFloat(requestingQty),
	}
	if product.DetailedType.String() != models.DetailedTypeStorable {
		return av, nil
	}
	av.Storable = true

	warehouseDomain := erp.Domain{{"company_id", "=", s.companyID}}
	var warehouses []models.Warehouse
	if err := s.gw.SearchRead(ctx, erp.ModelStockWarehouse, warehouseDomain, []string{"name", "lot_stock_id"}, &erp.Options{Limit: 1}, &warehouses); err != nil {
		return nil, err
	}

	available := decimal.Zero
	if len(warehouses) > 0 && warehouses[0].LotStockID.IsSet() {
		quantDomain := erp.Domain{
			{"product_id", "=", productID},
			{"location_id", "child_of", warehouses[0].LotStockID.ID},
		}
		var quants []models.StockQuant
		if err := s.gw.SearchRead(ctx, erp.ModelStockQuant, quantDomain, []string{"quantity", "reserved_quantity"}, nil, &quants); err != nil {
			return nil, err
		}
		for _, q := range quants {
			available = available.Add(decimal.NewFromFloat(q.Quantity).Sub(decimal.NewFromFloat(q.ReservedQuantity)))
		}
	}
	if available.IsNegative() {
		available = decimal.Zero
	}

	av.Available = available
	av.Sufficient = av.Requested.LessThanOrEqual(available)

	s.logger.Debug("availability checked",
		zap.Int64("product_id", productID),
		zap.String("requested", av.Requested.String()),
		zap.String("available", av.Available.String()))
	return av, nil
}
