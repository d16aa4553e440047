package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/ordosuite/salesbridge/internal/erp"
)

type productQueryRequest struct {
	ProductID *int64 `json:"product_id"`
}

type productDTO struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	SalePrice float64 `json:"sale_price"`
}

// getProducts returns the product identified by product_id, or all
// products when the id is omitted.
func (r *Router) getProducts(w http.ResponseWriter, req *http.Request) {
	var in productQueryRequest
	if err := decodeBody(req, &in); err != nil {
		if _, ok := typeErrorField(err); ok {
			respondInvalid(w, http.StatusBadRequest, "product_id",
				"Product ID provided must be an integer [product_id]")
			return
		}
		respondInvalid(w, http.StatusBadRequest, "invalid_payload", "Request body must be valid JSON")
		return
	}

	products, err := r.svc.Catalog.Products(req.Context(), in.ProductID)
	if err != nil {
		r.logger.Error("product query failed", zap.Error(err))
		respondFailure(w, err.Error())
		return
	}
	if len(products) == 0 {
		respondFailure(w, "No product found")
		return
	}

	data := make([]productDTO, 0, len(products))
	for _, p := range products {
		data = append(data, productDTO{ID: p.ID, Name: p.Name.String(), SalePrice: p.ListPrice})
	}
	respondData(w, data)
}

type availabilityRequest struct {
	ProductID     *int64  `json:"product_id"`
	RequestingQty float64 `json:"requesting_qty"`
}

// getProductAvailability compares the requested quantity against the
// stock available at the company warehouse for a storable product.
func (r *Router) getProductAvailability(w http.ResponseWriter, req *http.Request) {
	var in availabilityRequest
	if err := decodeBody(req, &in); err != nil {
		if _, ok := typeErrorField(err); ok {
			respondInvalid(w, http.StatusBadRequest, "product_id",
				"Product ID provided must be an integer [product_id]")
			return
		}
		respondInvalid(w, http.StatusBadRequest, "invalid_payload", "Request body must be valid JSON")
		return
	}
	if in.ProductID == nil {
		respondInvalid(w, http.StatusBadRequest, "missing_parameter",
			"Missing required parameters [product_id]")
		return
	}

	av, err := r.svc.Inventory.Check(req.Context(), *in.ProductID, in.RequestingQty)
	if err != nil {
		if errors.Is(err, erp.ErrNotFound) {
			respondFailure(w, "No product found")
			return
		}
		r.logger.Error("availability check failed", zap.Error(err))
		respondFailure(w, err.Error())
		return
	}

	if !av.Storable {
		respondFailure(w, "Product selected for check must be a storable product and not service")
		return
	}
	if !av.Sufficient {
		respondJSON(w, http.StatusOK, response{
			Success: false,
			Data:    map[string]interface{}{"total_quantity": av.Available.InexactFloat64()},
			Message: fmt.Sprintf(
				"Selected product quantity (%s) is higher than the Available Quantity. Available quantity is %s",
				av.Requested.String(), av.Available.String()),
		})
		return
	}
	respondMessage(w, "The requesting quantity of Product is available")
}
