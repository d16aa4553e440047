package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/ordosuite/salesbridge/internal/erp"
	"github.com/ordosuite/salesbridge/internal/services/sales"
)

// salesOrderOperation dispatches on the `operation` discriminator to the
// create, update or get sub-operation.
func (r *Router) salesOrderOperation(w http.ResponseWriter, req *http.Request) {
	body, err := io.ReadAll(req.Body)
	req.Body.Close()
	if err != nil {
		respondInvalid(w, http.StatusBadRequest, "invalid_payload", "Failed to read request body")
		return
	}

	var envelope struct {
		Operation string `json:"operation"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		respondInvalid(w, http.StatusBadRequest, "invalid_payload", "Request body must be valid JSON")
		return
	}

	switch envelope.Operation {
	case "create":
		r.createSalesOrder(w, req, body)
	case "update":
		r.updateSalesOrder(w, req, body)
	case "get":
		r.getSalesOrder(w, req, body)
	default:
		respondFailure(w, "Ensure that the operation data contains create, update, or get")
	}
}

type createOrderRequest struct {
	PartnerID  int64                    `json:"partner_id"`
	CompanyID  int64                    `json:"company_id"`
	OrderLines []map[string]interface{} `json:"order_lines"`
}

func (r *Router) createSalesOrder(w http.ResponseWriter, req *http.Request, body []byte) {
	var in createOrderRequest
	if err := json.Unmarshal(body, &in); err != nil {
		respondInvalid(w, http.StatusBadRequest, "invalid_payload", "Request body must be valid JSON")
		return
	}
	if in.PartnerID == 0 || len(in.OrderLines) == 0 {
		respondInvalid(w, http.StatusBadRequest, "missing_parameter",
			"Missing required parameters [partner_id, order_lines]")
		return
	}

	result, err := r.svc.Sales.Create(req.Context(), sales.CreateInput{
		PartnerID:  in.PartnerID,
		CompanyID:  in.CompanyID,
		OrderLines: in.OrderLines,
	})
	if err != nil {
		r.logger.Error("sales order creation failed", zap.Error(err))
		respondFailure(w, err.Error())
		return
	}
	respondData(w, result)
}

func (r *Router) updateSalesOrder(w http.ResponseWriter, req *http.Request, body []byte) {
	var raw map[string]interface{}
	if err := json.Unmarshal(body, &raw); err != nil {
		respondInvalid(w, http.StatusBadRequest, "invalid_payload", "Request body must be valid JSON")
		return
	}

	orderID, ok := erp.ToInt64(raw["id"])
	if !ok || orderID == 0 {
		respondInvalid(w, http.StatusBadRequest, "missing_parameter",
			"Missing required parameters [id]")
		return
	}

	var lines []map[string]interface{}
	if rawLines, ok := raw["order_lines"].([]interface{}); ok {
		for _, rl := range rawLines {
			if line, ok := rl.(map[string]interface{}); ok {
				lines = append(lines, line)
			}
		}
	}

	// Everything else in the payload is written onto the order as-is.
	delete(raw, "operation")
	delete(raw, "id")
	delete(raw, "order_lines")

	if err := r.svc.Sales.Update(req.Context(), orderID, raw, lines); err != nil {
		if errors.Is(err, erp.ErrNotFound) {
			respondFailure(w, "Sales order not found")
			return
		}
		r.logger.Error("sales order update failed", zap.Error(err))
		respondFailure(w, err.Error())
		return
	}
	respondData(w, map[string]interface{}{"order_id": orderID})
}

type getOrderRequest struct {
	ID       int64  `json:"id"`
	SoNumber string `json:"so_number"`
}

func (r *Router) getSalesOrder(w http.ResponseWriter, req *http.Request, body []byte) {
	var in getOrderRequest
	if err := json.Unmarshal(body, &in); err != nil {
		respondInvalid(w, http.StatusBadRequest, "invalid_payload", "Request body must be valid JSON")
		return
	}
	if in.ID == 0 && in.SoNumber == "" {
		respondFailure(w, "Missing order ID or SO number")
		return
	}

	details, err := r.svc.Sales.Get(req.Context(), in.ID, in.SoNumber)
	if err != nil {
		if errors.Is(err, erp.ErrNotFound) {
			respondFailure(w, "Sales order not found")
			return
		}
		r.logger.Error("sales order lookup failed", zap.Error(err))
		respondFailure(w, err.Error())
		return
	}
	respondData(w, details)
}
