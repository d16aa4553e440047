package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/ordosuite/salesbridge/internal/auth"
	"github.com/ordosuite/salesbridge/internal/config"
	"github.com/ordosuite/salesbridge/internal/erp"
	"github.com/ordosuite/salesbridge/internal/erp/erptest"
	"github.com/ordosuite/salesbridge/internal/services/billing"
	"github.com/ordosuite/salesbridge/internal/services/catalog"
	"github.com/ordosuite/salesbridge/internal/services/directory"
	"github.com/ordosuite/salesbridge/internal/services/inventory"
	"github.com/ordosuite/salesbridge/internal/services/sales"
)

func testConfig() *config.Config {
	return &config.Config{
		AppEnv:    "test",
		Port:      "8080",
		JWTSecret: "test-secret",
		Auth: config.AuthConfig{
			ClientID:     "pos-client",
			ClientSecret: "pos-secret",
			TokenTTL:     60,
		},
		Odoo: config.OdooConfig{CompanyID: 1},
		Payment: config.PaymentConfig{
			JournalID:         8,
			PaymentMethodLine: 2,
		},
	}
}

func testRouter(t *testing.T, fake *erptest.Fake) *Router {
	t.Helper()
	cfg := testConfig()
	log := zap.NewNop()
	return NewRouter(cfg, log, Services{
		Billing:   billing.New(fake, log, cfg.Payment),
		Catalog:   catalog.New(fake, log),
		Inventory: inventory.New(fake, log, cfg.Odoo.CompanyID),
		Directory: directory.New(fake, log),
		Sales:     sales.New(fake, log),
	})
}

func bearer(t *testing.T) string {
	t.Helper()
	token, err := auth.GenerateServiceToken("pos-client", "test-secret", time.Hour)
	if err != nil {
		t.Fatalf("GenerateServiceToken: %v", err)
	}
	return "Bearer " + token
}

func doJSON(t *testing.T, r *Router, method, path string, body interface{}, authed bool) (*httptest.ResponseRecorder, response) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if authed {
		req.Header.Set("Authorization", bearer(t))
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	var env response
	_ = json.Unmarshal(rec.Body.Bytes(), &env)
	return rec, env
}

func TestHealthWithoutAuth(t *testing.T) {
	r := testRouter(t, &erptest.Fake{})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest("GET", "/health", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status = %q", body["status"])
	}
}

func TestAPIRequiresBearer(t *testing.T) {
	r := testRouter(t, &erptest.Fake{})

	rec, _ := doJSON(t, r, "GET", "/api/get-product", map[string]interface{}{}, false)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("no header: status = %d, want 401", rec.Code)
	}

	req := httptest.NewRequest("GET", "/api/get-product", nil)
	req.Header.Set("Authorization", "Token abc")
	rec2 := httptest.NewRecorder()
	r.ServeHTTP(rec2, req)
	if rec2.Code != http.StatusUnauthorized {
		t.Errorf("bad scheme: status = %d, want 401", rec2.Code)
	}

	req = httptest.NewRequest("GET", "/api/get-product", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rec3 := httptest.NewRecorder()
	r.ServeHTTP(rec3, req)
	if rec3.Code != http.StatusUnauthorized {
		t.Errorf("bad token: status = %d, want 401", rec3.Code)
	}
}

func TestIssueToken(t *testing.T) {
	r := testRouter(t, &erptest.Fake{})

	rec, env := doJSON(t, r, "POST", "/auth/token",
		map[string]string{"client_id": "pos-client", "client_secret": "pos-secret"}, false)
	if rec.Code != http.StatusOK || !env.Success {
		t.Fatalf("status = %d, env = %+v", rec.Code, env)
	}
	data := env.Data.(map[string]interface{})
	if data["access_token"] == "" || data["token_type"] != "Bearer" {
		t.Errorf("data = %v", data)
	}

	rec, _ = doJSON(t, r, "POST", "/auth/token",
		map[string]string{"client_id": "pos-client", "client_secret": "wrong"}, false)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("wrong secret: status = %d, want 401", rec.Code)
	}

	rec, env = doJSON(t, r, "POST", "/auth/token", map[string]string{"client_id": "pos-client"}, false)
	if rec.Code != http.StatusBadRequest || env.Code != "missing_parameter" {
		t.Errorf("missing secret: status = %d, code = %q", rec.Code, env.Code)
	}
}

func TestValidateInvoiceMissingParameters(t *testing.T) {
	r := testRouter(t, &erptest.Fake{})

	rec, env := doJSON(t, r, "POST", "/api/v1/invoice-validation",
		map[string]interface{}{"invoice_number": "INV/2024/00003"}, true)
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want nominal 200", rec.Code)
	}
	if env.Success || env.Code != "missing_parameter" {
		t.Errorf("env = %+v", env)
	}
	if env.Message != "Missing required parameters [invoice_number, invoice_id]" {
		t.Errorf("message = %q", env.Message)
	}
}

func TestValidateInvoiceJournalChecks(t *testing.T) {
	fake := &erptest.Fake{} // journal search misses
	r := testRouter(t, fake)

	body := map[string]interface{}{
		"invoice_number":      "INV/2024/00003",
		"invoice_id":          17,
		"is_register_payment": true,
	}
	_, env := doJSON(t, r, "POST", "/api/v1/invoice-validation", body, true)
	if env.Message != "Please provide a journal id [journal_id]" {
		t.Errorf("message = %q", env.Message)
	}

	body["journal_id"] = 999
	_, env = doJSON(t, r, "POST", "/api/v1/invoice-validation", body, true)
	if env.Message != "Provided Journal id does not exist in the database [journal_id]" {
		t.Errorf("message = %q", env.Message)
	}
}

func TestValidateInvoiceNotFound(t *testing.T) {
	r := testRouter(t, &erptest.Fake{})

	_, env := doJSON(t, r, "POST", "/api/v1/invoice-validation",
		map[string]interface{}{"invoice_number": "NOPE", "invoice_id": 404}, true)
	if env.Success || env.Message != "No invoice found" {
		t.Errorf("env = %+v", env)
	}
}

func TestValidateInvoiceSuccess(t *testing.T) {
	fake := &erptest.Fake{
		OnSearchRead: func(c erptest.Call) (interface{}, error) {
			return []interface{}{map[string]interface{}{
				"id": 17, "name": "INV/2024/00003", "state": "draft",
				"payment_state": "not_paid", "amount_total": 250.0,
				"amount_residual_signed": 250.0,
				"currency_id":            []interface{}{1, "NGN"},
				"partner_id":             []interface{}{5, "Maduka Stores"},
			}}, nil
		},
	}
	r := testRouter(t, fake)

	rec, env := doJSON(t, r, "POST", "/api/v1/invoice-validation",
		map[string]interface{}{"invoice_number": "INV/2024/00003", "invoice_id": 17}, true)
	if rec.Code != http.StatusOK || !env.Success {
		t.Fatalf("status = %d, env = %+v", rec.Code, env)
	}
	data := env.Data.(map[string]interface{})
	if data["invoice_id"] != float64(17) || data["invoice_number"] != "INV/2024/00003" {
		t.Errorf("data = %v", data)
	}
}

func TestGetProductsTypeError(t *testing.T) {
	r := testRouter(t, &erptest.Fake{})

	rec, env := doJSON(t, r, "GET", "/api/get-product",
		map[string]interface{}{"product_id": "abc"}, true)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	if env.Code != "product_id" || env.Message != "Product ID provided must be an integer [product_id]" {
		t.Errorf("env = %+v", env)
	}
}

func TestGetProductsNotFound(t *testing.T) {
	r := testRouter(t, &erptest.Fake{})

	_, env := doJSON(t, r, "GET", "/api/get-product", map[string]interface{}{"product_id": 999}, true)
	if env.Success || env.Message != "No product found" {
		t.Errorf("env = %+v", env)
	}
}

func TestGetProductsDTO(t *testing.T) {
	fake := &erptest.Fake{
		OnSearchRead: func(c erptest.Call) (interface{}, error) {
			return []interface{}{map[string]interface{}{
				"id": 10, "name": "Bag of Rice", "active": true,
				"detailed_type": "product", "list_price": 100.0,
			}}, nil
		},
	}
	r := testRouter(t, fake)

	_, env := doJSON(t, r, "GET", "/api/get-product", map[string]interface{}{"product_id": 10}, true)
	if !env.Success {
		t.Fatalf("env = %+v", env)
	}
	list := env.Data.([]interface{})
	item := list[0].(map[string]interface{})
	if item["sale_price"] != float64(100) || item["name"] != "Bag of Rice" {
		t.Errorf("item = %v", item)
	}
}

func availabilityFake(quantQty float64) *erptest.Fake {
	return &erptest.Fake{
		OnSearchRead: func(c erptest.Call) (interface{}, error) {
			switch c.Model {
			case erp.ModelProductProduct:
				return []interface{}{map[string]interface{}{
					"id": 10, "name": "Bag of Rice", "active": true,
					"detailed_type": "product", "list_price": 100.0,
				}}, nil
			case erp.ModelStockWarehouse:
				return []interface{}{map[string]interface{}{
					"id": 1, "name": "Main Warehouse", "lot_stock_id": []interface{}{14, "WH/Stock"},
				}}, nil
			case erp.ModelStockQuant:
				return []interface{}{map[string]interface{}{
					"quantity": quantQty, "reserved_quantity": 0.0,
				}}, nil
			}
			return nil, nil
		},
	}
}

func TestAvailabilityMissingProductID(t *testing.T) {
	r := testRouter(t, &erptest.Fake{})

	rec, env := doJSON(t, r, "GET", "/api/get-product-availability",
		map[string]interface{}{"requesting_qty": 5}, true)
	if rec.Code != http.StatusBadRequest || env.Code != "missing_parameter" {
		t.Errorf("status = %d, env = %+v", rec.Code, env)
	}
}

func TestAvailabilityInsufficient(t *testing.T) {
	r := testRouter(t, availabilityFake(3))

	rec, env := doJSON(t, r, "GET", "/api/get-product-availability",
		map[string]interface{}{"product_id": 10, "requesting_qty": 5}, true)
	if rec.Code != http.StatusOK || env.Success {
		t.Fatalf("status = %d, env = %+v", rec.Code, env)
	}
	data := env.Data.(map[string]interface{})
	if data["total_quantity"] != float64(3) {
		t.Errorf("total_quantity = %v", data["total_quantity"])
	}
	want := "Selected product quantity (5) is higher than the Available Quantity. Available quantity is 3"
	if env.Message != want {
		t.Errorf("message = %q, want %q", env.Message, want)
	}
}

func TestAvailabilitySufficient(t *testing.T) {
	r := testRouter(t, availabilityFake(10))

	_, env := doJSON(t, r, "GET", "/api/get-product-availability",
		map[string]interface{}{"product_id": 10, "requesting_qty": 5}, true)
	if !env.Success || env.Message != "The requesting quantity of Product is available" {
		t.Errorf("env = %+v", env)
	}
}

func TestAvailabilityServiceProduct(t *testing.T) {
	fake := &erptest.Fake{
		OnSearchRead: func(c erptest.Call) (interface{}, error) {
			return []interface{}{map[string]interface{}{
				"id": 10, "name": "Delivery Fee", "active": true,
				"detailed_type": "service", "list_price": 10.0,
			}}, nil
		},
	}
	r := testRouter(t, fake)

	_, env := doJSON(t, r, "GET", "/api/get-product-availability",
		map[string]interface{}{"product_id": 10, "requesting_qty": 1}, true)
	if env.Success || env.Message != "Product selected for check must be a storable product and not service" {
		t.Errorf("env = %+v", env)
	}
}

func TestContactOperationMissingFields(t *testing.T) {
	r := testRouter(t, &erptest.Fake{})

	_, env := doJSON(t, r, "POST", "/api/contact-operation",
		map[string]interface{}{"contact_name": "New Customer", "to_create_contact": true}, true)
	if env.Success || env.Message != "Please provide the following fields; contact name, address, phone and email" {
		t.Errorf("env = %+v", env)
	}
}

func TestContactOperationNullsEmptyFields(t *testing.T) {
	fake := &erptest.Fake{
		OnSearchRead: func(c erptest.Call) (interface{}, error) {
			return []interface{}{map[string]interface{}{
				"id": 5, "name": "Maduka Stores", "street": "12 Broad Street",
				"street2": false, "phone": "08012345678", "email": false,
			}}, nil
		},
	}
	r := testRouter(t, fake)

	_, env := doJSON(t, r, "GET", "/api/contact-operation",
		map[string]interface{}{"contact_id": 5}, true)
	if !env.Success {
		t.Fatalf("env = %+v", env)
	}
	item := env.Data.([]interface{})[0].(map[string]interface{})
	if item["address2"] != nil || item["email"] != nil {
		t.Errorf("empty fields must serialize as null, got %v", item)
	}
	if item["contact_name"] != "Maduka Stores" {
		t.Errorf("contact_name = %v", item["contact_name"])
	}
}

func TestContactOperationNoMatch(t *testing.T) {
	r := testRouter(t, &erptest.Fake{})

	_, env := doJSON(t, r, "GET", "/api/contact-operation",
		map[string]interface{}{"contact_name": "Ghost"}, true)
	if env.Success || env.Message != "No contact found on the system" {
		t.Errorf("env = %+v", env)
	}
}

func TestGetUsersNotFound(t *testing.T) {
	r := testRouter(t, &erptest.Fake{})

	_, env := doJSON(t, r, "GET", "/api/get-users", map[string]interface{}{"user_id": 999}, true)
	if env.Success || env.Message != "No user found on the system" {
		t.Errorf("env = %+v", env)
	}
}

func TestGetBranchesNotFound(t *testing.T) {
	r := testRouter(t, &erptest.Fake{})

	_, env := doJSON(t, r, "GET", "/api/get-branch", map[string]interface{}{"branch_id": 999}, true)
	if env.Success || env.Message != "No branch found" {
		t.Errorf("env = %+v", env)
	}
}

func TestSalesOrderUnknownOperation(t *testing.T) {
	r := testRouter(t, &erptest.Fake{})

	_, env := doJSON(t, r, "POST", "/api/sales_order/operation",
		map[string]interface{}{"operation": "destroy"}, true)
	if env.Success || env.Message != "Ensure that the operation data contains create, update, or get" {
		t.Errorf("env = %+v", env)
	}
}

func TestSalesOrderCreateMissingParameters(t *testing.T) {
	r := testRouter(t, &erptest.Fake{})

	rec, env := doJSON(t, r, "POST", "/api/sales_order/operation",
		map[string]interface{}{"operation": "create", "partner_id": 5}, true)
	if rec.Code != http.StatusBadRequest || env.Code != "missing_parameter" {
		t.Errorf("status = %d, env = %+v", rec.Code, env)
	}
	if env.Message != "Missing required parameters [partner_id, order_lines]" {
		t.Errorf("message = %q", env.Message)
	}
}

func TestSalesOrderCreate(t *testing.T) {
	fake := &erptest.Fake{
		OnCreate: func(c erptest.Call) (int64, error) { return 30, nil },
		OnCallMethod: func(c erptest.Call) (interface{}, error) {
			if c.Method == "_create_invoices" {
				return []interface{}{float64(55)}, nil
			}
			return nil, nil
		},
		OnSearchRead: func(c erptest.Call) (interface{}, error) {
			return []interface{}{map[string]interface{}{
				"id": 30, "name": "S00030",
				"partner_id": []interface{}{5, "Maduka Stores"}, "date_order": "2024-04-02 10:00:00",
			}}, nil
		},
	}
	r := testRouter(t, fake)

	_, env := doJSON(t, r, "POST", "/api/sales_order/operation", map[string]interface{}{
		"operation":  "create",
		"partner_id": 5,
		"order_lines": []map[string]interface{}{
			{"product_id": 10, "product_uom_qty": 2, "price_unit": 100},
		},
	}, true)
	if !env.Success {
		t.Fatalf("env = %+v", env)
	}
	data := env.Data.(map[string]interface{})
	if data["so_id"] != float64(30) || data["so_number"] != "S00030" || data["invoice_id"] != float64(55) {
		t.Errorf("data = %v", data)
	}
}

func TestSalesOrderUpdateMissingID(t *testing.T) {
	r := testRouter(t, &erptest.Fake{})

	rec, env := doJSON(t, r, "POST", "/api/sales_order/operation",
		map[string]interface{}{"operation": "update"}, true)
	if rec.Code != http.StatusBadRequest || env.Message != "Missing required parameters [id]" {
		t.Errorf("status = %d, env = %+v", rec.Code, env)
	}
}

func TestSalesOrderGetMissingIdentifiers(t *testing.T) {
	r := testRouter(t, &erptest.Fake{})

	_, env := doJSON(t, r, "POST", "/api/sales_order/operation",
		map[string]interface{}{"operation": "get"}, true)
	if env.Success || env.Message != "Missing order ID or SO number" {
		t.Errorf("env = %+v", env)
	}
}

func TestCreatePaymentMissingParameters(t *testing.T) {
	r := testRouter(t, &erptest.Fake{})

	rec, env := doJSON(t, r, "POST", "/api/v1/create_payment",
		map[string]interface{}{"invoice_no": "INV/2024/00003"}, true)
	if rec.Code != http.StatusBadRequest || env.Code != "missing_parameter" {
		t.Errorf("status = %d, env = %+v", rec.Code, env)
	}
}

func TestCreatePaymentUserNotFound(t *testing.T) {
	r := testRouter(t, &erptest.Fake{})

	rec, env := doJSON(t, r, "POST", "/api/v1/create_payment", map[string]interface{}{
		"invoice_no": "INV/2024/00003", "user_id": 77, "payment_reference": "PSP-REF-1",
	}, true)
	if rec.Code != http.StatusBadRequest || env.Code != "user_not_found" {
		t.Errorf("status = %d, env = %+v", rec.Code, env)
	}
	if env.Message != "User with ID 77 not found." {
		t.Errorf("message = %q", env.Message)
	}
}
