package handler_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/Srinu-likitha/store-management-mvp/internal/store/entity"
	"github.com/Srinu-likitha/store-management-mvp/internal/store/testutil"
)

func invoicePayload(invoiceNumber string) map[string]interface{} {
	return map[string]interface{}{
		"dateOfReceipt":         "2026-01-15",
		"vendorName":            "Sri Venkateswara Traders",
		"invoiceNumber":         invoiceNumber,
		"invoiceDate":           "2026-01-14",
		"deliveryChallanNumber": "DC-7781",
		"vehicleNumber":         "AP39TX1234",
		"materialCategory":      "CIVIL",
		"hnsCode":               "2523",
		"uom":                   "bags",
		"vendorContactNumber":   "9876543210",
		"cgst":                  "140.25",
		"sgst":                  "140.25",
		"transportationCharges": "500",
		"InvoiceMaterialItem": []map[string]interface{}{
			{
				"category":    "CIVIL",
				"hnsCode":     "2523",
				"description": "OPC 53 grade cement",
				"quantity":    "10",
				"ratePerUnit": "250",
				"cost":        "1", // ignored, recomputed server-side
			},
			{
				"category":    "CIVIL",
				"description": "River sand",
				"quantity":    "2.5",
				"ratePerUnit": "100",
			},
		},
	}
}

func TestInvoiceCreateAssignsSequentialNumbers(t *testing.T) {
	env := testutil.SetupEnv(t)
	creator := env.SeedUser("incharge@test.com", entity.RoleStoreIncharge)
	token := env.Token(creator)

	for i := 1; i <= 3; i++ {
		w := env.DoRequest("POST", "/api/v1/user/create/material-invoice",
			invoicePayload(fmt.Sprintf("VND-%03d", i)), token)
		if w.Code != http.StatusCreated {
			t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
		}
		data := testutil.ParseResponse(w)["data"].(map[string]interface{})

		if want := fmt.Sprintf("INV-%05d", i); data["serialNumber"] != want {
			t.Errorf("serialNumber = %v, want %s", data["serialNumber"], want)
		}
		if want := fmt.Sprintf("MRN-%05d", i); data["mrnNumber"] != want {
			t.Errorf("mrnNumber = %v, want %s", data["mrnNumber"], want)
		}
		if want := fmt.Sprintf("GIN-%05d", i); data["ginNumber"] != want {
			t.Errorf("ginNumber = %v, want %s", data["ginNumber"], want)
		}
	}
}

func TestInvoiceCreateRecomputesCosts(t *testing.T) {
	env := testutil.SetupEnv(t)
	creator := env.SeedUser("incharge@test.com", entity.RoleStoreIncharge)
	token := env.Token(creator)

	payload := invoicePayload("VND-001")
	w := env.DoRequest("POST", "/api/v1/user/create/material-invoice", payload, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}
	data := testutil.ParseResponse(w)["data"].(map[string]interface{})

	items := data["InvoiceMaterialItem"].([]interface{})
	if len(items) != 2 {
		t.Fatalf("Expected 2 items, got %d", len(items))
	}
	first := items[0].(map[string]interface{})
	if first["cost"] != "2500" {
		t.Errorf("item cost = %v, want 2500 (submitted cost must be ignored)", first["cost"])
	}
	second := items[1].(map[string]interface{})
	if second["cost"] != "250" {
		t.Errorf("item cost = %v, want 250", second["cost"])
	}
	// 2500 + 250 + 140.25 + 140.25 + 500
	if data["totalCost"] != "3530.5" {
		t.Errorf("totalCost = %v, want 3530.5", data["totalCost"])
	}
}

func TestInvoiceCreateValidation(t *testing.T) {
	env := testutil.SetupEnv(t)
	creator := env.SeedUser("incharge@test.com", entity.RoleStoreIncharge)
	token := env.Token(creator)

	tests := []struct {
		name   string
		mutate func(map[string]interface{})
	}{
		{"missing vendor name", func(p map[string]interface{}) { p["vendorName"] = "" }},
		{"missing invoice number", func(p map[string]interface{}) { p["invoiceNumber"] = "" }},
		{"unknown category", func(p map[string]interface{}) { p["materialCategory"] = "STEEL" }},
		{"negative cgst", func(p map[string]interface{}) { p["cgst"] = "-1" }},
		{"negative quantity", func(p map[string]interface{}) {
			p["InvoiceMaterialItem"].([]map[string]interface{})[0]["quantity"] = "-5"
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := invoicePayload("VND-BAD")
			tt.mutate(payload)
			w := env.DoRequest("POST", "/api/v1/user/create/material-invoice", payload, token)
			if w.Code != http.StatusBadRequest {
				t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
			}
		})
	}
}

func TestInvoiceUpdateReplacesItems(t *testing.T) {
	env := testutil.SetupEnv(t)
	creator := env.SeedUser("incharge@test.com", entity.RoleStoreIncharge)
	token := env.Token(creator)

	w := env.DoRequest("POST", "/api/v1/user/create/material-invoice", invoicePayload("VND-001"), token)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}
	created := testutil.ParseResponse(w)["data"].(map[string]interface{})
	id := created["id"].(string)

	update := invoicePayload("VND-001-REV")
	update["InvoiceMaterialItem"] = []map[string]interface{}{
		{
			"category":    "CIVIL",
			"description": "TMT bars 12mm",
			"quantity":    "4",
			"ratePerUnit": "750",
		},
	}
	w2 := env.DoRequest("POST", "/api/v1/user/update/material-invoice/"+id, update, token)
	if w2.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w2.Code, w2.Body.String())
	}
	data := testutil.ParseResponse(w2)["data"].(map[string]interface{})

	items := data["InvoiceMaterialItem"].([]interface{})
	if len(items) != 1 {
		t.Fatalf("Expected items replaced wholesale, got %d items", len(items))
	}
	if data["serialNumber"] != created["serialNumber"] {
		t.Errorf("serialNumber changed on update: %v -> %v", created["serialNumber"], data["serialNumber"])
	}
	if data["invoiceNumber"] != "VND-001-REV" {
		t.Errorf("invoiceNumber = %v, want VND-001-REV", data["invoiceNumber"])
	}
	// 3000 + 140.25 + 140.25 + 500
	if data["totalCost"] != "3780.5" {
		t.Errorf("totalCost = %v, want 3780.5", data["totalCost"])
	}

	var count int64
	env.DB.Model(&entity.InvoiceMaterialItem{}).Where("material_invoice_id = ?", id).Count(&count)
	if count != 1 {
		t.Errorf("Expected exactly 1 persisted item after replace, got %d", count)
	}
}

func TestApprovedInvoiceIsLocked(t *testing.T) {
	env := testutil.SetupEnv(t)
	creator := env.SeedUser("incharge@test.com", entity.RoleStoreIncharge)
	approver := env.SeedUser("pm@test.com", entity.RoleProcurementManager)
	creatorToken := env.Token(creator)
	approverToken := env.Token(approver)

	w := env.DoRequest("POST", "/api/v1/user/create/material-invoice", invoicePayload("VND-001"), creatorToken)
	id := testutil.ParseResponse(w)["data"].(map[string]interface{})["id"].(string)

	w2 := env.DoRequest("POST", "/api/v1/user/approve/material-invoice",
		map[string]interface{}{"id": id, "approved": true}, approverToken)
	if w2.Code != http.StatusOK {
		t.Fatalf("Expected 200 on approve, got %d: %s", w2.Code, w2.Body.String())
	}

	w3 := env.DoRequest("POST", "/api/v1/user/update/material-invoice/"+id, invoicePayload("VND-001-REV"), creatorToken)
	if w3.Code != http.StatusNotFound {
		t.Errorf("Expected 404 updating approved invoice, got %d", w3.Code)
	}
	if msg := testutil.ParseResponse(w3)["message"]; msg != "Material Invoice not found or Approved" {
		t.Errorf("Unexpected gate message: %v", msg)
	}

	w4 := env.DoRequest("DELETE", "/api/v1/user/delete/material-invoice/"+id, nil, creatorToken)
	if w4.Code != http.StatusNotFound {
		t.Errorf("Expected 404 deleting approved invoice, got %d", w4.Code)
	}

	// A missing invoice answers identically to an approved one.
	w5 := env.DoRequest("POST", "/api/v1/user/update/material-invoice/no-such-id", invoicePayload("VND-X"), creatorToken)
	if w5.Code != http.StatusNotFound {
		t.Errorf("Expected 404 updating missing invoice, got %d", w5.Code)
	}
	if msg := testutil.ParseResponse(w5)["message"]; msg != "Material Invoice not found or Approved" {
		t.Errorf("Unexpected gate message for missing invoice: %v", msg)
	}
}

func TestPaymentRequiresApproval(t *testing.T) {
	env := testutil.SetupEnv(t)
	creator := env.SeedUser("incharge@test.com", entity.RoleStoreIncharge)
	approver := env.SeedUser("pm@test.com", entity.RoleProcurementManager)
	accounts := env.SeedUser("accounts@test.com", entity.RoleAccountsManager)

	w := env.DoRequest("POST", "/api/v1/user/create/material-invoice", invoicePayload("VND-001"), env.Token(creator))
	id := testutil.ParseResponse(w)["data"].(map[string]interface{})["id"].(string)

	pay := map[string]interface{}{"id": id, "approved": true}

	w2 := env.DoRequest("POST", "/api/v1/user/approve/invoice-payment", pay, env.Token(accounts))
	if w2.Code != http.StatusConflict {
		t.Fatalf("Expected 409 paying unapproved invoice, got %d: %s", w2.Code, w2.Body.String())
	}

	env.DoRequest("POST", "/api/v1/user/approve/material-invoice",
		map[string]interface{}{"id": id, "approved": true}, env.Token(approver))

	w3 := env.DoRequest("POST", "/api/v1/user/approve/invoice-payment", pay, env.Token(accounts))
	if w3.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w3.Code, w3.Body.String())
	}
	data := testutil.ParseResponse(w3)["data"].(map[string]interface{})
	if data["paid"] != true {
		t.Errorf("paid = %v, want true", data["paid"])
	}
	if data["paidOn"] == nil {
		t.Error("paidOn should be set when payment is approved")
	}

	w4 := env.DoRequest("POST", "/api/v1/user/approve/invoice-payment",
		map[string]interface{}{"id": id, "approved": false}, env.Token(accounts))
	if w4.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w4.Code, w4.Body.String())
	}
	data4 := testutil.ParseResponse(w4)["data"].(map[string]interface{})
	if data4["paid"] != false {
		t.Errorf("paid = %v, want false after revoke", data4["paid"])
	}
	if data4["paidOn"] != nil {
		t.Errorf("paidOn = %v, want null after revoke", data4["paidOn"])
	}
}

func TestInvoiceRoleEnforcement(t *testing.T) {
	env := testutil.SetupEnv(t)
	approver := env.SeedUser("pm@test.com", entity.RoleProcurementManager)
	admin := env.SeedUser("admin@test.com", entity.RoleAdmin)

	// Wrong role: a procurement manager cannot create invoices.
	w := env.DoRequest("POST", "/api/v1/user/create/material-invoice", invoicePayload("VND-001"), env.Token(approver))
	if w.Code != http.StatusForbidden {
		t.Errorf("Expected 403, got %d: %s", w.Code, w.Body.String())
	}
	if msg := testutil.ParseResponse(w)["message"]; msg != "User Verification Failed" {
		t.Errorf("Unexpected message: %v", msg)
	}

	// ADMIN is a distinct role, not a superuser.
	w2 := env.DoRequest("POST", "/api/v1/user/approve/material-invoice",
		map[string]interface{}{"id": "x", "approved": true}, env.Token(admin))
	if w2.Code != http.StatusForbidden {
		t.Errorf("Expected 403 for admin approving, got %d", w2.Code)
	}

	// No token.
	w3 := env.DoRequest("GET", "/api/v1/user/list/material-invoices", nil, "")
	if w3.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 without token, got %d", w3.Code)
	}

	// Valid token for a user that no longer exists.
	ghost := env.SeedUser("ghost@test.com", entity.RoleStoreIncharge)
	token := env.Token(ghost)
	env.DB.Delete(&entity.User{}, "id = ?", ghost.ID)
	w4 := env.DoRequest("POST", "/api/v1/user/create/material-invoice", invoicePayload("VND-002"), token)
	if w4.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 for deleted user, got %d", w4.Code)
	}
	if msg := testutil.ParseResponse(w4)["message"]; msg != "User not found" {
		t.Errorf("Unexpected message: %v", msg)
	}
}

func TestInvoiceGetAndList(t *testing.T) {
	env := testutil.SetupEnv(t)
	creator := env.SeedUser("incharge@test.com", entity.RoleStoreIncharge)
	viewer := env.SeedUser("accounts@test.com", entity.RoleAccountsManager)
	token := env.Token(creator)

	w := env.DoRequest("POST", "/api/v1/user/create/material-invoice", invoicePayload("VND-001"), token)
	id := testutil.ParseResponse(w)["data"].(map[string]interface{})["id"].(string)
	env.DoRequest("POST", "/api/v1/user/create/material-invoice", invoicePayload("VND-002"), token)

	// Any authenticated role can read.
	w2 := env.DoRequest("GET", "/api/v1/user/get/material-invoice/"+id, nil, env.Token(viewer))
	if w2.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w2.Code, w2.Body.String())
	}
	data := testutil.ParseResponse(w2)["data"].(map[string]interface{})
	if len(data["InvoiceMaterialItem"].([]interface{})) != 2 {
		t.Error("Get should preload line items")
	}

	w3 := env.DoRequest("GET", "/api/v1/user/list/material-invoices", nil, env.Token(viewer))
	if w3.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w3.Code, w3.Body.String())
	}
	list := testutil.ParseResponse(w3)["data"].([]interface{})
	if len(list) != 2 {
		t.Fatalf("Expected 2 invoices, got %d", len(list))
	}

	w4 := env.DoRequest("GET", "/api/v1/user/get/material-invoice/no-such-id", nil, token)
	if w4.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for missing invoice, got %d", w4.Code)
	}
}
