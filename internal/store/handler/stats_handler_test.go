package handler_test

import (
	"net/http"
	"testing"

	"github.com/Srinu-likitha/store-management-mvp/internal/store/entity"
	"github.com/Srinu-likitha/store-management-mvp/internal/store/testutil"
)

func TestStatsSummary(t *testing.T) {
	env := testutil.SetupEnv(t)
	creator := env.SeedUser("incharge@test.com", entity.RoleStoreIncharge)
	approver := env.SeedUser("pm@test.com", entity.RoleProcurementManager)
	token := env.Token(creator)

	w := env.DoRequest("POST", "/api/v1/user/create/material-invoice", invoicePayload("VND-001"), token)
	id := testutil.ParseResponse(w)["data"].(map[string]interface{})["id"].(string)
	env.DoRequest("POST", "/api/v1/user/create/material-invoice", invoicePayload("VND-002"), token)
	env.DoRequest("POST", "/api/v1/user/create/dc-entry", dcPayload("DC-1001"), token)

	env.DoRequest("POST", "/api/v1/user/approve/material-invoice",
		map[string]interface{}{"id": id, "approved": true}, env.Token(approver))

	w2 := env.DoRequest("GET", "/api/v1/user/stats/summary", nil, token)
	if w2.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w2.Code, w2.Body.String())
	}
	data := testutil.ParseResponse(w2)["data"].(map[string]interface{})

	if data["invoiceCount"] != float64(2) {
		t.Errorf("invoiceCount = %v, want 2", data["invoiceCount"])
	}
	if data["approvedInvoices"] != float64(1) {
		t.Errorf("approvedInvoices = %v, want 1", data["approvedInvoices"])
	}
	if data["dcCount"] != float64(1) {
		t.Errorf("dcCount = %v, want 1", data["dcCount"])
	}
	// Both invoices total 3530.50 each.
	if data["totalSpend"] != "7061" {
		t.Errorf("totalSpend = %v, want 7061", data["totalSpend"])
	}
	byCategory := data["byCategory"].([]interface{})
	if len(byCategory) != 1 {
		t.Fatalf("Expected 1 category bucket, got %d", len(byCategory))
	}
	civil := byCategory[0].(map[string]interface{})
	if civil["category"] != "CIVIL" || civil["count"] != float64(2) {
		t.Errorf("Unexpected category bucket: %v", civil)
	}
}

func TestExportMaterialInvoices(t *testing.T) {
	env := testutil.SetupEnv(t)
	creator := env.SeedUser("incharge@test.com", entity.RoleStoreIncharge)
	token := env.Token(creator)

	env.DoRequest("POST", "/api/v1/user/create/material-invoice", invoicePayload("VND-001"), token)

	w := env.DoRequest("GET", "/api/v1/user/export/material-invoices", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet" {
		t.Errorf("Unexpected content type: %s", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); cd == "" {
		t.Error("Export should set Content-Disposition")
	}
	if w.Body.Len() == 0 {
		t.Error("Export body should not be empty")
	}
}
