package handler_test

import (
	"net/http"
	"testing"

	"github.com/Srinu-likitha/store-management-mvp/internal/store/entity"
	"github.com/Srinu-likitha/store-management-mvp/internal/store/testutil"
)

func TestLoginAndMe(t *testing.T) {
	env := testutil.SetupEnv(t)
	user := env.SeedUser("incharge@test.com", entity.RoleStoreIncharge)

	w := env.DoRequest("POST", "/api/v1/auth/login",
		map[string]interface{}{"email": "incharge@test.com", "password": "secret123"}, "")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	data := testutil.ParseResponse(w)["data"].(map[string]interface{})
	access, ok := data["access_token"].(string)
	if !ok || access == "" {
		t.Fatal("Login response missing access_token")
	}
	if data["refresh_token"] == "" {
		t.Error("Login response missing refresh_token")
	}

	w2 := env.DoRequest("GET", "/api/v1/auth/me", nil, access)
	if w2.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w2.Code, w2.Body.String())
	}
	me := testutil.ParseResponse(w2)["data"].(map[string]interface{})
	if me["id"] != user.ID {
		t.Errorf("me.id = %v, want %s", me["id"], user.ID)
	}
	if me["role"] != string(entity.RoleStoreIncharge) {
		t.Errorf("me.role = %v, want %s", me["role"], entity.RoleStoreIncharge)
	}
	if _, leaked := me["password_hash"]; leaked {
		t.Error("Password hash must never be serialized")
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	env := testutil.SetupEnv(t)
	env.SeedUser("incharge@test.com", entity.RoleStoreIncharge)

	wrongPassword := env.DoRequest("POST", "/api/v1/auth/login",
		map[string]interface{}{"email": "incharge@test.com", "password": "nope"}, "")
	unknownEmail := env.DoRequest("POST", "/api/v1/auth/login",
		map[string]interface{}{"email": "nobody@test.com", "password": "secret123"}, "")

	for name, w := range map[string]int{"wrong password": wrongPassword.Code, "unknown email": unknownEmail.Code} {
		if w != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", name, w)
		}
	}
	// Both failures answer identically so the endpoint does not reveal
	// which emails exist.
	msgA := testutil.ParseResponse(wrongPassword)["message"]
	msgB := testutil.ParseResponse(unknownEmail)["message"]
	if msgA != msgB {
		t.Errorf("Credential failures must be indistinguishable: %q vs %q", msgA, msgB)
	}
}

func TestMeRequiresToken(t *testing.T) {
	env := testutil.SetupEnv(t)

	w := env.DoRequest("GET", "/api/v1/auth/me", nil, "")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 without token, got %d", w.Code)
	}

	w2 := env.DoRequest("GET", "/api/v1/auth/me", nil, "not-a-jwt")
	if w2.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 with garbage token, got %d", w2.Code)
	}
}
