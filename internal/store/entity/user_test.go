package entity

import "testing"

func TestRoleValid(t *testing.T) {
	for _, r := range []Role{RoleAdmin, RoleStoreIncharge, RoleProcurementManager, RoleAccountsManager} {
		if !r.Valid() {
			t.Errorf("Role %s should be valid", r)
		}
	}
	for _, r := range []Role{RoleAny, Role(""), Role("MANAGER")} {
		if r.Valid() {
			t.Errorf("Role %s should not be storable", r)
		}
	}
}

func TestRoleFor(t *testing.T) {
	tests := []struct {
		action Action
		want   Role
	}{
		{ActionCreateInvoice, RoleStoreIncharge},
		{ActionUpdateInvoice, RoleStoreIncharge},
		{ActionDeleteInvoice, RoleStoreIncharge},
		{ActionApproveInvoice, RoleProcurementManager},
		{ActionApprovePayment, RoleAccountsManager},
		{ActionCreateDc, RoleStoreIncharge},
		{ActionApproveDc, RoleProcurementManager},
	}
	for _, tt := range tests {
		if got := RoleFor(tt.action); got != tt.want {
			t.Errorf("RoleFor(%s) = %s, want %s", tt.action, got, tt.want)
		}
	}
	// An unmapped action must not resolve to a passable role.
	if got := RoleFor(Action("unknown")); got != Role("") {
		t.Errorf("RoleFor(unknown) = %s, want empty", got)
	}
}
