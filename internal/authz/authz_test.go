package authz

import (
	"testing"

	"github.com/tradewisearg/servitec-web/internal/models"
)

func TestCan(t *testing.T) {
	cases := []struct {
		role string
		op   Operation
		want bool
	}{
		{models.RoleViewer, OpViewInventory, true},
		{models.RoleViewer, OpCreateProduct, false},
		{models.RoleViewer, OpRecordSale, false},
		{models.RoleAdmin, OpCreateProduct, true},
		{models.RoleAdmin, OpUpdateProduct, true},
		{models.RoleAdmin, OpRecordSale, true},
		{models.RoleAdmin, OpImportCSV, true},
		{models.RoleAdmin, OpDeleteProduct, false},
		{models.RoleAdmin, OpManageAccounts, false},
		{models.RoleSuperadmin, OpDeleteProduct, true},
		{models.RoleSuperadmin, OpManageAccounts, true},
		{"", OpViewInventory, false},
		{"intruder", OpCreateProduct, false},
	}
	for _, tc := range cases {
		if got := Can(tc.role, tc.op); got != tc.want {
			t.Errorf("Can(%q, %q) = %v, want %v", tc.role, tc.op, got, tc.want)
		}
	}
}

func TestCanUnknownOperation(t *testing.T) {
	if Can(models.RoleSuperadmin, Operation("nope")) {
		t.Error("unknown operation must be denied")
	}
}
