// Package authz centralizes the role → operation permission table that the
// rest of the application consults. Write permissions were previously
// checked ad hoc per operation; every gate now goes through Can.
package authz

import "github.com/tradewisearg/servitec-web/internal/models"

// Operation names every permission-gated action.
type Operation string

const (
	OpViewInventory  Operation = "inventory.view"
	OpCreateProduct  Operation = "inventory.create"
	OpUpdateProduct  Operation = "inventory.update"
	OpDeleteProduct  Operation = "inventory.delete"
	OpRecordSale     Operation = "inventory.sale"
	OpImportCSV      Operation = "inventory.import"
	OpViewLedger     Operation = "ledger.view"
	OpViewReports    Operation = "reports.view"
	OpManageAccounts Operation = "accounts.manage"
)

var permissions = map[Operation][]string{
	OpViewInventory:  {models.RoleViewer, models.RoleAdmin, models.RoleSuperadmin},
	OpCreateProduct:  {models.RoleAdmin, models.RoleSuperadmin},
	OpUpdateProduct:  {models.RoleAdmin, models.RoleSuperadmin},
	OpDeleteProduct:  {models.RoleSuperadmin},
	OpRecordSale:     {models.RoleAdmin, models.RoleSuperadmin},
	OpImportCSV:      {models.RoleAdmin, models.RoleSuperadmin},
	OpViewLedger:     {models.RoleViewer, models.RoleAdmin, models.RoleSuperadmin},
	OpViewReports:    {models.RoleViewer, models.RoleAdmin, models.RoleSuperadmin},
	OpManageAccounts: {models.RoleSuperadmin},
}

// Can reports whether role is allowed to perform op. Unknown roles and
// unknown operations are denied.
func Can(role string, op Operation) bool {
	allowed, ok := permissions[op]
	if !ok {
		return false
	}
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}
