package models

import "time"

// Movement types. The ledger records every stock change.
const (
	MovementInbound  = "inbound"
	MovementOutbound = "outbound"
	MovementSale     = "sale"
)

// Movement origin tags.
const (
	OriginCSVImport = "csv-import"
)

// Movement is one entry in the append-only stock ledger. Entries are never
// updated or deleted and outlive the product they reference; ProductName is
// denormalized on purpose, it is not a foreign key.
// Invariants: Quantity > 0; for sales, Total = UnitPrice × Quantity at the
// time the entry was written.
type Movement struct {
	ID            int64     `json:"id" db:"id"`
	Type          string    `json:"type" db:"type" binding:"required"`
	ProductName   string    `json:"product_name" db:"product_name" binding:"required"`
	Quantity      int       `json:"quantity" db:"quantity" binding:"required,gt=0"`
	PriorQuantity int       `json:"prior_quantity" db:"prior_quantity"`
	NewQuantity   int       `json:"new_quantity" db:"new_quantity"`
	UnitPrice     float64   `json:"unit_price" db:"unit_price"`
	Total         float64   `json:"total" db:"total"`
	Actor         string    `json:"actor" db:"actor"`
	Origin        *string   `json:"origin,omitempty" db:"origin"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

// MovementFilters narrows ledger listings.
type MovementFilters struct {
	ProductName *string
	Type        *string
	Origin      *string
	StartDate   *time.Time
	EndDate     *time.Time
	Page        int
	PageSize    int
}

// IsValidMovementType reports whether t is one of the known ledger types.
func IsValidMovementType(t string) bool {
	switch t {
	case MovementInbound, MovementOutbound, MovementSale:
		return true
	default:
		return false
	}
}
