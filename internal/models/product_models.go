package models

import (
	"strings"
	"time"
)

// Categories is the canonical product category list. Imported rows and form
// input are normalized against it case-insensitively.
var Categories = []string{
	"Auriculares",
	"Mouse",
	"Teclado",
	"Kit",
	"Otros",
}

// DefaultCategory is the fallback label for empty or unknown categories.
const DefaultCategory = "Otros"

// NormalizeCategory matches raw against the canonical category list,
// ignoring case and surrounding whitespace. Unknown non-empty values are
// kept as typed; empty values fall back to DefaultCategory.
func NormalizeCategory(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return DefaultCategory
	}
	for _, cat := range Categories {
		if strings.EqualFold(cat, trimmed) {
			return cat
		}
	}
	return trimmed
}

// Product is a sellable item in the shop's stock.
// Invariant: Quantity never goes below zero.
type Product struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name" binding:"required"`
	Category  string    `json:"category" db:"category" binding:"required"`
	Cost      float64   `json:"cost" db:"cost" binding:"min=0"`
	Price     float64   `json:"price" db:"price" binding:"min=0"`
	Quantity  int       `json:"quantity" db:"quantity" binding:"min=0"`
	ImageURL  *string   `json:"image_url,omitempty" db:"image_url"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// NewNullString returns a pointer to s, or nil when s is empty. Useful for
// optional columns that should be NULL when not provided.
func NewNullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
