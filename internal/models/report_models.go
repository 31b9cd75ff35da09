package models

// Alert thresholds used by the derived per-product flags.
const (
	LowStockThreshold  = 5
	LowMarginThreshold = 10.0 // percent
)

// InventoryTotals aggregates the whole stock snapshot.
type InventoryTotals struct {
	ProductCount  int     `json:"product_count"`
	TotalQuantity int     `json:"total_quantity"`
	Valuation     float64 `json:"valuation"` // Σ quantity × cost
}

// ProductPerformance accumulates sale movements per product name.
type ProductPerformance struct {
	ProductName string  `json:"product_name"`
	UnitsSold   int     `json:"units_sold"`
	Revenue     float64 `json:"revenue"`
	Profit      float64 `json:"profit"`
}

// ProductAlerts carries the per-product warning flags.
type ProductAlerts struct {
	ProductID    int64   `json:"product_id"`
	ProductName  string  `json:"product_name"`
	LowStock     bool    `json:"low_stock"`
	NoRecentSale bool    `json:"no_recent_sale"` // no sale movement in the last 30 days
	LowMargin    bool    `json:"low_margin"`
	MarginPct    float64 `json:"margin_pct"`
}

// FinanceReport is the dashboard payload derived from products + movements.
type FinanceReport struct {
	Totals         InventoryTotals     `json:"totals"`
	HistoricProfit float64             `json:"historic_profit"`
	Profit30d      float64             `json:"profit_30d"`
	Revenue30d     float64             `json:"revenue_30d"`
	BestSeller     *ProductPerformance `json:"best_seller,omitempty"`
	MostProfitable *ProductPerformance `json:"most_profitable,omitempty"`
	Alerts         []ProductAlerts     `json:"alerts"`
}
