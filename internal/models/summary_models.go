package models

import "time"

// SummaryDayLayout is the local calendar-day key for daily summaries.
const SummaryDayLayout = "2006-01-02"

// DailySummary holds running financial totals for one local calendar day.
// Rows are maintained by atomic increments merged into the existing record;
// it is a derived, eventually-consistent side effect of sales.
type DailySummary struct {
	Day        string  `json:"day" db:"day"`
	Revenue    float64 `json:"revenue" db:"revenue"`
	Cost       float64 `json:"cost" db:"cost"`
	Profit     float64 `json:"profit" db:"profit"`
	SalesCount int     `json:"sales_count" db:"sales_count"`
	UnitsSold  int     `json:"units_sold" db:"units_sold"`
}

// SummaryDay returns the daily-summary key for t in t's location.
func SummaryDay(t time.Time) string {
	return t.Format(SummaryDayLayout)
}
