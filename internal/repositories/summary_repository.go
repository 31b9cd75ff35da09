package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/tradewisearg/servitec-web/internal/models"
)

// SummaryRepository maintains the per-day financial summary rows.
type SummaryRepository interface {
	// AddSale merges a sale into the summary row for day, creating the row
	// if it does not exist yet. All counters are atomic increments.
	AddSale(executor SQLExecutor, day string, revenue, cost, profit float64, units int) error
	GetByDay(day string) (*models.DailySummary, error)
	GetRange(startDay, endDay string) ([]models.DailySummary, error)
}

type summaryRepository struct {
	db *sql.DB
}

// NewSummaryRepository creates a new instance of SummaryRepository.
func NewSummaryRepository(db *sql.DB) SummaryRepository {
	return &summaryRepository{db: db}
}

func (r *summaryRepository) AddSale(executor SQLExecutor, day string, revenue, cost, profit float64, units int) error {
	query := `INSERT INTO daily_summaries (day, revenue, cost, profit, sales_count, units_sold)
	          VALUES ($1, $2, $3, $4, 1, $5)
	          ON CONFLICT (day) DO UPDATE SET
	            revenue     = daily_summaries.revenue + EXCLUDED.revenue,
	            cost        = daily_summaries.cost + EXCLUDED.cost,
	            profit      = daily_summaries.profit + EXCLUDED.profit,
	            sales_count = daily_summaries.sales_count + 1,
	            units_sold  = daily_summaries.units_sold + EXCLUDED.units_sold`
	_, err := executor.Exec(query, day, revenue, cost, profit, units)
	if err != nil {
		return fmt.Errorf("%w: upserting daily summary for %s: %v", ErrDatabaseError, day, err)
	}
	return nil
}

func (r *summaryRepository) GetByDay(day string) (*models.DailySummary, error) {
	s := &models.DailySummary{}
	query := `SELECT day, revenue, cost, profit, sales_count, units_sold FROM daily_summaries WHERE day = $1`
	err := r.db.QueryRow(query, day).Scan(&s.Day, &s.Revenue, &s.Cost, &s.Profit, &s.SalesCount, &s.UnitsSold)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting daily summary for %s: %v", ErrDatabaseError, day, err)
	}
	return s, nil
}

func (r *summaryRepository) GetRange(startDay, endDay string) ([]models.DailySummary, error) {
	query := `SELECT day, revenue, cost, profit, sales_count, units_sold
	          FROM daily_summaries
	          WHERE day >= $1 AND day <= $2
	          ORDER BY day`
	rows, err := r.db.Query(query, startDay, endDay)
	if err != nil {
		return nil, fmt.Errorf("%w: getting daily summaries: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	summaries := []models.DailySummary{}
	for rows.Next() {
		var s models.DailySummary
		if err := rows.Scan(&s.Day, &s.Revenue, &s.Cost, &s.Profit, &s.SalesCount, &s.UnitsSold); err != nil {
			return nil, fmt.Errorf("%w: scanning daily summary: %v", ErrDatabaseError, err)
		}
		summaries = append(summaries, s)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating daily summaries: %v", ErrDatabaseError, err)
	}
	return summaries, nil
}
