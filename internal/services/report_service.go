package services

import (
	"errors"
	"strings"
	"time"

	"github.com/tradewisearg/servitec-web/internal/models"
	"github.com/tradewisearg/servitec-web/internal/repositories"
)

// recentWindow is the trailing window used for the 30-day metrics and the
// no-recent-sale alert.
const recentWindow = 30 * 24 * time.Hour

// ReportService exposes the derived financial views. Derivation is pure:
// the service only fetches the snapshot and delegates to BuildFinanceReport.
type ReportService interface {
	FinanceReport() (*models.FinanceReport, error)
	DailySummaries(startDay, endDay string) ([]models.DailySummary, error)
	TodaySummary() (*models.DailySummary, error)
}

type reportService struct {
	productRepo  repositories.ProductRepository
	movementRepo repositories.MovementRepository
	summaryRepo  repositories.SummaryRepository
}

// NewReportService creates a new instance of ReportService.
func NewReportService(pr repositories.ProductRepository, mr repositories.MovementRepository, sr repositories.SummaryRepository) ReportService {
	return &reportService{productRepo: pr, movementRepo: mr, summaryRepo: sr}
}

func (s *reportService) FinanceReport() (*models.FinanceReport, error) {
	products, err := s.productRepo.List(nil, "")
	if err != nil {
		return nil, err
	}

	movements, err := s.movementRepo.ListByType(models.MovementSale)
	if err != nil {
		return nil, err
	}

	report := BuildFinanceReport(products, movements, time.Now())
	return &report, nil
}

func (s *reportService) DailySummaries(startDay, endDay string) ([]models.DailySummary, error) {
	return s.summaryRepo.GetRange(startDay, endDay)
}

// TodaySummary returns today's running totals. A day with no sales yet has
// no row; that is reported as a zeroed summary, not an error.
func (s *reportService) TodaySummary() (*models.DailySummary, error) {
	day := models.SummaryDay(time.Now())
	summary, err := s.summaryRepo.GetByDay(day)
	if errors.Is(err, repositories.ErrNotFound) {
		return &models.DailySummary{Day: day}, nil
	}
	return summary, err
}

// BuildFinanceReport derives every financial view from an in-memory
// snapshot of products and sale movements. It has no side effects.
//
// Sale cost is taken from the product's current unit cost, not the cost at
// sale time; when a cost changes after a sale the historic profit shifts
// with it. The original system behaved the same way.
func BuildFinanceReport(products []models.Product, movements []models.Movement, now time.Time) models.FinanceReport {
	report := models.FinanceReport{
		Alerts: []models.ProductAlerts{},
	}

	costByName := make(map[string]float64, len(products))
	for _, p := range products {
		costByName[strings.ToLower(p.Name)] = p.Cost

		report.Totals.ProductCount++
		report.Totals.TotalQuantity += p.Quantity
		report.Totals.Valuation += float64(p.Quantity) * p.Cost
	}

	cutoff := now.Add(-recentWindow)
	perf := map[string]*models.ProductPerformance{}
	recentSellers := map[string]bool{}

	for _, m := range movements {
		if m.Type != models.MovementSale {
			continue
		}
		key := strings.ToLower(m.ProductName)
		cost := costByName[key] * float64(m.Quantity)
		profit := m.Total - cost

		report.HistoricProfit += profit
		if !m.CreatedAt.Before(cutoff) {
			report.Profit30d += profit
			report.Revenue30d += m.Total
			recentSellers[key] = true
		}

		p, ok := perf[key]
		if !ok {
			p = &models.ProductPerformance{ProductName: m.ProductName}
			perf[key] = p
		}
		p.UnitsSold += m.Quantity
		p.Revenue += m.Total
		p.Profit += profit
	}

	for _, p := range perf {
		if report.BestSeller == nil || p.UnitsSold > report.BestSeller.UnitsSold {
			report.BestSeller = p
		}
		if report.MostProfitable == nil || p.Profit > report.MostProfitable.Profit {
			report.MostProfitable = p
		}
	}

	for _, p := range products {
		alerts := models.ProductAlerts{
			ProductID:    p.ID,
			ProductName:  p.Name,
			LowStock:     p.Quantity < models.LowStockThreshold,
			NoRecentSale: !recentSellers[strings.ToLower(p.Name)],
		}
		if p.Cost > 0 {
			alerts.MarginPct = (p.Price - p.Cost) / p.Cost * 100
			alerts.LowMargin = alerts.MarginPct < models.LowMarginThreshold
		}
		report.Alerts = append(report.Alerts, alerts)
	}

	return report
}
