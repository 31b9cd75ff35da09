package handlers

import (
	"net/http"
	"time"

	"github.com/tradewisearg/servitec-web/internal/models"
	"github.com/tradewisearg/servitec-web/internal/services"

	"github.com/gin-gonic/gin"
)

// ReportHandler exposes the derived financial views.
type ReportHandler struct {
	reportService services.ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// GetFinanceReport handles GET /reports/finance.
func (h *ReportHandler) GetFinanceReport(c *gin.Context) {
	report, err := h.reportService.FinanceReport()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// GetDailySummaries handles GET /reports/daily?start=YYYY-MM-DD&end=YYYY-MM-DD.
// Both bounds default to the trailing 30 days.
func (h *ReportHandler) GetDailySummaries(c *gin.Context) {
	now := time.Now()
	start := c.DefaultQuery("start", models.SummaryDay(now.AddDate(0, 0, -30)))
	end := c.DefaultQuery("end", models.SummaryDay(now))

	for _, day := range []string{start, end} {
		if _, err := time.Parse(models.SummaryDayLayout, day); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid day, expected YYYY-MM-DD: " + day})
			return
		}
	}

	summaries, err := h.reportService.DailySummaries(start, end)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"summaries": summaries, "start": start, "end": end})
}

// GetTodaySummary handles GET /reports/daily/today.
func (h *ReportHandler) GetTodaySummary(c *gin.Context) {
	summary, err := h.reportService.TodaySummary()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
