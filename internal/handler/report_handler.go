package handler

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"hawafiz/internal/domain"
	"hawafiz/internal/export"
	"hawafiz/internal/middleware"
	"hawafiz/internal/port"
	"hawafiz/internal/service"
)

// ReportHandler serves the monthly bonus report and its downloads.
type ReportHandler struct {
	reportService service.ReportService
	exporters     map[string]port.ReportExporter
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService service.ReportService, exporters map[string]port.ReportExporter) *ReportHandler {
	return &ReportHandler{reportService: reportService, exporters: exporters}
}

// parsePeriod reads the month query param, defaulting to the current month.
func parsePeriod(c *gin.Context) (domain.Period, error) {
	monthStr := c.Query("month")
	if monthStr == "" {
		now := time.Now().UTC()
		return domain.Period{Year: now.Year(), Month: now.Month()}, nil
	}
	return domain.ParsePeriod(monthStr)
}

// Monthly handles GET /api/v1/reports/bonus?month=YYYY-MM
// Returns the computed bonus lines, the excluded invoices with reasons, and
// the summary block for the target month.
func (h *ReportHandler) Monthly(c *gin.Context) {
	period, err := parsePeriod(c)
	if err != nil {
		HandleError(c, err)
		return
	}

	report, err := h.reportService.MonthlyBonus(c.Request.Context(), period)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, report)
}

// Export handles GET /api/v1/reports/bonus/export?month=YYYY-MM&format=csv|xlsx
// Streams the report as an attachment in the requested format (csv default).
func (h *ReportHandler) Export(c *gin.Context) {
	period, err := parsePeriod(c)
	if err != nil {
		HandleError(c, err)
		return
	}

	format := c.DefaultQuery("format", "csv")
	exporter, ok := h.exporters[format]
	if !ok {
		HandleError(c, domain.ErrUnsupportedFormat)
		return
	}

	report, err := h.reportService.MonthlyBonus(c.Request.Context(), period)
	if err != nil {
		HandleError(c, err)
		return
	}

	filename := export.BuildFilename(period, exporter.FileExt())
	c.Header("Content-Type", exporter.ContentType())
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Status(http.StatusOK)

	if err := exporter.Write(c.Writer, report); err != nil {
		// Headers are already out; all we can do is log.
		log.Printf("handler.ReportHandler: [%s] streaming export failed: %v",
			c.GetString(middleware.RequestIDKey), err)
	}
}
