package handlers

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"villa_backend/internal/models"
	"villa_backend/internal/reports"
	"villa_backend/internal/services"
	"villa_backend/pkg/utils"
)

// AnalyticsHandler serves the GRO summary, dashboard and report endpoints.
type AnalyticsHandler struct {
	analyticsService services.AnalyticsService
	now              func() time.Time
}

// NewAnalyticsHandler creates a new AnalyticsHandler.
func NewAnalyticsHandler(as services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: as, now: time.Now}
}

// GetGroSummary handles GET /api/gro/summary.
func (h *AnalyticsHandler) GetGroSummary(c *gin.Context) {
	entries, err := h.analyticsService.GroSummary(c.Request.Context())
	if err != nil {
		utils.LogError(err, "GetGroSummary: Error from analyticsService.GroSummary")
		utils.RespondInternalError(c, "Failed to load GRO summary.")
		return
	}
	if entries == nil {
		entries = []models.GroSummaryEntry{}
	}
	c.JSON(http.StatusOK, entries)
}

// GetDashboardStats handles GET /api/dashboard/stats.
func (h *AnalyticsHandler) GetDashboardStats(c *gin.Context) {
	stats, err := h.analyticsService.DashboardStats(c.Request.Context())
	if err != nil {
		utils.LogError(err, "GetDashboardStats: Error from analyticsService.DashboardStats")
		utils.RespondInternalError(c, "Failed to load dashboard statistics.")
		return
	}
	c.JSON(http.StatusOK, stats)
}

// ExportGroSummary streams the GRO summary as an XLSX attachment.
func (h *AnalyticsHandler) ExportGroSummary(c *gin.Context) {
	ctx := c.Request.Context()

	entries, err := h.analyticsService.GroSummary(ctx)
	if err != nil {
		utils.LogError(err, "ExportGroSummary: Error from analyticsService.GroSummary")
		utils.RespondInternalError(c, "Failed to export GRO summary.")
		return
	}
	stats, err := h.analyticsService.DashboardStats(ctx)
	if err != nil {
		utils.LogError(err, "ExportGroSummary: Error from analyticsService.DashboardStats")
		utils.RespondInternalError(c, "Failed to export GRO summary.")
		return
	}

	generatedAt := h.now()
	var buf bytes.Buffer
	if err := reports.WriteGroSummary(&buf, entries, stats, generatedAt); err != nil {
		utils.LogError(err, "ExportGroSummary: Failed to build workbook")
		utils.RespondInternalError(c, "Failed to export GRO summary.")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+reports.GroSummaryFilename(generatedAt)+`"`)
	c.Data(http.StatusOK, reports.ContentType, buf.Bytes())
}

// GetGroReservations handles GET /api/gro/:gro/reservations.
func (h *AnalyticsHandler) GetGroReservations(c *gin.Context) {
	gro := strings.TrimSpace(c.Param("gro"))
	if gro == "" {
		utils.RespondValidationFailed(c, "gro is required")
		return
	}

	records, err := h.analyticsService.GroReservations(c.Request.Context(), gro)
	if err != nil {
		utils.LogError(err, "GetGroReservations: Error from analyticsService.GroReservations for "+gro)
		utils.RespondInternalError(c, "Failed to load reservations for GRO.")
		return
	}
	if records == nil {
		records = []models.ReservationRecord{}
	}
	c.JSON(http.StatusOK, records)
}

// GetMonthlyRevenue handles GET /api/reports/monthly-revenue?year=YYYY.
// Without a year the current one is used.
func (h *AnalyticsHandler) GetMonthlyRevenue(c *gin.Context) {
	year := 0
	if raw := c.Query("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			utils.RespondValidationFailed(c, "year must be a number")
			return
		}
		year = parsed
	}

	points, err := h.analyticsService.MonthlyRevenue(c.Request.Context(), year)
	if err != nil {
		if errors.Is(err, services.ErrInvalidReportYear) {
			utils.RespondValidationFailed(c, err.Error())
			return
		}
		utils.LogError(err, "GetMonthlyRevenue: Error from analyticsService.MonthlyRevenue")
		utils.RespondInternalError(c, "Failed to load monthly revenue.")
		return
	}
	c.JSON(http.StatusOK, points)
}
