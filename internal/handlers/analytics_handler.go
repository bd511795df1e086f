package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adhunikethi/agritech-api/internal/services"
)

type AnalyticsHandler struct {
	analyticsSvc *services.AnalyticsService
	exportSvc    *services.ExportService
}

func NewAnalyticsHandler(analyticsSvc *services.AnalyticsService, exportSvc *services.ExportService) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsSvc: analyticsSvc,
		exportSvc:    exportSvc,
	}
}

// @Summary Get Dashboard
// @Description Returns the aggregated admin dashboard snapshot
// @Tags Analytics
// @Produce json
// @Success 200 {object} models.DashboardSnapshot
// @Failure 500 {object} map[string]string
// @Security BearerAuth
// @Router /analytics/dashboard [get]
func (h *AnalyticsHandler) Dashboard(c *gin.Context) {
	snapshot, err := h.analyticsSvc.GetDashboard(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

// @Summary Refresh Dashboard
// @Description Drops the cached snapshot and recomputes it
// @Tags Analytics
// @Produce json
// @Success 200 {object} models.DashboardSnapshot
// @Security BearerAuth
// @Router /analytics/refresh [post]
func (h *AnalyticsHandler) Refresh(c *gin.Context) {
	h.analyticsSvc.InvalidateDashboard(c.Request.Context())
	snapshot, err := h.analyticsSvc.GetDashboard(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

// @Summary Export Dashboard
// @Description Generates and downloads the dashboard report in csv, xlsx or pdf
// @Tags Analytics
// @Produce application/octet-stream
// @Param format query string true "Report format (csv, xlsx, pdf)"
// @Security BearerAuth
// @Router /analytics/export [get]
func (h *AnalyticsHandler) Export(c *gin.Context) {
	format := c.Query("format")

	snapshot, err := h.exportSvc.Dashboard(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load dashboard data"})
		return
	}

	var data []byte
	var filename string

	switch format {
	case "csv":
		data, filename, err = h.exportSvc.ExportCSV(c.Request.Context(), snapshot)
	case "xlsx":
		data, filename, err = h.exportSvc.ExportXLSX(c.Request.Context(), snapshot)
	case "pdf":
		data, filename, err = h.exportSvc.ExportPDF(c.Request.Context(), snapshot)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid format (csv, xlsx, pdf)"})
		return
	}

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("failed to generate %s: %v", format, err)})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "application/octet-stream", data)
}
