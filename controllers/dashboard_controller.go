package controllers

import (
	"bytes"
	"fmt"
	"net/http"

	"hotelsite/response"
	"hotelsite/services"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type DashboardController struct {
	dashboard *services.DashboardService
	export    *services.ExportService
	cal       services.Calendar
	log       zerolog.Logger
}

func NewDashboardController(dashboard *services.DashboardService, export *services.ExportService, cal services.Calendar, log zerolog.Logger) *DashboardController {
	return &DashboardController{dashboard: dashboard, export: export, cal: cal, log: log}
}

// GetStats serves the dashboard as of ?date=, default today.
func (dc *DashboardController) GetStats(c *gin.Context) {
	asOf, err := parseDateQuery(c, "date")
	if err != nil {
		respondError(c, dc.log, err)
		return
	}
	day := dc.cal.Today()
	if asOf != nil {
		day = *asOf
	}
	stats, err := dc.dashboard.ComputeStats(c.Request.Context(), day)
	if err != nil {
		respondError(c, dc.log, err)
		return
	}
	response.Success(c, stats)
}

// ExportBookings streams the booking ledger as an xlsx workbook.
func (dc *DashboardController) ExportBookings(c *gin.Context) {
	filter, err := bookingFilterFromQuery(c)
	if err != nil {
		respondError(c, dc.log, err)
		return
	}
	asOf, err := parseDateQuery(c, "date")
	if err != nil {
		respondError(c, dc.log, err)
		return
	}
	day := dc.cal.Today()
	if asOf != nil {
		day = *asOf
	}

	var buf bytes.Buffer
	if err := dc.export.ExportBookings(c.Request.Context(), &buf, filter, day); err != nil {
		respondError(c, dc.log, err)
		return
	}
	filename := fmt.Sprintf("bookings-%s.xlsx", day.Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
