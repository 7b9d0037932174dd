// internal/api/handlers/report_handler.go
package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"tusep-web/internal/models"
	"tusep-web/internal/notify"
	"tusep-web/internal/reports"
	"tusep-web/internal/views"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	Archive reports.Archiver
	Prefix  string
}

func (h *ReportHandler) GetReports(c *gin.Context) {
	r, err := views.LoadReports(c.Request.Context(), backend(c), viewerOf(c))
	if err != nil {
		respondError(c, err, notify.Error(err, notify.ReportsLoadFailed))
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": r})
}

// DownloadExcel streams the workbook as {type}_{year}.xlsx.
func (h *ReportHandler) DownloadExcel(c *gin.Context) {
	report, ok := models.ParseExcelReport(c.Param("type"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": notify.InvalidReportType})
		return
	}
	year, err := reports.ParseYear(c.Query("year"), time.Now())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid year", "details": err.Error()})
		return
	}

	wb, err := reports.NewDownloader(backend(c), h.Archive, h.Prefix).Fetch(c.Request.Context(), report, year)
	if err != nil {
		respondError(c, err, notify.Error(err, notify.ReportDownloadFailed))
		return
	}
	if wb.ArchiveURL != "" {
		c.Header("X-Archive-URL", wb.ArchiveURL)
	}
	c.DataFromReader(http.StatusOK, int64(len(wb.Data)), reports.ContentType, bytes.NewReader(wb.Data), map[string]string{
		"Content-Disposition": fmt.Sprintf(`attachment; filename=%s`, strconv.Quote(wb.Name)),
	})
}
