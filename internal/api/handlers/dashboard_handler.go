// internal/api/handlers/dashboard_handler.go
package handlers

import (
	"net/http"

	"tusep-web/internal/api/middleware"
	"tusep-web/internal/notify"
	"tusep-web/internal/views"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct{}

// GetDashboard renders the landing page: menu, quick actions and stats.
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	d, err := views.LoadDashboard(c.Request.Context(), backend(c), middleware.CurrentUser(c))
	if err != nil {
		respondError(c, err, notify.Error(err, notify.StatsLoadFailed))
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": d})
}

func (h *DashboardHandler) GetQuality(c *gin.Context) {
	q, err := views.LoadQuality(c.Request.Context(), backend(c), viewerOf(c))
	if err != nil {
		respondError(c, err, notify.Error(err, notify.StatsLoadFailed))
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": q})
}
