// internal/api/handlers/device_handler.go
package handlers

import (
	"net/http"

	"tusep-web/internal/models"
	"tusep-web/internal/notify"
	"tusep-web/internal/views"

	"github.com/gin-gonic/gin"
)

type DeviceHandler struct{}

func (h *DeviceHandler) GetDevices(c *gin.Context) {
	list, err := views.LoadDevices(c.Request.Context(), backend(c), viewerOf(c), c.Query("q"))
	if err != nil {
		respondError(c, err, notify.Error(err, notify.DevicesLoadFailed))
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": list})
}

func (h *DeviceHandler) GetDevice(c *gin.Context) {
	detail, err := views.LoadDeviceDetail(c.Request.Context(), backend(c), c.Param("id"))
	if err != nil {
		respondError(c, err, notify.Error(err, notify.DeviceLoadFailed))
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": detail})
}

func (h *DeviceHandler) CreateDevice(c *gin.Context) {
	var req models.DeviceInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctx := c.Request.Context()
	api := backend(c)
	d, n, err := views.AddDevice(ctx, api, viewerOf(c), req)
	if err != nil {
		respondError(c, err, n)
		return
	}
	list, err := views.LoadDevices(ctx, api, viewerOf(c), c.Query("q"))
	if err != nil {
		respondError(c, err, notify.Error(err, notify.DevicesLoadFailed))
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": "success", "message": n.Message, "notification": n, "created": d, "data": list})
}
