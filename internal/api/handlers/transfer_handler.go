// internal/api/handlers/transfer_handler.go
package handlers

import (
	"net/http"

	"tusep-web/internal/models"
	"tusep-web/internal/notify"
	"tusep-web/internal/views"

	"github.com/gin-gonic/gin"
)

type TransferHandler struct{}

type rejectRequest struct {
	RejectionReason string `json:"rejection_reason"`
}

func (h *TransferHandler) GetTransfers(c *gin.Context) {
	list, err := views.LoadTransfers(c.Request.Context(), backend(c), viewerOf(c), models.TransferStatus(c.Query("status")))
	if err != nil {
		respondError(c, err, notify.Error(err, notify.TransfersLoadFailed))
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": list})
}

func (h *TransferHandler) CreateTransfer(c *gin.Context) {
	var req models.TransferInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctx := c.Request.Context()
	api := backend(c)
	t, n, err := views.RequestTransfer(ctx, api, viewerOf(c), req)
	if err != nil {
		respondError(c, err, n)
		return
	}
	list, err := views.LoadTransfers(ctx, api, viewerOf(c), "")
	if err != nil {
		respondError(c, err, notify.Error(err, notify.TransfersLoadFailed))
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": "success", "message": n.Message, "notification": n, "created": t, "data": list})
}

func (h *TransferHandler) ApproveTransfer(c *gin.Context) {
	h.review(c, true, "")
}

func (h *TransferHandler) RejectTransfer(c *gin.Context) {
	var req rejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.review(c, false, req.RejectionReason)
}

func (h *TransferHandler) review(c *gin.Context, approve bool, reason string) {
	ctx := c.Request.Context()
	api := backend(c)
	t, found, err := views.FindTransfer(ctx, api, c.Param("id"))
	if err != nil {
		respondError(c, err, notify.Error(err, notify.TransfersLoadFailed))
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Transfer not found"})
		return
	}
	n, err := views.ReviewTransfer(ctx, api, viewerOf(c), t, approve, reason)
	if err != nil {
		respondError(c, err, n)
		return
	}
	list, err := views.LoadTransfers(ctx, api, viewerOf(c), "")
	if err != nil {
		respondError(c, err, notify.Error(err, notify.TransfersLoadFailed))
		return
	}
	respondSuccess(c, n, list)
}
