// internal/api/handlers/fault_handler.go
package handlers

import (
	"fmt"
	"net/http"
	"time"

	"tusep-web/internal/faults"
	"tusep-web/internal/filter"
	"tusep-web/internal/gate"
	"tusep-web/internal/models"
	"tusep-web/internal/notify"
	"tusep-web/internal/socket"

	"github.com/gin-gonic/gin"
)

type FaultHandler struct {
	Hub *socket.Hub
}

type assignRequest struct {
	AssignedTo string `json:"assigned_to"`
}

type endRepairRequest struct {
	RepairNotes    string                `json:"repair_notes"`
	RepairCategory models.RepairCategory `json:"repair_category"`
}

func (h *FaultHandler) view(c *gin.Context) *faults.View {
	return faults.NewView(backend(c), viewerOf(c))
}

// GetFaults lists the viewer's faults, narrowed by ?status= and ?q=.
func (h *FaultHandler) GetFaults(c *gin.Context) {
	snap, err := h.view(c).Load(c.Request.Context())
	if err != nil {
		respondError(c, err, notify.Error(err, notify.FaultsLoadFailed))
		return
	}

	status := models.FaultStatus(c.Query("status"))
	term := c.Query("q")
	if status != "" || term != "" {
		list := make([]models.Fault, len(snap.Faults))
		for i, r := range snap.Faults {
			list[i] = r.Fault
		}
		keep := make(map[string]bool)
		for _, f := range filter.Faults(list, status, term) {
			keep[f.ID] = true
		}
		rows := snap.Faults[:0:0]
		for _, r := range snap.Faults {
			if keep[r.ID] {
				rows = append(rows, r)
			}
		}
		snap.Faults = rows
	}
	c.JSON(http.StatusOK, gin.H{"data": snap})
}

// NewFault feeds the report-fault form: the device picker and the distinct
// types and locations it can be narrowed by.
func (h *FaultHandler) NewFault(c *gin.Context) {
	if !gate.CanReportFault(viewerOf(c).Role) {
		c.JSON(http.StatusForbidden, gin.H{"error": notify.ActionNotAllowed})
		return
	}
	var picker filter.DevicePicker
	if err := c.ShouldBindQuery(&picker); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	devices, err := backend(c).Devices(c.Request.Context())
	if err != nil {
		respondError(c, err, notify.Error(err, notify.DevicesLoadFailed))
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{
		"devices":   picker.Apply(devices),
		"types":     filter.Types(devices),
		"locations": filter.Locations(devices),
		"picker":    picker,
	}})
}

func (h *FaultHandler) CreateFault(c *gin.Context) {
	var req models.FaultInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	f, n, err := h.view(c).Report(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, n)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": "success", "message": n.Message, "notification": n, "data": f})
}

func (h *FaultHandler) AssignFault(c *gin.Context) {
	var req assignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	v := h.view(c)
	n, err := v.Assign(c.Request.Context(), c.Param("id"), req.AssignedTo)
	h.finish(c, v, n, err)
}

func (h *FaultHandler) StartRepair(c *gin.Context) {
	v := h.view(c)
	n, err := v.StartRepair(c.Request.Context(), c.Param("id"))
	h.finish(c, v, n, err)
}

// EndRepair closes the repair window and freezes every open timer of the
// fault at the recorded end time.
func (h *FaultHandler) EndRepair(c *gin.Context) {
	var req endRepairRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	id := c.Param("id")
	v := h.view(c)
	n, err := v.EndRepair(c.Request.Context(), id, req.RepairNotes, req.RepairCategory)
	if err == nil && h.Hub != nil {
		end := time.Now()
		for _, r := range v.Snapshot().Faults {
			if r.ID == id && r.Ended() {
				end = r.RepairEnd.Time
			}
		}
		h.Hub.RepairEnded(id, end)
	}
	h.finish(c, v, n, err)
}

func (h *FaultHandler) ConfirmFault(c *gin.Context) {
	v := h.view(c)
	n, err := v.Confirm(c.Request.Context(), c.Param("id"))
	h.finish(c, v, n, err)
}

// finish answers a lifecycle action with its toast and the re-fetched list.
func (h *FaultHandler) finish(c *gin.Context, v *faults.View, n notify.Notification, err error) {
	if err != nil {
		respondError(c, fmt.Errorf("fault %s: %w", c.Param("id"), err), n)
		return
	}
	respondSuccess(c, n, v.Snapshot())
}
