package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pawtrail/pawtrail-server/internal/models"
)

// CaptureEvent appends an event attributed to the caller
func (h *Handler) CaptureEvent(c *gin.Context) {
	accountID, userID := identity(c)

	var req models.CaptureEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	resp, err := h.service.CaptureEvent(c.Request.Context(), accountID, userID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// ListEvents returns events grouped by event type. The animalId query
// selects an animal's events; omitted it selects household-level events.
func (h *Handler) ListEvents(c *gin.Context) {
	accountID, _ := identity(c)

	resp, err := h.service.ListEvents(c.Request.Context(), accountID, c.Query("animalId"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// UndoEvent deletes a freshly captured event of the caller's own
func (h *Handler) UndoEvent(c *gin.Context) {
	accountID, userID := identity(c)

	if err := h.service.UndoEvent(c.Request.Context(), accountID, userID, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.StatusResponse{Status: "success"})
}
