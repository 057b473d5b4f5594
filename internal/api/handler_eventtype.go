package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pawtrail/pawtrail-server/internal/models"
)

// GetEventTypes lists the account's event types and relationships
func (h *Handler) GetEventTypes(c *gin.Context) {
	accountID, _ := identity(c)

	resp, err := h.service.AllEventTypes(c.Request.Context(), accountID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetEventTypeDetail returns a type with its animals, relationships,
// recent events and per-user capture counts
func (h *Handler) GetEventTypeDetail(c *gin.Context) {
	accountID, _ := identity(c)

	resp, err := h.service.GetEventTypeDetail(c.Request.Context(), accountID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// AddEventType creates a new event type in the account
func (h *Handler) AddEventType(c *gin.Context) {
	accountID, _ := identity(c)

	var req models.AddEventTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	resp, err := h.service.AddEventType(c.Request.Context(), accountID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// UpdateEventType renames an event type
func (h *Handler) UpdateEventType(c *gin.Context) {
	accountID, _ := identity(c)

	var req models.UpdateEventTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	if err := h.service.UpdateEventType(c.Request.Context(), accountID, c.Param("id"), req); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.StatusResponse{Status: "success"})
}

// DeleteEventType removes the type, its events and its relationships
func (h *Handler) DeleteEventType(c *gin.Context) {
	accountID, _ := identity(c)

	if err := h.service.DeleteEventType(c.Request.Context(), accountID, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.StatusResponse{Status: "success"})
}

// RelateEventTypes creates a relationship between two event types
func (h *Handler) RelateEventTypes(c *gin.Context) {
	accountID, _ := identity(c)

	var req models.RelateEventTypesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	resp, err := h.service.RelateEventTypes(c.Request.Context(), accountID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}
