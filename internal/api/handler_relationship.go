package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pawtrail/pawtrail-server/internal/models"
)

// GetRelationship returns the relationship with its current evaluation
func (h *Handler) GetRelationship(c *gin.Context) {
	accountID, _ := identity(c)

	resp, err := h.service.GetRelationship(c.Request.Context(), accountID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// UpdateRelationship applies a partial update to name or comparison baseline
func (h *Handler) UpdateRelationship(c *gin.Context) {
	accountID, _ := identity(c)

	var req models.UpdateRelationshipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	if err := h.service.UpdateRelationship(c.Request.Context(), accountID, c.Param("id"), req); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.StatusResponse{Status: "success"})
}

// DeleteRelationship removes the relationship, leaving its event types alone
func (h *Handler) DeleteRelationship(c *gin.Context) {
	accountID, _ := identity(c)

	if err := h.service.DeleteRelationship(c.Request.Context(), accountID, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.StatusResponse{Status: "success"})
}
