package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetAccount returns the caller's account with its animals and joining code
func (h *Handler) GetAccount(c *gin.Context) {
	accountID, userID := identity(c)

	resp, err := h.service.CurrentAccount(c.Request.Context(), accountID, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetDashboard returns the aggregated account overview
func (h *Handler) GetDashboard(c *gin.Context) {
	accountID, _ := identity(c)

	resp, err := h.service.Dashboard(c.Request.Context(), accountID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
