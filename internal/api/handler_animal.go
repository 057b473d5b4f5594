package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pawtrail/pawtrail-server/internal/models"
)

// CreateAnimal adds an animal to the caller's account
func (h *Handler) CreateAnimal(c *gin.Context) {
	accountID, _ := identity(c)

	var req models.CreateAnimalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	resp, err := h.service.CreateAnimal(c.Request.Context(), accountID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// GetAnimal returns a single animal
func (h *Handler) GetAnimal(c *gin.Context) {
	accountID, _ := identity(c)

	resp, err := h.service.GetAnimal(c.Request.Context(), accountID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// DeleteAnimal removes an animal with its events and tracking rows
func (h *Handler) DeleteAnimal(c *gin.Context) {
	accountID, _ := identity(c)

	if err := h.service.DeleteAnimal(c.Request.Context(), accountID, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.StatusResponse{Status: "success"})
}

// GetAnimalEventTypes returns the tracked and available event types
func (h *Handler) GetAnimalEventTypes(c *gin.Context) {
	accountID, _ := identity(c)

	resp, err := h.service.AnimalEventTypes(c.Request.Context(), accountID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// TrackEventType starts tracking an event type on the animal
func (h *Handler) TrackEventType(c *gin.Context) {
	accountID, _ := identity(c)

	var req models.TrackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	if err := h.service.TrackEventType(c.Request.Context(), accountID, c.Param("id"), req.EventTypeID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.StatusResponse{Status: "success"})
}

// UntrackEventType stops tracking an event type on the animal
func (h *Handler) UntrackEventType(c *gin.Context) {
	accountID, _ := identity(c)

	var req models.TrackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	if err := h.service.UntrackEventType(c.Request.Context(), accountID, c.Param("id"), req.EventTypeID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.StatusResponse{Status: "success"})
}

// GetLatestEvents returns, per tracked type, the latest event and today's events
func (h *Handler) GetLatestEvents(c *gin.Context) {
	accountID, _ := identity(c)

	resp, err := h.service.LatestEventsForAnimal(c.Request.Context(), accountID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
