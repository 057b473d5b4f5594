package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pawtrail/pawtrail-server/internal/models"
	"github.com/pawtrail/pawtrail-server/internal/service"
)

// Handler holds the service and exposes the HTTP handlers
type Handler struct {
	service service.Service
}

// NewHandler creates a new API handler
func NewHandler(svc service.Service) *Handler {
	return &Handler{service: svc}
}

// SetupRoutes registers all API routes on the router
func (h *Handler) SetupRoutes(router *gin.Engine) {
	public := router.Group("/api/auth")
	{
		public.POST("/signup", h.SignUp)
		public.POST("/join", h.Join)
		public.POST("/login", h.Login)
	}

	protected := router.Group("/api")
	protected.Use(AuthMiddleware())
	{
		protected.GET("/account", h.GetAccount)
		protected.GET("/account/dashboard", h.GetDashboard)

		protected.POST("/animals", h.CreateAnimal)
		protected.GET("/animals/:id", h.GetAnimal)
		protected.DELETE("/animals/:id", h.DeleteAnimal)
		protected.GET("/animals/:id/event-types", h.GetAnimalEventTypes)
		protected.POST("/animals/:id/track", h.TrackEventType)
		protected.POST("/animals/:id/untrack", h.UntrackEventType)
		protected.GET("/animals/:id/latest-events", h.GetLatestEvents)

		protected.POST("/events", h.CaptureEvent)
		protected.GET("/events", h.ListEvents)
		protected.DELETE("/events/:id", h.UndoEvent)

		protected.GET("/event-types", h.GetEventTypes)
		protected.POST("/event-types", h.AddEventType)
		protected.POST("/event-types/relate", h.RelateEventTypes)
		protected.GET("/event-types/:id", h.GetEventTypeDetail)
		protected.PATCH("/event-types/:id", h.UpdateEventType)
		protected.DELETE("/event-types/:id", h.DeleteEventType)

		protected.GET("/relationships/:id", h.GetRelationship)
		protected.PATCH("/relationships/:id", h.UpdateRelationship)
		protected.DELETE("/relationships/:id", h.DeleteRelationship)
	}
}

// identity reads the authenticated user and account ids set by AuthMiddleware
func identity(c *gin.Context) (accountID, userID string) {
	return c.MustGet("accountId").(string), c.MustGet("userId").(string)
}

// respondError maps service errors to HTTP status codes
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Status:  "error",
			Code:    "NOT_FOUND",
			Message: err.Error(),
		})
	case errors.Is(err, service.ErrInvalidArgument):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Status:  "error",
			Code:    "INVALID_ARGUMENT",
			Message: err.Error(),
		})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, models.ErrorResponse{
			Status:  "error",
			Code:    "FORBIDDEN",
			Message: err.Error(),
		})
	case errors.Is(err, service.ErrEmailTaken):
		c.JSON(http.StatusConflict, models.ErrorResponse{
			Status:  "error",
			Code:    "EMAIL_TAKEN",
			Message: err.Error(),
		})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{
			Status:  "error",
			Code:    "INVALID_CREDENTIALS",
			Message: "Invalid email or password",
		})
	default:
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Status:  "error",
			Code:    "INTERNAL_ERROR",
			Message: "An internal error occurred",
		})
	}
}

// respondBadRequest reports a request body that failed binding
func respondBadRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Status:  "error",
		Code:    "BAD_REQUEST",
		Message: err.Error(),
	})
}
