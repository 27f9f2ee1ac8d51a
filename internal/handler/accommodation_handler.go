package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/sharebnb/service-reservation/internal/application"
	"github.com/sharebnb/service-reservation/internal/common/auth"
	"github.com/sharebnb/service-reservation/internal/common/middleware"
	"github.com/sharebnb/service-reservation/internal/common/response"
)

// AccommodationHandler handles HTTP requests for accommodation reads.
type AccommodationHandler struct {
	service *application.AccommodationService
}

// NewAccommodationHandler creates a new AccommodationHandler.
func NewAccommodationHandler(service *application.AccommodationService) *AccommodationHandler {
	return &AccommodationHandler{service: service}
}

// RegisterRoutes registers all accommodation routes on the given router group.
func (h *AccommodationHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	authMW := middleware.AuthMiddleware(jwtManager)

	accommodations := r.Group("/api/v1/accommodations")
	accommodations.Use(authMW)
	{
		accommodations.GET("", middleware.RequireRole(auth.RoleHost), h.GetMyAccommodations)
		accommodations.GET("/:id", h.GetAccommodation)
	}
}

// GetAccommodation handles GET /api/v1/accommodations/:id.
func (h *AccommodationHandler) GetAccommodation(c *gin.Context) {
	accommodationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid accommodation ID")
		return
	}

	result, err := h.service.GetAccommodation(c.Request.Context(), accommodationID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// GetMyAccommodations handles GET /api/v1/accommodations.
func (h *AccommodationHandler) GetMyAccommodations(c *gin.Context) {
	hostID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	result, err := h.service.GetHostAccommodations(c.Request.Context(), hostID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
