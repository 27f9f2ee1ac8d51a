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

// PictureHandler handles HTTP requests for accommodation pictures.
type PictureHandler struct {
	service *application.PictureService
}

// NewPictureHandler creates a new PictureHandler.
func NewPictureHandler(service *application.PictureService) *PictureHandler {
	return &PictureHandler{service: service}
}

// RegisterRoutes registers all picture routes on the given router group.
func (h *PictureHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	authMW := middleware.AuthMiddleware(jwtManager)

	accommodations := r.Group("/api/v1/accommodations")
	accommodations.Use(authMW)
	{
		accommodations.POST("/:id/pictures", middleware.RequireRole(auth.RoleHost), h.AttachPicture)
		accommodations.GET("/:id/pictures", h.GetGallery)
	}

	pictures := r.Group("/api/v1/pictures")
	pictures.Use(authMW)
	{
		pictures.DELETE("/:id", middleware.RequireRole(auth.RoleHost), h.RemovePicture)
	}
}

// AttachPicture handles POST /api/v1/accommodations/:id/pictures.
func (h *PictureHandler) AttachPicture(c *gin.Context) {
	accommodationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid accommodation ID")
		return
	}

	hostID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req application.AttachPictureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.AttachPicture(c.Request.Context(), hostID, accommodationID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// GetGallery handles GET /api/v1/accommodations/:id/pictures.
func (h *PictureHandler) GetGallery(c *gin.Context) {
	accommodationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid accommodation ID")
		return
	}

	result, err := h.service.GetGallery(c.Request.Context(), accommodationID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// RemovePicture handles DELETE /api/v1/pictures/:id.
func (h *PictureHandler) RemovePicture(c *gin.Context) {
	pictureID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid picture ID")
		return
	}

	hostID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	if err := h.service.RemovePicture(c.Request.Context(), hostID, pictureID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"deleted": true})
}
