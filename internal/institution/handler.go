package institution

import (
	"net/http"

	"lab-document-tracking/internal/errors"

	"github.com/gin-gonic/gin"
)

// Handler handles institution directory requests
type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

type RegisterRequest struct {
	Name          string  `json:"name" binding:"required"`
	Slug          string  `json:"slug" binding:"required,lowercase"`
	TrackingTitle string  `json:"trackingTitle" binding:"required"`
	LogoURL       *string `json:"logoUrl"`
	AdminName     string  `json:"adminName" binding:"required"`
	AdminEmail    string  `json:"adminEmail" binding:"required,email"`
	AdminPassword string  `json:"adminPassword" binding:"required,min=6"`
}

type UpdateRequest struct {
	Name          *string `json:"name"`
	TrackingTitle *string `json:"trackingTitle"`
	LogoURL       *string `json:"logoUrl"`
}

// Register handles POST /institutions/register
func (h *Handler) Register(c *gin.Context) {
	var form RegisterRequest
	if err := c.ShouldBindJSON(&form); err != nil {
		c.Error(errors.NewValidationError(err))
		return
	}

	data, err := h.service.Register(RegisterInput{
		Name:          form.Name,
		Slug:          form.Slug,
		TrackingTitle: form.TrackingTitle,
		LogoURL:       form.LogoURL,
		AdminName:     form.AdminName,
		AdminEmail:    form.AdminEmail,
		AdminPassword: form.AdminPassword,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"status": true, "data": data})
}

// List handles GET /institutions (public)
func (h *Handler) List(c *gin.Context) {
	data, err := h.service.ListPublic(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": true, "data": data})
}

// FindBySlug handles GET /institutions/:slug (public)
func (h *Handler) FindBySlug(c *gin.Context) {
	data, err := h.service.FindBySlug(c.Param("slug"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": true, "data": data})
}

// Me handles GET /institutions/me
func (h *Handler) Me(c *gin.Context) {
	userID := c.GetUint64("user_id")

	data, err := h.service.FindByUserID(userID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": true, "data": data})
}

// UpdateMe handles PATCH /institutions/me
func (h *Handler) UpdateMe(c *gin.Context) {
	userID := c.GetUint64("user_id")

	var form UpdateRequest
	if err := c.ShouldBindJSON(&form); err != nil {
		c.Error(errors.NewValidationError(err))
		return
	}

	data, err := h.service.UpdateForUser(userID, UpdateInput{
		Name:          form.Name,
		TrackingTitle: form.TrackingTitle,
		LogoURL:       form.LogoURL,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": true, "data": data})
}
