package account

import (
	"net/http"

	"lab-document-tracking/internal/auth"
	"lab-document-tracking/internal/domain"
	"lab-document-tracking/internal/errors"

	"github.com/gin-gonic/gin"
)

// Handler handles login and own-profile requests
type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// LoginRequest represents login form data
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UpdateProfileRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email" binding:"omitempty,email"`
}

type LoginResponse struct {
	AccessToken string                     `json:"accessToken"`
	User        domain.SafeUser            `json:"user"`
	Institution *domain.InstitutionSummary `json:"institution"`
}

// Login handles POST /auth/login
func (h *Handler) Login(c *gin.Context) {
	var form LoginRequest
	if err := c.ShouldBindJSON(&form); err != nil {
		c.Error(errors.NewValidationError(err))
		return
	}

	found, err := h.service.Login(form.Email, form.Password)
	if err != nil {
		c.Error(err)
		return
	}

	accessToken, err := auth.GenerateJWT(found.ID, found.Email)
	if err != nil {
		c.Error(errors.Internal(err))
		return
	}

	resp := LoginResponse{
		AccessToken: accessToken,
		User:        found.ToSafeUser(),
	}
	if found.Institution != nil {
		summary := found.Institution.ToSummary()
		resp.Institution = &summary
	}

	c.JSON(http.StatusOK, gin.H{"status": true, "data": resp})
}

// GetProfile handles GET /auth/profile
func (h *Handler) GetProfile(c *gin.Context) {
	userID := c.GetUint64("user_id")

	profile, err := h.service.GetProfile(userID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": true, "data": profile})
}

// UpdateProfile handles POST /auth/profile
func (h *Handler) UpdateProfile(c *gin.Context) {
	userID := c.GetUint64("user_id")

	var form UpdateProfileRequest
	if err := c.ShouldBindJSON(&form); err != nil {
		c.Error(errors.NewValidationError(err))
		return
	}

	profile, err := h.service.UpdateProfile(userID, UpdateProfileInput{
		Name:  form.Name,
		Email: form.Email,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": true, "data": profile})
}
