package user

import (
	"net/http"
	"strconv"

	"lab-document-tracking/internal/errors"

	"github.com/gin-gonic/gin"
)

// Handler handles the superadmin user-administration endpoints
type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

type UpdateUserRequest struct {
	Name          *string `json:"name"`
	Email         *string `json:"email" binding:"omitempty,email"`
	Role          *string `json:"role" binding:"omitempty,oneof=admin superadmin"`
	InstitutionID *uint64 `json:"institutionId"`
	Password      *string `json:"password" binding:"omitempty,min=6"`
}

func (h *Handler) List(c *gin.Context) {
	data, err := h.service.List()
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": true, "data": data})
}

func (h *Handler) Update(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(errors.NotFound("User tidak ditemukan", err))
		return
	}

	var form UpdateUserRequest
	if err := c.ShouldBindJSON(&form); err != nil {
		c.Error(errors.NewValidationError(err))
		return
	}

	data, err := h.service.Update(userID, UpdateUserInput{
		Name:          form.Name,
		Email:         form.Email,
		Role:          form.Role,
		InstitutionID: form.InstitutionID,
		Password:      form.Password,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": true, "data": data})
}

func (h *Handler) Remove(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(errors.NotFound("User tidak ditemukan", err))
		return
	}

	requestorID := c.GetUint64("user_id")
	if err := h.service.Remove(requestorID, userID); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": true, "message": "User dihapus"})
}
