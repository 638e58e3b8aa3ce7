package tracking

import (
	"net/http"
	"strings"

	"lab-document-tracking/internal/errors"

	"github.com/gin-gonic/gin"
)

// Handler handles the public tracking endpoints
type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// GetTracking handles GET /tracking?kode=
func (h *Handler) GetTracking(c *gin.Context) {
	kode := strings.TrimSpace(c.Query("kode"))
	if kode == "" {
		c.Error(errors.BadRequest("Parameter kode wajib diisi", nil))
		return
	}

	data, err := h.service.FindByKode(c.Request.Context(), kode)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": true, "data": data})
}

// GetAll dumps every document. Diagnostic only; the route is registered only
// when the tracking dump flag is enabled.
func (h *Handler) GetAll(c *gin.Context) {
	data, err := h.service.FindAllDocuments()
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": true, "data": data})
}
