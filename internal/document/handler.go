package document

import (
	defError "errors"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"lab-document-tracking/internal/config"
	"lab-document-tracking/internal/domain"
	"lab-document-tracking/internal/errors"
	"lab-document-tracking/internal/utils"

	"github.com/gin-gonic/gin"
)

// Handler handles the institution-scoped document endpoints
type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

type CreateRequest struct {
	Kode      string     `json:"kode" binding:"required"`
	Durasi    int        `json:"durasi" binding:"required,min=1"`
	Status    string     `json:"status" binding:"required"`
	CreatedAt *time.Time `json:"createdAt"`
	UserID    *uint64    `json:"userId"`
}

type UpdateRequest struct {
	Kode   *string `json:"kode"`
	Durasi *int    `json:"durasi" binding:"omitempty,min=1"`
	Status *string `json:"status"`
}

type AddHistorisRequest struct {
	Status string     `json:"status"`
	Note   *string    `json:"note"`
	Waktu  *time.Time `json:"waktu"`
}

// List handles GET /admin/documents
func (h *Handler) List(c *gin.Context) {
	userID := c.GetUint64("user_id")
	page, pageSize := utils.GetPaginationParams(c)
	status := strings.TrimSpace(c.Query("status"))

	data, err := h.service.List(c.Request.Context(), userID, page, pageSize, status)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": true, "data": data})
}

// Detail handles GET /admin/documents/:id
func (h *Handler) Detail(c *gin.Context) {
	docID, err := parseDocID(c)
	if err != nil {
		c.Error(err)
		return
	}
	userID := c.GetUint64("user_id")

	data, err := h.service.GetDetail(c.Request.Context(), userID, docID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": true, "data": data})
}

// Create handles POST /admin/documents
func (h *Handler) Create(c *gin.Context) {
	var form CreateRequest
	if err := c.ShouldBindJSON(&form); err != nil {
		c.Error(errors.NewValidationError(err))
		return
	}

	userID := c.GetUint64("user_id")
	data, err := h.service.Create(c.Request.Context(), userID, CreateInput{
		Kode:      form.Kode,
		Durasi:    form.Durasi,
		Status:    form.Status,
		CreatedAt: form.CreatedAt,
		UserID:    form.UserID,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"status": true, "data": data})
}

// Update handles PATCH /admin/documents/:id
func (h *Handler) Update(c *gin.Context) {
	docID, err := parseDocID(c)
	if err != nil {
		c.Error(err)
		return
	}

	var form UpdateRequest
	if err := c.ShouldBindJSON(&form); err != nil {
		c.Error(errors.NewValidationError(err))
		return
	}

	userID := c.GetUint64("user_id")
	data, err := h.service.Update(c.Request.Context(), userID, docID, UpdateInput{
		Kode:   form.Kode,
		Durasi: form.Durasi,
		Status: form.Status,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": true, "data": data})
}

// Remove handles DELETE /admin/documents/:id
func (h *Handler) Remove(c *gin.Context) {
	docID, err := parseDocID(c)
	if err != nil {
		c.Error(err)
		return
	}

	userID := c.GetUint64("user_id")
	if err := h.service.Remove(c.Request.Context(), userID, docID); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": true, "message": "Dokumen dihapus"})
}

// AddHistoris handles POST /admin/documents/:id/historis. The request is
// multipart when an attachment accompanies the status, plain JSON otherwise.
// A "selesai" status always requires a PDF attachment.
func (h *Handler) AddHistoris(c *gin.Context) {
	docID, err := parseDocID(c)
	if err != nil {
		c.Error(err)
		return
	}
	userID := c.GetUint64("user_id")

	input, file, err := bindHistoris(c)
	if err != nil {
		c.Error(err)
		return
	}

	if input.Status == "" {
		c.Error(errors.BadRequest("Status wajib diisi", nil))
		return
	}
	if input.Status == domain.StatusSelesai && file == nil {
		c.Error(errors.BadRequest("Upload PDF wajib untuk status selesai", nil))
		return
	}

	if file != nil {
		url, err := savePDF(c, file, config.AppConfig.UploadDir)
		if err != nil {
			c.Error(err)
			return
		}
		input.AttachmentURL = &url
	}

	data, err := h.service.AddHistoris(c.Request.Context(), userID, docID, *input)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"status": true, "data": data})
}

func bindHistoris(c *gin.Context) (*HistorisInput, *multipart.FileHeader, error) {
	if c.ContentType() != "multipart/form-data" {
		var form AddHistorisRequest
		if err := c.ShouldBindJSON(&form); err != nil {
			return nil, nil, errors.NewValidationError(err)
		}
		return &HistorisInput{
			Status: strings.TrimSpace(form.Status),
			Note:   form.Note,
			Waktu:  form.Waktu,
		}, nil, nil
	}

	input := HistorisInput{
		Status: strings.TrimSpace(c.PostForm("status")),
	}
	if note := c.PostForm("note"); note != "" {
		input.Note = &note
	}
	if raw := c.PostForm("waktu"); raw != "" {
		waktu, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return nil, nil, errors.BadRequest("Format waktu tidak valid", err)
		}
		input.Waktu = &waktu
	}

	file, err := c.FormFile("file")
	if err != nil {
		if defError.Is(err, http.ErrMissingFile) {
			return &input, nil, nil
		}
		return nil, nil, errors.BadRequest("File tidak dapat dibaca", err)
	}
	return &input, file, nil
}

// an unparseable id is reported exactly like a missing document
func parseDocID(c *gin.Context) (uint64, error) {
	docID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, errors.NotFound("Dokumen tidak ditemukan", err)
	}
	return docID, nil
}
