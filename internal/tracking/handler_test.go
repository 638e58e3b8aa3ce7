package tracking

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"lab-document-tracking/internal/domain"
	apiError "lab-document-tracking/internal/errors"
	"lab-document-tracking/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// mock implementation of the Service interface
type MockService struct {
	mock.Mock
}

func (m *MockService) FindByKode(ctx context.Context, kode string) (*Result, error) {
	args := m.Called(kode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Result), args.Error(1)
}

func (m *MockService) FindAllDocuments() ([]domain.Document, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Document), args.Error(1)
}

func setupRouter(handler *Handler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.ErrorHandler())
	router.GET("/tracking", handler.GetTracking)
	return router
}

func TestGetTracking_MissingKode(t *testing.T) {
	mockService := new(MockService)
	router := setupRouter(NewHandler(mockService))

	req := httptest.NewRequest("GET", "/tracking", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, false, response["status"])
	assert.Equal(t, "Parameter kode wajib diisi", response["message"])
	mockService.AssertNotCalled(t, "FindByKode", mock.Anything)
}

func TestGetTracking_NotFound(t *testing.T) {
	mockService := new(MockService)
	router := setupRouter(NewHandler(mockService))

	mockService.On("FindByKode", "GHOST").
		Return(nil, apiError.NotFound("Data tidak ditemukan", nil))

	req := httptest.NewRequest("GET", "/tracking?kode=GHOST", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "Data tidak ditemukan", response["message"])
}

func TestGetTracking_Success(t *testing.T) {
	mockService := new(MockService)
	router := setupRouter(NewHandler(mockService))

	owner := domain.SafeUser{ID: 3, Name: "Admin Lab"}
	mockService.On("FindByKode", "DOC-001").Return(&Result{
		ID:     11,
		Kode:   "DOC-001",
		Status: domain.StatusProses,
		User:   &owner,
	}, nil)

	req := httptest.NewRequest("GET", "/tracking?kode=DOC-001", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Status bool   `json:"status"`
		Data   Result `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.True(t, response.Status)
	assert.Equal(t, "DOC-001", response.Data.Kode)
	assert.Equal(t, "Admin Lab", response.Data.User.Name)
	mockService.AssertExpectations(t)
}
