package user

import (
	"bytes"
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

func (m *MockService) List() ([]domain.AdminUserView, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AdminUserView), args.Error(1)
}

func (m *MockService) Update(userID uint64, input UpdateUserInput) (*domain.AdminUserView, error) {
	args := m.Called(userID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AdminUserView), args.Error(1)
}

func (m *MockService) Remove(requestorID, userID uint64) error {
	args := m.Called(requestorID, userID)
	return args.Error(0)
}

func (m *MockService) GetUserByID(id uint64) (*domain.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func setupRouter(role string, userID uint64) (*gin.Engine, *gin.RouterGroup) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.ErrorHandler())
	group := router.Group("/admin/users", func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Set("user_role", role)
	}, middleware.SuperadminOnly())
	return router, group
}

func TestListHandler_AdminIsForbidden(t *testing.T) {
	mockService := new(MockService)
	handler := NewHandler(mockService)
	router, group := setupRouter(domain.RoleAdmin, 1)
	group.GET("", handler.List)

	req := httptest.NewRequest("GET", "/admin/users", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, false, response["status"])
	assert.Equal(t, "Akses khusus superadmin", response["message"])
	mockService.AssertNotCalled(t, "List")
}

func TestListHandler_Superadmin(t *testing.T) {
	mockService := new(MockService)
	handler := NewHandler(mockService)
	router, group := setupRouter(domain.RoleSuperadmin, 1)
	group.GET("", handler.List)

	mockService.On("List").Return([]domain.AdminUserView{
		{ID: 2, Name: "Admin Lab", Email: "admin@lab.test", Role: domain.RoleAdmin},
	}, nil)

	req := httptest.NewRequest("GET", "/admin/users", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Status bool                   `json:"status"`
		Data   []domain.AdminUserView `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.True(t, response.Status)
	assert.Len(t, response.Data, 1)
	mockService.AssertExpectations(t)
}

func TestUpdateHandler_InvalidRoleValue(t *testing.T) {
	mockService := new(MockService)
	handler := NewHandler(mockService)
	router, group := setupRouter(domain.RoleSuperadmin, 1)
	group.PATCH("/:id", handler.Update)

	body, _ := json.Marshal(gin.H{"role": "root"})
	req := httptest.NewRequest("PATCH", "/admin/users/2", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	mockService.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestRemoveHandler_Success(t *testing.T) {
	mockService := new(MockService)
	handler := NewHandler(mockService)
	router, group := setupRouter(domain.RoleSuperadmin, 1)
	group.DELETE("/:id", handler.Remove)

	mockService.On("Remove", uint64(1), uint64(2)).Return(nil)

	req := httptest.NewRequest("DELETE", "/admin/users/2", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, true, response["status"])
	assert.Equal(t, "User dihapus", response["message"])
	mockService.AssertExpectations(t)
}

func TestRemoveHandler_SelfDeletion(t *testing.T) {
	mockService := new(MockService)
	handler := NewHandler(mockService)
	router, group := setupRouter(domain.RoleSuperadmin, 1)
	group.DELETE("/:id", handler.Remove)

	mockService.On("Remove", uint64(1), uint64(1)).
		Return(apiError.Forbidden("Tidak bisa menghapus akun sendiri", nil))

	req := httptest.NewRequest("DELETE", "/admin/users/1", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "Tidak bisa menghapus akun sendiri", response["message"])
}
