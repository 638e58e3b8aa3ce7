package user

import (
	"testing"

	"lab-document-tracking/internal/domain"
	apiError "lab-document-tracking/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// mock implementation of the Repository interface
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(user *domain.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockRepository) FindNewestByEmail(email string) (*domain.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockRepository) FindByID(id uint64) (*domain.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockRepository) List() ([]domain.User, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockRepository) Save(user *domain.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockRepository) Delete(id uint64) error {
	args := m.Called(id)
	return args.Error(0)
}

// Promoting to superadmin always detaches the institution, even when the
// request supplies one.
func TestUpdate_SuperadminForcesNilInstitution(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo)

	institutionID := uint64(7)
	stored := &domain.User{
		ID:            2,
		Name:          "Admin",
		Role:          domain.RoleAdmin,
		InstitutionID: &institutionID,
	}
	mockRepo.On("FindByID", uint64(2)).Return(stored, nil).Once()
	mockRepo.On("Save", mock.MatchedBy(func(u *domain.User) bool {
		return u.Role == domain.RoleSuperadmin && u.InstitutionID == nil
	})).Return(nil)
	mockRepo.On("FindByID", uint64(2)).Return(&domain.User{ID: 2, Role: domain.RoleSuperadmin}, nil)

	role := domain.RoleSuperadmin
	supplied := uint64(99)
	view, err := service.Update(2, UpdateUserInput{Role: &role, InstitutionID: &supplied})

	assert.NoError(t, err)
	assert.Equal(t, domain.RoleSuperadmin, view.Role)
	assert.Nil(t, view.Institution)
	mockRepo.AssertExpectations(t)
}

func TestUpdate_PasswordIsRehashed(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo)

	stored := &domain.User{ID: 2, Role: domain.RoleAdmin, Password: "old-hash"}
	mockRepo.On("FindByID", uint64(2)).Return(stored, nil)
	mockRepo.On("Save", mock.MatchedBy(func(u *domain.User) bool {
		return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("barurahasia")) == nil
	})).Return(nil)

	password := "barurahasia"
	_, err := service.Update(2, UpdateUserInput{Password: &password})

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestUpdate_MissingUser(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo)

	mockRepo.On("FindByID", uint64(404)).Return(nil, gorm.ErrRecordNotFound)

	_, err := service.Update(404, UpdateUserInput{})

	var apiErr *apiError.APIError
	assert.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 404, apiErr.Status)
	assert.Equal(t, "User tidak ditemukan", apiErr.Message)
}

func TestRemove_SelfDeletionForbidden(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo)

	err := service.Remove(5, 5)

	var apiErr *apiError.APIError
	assert.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 403, apiErr.Status)
	mockRepo.AssertNotCalled(t, "Delete", mock.Anything)
}

func TestRemove_OtherUser(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo)

	mockRepo.On("Delete", uint64(6)).Return(nil)

	assert.NoError(t, service.Remove(5, 6))
	mockRepo.AssertExpectations(t)
}
