package account

import (
	"testing"

	"lab-document-tracking/internal/domain"
	apiError "lab-document-tracking/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// mock implementation of the user repository
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

func hashOf(t *testing.T, password string) string {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)
	return string(hashed)
}

func TestLogin_Success(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo)

	institutionID := uint64(7)
	stored := &domain.User{
		ID:            1,
		Name:          "Admin Lab",
		Email:         "admin@lab.test",
		Password:      hashOf(t, "rahasia1"),
		InstitutionID: &institutionID,
		Institution:   &domain.Institution{ID: 7, Name: "Lab Kimia", Slug: "lab-kimia"},
	}
	mockRepo.On("FindNewestByEmail", "admin@lab.test").Return(stored, nil)

	found, err := service.Login("admin@lab.test", "rahasia1")

	assert.NoError(t, err)
	assert.Equal(t, uint64(1), found.ID)
	assert.Equal(t, uint64(7), found.Institution.ID)
	mockRepo.AssertExpectations(t)
}

// Unknown email and wrong password must be indistinguishable to the caller
func TestLogin_UniformFailureMessage(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo)

	mockRepo.On("FindNewestByEmail", "ghost@lab.test").Return(nil, gorm.ErrRecordNotFound)
	stored := &domain.User{ID: 1, Email: "admin@lab.test", Password: hashOf(t, "rahasia1")}
	mockRepo.On("FindNewestByEmail", "admin@lab.test").Return(stored, nil)

	_, unknownErr := service.Login("ghost@lab.test", "whatever")
	_, wrongErr := service.Login("admin@lab.test", "salah")

	var unknownAPI, wrongAPI *apiError.APIError
	assert.ErrorAs(t, unknownErr, &unknownAPI)
	assert.ErrorAs(t, wrongErr, &wrongAPI)
	assert.Equal(t, 401, unknownAPI.Status)
	assert.Equal(t, 401, wrongAPI.Status)
	assert.Equal(t, unknownAPI.Message, wrongAPI.Message)
}

func TestUpdateProfile_PartialUpdateKeepsEmail(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo)

	stored := &domain.User{ID: 3, Name: "Lama", Email: "tetap@lab.test"}
	mockRepo.On("FindByID", uint64(3)).Return(stored, nil)
	mockRepo.On("Save", mock.MatchedBy(func(u *domain.User) bool {
		return u.Name == "Baru" && u.Email == "tetap@lab.test"
	})).Return(nil)

	name := "Baru"
	profile, err := service.UpdateProfile(3, UpdateProfileInput{Name: &name})

	assert.NoError(t, err)
	assert.Equal(t, "Baru", profile.User.Name)
	assert.Equal(t, "tetap@lab.test", profile.User.Email)
	mockRepo.AssertExpectations(t)
}

func TestGetProfile_Missing(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo)

	mockRepo.On("FindByID", uint64(9)).Return(nil, gorm.ErrRecordNotFound)

	_, err := service.GetProfile(9)

	var apiErr *apiError.APIError
	assert.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 404, apiErr.Status)
}
