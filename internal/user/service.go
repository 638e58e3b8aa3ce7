package user

import (
	defError "errors"

	"lab-document-tracking/internal/authz"
	"lab-document-tracking/internal/domain"
	"lab-document-tracking/internal/errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UpdateUserInput carries the partial update a superadmin may apply. Nil
// fields are left untouched.
type UpdateUserInput struct {
	Name          *string
	Email         *string
	Role          *string
	InstitutionID *uint64
	Password      *string
}

// Service defines the superadmin user-administration operations
type Service interface {
	List() ([]domain.AdminUserView, error)
	Update(userID uint64, input UpdateUserInput) (*domain.AdminUserView, error)
	Remove(requestorID, userID uint64) error
	GetUserByID(id uint64) (*domain.User, error)
}

// DefaultService implements Service
type DefaultService struct {
	repository Repository
}

// NewService creates a new user service
func NewService(repository Repository) Service {
	return &DefaultService{repository: repository}
}

func (s *DefaultService) List() ([]domain.AdminUserView, error) {
	users, err := s.repository.List()
	if err != nil {
		return nil, err
	}

	views := make([]domain.AdminUserView, 0, len(users))
	for i := range users {
		views = append(views, users[i].ToAdminView())
	}
	return views, nil
}

// Update applies a partial update. Promoting a user to superadmin always
// detaches it from its institution, regardless of any supplied id.
func (s *DefaultService) Update(userID uint64, input UpdateUserInput) (*domain.AdminUserView, error) {
	user, err := s.repository.FindByID(userID)
	if err != nil {
		if defError.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NotFound("User tidak ditemukan", err)
		}
		return nil, err
	}

	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Email != nil {
		user.Email = *input.Email
	}
	if input.Role != nil {
		user.Role = *input.Role
	}
	if user.Role == domain.RoleSuperadmin {
		user.InstitutionID = nil
		user.Institution = nil
	} else if input.InstitutionID != nil {
		user.InstitutionID = input.InstitutionID
		user.Institution = nil
	}
	if input.Password != nil && *input.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, errors.Internal(err)
		}
		user.Password = string(hashed)
	}

	if err := s.repository.Save(user); err != nil {
		return nil, err
	}

	// reload to pick up the institution summary
	updated, err := s.repository.FindByID(userID)
	if err != nil {
		return nil, err
	}
	view := updated.ToAdminView()
	return &view, nil
}

// Remove deletes a user unconditionally except for the self-deletion guard
func (s *DefaultService) Remove(requestorID, userID uint64) error {
	if !authz.CanDeleteUser(requestorID, userID) {
		return errors.Forbidden("Tidak bisa menghapus akun sendiri", nil)
	}
	return s.repository.Delete(userID)
}

func (s *DefaultService) GetUserByID(id uint64) (*domain.User, error) {
	return s.repository.FindByID(id)
}
