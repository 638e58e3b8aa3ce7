package account

import (
	defError "errors"

	"lab-document-tracking/internal/domain"
	"lab-document-tracking/internal/errors"
	"lab-document-tracking/internal/user"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Profile is the sanitized user + institution pair returned by the
// credential endpoints
type Profile struct {
	User        domain.SafeUser            `json:"user"`
	Institution *domain.InstitutionSummary `json:"institution"`
}

// UpdateProfileInput carries the partial profile update; nil fields are
// left untouched
type UpdateProfileInput struct {
	Name  *string
	Email *string
}

// Service defines the credential and own-profile operations
type Service interface {
	Login(email, password string) (*domain.User, error)
	GetProfile(userID uint64) (*Profile, error)
	UpdateProfile(userID uint64, input UpdateProfileInput) (*Profile, error)
}

// DefaultService implements Service
type DefaultService struct {
	repository user.Repository
}

// NewService creates a new account service
func NewService(repository user.Repository) Service {
	return &DefaultService{repository: repository}
}

// Login verifies the credentials against the newest account for the email.
// Unknown email and wrong password fail identically so the response never
// reveals which one it was.
func (s *DefaultService) Login(email, password string) (*domain.User, error) {
	found, err := s.repository.FindNewestByEmail(email)
	if err != nil {
		if defError.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.Unauthorized("Email atau password salah", nil)
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(found.Password), []byte(password)); err != nil {
		return nil, errors.Unauthorized("Email atau password salah", err)
	}

	return found, nil
}

func (s *DefaultService) GetProfile(userID uint64) (*Profile, error) {
	found, err := s.repository.FindByID(userID)
	if err != nil {
		if defError.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NotFound("User tidak ditemukan", err)
		}
		return nil, err
	}

	return toProfile(found), nil
}

func (s *DefaultService) UpdateProfile(userID uint64, input UpdateProfileInput) (*Profile, error) {
	found, err := s.repository.FindByID(userID)
	if err != nil {
		if defError.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NotFound("User tidak ditemukan", err)
		}
		return nil, err
	}

	if input.Name != nil {
		found.Name = *input.Name
	}
	if input.Email != nil {
		found.Email = *input.Email
	}

	if err := s.repository.Save(found); err != nil {
		return nil, err
	}

	return toProfile(found), nil
}

func toProfile(u *domain.User) *Profile {
	profile := &Profile{User: u.ToSafeUser()}
	if u.Institution != nil {
		summary := u.Institution.ToSummary()
		profile.Institution = &summary
	}
	return profile
}
