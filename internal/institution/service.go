package institution

import (
	"context"
	defError "errors"
	"fmt"
	"time"

	"lab-document-tracking/internal/cache"
	"lab-document-tracking/internal/domain"
	"lab-document-tracking/internal/errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const publicListLimit = 50

// RegisterInput is everything needed to open an institution together with
// its first admin account
type RegisterInput struct {
	Name          string
	Slug          string
	TrackingTitle string
	LogoURL       *string
	AdminName     string
	AdminEmail    string
	AdminPassword string
}

type RegisterResult struct {
	Institution domain.InstitutionPublic `json:"institution"`
	Admin       domain.SafeUser          `json:"admin"`
}

// UpdateInput is the partial update an admin may apply to its own
// institution. The slug is immutable and deliberately absent.
type UpdateInput struct {
	Name          *string
	TrackingTitle *string
	LogoURL       *string
}

// Service defines the institution directory operations
type Service interface {
	Register(input RegisterInput) (*RegisterResult, error)
	ListPublic(ctx context.Context) ([]domain.InstitutionPublic, error)
	FindBySlug(slug string) (*domain.InstitutionPublic, error)
	FindByUserID(userID uint64) (*domain.InstitutionPublic, error)
	UpdateForUser(userID uint64, input UpdateInput) (*domain.InstitutionPublic, error)
}

// DefaultService implements Service
type DefaultService struct {
	repository Repository
	cache      *cache.Cache
}

// NewService creates a new institution service
func NewService(repository Repository, cache *cache.Cache) Service {
	return &DefaultService{repository: repository, cache: cache}
}

// Register creates the institution and its admin atomically. A taken slug is
// a conflict and leaves the existing institution untouched.
func (s *DefaultService) Register(input RegisterInput) (*RegisterResult, error) {
	_, err := s.repository.FindBySlug(input.Slug)
	if err == nil {
		return nil, errors.Conflict("Slug instansi sudah digunakan", nil)
	}
	if !defError.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.Internal(err)
	}

	institution := domain.Institution{
		Name:          input.Name,
		Slug:          input.Slug,
		TrackingTitle: input.TrackingTitle,
		LogoURL:       input.LogoURL,
	}
	admin := domain.User{
		Name:     input.AdminName,
		Email:    input.AdminEmail,
		Password: string(hashed),
		Role:     domain.RoleAdmin,
	}

	if err := s.repository.RegisterWithAdmin(&institution, &admin); err != nil {
		return nil, err
	}

	s.cache.IncrementVersion(context.Background(), "institutions:version")

	return &RegisterResult{
		Institution: institution.ToPublic(),
		Admin:       admin.ToSafeUser(),
	}, nil
}

// ListPublic returns up to 50 institutions, newest first, public fields only
func (s *DefaultService) ListPublic(ctx context.Context) ([]domain.InstitutionPublic, error) {
	v := s.cache.GetVersion(ctx, "institutions:version")
	cacheKey := fmt.Sprintf("institutions:public:v:%d", v)

	var result []domain.InstitutionPublic
	found, _ := s.cache.Get(ctx, cacheKey, &result)
	if found {
		return result, nil
	}

	institutions, err := s.repository.ListPublic(publicListLimit)
	if err != nil {
		return nil, err
	}

	result = make([]domain.InstitutionPublic, 0, len(institutions))
	for i := range institutions {
		result = append(result, institutions[i].ToPublic())
	}

	s.cache.Set(ctx, cacheKey, result, 24*time.Hour)
	return result, nil
}

func (s *DefaultService) FindBySlug(slug string) (*domain.InstitutionPublic, error) {
	institution, err := s.repository.FindBySlug(slug)
	if err != nil {
		if defError.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NotFound("Instansi tidak ditemukan", err)
		}
		return nil, err
	}

	public := institution.ToPublic()
	return &public, nil
}

func (s *DefaultService) FindByUserID(userID uint64) (*domain.InstitutionPublic, error) {
	institution, err := s.repository.FindByUserID(userID)
	if err != nil {
		if defError.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NotFound("Instansi tidak ditemukan", err)
		}
		return nil, err
	}

	public := institution.ToPublic()
	return &public, nil
}

// UpdateForUser applies a partial update to the caller's institution
func (s *DefaultService) UpdateForUser(userID uint64, input UpdateInput) (*domain.InstitutionPublic, error) {
	institution, err := s.repository.FindByUserID(userID)
	if err != nil {
		if defError.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.Conflict("Instansi tidak ditemukan untuk user ini", err)
		}
		return nil, err
	}

	if input.Name != nil {
		institution.Name = *input.Name
	}
	if input.TrackingTitle != nil {
		institution.TrackingTitle = *input.TrackingTitle
	}
	if input.LogoURL != nil {
		institution.LogoURL = input.LogoURL
	}

	if err := s.repository.Save(institution); err != nil {
		return nil, err
	}

	s.cache.IncrementVersion(context.Background(), "institutions:version")

	public := institution.ToPublic()
	return &public, nil
}
