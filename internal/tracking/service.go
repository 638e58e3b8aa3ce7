package tracking

import (
	"context"
	defError "errors"
	"fmt"
	"time"

	"lab-document-tracking/internal/cache"
	"lab-document-tracking/internal/domain"
	"lab-document-tracking/internal/errors"

	"gorm.io/gorm"
)

// Result is the composite public view of one tracked document. User and
// institution may be null when the owning rows have since been removed;
// the three lookups are independent reads.
type Result struct {
	ID          uint64                     `json:"id"`
	Kode        string                     `json:"kode"`
	Status      string                     `json:"status"`
	Durasi      int                        `json:"durasi"`
	CreatedAt   time.Time                  `json:"created_at"`
	User        *domain.SafeUser           `json:"user"`
	Historis    []domain.Historis          `json:"historis"`
	Institution *domain.InstitutionSummary `json:"institution"`
}

// Service defines the public tracking operations
type Service interface {
	FindByKode(ctx context.Context, kode string) (*Result, error)
	FindAllDocuments() ([]domain.Document, error)
}

// DefaultService implements Service
type DefaultService struct {
	repository Repository
	cache      *cache.Cache
}

// NewService creates a new tracking service
func NewService(repository Repository, cache *cache.Cache) Service {
	return &DefaultService{repository: repository, cache: cache}
}

// FindByKode assembles the composite view. Cached per kode; document
// mutations bump the version key so the next lookup rebuilds it.
func (s *DefaultService) FindByKode(ctx context.Context, kode string) (*Result, error) {
	v := s.cache.GetVersion(ctx, fmt.Sprintf("tracking:%s:version", kode))
	cacheKey := fmt.Sprintf("tracking:%s:v:%d", kode, v)

	var cached Result
	found, _ := s.cache.Get(ctx, cacheKey, &cached)
	if found {
		return &cached, nil
	}

	doc, err := s.repository.FindDocumentByKode(kode)
	if err != nil {
		if defError.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NotFound("Data tidak ditemukan", err)
		}
		return nil, err
	}

	result := Result{
		ID:        doc.ID,
		Kode:      doc.Kode,
		Status:    doc.Status,
		Durasi:    doc.Durasi,
		CreatedAt: doc.CreatedAt,
	}

	if owner, err := s.repository.FindUser(doc.UserID); err == nil {
		safe := owner.ToSafeUser()
		result.User = &safe
	}

	historis, err := s.repository.HistorisForDocument(doc.ID)
	if err != nil {
		return nil, err
	}
	result.Historis = historis

	if institution, err := s.repository.FindInstitution(doc.InstitutionID); err == nil {
		summary := institution.ToSummary()
		result.Institution = &summary
	}

	s.cache.Set(ctx, cacheKey, result, time.Hour)
	return &result, nil
}

func (s *DefaultService) FindAllDocuments() ([]domain.Document, error) {
	return s.repository.AllDocuments()
}
