package document

import (
	"context"
	defError "errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"lab-document-tracking/internal/authz"
	"lab-document-tracking/internal/cache"
	"lab-document-tracking/internal/domain"
	"lab-document-tracking/internal/errors"
	"lab-document-tracking/internal/worker"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// DocumentItem is the list/detail shape with the owner summary attached
type DocumentItem struct {
	ID        uint64          `json:"id"`
	Kode      string          `json:"kode"`
	Durasi    int             `json:"durasi"`
	Status    string          `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
	User      domain.SafeUser `json:"user"`
}

type DocumentDetail struct {
	DocumentItem
	Historis []domain.Historis `json:"historis"`
}

type PaginatedDocuments struct {
	Items    []DocumentItem `json:"items"`
	Total    int64          `json:"total"`
	Page     int            `json:"page"`
	PageSize int            `json:"pageSize"`
}

type CreateInput struct {
	Kode      string
	Durasi    int
	Status    string
	CreatedAt *time.Time
	UserID    *uint64
}

type UpdateInput struct {
	Kode   *string
	Durasi *int
	Status *string
}

type HistorisInput struct {
	Status        string
	Note          *string
	AttachmentURL *string
	Waktu         *time.Time
}

// Service defines the institution-scoped document lifecycle
type Service interface {
	List(ctx context.Context, userID uint64, page, pageSize int, status string) (*PaginatedDocuments, error)
	GetDetail(ctx context.Context, userID, docID uint64) (*DocumentDetail, error)
	Create(ctx context.Context, userID uint64, input CreateInput) (*DocumentItem, error)
	Update(ctx context.Context, userID, docID uint64, input UpdateInput) (*DocumentItem, error)
	Remove(ctx context.Context, userID, docID uint64) error
	AddHistoris(ctx context.Context, userID, docID uint64, input HistorisInput) (*domain.Historis, error)
}

// DefaultService implements Service
type DefaultService struct {
	repository Repository
	cache      *cache.Cache
	pool       *worker.WorkerPool
	uploadDir  string
}

// NewService creates a new document service
func NewService(repository Repository, cache *cache.Cache, pool *worker.WorkerPool, uploadDir string) Service {
	return &DefaultService{
		repository: repository,
		cache:      cache,
		pool:       pool,
		uploadDir:  uploadDir,
	}
}

// institutionFor resolves the caller's institution; a caller without one may
// not touch documents at all.
func (s *DefaultService) institutionFor(userID uint64) (uint64, error) {
	institutionID, err := s.repository.InstitutionIDForUser(userID)
	if err != nil && !defError.Is(err, gorm.ErrRecordNotFound) {
		return 0, err
	}
	if !authz.CanOperateOnDocuments(institutionID) {
		return 0, errors.Forbidden("User tidak memiliki instansi", err)
	}
	return *institutionID, nil
}

func (s *DefaultService) List(ctx context.Context, userID uint64, page, pageSize int, status string) (*PaginatedDocuments, error) {
	institutionID, err := s.institutionFor(userID)
	if err != nil {
		return nil, err
	}

	documents, total, err := s.repository.List(institutionID, page, pageSize, status)
	if err != nil {
		return nil, err
	}

	items := make([]DocumentItem, 0, len(documents))
	for i := range documents {
		items = append(items, toItem(&documents[i]))
	}

	return &PaginatedDocuments{
		Items:    items,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

func (s *DefaultService) GetDetail(ctx context.Context, userID, docID uint64) (*DocumentDetail, error) {
	institutionID, err := s.institutionFor(userID)
	if err != nil {
		return nil, err
	}

	doc, err := s.findScoped(docID, institutionID)
	if err != nil {
		return nil, err
	}

	return &DocumentDetail{
		DocumentItem: toItem(doc),
		Historis:     doc.Historis,
	}, nil
}

func (s *DefaultService) Create(ctx context.Context, userID uint64, input CreateInput) (*DocumentItem, error) {
	institutionID, err := s.institutionFor(userID)
	if err != nil {
		return nil, err
	}

	doc := domain.Document{
		Kode:          input.Kode,
		Durasi:        input.Durasi,
		Status:        input.Status,
		CreatedAt:     time.Now(),
		UserID:        userID,
		InstitutionID: institutionID, // always the caller's, never the body's
	}
	if input.CreatedAt != nil {
		doc.CreatedAt = *input.CreatedAt
	}
	if input.UserID != nil {
		doc.UserID = *input.UserID
	}

	if err := s.repository.Create(&doc); err != nil {
		return nil, err
	}

	// reload to attach the owner summary
	created, err := s.findScoped(doc.ID, institutionID)
	if err != nil {
		return nil, err
	}

	s.bumpTracking(ctx, created.Kode)

	item := toItem(created)
	return &item, nil
}

func (s *DefaultService) Update(ctx context.Context, userID, docID uint64, input UpdateInput) (*DocumentItem, error) {
	institutionID, err := s.institutionFor(userID)
	if err != nil {
		return nil, err
	}

	doc, err := s.findScoped(docID, institutionID)
	if err != nil {
		return nil, err
	}

	oldKode := doc.Kode
	if input.Kode != nil {
		doc.Kode = *input.Kode
	}
	if input.Durasi != nil {
		doc.Durasi = *input.Durasi
	}
	if input.Status != nil {
		doc.Status = *input.Status
	}

	// Save would write the preloaded associations too
	doc.User = domain.User{}
	doc.Historis = nil
	if err := s.repository.Save(doc); err != nil {
		return nil, err
	}

	updated, err := s.findScoped(docID, institutionID)
	if err != nil {
		return nil, err
	}

	s.bumpTracking(ctx, oldKode)
	if updated.Kode != oldKode {
		s.bumpTracking(ctx, updated.Kode)
	}

	item := toItem(updated)
	return &item, nil
}

// Remove deletes the document with its whole history; the attachment files
// on disk are removed afterwards by the worker pool.
func (s *DefaultService) Remove(ctx context.Context, userID, docID uint64) error {
	institutionID, err := s.institutionFor(userID)
	if err != nil {
		return err
	}

	doc, err := s.findScoped(docID, institutionID)
	if err != nil {
		return err
	}

	urls, err := s.repository.AttachmentURLs(docID)
	if err != nil {
		return err
	}

	if err := s.repository.DeleteWithHistoris(docID); err != nil {
		return err
	}

	s.bumpTracking(ctx, doc.Kode)
	s.cleanupAttachments(urls)

	return nil
}

// AddHistoris appends a status entry and mirrors its status onto the parent
// document. Concurrent appends are last-commit-wins on the mirrored status.
func (s *DefaultService) AddHistoris(ctx context.Context, userID, docID uint64, input HistorisInput) (*domain.Historis, error) {
	institutionID, err := s.institutionFor(userID)
	if err != nil {
		return nil, err
	}

	doc, err := s.findScoped(docID, institutionID)
	if err != nil {
		return nil, err
	}

	entry := domain.Historis{
		Status:        input.Status,
		Note:          input.Note,
		AttachmentURL: input.AttachmentURL,
		Waktu:         time.Now(),
	}
	if input.Waktu != nil {
		entry.Waktu = *input.Waktu
	}

	if err := s.repository.AddHistoris(docID, &entry); err != nil {
		return nil, err
	}

	s.bumpTracking(ctx, doc.Kode)

	return &entry, nil
}

func (s *DefaultService) findScoped(docID, institutionID uint64) (*domain.Document, error) {
	doc, err := s.repository.FindScoped(docID, institutionID)
	if err != nil {
		if defError.Is(err, gorm.ErrRecordNotFound) {
			// same message whether absent or another tenant's
			return nil, errors.NotFound("Dokumen tidak ditemukan", err)
		}
		return nil, err
	}
	return doc, nil
}

// bumpTracking invalidates the public tracking cache for a kode
func (s *DefaultService) bumpTracking(ctx context.Context, kode string) {
	s.cache.IncrementVersion(ctx, fmt.Sprintf("tracking:%s:version", kode))
}

func (s *DefaultService) cleanupAttachments(urls []string) {
	if len(urls) == 0 || s.pool == nil {
		return
	}
	uploadDir := s.uploadDir
	s.pool.Submit(func(ctx context.Context) error {
		for _, url := range urls {
			rel, ok := strings.CutPrefix(url, "/uploads/")
			if !ok {
				continue
			}
			path := filepath.Join(uploadDir, filepath.FromSlash(rel))
			if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
				log.Warn().Err(err).Str("path", path).Msg("attachment cleanup failed")
			}
		}
		return nil
	})
}

func toItem(doc *domain.Document) DocumentItem {
	return DocumentItem{
		ID:        doc.ID,
		Kode:      doc.Kode,
		Durasi:    doc.Durasi,
		Status:    doc.Status,
		CreatedAt: doc.CreatedAt,
		User:      doc.User.ToSafeUser(),
	}
}
