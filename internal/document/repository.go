package document

import (
	"lab-document-tracking/internal/domain"

	"gorm.io/gorm"
)

// Repository defines document and historis data access. Every read or write
// on a document is scoped by institution id; only the caller-institution
// resolution itself runs unscoped.
type Repository interface {
	InstitutionIDForUser(userID uint64) (*uint64, error)
	List(institutionID uint64, page, pageSize int, status string) ([]domain.Document, int64, error)
	FindScoped(docID, institutionID uint64) (*domain.Document, error)
	ExistsScoped(docID, institutionID uint64) (bool, error)
	Create(doc *domain.Document) error
	Save(doc *domain.Document) error
	DeleteWithHistoris(docID uint64) error
	AddHistoris(docID uint64, entry *domain.Historis) error
	AttachmentURLs(docID uint64) ([]string, error)
}

type RepositoryImpl struct {
	db *gorm.DB
}

// NewRepository creates a new document repository
func NewRepository(db *gorm.DB) Repository {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) InstitutionIDForUser(userID uint64) (*uint64, error) {
	var user domain.User
	err := r.db.Select("institution_id").First(&user, userID).Error
	if err != nil {
		return nil, err
	}
	return user.InstitutionID, nil
}

// List fetches one page plus the total count inside a single transaction so
// the two reads see a consistent snapshot.
func (r *RepositoryImpl) List(institutionID uint64, page, pageSize int, status string) ([]domain.Document, int64, error) {
	var documents []domain.Document
	var total int64

	err := r.db.Transaction(func(tx *gorm.DB) error {
		query := tx.Model(&domain.Document{}).Where("institution_id = ?", institutionID)
		if status != "" {
			query = query.Where("status = ?", status)
		}

		if err := query.Count(&total).Error; err != nil {
			return err
		}

		return query.Preload("User").
			Order("created_at DESC").
			Offset((page - 1) * pageSize).
			Limit(pageSize).
			Find(&documents).Error
	})

	return documents, total, err
}

// FindScoped filters on id AND institution id in one WHERE, so a document of
// another tenant is indistinguishable from a missing one.
func (r *RepositoryImpl) FindScoped(docID, institutionID uint64) (*domain.Document, error) {
	var doc domain.Document
	err := r.db.Preload("User").
		Preload("Historis", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("waktu ASC")
		}).
		Where("id = ? AND institution_id = ?", docID, institutionID).
		First(&doc).Error
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *RepositoryImpl) ExistsScoped(docID, institutionID uint64) (bool, error) {
	var count int64
	err := r.db.Model(&domain.Document{}).
		Where("id = ? AND institution_id = ?", docID, institutionID).
		Count(&count).Error
	return count > 0, err
}

func (r *RepositoryImpl) Create(doc *domain.Document) error {
	return r.db.Create(doc).Error
}

func (r *RepositoryImpl) Save(doc *domain.Document) error {
	return r.db.Save(doc).Error
}

// DeleteWithHistoris removes the history rows and the document together
func (r *RepositoryImpl) DeleteWithHistoris(docID uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("document_id = ?", docID).Delete(&domain.Historis{}).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Document{}, docID).Error
	})
}

// AddHistoris inserts the history row and mirrors its status onto the parent
// document; the two writes succeed or fail together.
func (r *RepositoryImpl) AddHistoris(docID uint64, entry *domain.Historis) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		entry.DocumentID = docID
		if err := tx.Create(entry).Error; err != nil {
			return err
		}
		return tx.Model(&domain.Document{}).
			Where("id = ?", docID).
			Update("status", entry.Status).Error
	})
}

// AttachmentURLs lists the stored attachment urls of a document, for file
// cleanup after deletion
func (r *RepositoryImpl) AttachmentURLs(docID uint64) ([]string, error) {
	var urls []string
	err := r.db.Model(&domain.Historis{}).
		Where("document_id = ? AND attachment_url IS NOT NULL", docID).
		Pluck("attachment_url", &urls).Error
	return urls, err
}
