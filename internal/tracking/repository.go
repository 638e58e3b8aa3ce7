package tracking

import (
	"lab-document-tracking/internal/domain"

	"gorm.io/gorm"
)

// Repository defines the unscoped reads behind the public tracking view
type Repository interface {
	FindDocumentByKode(kode string) (*domain.Document, error)
	FindUser(userID uint64) (*domain.User, error)
	HistorisForDocument(docID uint64) ([]domain.Historis, error)
	FindInstitution(institutionID uint64) (*domain.Institution, error)
	AllDocuments() ([]domain.Document, error)
}

type RepositoryImpl struct {
	db *gorm.DB
}

// NewRepository creates a new tracking repository
func NewRepository(db *gorm.DB) Repository {
	return &RepositoryImpl{db: db}
}

// FindDocumentByKode is deliberately unscoped; the tracking page is public
func (r *RepositoryImpl) FindDocumentByKode(kode string) (*domain.Document, error) {
	var doc domain.Document
	err := r.db.Where("kode = ?", kode).First(&doc).Error
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *RepositoryImpl) FindUser(userID uint64) (*domain.User, error) {
	var user domain.User
	err := r.db.First(&user, userID).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *RepositoryImpl) HistorisForDocument(docID uint64) ([]domain.Historis, error) {
	var historis []domain.Historis
	err := r.db.Where("document_id = ?", docID).Order("waktu ASC").Find(&historis).Error
	return historis, err
}

func (r *RepositoryImpl) FindInstitution(institutionID uint64) (*domain.Institution, error) {
	var institution domain.Institution
	err := r.db.First(&institution, institutionID).Error
	if err != nil {
		return nil, err
	}
	return &institution, nil
}

// AllDocuments backs the diagnostic dump endpoint
func (r *RepositoryImpl) AllDocuments() ([]domain.Document, error) {
	var documents []domain.Document
	err := r.db.Find(&documents).Error
	return documents, err
}
