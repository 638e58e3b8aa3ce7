package institution

import (
	"lab-document-tracking/internal/domain"

	"gorm.io/gorm"
)

// Repository defines institution data access
type Repository interface {
	FindBySlug(slug string) (*domain.Institution, error)
	ListPublic(limit int) ([]domain.Institution, error)
	FindByUserID(userID uint64) (*domain.Institution, error)
	Save(institution *domain.Institution) error
	RegisterWithAdmin(institution *domain.Institution, admin *domain.User) error
}

type RepositoryImpl struct {
	db *gorm.DB
}

// NewRepository creates a new institution repository
func NewRepository(db *gorm.DB) Repository {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) FindBySlug(slug string) (*domain.Institution, error) {
	var institution domain.Institution
	err := r.db.Where("slug = ?", slug).First(&institution).Error
	if err != nil {
		return nil, err
	}
	return &institution, nil
}

// ListPublic returns the newest institutions first
func (r *RepositoryImpl) ListPublic(limit int) ([]domain.Institution, error) {
	var institutions []domain.Institution
	err := r.db.Order("created_at DESC").Limit(limit).Find(&institutions).Error
	return institutions, err
}

// FindByUserID resolves the institution a user belongs to
func (r *RepositoryImpl) FindByUserID(userID uint64) (*domain.Institution, error) {
	var institution domain.Institution
	err := r.db.
		Joins("JOIN users ON users.institution_id = institutions.id").
		Where("users.id = ?", userID).
		First(&institution).Error
	if err != nil {
		return nil, err
	}
	return &institution, nil
}

func (r *RepositoryImpl) Save(institution *domain.Institution) error {
	return r.db.Save(institution).Error
}

// RegisterWithAdmin creates the institution and its first admin in one
// transaction; either both rows exist afterwards or neither does.
func (r *RepositoryImpl) RegisterWithAdmin(institution *domain.Institution, admin *domain.User) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(institution).Error; err != nil {
			return err
		}
		admin.InstitutionID = &institution.ID
		return tx.Create(admin).Error
	})
}
