package user

import (
	"lab-document-tracking/internal/domain"

	"gorm.io/gorm"
)

// Repository defines user data access shared by the account and
// administration services
type Repository interface {
	Create(user *domain.User) error
	FindNewestByEmail(email string) (*domain.User, error)
	FindByID(id uint64) (*domain.User, error)
	List() ([]domain.User, error)
	Save(user *domain.User) error
	Delete(id uint64) error
}

type RepositoryImpl struct {
	db *gorm.DB
}

// NewRepository creates a new user repository
func NewRepository(db *gorm.DB) Repository {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) Create(user *domain.User) error {
	return r.db.Create(user).Error
}

// FindNewestByEmail returns the most recently created row for an email.
// Emails are not unique; the newest account wins on login.
func (r *RepositoryImpl) FindNewestByEmail(email string) (*domain.User, error) {
	var user domain.User
	err := r.db.Preload("Institution").
		Where("email = ?", email).
		Order("id DESC").
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *RepositoryImpl) FindByID(id uint64) (*domain.User, error) {
	var user domain.User
	err := r.db.Preload("Institution").First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// List returns all users newest-id-first with their institution
func (r *RepositoryImpl) List() ([]domain.User, error) {
	var users []domain.User
	err := r.db.Preload("Institution").Order("id DESC").Find(&users).Error
	return users, err
}

// Save writes every field, including a nil institution id
func (r *RepositoryImpl) Save(user *domain.User) error {
	return r.db.Save(user).Error
}

func (r *RepositoryImpl) Delete(id uint64) error {
	return r.db.Delete(&domain.User{}, id).Error
}
