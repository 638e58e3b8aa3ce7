package db

import (
	"lab-document-tracking/internal/domain"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Migrate runs database migrations
func Migrate(db *gorm.DB) {
	err := db.AutoMigrate(
		&domain.Institution{},
		&domain.User{},
		&domain.Document{},
		&domain.Historis{},
	)

	if err != nil {
		log.Fatal().Err(err).Msg("database migration failed")
	}

	log.Info().Msg("database schema migrated successfully")
}

// SeedData seeds a demo institution with its admin (for development only)
func SeedData(db *gorm.DB) {
	var existing domain.Institution
	err := db.Where("slug = ?", "lab-demo").First(&existing).Error
	if err == nil {
		log.Info().Msg("demo institution already exists")
		return
	}
	if err != gorm.ErrRecordNotFound {
		log.Error().Err(err).Msg("seed lookup failed")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		log.Error().Err(err).Msg("seed password hash failed")
		return
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		institution := domain.Institution{
			Name:          "Laboratorium Demo",
			Slug:          "lab-demo",
			TrackingTitle: "Tracking Dokumen Laboratorium Demo",
		}
		if err := tx.Create(&institution).Error; err != nil {
			return err
		}

		admin := domain.User{
			Name:          "Admin Demo",
			Email:         "admin@lab-demo.test",
			Password:      string(hashed),
			Role:          domain.RoleAdmin,
			InstitutionID: &institution.ID,
		}
		return tx.Create(&admin).Error
	})

	if err != nil {
		log.Error().Err(err).Msg("seeding demo institution failed")
		return
	}
	log.Info().Msg("created demo institution lab-demo")
}
