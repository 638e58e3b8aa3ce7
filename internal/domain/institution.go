package domain

import "time"

// Institution is a tenant: it owns users, and documents through them.
// The slug identifies its public tracking page and never changes after
// registration.
type Institution struct {
	ID            uint64    `json:"id"`
	Name          string    `json:"name"`
	Slug          string    `gorm:"uniqueIndex" json:"slug"`
	TrackingTitle string    `json:"trackingTitle"`
	LogoURL       *string   `json:"logoUrl"`
	CreatedAt     time.Time `json:"created_at"`
}

// InstitutionSummary is the compact shape embedded in user payloads
type InstitutionSummary struct {
	ID            uint64 `json:"id"`
	Name          string `json:"name"`
	Slug          string `json:"slug"`
	TrackingTitle string `json:"trackingTitle"`
}

// InstitutionPublic is the public shape: branding fields only
type InstitutionPublic struct {
	ID            uint64    `json:"id"`
	Name          string    `json:"name"`
	Slug          string    `json:"slug"`
	TrackingTitle string    `json:"trackingTitle"`
	LogoURL       *string   `json:"logoUrl"`
	CreatedAt     time.Time `json:"created_at"`
}

func (i *Institution) ToSummary() InstitutionSummary {
	return InstitutionSummary{
		ID:            i.ID,
		Name:          i.Name,
		Slug:          i.Slug,
		TrackingTitle: i.TrackingTitle,
	}
}

func (i *Institution) ToPublic() InstitutionPublic {
	return InstitutionPublic{
		ID:            i.ID,
		Name:          i.Name,
		Slug:          i.Slug,
		TrackingTitle: i.TrackingTitle,
		LogoURL:       i.LogoURL,
		CreatedAt:     i.CreatedAt,
	}
}
