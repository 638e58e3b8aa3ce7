package domain

import "time"

// Conventional document statuses. Status is stored as free text, these are
// the values the dashboard uses.
const (
	StatusDibuat          = "dibuat"
	StatusProses          = "proses"
	StatusProsesPengujian = "proses-pengujian"
	StatusSelesai         = "selesai"
	StatusDitolak         = "ditolak"
)

// Document is a trackable unit of lab work, identified publicly by its kode.
// The institution id is stamped from the creating user and never re-derived.
type Document struct {
	ID            uint64     `json:"id"`
	Kode          string     `gorm:"index" json:"kode"`
	Durasi        int        `json:"durasi"`
	Status        string     `json:"status"`
	CreatedAt     time.Time  `json:"created_at"`
	UserID        uint64     `json:"userId"`
	User          User       `json:"-"`
	InstitutionID uint64     `gorm:"index" json:"institutionId"`
	Historis      []Historis `gorm:"foreignKey:DocumentID" json:"-"`
}

// Historis is one timestamped status entry of a document. Rows are only ever
// created through the add-historis operation, which also mirrors the status
// onto the parent document in the same transaction.
type Historis struct {
	ID            uint64    `json:"id"`
	DocumentID    uint64    `gorm:"index" json:"-"`
	Waktu         time.Time `json:"waktu"`
	Status        string    `json:"status"`
	Note          *string   `json:"note"`
	AttachmentURL *string   `json:"attachmentUrl"`
}

// Historis keeps its Indonesian table name
func (Historis) TableName() string {
	return "historis"
}
