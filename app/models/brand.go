package models

import "time"

// Brand is a catalog brand. Image holds only the stored filename; the
// uploads/brands/ prefix is applied when building URLs.
//
// Catalog rows are deleted for real, so there is no gorm.Model / DeletedAt.
type Brand struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Slug      string    `gorm:"size:255;not null;uniqueIndex" json:"slug"`
	Image     string    `gorm:"size:255" json:"image"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
