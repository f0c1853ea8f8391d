package models

import "gorm.io/gorm"

// User is an admin account. The catalog itself has no per-user ownership;
// users exist only to pass the gatekeeper.
type User struct {
	gorm.Model
	Name     string `gorm:"size:255;not null" json:"name"`
	Email    string `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Password string `gorm:"size:255;not null" json:"-"` // hashed, never serialised
	Role     string `gorm:"size:50;default:admin" json:"role"`
}
