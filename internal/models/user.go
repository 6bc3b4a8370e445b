// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents an account that can author posts and comments.
// Email is the login key; Username is a display label and may repeat.
type User struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	Email      string         `gorm:"uniqueIndex;size:254;not null" json:"email"`
	Username   string         `gorm:"size:150;not null" json:"username"`
	Password   string         `gorm:"not null" json:"-"`
	Bio        string         `gorm:"type:text;not null;default:''" json:"bio"`
	IsStaff    bool           `gorm:"not null;default:false" json:"is_staff"`
	DateJoined time.Time      `gorm:"autoCreateTime" json:"date_joined"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
	Posts      []Post         `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"-"`
	Comments   []Comment      `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"-"`
}
