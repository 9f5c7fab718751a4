package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents a registered account. Passwords are stored as bcrypt hashes only.
type User struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	FullName       string         `gorm:"size:256;not null" json:"full_name"`
	Username       string         `gorm:"size:50;uniqueIndex;not null" json:"username"`
	Email          string         `gorm:"size:120;uniqueIndex;not null" json:"email"`
	PasswordHash   string         `gorm:"size:128;not null" json:"-"`
	ProfilePicture string         `gorm:"size:256" json:"profile_picture"`
	Description    string         `gorm:"type:text" json:"description"`
	CreateDate     time.Time      `gorm:"autoCreateTime" json:"create_date"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
	Posts          []Post         `json:"-"`
	Comments       []Comment      `json:"-"`
}
