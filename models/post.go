package models

import "time"

// Post represents a publication created by a user. The Image field holds the
// relative path returned by the file store, empty when no image was attached.
type Post struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Title      string    `gorm:"type:text;not null" json:"title"`
	Body       string    `gorm:"type:text;not null" json:"body"`
	Image      string    `gorm:"size:256" json:"image"`
	CreateDate time.Time `gorm:"autoCreateTime;index" json:"create_date"`
	UserID     uint      `gorm:"index;not null" json:"user_id"`
	Author     User      `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE;" json:"author"`
	Comments   []Comment `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Likes      []Like    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}
