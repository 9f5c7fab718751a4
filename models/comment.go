package models

import "time"

// Comment represents a reply to a post.
type Comment struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Body       string    `gorm:"type:text;not null" json:"body"`
	CreateDate time.Time `gorm:"autoCreateTime" json:"create_date"`
	UserID     uint      `gorm:"index;not null" json:"user_id"`
	PostID     uint      `gorm:"index;not null" json:"post_id"`
	Author     User      `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE;" json:"author"`
}
