package models

// Like marks that a user liked a post. The composite unique index enforces at
// most one like per (user, post) at the store, closing the check-then-insert
// race under concurrent requests.
type Like struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"not null;uniqueIndex:uix_user_post" json:"user_id"`
	PostID uint `gorm:"not null;uniqueIndex:uix_user_post" json:"post_id"`
}
