package models

import (
	"time"
)

// Comment is a reply on a post. Comments are immutable once posted, so
// there is no update timestamp; deletion is the same logical flag as posts.
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"comment_id"`
	PostID    uint      `gorm:"not null;index" json:"post_id"`
	Post      Post      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	AuthorID  uint      `gorm:"not null;index" json:"author_id"`
	Author    User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	IsDeleted bool      `gorm:"default:false;not null;index" json:"is_deleted"`
	CreatedAt time.Time `json:"created_at"`
}
