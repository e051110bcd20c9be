package models

import (
	"time"
)

// Topic is a subject users rate. There is no soft delete on topics;
// removing one drops its ratings with it.
type Topic struct {
	ID          uint      `gorm:"primaryKey" json:"topic_id"`
	Name        string    `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Description string    `gorm:"size:255" json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`

	Ratings []Rating `gorm:"foreignKey:TopicID;constraint:OnDelete:CASCADE" json:"-"`
}

// TopicStats is the on-demand aggregate over a topic's ratings.
// AvgScore is nil when the topic has no ratings yet.
type TopicStats struct {
	TopicID     uint     `json:"topic_id"`
	AvgScore    *float64 `json:"avg_score"`
	RatingCount int64    `json:"rating_count"`
}
