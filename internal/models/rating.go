package models

import (
	"time"
)

// Rating is one user's score for one topic. The composite unique index is
// the invariant: at most one row per (user, topic), enforced by the storage
// engine rather than by application reads. Score is constrained to 1..5 by a
// CHECK added in cmd/migrate.
type Rating struct {
	ID        uint      `gorm:"primaryKey" json:"rating_id"`
	UserID    uint      `gorm:"not null;uniqueIndex:uq_rating_user_topic" json:"user_id"`
	User      User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	TopicID   uint      `gorm:"not null;uniqueIndex:uq_rating_user_topic;index" json:"topic_id"`
	Topic     Topic     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Score     int       `gorm:"not null" json:"score"`
	Comment   string    `gorm:"size:255" json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
