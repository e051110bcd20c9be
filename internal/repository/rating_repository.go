package repository

import (
	"context"
	"errors"
	"time"

	"github.com/topicboard/engine/internal/models"
	appErr "github.com/topicboard/engine/pkg/errors"
	"github.com/topicboard/engine/pkg/pagination"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RatingRepository interface {
	// Upsert writes the user's rating for a topic: a first submission
	// inserts, a repeat submission overwrites score/comment and refreshes
	// updated_at while keeping the original row id and created_at. The
	// write rides on the (user_id, topic_id) unique index, so concurrent
	// first submissions serialize in the storage engine instead of
	// producing duplicate rows.
	Upsert(ctx context.Context, rating *models.Rating) error
	ListByTopic(ctx context.Context, topicID uint, p pagination.Params) ([]models.Rating, pagination.Page, error)
}

type ratingRepository struct {
	db *gorm.DB
}

func NewRatingRepository(db *gorm.DB) RatingRepository {
	return &ratingRepository{db: db}
}

func (r *ratingRepository) Upsert(ctx context.Context, rating *models.Rating) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "topic_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"score":      rating.Score,
				"comment":    rating.Comment,
				"updated_at": time.Now(),
			}),
		}).Create(rating)
		if res.Error != nil {
			return res.Error
		}
		// Read the row back: on the update path the generated id and the
		// original created_at live in the existing row, not in the struct
		// we just passed to Create.
		return tx.Where("user_id = ? AND topic_id = ?", rating.UserID, rating.TopicID).
			First(rating).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return appErr.Wrap(err, appErr.CodeInternal, "rating upsert read-back failed")
		}
		return appErr.Wrap(err, appErr.CodeInternal, "upsert rating failed")
	}
	return nil
}

func (r *ratingRepository) ListByTopic(ctx context.Context, topicID uint, p pagination.Params) ([]models.Rating, pagination.Page, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&models.Rating{}).
		Where("topic_id = ?", topicID).
		Count(&total).Error
	if err != nil {
		return nil, pagination.Page{}, appErr.Wrap(err, appErr.CodeInternal, "count ratings failed")
	}

	var ratings []models.Rating
	err = r.db.WithContext(ctx).
		Where("topic_id = ?", topicID).
		Order("created_at DESC").
		Offset(p.Offset()).
		Limit(p.PerPage).
		Find(&ratings).Error
	if err != nil {
		return nil, pagination.Page{}, appErr.Wrap(err, appErr.CodeInternal, "list ratings failed")
	}
	return ratings, p.PageFor(total), nil
}
