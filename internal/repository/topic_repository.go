package repository

import (
	"context"
	"errors"

	"github.com/topicboard/engine/internal/models"
	appErr "github.com/topicboard/engine/pkg/errors"
	"github.com/topicboard/engine/pkg/pagination"
	"gorm.io/gorm"
)

type TopicRepository interface {
	BaseRepository[models.Topic]
	List(ctx context.Context, p pagination.Params) ([]models.Topic, pagination.Page, error)
	Stats(ctx context.Context, topicID uint) (models.TopicStats, error)
}

type topicRepository struct {
	BaseRepository[models.Topic]
	db *gorm.DB
}

func NewTopicRepository(db *gorm.DB) TopicRepository {
	return &topicRepository{BaseRepository: NewBaseRepository[models.Topic](db), db: db}
}

func (r *topicRepository) Create(ctx context.Context, t *models.Topic) error {
	if err := r.db.WithContext(ctx).Create(t).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return appErr.New(appErr.CodeConflict, "topic already exists")
		}
		return appErr.Wrap(err, appErr.CodeInternal, "create topic failed")
	}
	return nil
}

func (r *topicRepository) GetByID(ctx context.Context, id uint, dest *models.Topic) error {
	if err := r.db.WithContext(ctx).First(dest, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return appErr.New(appErr.CodeNotFound, "topic not found")
		}
		return appErr.Wrap(err, appErr.CodeInternal, "get topic failed")
	}
	return nil
}

func (r *topicRepository) List(ctx context.Context, p pagination.Params) ([]models.Topic, pagination.Page, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Topic{}).Count(&total).Error; err != nil {
		return nil, pagination.Page{}, appErr.Wrap(err, appErr.CodeInternal, "count topics failed")
	}
	var topics []models.Topic
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Offset(p.Offset()).
		Limit(p.PerPage).
		Find(&topics).Error
	if err != nil {
		return nil, pagination.Page{}, appErr.Wrap(err, appErr.CodeInternal, "list topics failed")
	}
	return topics, p.PageFor(total), nil
}

// Stats aggregates every rating for the topic. Ratings are never
// soft-deleted, so the aggregate is a plain scoped scan.
func (r *topicRepository) Stats(ctx context.Context, topicID uint) (models.TopicStats, error) {
	var topic models.Topic
	if err := r.GetByID(ctx, topicID, &topic); err != nil {
		return models.TopicStats{}, err
	}

	var row struct {
		Avg   *float64
		Count int64
	}
	err := r.db.WithContext(ctx).
		Model(&models.Rating{}).
		Select("AVG(score) AS avg, COUNT(*) AS count").
		Where("topic_id = ?", topicID).
		Scan(&row).Error
	if err != nil {
		return models.TopicStats{}, appErr.Wrap(err, appErr.CodeInternal, "aggregate ratings failed")
	}

	return models.TopicStats{
		TopicID:     topicID,
		AvgScore:    row.Avg,
		RatingCount: row.Count,
	}, nil
}
