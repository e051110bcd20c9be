package repository

import (
	"context"
	"errors"

	"github.com/topicboard/engine/internal/models"
	appErr "github.com/topicboard/engine/pkg/errors"
	"github.com/topicboard/engine/pkg/pagination"
	"gorm.io/gorm"
)

type CommentRepository interface {
	BaseRepository[models.Comment]
	// GetAny fetches a comment regardless of its soft-delete flag.
	GetAny(ctx context.Context, id uint, dest *models.Comment) error
	// ListByPost returns visible comments oldest-first, preserving the
	// conversational reading order.
	ListByPost(ctx context.Context, postID uint, p pagination.Params) ([]models.Comment, pagination.Page, error)
	SoftDelete(ctx context.Context, id uint) error
}

type commentRepository struct {
	BaseRepository[models.Comment]
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{BaseRepository: NewBaseRepository[models.Comment](db), db: db}
}

func (r *commentRepository) GetAny(ctx context.Context, id uint, dest *models.Comment) error {
	if err := r.db.WithContext(ctx).First(dest, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return appErr.New(appErr.CodeNotFound, "comment not found")
		}
		return appErr.Wrap(err, appErr.CodeInternal, "get comment failed")
	}
	return nil
}

func (r *commentRepository) ListByPost(ctx context.Context, postID uint, p pagination.Params) ([]models.Comment, pagination.Page, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&models.Comment{}).
		Where("post_id = ? AND is_deleted = ?", postID, false).
		Count(&total).Error
	if err != nil {
		return nil, pagination.Page{}, appErr.Wrap(err, appErr.CodeInternal, "count comments failed")
	}

	var comments []models.Comment
	err = r.db.WithContext(ctx).
		Where("post_id = ? AND is_deleted = ?", postID, false).
		Order("created_at ASC").
		Offset(p.Offset()).
		Limit(p.PerPage).
		Find(&comments).Error
	if err != nil {
		return nil, pagination.Page{}, appErr.Wrap(err, appErr.CodeInternal, "list comments failed")
	}
	return comments, p.PageFor(total), nil
}

func (r *commentRepository) SoftDelete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).
		Model(&models.Comment{}).
		Where("id = ?", id).
		Update("is_deleted", true)
	if res.Error != nil {
		return appErr.Wrap(res.Error, appErr.CodeInternal, "delete comment failed")
	}
	if res.RowsAffected == 0 {
		return appErr.New(appErr.CodeNotFound, "comment not found")
	}
	return nil
}
