package repository

import (
	"context"
	"errors"

	"github.com/topicboard/engine/internal/models"
	appErr "github.com/topicboard/engine/pkg/errors"
	"github.com/topicboard/engine/pkg/pagination"
	"gorm.io/gorm"
)

type PostRepository interface {
	BaseRepository[models.Post]
	// GetVisible fetches a post the default read paths may see: absent and
	// soft-deleted rows are both not found.
	GetVisible(ctx context.Context, id uint, dest *models.Post) error
	// GetAny fetches a post regardless of its soft-delete flag, so callers
	// can tell "truly absent" from "already deleted".
	GetAny(ctx context.Context, id uint, dest *models.Post) error
	List(ctx context.Context, p pagination.Params) ([]models.Post, pagination.Page, error)
	// SoftDelete flips the delete flag in a single UPDATE. It does not
	// re-check the flag first: re-deleting an already-deleted post succeeds.
	SoftDelete(ctx context.Context, id uint) error
}

type postRepository struct {
	BaseRepository[models.Post]
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{BaseRepository: NewBaseRepository[models.Post](db), db: db}
}

func (r *postRepository) GetVisible(ctx context.Context, id uint, dest *models.Post) error {
	err := r.db.WithContext(ctx).
		Where("id = ? AND is_deleted = ?", id, false).
		First(dest).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return appErr.New(appErr.CodeNotFound, "post not found")
		}
		return appErr.Wrap(err, appErr.CodeInternal, "get post failed")
	}
	return nil
}

func (r *postRepository) GetAny(ctx context.Context, id uint, dest *models.Post) error {
	if err := r.db.WithContext(ctx).First(dest, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return appErr.New(appErr.CodeNotFound, "post not found")
		}
		return appErr.Wrap(err, appErr.CodeInternal, "get post failed")
	}
	return nil
}

func (r *postRepository) List(ctx context.Context, p pagination.Params) ([]models.Post, pagination.Page, error) {
	visible := r.db.WithContext(ctx).Model(&models.Post{}).Where("is_deleted = ?", false)

	var total int64
	if err := visible.Count(&total).Error; err != nil {
		return nil, pagination.Page{}, appErr.Wrap(err, appErr.CodeInternal, "count posts failed")
	}
	var posts []models.Post
	err := r.db.WithContext(ctx).
		Where("is_deleted = ?", false).
		Order("created_at DESC").
		Offset(p.Offset()).
		Limit(p.PerPage).
		Find(&posts).Error
	if err != nil {
		return nil, pagination.Page{}, appErr.Wrap(err, appErr.CodeInternal, "list posts failed")
	}
	return posts, p.PageFor(total), nil
}

func (r *postRepository) SoftDelete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ?", id).
		Update("is_deleted", true)
	if res.Error != nil {
		return appErr.Wrap(res.Error, appErr.CodeInternal, "delete post failed")
	}
	if res.RowsAffected == 0 {
		return appErr.New(appErr.CodeNotFound, "post not found")
	}
	return nil
}
