package repository

import (
	"context"
	"errors"

	"github.com/topicboard/engine/internal/models"
	"github.com/topicboard/engine/pkg/pagination"
	appErr "github.com/topicboard/engine/pkg/errors"
	"gorm.io/gorm"
)

type UserRepository interface {
	BaseRepository[models.User]
	GetByUsername(ctx context.Context, username string, dest *models.User) error
	List(ctx context.Context, p pagination.Params) ([]models.User, pagination.Page, error)
}

type userRepository struct {
	BaseRepository[models.User]
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{BaseRepository: NewBaseRepository[models.User](db), db: db}
}

func (r *userRepository) Create(ctx context.Context, u *models.User) error {
	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return appErr.New(appErr.CodeConflict, "username already registered")
		}
		return appErr.Wrap(err, appErr.CodeInternal, "create user failed")
	}
	return nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string, dest *models.User) error {
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(dest).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return appErr.New(appErr.CodeNotFound, "user not found")
		}
		return appErr.Wrap(err, appErr.CodeInternal, "get user by username failed")
	}
	return nil
}

func (r *userRepository) List(ctx context.Context, p pagination.Params) ([]models.User, pagination.Page, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.User{}).Count(&total).Error; err != nil {
		return nil, pagination.Page{}, appErr.Wrap(err, appErr.CodeInternal, "count users failed")
	}
	var users []models.User
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Offset(p.Offset()).
		Limit(p.PerPage).
		Find(&users).Error
	if err != nil {
		return nil, pagination.Page{}, appErr.Wrap(err, appErr.CodeInternal, "list users failed")
	}
	return users, p.PageFor(total), nil
}
