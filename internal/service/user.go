package service

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/foodgram/backend/internal/errs"
	"github.com/foodgram/backend/internal/models"
	"github.com/foodgram/backend/internal/query"
)

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// List returns a page of users annotated with is_subscribed for the viewer.
func (s *UserService) List(ctx context.Context, viewerID *uuid.UUID, page, size int) ([]models.User, int64, error) {
	var total int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var users []models.User
	q := query.UsersForViewer(s.db.WithContext(ctx), viewerID)
	if err := q.Offset((page - 1) * size).Limit(size).Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// Get returns one user annotated for the viewer.
func (s *UserService) Get(ctx context.Context, viewerID *uuid.UUID, id uuid.UUID) (*models.User, error) {
	var user models.User
	q := query.UsersForViewer(s.db.WithContext(ctx), viewerID)
	if err := q.Where("users.id = ?", id).First(&user).Error; err != nil {
		return nil, errs.FromDB(err, "")
	}
	return &user, nil
}
