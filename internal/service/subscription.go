package service

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/foodgram/backend/internal/errs"
	"github.com/foodgram/backend/internal/models"
	"github.com/foodgram/backend/internal/query"
)

type SubscriptionService struct {
	db *gorm.DB
}

func NewSubscriptionService(db *gorm.DB) *SubscriptionService {
	return &SubscriptionService{db: db}
}

// Subscribe creates a follower -> followed edge. Self-subscription is
// rejected before any existence check.
func (s *SubscriptionService) Subscribe(ctx context.Context, followerID, targetID uuid.UUID) (*models.Subscription, error) {
	if followerID == targetID {
		return nil, errs.Conflict("cannot subscribe to yourself")
	}
	db := s.db.WithContext(ctx)

	var target models.User
	if err := db.First(&target, "id = ?", targetID).Error; err != nil {
		return nil, errs.FromDB(err, "")
	}

	var count int64
	if err := db.Model(&models.Subscription{}).
		Where("follower_id = ? AND following_id = ?", followerID, targetID).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, errs.Conflict("already subscribed")
	}

	sub := models.Subscription{FollowerID: followerID, FollowingID: targetID}
	if err := db.Create(&sub).Error; err != nil {
		return nil, errs.FromDB(err, "already subscribed")
	}

	var annotated models.Subscription
	if err := query.SubscriptionsOf(db, followerID).
		Where("subscriptions.id = ?", sub.ID).
		First(&annotated).Error; err != nil {
		return nil, err
	}
	return &annotated, nil
}

// Unsubscribe removes the edge; removing an absent one is an error.
func (s *SubscriptionService) Unsubscribe(ctx context.Context, followerID, targetID uuid.UUID) error {
	db := s.db.WithContext(ctx)

	var target models.User
	if err := db.First(&target, "id = ?", targetID).Error; err != nil {
		return errs.FromDB(err, "")
	}

	res := db.Where("follower_id = ? AND following_id = ?", followerID, targetID).
		Delete(&models.Subscription{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errs.Conflict("not subscribed to this user")
	}
	return nil
}

// List returns a page of the follower's subscriptions with recipe counts and
// followed-author recipes eagerly loaded.
func (s *SubscriptionService) List(ctx context.Context, followerID uuid.UUID, page, size int) ([]models.Subscription, int64, error) {
	db := s.db.WithContext(ctx)

	var total int64
	if err := db.Model(&models.Subscription{}).
		Where("follower_id = ?", followerID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var subs []models.Subscription
	q := query.SubscriptionsOf(db, followerID)
	if err := q.Offset((page - 1) * size).Limit(size).Find(&subs).Error; err != nil {
		return nil, 0, err
	}
	return subs, total, nil
}
