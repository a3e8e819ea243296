package service

import (
	"errors"

	"gorm.io/gorm"

	"plateful/internal/models"
	"plateful/internal/types"
)

var (
	ErrSelfSubscribe = errors.New("cannot subscribe to yourself")
)

// SubscriptionService manages follower -> author relations. Same
// toggle discipline as RelationService: duplicate ADD and missing REMOVE
// are conflicts.
type SubscriptionService struct {
	db *gorm.DB
}

func NewSubscriptionService(db *gorm.DB) *SubscriptionService {
	return &SubscriptionService{db: db}
}

// Subscribe makes actor follow the target author and returns the
// author's extended profile. recipesLimit caps the embedded recipe list
// when positive.
func (s *SubscriptionService) Subscribe(actorID, targetID uint, recipesLimit int) (*types.UserWithRecipesResponse, error) {
	if actorID == targetID {
		return nil, ErrSelfSubscribe
	}

	var target models.User
	if err := s.db.First(&target, targetID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	sub := models.Subscription{FollowerID: actorID, FollowingID: targetID}
	if err := s.db.Create(&sub).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, &ConflictError{Detail: "you are already subscribed to this author"}
		}
		return nil, err
	}

	return userWithRecipes(s.db, &target, actorID, recipesLimit)
}

func (s *SubscriptionService) Unsubscribe(actorID, targetID uint) error {
	var target models.User
	if err := s.db.First(&target, targetID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	result := s.db.
		Where("follower_id = ? AND following_id = ?", actorID, targetID).
		Delete(&models.Subscription{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return &ConflictError{Detail: "you are not subscribed to this author"}
	}
	return nil
}

// ListSubscriptions returns extended profiles of everyone the actor
// follows, oldest subscription first.
func (s *SubscriptionService) ListSubscriptions(actorID uint, offset, limit, recipesLimit int) ([]types.UserWithRecipesResponse, int64, error) {
	var total int64
	if err := s.db.Model(&models.Subscription{}).Where("follower_id = ?", actorID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var subs []models.Subscription
	err := s.db.
		Where("follower_id = ?", actorID).
		Order("id").
		Offset(offset).
		Limit(limit).
		Preload("Following").
		Find(&subs).Error
	if err != nil {
		return nil, 0, err
	}

	result := make([]types.UserWithRecipesResponse, 0, len(subs))
	for i := range subs {
		profile, err := userWithRecipes(s.db, &subs[i].Following, actorID, recipesLimit)
		if err != nil {
			return nil, 0, err
		}
		result = append(result, *profile)
	}
	return result, total, nil
}
