package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"plateful/internal/models"
	"plateful/internal/types"
)

// UserService serves user representations and the avatar operations.
type UserService struct {
	db     *gorm.DB
	images ImageStore
}

func NewUserService(db *gorm.DB, images ImageStore) *UserService {
	return &UserService{db: db, images: images}
}

func (s *UserService) Get(userID, viewerID uint) (*types.UserResponse, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	resp, err := userResponse(s.db, &user, viewerID)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// List returns users ordered by id, with the total count before paging.
func (s *UserService) List(viewerID uint, offset, limit int) ([]types.UserResponse, int64, error) {
	var total int64
	if err := s.db.Model(&models.User{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []models.User
	if err := s.db.Order("id").Offset(offset).Limit(limit).Find(&users).Error; err != nil {
		return nil, 0, err
	}

	result := make([]types.UserResponse, 0, len(users))
	for i := range users {
		resp, err := userResponse(s.db, &users[i], viewerID)
		if err != nil {
			return nil, 0, err
		}
		result = append(result, resp)
	}
	return result, total, nil
}

// SetAvatar decodes the base64 payload, stores it and saves the URL.
func (s *UserService) SetAvatar(ctx context.Context, userID uint, payload string) (string, error) {
	data, contentType, err := DecodeBase64Image(payload)
	if err != nil {
		return "", NewValidationError("avatar", err.Error())
	}
	url, err := s.images.Upload(ctx, data, contentType)
	if err != nil {
		return "", err
	}
	if err := s.db.Model(&models.User{}).Where("id = ?", userID).Update("avatar_url", url).Error; err != nil {
		return "", err
	}
	return url, nil
}

func (s *UserService) DeleteAvatar(userID uint) error {
	return s.db.Model(&models.User{}).Where("id = ?", userID).Update("avatar_url", "").Error
}
