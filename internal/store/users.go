package store

import (
	"errors"
	"fmt"

	"moyu/internal/auth"
	"moyu/internal/models"
	"moyu/internal/utils"

	"gorm.io/gorm"
)

// UpsertUser 以 (provider, provider_id) 为键落库。
// 已存在时刷新可变字段（名字、头像、邮箱），否则创建新用户。
func (s *Store) UpsertUser(id *auth.Identity) (*models.User, error) {
	var user models.User
	err := s.db.Where("provider = ? AND provider_id = ?", id.Provider, id.ProviderID).First(&user).Error
	if err == nil {
		user.Name = id.Name
		user.Avatar = id.Avatar
		if id.Email != "" {
			user.Email = id.Email
		}
		if err := s.db.Save(&user).Error; err != nil {
			return nil, fmt.Errorf("refresh user: %w", err)
		}
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("find user: %w", err)
	}

	user = models.User{
		Uid:        utils.RandString(8),
		Name:       id.Name,
		Avatar:     id.Avatar,
		Email:      id.Email,
		Provider:   id.Provider,
		ProviderID: id.ProviderID,
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &user, nil
}

// GetUser 按内部 ID 查用户，session 里存的就是这个 ID
func (s *Store) GetUser(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Msg: "用户不存在"}
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &user, nil
}
