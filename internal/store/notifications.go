package store

import (
	"errors"
	"fmt"

	"moyu/internal/models"

	"gorm.io/gorm"
)

// CreateReplyNotification 给被回复的评论作者发站内通知。
// 自己回复自己不通知。
func (s *Store) CreateReplyNotification(actor *models.User, parent *models.Comment, reply *models.Comment) error {
	if parent.UserID == actor.ID {
		return nil
	}
	notification := models.Notification{
		UserID:    parent.UserID,
		ActorID:   &actor.ID,
		Type:      models.NotificationTypeReplyComment,
		CommentID: &reply.ID,
	}
	if err := s.db.Create(&notification).Error; err != nil {
		return fmt.Errorf("create notification: %w", err)
	}
	return nil
}

func (s *Store) ListNotifications(userID uint) ([]models.Notification, error) {
	var notifications []models.Notification
	err := s.db.Preload("Actor").Preload("Comment").Preload("Comment.User").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(50).
		Find(&notifications).Error
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	return notifications, nil
}

func (s *Store) UnreadNotificationCount(userID uint) (int64, error) {
	var count int64
	err := s.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count notifications: %w", err)
	}
	return count, nil
}

// MarkNotificationRead 标记单条已读，只能操作自己的通知
func (s *Store) MarkNotificationRead(id string, userID uint) error {
	var notification models.Notification
	if err := s.db.Where("id = ? AND user_id = ?", id, userID).First(&notification).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &NotFoundError{Msg: "通知不存在"}
		}
		return fmt.Errorf("find notification: %w", err)
	}
	notification.IsRead = true
	if err := s.db.Save(&notification).Error; err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	return nil
}

func (s *Store) MarkAllNotificationsRead(userID uint) error {
	err := s.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true).Error
	if err != nil {
		return fmt.Errorf("mark notifications read: %w", err)
	}
	return nil
}

func (s *Store) DeleteNotification(id string, userID uint) error {
	var notification models.Notification
	if err := s.db.Where("id = ? AND user_id = ?", id, userID).First(&notification).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &NotFoundError{Msg: "通知不存在"}
		}
		return fmt.Errorf("find notification: %w", err)
	}
	if err := s.db.Delete(&notification).Error; err != nil {
		return fmt.Errorf("delete notification: %w", err)
	}
	return nil
}
