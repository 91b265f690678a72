package models

import (
	"time"
)

// CommentLike 一条点赞记录，(comment_id, user_id) 唯一保证同一用户只点一次
type CommentLike struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CommentID uint      `gorm:"not null;index;uniqueIndex:idx_comment_liker" json:"comment_id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_comment_liker" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}
