package models

import (
	"html/template"
	"time"
)

type Comment struct {
	ID          uint      `gorm:"primaryKey" json:"-"`
	Cid         string    `gorm:"uniqueIndex;size:8;not null" json:"id"`
	ArticleSlug string    `gorm:"size:128;not null;index" json:"article_slug"`
	UserID      uint      `gorm:"not null;index" json:"-"`
	User        User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"author"`
	ParentID    *uint     `gorm:"index" json:"-"` // 顶级评论为空
	Content     string    `gorm:"type:text;not null" json:"content"`
	IsEdited    bool      `gorm:"default:false" json:"is_edited"`
	IsDeleted   bool      `gorm:"default:false" json:"is_deleted"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// 非数据库字段，查询时填充
	ParentCid   string        `gorm:"-" json:"parent_id,omitempty"`
	Likes       int           `gorm:"-" json:"likes"`
	LikedBy     []string      `gorm:"-" json:"liked_by"`
	ContentHTML template.HTML `gorm:"-" json:"content_html,omitempty"`
}
