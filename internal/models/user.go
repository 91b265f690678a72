package models

import (
	"time"
)

// 支持的第三方登录来源
const (
	ProviderGithub = "github"
	ProviderQQ     = "qq"
)

type User struct {
	ID         uint      `gorm:"primaryKey" json:"-"`
	Uid        string    `gorm:"uniqueIndex;size:8;not null" json:"id"`
	Name       string    `gorm:"not null" json:"name"`
	Avatar     string    `json:"avatar"`
	Email      string    `json:"email,omitempty"`
	Provider   string    `gorm:"size:16;not null;uniqueIndex:idx_provider_identity" json:"provider"`
	ProviderID string    `gorm:"size:64;not null;uniqueIndex:idx_provider_identity" json:"-"` // 第三方平台侧的用户标识
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	// (provider, provider_id) 是持久身份键，Uid 只是对外的代理 ID
}
