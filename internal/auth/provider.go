package auth

import (
	"fmt"

	"moyu/internal/models"
)

// AuthError 第三方登录回调数据缺失或不合法
type AuthError struct {
	Msg string
}

func (e *AuthError) Error() string { return e.Msg }

// Identity 各家平台用户信息归一化后的结果，
// (Provider, ProviderID) 是后续 upsert 用户的身份键
type Identity struct {
	Provider   string
	ProviderID string
	Name       string
	Avatar     string
	Email      string
}

// GithubUser GitHub /user 接口的返回结构
type GithubUser struct {
	ID        int64  `json:"id"`
	Login     string `json:"login"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url"`
	Email     string `json:"email"`
}

// QQUser QQ 互联 get_user_info 接口的返回结构。
// OpenID 不在该接口里，由回调方从 oauth2.0/me 取到后填入。
type QQUser struct {
	OpenID       string `json:"openid"`
	Nickname     string `json:"nickname"`
	FigureURLQQ1 string `json:"figureurl_qq_1"`
	FigureURLQQ2 string `json:"figureurl_qq_2"`
}

// SignInPayload 登录回调拿到的原始用户信息，按来源打标
type SignInPayload struct {
	Provider string
	Github   *GithubUser
	QQ       *QQUser
}

// Normalize 把第三方回调数据归一化为 Identity。
// 平台侧用户标识或显示名缺失时返回 AuthError。
func Normalize(p SignInPayload) (*Identity, error) {
	switch p.Provider {
	case models.ProviderGithub:
		return normalizeGithub(p.Github)
	case models.ProviderQQ:
		return normalizeQQ(p.QQ)
	default:
		return nil, &AuthError{Msg: "不支持的登录方式: " + p.Provider}
	}
}

func normalizeGithub(u *GithubUser) (*Identity, error) {
	if u == nil || u.ID == 0 {
		return nil, &AuthError{Msg: "GitHub 回调缺少用户标识"}
	}
	name := u.Name
	if name == "" {
		name = u.Login
	}
	if name == "" {
		return nil, &AuthError{Msg: "GitHub 回调缺少用户名"}
	}
	return &Identity{
		Provider:   models.ProviderGithub,
		ProviderID: fmt.Sprintf("%d", u.ID),
		Name:       name,
		Avatar:     u.AvatarURL,
		Email:      u.Email,
	}, nil
}

func normalizeQQ(u *QQUser) (*Identity, error) {
	if u == nil || u.OpenID == "" {
		return nil, &AuthError{Msg: "QQ 回调缺少 openid"}
	}
	if u.Nickname == "" {
		return nil, &AuthError{Msg: "QQ 回调缺少昵称"}
	}
	// QQ 返回两个尺寸的头像，优先 100x100
	avatar := u.FigureURLQQ2
	if avatar == "" {
		avatar = u.FigureURLQQ1
	}
	return &Identity{
		Provider:   models.ProviderQQ,
		ProviderID: u.OpenID,
		Name:       u.Nickname,
		Avatar:     avatar,
	}, nil
}
