package handlers

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"

	"moyu/internal/auth"
	"moyu/internal/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"
	githuboauth "golang.org/x/oauth2/github"
)

// QQ 互联没有现成的 endpoint 包，地址直接写死
var qqEndpoint = oauth2.Endpoint{
	AuthURL:  "https://graph.qq.com/oauth2.0/authorize",
	TokenURL: "https://graph.qq.com/oauth2.0/token",
}

var oauthConfigs map[string]*oauth2.Config

// InitOAuth 初始化各登录渠道的 OAuth 配置
func InitOAuth() {
	siteURL := SiteURL()

	oauthConfigs = map[string]*oauth2.Config{
		models.ProviderGithub: {
			ClientID:     os.Getenv("GITHUB_CLIENT_ID"),
			ClientSecret: os.Getenv("GITHUB_CLIENT_SECRET"),
			RedirectURL:  siteURL + "/api/auth/github/callback",
			Scopes:       []string{"read:user", "user:email"},
			Endpoint:     githuboauth.Endpoint,
		},
		models.ProviderQQ: {
			ClientID:     os.Getenv("QQ_APP_ID"),
			ClientSecret: os.Getenv("QQ_APP_KEY"),
			RedirectURL:  siteURL + "/api/auth/qq/callback",
			Scopes:       []string{"get_user_info"},
			Endpoint:     qqEndpoint,
		},
	}
}

// generateStateToken 生成随机 state token
func generateStateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}

// Login GET /api/auth/:provider/login 发起第三方登录
func (h *AuthHandler) Login(c *gin.Context) {
	provider := c.Param("provider")
	config, ok := oauthConfigs[provider]
	if !ok {
		AbortWithError(c, &auth.AuthError{Msg: "不支持的登录方式: " + provider})
		return
	}

	state, err := generateStateToken()
	if err != nil {
		AbortWithError(c, fmt.Errorf("generate state token: %w", err))
		return
	}

	// state 存进 session，回调时校验
	session := sessions.Default(c)
	session.Set("oauth_state", state)
	session.Save()

	c.Redirect(http.StatusTemporaryRedirect, config.AuthCodeURL(state))
}

// Callback GET /api/auth/:provider/callback 处理第三方登录回调
func (h *AuthHandler) Callback(c *gin.Context) {
	provider := c.Param("provider")
	config, ok := oauthConfigs[provider]
	if !ok {
		AbortWithError(c, &auth.AuthError{Msg: "不支持的登录方式: " + provider})
		return
	}

	session := sessions.Default(c)
	savedState := session.Get("oauth_state")
	session.Delete("oauth_state")
	session.Save()

	if savedState == nil || c.Query("state") != savedState.(string) {
		AbortWithError(c, &auth.AuthError{Msg: "无效的状态参数"})
		return
	}

	code := c.Query("code")
	if code == "" {
		AbortWithError(c, &auth.AuthError{Msg: "未获取到授权码"})
		return
	}

	token, err := config.Exchange(context.Background(), code)
	if err != nil {
		AbortWithError(c, &auth.AuthError{Msg: "获取访问令牌失败"})
		return
	}

	payload, err := fetchSignInPayload(provider, config, token.AccessToken)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	identity, err := auth.Normalize(*payload)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	user, err := h.store.UpsertUser(identity)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	session.Set("user_id", user.ID)
	session.Save()

	c.Redirect(http.StatusFound, SiteURL())
}

// fetchSignInPayload 用 access token 拉取平台侧用户信息
func fetchSignInPayload(provider string, config *oauth2.Config, accessToken string) (*auth.SignInPayload, error) {
	switch provider {
	case models.ProviderGithub:
		u, err := fetchGithubUser(accessToken)
		if err != nil {
			return nil, err
		}
		return &auth.SignInPayload{Provider: provider, Github: u}, nil
	case models.ProviderQQ:
		u, err := fetchQQUser(config.ClientID, accessToken)
		if err != nil {
			return nil, err
		}
		return &auth.SignInPayload{Provider: provider, QQ: u}, nil
	}
	return nil, &auth.AuthError{Msg: "不支持的登录方式: " + provider}
}

func fetchGithubUser(accessToken string) (*auth.GithubUser, error) {
	body, err := getJSON("https://api.github.com/user", accessToken)
	if err != nil {
		return nil, err
	}

	var u auth.GithubUser
	if err := json.Unmarshal(body, &u); err != nil {
		return nil, &auth.AuthError{Msg: "GitHub 用户信息解析失败"}
	}
	return &u, nil
}

// fetchQQUser QQ 要分两步：先 oauth2.0/me 换 openid，再 get_user_info 拿资料
func fetchQQUser(appID, accessToken string) (*auth.QQUser, error) {
	meBody, err := getJSON("https://graph.qq.com/oauth2.0/me?access_token="+url.QueryEscape(accessToken), "")
	if err != nil {
		return nil, err
	}

	// me 接口返回 JSONP：callback( {...} ); 需要剥掉包装
	raw := string(meBody)
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return nil, &auth.AuthError{Msg: "QQ openid 响应格式不正确"}
	}
	var me struct {
		OpenID string `json:"openid"`
	}
	if err := json.Unmarshal([]byte(raw[start:end+1]), &me); err != nil {
		return nil, &auth.AuthError{Msg: "QQ openid 解析失败"}
	}

	infoURL := fmt.Sprintf(
		"https://graph.qq.com/user/get_user_info?access_token=%s&oauth_consumer_key=%s&openid=%s",
		url.QueryEscape(accessToken), url.QueryEscape(appID), url.QueryEscape(me.OpenID),
	)
	infoBody, err := getJSON(infoURL, "")
	if err != nil {
		return nil, err
	}

	var u auth.QQUser
	if err := json.Unmarshal(infoBody, &u); err != nil {
		return nil, &auth.AuthError{Msg: "QQ 用户信息解析失败"}
	}
	u.OpenID = me.OpenID
	return &u, nil
}

func getJSON(rawURL, bearer string) ([]byte, error) {
	req, err := http.NewRequest(http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &auth.AuthError{Msg: fmt.Sprintf("获取用户信息失败: %d", resp.StatusCode)}
	}
	return io.ReadAll(resp.Body)
}
