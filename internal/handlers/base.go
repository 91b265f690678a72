package handlers

import (
	"errors"
	"log"
	"net/http"
	"os"

	"moyu/internal/auth"
	"moyu/internal/middleware"
	"moyu/internal/models"
	"moyu/internal/store"

	"github.com/gin-gonic/gin"
)

// CurrentUser 取 LoadUser 塞进上下文的用户，受保护路由里保证存在
func CurrentUser(c *gin.Context) *models.User {
	return c.MustGet(middleware.CheckUserKey).(*models.User)
}

// AbortWithError 按错误种类映射状态码：
// 校验 400、登录态 401、越权 403、不存在 404，其余按 500 兜底，
// 细节只进日志不出响应
func AbortWithError(c *gin.Context, err error) {
	var (
		validationErr    *store.ValidationError
		notFoundErr      *store.NotFoundError
		authorizationErr *store.AuthorizationError
		authErr          *auth.AuthError
	)
	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Msg})
	case errors.As(err, &notFoundErr):
		c.JSON(http.StatusNotFound, gin.H{"error": notFoundErr.Msg})
	case errors.As(err, &authorizationErr):
		c.JSON(http.StatusForbidden, gin.H{"error": authorizationErr.Msg})
	case errors.As(err, &authErr):
		c.JSON(http.StatusUnauthorized, gin.H{"error": authErr.Msg})
	default:
		log.Printf("internal error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "服务器内部错误"})
	}
	c.Abort()
}

// SiteURL 站点根地址，拼接回调和通知链接用
func SiteURL() string {
	return envOr("SITE_URL", "http://localhost:8080")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
