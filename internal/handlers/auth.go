package handlers

import (
	"net/http"

	"moyu/internal/middleware"
	"moyu/internal/models"
	"moyu/internal/store"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	store *store.Store
}

func NewAuthHandler(s *store.Store) *AuthHandler {
	return &AuthHandler{store: s}
}

// Me GET /api/auth/me 返回当前登录态
func (h *AuthHandler) Me(c *gin.Context) {
	user, exists := c.Get(middleware.CheckUserKey)
	if !exists {
		c.JSON(http.StatusOK, gin.H{"authenticated": false})
		return
	}

	resp := gin.H{
		"authenticated": true,
		"user":          user.(*models.User),
	}
	if count, ok := c.Get(middleware.UnreadCountKey); ok {
		resp["unread_count"] = count.(int64)
	}
	c.JSON(http.StatusOK, resp)
}

// Logout POST /api/auth/logout 清除登录态
func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Delete("user_id")
	session.Save()
	c.JSON(http.StatusOK, gin.H{"authenticated": false})
}
