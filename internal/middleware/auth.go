package middleware

import (
	"net/http"

	"moyu/internal/store"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const CheckUserKey = "user"
const UnreadCountKey = "unread_count"

// LoadUser 从 session 解析当前用户并塞进请求上下文。
// session 里的 user_id 已失效（用户被删）时视同未登录。
func LoadUser(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		userID := session.Get("user_id")

		if uid, ok := userID.(uint); ok {
			user, err := s.GetUser(uid)
			if err == nil {
				c.Set(CheckUserKey, user)

				if count, err := s.UnreadNotificationCount(user.ID); err == nil {
					c.Set(UnreadCountKey, count)
				}
			}
		}
		c.Next()
	}
}

// AuthRequired 要求已登录，未登录返回 401 JSON
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get(CheckUserKey); !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "请先登录"})
			return
		}
		c.Next()
	}
}
