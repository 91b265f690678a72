package router

import (
	"moyu/internal/handlers"
	"moyu/internal/middleware"
	"moyu/internal/store"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, s *store.Store) {
	authHandler := handlers.NewAuthHandler(s)
	commentHandler := handlers.NewCommentHandler(s)
	notificationHandler := handlers.NewNotificationHandler(s)

	api := r.Group("/api")

	// 公共路由 (Public Routes)
	api.GET("/comments", commentHandler.List)        // 文章评论（树形或扁平）
	api.GET("/comments/stats", commentHandler.Stats) // 评论数统计

	api.GET("/auth/:provider/login", authHandler.Login)       // 发起第三方登录
	api.GET("/auth/:provider/callback", authHandler.Callback) // 登录回调
	api.GET("/auth/me", authHandler.Me)                       // 当前登录态
	api.POST("/auth/logout", authHandler.Logout)              // 退出登录

	// 受保护路由 (Protected Routes)
	authorized := api.Group("/")
	authorized.Use(middleware.AuthRequired())
	{
		authorized.POST("/comments", commentHandler.Create)         // 发表评论/回复
		authorized.POST("/comments/:cid/like", commentHandler.Like) // 点赞/取消点赞
		authorized.PUT("/comments/:cid", commentHandler.Update)     // 编辑评论
		authorized.DELETE("/comments/:cid", commentHandler.Delete)  // 删除评论

		authorized.GET("/notifications", notificationHandler.List)              // 我的通知
		authorized.POST("/notifications/:id/read", notificationHandler.Read)    // 标记单条已读
		authorized.POST("/notifications/read-all", notificationHandler.ReadAll) // 全部标记已读
		authorized.DELETE("/notifications/:id", notificationHandler.Delete)     // 删除通知
	}
}
