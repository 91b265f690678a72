package handlers

import (
	"net/http"

	"moyu/internal/store"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	store *store.Store
}

func NewNotificationHandler(s *store.Store) *NotificationHandler {
	return &NotificationHandler{store: s}
}

// List GET /api/notifications 最近 50 条
func (h *NotificationHandler) List(c *gin.Context) {
	user := CurrentUser(c)

	notifications, err := h.store.ListNotifications(user.ID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, notifications)
}

// Read POST /api/notifications/:id/read
func (h *NotificationHandler) Read(c *gin.Context) {
	user := CurrentUser(c)

	if err := h.store.MarkNotificationRead(c.Param("id"), user.ID); err != nil {
		AbortWithError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

// ReadAll POST /api/notifications/read-all
func (h *NotificationHandler) ReadAll(c *gin.Context) {
	user := CurrentUser(c)

	if err := h.store.MarkAllNotificationsRead(user.ID); err != nil {
		AbortWithError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

// Delete DELETE /api/notifications/:id
func (h *NotificationHandler) Delete(c *gin.Context) {
	user := CurrentUser(c)

	if err := h.store.DeleteNotification(c.Param("id"), user.ID); err != nil {
		AbortWithError(c, err)
		return
	}
	c.Status(http.StatusOK)
}
