package store

import (
	"errors"
	"fmt"
	"testing"

	"moyu/internal/models"
)

func TestReplyNotificationFlow(t *testing.T) {
	s := newTestStore(t)
	author := newTestUser(t, s, "1001", "阿墨")
	replier := newTestUser(t, s, "1002", "小屿")

	root, err := s.CreateComment("post-n", author.ID, "根评论", "")
	if err != nil {
		t.Fatalf("create root: %v", err)
	}
	reply, err := s.CreateComment("post-n", replier.ID, "回复", root.Cid)
	if err != nil {
		t.Fatalf("create reply: %v", err)
	}

	if err := s.CreateReplyNotification(replier, root, reply); err != nil {
		t.Fatalf("CreateReplyNotification failed: %v", err)
	}

	notifications, err := s.ListNotifications(author.ID)
	if err != nil {
		t.Fatalf("ListNotifications failed: %v", err)
	}
	if len(notifications) != 1 {
		t.Fatalf("Expected 1 notification, got %d", len(notifications))
	}
	n := notifications[0]
	if n.Type != models.NotificationTypeReplyComment || n.IsRead {
		t.Errorf("Unexpected notification state: %+v", n)
	}
	if n.Actor.Uid != replier.Uid || n.Comment.Cid != reply.Cid {
		t.Errorf("Expected actor and comment attached, got actor=%q comment=%q", n.Actor.Uid, n.Comment.Cid)
	}

	count, err := s.UnreadNotificationCount(author.ID)
	if err != nil || count != 1 {
		t.Errorf("Expected 1 unread, got %d / %v", count, err)
	}

	// 自己回复自己不产生通知
	selfReply, err := s.CreateComment("post-n", author.ID, "自己回自己", root.Cid)
	if err != nil {
		t.Fatalf("create self reply: %v", err)
	}
	if err := s.CreateReplyNotification(author, root, selfReply); err != nil {
		t.Fatalf("CreateReplyNotification (self) failed: %v", err)
	}
	if after, _ := s.ListNotifications(author.ID); len(after) != 1 {
		t.Errorf("Self reply should not notify, got %d notifications", len(after))
	}

	if err := s.MarkNotificationRead(fmt.Sprint(n.ID), author.ID); err != nil {
		t.Fatalf("MarkNotificationRead failed: %v", err)
	}
	if count, _ := s.UnreadNotificationCount(author.ID); count != 0 {
		t.Errorf("Expected 0 unread after read, got %d", count)
	}

	var notFoundErr *NotFoundError
	if err := s.MarkNotificationRead("9999", author.ID); !errors.As(err, &notFoundErr) {
		t.Errorf("Expected NotFoundError for unknown notification, got %v", err)
	}
	// 只能操作自己的通知
	if err := s.DeleteNotification(fmt.Sprint(n.ID), replier.ID); !errors.As(err, &notFoundErr) {
		t.Errorf("Expected NotFoundError for foreign notification, got %v", err)
	}
	if err := s.DeleteNotification(fmt.Sprint(n.ID), author.ID); err != nil {
		t.Fatalf("DeleteNotification failed: %v", err)
	}
	if after, _ := s.ListNotifications(author.ID); len(after) != 0 {
		t.Errorf("Expected nothing after delete, got %d", len(after))
	}
}

func TestMarkAllNotificationsRead(t *testing.T) {
	s := newTestStore(t)
	author := newTestUser(t, s, "1001", "阿墨")
	replier := newTestUser(t, s, "1002", "小屿")

	root, err := s.CreateComment("post-n", author.ID, "根评论", "")
	if err != nil {
		t.Fatalf("create root: %v", err)
	}
	for i := 0; i < 3; i++ {
		reply, err := s.CreateComment("post-n", replier.ID, fmt.Sprintf("回复 %d", i), root.Cid)
		if err != nil {
			t.Fatalf("create reply: %v", err)
		}
		if err := s.CreateReplyNotification(replier, root, reply); err != nil {
			t.Fatalf("notify: %v", err)
		}
	}

	if count, _ := s.UnreadNotificationCount(author.ID); count != 3 {
		t.Fatalf("Expected 3 unread, got %d", count)
	}
	if err := s.MarkAllNotificationsRead(author.ID); err != nil {
		t.Fatalf("MarkAllNotificationsRead failed: %v", err)
	}
	if count, _ := s.UnreadNotificationCount(author.ID); count != 0 {
		t.Errorf("Expected 0 unread after read-all, got %d", count)
	}
}
