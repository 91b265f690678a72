package store

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"moyu/internal/models"
	"moyu/internal/utils"

	"gorm.io/gorm"
)

// MaxContentLength 评论内容长度上限（按字符计）
const MaxContentLength = 5000

// 软删除后展示的占位内容，保留楼层结构
const deletedContent = "该评论已删除。"

// CommentStats 评论聚合统计
type CommentStats struct {
	Total     int64            `json:"total"`
	ByArticle map[string]int64 `json:"by_article"`
}

func validateContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return &ValidationError{Msg: "评论内容不能为空"}
	}
	if utf8.RuneCountInString(content) > MaxContentLength {
		return &ValidationError{Msg: fmt.Sprintf("评论内容超过 %d 字上限", MaxContentLength)}
	}
	return nil
}

// CreateComment 发表评论或回复。parentCid 非空时必须指向同一篇文章下
// 已存在的评论；父评论在写入时校验，父子关系建立后不可变，因此不会出现环。
func (s *Store) CreateComment(slug string, authorID uint, content string, parentCid string) (*models.Comment, error) {
	if strings.TrimSpace(slug) == "" {
		return nil, &ValidationError{Msg: "缺少文章标识"}
	}
	if err := validateContent(content); err != nil {
		return nil, err
	}

	var parentID *uint
	if parentCid != "" {
		var parent models.Comment
		if err := s.db.Where("cid = ?", parentCid).First(&parent).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, &NotFoundError{Msg: "被回复的评论不存在"}
			}
			return nil, fmt.Errorf("find parent comment: %w", err)
		}
		if parent.ArticleSlug != slug {
			return nil, &NotFoundError{Msg: "被回复的评论不属于该文章"}
		}
		parentID = &parent.ID
	}

	comment := models.Comment{
		Cid:         utils.RandString(8),
		ArticleSlug: slug,
		UserID:      authorID,
		ParentID:    parentID,
		Content:     content,
	}
	if err := s.db.Create(&comment).Error; err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	return s.GetComment(comment.Cid)
}

// ListComments 返回文章下全部评论，按创建时间升序的扁平列表。
// 规模上限是单篇文章的讨论量，不做分页。
func (s *Store) ListComments(slug string) ([]models.Comment, error) {
	var comments []models.Comment
	err := s.db.Preload("User").
		Where("article_slug = ?", slug).
		Order("created_at ASC, id ASC").
		Find(&comments).Error
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	if err := s.fillLikeState(comments); err != nil {
		return nil, err
	}
	return comments, nil
}

// GetComment 按对外 ID 查单条评论，带作者和点赞状态
func (s *Store) GetComment(cid string) (*models.Comment, error) {
	var comment models.Comment
	if err := s.db.Preload("User").Where("cid = ?", cid).First(&comment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Msg: "评论不存在"}
		}
		return nil, fmt.Errorf("find comment: %w", err)
	}
	one := []models.Comment{comment}
	if err := s.fillLikeState(one); err != nil {
		return nil, err
	}
	return &one[0], nil
}

// ToggleLike 点赞开关：已赞则取消，未赞则添加。对同一 (评论, 用户) 偶数次
// 调用回到原状态。并发下唯一索引兜底，冲突按已点赞处理。
func (s *Store) ToggleLike(cid string, userID uint) (*models.Comment, error) {
	comment, err := s.GetComment(cid)
	if err != nil {
		return nil, err
	}
	if comment.IsDeleted {
		return nil, &NotFoundError{Msg: "评论已删除"}
	}

	tx := s.db.Begin()
	var existing models.CommentLike
	err = tx.Where("comment_id = ? AND user_id = ?", comment.ID, userID).First(&existing).Error
	switch {
	case err == nil:
		if err := tx.Delete(&existing).Error; err != nil {
			tx.Rollback()
			return nil, fmt.Errorf("remove like: %w", err)
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		like := models.CommentLike{CommentID: comment.ID, UserID: userID}
		if err := tx.Create(&like).Error; err != nil {
			// 并发重复点赞触发唯一索引冲突，当作已点赞，返回当前状态
			tx.Rollback()
			return s.GetComment(cid)
		}
	default:
		tx.Rollback()
		return nil, fmt.Errorf("find like: %w", err)
	}
	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("commit like toggle: %w", err)
	}

	return s.GetComment(cid)
}

// UpdateComment 编辑评论内容，仅作者本人可操作
func (s *Store) UpdateComment(cid string, userID uint, content string) (*models.Comment, error) {
	comment, err := s.GetComment(cid)
	if err != nil {
		return nil, err
	}
	if comment.UserID != userID {
		return nil, &AuthorizationError{Msg: "只能编辑自己的评论"}
	}
	// 墓碑不可复活，软删除后内容固定
	if comment.IsDeleted {
		return nil, &NotFoundError{Msg: "评论已删除"}
	}
	if err := validateContent(content); err != nil {
		return nil, err
	}

	comment.Content = content
	comment.IsEdited = true
	if err := s.db.Save(comment).Error; err != nil {
		return nil, fmt.Errorf("update comment: %w", err)
	}
	return s.GetComment(cid)
}

// DeleteComment 软删除：只替换内容并打标记，行和子树保留，
// 回复链不会因删除断开
func (s *Store) DeleteComment(cid string, userID uint) (*models.Comment, error) {
	comment, err := s.GetComment(cid)
	if err != nil {
		return nil, err
	}
	if comment.UserID != userID {
		return nil, &AuthorizationError{Msg: "只能删除自己的评论"}
	}

	comment.Content = deletedContent
	comment.IsDeleted = true
	if err := s.db.Save(comment).Error; err != nil {
		return nil, fmt.Errorf("delete comment: %w", err)
	}
	return s.GetComment(cid)
}

// Stats 评论数统计，slug 为空时统计全站
func (s *Store) Stats(slug string) (*CommentStats, error) {
	type countRow struct {
		ArticleSlug string
		Count       int64
	}
	var rows []countRow

	q := s.db.Model(&models.Comment{})
	if slug != "" {
		q = q.Where("article_slug = ?", slug)
	}
	err := q.Select("article_slug, COUNT(*) as count").
		Group("article_slug").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("count comments: %w", err)
	}

	stats := &CommentStats{ByArticle: make(map[string]int64, len(rows))}
	for _, r := range rows {
		stats.ByArticle[r.ArticleSlug] = r.Count
		stats.Total += r.Count
	}
	return stats, nil
}

// fillLikeState 批量填充 Likes / LikedBy / ParentCid 三个派生字段
func (s *Store) fillLikeState(comments []models.Comment) error {
	if len(comments) == 0 {
		return nil
	}

	ids := make([]uint, len(comments))
	idToCid := make(map[uint]string, len(comments))
	for i := range comments {
		ids[i] = comments[i].ID
		idToCid[comments[i].ID] = comments[i].Cid
	}

	type likeRow struct {
		CommentID uint
		Uid       string
	}
	var likes []likeRow
	err := s.db.Model(&models.CommentLike{}).
		Select("comment_likes.comment_id, users.uid").
		Joins("JOIN users ON users.id = comment_likes.user_id").
		Where("comment_likes.comment_id IN ?", ids).
		Order("comment_likes.created_at ASC").
		Scan(&likes).Error
	if err != nil {
		return fmt.Errorf("load likes: %w", err)
	}

	likedBy := make(map[uint][]string, len(comments))
	for _, l := range likes {
		likedBy[l.CommentID] = append(likedBy[l.CommentID], l.Uid)
	}

	for i := range comments {
		c := &comments[i]
		c.LikedBy = likedBy[c.ID]
		if c.LikedBy == nil {
			c.LikedBy = []string{}
		}
		c.Likes = len(c.LikedBy)
		if c.ParentID != nil {
			// 父评论不在本次查询结果里时单独补一次（单条查询路径）
			if cid, ok := idToCid[*c.ParentID]; ok {
				c.ParentCid = cid
			} else {
				var parent models.Comment
				if err := s.db.Select("cid").First(&parent, *c.ParentID).Error; err == nil {
					c.ParentCid = parent.Cid
				}
			}
		}
	}
	return nil
}
