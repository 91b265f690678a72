package handlers

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"moyu/internal/models"
	"moyu/internal/services"
	"moyu/internal/store"
	"moyu/internal/utils"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	store *store.Store
	mail  *services.MailService
}

func NewCommentHandler(s *store.Store) *CommentHandler {
	return &CommentHandler{
		store: s,
		mail:  services.NewMailService(),
	}
}

func treeCacheKey(slug string) string  { return "comments:tree:" + slug }
func statsCacheKey(slug string) string { return "comments:stats:" + slug }

// invalidateArticle 任何写操作后失效该文章的树缓存和统计缓存
func invalidateArticle(slug string) {
	cache := utils.GetCache()
	cache.Delete(treeCacheKey(slug))
	cache.Delete(statsCacheKey(slug))
	cache.Delete(statsCacheKey(""))
}

// renderContent 为响应填充净化后的 HTML
func renderContent(comments []models.Comment) {
	for i := range comments {
		comments[i].ContentHTML = utils.RenderMarkdown(comments[i].Content)
	}
}

// List GET /api/comments?article=<slug>[&shape=flat]
// 默认返回回复树，shape=flat 返回创建顺序的扁平列表
func (h *CommentHandler) List(c *gin.Context) {
	slug := c.Query("article")
	if slug == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少 article 参数"})
		return
	}
	shape := c.Query("shape")

	if shape != "flat" {
		if cached := utils.GetCache().Get(treeCacheKey(slug)); cached != nil {
			if tree, ok := cached.([]*store.CommentNode); ok {
				c.JSON(http.StatusOK, tree)
				return
			}
		}
	}

	comments, err := h.store.ListComments(slug)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	renderContent(comments)

	if shape == "flat" {
		c.JSON(http.StatusOK, comments)
		return
	}

	tree := store.BuildTree(comments)
	utils.GetCache().Set(treeCacheKey(slug), tree, 5*time.Minute)
	c.JSON(http.StatusOK, tree)
}

type createCommentRequest struct {
	ArticleSlug string `json:"article_slug"`
	Content     string `json:"content"`
	ParentID    string `json:"parent_id"`
}

// Create POST /api/comments
func (h *CommentHandler) Create(c *gin.Context) {
	user := CurrentUser(c)

	var req createCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求体格式不正确"})
		return
	}

	comment, err := h.store.CreateComment(req.ArticleSlug, user.ID, req.Content, req.ParentID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	invalidateArticle(comment.ArticleSlug)

	// 异步通知被回复者（站内 + 邮件）
	if comment.ParentCid != "" {
		go h.notifyReply(user, comment)
	}

	comment.ContentHTML = utils.RenderMarkdown(comment.Content)
	c.JSON(http.StatusCreated, comment)
}

func (h *CommentHandler) notifyReply(actor *models.User, reply *models.Comment) {
	parent, err := h.store.GetComment(reply.ParentCid)
	if err != nil {
		return
	}
	if parent.UserID == actor.ID {
		return
	}
	if err := h.store.CreateReplyNotification(actor, parent, reply); err != nil {
		log.Printf("[notify] 创建回复通知失败 (cid=%s): %v", reply.Cid, err)
	}
	link := fmt.Sprintf("%s/posts/%s#comment-%s", SiteURL(), reply.ArticleSlug, reply.Cid)
	h.mail.SendReplyNotification(parent.User.Email, actor.Name, reply.Content, parent.Content, link)
}

// Like POST /api/comments/:cid/like 点赞开关
func (h *CommentHandler) Like(c *gin.Context) {
	user := CurrentUser(c)
	cid := c.Param("cid")

	comment, err := h.store.ToggleLike(cid, user.ID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	invalidateArticle(comment.ArticleSlug)

	comment.ContentHTML = utils.RenderMarkdown(comment.Content)
	c.JSON(http.StatusOK, comment)
}

type updateCommentRequest struct {
	Content string `json:"content"`
}

// Update PUT /api/comments/:cid 编辑自己的评论
func (h *CommentHandler) Update(c *gin.Context) {
	user := CurrentUser(c)
	cid := c.Param("cid")

	var req updateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求体格式不正确"})
		return
	}

	comment, err := h.store.UpdateComment(cid, user.ID, req.Content)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	invalidateArticle(comment.ArticleSlug)

	comment.ContentHTML = utils.RenderMarkdown(comment.Content)
	c.JSON(http.StatusOK, comment)
}

// Delete DELETE /api/comments/:cid 软删除自己的评论
func (h *CommentHandler) Delete(c *gin.Context) {
	user := CurrentUser(c)
	cid := c.Param("cid")

	comment, err := h.store.DeleteComment(cid, user.ID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	invalidateArticle(comment.ArticleSlug)

	comment.ContentHTML = utils.RenderMarkdown(comment.Content)
	c.JSON(http.StatusOK, comment)
}

// Stats GET /api/comments/stats[?article=<slug>]
func (h *CommentHandler) Stats(c *gin.Context) {
	slug := c.Query("article")

	if cached := utils.GetCache().Get(statsCacheKey(slug)); cached != nil {
		if stats, ok := cached.(*store.CommentStats); ok {
			c.JSON(http.StatusOK, stats)
			return
		}
	}

	stats, err := h.store.Stats(slug)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	utils.GetCache().Set(statsCacheKey(slug), stats, 1*time.Minute)
	c.JSON(http.StatusOK, stats)
}
