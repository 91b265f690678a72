package store

import (
	"moyu/internal/models"
)

// CommentNode 树形响应里的一个节点，Replies 按创建时间升序
type CommentNode struct {
	models.Comment
	Replies []*CommentNode `json:"replies"`
}

// BuildTree 把按创建时间升序的扁平评论列表组装成回复树。
// 输入有序则每一层的 Replies 自然保持创建顺序。
// 父评论不在输入集合里的评论提升为顶级，不丢弃。
func BuildTree(comments []models.Comment) []*CommentNode {
	nodes := make(map[uint]*CommentNode, len(comments))
	ordered := make([]*CommentNode, 0, len(comments))
	for i := range comments {
		n := &CommentNode{Comment: comments[i], Replies: []*CommentNode{}}
		nodes[n.ID] = n
		ordered = append(ordered, n)
	}

	roots := make([]*CommentNode, 0, len(ordered))
	for _, n := range ordered {
		if n.ParentID == nil {
			roots = append(roots, n)
			continue
		}
		parent, ok := nodes[*n.ParentID]
		if !ok {
			// 孤儿节点，提升为顶级
			roots = append(roots, n)
			continue
		}
		parent.Replies = append(parent.Replies, n)
	}
	return roots
}
