package feed

import "time"

// CommentRow is a flat comment row plus the per-viewer like state joined
// in by id before tree construction.
type CommentRow struct {
	ID              string    `json:"id"`
	PostID          string    `json:"post_id"`
	UserID          string    `json:"user_id"`
	Content         string    `json:"content"`
	ParentCommentID string    `json:"parent_comment_id,omitempty"`
	AuthorName      string    `json:"author_name,omitempty"`
	AuthorAvatarURL string    `json:"author_avatar_url,omitempty"`
	LikeCount       int       `json:"like_count"`
	ViewerHasLiked  bool      `json:"viewer_has_liked"`
	CreatedAt       time.Time `json:"created_at"`
}

// CommentNode is a comment with its replies attached.
type CommentNode struct {
	CommentRow
	Replies []*CommentNode `json:"replies"`
}

// BuildThread assembles flat comment rows into a tree. Each comment with a
// parent that resolves to another comment in the input becomes a reply of
// that parent; everything else is a root. A parent id that resolves to
// nothing (the parent was deleted) promotes the comment to a root rather
// than dropping it. Input order is preserved in the root list and in every
// replies list, so callers who fetch ordered by creation time get a
// chronological thread. Runs in O(n).
//
// Replies-to-replies stay attached under their immediate parent; rendering
// deeper nesting as two visual levels is the caller's concern.
func BuildThread(comments []CommentRow) []*CommentNode {
	nodes := make(map[string]*CommentNode, len(comments))
	ordered := make([]*CommentNode, 0, len(comments))
	for i := range comments {
		node := &CommentNode{CommentRow: comments[i], Replies: []*CommentNode{}}
		nodes[node.ID] = node
		ordered = append(ordered, node)
	}

	roots := make([]*CommentNode, 0, len(comments))
	for _, node := range ordered {
		if node.ParentCommentID != "" {
			if parent, ok := nodes[node.ParentCommentID]; ok {
				parent.Replies = append(parent.Replies, node)
				continue
			}
		}
		roots = append(roots, node)
	}
	return roots
}
