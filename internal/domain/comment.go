package domain

import "time"

// Comment is a review note pinned to a page at a canvas position.
// Frame scopes the comment to one device breakpoint, since the same page
// renders at multiple widths.
type Comment struct {
	ID        string    `json:"id"`
	PageID    string    `json:"pageId"`
	Text      string    `json:"text"`
	X         float64   `json:"x"`
	Y         float64   `json:"y"`
	Frame     string    `json:"frame"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"createdAt"`
}

type CommentStore interface {
	CreateComment(c *Comment) error
	ListComments(pageID string) ([]Comment, error)
	DeleteComment(id string) error
	DeleteCommentsByPage(pageID string) error
}
