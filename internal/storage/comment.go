package storage

import (
	"time"

	"github.com/ahtisham02/hyperpitch-io-sub002/internal/domain"
)

// CommentStore implements domain.CommentStore using SQLite.
type CommentStore struct {
	db *DB
}

func NewCommentStore(db *DB) *CommentStore {
	return &CommentStore{db: db}
}

func (s *CommentStore) CreateComment(c *domain.Comment) error {
	c.CreatedAt = time.Now()
	_, err := s.db.conn.Exec(
		`INSERT INTO comments (id, page_id, text, x, y, frame, author, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.PageID, c.Text, c.X, c.Y, c.Frame, c.Author, c.CreatedAt,
	)
	return err
}

func (s *CommentStore) ListComments(pageID string) ([]domain.Comment, error) {
	rows, err := s.db.conn.Query(
		`SELECT id, page_id, text, x, y, frame, author, created_at FROM comments WHERE page_id = ? ORDER BY created_at ASC`,
		pageID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []domain.Comment
	for rows.Next() {
		var c domain.Comment
		if err := rows.Scan(&c.ID, &c.PageID, &c.Text, &c.X, &c.Y, &c.Frame, &c.Author, &c.CreatedAt); err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

func (s *CommentStore) DeleteComment(id string) error {
	_, err := s.db.conn.Exec(`DELETE FROM comments WHERE id = ?`, id)
	return err
}

func (s *CommentStore) DeleteCommentsByPage(pageID string) error {
	_, err := s.db.conn.Exec(`DELETE FROM comments WHERE page_id = ?`, pageID)
	return err
}
