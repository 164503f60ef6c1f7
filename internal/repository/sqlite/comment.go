package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/minbar-press/minbar/internal/domain"
)

// CommentRepo implements the CommentRepository interface using SQLite
type CommentRepo struct {
	db *DB
}

// NewCommentRepo creates a new comment repository
func NewCommentRepo(db *DB) *CommentRepo {
	return &CommentRepo{db: db}
}

// Create creates a new comment
func (r *CommentRepo) Create(ctx context.Context, comment *domain.Comment) error {
	query := `
		INSERT INTO comments (id, user_id, article_id, content, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		comment.ID,
		comment.UserID,
		comment.ArticleID,
		comment.Content,
		comment.CreatedAt,
		comment.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}
	return nil
}

// GetByID retrieves a comment by ID
func (r *CommentRepo) GetByID(ctx context.Context, id string) (*domain.Comment, error) {
	query := `SELECT id, user_id, article_id, content, created_at, updated_at FROM comments WHERE id = ?`

	var comment domain.Comment
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&comment.ID,
		&comment.UserID,
		&comment.ArticleID,
		&comment.Content,
		&comment.CreatedAt,
		&comment.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrCommentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}
	return &comment, nil
}

// ListByArticle retrieves an article's comments, oldest first
func (r *CommentRepo) ListByArticle(ctx context.Context, articleID string) ([]*domain.Comment, error) {
	query := `
		SELECT id, user_id, article_id, content, created_at, updated_at
		FROM comments WHERE article_id = ? ORDER BY created_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query, articleID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer rows.Close()

	var comments []*domain.Comment
	for rows.Next() {
		var comment domain.Comment
		err := rows.Scan(
			&comment.ID,
			&comment.UserID,
			&comment.ArticleID,
			&comment.Content,
			&comment.CreatedAt,
			&comment.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, &comment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating comments: %w", err)
	}
	return comments, nil
}

// Update updates an existing comment
func (r *CommentRepo) Update(ctx context.Context, comment *domain.Comment) error {
	query := `UPDATE comments SET content = ?, updated_at = ? WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, comment.Content, comment.UpdatedAt, comment.ID)
	if err != nil {
		return fmt.Errorf("failed to update comment: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if rows == 0 {
		return domain.ErrCommentNotFound
	}
	return nil
}

// Delete deletes a comment by ID
func (r *CommentRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM comments WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if rows == 0 {
		return domain.ErrCommentNotFound
	}
	return nil
}

// DeleteByArticle deletes all comments on an article
func (r *CommentRepo) DeleteByArticle(ctx context.Context, articleID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM comments WHERE article_id = ?`, articleID); err != nil {
		return fmt.Errorf("failed to delete article comments: %w", err)
	}
	return nil
}

// LikeRepo implements the LikeRepository interface using SQLite
type LikeRepo struct {
	db *DB
}

// NewLikeRepo creates a new like repository
func NewLikeRepo(db *DB) *LikeRepo {
	return &LikeRepo{db: db}
}

// Create records a like
func (r *LikeRepo) Create(ctx context.Context, like *domain.Like) error {
	query := `INSERT INTO likes (id, user_id, article_id, created_at) VALUES (?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query, like.ID, like.UserID, like.ArticleID, like.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create like: %w", err)
	}
	return nil
}

// Exists checks whether a user has liked an article
func (r *LikeRepo) Exists(ctx context.Context, userID, articleID string) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM likes WHERE user_id = ? AND article_id = ?`, userID, articleID).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check like: %w", err)
	}
	return count > 0, nil
}

// Delete removes a user's like on an article
func (r *LikeRepo) Delete(ctx context.Context, userID, articleID string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM likes WHERE user_id = ? AND article_id = ?`, userID, articleID)
	if err != nil {
		return fmt.Errorf("failed to delete like: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if rows == 0 {
		return domain.ErrNotLiked
	}
	return nil
}

// DeleteByArticle removes all likes on an article
func (r *LikeRepo) DeleteByArticle(ctx context.Context, articleID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM likes WHERE article_id = ?`, articleID); err != nil {
		return fmt.Errorf("failed to delete article likes: %w", err)
	}
	return nil
}
