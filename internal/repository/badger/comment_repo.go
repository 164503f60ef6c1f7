package badger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"github.com/minbar-press/minbar/internal/domain"
)

// CommentRepo implements CommentRepository using BadgerDB
type CommentRepo struct {
	db *DB
}

// NewCommentRepo creates a new BadgerDB-based comment repository
func NewCommentRepo(db *DB) *CommentRepo {
	return &CommentRepo{db: db}
}

func commentIDKey(id string) []byte {
	return []byte(fmt.Sprintf("comment:id:%s", id))
}

func commentArticleKey(comment *domain.Comment) []byte {
	return []byte(fmt.Sprintf("comment:article:%s:%020d:%s", comment.ArticleID, comment.CreatedAt.UnixNano(), comment.ID))
}

// Create creates a new comment
func (r *CommentRepo) Create(ctx context.Context, comment *domain.Comment) error {
	return r.db.Update(func(txn *badger.Txn) error {
		data, err := json.Marshal(comment)
		if err != nil {
			return err
		}
		if err := txn.Set(commentIDKey(comment.ID), data); err != nil {
			return err
		}
		return txn.Set(commentArticleKey(comment), []byte(comment.ID))
	})
}

// GetByID retrieves a comment by ID
func (r *CommentRepo) GetByID(ctx context.Context, id string) (*domain.Comment, error) {
	var comment domain.Comment
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(commentIDKey(id))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return domain.ErrCommentNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &comment)
		})
	})
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// ListByArticle retrieves an article's comments, oldest first
func (r *CommentRepo) ListByArticle(ctx context.Context, articleID string) ([]*domain.Comment, error) {
	var comments []*domain.Comment
	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchSize = 50
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(fmt.Sprintf("comment:article:%s:", articleID))
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var id string
			if err := it.Item().Value(func(val []byte) error {
				id = string(val)
				return nil
			}); err != nil {
				continue
			}

			item, err := txn.Get(commentIDKey(id))
			if err != nil {
				continue
			}
			var comment domain.Comment
			if err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &comment)
			}); err != nil {
				continue
			}
			comments = append(comments, &comment)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return comments, nil
}

// Update updates an existing comment
func (r *CommentRepo) Update(ctx context.Context, comment *domain.Comment) error {
	return r.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(commentIDKey(comment.ID)); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return domain.ErrCommentNotFound
			}
			return err
		}
		data, err := json.Marshal(comment)
		if err != nil {
			return err
		}
		return txn.Set(commentIDKey(comment.ID), data)
	})
}

// Delete deletes a comment by ID
func (r *CommentRepo) Delete(ctx context.Context, id string) error {
	return r.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get(commentIDKey(id))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return domain.ErrCommentNotFound
			}
			return err
		}
		var comment domain.Comment
		if err := item.Value(func(val []byte) error {
			return json.Unmarshal(val, &comment)
		}); err != nil {
			return err
		}

		txn.Delete(commentArticleKey(&comment))
		return txn.Delete(commentIDKey(id))
	})
}

// DeleteByArticle deletes all comments on an article
func (r *CommentRepo) DeleteByArticle(ctx context.Context, articleID string) error {
	comments, err := r.ListByArticle(ctx, articleID)
	if err != nil {
		return err
	}
	for _, comment := range comments {
		if err := r.Delete(ctx, comment.ID); err != nil && !errors.Is(err, domain.ErrCommentNotFound) {
			return err
		}
	}
	return nil
}
