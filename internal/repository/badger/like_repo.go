package badger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"github.com/minbar-press/minbar/internal/domain"
)

// LikeRepo implements LikeRepository using BadgerDB
type LikeRepo struct {
	db *DB
}

// NewLikeRepo creates a new BadgerDB-based like repository
func NewLikeRepo(db *DB) *LikeRepo {
	return &LikeRepo{db: db}
}

func likeKey(articleID, userID string) []byte {
	return []byte(fmt.Sprintf("like:article:%s:%s", articleID, userID))
}

// Create records a like
func (r *LikeRepo) Create(ctx context.Context, like *domain.Like) error {
	return r.db.Update(func(txn *badger.Txn) error {
		key := likeKey(like.ArticleID, like.UserID)
		if _, err := txn.Get(key); err == nil {
			return domain.ErrAlreadyLiked
		}
		data, err := json.Marshal(like)
		if err != nil {
			return err
		}
		return txn.Set(key, data)
	})
}

// Exists checks whether a user has liked an article
func (r *LikeRepo) Exists(ctx context.Context, userID, articleID string) (bool, error) {
	var found bool
	err := r.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get(likeKey(articleID, userID))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return nil
			}
			return err
		}
		found = true
		return nil
	})
	return found, err
}

// Delete removes a user's like on an article
func (r *LikeRepo) Delete(ctx context.Context, userID, articleID string) error {
	return r.db.Update(func(txn *badger.Txn) error {
		key := likeKey(articleID, userID)
		if _, err := txn.Get(key); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return domain.ErrNotLiked
			}
			return err
		}
		return txn.Delete(key)
	})
}

// DeleteByArticle removes all likes on an article
func (r *LikeRepo) DeleteByArticle(ctx context.Context, articleID string) error {
	prefix := []byte(fmt.Sprintf("like:article:%s:", articleID))

	var keys [][]byte
	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			keys = append(keys, it.Item().KeyCopy(nil))
		}
		return nil
	})
	if err != nil {
		return err
	}

	return r.db.Update(func(txn *badger.Txn) error {
		for _, key := range keys {
			if err := txn.Delete(key); err != nil {
				return err
			}
		}
		return nil
	})
}
