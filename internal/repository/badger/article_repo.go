package badger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/dgraph-io/badger/v4"

	"github.com/minbar-press/minbar/internal/domain"
)

// ArticleRepo implements ArticleRepository using BadgerDB
type ArticleRepo struct {
	db *DB
}

// NewArticleRepo creates a new BadgerDB-based article repository
func NewArticleRepo(db *DB) *ArticleRepo {
	return &ArticleRepo{db: db}
}

func articleIDKey(id string) []byte {
	return []byte(fmt.Sprintf("article:id:%s", id))
}

func articleTimeKey(article *domain.Article) []byte {
	return []byte(fmt.Sprintf("article:time:%020d:%s", article.CreatedAt.UnixNano(), article.ID))
}

func articleSectionKey(article *domain.Article) []byte {
	return []byte(fmt.Sprintf("article:section:%s:%020d:%s", article.SectionID, article.CreatedAt.UnixNano(), article.ID))
}

// Create creates a new article
func (r *ArticleRepo) Create(ctx context.Context, article *domain.Article) error {
	return r.db.Update(func(txn *badger.Txn) error {
		data, err := json.Marshal(article)
		if err != nil {
			return err
		}

		if err := txn.Set(articleIDKey(article.ID), data); err != nil {
			return err
		}

		// Time index for newest-first scans
		if err := txn.Set(articleTimeKey(article), []byte(article.ID)); err != nil {
			return err
		}

		// Section index
		return txn.Set(articleSectionKey(article), []byte(article.ID))
	})
}

// GetByID retrieves an article by ID
func (r *ArticleRepo) GetByID(ctx context.Context, id string) (*domain.Article, error) {
	var article domain.Article
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(articleIDKey(id))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return domain.ErrArticleNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &article)
		})
	})
	if err != nil {
		return nil, err
	}
	return &article, nil
}

// GetByIDs retrieves articles by IDs, preserving input order
func (r *ArticleRepo) GetByIDs(ctx context.Context, ids []string) ([]*domain.Article, error) {
	var articles []*domain.Article
	for _, id := range ids {
		article, err := r.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, domain.ErrArticleNotFound) {
				continue
			}
			return nil, err
		}
		articles = append(articles, article)
	}
	return articles, nil
}

// Update updates an existing article
func (r *ArticleRepo) Update(ctx context.Context, article *domain.Article) error {
	return r.db.Update(func(txn *badger.Txn) error {
		// Load the stored copy to clean up section index on move
		item, err := txn.Get(articleIDKey(article.ID))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return domain.ErrArticleNotFound
			}
			return err
		}
		var old domain.Article
		if err := item.Value(func(val []byte) error {
			return json.Unmarshal(val, &old)
		}); err != nil {
			return err
		}

		if old.SectionID != article.SectionID {
			if err := txn.Delete(articleSectionKey(&old)); err != nil {
				return err
			}
			if err := txn.Set(articleSectionKey(article), []byte(article.ID)); err != nil {
				return err
			}
		}

		data, err := json.Marshal(article)
		if err != nil {
			return err
		}
		return txn.Set(articleIDKey(article.ID), data)
	})
}

// Delete deletes an article by ID
func (r *ArticleRepo) Delete(ctx context.Context, id string) error {
	return r.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get(articleIDKey(id))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return domain.ErrArticleNotFound
			}
			return err
		}
		var article domain.Article
		if err := item.Value(func(val []byte) error {
			return json.Unmarshal(val, &article)
		}); err != nil {
			return err
		}

		txn.Delete(articleTimeKey(&article))
		txn.Delete(articleSectionKey(&article))
		return txn.Delete(articleIDKey(id))
	})
}

// DeleteBySection deletes all articles in a section and returns their IDs
func (r *ArticleRepo) DeleteBySection(ctx context.Context, sectionID string) ([]string, error) {
	articles, err := r.ListBySection(ctx, sectionID)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(articles))
	for _, article := range articles {
		if err := r.Delete(ctx, article.ID); err != nil && !errors.Is(err, domain.ErrArticleNotFound) {
			return nil, err
		}
		ids = append(ids, article.ID)
	}
	return ids, nil
}

// scanNewestFirst walks the time index in reverse and yields articles
func (r *ArticleRepo) scanNewestFirst(visit func(*domain.Article) bool) error {
	return r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchSize = 100
		opts.Reverse = true // Newest first
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte("article:time:")
		for it.Seek(append(prefix, 0xFF)); it.ValidForPrefix(prefix); it.Next() {
			var id string
			if err := it.Item().Value(func(val []byte) error {
				id = string(val)
				return nil
			}); err != nil {
				continue
			}

			item, err := txn.Get(articleIDKey(id))
			if err != nil {
				continue
			}
			var article domain.Article
			if err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &article)
			}); err != nil {
				continue
			}

			if !visit(&article) {
				return nil
			}
		}
		return nil
	})
}

// List retrieves articles with pagination and filtering
// Note: this is an in-memory scan/filter; complex queries belong to the
// Bleve index.
func (r *ArticleRepo) List(ctx context.Context, filter *domain.ArticleListFilter) ([]*domain.Article, int, error) {
	var articles []*domain.Article

	err := r.scanNewestFirst(func(article *domain.Article) bool {
		if filter.Author != "" && !strings.Contains(strings.ToLower(article.Author), strings.ToLower(filter.Author)) {
			return true
		}
		if filter.SectionID != "" && article.SectionID != filter.SectionID {
			return true
		}
		for _, tag := range filter.Tags {
			if !hasTag(article, tag) {
				return true
			}
		}
		if !filter.FromDate.IsZero() && article.CreatedAt.Before(filter.FromDate) {
			return true
		}
		if !filter.ToDate.IsZero() && article.CreatedAt.After(filter.ToDate) {
			return true
		}
		articles = append(articles, article)
		return true
	})
	if err != nil {
		return nil, 0, err
	}

	total := len(articles)
	if filter.Limit <= 0 {
		return articles, total, nil
	}

	start := (filter.Page - 1) * filter.Limit
	if start > total {
		start = total
	}
	end := start + filter.Limit
	if end > total {
		end = total
	}
	return articles[start:end], total, nil
}

// ListBySection retrieves all articles in a section, newest first
func (r *ArticleRepo) ListBySection(ctx context.Context, sectionID string) ([]*domain.Article, error) {
	articles, _, err := r.List(ctx, &domain.ArticleListFilter{SectionID: sectionID})
	return articles, err
}

// ListByTag retrieves all articles carrying a tag, newest first
func (r *ArticleRepo) ListByTag(ctx context.Context, tag string) ([]*domain.Article, error) {
	articles, _, err := r.List(ctx, &domain.ArticleListFilter{Tags: []string{tag}})
	return articles, err
}

// AdjustLikes changes an article's like counter by delta
func (r *ArticleRepo) AdjustLikes(ctx context.Context, id string, delta int) error {
	return r.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get(articleIDKey(id))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return domain.ErrArticleNotFound
			}
			return err
		}
		var article domain.Article
		if err := item.Value(func(val []byte) error {
			return json.Unmarshal(val, &article)
		}); err != nil {
			return err
		}

		article.LikesCount += delta
		if article.LikesCount < 0 {
			article.LikesCount = 0
		}

		data, err := json.Marshal(&article)
		if err != nil {
			return err
		}
		return txn.Set(articleIDKey(id), data)
	})
}

// TagCounts returns the usage count for every tag across all articles
func (r *ArticleRepo) TagCounts(ctx context.Context) (map[string]int, error) {
	counts := make(map[string]int)
	err := r.scanNewestFirst(func(article *domain.Article) bool {
		for _, tag := range article.Tags {
			counts[tag]++
		}
		return true
	})
	if err != nil {
		return nil, err
	}
	return counts, nil
}

func hasTag(article *domain.Article, tag string) bool {
	for _, t := range article.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
