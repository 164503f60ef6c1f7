package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/minbar-press/minbar/internal/domain"
)

// articleColumns defines the standard SELECT columns for articles
const articleColumns = `id, title, content, author, section_id, image_data, image_name, tags, likes_count, created_at, updated_at`

// scanner interface for scanning rows
type scanner interface {
	Scan(dest ...any) error
}

// scanArticle scans a single row into an Article struct
func scanArticle(row scanner) (*domain.Article, error) {
	var article domain.Article
	var tagsJSON string

	err := row.Scan(
		&article.ID,
		&article.Title,
		&article.Content,
		&article.Author,
		&article.SectionID,
		&article.ImageData,
		&article.ImageName,
		&tagsJSON,
		&article.LikesCount,
		&article.CreatedAt,
		&article.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if tagsJSON != "" {
		if err := json.Unmarshal([]byte(tagsJSON), &article.Tags); err != nil {
			return nil, fmt.Errorf("failed to unmarshal tags: %w", err)
		}
	}

	return &article, nil
}

// scanArticles scans multiple rows into an Article slice
func scanArticles(rows *sql.Rows) ([]*domain.Article, error) {
	var articles []*domain.Article
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan article: %w", err)
		}
		articles = append(articles, article)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating articles: %w", err)
	}
	return articles, nil
}

// ArticleRepo implements the ArticleRepository interface using SQLite
type ArticleRepo struct {
	db *DB
}

// NewArticleRepo creates a new article repository
func NewArticleRepo(db *DB) *ArticleRepo {
	return &ArticleRepo{db: db}
}

// Create creates a new article
func (r *ArticleRepo) Create(ctx context.Context, article *domain.Article) error {
	tagsJSON, err := json.Marshal(article.Tags)
	if err != nil {
		return fmt.Errorf("failed to marshal tags: %w", err)
	}

	query := `
		INSERT INTO articles (id, title, content, author, section_id, image_data, image_name, tags, likes_count, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.ExecContext(ctx, query,
		article.ID,
		article.Title,
		article.Content,
		article.Author,
		article.SectionID,
		article.ImageData,
		article.ImageName,
		string(tagsJSON),
		article.LikesCount,
		article.CreatedAt,
		article.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create article: %w", err)
	}

	return nil
}

// GetByID retrieves an article by ID
func (r *ArticleRepo) GetByID(ctx context.Context, id string) (*domain.Article, error) {
	query := fmt.Sprintf(`SELECT %s FROM articles WHERE id = ?`, articleColumns)

	article, err := scanArticle(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrArticleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get article: %w", err)
	}
	return article, nil
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
	tagsJSON, err := json.Marshal(article.Tags)
	if err != nil {
		return fmt.Errorf("failed to marshal tags: %w", err)
	}

	query := `
		UPDATE articles
		SET title = ?, content = ?, author = ?, section_id = ?, image_data = ?, image_name = ?, tags = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		article.Title,
		article.Content,
		article.Author,
		article.SectionID,
		article.ImageData,
		article.ImageName,
		string(tagsJSON),
		article.UpdatedAt,
		article.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update article: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if rows == 0 {
		return domain.ErrArticleNotFound
	}
	return nil
}

// Delete deletes an article by ID
func (r *ArticleRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM articles WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete article: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if rows == 0 {
		return domain.ErrArticleNotFound
	}
	return nil
}

// DeleteBySection deletes all articles in a section and returns their IDs
func (r *ArticleRepo) DeleteBySection(ctx context.Context, sectionID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id FROM articles WHERE section_id = ?`, sectionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list section articles: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan article id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating article ids: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, `DELETE FROM articles WHERE section_id = ?`, sectionID); err != nil {
		return nil, fmt.Errorf("failed to delete section articles: %w", err)
	}
	return ids, nil
}

// List retrieves articles with pagination and filtering
func (r *ArticleRepo) List(ctx context.Context, filter *domain.ArticleListFilter) ([]*domain.Article, int, error) {
	var conditions []string
	var args []any

	if filter.Author != "" {
		conditions = append(conditions, "author LIKE ?")
		args = append(args, "%"+filter.Author+"%")
	}
	if filter.SectionID != "" {
		conditions = append(conditions, "section_id = ?")
		args = append(args, filter.SectionID)
	}
	for _, tag := range filter.Tags {
		// Tags are stored as a JSON array; match the quoted element
		conditions = append(conditions, "tags LIKE ?")
		args = append(args, "%"+`"`+tag+`"`+"%")
	}
	if !filter.FromDate.IsZero() {
		conditions = append(conditions, "created_at >= ?")
		args = append(args, filter.FromDate)
	}
	if !filter.ToDate.IsZero() {
		conditions = append(conditions, "created_at <= ?")
		args = append(args, filter.ToDate)
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM articles` + where
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count articles: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM articles%s ORDER BY created_at DESC`, articleColumns, where)
	if filter.Limit > 0 {
		query += " LIMIT ? OFFSET ?"
		args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list articles: %w", err)
	}
	defer rows.Close()

	articles, err := scanArticles(rows)
	if err != nil {
		return nil, 0, err
	}
	return articles, total, nil
}

// ListBySection retrieves all articles in a section, newest first
func (r *ArticleRepo) ListBySection(ctx context.Context, sectionID string) ([]*domain.Article, error) {
	query := fmt.Sprintf(`SELECT %s FROM articles WHERE section_id = ? ORDER BY created_at DESC`, articleColumns)

	rows, err := r.db.QueryContext(ctx, query, sectionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list articles by section: %w", err)
	}
	defer rows.Close()

	return scanArticles(rows)
}

// ListByTag retrieves all articles carrying a tag, newest first
func (r *ArticleRepo) ListByTag(ctx context.Context, tag string) ([]*domain.Article, error) {
	query := fmt.Sprintf(`SELECT %s FROM articles WHERE tags LIKE ? ORDER BY created_at DESC`, articleColumns)

	rows, err := r.db.QueryContext(ctx, query, "%"+`"`+tag+`"`+"%")
	if err != nil {
		return nil, fmt.Errorf("failed to list articles by tag: %w", err)
	}
	defer rows.Close()

	articles, err := scanArticles(rows)
	if err != nil {
		return nil, err
	}

	// The LIKE match is a prefilter; confirm exact tag membership
	filtered := articles[:0]
	for _, article := range articles {
		for _, t := range article.Tags {
			if t == tag {
				filtered = append(filtered, article)
				break
			}
		}
	}
	return filtered, nil
}

// AdjustLikes changes an article's like counter by delta
func (r *ArticleRepo) AdjustLikes(ctx context.Context, id string, delta int) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE articles SET likes_count = MAX(likes_count + ?, 0) WHERE id = ?`, delta, id)
	if err != nil {
		return fmt.Errorf("failed to adjust likes: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check likes update: %w", err)
	}
	if rows == 0 {
		return domain.ErrArticleNotFound
	}
	return nil
}

// TagCounts returns the usage count for every tag across all articles
func (r *ArticleRepo) TagCounts(ctx context.Context) (map[string]int, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT tags FROM articles`)
	if err != nil {
		return nil, fmt.Errorf("failed to query tags: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var tagsJSON string
		if err := rows.Scan(&tagsJSON); err != nil {
			return nil, fmt.Errorf("failed to scan tags: %w", err)
		}
		if tagsJSON == "" {
			continue
		}
		var tags []string
		if err := json.Unmarshal([]byte(tagsJSON), &tags); err != nil {
			return nil, fmt.Errorf("failed to unmarshal tags: %w", err)
		}
		for _, tag := range tags {
			counts[tag]++
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tags: %w", err)
	}
	return counts, nil
}
