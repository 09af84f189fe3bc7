package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/umputun/bytenews/pkg/domain"
)

// ArticleRepository handles article-related database operations
type ArticleRepository struct {
	db *sqlx.DB
}

// articleSQL represents an article for SQL operations
type articleSQL struct {
	ID               int64      `db:"id"`
	Title            string     `db:"title"`
	Link             string     `db:"link"`
	Content          string     `db:"content"`
	Summary          string     `db:"summary"`
	Published        time.Time  `db:"published"`
	Source           string     `db:"source"`
	CategoryID       int64      `db:"category_id"`
	AudioPath        string     `db:"audio_path"`
	AudioGeneratedAt *time.Time `db:"audio_generated_at"`
	Approved         bool       `db:"approved"`
	CreatedAt        time.Time  `db:"created_at"`

	// joined from categories
	CategoryName string `db:"category_name"`
}

var articleColumns = []string{
	"a.id", "a.title", "a.link", "a.content", "a.summary", "a.published", "a.source", "a.category_id",
	"a.audio_path", "a.audio_generated_at", "a.approved", "a.created_at", "c.name AS category_name",
}

// DefaultListLimit is used when a filter doesn't set a limit
const DefaultListLimit = 50

// NewArticleRepository creates a new article repository
func NewArticleRepository(db *sqlx.DB) *ArticleRepository {
	return &ArticleRepository{db: db}
}

// ArticleExists checks if an article with the link is stored
func (r *ArticleRepository) ArticleExists(ctx context.Context, link string) (bool, error) {
	var exists bool
	if err := r.db.GetContext(ctx, &exists, "SELECT EXISTS(SELECT 1 FROM articles WHERE link = ?)", link); err != nil {
		return false, fmt.Errorf("check article exists: %w", err)
	}
	return exists, nil
}

// CreateArticle inserts the article in the category and sets its ID.
// An already stored link gives ErrDuplicate.
func (r *ArticleRepository) CreateArticle(ctx context.Context, article *domain.Article, categoryID int64) (int64, error) {
	rec := articleSQL{
		Title:      article.Title,
		Link:       article.Link,
		Content:    article.Content,
		Summary:    article.Summary,
		Published:  article.Published.UTC(),
		Source:     article.Source,
		CategoryID: categoryID,
		AudioPath:  article.AudioPath,
		Approved:   article.Approved,
	}

	query := `
		INSERT INTO articles (title, link, content, summary, published, source, category_id, audio_path, approved)
		VALUES (:title, :link, :content, :summary, :published, :source, :category_id, :audio_path, :approved)
	`
	var id int64
	err := withLockRetry(ctx, func() error {
		result, err := r.db.NamedExecContext(ctx, query, rec)
		if err != nil {
			return err
		}
		id, err = result.LastInsertId()
		return err
	})
	if isUniqueError(err) {
		return 0, fmt.Errorf("create article %s: %w", article.Link, ErrDuplicate)
	}
	if err != nil {
		return 0, fmt.Errorf("create article: %w", err)
	}

	article.ID = id
	article.CategoryID = categoryID
	return id, nil
}

// UpdateArticleAudioPath stores the path of a rendered audio file
func (r *ArticleRepository) UpdateArticleAudioPath(ctx context.Context, id int64, path string) error {
	return r.update(ctx, "update audio path",
		"UPDATE articles SET audio_path = ?, audio_generated_at = ? WHERE id = ?", path, time.Now().UTC(), id)
}

// UpdateArticleSummary replaces the article summary
func (r *ArticleRepository) UpdateArticleSummary(ctx context.Context, id int64, summary string) error {
	return r.update(ctx, "update summary", "UPDATE articles SET summary = ? WHERE id = ?", summary, id)
}

func (r *ArticleRepository) update(ctx context.Context, op, query string, args ...any) error {
	var affected int64
	err := withLockRetry(ctx, func() error {
		result, err := r.db.ExecContext(ctx, query, args...)
		if err != nil {
			return err
		}
		affected, err = result.RowsAffected()
		return err
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return nil
}

// GetArticle returns the article by ID
func (r *ArticleRepository) GetArticle(ctx context.Context, id int64) (*domain.Article, error) {
	query, args, err := r.selectArticles().Where(sq.Eq{"a.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rec articleSQL
	if err := r.db.GetContext(ctx, &rec, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("get article %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("get article: %w", err)
	}
	res := rec.toDomain()
	return &res, nil
}

// ListArticles returns articles matching the filter, newest first
func (r *ArticleRepository) ListArticles(ctx context.Context, filter domain.ArticleFilter) ([]domain.Article, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}
	qb := r.selectArticles().OrderBy("a.published DESC", "a.id DESC").Limit(uint64(limit)) //nolint:gosec // positive
	if filter.Category != "" {
		qb = qb.Where(sq.Eq{"c.name": filter.Category})
	}
	if filter.Approved != nil {
		qb = qb.Where(sq.Eq{"a.approved": *filter.Approved})
	}
	if filter.Offset > 0 {
		qb = qb.Offset(uint64(filter.Offset))
	}

	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rows []articleSQL
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	res := make([]domain.Article, 0, len(rows))
	for _, rec := range rows {
		res = append(res, rec.toDomain())
	}
	return res, nil
}

// CountArticles returns the number of stored articles
func (r *ArticleRepository) CountArticles(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM articles"); err != nil {
		return 0, fmt.Errorf("count articles: %w", err)
	}
	return count, nil
}

// SetArticlesApproved marks the articles approved or pending, returns the number of matched articles.
// Unknown IDs are ignored.
func (r *ArticleRepository) SetArticlesApproved(ctx context.Context, approved bool, ids ...int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	query, args, err := sq.Update("articles").Set("approved", approved).
		Where(sq.Eq{"id": ids}).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build query: %w", err)
	}

	var affected int64
	err = withLockRetry(ctx, func() error {
		result, err := r.db.ExecContext(ctx, query, args...)
		if err != nil {
			return err
		}
		affected, err = result.RowsAffected()
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("set approved: %w", err)
	}
	return affected, nil
}

// ArticleStats returns article counts by moderation state
func (r *ArticleRepository) ArticleStats(ctx context.Context) (domain.ArticleStats, error) {
	var res struct {
		Total    int64 `db:"total"`
		Approved int64 `db:"approved"`
	}
	query := `SELECT COUNT(*) AS total, COALESCE(SUM(approved), 0) AS approved FROM articles`
	if err := r.db.GetContext(ctx, &res, query); err != nil {
		return domain.ArticleStats{}, fmt.Errorf("article stats: %w", err)
	}
	return domain.ArticleStats{Total: res.Total, Approved: res.Approved, Pending: res.Total - res.Approved}, nil
}

func (r *ArticleRepository) selectArticles() sq.SelectBuilder {
	return sq.Select(articleColumns...).From("articles a").Join("categories c ON c.id = a.category_id")
}

func (a articleSQL) toDomain() domain.Article {
	return domain.Article{
		ID:               a.ID,
		Title:            a.Title,
		Link:             a.Link,
		Content:          a.Content,
		Summary:          a.Summary,
		Published:        a.Published,
		Source:           a.Source,
		Category:         a.CategoryName,
		CategoryID:       a.CategoryID,
		AudioPath:        a.AudioPath,
		AudioGeneratedAt: a.AudioGeneratedAt,
		Approved:         a.Approved,
		CreatedAt:        a.CreatedAt,
	}
}
