package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/umputun/bytenews/pkg/domain"
)

// CategoryRepository handles category-related database operations
type CategoryRepository struct {
	db *sqlx.DB
}

// categorySQL represents a category for SQL operations
type categorySQL struct {
	ID          int64     `db:"id"`
	Name        string    `db:"name"`
	Description string    `db:"description"`
	CreatedAt   time.Time `db:"created_at"`
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(db *sqlx.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// CreateOrGetCategory returns the category with the name, creating it if missing.
// Safe to call concurrently for the same name.
func (r *CategoryRepository) CreateOrGetCategory(ctx context.Context, name string) (domain.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Category{}, fmt.Errorf("create category: empty name")
	}

	var c categorySQL
	err := withLockRetry(ctx, func() error {
		if _, err := r.db.ExecContext(ctx, "INSERT INTO categories (name) VALUES (?) ON CONFLICT(name) DO NOTHING", name); err != nil {
			return fmt.Errorf("insert category: %w", err)
		}
		return r.db.GetContext(ctx, &c, "SELECT id, name, description, created_at FROM categories WHERE name = ?", name)
	})
	if err != nil {
		return domain.Category{}, fmt.Errorf("create or get category %q: %w", name, err)
	}
	return domain.Category{ID: c.ID, Name: c.Name, Description: c.Description}, nil
}

// ListCategories returns all categories ordered by name
func (r *CategoryRepository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	var rows []categorySQL
	if err := r.db.SelectContext(ctx, &rows, "SELECT id, name, description, created_at FROM categories ORDER BY name"); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	res := make([]domain.Category, 0, len(rows))
	for _, c := range rows {
		res = append(res, domain.Category{ID: c.ID, Name: c.Name, Description: c.Description})
	}
	return res, nil
}
