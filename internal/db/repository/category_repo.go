package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/gokatarajesh/trivia-api/internal/db/queries"
	"github.com/gokatarajesh/trivia-api/internal/trivia"
)

type categoryStore interface {
	ListCategories(ctx context.Context) ([]queries.Category, error)
	GetCategory(ctx context.Context, id int64) (queries.Category, error)
}

// CategoryRepository exposes the read-only category table.
type CategoryRepository struct {
	store categoryStore
}

func NewCategoryRepository(store categoryStore) *CategoryRepository {
	return &CategoryRepository{store: store}
}

// ListCategories returns categories ordered by id.
func (r *CategoryRepository) ListCategories(ctx context.Context) ([]trivia.Category, error) {
	rows, err := r.store.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	out := make([]trivia.Category, 0, len(rows))
	for _, row := range rows {
		out = append(out, trivia.Category{ID: row.ID, Type: row.Type})
	}
	return out, nil
}

// GetCategory fetches one category, returning trivia.ErrNotFound when absent.
func (r *CategoryRepository) GetCategory(ctx context.Context, id int64) (trivia.Category, error) {
	row, err := r.store.GetCategory(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return trivia.Category{}, trivia.ErrNotFound
		}
		return trivia.Category{}, fmt.Errorf("get category %d: %w", id, err)
	}
	return trivia.Category{ID: row.ID, Type: row.Type}, nil
}
