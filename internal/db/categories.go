package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"linkshare/internal/models"
)

// ListCategories returns all categories ordered by name.
func (d *DB) ListCategories(ctx context.Context) ([]models.Category, error) {
	categories := []models.Category{}
	if err := d.x.SelectContext(ctx, &categories, `SELECT id, name FROM categories ORDER BY name`); err != nil {
		return nil, err
	}
	return categories, nil
}

// GetCategory returns the category with the given id.
func (d *DB) GetCategory(ctx context.Context, id string) (*models.Category, error) {
	var category models.Category
	err := d.x.GetContext(ctx, &category, d.x.Rebind(`SELECT id, name FROM categories WHERE id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCategoryNotFound
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// SeedCategories inserts every name that is not already a category and
// returns how many were added.
func (d *DB) SeedCategories(ctx context.Context, names []string) (int, error) {
	query := d.x.Rebind(`INSERT INTO categories (id, name) VALUES (?, ?) ON CONFLICT (name) DO NOTHING`)

	added := 0
	for _, name := range names {
		var inserted int64
		_, err := d.allocate("categories", func(id string) error {
			result, err := d.x.ExecContext(ctx, query, id, name)
			if err != nil {
				return err
			}
			inserted, err = result.RowsAffected()
			return err
		})
		if err != nil {
			return added, fmt.Errorf("failed to seed category %s: %w", name, err)
		}
		added += int(inserted)
	}
	return added, nil
}
