package store

import (
	"context"
	"database/sql"
	"fmt"
)

// Category is a named grouping attached to entries.
type Category struct {
	ID   int64
	Name string
}

// AddCategory creates a category with the given name.
// Returns ErrCategoryExists if the name is already taken.
func (s *Store) AddCategory(ctx context.Context, name string) (int64, error) {
	if name == "" {
		return 0, fmt.Errorf("category name is required")
	}

	var existing int64
	err := s.conn.QueryRowContext(ctx,
		`SELECT id FROM categories WHERE name = ?`, name).Scan(&existing)
	if err == nil {
		return 0, ErrCategoryExists
	}
	if err != sql.ErrNoRows {
		return 0, fmt.Errorf("failed to check category name: %w", err)
	}

	res, err := s.conn.ExecContext(ctx,
		`INSERT INTO categories (name) VALUES (?)`, name)
	if err != nil {
		return 0, fmt.Errorf("failed to insert category: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read category id: %w", err)
	}
	return id, nil
}

// ListCategories returns all categories ordered by name.
func (s *Store) ListCategories(ctx context.Context) ([]Category, error) {
	rows, err := s.conn.QueryContext(ctx,
		`SELECT id, name FROM categories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	var categories []Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}

	return categories, nil
}

// CategoryIDByName resolves a category name to its id.
// Returns ErrNotFound if no category has that name.
func (s *Store) CategoryIDByName(ctx context.Context, name string) (int64, error) {
	var id int64
	err := s.conn.QueryRowContext(ctx,
		`SELECT id FROM categories WHERE name = ?`, name).Scan(&id)
	if err == sql.ErrNoRows {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("failed to query category %q: %w", name, err)
	}
	return id, nil
}

// RenameCategory changes a category's name. Entries referencing the
// category keep their references. Returns ErrNotFound if the id names
// no row.
func (s *Store) RenameCategory(ctx context.Context, id int64, newName string) error {
	if newName == "" {
		return fmt.Errorf("category name is required")
	}

	res, err := s.conn.ExecContext(ctx,
		`UPDATE categories SET name = ? WHERE id = ?`, newName, id)
	if err != nil {
		return fmt.Errorf("failed to rename category %d: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rename result: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// CategoryEntryCount returns the number of entries referencing a
// category.
func (s *Store) CategoryEntryCount(ctx context.Context, id int64) (int, error) {
	var count int
	err := s.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM entries WHERE category_id = ?`, id).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count entries for category %d: %w", id, err)
	}
	return count, nil
}

// DeleteCategory removes a category. Deletion is refused with
// ErrCategoryInUse while any entry references the category; referencing
// entries are never cascaded.
func (s *Store) DeleteCategory(ctx context.Context, id int64) error {
	count, err := s.CategoryEntryCount(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: %d entries", ErrCategoryInUse, count)
	}

	res, err := s.conn.ExecContext(ctx,
		`DELETE FROM categories WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete category %d: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
