package store

import (
	"context"
	"database/sql"
	"fmt"
)

// ConfigValue is one key/value setting row.
type ConfigValue struct {
	Key   string
	Value string
}

// GetConfig reads a named setting. A missing key is a normal outcome,
// reported as ("", false) rather than an error.
func (s *Store) GetConfig(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.conn.QueryRowContext(ctx,
		`SELECT value FROM config WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read config %q: %w", key, err)
	}
	return value, true, nil
}

// SetConfig writes a setting, overwriting any existing value for the
// key.
func (s *Store) SetConfig(ctx context.Context, key, value string) error {
	if key == "" {
		return fmt.Errorf("config key is required")
	}

	query := `
	INSERT INTO config (key, value) VALUES (?, ?)
	ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`

	if _, err := s.conn.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("failed to set config %q: %w", key, err)
	}
	return nil
}

// ListConfig returns all settings ordered by key.
func (s *Store) ListConfig(ctx context.Context) ([]ConfigValue, error) {
	rows, err := s.conn.QueryContext(ctx,
		`SELECT key, value FROM config ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("failed to list config: %w", err)
	}
	defer rows.Close()

	var values []ConfigValue
	for rows.Next() {
		var v ConfigValue
		if err := rows.Scan(&v.Key, &v.Value); err != nil {
			return nil, fmt.Errorf("failed to scan config row: %w", err)
		}
		values = append(values, v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating config: %w", err)
	}

	return values, nil
}
