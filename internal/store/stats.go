package store

import (
	"context"
	"fmt"
)

// StatsBucket is one row of a grouped count.
type StatsBucket struct {
	Label string // category name or impact level; empty when unset
	Count int
}

// Stats summarizes entries for a period.
type Stats struct {
	Total      int
	ByCategory []StatsBucket
	ByImpact   []StatsBucket
}

// EntryStats computes entry counts for the period: total, grouped by
// category, and grouped by impact (high first).
func (s *Store) EntryStats(ctx context.Context, period Period) (*Stats, error) {
	var dateFilter string
	switch period {
	case PeriodWeek:
		dateFilter = "WHERE date >= DATE('now', '-7 days')"
	case PeriodMonth:
		dateFilter = "WHERE date >= DATE('now', 'start of month')"
	case PeriodYear:
		dateFilter = "WHERE date >= DATE('now', 'start of year')"
	}

	stats := &Stats{}

	err := s.conn.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM entries "+dateFilter).Scan(&stats.Total)
	if err != nil {
		return nil, fmt.Errorf("failed to count entries: %w", err)
	}

	byCategory := `
	SELECT COALESCE(c.name, ''), COUNT(*)
	FROM entries e
	LEFT JOIN categories c ON e.category_id = c.id
	` + dateFilter + `
	GROUP BY c.name
	ORDER BY COUNT(*) DESC
	`

	rows, err := s.conn.QueryContext(ctx, byCategory)
	if err != nil {
		return nil, fmt.Errorf("failed to group entries by category: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var b StatsBucket
		if err := rows.Scan(&b.Label, &b.Count); err != nil {
			return nil, fmt.Errorf("failed to scan category bucket: %w", err)
		}
		stats.ByCategory = append(stats.ByCategory, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating category buckets: %w", err)
	}

	byImpact := `
	SELECT COALESCE(impact, ''), COUNT(*)
	FROM entries
	` + dateFilter + `
	GROUP BY impact
	ORDER BY
		CASE impact
			WHEN 'high' THEN 1
			WHEN 'medium' THEN 2
			WHEN 'low' THEN 3
			ELSE 4
		END
	`

	impactRows, err := s.conn.QueryContext(ctx, byImpact)
	if err != nil {
		return nil, fmt.Errorf("failed to group entries by impact: %w", err)
	}
	defer impactRows.Close()

	for impactRows.Next() {
		var b StatsBucket
		if err := impactRows.Scan(&b.Label, &b.Count); err != nil {
			return nil, fmt.Errorf("failed to scan impact bucket: %w", err)
		}
		stats.ByImpact = append(stats.ByImpact, b)
	}
	if err := impactRows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating impact buckets: %w", err)
	}

	return stats, nil
}
