package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// Entry is a permanent accomplishment record.
//
// Date is a calendar day (YYYY-MM-DD); CreatedAt is the insertion
// timestamp and never changes. SourceID, when present, is the external
// tracker key the entry was imported from and is unique across entries
// (enforced by an application-level probe, not a constraint).
type Entry struct {
	ID         int64
	Text       string
	Date       string
	CreatedAt  time.Time
	CategoryID *int64
	Category   string // joined category name, empty if uncategorized
	Impact     string
	Details    string
	Source     string
	SourceID   string
	SourceURL  string
}

// NewEntry carries the fields for an entry insert. Zero-value optional
// fields are stored as NULL.
type NewEntry struct {
	Text       string
	Date       string
	CategoryID *int64
	Impact     string
	Details    string
	Source     string
	SourceID   string
	SourceURL  string
}

// AddEntry inserts a new entry and returns its id.
//
// Date defaults to today when empty. created_at is always now.
func (s *Store) AddEntry(ctx context.Context, e NewEntry) (int64, error) {
	if e.Text == "" {
		return 0, fmt.Errorf("entry text is required")
	}
	if e.Date == "" {
		e.Date = time.Now().Format("2006-01-02")
	}

	query := `
	INSERT INTO entries (text, date, created_at, category_id, impact, details, source, source_id, source_url)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	res, err := s.conn.ExecContext(ctx, query,
		e.Text,
		e.Date,
		time.Now().UTC().Format(time.RFC3339),
		nullInt64(e.CategoryID),
		nullString(e.Impact),
		nullString(e.Details),
		nullString(e.Source),
		nullString(e.SourceID),
		nullString(e.SourceURL),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert entry: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read entry id: %w", err)
	}
	return id, nil
}

// GetEntry retrieves a single entry by id, with its category name joined
// in. Returns ErrNotFound if the id names no row.
func (s *Store) GetEntry(ctx context.Context, id int64) (*Entry, error) {
	query := `
	SELECT e.id, e.text, e.date, e.created_at, e.category_id, c.name,
	       e.impact, e.details, e.source, e.source_id, e.source_url
	FROM entries e
	LEFT JOIN categories c ON e.category_id = c.id
	WHERE e.id = ?
	`

	e, err := scanEntry(s.conn.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query entry %d: %w", id, err)
	}
	return e, nil
}

// EntryIDBySourceID returns the id of the entry imported from the given
// tracker key, or ErrNotFound if no entry carries that source id. This
// is the sole de-duplication probe for imports.
func (s *Store) EntryIDBySourceID(ctx context.Context, sourceID string) (int64, error) {
	var id int64
	err := s.conn.QueryRowContext(ctx,
		`SELECT id FROM entries WHERE source_id = ?`, sourceID).Scan(&id)
	if err == sql.ErrNoRows {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("failed to query entry by source id: %w", err)
	}
	return id, nil
}

// Period restricts ListEntries to a date range.
type Period int

const (
	PeriodAll Period = iota
	PeriodWeek
	PeriodMonth
	PeriodYear
)

// ListEntriesFilter configures the ListEntries query.
type ListEntriesFilter struct {
	// Period restricts entries to a trailing date range.
	Period Period
	// CategoryID filters by category (nil = all).
	CategoryID *int64
	// Limit restricts the number of results (0 = no limit).
	Limit int
}

// ListEntries retrieves entries matching the filter, newest date first.
func (s *Store) ListEntries(ctx context.Context, filter ListEntriesFilter) ([]*Entry, error) {
	var conditions []string
	var args []interface{}

	switch filter.Period {
	case PeriodWeek:
		conditions = append(conditions, "e.date >= DATE('now', '-7 days')")
	case PeriodMonth:
		conditions = append(conditions, "e.date >= DATE('now', 'start of month')")
	case PeriodYear:
		conditions = append(conditions, "e.date >= DATE('now', 'start of year')")
	}

	if filter.CategoryID != nil {
		conditions = append(conditions, "e.category_id = ?")
		args = append(args, *filter.CategoryID)
	}

	query := `
	SELECT e.id, e.text, e.date, e.created_at, e.category_id, c.name,
	       e.impact, e.details, e.source, e.source_id, e.source_url
	FROM entries e
	LEFT JOIN categories c ON e.category_id = c.id
	`

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	query += " ORDER BY e.date DESC, e.id DESC"

	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := s.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	defer rows.Close()

	var entries []*Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating entries: %w", err)
	}

	return entries, nil
}

// EntryPatch is a structured partial update for an entry. Nil fields
// are left untouched; the update statement is built from one
// parameterized routine rather than ad hoc string assembly.
type EntryPatch struct {
	Text       *string
	Date       *string
	CategoryID *int64
	Impact     *string
	Details    *string
	Source     *string
	SourceID   *string
	SourceURL  *string
}

// isEmpty reports whether the patch changes nothing.
func (p EntryPatch) isEmpty() bool {
	return p.Text == nil && p.Date == nil && p.CategoryID == nil &&
		p.Impact == nil && p.Details == nil && p.Source == nil &&
		p.SourceID == nil && p.SourceURL == nil
}

// UpdateEntry applies a patch to the entry with the given id.
//
// Returns ErrNotFound if the id names no row. An empty patch is an
// error so callers notice no-op invocations.
func (s *Store) UpdateEntry(ctx context.Context, id int64, patch EntryPatch) error {
	if patch.isEmpty() {
		return fmt.Errorf("no fields to update")
	}

	var sets []string
	var args []interface{}

	set := func(column string, value interface{}) {
		sets = append(sets, column+" = ?")
		args = append(args, value)
	}

	if patch.Text != nil {
		set("text", *patch.Text)
	}
	if patch.Date != nil {
		set("date", *patch.Date)
	}
	if patch.CategoryID != nil {
		set("category_id", *patch.CategoryID)
	}
	if patch.Impact != nil {
		set("impact", nullString(*patch.Impact))
	}
	if patch.Details != nil {
		set("details", nullString(*patch.Details))
	}
	if patch.Source != nil {
		set("source", nullString(*patch.Source))
	}
	if patch.SourceID != nil {
		set("source_id", nullString(*patch.SourceID))
	}
	if patch.SourceURL != nil {
		set("source_url", nullString(*patch.SourceURL))
	}

	query := "UPDATE entries SET " + strings.Join(sets, ", ") + " WHERE id = ?"
	args = append(args, id)

	res, err := s.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update entry %d: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteEntry removes an entry by id. Returns ErrNotFound if the id
// names no row.
func (s *Store) DeleteEntry(ctx context.Context, id int64) error {
	res, err := s.conn.ExecContext(ctx, `DELETE FROM entries WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete entry %d: %w", id, err)
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

// ImportEntry promotes a cached ticket into an entry: the entry insert
// and the cache delete happen in one transaction so an interruption can
// never leave both the entry and the cached ticket behind.
func (s *Store) ImportEntry(ctx context.Context, ticketKey string, e NewEntry) (int64, error) {
	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
	INSERT INTO entries (text, date, created_at, category_id, impact, details, source, source_id, source_url)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	res, err := tx.ExecContext(ctx, query,
		e.Text,
		e.Date,
		time.Now().UTC().Format(time.RFC3339),
		nullInt64(e.CategoryID),
		nullString(e.Impact),
		nullString(e.Details),
		nullString(e.Source),
		nullString(e.SourceID),
		nullString(e.SourceURL),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert imported entry: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read entry id: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM jira_tickets WHERE ticket_key = ?`, ticketKey); err != nil {
		return 0, fmt.Errorf("failed to remove ticket %s from cache: %w", ticketKey, err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit import: %w", err)
	}

	return id, nil
}

// scanner abstracts *sql.Row and *sql.Rows for scanEntry.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanEntry(row scanner) (*Entry, error) {
	var e Entry
	var createdAt string
	var categoryID sql.NullInt64
	var category, impact, details, source, sourceID, sourceURL sql.NullString

	err := row.Scan(
		&e.ID,
		&e.Text,
		&e.Date,
		&createdAt,
		&categoryID,
		&category,
		&impact,
		&details,
		&source,
		&sourceID,
		&sourceURL,
	)
	if err != nil {
		return nil, err
	}

	if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
		e.CreatedAt = t
	}

	if categoryID.Valid {
		id := categoryID.Int64
		e.CategoryID = &id
	}
	e.Category = category.String
	e.Impact = impact.String
	e.Details = details.String
	e.Source = source.String
	e.SourceID = sourceID.String
	e.SourceURL = sourceURL.String

	return &e, nil
}

// nullString converts an empty string to a SQL NULL.
func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// nullInt64 converts a nil pointer to a SQL NULL.
func nullInt64(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}
