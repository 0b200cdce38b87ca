package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Ticket is a staging record for a tracker issue not yet promoted to an
// entry. TicketKey is the tracker's natural key and is unique in the
// cache.
type Ticket struct {
	TicketKey  string
	Summary    string
	ResolvedAt *time.Time
	URL        string
}

// ResolvedDate returns the ticket's resolution day (YYYY-MM-DD), or
// empty if the tracker reported no resolution date.
func (t *Ticket) ResolvedDate() string {
	if t.ResolvedAt == nil {
		return ""
	}
	return t.ResolvedAt.Format("2006-01-02")
}

// InsertTickets caches a batch of tickets in a single transaction:
// either the whole batch lands or none of it does.
//
// Inserts use insert-or-ignore semantics keyed on ticket_key, so a
// previously cached ticket is left untouched (first write wins; a
// re-sync never refreshes summary or resolution date).
func (s *Store) InsertTickets(ctx context.Context, tickets []Ticket) error {
	if len(tickets) == 0 {
		return nil
	}

	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
	INSERT OR IGNORE INTO jira_tickets (ticket_key, summary, resolved_at, url)
	VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare ticket insert: %w", err)
	}
	defer stmt.Close()

	for _, t := range tickets {
		if _, err := stmt.ExecContext(ctx,
			t.TicketKey, t.Summary, timeToNullString(t.ResolvedAt), t.URL); err != nil {
			return fmt.Errorf("failed to cache ticket %s: %w", t.TicketKey, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit ticket batch: %w", err)
	}

	return nil
}

// GetTicket retrieves a cached ticket by key.
// Returns ErrNotFound if the key is not in the cache.
func (s *Store) GetTicket(ctx context.Context, key string) (*Ticket, error) {
	row := s.conn.QueryRowContext(ctx, `
	SELECT ticket_key, summary, resolved_at, url
	FROM jira_tickets
	WHERE ticket_key = ?
	`, key)

	t, err := scanTicket(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query ticket %s: %w", key, err)
	}
	return t, nil
}

// ListTickets returns all cached tickets, most recently resolved first.
func (s *Store) ListTickets(ctx context.Context) ([]*Ticket, error) {
	rows, err := s.conn.QueryContext(ctx, `
	SELECT ticket_key, summary, resolved_at, url
	FROM jira_tickets
	ORDER BY resolved_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list tickets: %w", err)
	}
	defer rows.Close()

	var tickets []*Ticket
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ticket: %w", err)
		}
		tickets = append(tickets, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tickets: %w", err)
	}

	return tickets, nil
}

// DeleteTicket removes one ticket from the cache.
// Returns ErrNotFound if the key is not cached.
func (s *Store) DeleteTicket(ctx context.Context, key string) error {
	res, err := s.conn.ExecContext(ctx,
		`DELETE FROM jira_tickets WHERE ticket_key = ?`, key)
	if err != nil {
		return fmt.Errorf("failed to delete ticket %s: %w", key, err)
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

// ClearTickets empties the cache and returns the number of tickets
// removed.
func (s *Store) ClearTickets(ctx context.Context) (int, error) {
	res, err := s.conn.ExecContext(ctx, `DELETE FROM jira_tickets`)
	if err != nil {
		return 0, fmt.Errorf("failed to clear ticket cache: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to check clear result: %w", err)
	}
	return int(affected), nil
}

// TicketCount returns the number of cached tickets.
func (s *Store) TicketCount(ctx context.Context) (int, error) {
	var count int
	err := s.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM jira_tickets`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count tickets: %w", err)
	}
	return count, nil
}

func scanTicket(row scanner) (*Ticket, error) {
	var t Ticket
	var resolvedAt sql.NullString

	if err := row.Scan(&t.TicketKey, &t.Summary, &resolvedAt, &t.URL); err != nil {
		return nil, err
	}

	t.ResolvedAt = nullStringToTime(resolvedAt)
	return &t, nil
}

// timeToNullString converts a time pointer to a nullable string for SQL.
func timeToNullString(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: t.Format(time.RFC3339), Valid: true}
}

// nullStringToTime converts a nullable SQL string to a time pointer.
func nullStringToTime(ns sql.NullString) *time.Time {
	if !ns.Valid {
		return nil
	}
	t, err := time.Parse(time.RFC3339, ns.String)
	if err != nil {
		return nil
	}
	return &t
}
