// Package sync populates the local ticket cache from Jira.
package sync

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/braglog/brag/internal/jira"
	"github.com/braglog/brag/internal/logging"
	"github.com/braglog/brag/internal/store"
)

// Config keys read from the store's config table.
const (
	KeyJiraURL   = "jira.url"
	KeyJiraEmail = "jira.email"
	KeyJiraToken = "jira.token"
)

// ErrNotConfigured is returned when the Jira URL, email, or API token
// is missing from config. The check runs before any network call so a
// missing credential surfaces as a clear setup error instead of an
// authorization failure.
var ErrNotConfigured = errors.New("jira is not configured (run 'brag init' or set jira.url, jira.email, jira.token)")

// Syncer fetches recently resolved issues and stages them in the
// ticket cache.
type Syncer struct {
	store  *store.Store
	logger *log.Logger
}

// New creates a Syncer. The store must be open with its schema
// applied. If logger is nil, the shared debug logger is used.
func New(st *store.Store, logger *log.Logger) *Syncer {
	if logger == nil {
		logger = logging.Default("[sync] ")
	}
	return &Syncer{store: st, logger: logger}
}

// Sync fetches one page of recently resolved issues assigned to the
// configured account and inserts them into the ticket cache in a
// single transaction with insert-or-ignore semantics.
//
// The returned count is the number of issues the tracker reported, not
// the number of new cache rows; re-syncs of already-cached tickets are
// not distinguished.
func (s *Syncer) Sync(ctx context.Context) (int, error) {
	client, err := s.clientFromConfig(ctx)
	if err != nil {
		return 0, err
	}

	issues, err := client.SearchResolved(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch issues from jira: %w", err)
	}

	tickets := make([]store.Ticket, 0, len(issues))
	for _, issue := range issues {
		tickets = append(tickets, store.Ticket{
			TicketKey:  issue.Key,
			Summary:    issue.Summary,
			ResolvedAt: issue.ResolutionDate,
			URL:        issue.URL,
		})
	}

	if err := s.store.InsertTickets(ctx, tickets); err != nil {
		return 0, fmt.Errorf("failed to cache issues: %w", err)
	}

	s.logger.Printf("Synced %d issues from jira", len(issues))
	return len(issues), nil
}

// clientFromConfig builds a Jira client from stored settings,
// validating that all three are present.
func (s *Syncer) clientFromConfig(ctx context.Context) (*jira.Client, error) {
	url, ok, err := s.store.GetConfig(ctx, KeyJiraURL)
	if err != nil {
		return nil, err
	}
	if !ok || url == "" {
		return nil, ErrNotConfigured
	}

	email, ok, err := s.store.GetConfig(ctx, KeyJiraEmail)
	if err != nil {
		return nil, err
	}
	if !ok || email == "" {
		return nil, ErrNotConfigured
	}

	token, ok, err := s.store.GetConfig(ctx, KeyJiraToken)
	if err != nil {
		return nil, err
	}
	if !ok || token == "" {
		return nil, ErrNotConfigured
	}

	return jira.NewClient(url, email, token), nil
}
