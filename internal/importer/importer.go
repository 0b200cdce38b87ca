// Package importer promotes cached Jira tickets into permanent ledger
// entries.
//
// The interactive surface is abstracted behind the Prompter interface
// so both the single import and the batch sweep can be driven by tests
// without a terminal.
package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/braglog/brag/internal/logging"
	"github.com/braglog/brag/internal/store"
)

// ErrNotInCache is returned when an import names a ticket key that is
// not in the cache.
var ErrNotInCache = errors.New("ticket not in cache")

// Option is one selectable choice presented to the operator.
type Option struct {
	Label string
	Value string
}

// Prompter gathers operator input. Implementations block until the
// operator answers.
type Prompter interface {
	// Text asks for a free-form line, offering a default.
	Text(message, defaultValue string) (string, error)
	// Choose asks the operator to pick one option and returns its value.
	Choose(message string, options []Option) (string, error)
}

// Action is the operator's decision for one ticket during a batch
// sweep.
type Action string

const (
	ActionImport Action = "import"
	ActionSkip   Action = "skip"
	ActionQuit   Action = "quit"
)

// SweepResult summarizes one batch sweep.
type SweepResult struct {
	Imported        int
	Skipped         int
	AlreadyImported int
	Quit            bool
}

// Importer converts cached tickets into entries.
type Importer struct {
	store   *store.Store
	prompts Prompter
	logger  *log.Logger
	out     io.Writer
}

// New creates an Importer. If logger is nil the shared debug logger is
// used; if out is nil operator messages go to stdout.
func New(st *store.Store, prompts Prompter, logger *log.Logger, out io.Writer) *Importer {
	if logger == nil {
		logger = logging.Default("[import] ")
	}
	if out == nil {
		out = os.Stdout
	}
	return &Importer{store: st, prompts: prompts, logger: logger, out: out}
}

// ImportOne promotes the cached ticket with the given key into an
// entry.
//
// The ticket must be in the cache (ErrNotInCache otherwise). If an
// entry already carries the key as its source id the call is a no-op
// returning store.ErrAlreadyImported. On success the entry insert and
// the cache delete commit in one transaction, so the ticket is gone
// from the cache exactly when the entry exists.
func (im *Importer) ImportOne(ctx context.Context, ticketKey string) (int64, error) {
	ticket, err := im.store.GetTicket(ctx, ticketKey)
	if errors.Is(err, store.ErrNotFound) {
		return 0, fmt.Errorf("%w: %s", ErrNotInCache, ticketKey)
	}
	if err != nil {
		return 0, err
	}

	// Query-then-insert dedup probe on source_id
	if _, err := im.store.EntryIDBySourceID(ctx, ticketKey); err == nil {
		return 0, fmt.Errorf("%w: %s", store.ErrAlreadyImported, ticketKey)
	} else if !errors.Is(err, store.ErrNotFound) {
		return 0, err
	}

	entry, err := im.gatherEntry(ctx, ticket)
	if err != nil {
		return 0, err
	}

	id, err := im.store.ImportEntry(ctx, ticketKey, entry)
	if err != nil {
		return 0, err
	}

	im.logger.Printf("Imported %s as entry %d", ticketKey, id)
	return id, nil
}

// gatherEntry collects text, category, and impact from the operator
// and fills in the dates.
func (im *Importer) gatherEntry(ctx context.Context, ticket *store.Ticket) (store.NewEntry, error) {
	entry := store.NewEntry{
		Source:    "jira",
		SourceID:  ticket.TicketKey,
		SourceURL: ticket.URL,
	}

	text, err := im.prompts.Text("Entry text:", ticket.Summary)
	if err != nil {
		return entry, err
	}
	if text == "" {
		text = ticket.Summary
	}
	entry.Text = text

	categories, err := im.store.ListCategories(ctx)
	if err != nil {
		return entry, err
	}
	if len(categories) > 0 {
		options := []Option{{Label: "Skip", Value: ""}}
		for _, c := range categories {
			options = append(options, Option{Label: c.Name, Value: c.Name})
		}
		choice, err := im.prompts.Choose("Add a category?", options)
		if err != nil {
			return entry, err
		}
		if choice != "" {
			id, err := im.store.CategoryIDByName(ctx, choice)
			if err != nil {
				return entry, fmt.Errorf("category %q: %w", choice, err)
			}
			entry.CategoryID = &id
		}
	}

	impact, err := im.prompts.Choose("Impact level:", []Option{
		{Label: "Skip", Value: ""},
		{Label: "Low", Value: "low"},
		{Label: "Medium", Value: "medium"},
		{Label: "High", Value: "high"},
	})
	if err != nil {
		return entry, err
	}
	entry.Impact = impact

	// Entry date follows the tracker's resolution day when known
	entry.Date = ticket.ResolvedDate()
	if entry.Date == "" {
		entry.Date = time.Now().Format("2006-01-02")
	}

	return entry, nil
}

// ImportAll sweeps the cache sequentially, most recently resolved
// first, offering import/skip/quit per ticket.
//
// The ticket list is snapshotted once at the start; tickets cached
// mid-sweep are not observed. Tickets whose key already backs an entry
// are skipped without prompting. Quit stops immediately, leaving the
// current and all remaining tickets cached; imports completed earlier
// in the sweep are permanent.
func (im *Importer) ImportAll(ctx context.Context) (*SweepResult, error) {
	tickets, err := im.store.ListTickets(ctx)
	if err != nil {
		return nil, err
	}

	result := &SweepResult{}

	for _, ticket := range tickets {
		if _, err := im.store.EntryIDBySourceID(ctx, ticket.TicketKey); err == nil {
			fmt.Fprintf(im.out, "Skipping %s (already imported)\n", ticket.TicketKey)
			result.AlreadyImported++
			continue
		} else if !errors.Is(err, store.ErrNotFound) {
			return result, err
		}

		fmt.Fprintf(im.out, "\n[%s] %s\n", ticket.TicketKey, ticket.Summary)

		action, err := im.decide()
		if err != nil {
			return result, err
		}

		switch action {
		case ActionQuit:
			result.Quit = true
			return result, nil
		case ActionSkip:
			result.Skipped++
			continue
		case ActionImport:
			if _, err := im.ImportOne(ctx, ticket.TicketKey); err != nil {
				return result, err
			}
			fmt.Fprintf(im.out, "Imported %s as entry\n", ticket.TicketKey)
			result.Imported++
		}
	}

	return result, nil
}

func (im *Importer) decide() (Action, error) {
	choice, err := im.prompts.Choose("What do you want to do?", []Option{
		{Label: "Import this ticket", Value: string(ActionImport)},
		{Label: "Skip this ticket", Value: string(ActionSkip)},
		{Label: "Quit (stop importing)", Value: string(ActionQuit)},
	})
	if err != nil {
		return "", err
	}

	switch Action(choice) {
	case ActionImport, ActionSkip, ActionQuit:
		return Action(choice), nil
	default:
		return "", fmt.Errorf("unknown action %q", choice)
	}
}
