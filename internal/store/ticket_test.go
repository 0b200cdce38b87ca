package store

import (
	"context"
	"errors"
	"testing"
	"time"
)

func ts(day int) *time.Time {
	t := time.Date(2024, 3, day, 12, 0, 0, 0, time.UTC)
	return &t
}

func TestInsertTickets_FirstWriteWins(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	if err := s.InsertTickets(ctx, []Ticket{
		{TicketKey: "A-1", Summary: "original summary", ResolvedAt: ts(1), URL: "https://t/browse/A-1"},
	}); err != nil {
		t.Fatalf("InsertTickets() failed: %v", err)
	}

	// A re-sync with a changed summary must not refresh the cached row
	if err := s.InsertTickets(ctx, []Ticket{
		{TicketKey: "A-1", Summary: "changed summary", ResolvedAt: ts(2), URL: "https://t/browse/A-1"},
	}); err != nil {
		t.Fatalf("second InsertTickets() failed: %v", err)
	}

	ticket, err := s.GetTicket(ctx, "A-1")
	if err != nil {
		t.Fatalf("GetTicket() failed: %v", err)
	}
	if ticket.Summary != "original summary" {
		t.Errorf("Summary = %q, want first write preserved", ticket.Summary)
	}

	count, err := s.TicketCount(ctx)
	if err != nil {
		t.Fatalf("TicketCount() failed: %v", err)
	}
	if count != 1 {
		t.Errorf("TicketCount() = %d, want 1", count)
	}
}

func TestInsertTickets_EmptyBatch(t *testing.T) {
	s := testStore(t)

	if err := s.InsertTickets(context.Background(), nil); err != nil {
		t.Errorf("InsertTickets(nil) failed: %v", err)
	}
}

func TestListTickets_MostRecentlyResolvedFirst(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	if err := s.InsertTickets(ctx, []Ticket{
		{TicketKey: "A-1", Summary: "oldest", ResolvedAt: ts(1), URL: "u"},
		{TicketKey: "A-3", Summary: "newest", ResolvedAt: ts(9), URL: "u"},
		{TicketKey: "A-2", Summary: "middle", ResolvedAt: ts(5), URL: "u"},
	}); err != nil {
		t.Fatalf("InsertTickets() failed: %v", err)
	}

	tickets, err := s.ListTickets(ctx)
	if err != nil {
		t.Fatalf("ListTickets() failed: %v", err)
	}

	want := []string{"A-3", "A-2", "A-1"}
	if len(tickets) != len(want) {
		t.Fatalf("ListTickets() returned %d tickets, want %d", len(tickets), len(want))
	}
	for i, key := range want {
		if tickets[i].TicketKey != key {
			t.Errorf("tickets[%d] = %s, want %s", i, tickets[i].TicketKey, key)
		}
	}
}

func TestTicket_NullResolvedAt(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	if err := s.InsertTickets(ctx, []Ticket{
		{TicketKey: "A-1", Summary: "no resolution date", URL: "u"},
	}); err != nil {
		t.Fatalf("InsertTickets() failed: %v", err)
	}

	ticket, err := s.GetTicket(ctx, "A-1")
	if err != nil {
		t.Fatalf("GetTicket() failed: %v", err)
	}
	if ticket.ResolvedAt != nil {
		t.Errorf("ResolvedAt = %v, want nil", ticket.ResolvedAt)
	}
	if ticket.ResolvedDate() != "" {
		t.Errorf("ResolvedDate() = %q, want empty", ticket.ResolvedDate())
	}
}

func TestDeleteTicket_NotFound(t *testing.T) {
	s := testStore(t)

	err := s.DeleteTicket(context.Background(), "NOPE-1")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("DeleteTicket() error = %v, want ErrNotFound", err)
	}
}

func TestClearTickets(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	if err := s.InsertTickets(ctx, []Ticket{
		{TicketKey: "A-1", Summary: "a", URL: "u"},
		{TicketKey: "A-2", Summary: "b", URL: "u"},
	}); err != nil {
		t.Fatalf("InsertTickets() failed: %v", err)
	}

	cleared, err := s.ClearTickets(ctx)
	if err != nil {
		t.Fatalf("ClearTickets() failed: %v", err)
	}
	if cleared != 2 {
		t.Errorf("ClearTickets() = %d, want 2", cleared)
	}

	count, err := s.TicketCount(ctx)
	if err != nil {
		t.Fatalf("TicketCount() failed: %v", err)
	}
	if count != 0 {
		t.Errorf("TicketCount() = %d, want 0", count)
	}
}
