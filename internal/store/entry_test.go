package store

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestAddEntry_Defaults(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	id, err := s.AddEntry(ctx, NewEntry{Text: "Shipped the thing"})
	if err != nil {
		t.Fatalf("AddEntry() failed: %v", err)
	}

	entry, err := s.GetEntry(ctx, id)
	if err != nil {
		t.Fatalf("GetEntry() failed: %v", err)
	}

	if entry.Text != "Shipped the thing" {
		t.Errorf("Text = %q, want %q", entry.Text, "Shipped the thing")
	}
	if want := time.Now().Format("2006-01-02"); entry.Date != want {
		t.Errorf("Date = %q, want today %q", entry.Date, want)
	}
	if entry.CreatedAt.IsZero() {
		t.Error("CreatedAt is zero")
	}
	if entry.CategoryID != nil {
		t.Errorf("CategoryID = %v, want nil", *entry.CategoryID)
	}
}

func TestAddEntry_EmptyText(t *testing.T) {
	s := testStore(t)

	if _, err := s.AddEntry(context.Background(), NewEntry{}); err == nil {
		t.Error("AddEntry() with empty text should fail")
	}
}

func TestGetEntry_NotFound(t *testing.T) {
	s := testStore(t)

	_, err := s.GetEntry(context.Background(), 999)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("GetEntry() error = %v, want ErrNotFound", err)
	}
}

func TestGetEntry_JoinsCategoryName(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	catID, err := s.AddCategory(ctx, "Bugfix")
	if err != nil {
		t.Fatalf("AddCategory() failed: %v", err)
	}

	id, err := s.AddEntry(ctx, NewEntry{Text: "fixed it", CategoryID: &catID})
	if err != nil {
		t.Fatalf("AddEntry() failed: %v", err)
	}

	entry, err := s.GetEntry(ctx, id)
	if err != nil {
		t.Fatalf("GetEntry() failed: %v", err)
	}
	if entry.Category != "Bugfix" {
		t.Errorf("Category = %q, want %q", entry.Category, "Bugfix")
	}
}

func TestListEntries_CategoryFilter(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	catID, err := s.AddCategory(ctx, "Infra")
	if err != nil {
		t.Fatalf("AddCategory() failed: %v", err)
	}

	if _, err := s.AddEntry(ctx, NewEntry{Text: "in category", CategoryID: &catID}); err != nil {
		t.Fatalf("AddEntry() failed: %v", err)
	}
	if _, err := s.AddEntry(ctx, NewEntry{Text: "uncategorized"}); err != nil {
		t.Fatalf("AddEntry() failed: %v", err)
	}

	entries, err := s.ListEntries(ctx, ListEntriesFilter{CategoryID: &catID})
	if err != nil {
		t.Fatalf("ListEntries() failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("ListEntries() returned %d entries, want 1", len(entries))
	}
	if entries[0].Text != "in category" {
		t.Errorf("Text = %q, want %q", entries[0].Text, "in category")
	}
}

func TestUpdateEntry_Patch(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	id, err := s.AddEntry(ctx, NewEntry{Text: "draft", Impact: "low"})
	if err != nil {
		t.Fatalf("AddEntry() failed: %v", err)
	}

	text := "final"
	impact := "high"
	if err := s.UpdateEntry(ctx, id, EntryPatch{Text: &text, Impact: &impact}); err != nil {
		t.Fatalf("UpdateEntry() failed: %v", err)
	}

	entry, err := s.GetEntry(ctx, id)
	if err != nil {
		t.Fatalf("GetEntry() failed: %v", err)
	}
	if entry.Text != "final" {
		t.Errorf("Text = %q, want %q", entry.Text, "final")
	}
	if entry.Impact != "high" {
		t.Errorf("Impact = %q, want %q", entry.Impact, "high")
	}
}

func TestUpdateEntry_Empty(t *testing.T) {
	s := testStore(t)

	if err := s.UpdateEntry(context.Background(), 1, EntryPatch{}); err == nil {
		t.Error("UpdateEntry() with empty patch should fail")
	}
}

func TestUpdateEntry_NotFound(t *testing.T) {
	s := testStore(t)

	text := "x"
	err := s.UpdateEntry(context.Background(), 999, EntryPatch{Text: &text})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("UpdateEntry() error = %v, want ErrNotFound", err)
	}
}

func TestDeleteEntry_NotFound(t *testing.T) {
	s := testStore(t)

	err := s.DeleteEntry(context.Background(), 999)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("DeleteEntry() error = %v, want ErrNotFound", err)
	}
}

func TestEntryIDBySourceID(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	if _, err := s.EntryIDBySourceID(ctx, "T-1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("EntryIDBySourceID() error = %v, want ErrNotFound", err)
	}

	want, err := s.AddEntry(ctx, NewEntry{Text: "imported", SourceID: "T-1"})
	if err != nil {
		t.Fatalf("AddEntry() failed: %v", err)
	}

	got, err := s.EntryIDBySourceID(ctx, "T-1")
	if err != nil {
		t.Fatalf("EntryIDBySourceID() failed: %v", err)
	}
	if got != want {
		t.Errorf("EntryIDBySourceID() = %d, want %d", got, want)
	}
}

func TestImportEntry_AtomicPromotion(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	resolved := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	tickets := []Ticket{{
		TicketKey:  "X-9",
		Summary:    "Fix login bug",
		ResolvedAt: &resolved,
		URL:        "https://t/browse/X-9",
	}}
	if err := s.InsertTickets(ctx, tickets); err != nil {
		t.Fatalf("InsertTickets() failed: %v", err)
	}

	id, err := s.ImportEntry(ctx, "X-9", NewEntry{
		Text:      "Fix login bug",
		Date:      "2024-03-01",
		Source:    "jira",
		SourceID:  "X-9",
		SourceURL: "https://t/browse/X-9",
	})
	if err != nil {
		t.Fatalf("ImportEntry() failed: %v", err)
	}

	entry, err := s.GetEntry(ctx, id)
	if err != nil {
		t.Fatalf("GetEntry() failed: %v", err)
	}
	if entry.SourceID != "X-9" {
		t.Errorf("SourceID = %q, want %q", entry.SourceID, "X-9")
	}

	// The ticket must be gone from the cache in the same transaction
	if _, err := s.GetTicket(ctx, "X-9"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetTicket() after import error = %v, want ErrNotFound", err)
	}
}
