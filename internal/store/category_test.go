package store

import (
	"context"
	"errors"
	"testing"
)

func TestAddCategory_Duplicate(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	if _, err := s.AddCategory(ctx, "Bugfix"); err != nil {
		t.Fatalf("AddCategory() failed: %v", err)
	}

	_, err := s.AddCategory(ctx, "Bugfix")
	if !errors.Is(err, ErrCategoryExists) {
		t.Errorf("AddCategory() duplicate error = %v, want ErrCategoryExists", err)
	}
}

func TestListCategories_OrderedByName(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	for _, name := range []string{"Zeta", "Alpha", "Mid"} {
		if _, err := s.AddCategory(ctx, name); err != nil {
			t.Fatalf("AddCategory(%q) failed: %v", name, err)
		}
	}

	categories, err := s.ListCategories(ctx)
	if err != nil {
		t.Fatalf("ListCategories() failed: %v", err)
	}

	want := []string{"Alpha", "Mid", "Zeta"}
	if len(categories) != len(want) {
		t.Fatalf("ListCategories() returned %d categories, want %d", len(categories), len(want))
	}
	for i, name := range want {
		if categories[i].Name != name {
			t.Errorf("categories[%d].Name = %q, want %q", i, categories[i].Name, name)
		}
	}
}

func TestRenameCategory_KeepsReferences(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	id, err := s.AddCategory(ctx, "Old")
	if err != nil {
		t.Fatalf("AddCategory() failed: %v", err)
	}
	entryID, err := s.AddEntry(ctx, NewEntry{Text: "e", CategoryID: &id})
	if err != nil {
		t.Fatalf("AddEntry() failed: %v", err)
	}

	if err := s.RenameCategory(ctx, id, "New"); err != nil {
		t.Fatalf("RenameCategory() failed: %v", err)
	}

	entry, err := s.GetEntry(ctx, entryID)
	if err != nil {
		t.Fatalf("GetEntry() failed: %v", err)
	}
	if entry.Category != "New" {
		t.Errorf("Category = %q, want %q", entry.Category, "New")
	}
}

func TestDeleteCategory_RefusedWhileReferenced(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	id, err := s.AddCategory(ctx, "Used")
	if err != nil {
		t.Fatalf("AddCategory() failed: %v", err)
	}
	entryID, err := s.AddEntry(ctx, NewEntry{Text: "e", CategoryID: &id})
	if err != nil {
		t.Fatalf("AddEntry() failed: %v", err)
	}

	err = s.DeleteCategory(ctx, id)
	if !errors.Is(err, ErrCategoryInUse) {
		t.Fatalf("DeleteCategory() error = %v, want ErrCategoryInUse", err)
	}

	// Both the category and the referencing entry must be unchanged
	if _, err := s.CategoryIDByName(ctx, "Used"); err != nil {
		t.Errorf("category gone after refused delete: %v", err)
	}
	if _, err := s.GetEntry(ctx, entryID); err != nil {
		t.Errorf("entry gone after refused delete: %v", err)
	}
}

func TestDeleteCategory_Unreferenced(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	id, err := s.AddCategory(ctx, "Unused")
	if err != nil {
		t.Fatalf("AddCategory() failed: %v", err)
	}

	if err := s.DeleteCategory(ctx, id); err != nil {
		t.Fatalf("DeleteCategory() failed: %v", err)
	}

	if _, err := s.CategoryIDByName(ctx, "Unused"); !errors.Is(err, ErrNotFound) {
		t.Errorf("CategoryIDByName() error = %v, want ErrNotFound", err)
	}
}
