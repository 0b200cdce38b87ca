package store

import (
	"context"
	"testing"
)

func TestGetConfig_AbsentIsNotAnError(t *testing.T) {
	s := testStore(t)

	value, ok, err := s.GetConfig(context.Background(), "jira.url")
	if err != nil {
		t.Fatalf("GetConfig() failed: %v", err)
	}
	if ok {
		t.Errorf("GetConfig() ok = true for missing key, value %q", value)
	}
}

func TestSetConfig_Upsert(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	if err := s.SetConfig(ctx, "jira.url", "https://old.example.com"); err != nil {
		t.Fatalf("SetConfig() failed: %v", err)
	}
	if err := s.SetConfig(ctx, "jira.url", "https://new.example.com"); err != nil {
		t.Fatalf("SetConfig() overwrite failed: %v", err)
	}

	value, ok, err := s.GetConfig(ctx, "jira.url")
	if err != nil {
		t.Fatalf("GetConfig() failed: %v", err)
	}
	if !ok || value != "https://new.example.com" {
		t.Errorf("GetConfig() = %q, %v; want new value", value, ok)
	}

	values, err := s.ListConfig(ctx)
	if err != nil {
		t.Fatalf("ListConfig() failed: %v", err)
	}
	if len(values) != 1 {
		t.Errorf("ListConfig() returned %d rows, want 1 (upsert, not append)", len(values))
	}
}
