package profilesync

import (
	"errors"
	"testing"
)

func TestColumnsKnownTables(t *testing.T) {
	tables := []string{
		"pf_education",
		"pf_work_experience",
		"pf_language",
		"pf_skill",
		"pf_certificate",
		"pf_project",
		"pf_volunteer_experience",
		"pf_social_link",
	}
	for _, table := range tables {
		cols, err := Columns(table)
		if err != nil {
			t.Fatalf("Columns(%q): %v", table, err)
		}
		if len(cols) < 2 {
			t.Fatalf("Columns(%q) too short: %v", table, cols)
		}
		if cols[0] != "profile_id" {
			t.Errorf("Columns(%q)[0] = %q, want profile_id", table, cols[0])
		}
		for _, c := range cols {
			if c == "id" || c == "created_at" || c == "updated_at" {
				t.Errorf("Columns(%q) must not contain system column %q", table, c)
			}
		}
	}
}

func TestColumnsStableOrder(t *testing.T) {
	a, _ := Columns("pf_work_experience")
	b, _ := Columns("pf_work_experience")
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("column order not stable at %d: %q vs %q", i, a[i], b[i])
		}
	}
}

func TestColumnsUnknownTable(t *testing.T) {
	_, err := Columns("pf_nonsense")
	if err == nil {
		t.Fatal("expected error for unknown table")
	}
	if !errors.Is(err, ErrUnknownTable) {
		t.Fatalf("expected ErrUnknownTable, got %v", err)
	}
}
