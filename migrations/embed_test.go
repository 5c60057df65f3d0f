package migrations

import (
	"strings"
	"testing"
)

func TestEmbeddedFS_ContainsMigrationFiles(t *testing.T) {
	entries, err := FS.ReadDir(".")
	if err != nil {
		t.Fatalf("failed to read embedded FS: %v", err)
	}

	want := map[string]bool{
		"001_create_periods.sql":       false,
		"002_create_daily_records.sql": false,
		"003_create_annual_events.sql": false,
	}
	for _, entry := range entries {
		if _, ok := want[entry.Name()]; ok {
			want[entry.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("%s not found in embedded FS", name)
		}
	}
}

func TestEmbeddedFS_MigrationsCarryGooseDirectives(t *testing.T) {
	entries, err := FS.ReadDir(".")
	if err != nil {
		t.Fatalf("failed to read embedded FS: %v", err)
	}

	for _, entry := range entries {
		content, err := FS.ReadFile(entry.Name())
		if err != nil {
			t.Fatalf("failed to read %s: %v", entry.Name(), err)
		}
		s := string(content)
		if !strings.Contains(s, "-- +goose Up") {
			t.Errorf("%s missing '-- +goose Up' directive", entry.Name())
		}
		if !strings.Contains(s, "-- +goose Down") {
			t.Errorf("%s missing '-- +goose Down' directive", entry.Name())
		}
	}
}
