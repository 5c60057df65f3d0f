package store

import (
	"context"
	"errors"
	"testing"

	"github.com/hyperengineering/lifegrid/internal/types"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	db, err := NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestStore_NewSQLiteStore(t *testing.T) {
	newTestStore(t)
}

func TestStore_GetPeriodNotFound(t *testing.T) {
	db := newTestStore(t)

	_, err := db.GetPeriod(context.Background(), "y-2026")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestStore_GetOrCreatePeriodIsLazy(t *testing.T) {
	db := newTestStore(t)
	ctx := context.Background()

	p, err := db.GetOrCreatePeriod(ctx, "m-2026-07", types.LevelMonth)
	if err != nil {
		t.Fatal(err)
	}
	if p.Revision != 0 {
		t.Errorf("fresh period revision = %d, want 0", p.Revision)
	}

	// Nothing persisted until SavePeriods.
	count, err := db.CountPeriods(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if count != 0 {
		t.Errorf("period count = %d, want 0", count)
	}
}

func TestStore_SaveAndReloadPeriod(t *testing.T) {
	db := newTestStore(t)
	ctx := context.Background()

	p := types.NewPeriod("m-2026-07", types.LevelMonth)
	p.Goal = "ship the rewrite"
	p.Todos = []types.Item{{ID: "01A", Content: "write docs", ChildIDs: []string{"01B"}}}
	p.Slots = map[string][]types.Item{
		"w-2026-07-1": {{ID: "01B", Content: "write docs", ParentID: "01A"}},
	}

	if err := db.SavePeriods(ctx, []*types.Period{p}); err != nil {
		t.Fatal(err)
	}
	if p.Revision != 1 {
		t.Errorf("revision after insert = %d, want 1", p.Revision)
	}

	got, err := db.GetPeriod(ctx, "m-2026-07")
	if err != nil {
		t.Fatal(err)
	}
	if got.Goal != p.Goal {
		t.Errorf("Goal = %q, want %q", got.Goal, p.Goal)
	}
	if got.Level != types.LevelMonth {
		t.Errorf("Level = %q, want %q", got.Level, types.LevelMonth)
	}
	if len(got.Todos) != 1 || got.Todos[0].ID != "01A" {
		t.Fatalf("Todos = %v", got.Todos)
	}
	if got.Todos[0].ChildIDs[0] != "01B" {
		t.Errorf("ChildIDs = %v", got.Todos[0].ChildIDs)
	}
	if got.Slots["w-2026-07-1"][0].ParentID != "01A" {
		t.Errorf("slot item ParentID = %q", got.Slots["w-2026-07-1"][0].ParentID)
	}
	if got.Revision != 1 {
		t.Errorf("loaded revision = %d, want 1", got.Revision)
	}
}

func TestStore_SavePeriodsAdvancesRevision(t *testing.T) {
	db := newTestStore(t)
	ctx := context.Background()

	p := types.NewPeriod("y-2026", types.LevelYear)
	if err := db.SavePeriods(ctx, []*types.Period{p}); err != nil {
		t.Fatal(err)
	}
	p.Goal = "updated"
	if err := db.SavePeriods(ctx, []*types.Period{p}); err != nil {
		t.Fatal(err)
	}
	if p.Revision != 2 {
		t.Errorf("revision = %d, want 2", p.Revision)
	}
}

func TestStore_SavePeriodsRevisionConflict(t *testing.T) {
	db := newTestStore(t)
	ctx := context.Background()

	p := types.NewPeriod("y-2026", types.LevelYear)
	if err := db.SavePeriods(ctx, []*types.Period{p}); err != nil {
		t.Fatal(err)
	}

	// A second reader writes first.
	other, err := db.GetPeriod(ctx, "y-2026")
	if err != nil {
		t.Fatal(err)
	}
	other.Goal = "theirs"
	if err := db.SavePeriods(ctx, []*types.Period{other}); err != nil {
		t.Fatal(err)
	}

	// Our stale copy must be rejected.
	p.Goal = "ours"
	err = db.SavePeriods(ctx, []*types.Period{p})
	if !errors.Is(err, ErrRevisionConflict) {
		t.Errorf("err = %v, want ErrRevisionConflict", err)
	}

	// The winning write survives.
	got, err := db.GetPeriod(ctx, "y-2026")
	if err != nil {
		t.Fatal(err)
	}
	if got.Goal != "theirs" {
		t.Errorf("Goal = %q, want %q", got.Goal, "theirs")
	}
}

func TestStore_SavePeriodsConflictRollsBackBatch(t *testing.T) {
	db := newTestStore(t)
	ctx := context.Background()

	a := types.NewPeriod("y-2026", types.LevelYear)
	if err := db.SavePeriods(ctx, []*types.Period{a}); err != nil {
		t.Fatal(err)
	}

	fresh := types.NewPeriod("y-2027", types.LevelYear)
	stale := types.NewPeriod("y-2026", types.LevelYear)
	stale.Revision = 99

	err := db.SavePeriods(ctx, []*types.Period{fresh, stale})
	if !errors.Is(err, ErrRevisionConflict) {
		t.Fatalf("err = %v, want ErrRevisionConflict", err)
	}

	// The fresh insert rolled back with the conflicting update.
	if _, err := db.GetPeriod(ctx, "y-2027"); !errors.Is(err, ErrNotFound) {
		t.Errorf("y-2027 should not have been persisted, err = %v", err)
	}
}

func TestStore_ListPeriods(t *testing.T) {
	db := newTestStore(t)
	ctx := context.Background()

	for _, id := range []string{"y-2026", "m-2026-07", "d-2026-07-15"} {
		p := types.NewPeriod(id, types.Level("y"))
		if err := db.SavePeriods(ctx, []*types.Period{p}); err != nil {
			t.Fatal(err)
		}
	}

	periods, err := db.ListPeriods(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(periods) != 3 {
		t.Errorf("got %d periods, want 3", len(periods))
	}
}

func TestStore_DailyRecordRoundTrip(t *testing.T) {
	db := newTestStore(t)
	ctx := context.Background()

	if _, err := db.GetRecord(ctx, "d-2026-07-15"); !errors.Is(err, ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}

	rec := &types.DailyRecord{
		PeriodID:   "d-2026-07-15",
		Content:    "long day",
		Mood:       types.MoodGood,
		Highlights: []string{"shipped the store layer"},
		Gratitude:  []string{"coffee"},
	}
	if err := db.PutRecord(ctx, rec); err != nil {
		t.Fatal(err)
	}

	got, err := db.GetRecord(ctx, "d-2026-07-15")
	if err != nil {
		t.Fatal(err)
	}
	if got.Content != rec.Content || got.Mood != rec.Mood {
		t.Errorf("got %+v", got)
	}
	if len(got.Highlights) != 1 || got.Highlights[0] != "shipped the store layer" {
		t.Errorf("Highlights = %v", got.Highlights)
	}

	// Upsert replaces the record.
	rec.Mood = types.MoodNeutral
	if err := db.PutRecord(ctx, rec); err != nil {
		t.Fatal(err)
	}
	got, err = db.GetRecord(ctx, "d-2026-07-15")
	if err != nil {
		t.Fatal(err)
	}
	if got.Mood != types.MoodNeutral {
		t.Errorf("Mood = %q after upsert", got.Mood)
	}
}

func TestStore_Events(t *testing.T) {
	db := newTestStore(t)
	ctx := context.Background()

	created, err := db.AddEvent(ctx, types.AnnualEvent{Name: "anniversary", Month: 5, Day: 20})
	if err != nil {
		t.Fatal(err)
	}
	if created.ID == "" {
		t.Error("expected ID to be set")
	}

	if _, err := db.AddEvent(ctx, types.AnnualEvent{Name: "new year", Month: 1, Day: 1, Lunar: true}); err != nil {
		t.Fatal(err)
	}

	events, err := db.ListEvents(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	// Ordered by calendar date.
	if events[0].Name != "new year" || !events[0].Lunar {
		t.Errorf("events[0] = %+v", events[0])
	}

	if err := db.DeleteEvent(ctx, created.ID); err != nil {
		t.Fatal(err)
	}
	if err := db.DeleteEvent(ctx, created.ID); !errors.Is(err, ErrEventNotFound) {
		t.Errorf("err = %v, want ErrEventNotFound", err)
	}
}

func TestStore_Snapshot(t *testing.T) {
	dir := t.TempDir()
	db, err := NewSQLiteStore(dir + "/plan.db")
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	ctx := context.Background()

	p := types.NewPeriod("y-2026", types.LevelYear)
	if err := db.SavePeriods(ctx, []*types.Period{p}); err != nil {
		t.Fatal(err)
	}

	if _, err := db.GetSnapshotPath(ctx); err == nil {
		t.Error("snapshot path should not exist before generation")
	}
	if err := db.GenerateSnapshot(ctx); err != nil {
		t.Fatal(err)
	}
	path, err := db.GetSnapshotPath(ctx)
	if err != nil {
		t.Fatal(err)
	}

	// The snapshot is a standalone database with the same contents.
	snap, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatal(err)
	}
	defer snap.Close()
	count, err := snap.CountPeriods(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Errorf("snapshot period count = %d, want 1", count)
	}
}
