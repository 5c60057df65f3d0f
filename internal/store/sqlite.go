package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/hyperengineering/lifegrid/internal/types"
	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"
)

// SQLiteStore is the SQLite-backed plan database. Each period is persisted
// as one JSON document row with a monotonically increasing revision.
type SQLiteStore struct {
	db           *sql.DB
	snapshotPath string
}

// NewSQLiteStore creates a new SQLiteStore instance.
// It initializes the database with WAL mode, applies pragmas, and runs migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	// Ensure parent directory exists
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// SQLite allows one writer; a single pooled connection also keeps
	// :memory: databases coherent across calls.
	db.SetMaxOpenConns(1)

	if err := enablePragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable pragmas: %w", err)
	}

	if err := RunMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	snapshotPath := dbPath + ".snapshot"
	if dbPath == ":memory:" {
		snapshotPath = filepath.Join(os.TempDir(), "lifegrid-snapshot.db")
	}

	return &SQLiteStore{db: db, snapshotPath: snapshotPath}, nil
}

// enablePragmas sets SQLite pragmas for optimal performance and safety.
func enablePragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA foreign_keys=ON",
		"PRAGMA synchronous=NORMAL",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("execute %s: %w", pragma, err)
		}
	}

	return nil
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// GetPeriod returns the period document for the given ID.
func (s *SQLiteStore) GetPeriod(ctx context.Context, id string) (*types.Period, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT document, revision, created_at, updated_at
		FROM periods WHERE id = ?
	`, id)
	return scanPeriod(row)
}

// GetOrCreatePeriod returns the stored document or a fresh empty one at
// revision 0. The empty document is only materialized in memory; it first
// hits the database when SavePeriods writes it.
func (s *SQLiteStore) GetOrCreatePeriod(ctx context.Context, id string, level types.Level) (*types.Period, error) {
	p, err := s.GetPeriod(ctx, id)
	if err == nil {
		return p, nil
	}
	if err != ErrNotFound {
		return nil, err
	}
	return types.NewPeriod(id, level), nil
}

// ListPeriods returns every stored period document.
func (s *SQLiteStore) ListPeriods(ctx context.Context) ([]*types.Period, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT document, revision, created_at, updated_at
		FROM periods ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("list periods: %w", err)
	}
	defer rows.Close()

	var periods []*types.Period
	for rows.Next() {
		p, err := scanPeriod(rows)
		if err != nil {
			return nil, err
		}
		periods = append(periods, p)
	}
	return periods, rows.Err()
}

// SavePeriods writes the documents in one transaction with a compare-and-set
// on each document's revision. Any mismatch rolls back the whole batch and
// returns ErrRevisionConflict.
func (s *SQLiteStore) SavePeriods(ctx context.Context, periods []*types.Period) error {
	if len(periods) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	for _, p := range periods {
		doc, err := json.Marshal(p)
		if err != nil {
			return fmt.Errorf("marshal period %s: %w", p.ID, err)
		}

		if p.Revision == 0 {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO periods (id, level, document, revision, created_at, updated_at)
				VALUES (?, ?, ?, 1, ?, ?)
			`, p.ID, string(p.Level), string(doc), now.Format(time.RFC3339), now.Format(time.RFC3339))
			if err != nil {
				// A unique violation means someone created the document
				// between our read and this write.
				return fmt.Errorf("insert period %s: %w", p.ID, ErrRevisionConflict)
			}
			continue
		}

		res, err := tx.ExecContext(ctx, `
			UPDATE periods SET document = ?, revision = revision + 1, updated_at = ?
			WHERE id = ? AND revision = ?
		`, string(doc), now.Format(time.RFC3339), p.ID, p.Revision)
		if err != nil {
			return fmt.Errorf("update period %s: %w", p.ID, err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("update period %s: %w", p.ID, err)
		}
		if affected == 0 {
			return fmt.Errorf("save period %s: %w", p.ID, ErrRevisionConflict)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save: %w", err)
	}

	for _, p := range periods {
		p.Revision++
		p.UpdatedAt = now
	}
	return nil
}

// CountPeriods returns the number of stored period documents.
func (s *SQLiteStore) CountPeriods(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM periods").Scan(&count)
	return count, err
}

// GetRecord returns the daily record of a DAY period.
func (s *SQLiteStore) GetRecord(ctx context.Context, periodID string) (*types.DailyRecord, error) {
	var (
		rec        types.DailyRecord
		mood       string
		highlights string
		gratitude  string
		updatedAt  string
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT period_id, content, mood, highlights, gratitude, updated_at
		FROM daily_records WHERE period_id = ?
	`, periodID).Scan(&rec.PeriodID, &rec.Content, &mood, &highlights, &gratitude, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get record %s: %w", periodID, err)
	}

	rec.Mood = types.Mood(mood)
	if err := json.Unmarshal([]byte(highlights), &rec.Highlights); err != nil {
		return nil, fmt.Errorf("decode highlights for %s: %w", periodID, err)
	}
	if err := json.Unmarshal([]byte(gratitude), &rec.Gratitude); err != nil {
		return nil, fmt.Errorf("decode gratitude for %s: %w", periodID, err)
	}
	if t, err := time.Parse(time.RFC3339, updatedAt); err == nil {
		rec.UpdatedAt = t
	}
	return &rec, nil
}

// PutRecord upserts the daily record of a DAY period.
func (s *SQLiteStore) PutRecord(ctx context.Context, record *types.DailyRecord) error {
	highlights, err := json.Marshal(emptyIfNil(record.Highlights))
	if err != nil {
		return fmt.Errorf("encode highlights: %w", err)
	}
	gratitude, err := json.Marshal(emptyIfNil(record.Gratitude))
	if err != nil {
		return fmt.Errorf("encode gratitude: %w", err)
	}

	now := time.Now().UTC()
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO daily_records (period_id, content, mood, highlights, gratitude, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(period_id) DO UPDATE SET
			content = excluded.content,
			mood = excluded.mood,
			highlights = excluded.highlights,
			gratitude = excluded.gratitude,
			updated_at = excluded.updated_at
	`, record.PeriodID, record.Content, string(record.Mood),
		string(highlights), string(gratitude), now.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("put record %s: %w", record.PeriodID, err)
	}
	record.UpdatedAt = now
	return nil
}

// ListEvents returns all annual events ordered by calendar date.
func (s *SQLiteStore) ListEvents(ctx context.Context) ([]types.AnnualEvent, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, month, day, lunar, created_at
		FROM annual_events ORDER BY month, day, id
	`)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var events []types.AnnualEvent
	for rows.Next() {
		var (
			ev        types.AnnualEvent
			lunar     int
			createdAt string
		)
		if err := rows.Scan(&ev.ID, &ev.Name, &ev.Month, &ev.Day, &lunar, &createdAt); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		ev.Lunar = lunar != 0
		if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
			ev.CreatedAt = t
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}

// AddEvent stores a new annual event.
func (s *SQLiteStore) AddEvent(ctx context.Context, event types.AnnualEvent) (*types.AnnualEvent, error) {
	event.ID = ulid.Make().String()
	event.CreatedAt = time.Now().UTC()

	lunar := 0
	if event.Lunar {
		lunar = 1
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO annual_events (id, name, month, day, lunar, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, event.ID, event.Name, event.Month, event.Day, lunar, event.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("add event: %w", err)
	}
	return &event, nil
}

// DeleteEvent removes an annual event.
func (s *SQLiteStore) DeleteEvent(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM annual_events WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete event %s: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete event %s: %w", id, err)
	}
	if affected == 0 {
		return ErrEventNotFound
	}
	return nil
}

// GenerateSnapshot writes a consistent copy of the database to the snapshot
// path using VACUUM INTO.
func (s *SQLiteStore) GenerateSnapshot(ctx context.Context) error {
	// VACUUM INTO refuses to overwrite an existing file.
	if err := os.Remove(s.snapshotPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove stale snapshot: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, "VACUUM INTO ?", s.snapshotPath); err != nil {
		return fmt.Errorf("generate snapshot: %w", err)
	}
	return nil
}

// GetSnapshotPath returns the path of the latest snapshot file.
func (s *SQLiteStore) GetSnapshotPath(ctx context.Context) (string, error) {
	if _, err := os.Stat(s.snapshotPath); err != nil {
		return "", fmt.Errorf("snapshot not generated: %w", err)
	}
	return s.snapshotPath, nil
}

// scanner abstracts sql.Row and sql.Rows for scanPeriod.
type scanner interface {
	Scan(dest ...any) error
}

func scanPeriod(row scanner) (*types.Period, error) {
	var (
		doc       string
		revision  int64
		createdAt string
		updatedAt string
	)
	err := row.Scan(&doc, &revision, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan period: %w", err)
	}

	var p types.Period
	if err := json.Unmarshal([]byte(doc), &p); err != nil {
		return nil, fmt.Errorf("decode period document: %w", err)
	}
	p.Revision = revision
	if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
		p.CreatedAt = t
	}
	if t, err := time.Parse(time.RFC3339, updatedAt); err == nil {
		p.UpdatedAt = t
	}
	if p.Todos == nil {
		p.Todos = []types.Item{}
	}
	if p.Routines == nil {
		p.Routines = []types.Item{}
	}
	return &p, nil
}

func emptyIfNil(ss []string) []string {
	if ss == nil {
		return []string{}
	}
	return ss
}
