package store

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/tartampluch/go-calendar/internal/config"
	"github.com/tartampluch/go-calendar/internal/event"

	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS events (
	seq              INTEGER PRIMARY KEY,
	id               TEXT NOT NULL,
	date             TEXT NOT NULL,
	time             TEXT NOT NULL,
	duration_minutes INTEGER NOT NULL,
	title            TEXT NOT NULL,
	description      TEXT NOT NULL,
	category         TEXT NOT NULL,
	priority         TEXT NOT NULL,
	created_at       TEXT NOT NULL
)`

const sqliteInsert = `
INSERT INTO events (seq, id, date, time, duration_minutes, title, description, category, priority, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

const sqliteSelect = `
SELECT id, date, time, duration_minutes, title, description, category, priority, created_at
FROM events ORDER BY seq`

// SQLiteStore keeps the snapshot in a single SQLite table. Row order
// follows the order events were saved in.
type SQLiteStore struct {
	path string
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path}
}

func (s *SQLiteStore) Path() string { return s.path }

func (s *SQLiteStore) HasExistingData() bool { return fileExists(s.path) }

func (s *SQLiteStore) Delete() error {
	if err := deleteFile(s.path); err != nil {
		return err
	}
	slog.Info(config.MsgStoreDeleted,
		config.LogKeyComponent, config.CompStore,
		config.LogKeyPath, s.path,
	)
	return nil
}

func (s *SQLiteStore) open(ctx context.Context) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(s.path), config.DirPermUserRWX); err != nil {
		return nil, err
	}
	db, err := sql.Open(config.SQLiteDriver, s.path)
	if err != nil {
		return nil, err
	}
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// Save replaces the table content inside one transaction.
func (s *SQLiteStore) Save(ctx context.Context, events []event.Event) error {
	if err := s.save(ctx, events); err != nil {
		return &PersistenceError{Op: config.ErrStoreSave, Path: s.path, Err: err}
	}
	slog.Info(config.MsgStoreSaved,
		config.LogKeyComponent, config.CompStore,
		config.LogKeyBackend, config.BackendSQLite,
		config.LogKeyPath, s.path,
		config.LogKeyCount, len(events),
	)
	return nil
}

func (s *SQLiteStore) save(ctx context.Context, events []event.Event) error {
	db, err := s.open(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM events`); err != nil {
		return err
	}
	stmt, err := tx.PrepareContext(ctx, sqliteInsert)
	if err != nil {
		return err
	}
	defer func() { _ = stmt.Close() }()

	for i, e := range events {
		r := encodeRecord(e)
		if _, err := stmt.ExecContext(ctx,
			i,
			r[config.FieldID],
			r[config.FieldDate],
			r[config.FieldTime],
			e.DurationMinutes(),
			r[config.FieldTitle],
			r[config.FieldDescription],
			r[config.FieldCategory],
			r[config.FieldPriority],
			r[config.FieldCreatedAt],
		); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Load returns the saved rows in order, skipping rows that do not decode.
func (s *SQLiteStore) Load(ctx context.Context) ([]event.Event, error) {
	if !s.HasExistingData() {
		return []event.Event{}, nil
	}
	events, skipped, err := s.load(ctx)
	if err != nil {
		return nil, &PersistenceError{Op: config.ErrStoreLoad, Path: s.path, Err: err}
	}
	slog.Info(config.MsgStoreLoaded,
		config.LogKeyComponent, config.CompStore,
		config.LogKeyBackend, config.BackendSQLite,
		config.LogKeyPath, s.path,
		config.LogKeyCount, len(events),
		config.LogKeySkipped, skipped,
	)
	return events, nil
}

func (s *SQLiteStore) load(ctx context.Context) ([]event.Event, int, error) {
	db, err := s.open(ctx)
	if err != nil {
		return nil, 0, err
	}
	defer func() { _ = db.Close() }()

	rows, err := db.QueryContext(ctx, sqliteSelect)
	if err != nil {
		return nil, 0, err
	}
	defer func() { _ = rows.Close() }()

	events := []event.Event{}
	skipped := 0
	for rows.Next() {
		var id, date, tod, minutes, title, description, category, priority, createdAt string
		if err := rows.Scan(&id, &date, &tod, &minutes, &title, &description, &category, &priority, &createdAt); err != nil {
			return nil, skipped, err
		}
		e, err := decodeRecord(record{
			config.FieldID:              id,
			config.FieldDate:            date,
			config.FieldTime:            tod,
			config.FieldDurationMinutes: minutes,
			config.FieldTitle:           title,
			config.FieldDescription:     description,
			config.FieldCategory:        category,
			config.FieldPriority:        priority,
			config.FieldCreatedAt:       createdAt,
		})
		if err != nil {
			skipped++
			slog.Warn(config.MsgSkippedRow,
				config.LogKeyComponent, config.CompStore,
				config.LogKeyPath, s.path,
				config.LogKeyID, id,
				config.LogKeyError, err,
			)
			continue
		}
		events = append(events, e)
	}
	return events, skipped, rows.Err()
}
