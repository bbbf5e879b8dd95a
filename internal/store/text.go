package store

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tartampluch/go-calendar/internal/config"
	"github.com/tartampluch/go-calendar/internal/event"
)

// TextStore keeps one event per line in a plain text file:
//
//	# go-calendar store version=2.0 exportedAt=2026-01-26T10:00:00Z
//	id="..." date="2026-01-26" time="10:00" durationMinutes="60" title="..." ...
//
// Lines starting with '#' and blank lines are ignored on load.
type TextStore struct {
	path string
}

func NewTextStore(path string) *TextStore {
	return &TextStore{path: path}
}

func (s *TextStore) Path() string { return s.path }

func (s *TextStore) HasExistingData() bool { return fileExists(s.path) }

func (s *TextStore) Delete() error {
	if err := deleteFile(s.path); err != nil {
		return err
	}
	slog.Info(config.MsgStoreDeleted,
		config.LogKeyComponent, config.CompStore,
		config.LogKeyPath, s.path,
	)
	return nil
}

// Save replaces the file with a snapshot of events. The write goes to a
// temp file in the same directory which is then renamed over the target.
func (s *TextStore) Save(ctx context.Context, events []event.Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.write(events); err != nil {
		return &PersistenceError{Op: config.ErrStoreSave, Path: s.path, Err: err}
	}
	slog.Info(config.MsgStoreSaved,
		config.LogKeyComponent, config.CompStore,
		config.LogKeyBackend, config.BackendText,
		config.LogKeyPath, s.path,
		config.LogKeyCount, len(events),
	)
	return nil
}

func (s *TextStore) write(events []event.Event) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, config.DirPermUserRWX); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".go-calendar-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	w := bufio.NewWriter(tmp)
	fmt.Fprintf(w, config.FormatStoreHeader, config.StoreFormatVersion, time.Now().UTC().Format(config.DateTimeFormatISO))
	for _, e := range events {
		w.WriteString(formatLine(encodeRecord(e)))
		w.WriteByte('\n')
	}
	if err := w.Flush(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, config.FilePermUserRW); err != nil {
		return err
	}
	return os.Rename(tmpName, s.path)
}

// Load reads every well-formed record in file order.
func (s *TextStore) Load(ctx context.Context) ([]event.Event, error) {
	f, err := os.Open(s.path)
	if errors.Is(err, os.ErrNotExist) {
		slog.Debug(config.MsgStoreMissing,
			config.LogKeyComponent, config.CompStore,
			config.LogKeyPath, s.path,
		)
		return []event.Event{}, nil
	}
	if err != nil {
		return nil, &PersistenceError{Op: config.ErrStoreLoad, Path: s.path, Err: err}
	}
	defer func() { _ = f.Close() }()

	events, skipped, err := s.read(ctx, f)
	if err != nil {
		return nil, err
	}

	slog.Info(config.MsgStoreLoaded,
		config.LogKeyComponent, config.CompStore,
		config.LogKeyBackend, config.BackendText,
		config.LogKeyPath, s.path,
		config.LogKeyCount, len(events),
		config.LogKeySkipped, skipped,
	)
	return events, nil
}

func (s *TextStore) read(ctx context.Context, r io.Reader) ([]event.Event, int, error) {
	events := []event.Event{}
	skipped := 0
	br := bufio.NewReader(r)

	for lineNo := 1; ; lineNo++ {
		if err := ctx.Err(); err != nil {
			return nil, skipped, err
		}

		line, readErr := br.ReadString('\n')
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return nil, skipped, &PersistenceError{Op: config.ErrStoreLoad, Path: s.path, Err: readErr}
		}

		line = strings.TrimRight(line, "\r\n")
		if trimmed := strings.TrimSpace(line); trimmed != "" && !strings.HasPrefix(trimmed, config.StoreHeaderPrefix) {
			e, err := decodeLine(line)
			if err != nil {
				skipped++
				slog.Warn(config.MsgSkippedRecord,
					config.LogKeyComponent, config.CompStore,
					config.LogKeyPath, s.path,
					config.LogKeyLine, lineNo,
					config.LogKeyError, err,
				)
			} else {
				events = append(events, e)
			}
		}

		if readErr != nil {
			return events, skipped, nil
		}
	}
}

func decodeLine(line string) (event.Event, error) {
	r, err := parseLine(line)
	if err != nil {
		return event.Event{}, err
	}
	return decodeRecord(r)
}
