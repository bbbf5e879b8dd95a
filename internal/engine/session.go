package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/tartampluch/go-calendar/internal/config"
	"github.com/tartampluch/go-calendar/internal/event"
	"github.com/tartampluch/go-calendar/internal/index"
	"github.com/tartampluch/go-calendar/internal/store"
)

// Session owns one event index and the store it is loaded from and saved
// to. Like the index, it is not safe for concurrent use.
type Session struct {
	Index *index.EventIndex
	Store store.Store

	// CheckConflicts makes Add, AddAll and Update reject overlapping events.
	CheckConflicts bool

	savedModCount int
}

func NewSession(st store.Store, checkConflicts bool) *Session {
	s := &Session{
		Index:          index.New(),
		Store:          st,
		CheckConflicts: checkConflicts,
	}
	s.markClean()
	return s
}

func (s *Session) markClean() { s.savedModCount = s.Index.ModCount() }

// Dirty reports whether the index changed since the last Load or Save.
func (s *Session) Dirty() bool { return s.Index.ModCount() != s.savedModCount }

// Load replaces the index content with the stored snapshot. Stored events
// are inserted without conflict checks.
func (s *Session) Load(ctx context.Context) (int, error) {
	events, err := s.Store.Load(ctx)
	if err != nil {
		return 0, err
	}
	s.Index.Clear()
	for _, e := range events {
		s.Index.Insert(e)
	}
	s.markClean()
	return len(events), nil
}

// Save writes the index in pre-order so a later Load rebuilds the same tree.
func (s *Session) Save(ctx context.Context) error {
	if err := s.Store.Save(ctx, s.Index.Snapshot()); err != nil {
		return err
	}
	s.markClean()
	return nil
}

// Add inserts e, checking for conflicts when CheckConflicts is set.
func (s *Session) Add(e event.Event) error {
	if err := s.Index.InsertChecked(e, s.CheckConflicts); err != nil {
		logConflict(err)
		return err
	}
	slog.Debug(config.MsgEventInserted,
		config.LogKeyComponent, config.CompEngine,
		config.LogKeyID, e.ID(),
		config.LogKeyDate, e.Date().String(),
	)
	return nil
}

// AddAll inserts every event or none of them. Ids must be new to the index
// and unique within events. On failure the events already inserted by this
// call are removed again.
func (s *Session) AddAll(events []event.Event) error {
	seen := make(map[string]bool, len(events))
	for _, e := range events {
		_, err := s.Index.FindByID(e.ID())
		if seen[e.ID()] || err == nil {
			return fmt.Errorf("%w: id=%s", index.ErrDuplicateID, e.ID())
		}
		seen[e.ID()] = true
	}

	for i, e := range events {
		if err := s.Add(e); err != nil {
			for _, done := range events[:i] {
				_, _ = s.Index.DeleteByID(done.ID())
			}
			return err
		}
	}
	return nil
}

// Import inserts events without conflict checks, skipping ids already in
// the index. It returns how many were added.
func (s *Session) Import(events []event.Event) int {
	added := 0
	for _, e := range events {
		if _, err := s.Index.FindByID(e.ID()); err == nil {
			slog.Debug(config.MsgSessionSkipped,
				config.LogKeyComponent, config.CompEngine,
				config.LogKeyID, e.ID(),
			)
			continue
		}
		s.Index.Insert(e)
		added++
	}
	return added
}

// Update replaces the event with the given id by a copy modified by mutate.
// The id never changes. If the new version is invalid or conflicts, the
// original is put back and the error returned.
func (s *Session) Update(id string, mutate func(*event.Builder)) (event.Event, error) {
	old, err := s.Index.FindByID(id)
	if err != nil {
		return event.Event{}, err
	}
	b := old.ToBuilder()
	mutate(b)
	updated, err := b.ID(id).Build()
	if err != nil {
		return event.Event{}, err
	}

	if _, err := s.Index.DeleteByID(id); err != nil {
		return event.Event{}, err
	}
	if err := s.Add(updated); err != nil {
		s.Index.Insert(old)
		return event.Event{}, err
	}
	return updated, nil
}

// Delete removes the event with the given id.
func (s *Session) Delete(id string) (event.Event, error) {
	e, err := s.Index.DeleteByID(id)
	if err != nil {
		return event.Event{}, err
	}
	slog.Debug(config.MsgEventDeleted,
		config.LogKeyComponent, config.CompEngine,
		config.LogKeyID, e.ID(),
	)
	return e, nil
}

// DeleteByTitle removes the first event whose title matches, ignoring case.
func (s *Session) DeleteByTitle(title string) (event.Event, bool) {
	e, ok := s.Index.SearchByTitle(title)
	if !ok {
		return event.Event{}, false
	}
	if _, err := s.Delete(e.ID()); err != nil {
		return event.Event{}, false
	}
	return e, true
}

func logConflict(err error) {
	var conflict *index.ConflictError
	if !errors.As(err, &conflict) {
		return
	}
	slog.Warn(config.MsgConflict,
		config.LogKeyComponent, config.CompEngine,
		config.LogKeyID, conflict.Candidate.ID(),
		config.LogKeyTitle, conflict.Candidate.Title(),
		config.LogKeyExisting, conflict.Existing.ID(),
	)
}
