package index

import (
	"errors"
	"fmt"

	"github.com/tartampluch/go-calendar/internal/event"
)

var (
	// ErrNotFound is returned when no event matches an id lookup or deletion.
	ErrNotFound = errors.New("event not found")

	// ErrConflict is matched by *ConflictError.
	ErrConflict = errors.New("event conflict")

	// ErrDuplicateID is returned when an event id is already taken.
	ErrDuplicateID = errors.New("duplicate event id")

	// ErrInvalidRange is returned by range queries whose start is after their end.
	ErrInvalidRange = errors.New("invalid date range")
)

// ConflictError is returned by a conflict-checked insert that overlaps an
// event already in the index. Nothing is inserted.
type ConflictError struct {
	Candidate event.Event
	Existing  event.Event
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("event %q conflicts with existing event %q on %s",
		e.Candidate.Title(), e.Existing.Title(), e.Candidate.Date())
}

func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

func notFound(id string) error {
	return fmt.Errorf("%w: id=%s", ErrNotFound, id)
}

func invalidRange(start, end event.Date) error {
	return fmt.Errorf("%w: start date (%s) must be before or equal to end date (%s)", ErrInvalidRange, start, end)
}
