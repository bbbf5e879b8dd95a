// Package event defines the immutable calendar entry stored by the index.
package event

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/tartampluch/go-calendar/internal/config"
)

// ErrInvalidEvent is returned by Builder.Build when a field fails validation.
var ErrInvalidEvent = errors.New("invalid event")

// Event is a calendar entry. It is never mutated once built: edits go
// through ToBuilder and produce a new value with the same ID.
type Event struct {
	id          string
	date        Date
	time        TimeOfDay
	duration    time.Duration
	title       string
	description string
	category    Category
	priority    Priority
	createdAt   time.Time
}

func (e Event) ID() string { return e.id }
func (e Event) Date() Date { return e.date }
func (e Event) Time() TimeOfDay { return e.time }
func (e Event) Duration() time.Duration { return e.duration }
func (e Event) Title() string { return e.title }
func (e Event) Description() string { return e.description }
func (e Event) Category() Category { return e.category }
func (e Event) Priority() Priority { return e.priority }
func (e Event) CreatedAt() time.Time { return e.createdAt }

// DurationMinutes is the duration in whole minutes, as persisted.
func (e Event) DurationMinutes() int64 { return int64(e.duration / time.Minute) }

// EndTime is the wall-clock end, wrapped at midnight.
func (e Event) EndTime() TimeOfDay { return e.time.Add(e.duration) }

// IsZero reports whether e was not produced by a Builder.
func (e Event) IsZero() bool { return e.id == "" }

// Equal compares identity only.
func (e Event) Equal(other Event) bool { return e.id == other.id }

func (e Event) startOffset() time.Duration { return e.time.Offset() }
func (e Event) endOffset() time.Duration { return e.time.Offset() + e.duration }

// StartDateTime combines date and time in loc.
func (e Event) StartDateTime(loc *time.Location) time.Time {
	return e.date.In(loc).Add(e.time.Offset())
}

// EndDateTime is StartDateTime plus the duration; it may fall on a later day.
func (e Event) EndDateTime(loc *time.Location) time.Time {
	return e.StartDateTime(loc).Add(e.duration)
}

// Compare orders events by date ascending, then time ascending, then
// priority descending. Distinct events may compare equal.
func (e Event) Compare(other Event) int {
	if c := e.date.Compare(other.date); c != 0 {
		return c
	}
	if c := cmpInt(int(e.time), int(other.time)); c != 0 {
		return c
	}
	return cmpInt(other.priority.Level(), e.priority.Level())
}

// OverlapsWith reports whether both events fall on the same date and their
// half-open intervals [start, start+duration) intersect. Intervals are not
// wrapped at midnight.
func (e Event) OverlapsWith(other Event) bool {
	if e.date != other.date {
		return false
	}
	return e.startOffset() < other.endOffset() && other.startOffset() < e.endOffset()
}

func (e Event) IsToday(now time.Time) bool {
	return e.date == DateOf(now)
}

func (e Event) IsPast(now time.Time) bool {
	return e.EndDateTime(now.Location()).Before(now)
}

func (e Event) IsUpcoming(now time.Time) bool {
	return e.StartDateTime(now.Location()).After(now)
}

// String renders the event as a boxed card.
func (e Event) String() string {
	const rule = "─────────────────────────────────────────────────────"
	var sb strings.Builder
	sb.WriteString("┌" + rule + "┐\n")
	fmt.Fprintf(&sb, "│ %s %-47s │\n", e.category.Icon(), truncate(e.title, config.TitleTruncateCard))
	sb.WriteString("├" + rule + "┤\n")
	fmt.Fprintf(&sb, "│ 📅 %s  ⏰ %s - %s (%s)\n",
		e.date.Format(config.DateFormatDisplay),
		e.time,
		e.EndTime(),
		FormatDuration(e.duration))
	fmt.Fprintf(&sb, "│ %s  %s\n", e.priority.Icon(), e.priority.DisplayName())
	sb.WriteString("├" + rule + "┤\n")
	fmt.Fprintf(&sb, "│ 📝 %-47s │\n", truncate(e.description, config.TitleTruncateCard))
	sb.WriteString("└" + rule + "┘")
	return sb.String()
}

// SimpleString is a one-line summary with the priority icon.
func (e Event) SimpleString() string {
	return fmt.Sprintf("%s %s %s - %s",
		e.priority.Icon(),
		e.date.Format(config.DateFormatDisplay),
		e.time,
		e.title)
}

// CompactString is the short label used in tree renderings.
func (e Event) CompactString() string {
	return fmt.Sprintf("%s %s %s",
		e.date.Format(config.DateFormatDisplay),
		e.time,
		truncate(e.title, config.TitleTruncateCompact))
}

// FormatDuration renders 90m as "1h 30m", 60m as "1h" and 45m as "45m".
func FormatDuration(d time.Duration) string {
	hours := int64(d / time.Hour)
	minutes := int64(d % time.Hour / time.Minute)
	switch {
	case hours > 0 && minutes > 0:
		return fmt.Sprintf("%dh %dm", hours, minutes)
	case hours > 0:
		return fmt.Sprintf("%dh", hours)
	default:
		return fmt.Sprintf("%dm", minutes)
	}
}

func truncate(text string, limit int) string {
	if utf8.RuneCountInString(text) <= limit {
		return text
	}
	runes := []rune(text)
	return string(runes[:limit-len(config.Ellipsis)]) + config.Ellipsis
}
