package event

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tartampluch/go-calendar/internal/config"
)

// Builder collects event fields. Build is the only way to obtain an Event
// and validates every field before returning it.
type Builder struct {
	id          string
	date        Date
	time        TimeOfDay
	hasTime     bool
	duration    time.Duration
	title       string
	description string
	category    Category
	priority    Priority
	createdAt   time.Time
}

// NewBuilder returns a builder with a fresh id, a one hour duration,
// category Other, priority Medium and createdAt set to now.
func NewBuilder() *Builder {
	return &Builder{
		id:        uuid.NewString(),
		duration:  config.DefaultDurationMinutes * time.Minute,
		category:  CategoryOther,
		priority:  PriorityMedium,
		createdAt: time.Now().UTC(),
	}
}

// ToBuilder seeds a builder with every field of e, id included.
func (e Event) ToBuilder() *Builder {
	return &Builder{
		id:          e.id,
		date:        e.date,
		time:        e.time,
		hasTime:     true,
		duration:    e.duration,
		title:       e.title,
		description: e.description,
		category:    e.category,
		priority:    e.priority,
		createdAt:   e.createdAt,
	}
}

func (b *Builder) ID(id string) *Builder {
	b.id = id
	return b
}

func (b *Builder) Date(d Date) *Builder {
	b.date = d
	return b
}

func (b *Builder) Time(t TimeOfDay) *Builder {
	b.time = t
	b.hasTime = true
	return b
}

func (b *Builder) Duration(d time.Duration) *Builder {
	b.duration = d
	return b
}

func (b *Builder) DurationMinutes(minutes int) *Builder {
	b.duration = time.Duration(minutes) * time.Minute
	return b
}

func (b *Builder) Title(title string) *Builder {
	b.title = title
	return b
}

func (b *Builder) Description(description string) *Builder {
	b.description = description
	return b
}

func (b *Builder) Category(c Category) *Builder {
	b.category = c
	return b
}

func (b *Builder) Priority(p Priority) *Builder {
	b.priority = p
	return b
}

func (b *Builder) CreatedAt(t time.Time) *Builder {
	b.createdAt = t
	return b
}

// Build validates the collected fields and returns the event.
// Every failure wraps ErrInvalidEvent.
func (b *Builder) Build() (Event, error) {
	if err := b.validate(); err != nil {
		return Event{}, err
	}
	return Event{
		id:          b.id,
		date:        b.date,
		time:        b.time,
		duration:    b.duration,
		title:       b.title,
		description: b.description,
		category:    b.category,
		priority:    b.priority,
		createdAt:   b.createdAt,
	}, nil
}

func (b *Builder) validate() error {
	switch {
	case b.date.IsZero():
		return invalid(config.ErrDateMissing)
	case !b.hasTime:
		return invalid(config.ErrTimeMissing)
	case strings.TrimSpace(b.title) == "":
		return invalid(config.ErrTitleBlank)
	case b.time.Offset() < 0 || b.time.Offset() >= day:
		return invalid(config.ErrTimeRange)
	case b.time.Offset()%time.Second != 0:
		return invalid(config.ErrTimeWholeSeconds)
	case b.duration <= 0:
		return invalid(config.ErrDurationPositive)
	case b.duration%time.Minute != 0:
		return invalid(config.ErrDurationWholeMinutes)
	case !b.category.Valid():
		return invalid(config.ErrCategoryInvalid)
	case !b.priority.Valid():
		return invalid(config.ErrPriorityInvalid)
	}
	if b.id == "" {
		b.id = uuid.NewString()
	}
	return nil
}

func invalid(msg string) error {
	return fmt.Errorf("%w: %s", ErrInvalidEvent, msg)
}
