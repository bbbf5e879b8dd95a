package engine

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tartampluch/go-calendar/internal/config"
	"github.com/tartampluch/go-calendar/internal/event"
	"github.com/teambition/rrule-go"
)

// ExpandRecurrence returns one event per occurrence of rule, starting at
// base's date and time. The first occurrence keeps base's id; the others
// get fresh ids. A rule with neither COUNT nor UNTIL is cut at limit
// occurrences, and no expansion ever returns more than limit events.
//
// rule is an RFC 5545 RRULE value such as "FREQ=WEEKLY;COUNT=4", with or
// without the "RRULE:" prefix.
func ExpandRecurrence(base event.Event, rule string, limit int) ([]event.Event, error) {
	if limit <= 0 {
		limit = config.DefaultRecurrenceLimit
	}

	opt, err := rrule.StrToROption(strings.TrimPrefix(strings.TrimSpace(rule), config.RRulePrefix))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrRRuleParse, err)
	}
	// Wall-clock values are carried through UTC so DST never shifts them.
	opt.Dtstart = base.StartDateTime(time.UTC)
	if opt.Count == 0 && opt.Until.IsZero() {
		opt.Count = limit
	}

	r, err := rrule.NewRRule(*opt)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrRRuleParse, err)
	}

	// The iterator is lazy: a far UNTIL or a large COUNT never builds more
	// than limit occurrences.
	occurrences := make([]time.Time, 0, limit)
	next := r.Iterator()
	for len(occurrences) < limit {
		t, ok := next()
		if !ok {
			break
		}
		occurrences = append(occurrences, t)
	}

	events := make([]event.Event, 0, len(occurrences))
	for i, t := range occurrences {
		b := base.ToBuilder().
			Date(event.DateOf(t)).
			Time(event.ClockOf(t))
		if i > 0 {
			b.ID(uuid.NewString())
		}
		e, err := b.Build()
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}

	slog.Debug(config.MsgRecurrence,
		config.LogKeyComponent, config.CompEngine,
		config.LogKeyRule, rule,
		config.LogKeyCount, len(events),
	)
	return events, nil
}
