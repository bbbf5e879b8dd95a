// Package engine orchestrates the calendar: the load/save session around
// the event index, iCalendar export, vCard birthday import and recurrence
// expansion.
package engine

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/emersion/go-ical"
	"github.com/emersion/go-vcard"
	"github.com/tartampluch/go-calendar/internal/config"
	"github.com/tartampluch/go-calendar/internal/event"
)

// Generator converts between events and the iCalendar/vCard formats.
type Generator struct {
	Clock   Clock        // Interface for time mocking.
	Fetcher VCardFetcher // Used when an import source is an http(s) URL.

	// Location is the zone event wall-clock times are read in. Nil means time.Local.
	Location *time.Location

	// FormatSummary lets the caller inject a localized birthday title.
	FormatSummary func(name string, age int, yearKnown bool) string
}

func (g *Generator) location() *time.Location {
	if g.Location != nil {
		return g.Location
	}
	return time.Local
}

func (g *Generator) now() time.Time {
	if g.Clock == nil {
		return time.Now()
	}
	return g.Clock.Now()
}

// -----------------------------------------------------------------------------
// iCalendar export
// -----------------------------------------------------------------------------

// ExportICS renders events as a VCALENDAR. An empty slice yields the minimal
// stub calendar so feed clients never see an invalid document.
func (g *Generator) ExportICS(ctx context.Context, events []event.Event) ([]byte, error) {
	start := time.Now()
	if len(events) == 0 {
		g.logGenerated(0, start)
		return []byte(config.StubVCalendar), nil
	}

	cal := ical.NewCalendar()
	cal.Props.SetText(config.PropVersion, config.ICalVersion)
	cal.Props.SetText(config.PropProdid, config.ICalProdid)
	cal.Props.SetText(config.PropXWRCalName, config.ICalCalName)
	cal.Props.SetText(config.PropCalScale, config.ICalScale)
	cal.Props.SetText(config.PropMethod, config.ICalMethod)

	// RFC 7986
	refreshProp := ical.NewProp(config.PropRefresh)
	refreshProp.SetDuration(config.DefaultICalRefresh)
	cal.Props.Set(refreshProp)

	dtStampProp := ical.NewProp(config.PropDTStamp)
	dtStampProp.SetDateTime(g.now().UTC())

	loc := g.location()
	for _, e := range events {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		vevent := newVEvent(e, loc)
		vevent.Props.Set(dtStampProp)
		cal.Children = append(cal.Children, vevent.Component)
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}

	g.logGenerated(len(events), start)
	return buf.Bytes(), nil
}

// newVEvent maps one event to a VEVENT. Times are written in UTC.
func newVEvent(e event.Event, loc *time.Location) *ical.Event {
	vevent := ical.NewEvent()
	vevent.Props.SetText(config.PropUID, fmt.Sprintf(config.FormatUID, e.ID(), config.ICalDomain))
	vevent.Props.SetText(config.PropSummary, e.Title())
	if e.Description() != "" {
		vevent.Props.SetText(config.PropDescription, e.Description())
	}

	dtStart := ical.NewProp(config.PropDTStart)
	dtStart.SetDateTime(e.StartDateTime(loc).UTC())
	vevent.Props.Set(dtStart)

	dtEnd := ical.NewProp(config.PropDTEnd)
	dtEnd.SetDateTime(e.EndDateTime(loc).UTC())
	vevent.Props.Set(dtEnd)

	created := ical.NewProp(config.PropCreated)
	created.SetDateTime(e.CreatedAt().UTC())
	vevent.Props.Set(created)

	vevent.Props.SetText(config.PropCategories, e.Category().Name())

	// Set the value directly so no VALUE=TEXT parameter is added.
	priority := ical.NewProp(config.PropPriority)
	priority.Value = strconv.Itoa(icalPriority(e.Priority()))
	vevent.Props.Set(priority)

	return vevent
}

func icalPriority(p event.Priority) int {
	switch p {
	case event.PriorityUrgent:
		return config.ICalPriorityUrgent
	case event.PriorityHigh:
		return config.ICalPriorityHigh
	case event.PriorityLow:
		return config.ICalPriorityLow
	default:
		return config.ICalPriorityMedium
	}
}

func (g *Generator) logGenerated(count int, start time.Time) {
	slog.Info(config.MsgGenSuccess,
		config.LogKeyComponent, config.CompEngine,
		config.LogKeyEvents, count,
		config.LogKeyDuration, time.Since(start).Milliseconds(),
	)
}

// -----------------------------------------------------------------------------
// vCard birthday import
// -----------------------------------------------------------------------------

// ImportBirthdays reads the vCard stream at source (a local path or an
// http(s) URL) and returns one Birthday per card carrying a parsable BDAY,
// in file order. Malformed cards and dates are logged and skipped.
func (g *Generator) ImportBirthdays(ctx context.Context, source string) ([]Birthday, error) {
	reader, err := g.openSource(ctx, source)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%s: %w", config.ErrVCardParse, err)
	}
	defer func() { _ = reader.Close() }()

	return g.parseBirthdays(ctx, reader)
}

// BirthdayEvents converts birthdays into events using FormatSummary for
// titles.
func (g *Generator) BirthdayEvents(birthdays []Birthday) ([]event.Event, error) {
	createdAt := g.now().UTC()
	events := make([]event.Event, 0, len(birthdays))
	for _, b := range birthdays {
		summary := fmt.Sprintf(config.FallbackSummary, b.Name)
		if g.FormatSummary != nil {
			summary = g.FormatSummary(b.Name, b.AgeNext, b.YearKnown)
		}
		e, err := b.Event(summary, createdAt)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, nil
}

func (g *Generator) openSource(ctx context.Context, source string) (io.ReadCloser, error) {
	if source == "" {
		return nil, errors.New(config.ErrSourceEmpty)
	}
	if u, err := url.Parse(source); err == nil && (u.Scheme == config.SchemeHTTP || u.Scheme == config.SchemeHTTPS) {
		if g.Fetcher == nil {
			return nil, errors.New(config.ErrFetcherMissing)
		}
		return g.Fetcher.Fetch(ctx, source)
	}
	return os.Open(source)
}

func (g *Generator) parseBirthdays(ctx context.Context, r io.Reader) ([]Birthday, error) {
	now := g.now()
	decoder := vcard.NewDecoder(r)
	processed := 0
	var birthdays []Birthday

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		card, err := decoder.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// The decoder cannot resync after a syntax error.
			slog.Warn(config.MsgSkippedCard,
				config.LogKeyComponent, config.CompEngine,
				config.LogKeyError, err)
			break
		}

		processed++
		bday := card.Get(config.VCardBDAY)
		if bday == nil || bday.Value == "" {
			continue
		}

		birthDate, yearKnown, err := parseDate(bday.Value)
		if err != nil {
			slog.Debug(config.MsgSkippedDate,
				config.LogKeyComponent, config.CompEngine,
				config.LogKeyValue, bday.Value)
			continue
		}

		// FN (Formatted) > N (Structured) > Fallback
		name := config.FallbackName
		if fn := card.Get(config.VCardFN); fn != nil && fn.Value != "" {
			name = fn.Value
		} else if n := card.Get(config.VCardN); n != nil && n.Value != "" {
			name = n.Value
		}

		next, age := calculateNextOccurrence(now, birthDate, yearKnown)
		birthdays = append(birthdays, Birthday{
			Name:           name,
			DateOfBirth:    birthDate,
			YearKnown:      yearKnown,
			NextOccurrence: next,
			AgeNext:        age,
		})
	}

	slog.Info(config.MsgImportSuccess,
		config.LogKeyComponent, config.CompEngine,
		slog.Group(config.LogKeyStats,
			slog.Int(config.LogKeyTotal, processed),
			slog.Int(config.LogKeyFound, len(birthdays)),
		),
	)
	return birthdays, nil
}

// calculateNextOccurrence returns the birthday's date this year, or next
// year when it has already passed. A birthday today counts as next.
func calculateNextOccurrence(now time.Time, birthDate time.Time, yearKnown bool) (event.Date, int) {
	currentYear := now.Year()
	loc := now.Location()

	// time.Date normalizes Feb 29 to Mar 1 in non-leap years.
	candidate := time.Date(currentYear, birthDate.Month(), birthDate.Day(), 0, 0, 0, 0, loc)
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	if candidate.Before(todayStart) {
		candidate = time.Date(currentYear+1, birthDate.Month(), birthDate.Day(), 0, 0, 0, 0, loc)
	}

	ageNext := 0
	if yearKnown {
		ageNext = candidate.Year() - birthDate.Year()
	}
	return event.DateOf(candidate), ageNext
}

// parseDate handles the vCard 3.0 and 4.0 BDAY forms.
func parseDate(value string) (time.Time, bool, error) {
	formatsWithYear := []string{
		config.DateFormatISO,
		config.DateFormatFullBasic,
		time.RFC3339,
		config.DateFormatFullT,
	}
	for _, f := range formatsWithYear {
		if t, err := time.Parse(f, value); err == nil {
			return t, true, nil
		}
	}

	formatsWithoutYear := []string{config.DateFormatNoYearD, config.DateFormatNoYearB}
	for _, f := range formatsWithoutYear {
		if t, err := time.Parse(f, value); err == nil {
			return time.Date(config.DefaultLeapYear, t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), false, nil
		}
	}

	return time.Time{}, false, errors.New(config.ErrDateParse)
}
