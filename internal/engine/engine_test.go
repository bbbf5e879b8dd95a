package engine_test

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/emersion/go-ical"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-calendar/internal/config"
	"github.com/tartampluch/go-calendar/internal/engine"
	"github.com/tartampluch/go-calendar/internal/event"
)

// -----------------------------------------------------------------------------
// Mocks
// -----------------------------------------------------------------------------

// MockFetcher simulates the network layer using `testify/mock`.
type MockFetcher struct {
	mock.Mock
}

func (m *MockFetcher) Fetch(ctx context.Context, url string) (io.ReadCloser, error) {
	args := m.Called(ctx, url)
	if r := args.Get(0); r != nil {
		return r.(io.ReadCloser), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockClock controls time for deterministic testing.
type MockClock struct {
	CurrentTime time.Time
}

func (m MockClock) Now() time.Time {
	return m.CurrentTime
}

var fixedNow = time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)

func mustEvent(t *testing.T, b *event.Builder) event.Event {
	t.Helper()
	e, err := b.Build()
	require.NoError(t, err)
	return e
}

func newEvent(t *testing.T, title string, d event.Date, hour, minute, minutes int) event.Event {
	t.Helper()
	return mustEvent(t, event.NewBuilder().
		Title(title).
		Date(d).
		Time(event.NewTimeOfDay(hour, minute, 0)).
		DurationMinutes(minutes))
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "contacts.vcf")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

// -----------------------------------------------------------------------------
// iCalendar export
// -----------------------------------------------------------------------------

func TestExportICS_Empty(t *testing.T) {
	gen := &engine.Generator{Clock: MockClock{CurrentTime: fixedNow}}

	data, err := gen.ExportICS(context.Background(), nil)

	require.NoError(t, err)
	assert.Equal(t, config.StubVCalendar, string(data))
}

func TestExportICS_Events(t *testing.T) {
	gen := &engine.Generator{
		Clock:    MockClock{CurrentTime: fixedNow},
		Location: time.UTC,
	}
	standup := mustEvent(t, event.NewBuilder().
		ID("standup").
		Title("Standup, daily").
		Description("Room 4").
		Date(event.NewDate(2026, time.March, 10)).
		Time(event.NewTimeOfDay(9, 30, 0)).
		DurationMinutes(15).
		Category(event.CategoryWork).
		Priority(event.PriorityUrgent))
	dentist := mustEvent(t, event.NewBuilder().
		ID("dentist").
		Title("Dentist").
		Date(event.NewDate(2026, time.March, 12)).
		Time(event.NewTimeOfDay(14, 0, 0)).
		Category(event.CategoryHealth).
		Priority(event.PriorityLow))

	data, err := gen.ExportICS(context.Background(), []event.Event{standup, dentist})
	require.NoError(t, err)

	cal, err := ical.NewDecoder(bytes.NewReader(data)).Decode()
	require.NoError(t, err)
	assert.Equal(t, config.ICalCalName, cal.Props.Get(config.PropXWRCalName).Value)

	events := cal.Events()
	require.Len(t, events, 2)

	first := events[0]
	assert.Equal(t, "standup@"+config.ICalDomain, first.Props.Get(config.PropUID).Value)
	summary, err := first.Props.Text(config.PropSummary)
	require.NoError(t, err)
	assert.Equal(t, "Standup, daily", summary)
	assert.Equal(t, "20260310T093000Z", first.Props.Get(config.PropDTStart).Value)
	assert.Equal(t, "20260310T094500Z", first.Props.Get(config.PropDTEnd).Value)
	assert.Equal(t, "WORK", first.Props.Get(config.PropCategories).Value)
	assert.Equal(t, "1", first.Props.Get(config.PropPriority).Value)
	assert.Equal(t, "20260310T080000Z", first.Props.Get(config.PropDTStamp).Value)

	second := events[1]
	assert.Nil(t, second.Props.Get(config.PropDescription), "empty descriptions are omitted")
	assert.Equal(t, "9", second.Props.Get(config.PropPriority).Value)
}

func TestExportICS_Cancelled(t *testing.T) {
	gen := &engine.Generator{Clock: MockClock{CurrentTime: fixedNow}}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := gen.ExportICS(ctx, []event.Event{newEvent(t, "x", event.NewDate(2026, 1, 1), 9, 0, 30)})

	assert.ErrorIs(t, err, context.Canceled)
}

// -----------------------------------------------------------------------------
// vCard birthday import
// -----------------------------------------------------------------------------

const contacts = `BEGIN:VCARD
VERSION:4.0
FN:John Doe
BDAY:1990-03-10
END:VCARD
BEGIN:VCARD
VERSION:4.0
FN:Jane Roe
BDAY:--01-15
END:VCARD
BEGIN:VCARD
VERSION:4.0
FN:No Birthday
END:VCARD
BEGIN:VCARD
VERSION:4.0
FN:Bad Date
BDAY:not-a-date
END:VCARD
`

func TestImportBirthdays_Local(t *testing.T) {
	gen := &engine.Generator{Clock: MockClock{CurrentTime: fixedNow}}

	birthdays, err := gen.ImportBirthdays(context.Background(), writeFile(t, contacts))

	require.NoError(t, err)
	require.Len(t, birthdays, 2)

	john := birthdays[0]
	assert.Equal(t, "John Doe", john.Name)
	assert.True(t, john.YearKnown)
	assert.Equal(t, event.NewDate(2026, time.March, 10), john.NextOccurrence, "a birthday today is the next one")
	assert.Equal(t, 36, john.AgeNext)

	jane := birthdays[1]
	assert.Equal(t, "Jane Roe", jane.Name)
	assert.False(t, jane.YearKnown)
	assert.Equal(t, event.NewDate(2027, time.January, 15), jane.NextOccurrence)
	assert.Zero(t, jane.AgeNext)
}

func TestImportBirthdays_Remote(t *testing.T) {
	fetcher := new(MockFetcher)
	url := "https://example.com/contacts.vcf"
	fetcher.On("Fetch", mock.Anything, url).Return(io.NopCloser(strings.NewReader(contacts)), nil)

	gen := &engine.Generator{Clock: MockClock{CurrentTime: fixedNow}, Fetcher: fetcher}
	birthdays, err := gen.ImportBirthdays(context.Background(), url)

	require.NoError(t, err)
	assert.Len(t, birthdays, 2)
	fetcher.AssertExpectations(t)
}

func TestImportBirthdays_SourceErrors(t *testing.T) {
	gen := &engine.Generator{Clock: MockClock{CurrentTime: fixedNow}}

	_, err := gen.ImportBirthdays(context.Background(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), config.ErrSourceEmpty)

	_, err = gen.ImportBirthdays(context.Background(), "https://example.com/x.vcf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), config.ErrFetcherMissing)

	_, err = gen.ImportBirthdays(context.Background(), filepath.Join(t.TempDir(), "missing.vcf"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestBirthdayEvents(t *testing.T) {
	gen := &engine.Generator{
		Clock: MockClock{CurrentTime: fixedNow},
		FormatSummary: func(name string, age int, yearKnown bool) string {
			if yearKnown {
				return name + " turns " + strings.Repeat("I", age%5)
			}
			return name
		},
	}
	birthdays, err := gen.ImportBirthdays(context.Background(), writeFile(t, contacts))
	require.NoError(t, err)

	events, err := gen.BirthdayEvents(birthdays)
	require.NoError(t, err)
	require.Len(t, events, 2)

	john := events[0]
	assert.Equal(t, "John Doe turns I", john.Title())
	assert.Equal(t, event.CategoryPersonal, john.Category())
	assert.Equal(t, event.NewDate(2026, time.March, 10), john.Date())
	assert.Equal(t, int64(config.BirthdayDurationMinutes), john.DurationMinutes())
	assert.Equal(t, "Born 1990-03-10", john.Description())

	assert.Equal(t, "Jane Roe", events[1].Title())
	assert.Empty(t, events[1].Description())

	again, err := gen.BirthdayEvents(birthdays)
	require.NoError(t, err)
	assert.Equal(t, john.ID(), again[0].ID(), "ids are stable across imports")
}

// -----------------------------------------------------------------------------
// Recurrence
// -----------------------------------------------------------------------------

func TestExpandRecurrence_Weekly(t *testing.T) {
	base := newEvent(t, "Gym", event.NewDate(2026, time.March, 2), 18, 0, 60)

	events, err := engine.ExpandRecurrence(base, "RRULE:FREQ=WEEKLY;COUNT=4", 0)

	require.NoError(t, err)
	require.Len(t, events, 4)
	assert.Equal(t, base.ID(), events[0].ID())
	for i, e := range events {
		assert.Equal(t, event.NewDate(2026, time.March, 2).AddDays(7*i), e.Date())
		assert.Equal(t, event.NewTimeOfDay(18, 0, 0), e.Time())
		assert.Equal(t, "Gym", e.Title())
	}
	assert.NotEqual(t, events[1].ID(), events[2].ID())
}

func TestExpandRecurrence_Limit(t *testing.T) {
	base := newEvent(t, "Pills", event.NewDate(2026, time.January, 1), 8, 0, 5)

	events, err := engine.ExpandRecurrence(base, "FREQ=DAILY", 10)
	require.NoError(t, err)
	assert.Len(t, events, 10)

	events, err = engine.ExpandRecurrence(base, "FREQ=DAILY;COUNT=50", 10)
	require.NoError(t, err)
	assert.Len(t, events, 10)
}

func TestExpandRecurrence_FarUntilStopsAtLimit(t *testing.T) {
	base := newEvent(t, "Tick", event.NewDate(2026, time.January, 1), 8, 0, 1)

	start := time.Now()
	events, err := engine.ExpandRecurrence(base, "FREQ=SECONDLY;UNTIL=20300101T000000Z", 20)
	require.NoError(t, err)
	assert.Len(t, events, 20)
	assert.Equal(t, event.NewTimeOfDay(8, 0, 19), events[19].Time())

	events, err = engine.ExpandRecurrence(base, "FREQ=MINUTELY;COUNT=100000000", 20)
	require.NoError(t, err)
	assert.Len(t, events, 20)

	assert.Less(t, time.Since(start), 5*time.Second, "expansion must not walk the whole rule")
}

func TestExpandRecurrence_InvalidRule(t *testing.T) {
	base := newEvent(t, "x", event.NewDate(2026, time.January, 1), 8, 0, 5)

	_, err := engine.ExpandRecurrence(base, "FREQ=SOMETIMES", 10)

	require.Error(t, err)
	assert.Contains(t, err.Error(), config.ErrRRuleParse)
}
