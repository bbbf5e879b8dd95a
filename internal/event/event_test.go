package event_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-calendar/internal/config"
	"github.com/tartampluch/go-calendar/internal/event"
)

var day = event.NewDate(2026, time.January, 26)

func build(t *testing.T, b *event.Builder) event.Event {
	t.Helper()
	e, err := b.Build()
	require.NoError(t, err)
	return e
}

func at(t *testing.T, d event.Date, hour, minute, minutes int, p event.Priority) event.Event {
	t.Helper()
	return build(t, event.NewBuilder().
		Title("event").
		Date(d).
		Time(event.NewTimeOfDay(hour, minute, 0)).
		DurationMinutes(minutes).
		Priority(p))
}

func TestBuilder_Defaults(t *testing.T) {
	before := time.Now().UTC()
	e := build(t, event.NewBuilder().Title("Standup").Date(day).Time(event.NewTimeOfDay(9, 0, 0)))

	assert.NotEmpty(t, e.ID())
	assert.Equal(t, time.Duration(config.DefaultDurationMinutes)*time.Minute, e.Duration())
	assert.Equal(t, event.CategoryOther, e.Category())
	assert.Equal(t, event.PriorityMedium, e.Priority())
	assert.Empty(t, e.Description())
	assert.False(t, e.CreatedAt().Before(before))

	other := build(t, event.NewBuilder().Title("Standup").Date(day).Time(event.NewTimeOfDay(9, 0, 0)))
	assert.NotEqual(t, e.ID(), other.ID(), "every builder gets a fresh id")
}

func TestBuilder_Validation(t *testing.T) {
	valid := func() *event.Builder {
		return event.NewBuilder().Title("x").Date(day).Time(event.NewTimeOfDay(9, 0, 0))
	}

	tests := []struct {
		name    string
		builder *event.Builder
		wantMsg string
	}{
		{"no date", event.NewBuilder().Title("x").Time(event.NewTimeOfDay(9, 0, 0)), config.ErrDateMissing},
		{"no time", event.NewBuilder().Title("x").Date(day), config.ErrTimeMissing},
		{"empty title", valid().Title(""), config.ErrTitleBlank},
		{"blank title", valid().Title(" \t "), config.ErrTitleBlank},
		{"zero duration", valid().DurationMinutes(0), config.ErrDurationPositive},
		{"negative duration", valid().Duration(-time.Minute), config.ErrDurationPositive},
		{"sub-minute duration", valid().Duration(30 * time.Second), config.ErrDurationWholeMinutes},
		{"fractional minutes", valid().Duration(90 * time.Second), config.ErrDurationWholeMinutes},
		{"fractional second", valid().Time(event.TimeOfDay(9*time.Hour + 500*time.Millisecond)), config.ErrTimeWholeSeconds},
		{"time past midnight", valid().Time(event.TimeOfDay(25 * time.Hour)), config.ErrTimeRange},
		{"negative time", valid().Time(event.TimeOfDay(-time.Second)), config.ErrTimeRange},
		{"unset category", valid().Category(0), config.ErrCategoryInvalid},
		{"unset priority", valid().Priority(0), config.ErrPriorityInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.builder.Build()
			require.Error(t, err)
			assert.ErrorIs(t, err, event.ErrInvalidEvent)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestBuilder_EmptyIDIsRegenerated(t *testing.T) {
	e := build(t, event.NewBuilder().ID("").Title("x").Date(day).Time(event.NewTimeOfDay(9, 0, 0)))
	assert.NotEmpty(t, e.ID())
}

func TestToBuilder_KeepsIdentity(t *testing.T) {
	original := build(t, event.NewBuilder().
		Title("Review").
		Description("Q1").
		Date(day).
		Time(event.NewTimeOfDay(14, 30, 0)).
		DurationMinutes(45).
		Category(event.CategoryWork).
		Priority(event.PriorityHigh))

	edited := build(t, original.ToBuilder().Title("Quarterly review"))

	assert.Equal(t, original.ID(), edited.ID())
	assert.True(t, original.Equal(edited), "equality is by id")
	assert.Equal(t, "Quarterly review", edited.Title())
	assert.Equal(t, original.Description(), edited.Description())
	assert.Equal(t, original.Time(), edited.Time())
	assert.Equal(t, original.Duration(), edited.Duration())
	assert.Equal(t, original.Category(), edited.Category())
	assert.Equal(t, original.Priority(), edited.Priority())
	assert.True(t, original.CreatedAt().Equal(edited.CreatedAt()))
	assert.Equal(t, "Review", original.Title(), "the original is not modified")
}

func TestCompare(t *testing.T) {
	base := at(t, day, 10, 0, 60, event.PriorityMedium)

	assert.Negative(t, base.Compare(at(t, day.AddDays(1), 8, 0, 60, event.PriorityUrgent)), "date first")
	assert.Positive(t, base.Compare(at(t, day, 9, 0, 60, event.PriorityLow)), "then time")
	assert.Positive(t, base.Compare(at(t, day, 10, 0, 60, event.PriorityHigh)), "higher priority sorts first")
	assert.Negative(t, base.Compare(at(t, day, 10, 0, 60, event.PriorityLow)))
	assert.Zero(t, base.Compare(at(t, day, 10, 0, 15, event.PriorityMedium)), "duration and title are not part of the key")
}

func TestOverlapsWith(t *testing.T) {
	tests := []struct {
		name string
		a, b event.Event
		want bool
	}{
		{"partial", at(t, day, 10, 0, 60, event.PriorityMedium), at(t, day, 10, 30, 60, event.PriorityMedium), true},
		{"contained", at(t, day, 10, 0, 120, event.PriorityMedium), at(t, day, 10, 30, 15, event.PriorityMedium), true},
		{"same start", at(t, day, 10, 0, 1, event.PriorityMedium), at(t, day, 10, 0, 1, event.PriorityMedium), true},
		{"adjacent", at(t, day, 10, 0, 60, event.PriorityMedium), at(t, day, 11, 0, 60, event.PriorityMedium), false},
		{"disjoint", at(t, day, 8, 0, 30, event.PriorityMedium), at(t, day, 11, 0, 60, event.PriorityMedium), false},
		{"other date", at(t, day, 10, 0, 60, event.PriorityMedium), at(t, day.AddDays(1), 10, 0, 60, event.PriorityMedium), false},
		{"past midnight", at(t, day, 23, 0, 120, event.PriorityMedium), at(t, day, 0, 30, 60, event.PriorityMedium), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.OverlapsWith(tt.b))
			assert.Equal(t, tt.want, tt.b.OverlapsWith(tt.a), "overlap is symmetric")
		})
	}
}

func TestEndTimeWraps(t *testing.T) {
	e := at(t, day, 23, 30, 90, event.PriorityMedium)

	assert.Equal(t, event.NewTimeOfDay(1, 0, 0), e.EndTime())
	assert.Equal(t, time.Date(2026, time.January, 27, 1, 0, 0, 0, time.UTC), e.EndDateTime(time.UTC))
}

func TestTemporalPredicates(t *testing.T) {
	now := time.Date(2026, time.January, 26, 12, 0, 0, 0, time.UTC)

	morning := at(t, day, 9, 0, 60, event.PriorityMedium)
	evening := at(t, day, 18, 0, 60, event.PriorityMedium)
	tomorrow := at(t, day.AddDays(1), 9, 0, 60, event.PriorityMedium)

	assert.True(t, morning.IsToday(now))
	assert.True(t, morning.IsPast(now))
	assert.False(t, morning.IsUpcoming(now))

	assert.True(t, evening.IsUpcoming(now))
	assert.False(t, evening.IsPast(now))

	assert.False(t, tomorrow.IsToday(now))
	assert.True(t, tomorrow.IsUpcoming(now))
}

func TestStrings(t *testing.T) {
	e := build(t, event.NewBuilder().
		Title("A very long meeting title that goes on").
		Date(day).
		Time(event.NewTimeOfDay(9, 5, 0)).
		DurationMinutes(90).
		Category(event.CategoryWork).
		Priority(event.PriorityUrgent))

	assert.Equal(t, "26/01/2026 09:05 A very long meeti...", e.CompactString())
	assert.Equal(t, "🔴 26/01/2026 09:05 - A very long meeting title that goes on", e.SimpleString())

	card := e.String()
	assert.True(t, strings.HasPrefix(card, "┌"))
	assert.Contains(t, card, "09:05 - 10:35 (1h 30m)")
	assert.Contains(t, card, "Urgent")
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "45m", event.FormatDuration(45*time.Minute))
	assert.Equal(t, "1h", event.FormatDuration(time.Hour))
	assert.Equal(t, "1h 30m", event.FormatDuration(90*time.Minute))
}

func TestParseKinds(t *testing.T) {
	c, err := event.ParseCategory("health")
	require.NoError(t, err)
	assert.Equal(t, event.CategoryHealth, c)

	c, err = event.ParseCategory("Travel")
	require.NoError(t, err)
	assert.Equal(t, event.CategoryTravel, c)

	_, err = event.ParseCategory("hobby")
	assert.ErrorContains(t, err, config.ErrUnknownCategory)
	assert.Equal(t, event.CategoryOther, event.CategoryFromDisplayName("hobby"))

	p, err := event.ParsePriority("URGENT")
	require.NoError(t, err)
	assert.Equal(t, event.PriorityUrgent, p)

	_, err = event.ParsePriority("critical")
	assert.ErrorContains(t, err, config.ErrUnknownPriority)
	assert.Equal(t, event.PriorityMedium, event.PriorityFromDisplayName("critical"))

	assert.Equal(t, 4, event.PriorityUrgent.Level())
	assert.Equal(t, 1, event.PriorityLow.Level())
}

func TestKindsText(t *testing.T) {
	var c event.Category
	require.NoError(t, c.UnmarshalText([]byte("FINANCE")))
	assert.Equal(t, event.CategoryFinance, c)
	text, err := c.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "FINANCE", string(text))

	var p event.Priority
	assert.Error(t, p.UnmarshalText([]byte("")))
}
