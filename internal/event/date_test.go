package event_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-calendar/internal/event"
)

func TestDate(t *testing.T) {
	d, err := event.ParseDate("2026-02-28")
	require.NoError(t, err)

	assert.Equal(t, event.NewDate(2026, time.March, 1), d.AddDays(1))
	assert.Equal(t, event.NewDate(2026, time.March, 2), event.NewDate(2026, time.February, 30), "dates normalize")
	assert.Equal(t, "2026-02-28", d.String())
	assert.Equal(t, "28/02/2026", d.Format("02/01/2006"))
	assert.True(t, d.Before(d.AddDays(1)))
	assert.True(t, d.After(d.AddDays(-1)))
	assert.Zero(t, d.Compare(event.NewDate(2026, time.February, 28)))
	assert.True(t, event.Date{}.IsZero())

	_, err = event.ParseDate("28/02/2026")
	assert.Error(t, err)
	_, err = event.ParseDate("2026-02-30")
	assert.Error(t, err)
}

func TestTimeOfDay(t *testing.T) {
	tests := []struct {
		in   string
		want event.TimeOfDay
		out  string
	}{
		{"09:30", event.NewTimeOfDay(9, 30, 0), "09:30"},
		{"00:00", event.NewTimeOfDay(0, 0, 0), "00:00"},
		{"23:59:59", event.NewTimeOfDay(23, 59, 59), "23:59:59"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := event.ParseTimeOfDay(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.out, got.String())
		})
	}

	for _, bad := range []string{"24:00", "9h30", ""} {
		_, err := event.ParseTimeOfDay(bad)
		assert.Error(t, err, bad)
	}
}

func TestTimeOfDay_Wraps(t *testing.T) {
	assert.Equal(t, event.NewTimeOfDay(0, 30, 0), event.NewTimeOfDay(23, 0, 0).Add(90*time.Minute))
	assert.Equal(t, event.NewTimeOfDay(23, 0, 0), event.NewTimeOfDay(0, 30, 0).Add(-90*time.Minute))
	assert.Equal(t, event.NewTimeOfDay(1, 0, 0), event.NewTimeOfDay(25, 0, 0))

	tod := event.NewTimeOfDay(14, 5, 9)
	assert.Equal(t, 14, tod.Hour())
	assert.Equal(t, 5, tod.Minute())
	assert.Equal(t, 9, tod.Second())
	assert.Equal(t, event.NewTimeOfDay(14, 5, 9), event.ClockOf(time.Date(2026, 1, 1, 14, 5, 9, 999, time.UTC)))
}

func TestDateText(t *testing.T) {
	var d event.Date
	require.NoError(t, d.UnmarshalText([]byte("2026-07-14")))
	assert.Equal(t, event.NewDate(2026, time.July, 14), d)

	var tod event.TimeOfDay
	require.NoError(t, tod.UnmarshalText([]byte("07:45")))
	text, err := tod.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "07:45", string(text))
}
