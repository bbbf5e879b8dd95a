package engine

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tartampluch/go-calendar/internal/config"
	"github.com/tartampluch/go-calendar/internal/event"
)

// Birthday is one contact with a usable BDAY found in a vCard stream.
type Birthday struct {
	// Name is FN, then N, then config.FallbackName.
	Name string

	// DateOfBirth uses config.DefaultLeapYear when the card had no year.
	DateOfBirth time.Time
	YearKnown   bool

	// NextOccurrence is the next birthday on or after today.
	NextOccurrence event.Date

	// AgeNext is the age reached at NextOccurrence. Zero when YearKnown is false.
	AgeNext int
}

// ID is stable across imports of the same contact and year, so a second
// import of the same file does not duplicate events.
func (b Birthday) ID() string {
	key := fmt.Sprintf(config.FormatBirthdayKey, b.Name, b.DateOfBirth.Format(config.DateFormatNoYearD), b.NextOccurrence.Year)
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(key)).String()
}

// Event converts the birthday into an all-day Personal event on its next
// occurrence.
func (b Birthday) Event(summary string, createdAt time.Time) (event.Event, error) {
	var description string
	if b.YearKnown {
		description = fmt.Sprintf(config.FormatBornOn, b.DateOfBirth.Format(config.DateFormatISO))
	}
	return event.NewBuilder().
		ID(b.ID()).
		Date(b.NextOccurrence).
		Time(event.NewTimeOfDay(0, 0, 0)).
		DurationMinutes(config.BirthdayDurationMinutes).
		Title(summary).
		Description(description).
		Category(event.CategoryPersonal).
		Priority(event.PriorityMedium).
		CreatedAt(createdAt).
		Build()
}
