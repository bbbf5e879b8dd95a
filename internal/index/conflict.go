package index

import "github.com/tartampluch/go-calendar/internal/event"

// Pair is two overlapping events, in index order.
type Pair struct {
	First  event.Event
	Second event.Event
}

// FirstConflict returns the first event of existing that overlaps candidate.
func FirstConflict(candidate event.Event, existing []event.Event) (event.Event, bool) {
	for _, e := range existing {
		if candidate.OverlapsWith(e) {
			return e, true
		}
	}
	return event.Event{}, false
}

// Conflicts checks every pair i<j of events and returns the overlapping ones.
func Conflicts(events []event.Event) []Pair {
	var pairs []Pair
	for i := 0; i < len(events); i++ {
		for j := i + 1; j < len(events); j++ {
			if events[i].OverlapsWith(events[j]) {
				pairs = append(pairs, Pair{First: events[i], Second: events[j]})
			}
		}
	}
	return pairs
}
