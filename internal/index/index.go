// Package index keeps events in an unbalanced binary search tree ordered by
// date, time and descending priority.
//
// The tree is never rebalanced. Height and balance are reported by the
// introspection methods but nothing acts on them. An EventIndex is not safe
// for concurrent use.
package index

import (
	"strings"

	"github.com/tartampluch/go-calendar/internal/event"
	"golang.org/x/text/cases"
)

type node struct {
	event event.Event
	left  *node
	right *node
}

func (n *node) isLeaf() bool {
	return n.left == nil && n.right == nil
}

// EventIndex owns the tree nodes. Callers only ever see event values.
type EventIndex struct {
	root     *node
	size     int
	modCount int
	fold     cases.Caser
}

func New() *EventIndex {
	return &EventIndex{fold: cases.Fold()}
}

// Size is the number of events held.
func (x *EventIndex) Size() int { return x.size }

func (x *EventIndex) IsEmpty() bool { return x.root == nil }

// ModCount increases on every insert, delete and clear. It is never reset.
func (x *EventIndex) ModCount() int { return x.modCount }

// -----------------------------------------------------------------------------
// Insertion
// -----------------------------------------------------------------------------

// Insert attaches e as a new leaf. Events that compare equal to an existing
// one go to its right, so both are kept.
func (x *EventIndex) Insert(e event.Event) {
	x.root = insert(x.root, e)
	x.size++
	x.modCount++
}

// InsertChecked inserts e. When checkConflict is set, it first compares e
// with every event on the same date and returns a *ConflictError for the
// first overlap, leaving the index untouched.
func (x *EventIndex) InsertChecked(e event.Event, checkConflict bool) error {
	if checkConflict {
		if existing, ok := FirstConflict(e, x.FindEventsByDate(e.Date())); ok {
			return &ConflictError{Candidate: e, Existing: existing}
		}
	}
	x.Insert(e)
	return nil
}

func insert(n *node, e event.Event) *node {
	if n == nil {
		return &node{event: e}
	}
	if e.Compare(n.event) < 0 {
		n.left = insert(n.left, e)
	} else {
		n.right = insert(n.right, e)
	}
	return n
}

// -----------------------------------------------------------------------------
// Lookup
// -----------------------------------------------------------------------------

// FindByID walks the whole tree; the id is not part of the ordering.
func (x *EventIndex) FindByID(id string) (event.Event, error) {
	if e, ok := findFirst(x.root, func(e event.Event) bool { return e.ID() == id }); ok {
		return e, nil
	}
	return event.Event{}, notFound(id)
}

// SearchByTitle returns the first event (pre-order) whose title equals
// title, ignoring case.
func (x *EventIndex) SearchByTitle(title string) (event.Event, bool) {
	want := x.fold.String(title)
	return findFirst(x.root, func(e event.Event) bool {
		return x.fold.String(e.Title()) == want
	})
}

// SearchByTitleContains returns, in order, every event whose title contains
// pattern, ignoring case.
func (x *EventIndex) SearchByTitleContains(pattern string) []event.Event {
	want := x.fold.String(pattern)
	return x.Find(func(e event.Event) bool {
		return strings.Contains(x.fold.String(e.Title()), want)
	})
}

// findFirst is a pre-order search: node, then left, then right.
func findFirst(n *node, match func(event.Event) bool) (event.Event, bool) {
	if n == nil {
		return event.Event{}, false
	}
	if match(n.event) {
		return n.event, true
	}
	if e, ok := findFirst(n.left, match); ok {
		return e, true
	}
	return findFirst(n.right, match)
}

// FindEventsByDate returns the events on d in order, skipping subtrees that
// cannot hold d.
func (x *EventIndex) FindEventsByDate(d event.Date) []event.Event {
	var out []event.Event
	collectRange(x.root, d, d, &out)
	return out
}

// FindEventsInRange returns the events with start <= date <= end in order.
func (x *EventIndex) FindEventsInRange(start, end event.Date) ([]event.Event, error) {
	if start.After(end) {
		return nil, invalidRange(start, end)
	}
	var out []event.Event
	collectRange(x.root, start, end, &out)
	return out, nil
}

func collectRange(n *node, start, end event.Date, out *[]event.Event) {
	if n == nil {
		return
	}
	d := n.event.Date()
	if d.Compare(start) >= 0 {
		collectRange(n.left, start, end, out)
	}
	if !d.Before(start) && !d.After(end) {
		*out = append(*out, n.event)
	}
	if d.Compare(end) <= 0 {
		collectRange(n.right, start, end, out)
	}
}

func (x *EventIndex) FindByCategory(c event.Category) []event.Event {
	return x.Find(func(e event.Event) bool { return e.Category() == c })
}

func (x *EventIndex) FindByPriority(p event.Priority) []event.Event {
	return x.Find(func(e event.Event) bool { return e.Priority() == p })
}

// Find returns, in order, every event accepted by pred.
func (x *EventIndex) Find(pred func(event.Event) bool) []event.Event {
	var out []event.Event
	inOrder(x.root, func(e event.Event) {
		if pred(e) {
			out = append(out, e)
		}
	})
	return out
}

// All returns every event in order.
func (x *EventIndex) All() []event.Event {
	out := make([]event.Event, 0, x.size)
	inOrder(x.root, func(e event.Event) { out = append(out, e) })
	return out
}

// Upcoming returns the events dated today or later.
func (x *EventIndex) Upcoming(today event.Date) []event.Event {
	return x.Find(func(e event.Event) bool { return !e.Date().Before(today) })
}

// Today returns the events dated today.
func (x *EventIndex) Today(today event.Date) []event.Event {
	return x.FindEventsByDate(today)
}

// Past returns the events dated before today.
func (x *EventIndex) Past(today event.Date) []event.Event {
	return x.Find(func(e event.Event) bool { return e.Date().Before(today) })
}

// Snapshot returns every event in pre-order. Inserting the result into an
// empty index rebuilds the same tree shape.
func (x *EventIndex) Snapshot() []event.Event {
	out := make([]event.Event, 0, x.size)
	preOrder(x.root, func(e event.Event) { out = append(out, e) })
	return out
}

func preOrder(n *node, visit func(event.Event)) {
	if n == nil {
		return
	}
	visit(n.event)
	preOrder(n.left, visit)
	preOrder(n.right, visit)
}

func inOrder(n *node, visit func(event.Event)) {
	if n == nil {
		return
	}
	inOrder(n.left, visit)
	visit(n.event)
	inOrder(n.right, visit)
}

// FindConflictsOnDate returns every overlapping pair among the events on d.
func (x *EventIndex) FindConflictsOnDate(d event.Date) []Pair {
	return Conflicts(x.FindEventsByDate(d))
}

// -----------------------------------------------------------------------------
// Deletion
// -----------------------------------------------------------------------------

// DeleteByID removes the event with the given id and returns it.
func (x *EventIndex) DeleteByID(id string) (event.Event, error) {
	e, err := x.FindByID(id)
	if err != nil {
		return event.Event{}, err
	}
	x.remove(e)
	return e, nil
}

// DeleteByTitle removes the first event whose title matches, ignoring case.
// It reports whether an event was removed.
func (x *EventIndex) DeleteByTitle(title string) bool {
	e, ok := x.SearchByTitle(title)
	if !ok {
		return false
	}
	x.remove(e)
	return true
}

func (x *EventIndex) remove(e event.Event) {
	var removed bool
	x.root = remove(x.root, e, &removed)
	if removed {
		x.size--
		x.modCount++
	}
}

// remove follows the ordering to target and confirms the node by id. A key
// tie with another id continues to the right, where equal keys live.
func remove(n *node, target event.Event, removed *bool) *node {
	if n == nil {
		return nil
	}
	c := target.Compare(n.event)
	switch {
	case c < 0:
		n.left = remove(n.left, target, removed)
	case c > 0 || n.event.ID() != target.ID():
		n.right = remove(n.right, target, removed)
	default:
		*removed = true
		if n.left == nil {
			return n.right
		}
		if n.right == nil {
			return n.left
		}
		successor := minNode(n.right)
		n.event = successor.event
		var ignored bool
		n.right = remove(n.right, successor.event, &ignored)
	}
	return n
}

func minNode(n *node) *node {
	for n.left != nil {
		n = n.left
	}
	return n
}

// Clear drops every event. The modification counter keeps counting.
func (x *EventIndex) Clear() {
	x.root = nil
	x.size = 0
	x.modCount++
}
