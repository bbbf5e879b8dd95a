package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/tartampluch/go-calendar/internal/config"
	"github.com/tartampluch/go-calendar/internal/event"
	"gopkg.in/yaml.v3"
)

// CLI output formatters
var (
	successColor = color.New(color.FgGreen, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow)
	infoColor    = color.New(color.FgCyan)
	headerColor  = color.New(color.FgBlue, color.Bold)
)

// priorityColor highlights the more important events in listings.
func priorityColor(p event.Priority) *color.Color {
	switch p {
	case event.PriorityUrgent:
		return errorColor
	case event.PriorityHigh:
		return warningColor
	case event.PriorityLow:
		return infoColor
	default:
		return color.New(color.Reset)
	}
}

// eventView is the JSON/YAML shape of an event.
type eventView struct {
	ID              string `json:"id" yaml:"id"`
	Date            string `json:"date" yaml:"date"`
	Time            string `json:"time" yaml:"time"`
	EndTime         string `json:"end_time" yaml:"end_time"`
	DurationMinutes int64  `json:"duration_minutes" yaml:"duration_minutes"`
	Title           string `json:"title" yaml:"title"`
	Description     string `json:"description,omitempty" yaml:"description,omitempty"`
	Category        string `json:"category" yaml:"category"`
	Priority        string `json:"priority" yaml:"priority"`
	CreatedAt       string `json:"created_at" yaml:"created_at"`
}

func newEventView(e event.Event) eventView {
	return eventView{
		ID:              e.ID(),
		Date:            e.Date().String(),
		Time:            e.Time().String(),
		EndTime:         e.EndTime().String(),
		DurationMinutes: e.DurationMinutes(),
		Title:           e.Title(),
		Description:     e.Description(),
		Category:        e.Category().Name(),
		Priority:        e.Priority().Name(),
		CreatedAt:       e.CreatedAt().UTC().Format(time.RFC3339Nano),
	}
}

func eventViews(events []event.Event) []eventView {
	out := make([]eventView, 0, len(events))
	for _, e := range events {
		out = append(out, newEventView(e))
	}
	return out
}

// writeStructured encodes v as JSON or YAML. It reports false for the text
// format so the caller renders it itself.
func writeStructured(w io.Writer, format string, v any) (bool, error) {
	switch strings.ToLower(format) {
	case config.OutputText, "":
		return false, nil
	case config.OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return true, enc.Encode(v)
	case config.OutputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return true, err
		}
		return true, enc.Close()
	default:
		return true, fmt.Errorf("%s: %q", config.ErrUnknownOutput, format)
	}
}

// eventLine is one listing row: the summary plus the localized category.
func (a *App) eventLine(e event.Event) string {
	return fmt.Sprintf("%s  %s  [%s]", e.SimpleString(), e.ID(), a.tr.Category(e.Category()))
}

func (a *App) printEvents(events []event.Event) {
	if len(events) == 0 {
		_, _ = warningColor.Fprintln(a.Out, a.tr.Msg(config.TKeyNoEvents))
		return
	}
	for _, e := range events {
		_, _ = priorityColor(e.Priority()).Fprintln(a.Out, a.eventLine(e))
	}
	_, _ = headerColor.Fprintln(a.Out, a.tr.Plural(config.TKeyEventCount, len(events), nil))
}

func (a *App) success(msg string) {
	_, _ = successColor.Fprintln(a.Out, msg)
}
