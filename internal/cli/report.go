package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tartampluch/go-calendar/internal/config"
	"github.com/tartampluch/go-calendar/internal/engine"
	"github.com/tartampluch/go-calendar/internal/event"
	"github.com/tartampluch/go-calendar/internal/index"
)

type listOptions struct {
	view     string
	from     string
	to       string
	category string
	priority string
	title    string
	output   string
}

func newListCmd(app *App) *cobra.Command {
	var opts listOptions

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   config.CmdShortList,
		Args:    cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			events, err := app.selectEvents(opts)
			if err != nil {
				return err
			}
			done, err := writeStructured(app.Out, opts.output, eventViews(events))
			if done || err != nil {
				return err
			}
			app.printEvents(events)
			return nil
		},
	}

	fl := cmd.Flags()
	fl.StringVar(&opts.view, config.FlagView, config.ViewAll, config.FlagDescView)
	fl.StringVar(&opts.from, config.FlagFrom, "", config.FlagDescFrom)
	fl.StringVar(&opts.to, config.FlagTo, "", config.FlagDescTo)
	fl.StringVar(&opts.category, config.FlagCategory, "", config.FlagDescCategory)
	fl.StringVar(&opts.priority, config.FlagPriority, "", config.FlagDescPriority)
	fl.StringVar(&opts.title, config.FlagTitle, "", config.FlagDescTitle)
	fl.StringVarP(&opts.output, config.FlagOutput, "o", config.OutputText, config.FlagDescOutput)
	return cmd
}

// selectEvents applies the view or date range, then the filters, keeping
// the index order.
func (a *App) selectEvents(opts listOptions) ([]event.Event, error) {
	x := a.session.Index
	today := engine.Today(a.Clock)

	var events []event.Event
	switch {
	case opts.from != "" || opts.to != "":
		if opts.from == "" || opts.to == "" {
			return nil, errors.New(config.ErrRangeIncomplete)
		}
		start, err := event.ParseDate(opts.from)
		if err != nil {
			return nil, err
		}
		end, err := event.ParseDate(opts.to)
		if err != nil {
			return nil, err
		}
		if events, err = x.FindEventsInRange(start, end); err != nil {
			return nil, err
		}
	default:
		switch strings.ToLower(opts.view) {
		case config.ViewAll, "":
			events = x.All()
		case config.ViewToday:
			events = x.Today(today)
		case config.ViewPast:
			events = x.Past(today)
		case config.ViewUpcoming:
			horizon := today.AddDays(a.settings.UpcomingDays)
			for _, e := range x.Upcoming(today) {
				if !e.Date().After(horizon) {
					events = append(events, e)
				}
			}
		default:
			return nil, fmt.Errorf("%s: %q", config.ErrUnknownView, opts.view)
		}
	}

	var keep []func(event.Event) bool
	if opts.category != "" {
		c, err := event.ParseCategory(opts.category)
		if err != nil {
			return nil, err
		}
		keep = append(keep, func(e event.Event) bool { return e.Category() == c })
	}
	if opts.priority != "" {
		p, err := event.ParsePriority(opts.priority)
		if err != nil {
			return nil, err
		}
		keep = append(keep, func(e event.Event) bool { return e.Priority() == p })
	}
	if opts.title != "" {
		matches := make(map[string]bool)
		for _, e := range x.SearchByTitleContains(opts.title) {
			matches[e.ID()] = true
		}
		keep = append(keep, func(e event.Event) bool { return matches[e.ID()] })
	}

	out := make([]event.Event, 0, len(events))
next:
	for _, e := range events {
		for _, ok := range keep {
			if !ok(e) {
				continue next
			}
		}
		out = append(out, e)
	}
	return out, nil
}

func newTreeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "tree",
		Short: config.CmdShortTree,
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			if app.session.Index.IsEmpty() {
				_, _ = warningColor.Fprintln(app.Out, app.tr.Msg(config.TKeyEmptyCalendar))
				return nil
			}
			_, _ = fmt.Fprint(app.Out, app.session.Index.Render())
			return nil
		},
	}
}

func newStatsCmd(app *App) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: config.CmdShortStats,
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			stats := app.session.Index.Statistics()
			done, err := writeStructured(app.Out, output, stats)
			if done || err != nil {
				return err
			}
			_, _ = headerColor.Fprintln(app.Out, app.tr.Msg(config.TKeyStatsTitle))
			_, _ = fmt.Fprint(app.Out, stats.String())
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, config.FlagOutput, "o", config.OutputText, config.FlagDescOutput)
	return cmd
}

func newConflictsCmd(app *App) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "conflicts",
		Short: config.CmdShortConflicts,
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			var pairs []index.Pair
			if date != "" {
				d, err := event.ParseDate(date)
				if err != nil {
					return err
				}
				pairs = app.session.Index.FindConflictsOnDate(d)
			} else {
				pairs = allConflicts(app.session.Index)
			}

			if len(pairs) == 0 {
				app.success(app.tr.Msg(config.TKeyNoConflicts))
				return nil
			}
			for _, p := range pairs {
				_, _ = errorColor.Fprintln(app.Out, app.tr.Format(config.TKeyConflictPair, map[string]any{
					"First":  p.First.SimpleString(),
					"Second": p.Second.SimpleString(),
				}))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&date, config.FlagDate, "", config.FlagDescDateFilter)
	return cmd
}

// allConflicts checks each distinct date once, in calendar order.
func allConflicts(x *index.EventIndex) []index.Pair {
	var pairs []index.Pair
	var last event.Date
	for i, e := range x.All() {
		if i > 0 && e.Date() == last {
			continue
		}
		last = e.Date()
		pairs = append(pairs, x.FindConflictsOnDate(last)...)
	}
	return pairs
}
