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

// eventFlags are the field flags shared by add and update.
type eventFlags struct {
	date        string
	time        string
	duration    int
	title       string
	description string
	category    string
	priority    string
}

func (f *eventFlags) bind(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVar(&f.date, config.FlagDate, "", config.FlagDescDate)
	fl.StringVar(&f.time, config.FlagTime, "", config.FlagDescTime)
	fl.IntVar(&f.duration, config.FlagDuration, config.DefaultDurationMinutes, config.FlagDescDuration)
	fl.StringVar(&f.title, config.FlagTitle, "", config.FlagDescTitle)
	fl.StringVar(&f.description, config.FlagDescription, "", config.FlagDescDescription)
	fl.StringVar(&f.category, config.FlagCategory, event.CategoryOther.Name(), config.FlagDescCategory)
	fl.StringVar(&f.priority, config.FlagPriority, event.PriorityMedium.Name(), config.FlagDescPriority)
}

// apply copies the flags into b. With onlyChanged set, flags left at their
// defaults keep the builder's current value.
func (f *eventFlags) apply(cmd *cobra.Command, b *event.Builder, onlyChanged bool) error {
	set := func(name string) bool {
		return !onlyChanged || cmd.Flags().Changed(name)
	}

	if set(config.FlagDate) {
		d, err := event.ParseDate(f.date)
		if err != nil {
			return err
		}
		b.Date(d)
	}
	if set(config.FlagTime) {
		t, err := event.ParseTimeOfDay(f.time)
		if err != nil {
			return err
		}
		b.Time(t)
	}
	if set(config.FlagDuration) {
		b.DurationMinutes(f.duration)
	}
	if set(config.FlagTitle) {
		b.Title(f.title)
	}
	if set(config.FlagDescription) {
		b.Description(f.description)
	}
	if set(config.FlagCategory) {
		c, err := event.ParseCategory(f.category)
		if err != nil {
			return err
		}
		b.Category(c)
	}
	if set(config.FlagPriority) {
		p, err := event.ParsePriority(f.priority)
		if err != nil {
			return err
		}
		b.Priority(p)
	}
	return nil
}

func newAddCmd(app *App) *cobra.Command {
	var (
		fields eventFlags
		check  bool
		rule   string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: config.CmdShortAdd,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			b := event.NewBuilder().CreatedAt(app.Clock.Now())
			if err := fields.apply(cmd, b, false); err != nil {
				return fmt.Errorf("%s: %w", config.ErrEventCreate, err)
			}
			base, err := b.Build()
			if err != nil {
				return fmt.Errorf("%s: %w", config.ErrEventCreate, err)
			}

			if cmd.Flags().Changed(config.FlagCheck) {
				app.session.CheckConflicts = check
			}

			events := []event.Event{base}
			if rule != "" {
				if events, err = engine.ExpandRecurrence(base, rule, config.DefaultRecurrenceLimit); err != nil {
					return err
				}
			}

			if err := app.session.AddAll(events); err != nil {
				app.reportConflict(err)
				return err
			}

			_, _ = fmt.Fprintln(app.Out, base.String())
			app.success(app.tr.Format(config.TKeyEventAdded, map[string]any{"Title": base.Title()}))
			if len(events) > 1 {
				_, _ = infoColor.Fprintln(app.Out, app.tr.Plural(config.TKeyEventCount, len(events), nil))
			}
			return nil
		},
	}

	fields.bind(cmd)
	cmd.Flags().BoolVar(&check, config.FlagCheck, config.DefaultCheckConflicts, config.FlagDescCheck)
	cmd.Flags().StringVar(&rule, config.FlagRRule, "", config.FlagDescRRule)
	_ = cmd.MarkFlagRequired(config.FlagDate)
	_ = cmd.MarkFlagRequired(config.FlagTime)
	_ = cmd.MarkFlagRequired(config.FlagTitle)
	return cmd
}

func (a *App) reportConflict(err error) {
	var conflict *index.ConflictError
	if !errors.As(err, &conflict) {
		return
	}
	_, _ = errorColor.Fprintln(a.Out, a.tr.Format(config.TKeyConflictPair, map[string]any{
		"First":  conflict.Candidate.SimpleString(),
		"Second": conflict.Existing.SimpleString(),
	}))
}

func newUpdateCmd(app *App) *cobra.Command {
	var (
		fields eventFlags
		check  bool
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: config.CmdShortUpdate,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed(config.FlagCheck) {
				app.session.CheckConflicts = check
			}

			// Flag values are parsed up front so a bad value never reaches the index.
			if err := fields.apply(cmd, event.NewBuilder(), true); err != nil {
				return fmt.Errorf("%s: %w", config.ErrEventUpdate, err)
			}
			updated, err := app.session.Update(args[0], func(b *event.Builder) {
				_ = fields.apply(cmd, b, true)
			})
			if err != nil {
				app.reportConflict(err)
				return fmt.Errorf("%s: %w", config.ErrEventUpdate, err)
			}

			_, _ = fmt.Fprintln(app.Out, updated.String())
			app.success(app.tr.Format(config.TKeyEventUpdated, map[string]any{"Title": updated.Title()}))
			return nil
		},
	}

	fields.bind(cmd)
	cmd.Flags().BoolVar(&check, config.FlagCheck, config.DefaultCheckConflicts, config.FlagDescCheck)
	return cmd
}

func newShowCmd(app *App) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: config.CmdShortShow,
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			e, err := app.session.Index.FindByID(args[0])
			if err != nil {
				return err
			}
			done, err := writeStructured(app.Out, output, newEventView(e))
			if done || err != nil {
				return err
			}
			_, _ = fmt.Fprintln(app.Out, e.String())
			_, _ = fmt.Fprintf(app.Out, "%s  %s\n", app.tr.Category(e.Category()), app.tr.Priority(e.Priority()))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, config.FlagOutput, "o", config.OutputText, config.FlagDescOutput)
	return cmd
}

func newDeleteCmd(app *App) *cobra.Command {
	var id, title string

	cmd := &cobra.Command{
		Use:   "delete",
		Short: config.CmdShortDelete,
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			var (
				removed event.Event
				err     error
			)
			switch {
			case id != "":
				removed, err = app.session.Delete(id)
			case strings.TrimSpace(title) != "":
				var ok bool
				if removed, ok = app.session.DeleteByTitle(title); !ok {
					err = fmt.Errorf("%w: title=%s", index.ErrNotFound, title)
				}
			default:
				return errors.New(config.ErrMissingSelector)
			}
			if err != nil {
				return err
			}
			app.success(app.tr.Format(config.TKeyEventDeleted, map[string]any{"Title": removed.Title()}))
			return nil
		},
	}

	cmd.Flags().StringVar(&id, config.FlagID, "", config.FlagDescID)
	cmd.Flags().StringVar(&title, config.FlagTitle, "", config.FlagDescTitle)
	cmd.MarkFlagsMutuallyExclusive(config.FlagID, config.FlagTitle)
	return cmd
}

func newClearCmd(app *App) *cobra.Command {
	var purge bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: config.CmdShortClear,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app.session.Index.Clear()
			if purge {
				if err := app.session.Store.Delete(); err != nil {
					return err
				}
				// Nothing is left to save: reloading the missing store marks the session clean.
				if _, err := app.session.Load(cmd.Context()); err != nil {
					return err
				}
			}
			app.success(app.tr.Msg(config.TKeyCleared))
			return nil
		},
	}

	cmd.Flags().BoolVar(&purge, config.FlagPurge, false, config.FlagDescPurge)
	return cmd
}

func newRestoreCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "restore",
		Short: config.CmdShortRestore,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !app.session.Store.HasExistingData() {
				return errors.New(config.ErrNothingToRestore)
			}
			n, err := app.session.Load(cmd.Context())
			if err != nil {
				return err
			}
			app.success(app.tr.Plural(config.TKeyRestored, n, nil))
			return nil
		},
	}
}
