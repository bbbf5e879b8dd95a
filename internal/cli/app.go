// Package cli is the command-line front end. Every command runs against a
// session loaded from the configured store and saved again when it changed.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/tartampluch/go-calendar/internal/config"
	"github.com/tartampluch/go-calendar/internal/engine"
	"github.com/tartampluch/go-calendar/internal/i18n"
	"github.com/tartampluch/go-calendar/internal/store"
)

// App holds the dependencies shared by every command.
type App struct {
	Out     io.Writer
	In      io.Reader
	Clock   engine.Clock
	Fetcher engine.VCardFetcher
	Secrets SecretStore

	// ConfigureLogging is called once flags are parsed.
	ConfigureLogging func(debug bool)

	settingsPath string
	storePath    string
	backend      string
	lang         string
	debug        bool
	noColor      bool

	settings config.Settings
	session  *engine.Session
	tr       *i18n.Translator
	gen      *engine.Generator
}

// NewApp wires the production dependencies.
func NewApp() *App {
	return &App{
		Out:     os.Stdout,
		In:      os.Stdin,
		Clock:   engine.RealClock{},
		Fetcher: engine.NewHTTPFetcher(),
		Secrets: KeyringStore{},
	}
}

// NewRootCmd builds the command tree bound to app.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           config.BinaryName,
		Short:         config.CmdShortRoot,
		Version:       config.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return app.open(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return app.close(cmd.Context())
		},
	}
	root.SetVersionTemplate(fmt.Sprintf(config.MsgVersionOutput,
		config.AppName, config.Version, runtime.GOOS, runtime.GOARCH))
	root.SetOut(app.Out)
	root.SetIn(app.In)

	pf := root.PersistentFlags()
	pf.StringVar(&app.settingsPath, config.FlagSettings, "", config.FlagDescSettings)
	pf.StringVar(&app.storePath, config.FlagStore, "", config.FlagDescStore)
	pf.StringVar(&app.backend, config.FlagBackend, "", config.FlagDescBackend)
	pf.StringVar(&app.lang, config.FlagLanguage, "", config.FlagDescLanguage)
	pf.BoolVar(&app.debug, config.FlagDebug, false, config.FlagDescDebug)
	pf.BoolVar(&app.noColor, config.FlagNoColor, false, config.FlagDescNoColor)

	root.AddCommand(
		newAddCmd(app),
		newListCmd(app),
		newShowCmd(app),
		newUpdateCmd(app),
		newDeleteCmd(app),
		newTreeCmd(app),
		newStatsCmd(app),
		newConflictsCmd(app),
		newExportCmd(app),
		newImportCmd(app),
		newServeCmd(app),
		newClearCmd(app),
		newRestoreCmd(app),
		newCredentialsCmd(app),
	)
	return root
}

// open loads settings, then the store, before any command runs.
func (a *App) open(cmd *cobra.Command) error {
	if a.ConfigureLogging != nil {
		a.ConfigureLogging(a.debug)
	}
	if a.noColor {
		color.NoColor = true
	}
	if _, ok := cmd.Annotations[config.AnnotationNoSession]; ok {
		return nil
	}

	path := a.settingsPath
	if path == "" {
		p, err := config.DefaultSettingsPath()
		if err != nil {
			return err
		}
		path = p
	}
	settings, err := config.LoadSettings(path)
	if err != nil {
		return err
	}
	if a.backend != "" {
		settings.StoreBackend = a.backend
	}
	if a.storePath != "" {
		settings.StorePath = a.storePath
	}
	if a.lang != "" {
		settings.Language = a.lang
	}
	a.settings = settings

	storePath := settings.StorePath
	if storePath == "" {
		if storePath, err = store.DefaultPath(settings.StoreBackend); err != nil {
			return err
		}
	}
	st, err := store.Open(settings.StoreBackend, storePath)
	if err != nil {
		return err
	}

	a.session = engine.NewSession(st, settings.CheckConflicts)
	if _, err := a.session.Load(cmd.Context()); err != nil {
		return err
	}

	a.tr = i18n.New(settings.Language)
	a.gen = &engine.Generator{
		Clock:         a.Clock,
		Fetcher:       a.Fetcher,
		FormatSummary: a.tr.BirthdaySummary,
	}

	slog.Debug(config.MsgSettingsLoaded,
		config.LogKeyComponent, config.CompCLI,
		config.LogKeyCommand, cmd.Name(),
		config.LogKeyPath, storePath,
		config.LogKeyBackend, settings.StoreBackend,
	)
	return nil
}

// close saves the session when a command changed it.
func (a *App) close(ctx context.Context) error {
	if a.session == nil || !a.session.Dirty() {
		return nil
	}
	if err := a.session.Save(ctx); err != nil {
		return err
	}
	slog.Debug(config.MsgSessionSaved,
		config.LogKeyComponent, config.CompCLI,
		config.LogKeyCount, a.session.Index.Size(),
	)
	return nil
}
