package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/tartampluch/go-calendar/internal/config"
	"github.com/tartampluch/go-calendar/internal/server"
)

func newExportCmd(app *App) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "export-ics",
		Short: config.CmdShortExport,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			events := app.session.Index.All()
			data, err := app.gen.ExportICS(cmd.Context(), events)
			if err != nil {
				return err
			}

			if file == config.StdoutPath {
				_, err := app.Out.Write(data)
				return err
			}
			if dir := filepath.Dir(file); dir != "." {
				if err := os.MkdirAll(dir, config.DirPermUserRWX); err != nil {
					return fmt.Errorf("%s: %w", config.ErrExportWrite, err)
				}
			}
			if err := os.WriteFile(file, data, config.FilePermUserRW); err != nil {
				return fmt.Errorf("%s: %w", config.ErrExportWrite, err)
			}
			app.success(app.tr.Plural(config.TKeyExported, len(events), map[string]any{"Path": file}))
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, config.FlagFile, "f", config.StdoutPath, config.FlagDescFile)
	return cmd
}

func newImportCmd(app *App) *cobra.Command {
	var user string

	cmd := &cobra.Command{
		Use:   "import-vcard <file-or-url>",
		Short: config.CmdShortImport,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := withCredentials(args[0], user, app.Secrets)
			if err != nil {
				return err
			}
			birthdays, err := app.gen.ImportBirthdays(cmd.Context(), source)
			if err != nil {
				return err
			}
			events, err := app.gen.BirthdayEvents(birthdays)
			if err != nil {
				return err
			}
			added := app.session.Import(events)
			app.success(app.tr.Plural(config.TKeyImported, added, nil))
			return nil
		},
	}

	cmd.Flags().StringVar(&user, config.FlagUser, "", config.FlagDescUser)
	return cmd
}

func newServeCmd(app *App) *cobra.Command {
	var (
		port    string
		refresh time.Duration
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: config.CmdShortServe,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if port == "" {
				port = app.settings.ServerPort
			}
			srv := server.NewCalendarServer(port)
			if err := app.publish(cmd.Context(), srv); err != nil {
				return err
			}

			ctx, cancel := context.WithCancel(cmd.Context())
			done := make(chan struct{})
			go func() {
				defer close(done)
				app.refreshLoop(ctx, srv, refresh)
			}()

			err := srv.Start(ctx)
			cancel()
			<-done
			return err
		},
	}

	cmd.Flags().StringVar(&port, config.FlagPort, "", config.FlagDescPort)
	cmd.Flags().DurationVar(&refresh, config.FlagRefresh, config.DefaultICalRefresh, config.FlagDescRefresh)
	return cmd
}

// publish renders the current index into the server caches.
func (a *App) publish(ctx context.Context, srv *server.CalendarServer) error {
	data, err := a.gen.ExportICS(ctx, a.session.Index.All())
	if err != nil {
		return err
	}
	srv.Update(data)
	return srv.UpdateStats(a.session.Index.Statistics())
}

// refreshLoop reloads the store on every tick so edits made by other
// invocations reach the feed.
func (a *App) refreshLoop(ctx context.Context, srv *server.CalendarServer, every time.Duration) {
	if every <= 0 {
		return
	}
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := a.session.Load(ctx)
			if err == nil {
				err = a.publish(ctx, srv)
			}
			if err != nil {
				slog.Error(config.ErrStoreLoad,
					config.LogKeyComponent, config.CompCLI,
					config.LogKeyError, err,
				)
				continue
			}
			slog.Info(config.MsgFeedReload,
				config.LogKeyComponent, config.CompCLI,
				config.LogKeyCount, n,
			)
		}
	}
}

func newCredentialsCmd(app *App) *cobra.Command {
	noSession := map[string]string{config.AnnotationNoSession: "true"}

	cmd := &cobra.Command{
		Use:         "credentials",
		Short:       config.CmdShortCredentials,
		Annotations: noSession,
	}

	var user, password string

	set := &cobra.Command{
		Use:         "set",
		Short:       config.CmdShortCredSet,
		Args:        cobra.NoArgs,
		Annotations: noSession,
		RunE: func(_ *cobra.Command, _ []string) error {
			if strings.TrimSpace(user) == "" {
				return errors.New(config.ErrUserEmpty)
			}
			if password == "" {
				line, err := bufio.NewReader(app.In).ReadString('\n')
				if err != nil && line == "" {
					return errors.New(config.ErrPasswordEmpty)
				}
				password = strings.TrimRight(line, "\r\n")
			}
			if password == "" {
				return errors.New(config.ErrPasswordEmpty)
			}
			if err := app.Secrets.Set(user, password); err != nil {
				return fmt.Errorf("%s: %w", config.ErrKeyringSet, err)
			}
			slog.Info(config.MsgCredentialsSet,
				config.LogKeyComponent, config.CompCLI,
				config.LogKeyUser, user,
			)
			app.success(config.MsgCredentialsSet)
			return nil
		},
	}
	set.Flags().StringVar(&user, config.FlagUser, "", config.FlagDescUser)
	set.Flags().StringVar(&password, config.FlagPassword, "", config.FlagDescPassword)

	del := &cobra.Command{
		Use:         "delete",
		Short:       config.CmdShortCredDelete,
		Args:        cobra.NoArgs,
		Annotations: noSession,
		RunE: func(_ *cobra.Command, _ []string) error {
			if strings.TrimSpace(user) == "" {
				return errors.New(config.ErrUserEmpty)
			}
			if err := app.Secrets.Delete(user); err != nil {
				return fmt.Errorf("%s: %w", config.ErrKeyringDelete, err)
			}
			slog.Info(config.MsgCredentialsDel,
				config.LogKeyComponent, config.CompCLI,
				config.LogKeyUser, user,
			)
			app.success(config.MsgCredentialsDel)
			return nil
		},
	}
	del.Flags().StringVar(&user, config.FlagUser, "", config.FlagDescUser)

	cmd.AddCommand(set, del)
	return cmd
}
