package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/Joseda-hg/hrdesk/internal/attendance"
	"github.com/Joseda-hg/hrdesk/internal/model"
	"github.com/Joseda-hg/hrdesk/internal/projects"
	"github.com/Joseda-hg/hrdesk/internal/session"
	"github.com/Joseda-hg/hrdesk/internal/tui"
	"github.com/Joseda-hg/hrdesk/internal/web"
)

const shutdownTimeout = 5 * time.Second

func newActivityCmd(a *app) *cobra.Command {
	var (
		limit     int
		pruneDays int
	)
	cmd := &cobra.Command{
		Use:   "activity",
		Short: "Show the local history of actions taken from this machine",
		RunE: func(cmd *cobra.Command, args []string) error {
			if pruneDays > 0 {
				cutoff := a.now().AddDate(0, 0, -pruneDays)
				removed, err := a.store.PruneActivity(cmd.Context(), cutoff)
				if err != nil {
					return err
				}
				a.logger.Info("pruned activity", "removed", removed, "before", cutoff.Format(model.DateLayout))
			}
			entries, err := a.store.ListActivity(cmd.Context(), limit)
			if err != nil {
				return err
			}
			return a.print(cmd, entries, func(w io.Writer) error {
				if len(entries) == 0 {
					_, err := fmt.Fprintln(w, "No activity yet")
					return err
				}
				rows := make([][]string, 0, len(entries))
				for _, entry := range entries {
					rows = append(rows, []string{
						humanize.Time(entry.CreatedAt),
						entry.Kind,
						entry.Details,
					})
				}
				return table(w, []string{"WHEN", "ACTION", "DETAILS"}, rows)
			})
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "number of entries to show")
	cmd.Flags().IntVar(&pruneDays, "prune-days", 0, "first delete entries older than this many days")
	return cmd
}

func newTUICmd(a *app) *cobra.Command {
	var withWeb bool
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Open the terminal UI",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.requireSession(cmd.Context())
			if err != nil {
				return err
			}
			tracker := a.tracker(sess)
			board := a.board(sess)

			if withWeb {
				server := a.dashboard(sess, tracker, board)
				go func() {
					a.logger.Info("dashboard running", "addr", "http://"+a.cfg.Web.Addr)
					if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
						a.logger.Error("dashboard stopped", "error", err)
					}
				}()
				defer shutdown(server)
			}

			return tui.Run(tui.Deps{
				Session:  sess,
				Tracker:  tracker,
				Board:    board,
				Leaves:   a.leaves(sess, tracker),
				Activity: a.store,
				Todos:    a.store,
				Logger:   a.logger,
			})
		},
	}
	cmd.Flags().BoolVar(&withWeb, "web", false, "also serve the dashboard while the UI runs")
	return cmd
}

func newServeCmd(a *app) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the local dashboard and JSON API",
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr != "" {
				a.cfg.Web.Addr = addr
			}
			sess, err := a.requireSession(cmd.Context())
			if err != nil {
				return err
			}
			server := a.dashboard(sess, a.tracker(sess), a.board(sess))

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				errCh <- server.ListenAndServe()
			}()
			fmt.Fprintf(cmd.OutOrStdout(), "Dashboard running at http://%s\n", a.cfg.Web.Addr)

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
				return shutdown(server)
			}
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (defaults to web.addr from the config)")
	return cmd
}

func (a *app) dashboard(sess *session.Session, tracker *attendance.Tracker, board *projects.Board) *http.Server {
	handler := web.NewServer(web.Options{
		Session:  sess,
		Tracker:  tracker,
		Board:    board,
		Activity: a.store,
		Metrics:  a.metrics,
		Logger:   a.logger,
		Now:      a.now,
	}).Handler()
	return &http.Server{
		Addr:              a.cfg.Web.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

func shutdown(server *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown dashboard: %w", err)
	}
	return nil
}
