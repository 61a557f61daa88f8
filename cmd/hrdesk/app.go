package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/Joseda-hg/hrdesk/internal/api"
	"github.com/Joseda-hg/hrdesk/internal/attendance"
	"github.com/Joseda-hg/hrdesk/internal/config"
	"github.com/Joseda-hg/hrdesk/internal/db"
	"github.com/Joseda-hg/hrdesk/internal/leave"
	"github.com/Joseda-hg/hrdesk/internal/logger"
	"github.com/Joseda-hg/hrdesk/internal/metrics"
	"github.com/Joseda-hg/hrdesk/internal/projects"
	"github.com/Joseda-hg/hrdesk/internal/session"
)

type globalOptions struct {
	configPath string
	serverURL  string
	dbPath     string
	output     string
	logLevel   string
	envFile    string
}

func addGlobalFlags(cmd *cobra.Command, opts *globalOptions) {
	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "config file path")
	flags.StringVar(&opts.serverURL, "server-url", "", "HR backend base URL")
	flags.StringVar(&opts.dbPath, "db", "", "sqlite db path")
	flags.StringVarP(&opts.output, "output", "o", "text", "output format: text or json")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn or error")
	flags.StringVar(&opts.envFile, "env-file", ".env", "dotenv file read before the environment")
}

// app holds what every command shares once the config is resolved.
type app struct {
	opts     globalOptions
	cfg      config.Config
	cfgPath  string
	logger   *slog.Logger
	store    *db.Store
	metrics  *metrics.Metrics
	client   *api.Client
	sessions *session.Manager
	now      func() time.Time
	closers  []io.Closer
}

func newApp() *app {
	return &app{now: time.Now, logger: logger.Discard()}
}

// setup resolves the config as defaults, then the config file, then the
// environment, then flags, and opens everything commands depend on.
func (a *app) setup(cmd *cobra.Command) error {
	if a.opts.output != "text" && a.opts.output != "json" {
		return fmt.Errorf("unknown output format %q: want text or json", a.opts.output)
	}

	if err := config.LoadDotEnv(a.opts.envFile); err != nil {
		return err
	}
	cfgPath, err := resolveConfigPath(a.opts.configPath)
	if err != nil {
		return err
	}
	fileCfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	if _, err := os.Stat(cfgPath); errors.Is(err, os.ErrNotExist) {
		if err := config.Save(cfgPath, fileCfg); err != nil {
			return fmt.Errorf("write default config: %w", err)
		}
	}

	cfg, err := config.ApplyEnv(fileCfg, os.Getenv)
	if err != nil {
		return err
	}
	if a.opts.serverURL != "" {
		cfg.ServerURL = a.opts.serverURL
	}
	if a.opts.dbPath != "" {
		cfg.DBPath = a.opts.dbPath
	}
	if a.opts.logLevel != "" {
		cfg.Log.Level = a.opts.logLevel
	}
	cfg.ResolveDBPath(cfgPath)
	if cmd.Name() == "tui" && cfg.Log.File == "" {
		cfg.Log.File = filepath.Join(filepath.Dir(cfgPath), "hrdesk.log")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg, a.cfgPath = cfg, cfgPath

	log, closer, err := logger.New(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format, File: cfg.Log.File})
	if err != nil {
		return err
	}
	a.logger = log
	a.closers = append(a.closers, closer)

	store, closer, err := openStore(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	a.store = store
	a.closers = append(a.closers, closer)

	a.metrics = metrics.New()
	a.client = api.New(api.Options{
		BaseURL: cfg.ServerURL,
		Timeout: cfg.RequestTimeout,
		Logger:  log,
		Metrics: a.metrics,
	})
	a.sessions = session.NewManager(store, cfg.SessionTTL, log)
	a.sessions.SetClock(a.now)
	return nil
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		_ = a.closers[i].Close()
	}
	a.closers = nil
}

func resolveConfigPath(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	return config.DefaultConfigPath()
}

func openStore(dbPath string) (*db.Store, io.Closer, error) {
	if err := config.EnsureDir(dbPath); err != nil {
		return nil, nil, err
	}

	sqlDB, err := db.Open(dbPath)
	if err != nil {
		return nil, nil, err
	}

	return db.NewStore(sqlDB), sqlDB, nil
}

// requireSession resumes the stored login.
func (a *app) requireSession(ctx context.Context) (*session.Session, error) {
	sess, err := a.sessions.Resume(ctx)
	switch {
	case errors.Is(err, session.ErrNoSession), errors.Is(err, session.ErrExpired):
		return nil, fmt.Errorf("%w, run hrdesk login", err)
	case err != nil:
		return nil, err
	}
	return sess, nil
}

func (a *app) tracker(sess *session.Session) *attendance.Tracker {
	return attendance.NewTracker(a.client.As(sess),
		attendance.WithClock(a.now),
		attendance.WithLogger(a.logger),
		attendance.WithRecorder(a.store),
		attendance.WithObserver(a.metrics),
	)
}

func (a *app) board(sess *session.Session) *projects.Board {
	board := projects.NewBoard(a.client.As(sess), sess.Role(), sess.Name(), a.logger)
	board.SetClock(a.now)
	return board
}

func (a *app) leaves(sess *session.Session, gate leave.Gate) *leave.Service {
	return leave.NewService(a.client.As(sess), gate, a.store, a.logger)
}

func (a *app) print(cmd *cobra.Command, value any, text func(w io.Writer) error) error {
	return printOutput(cmd.OutOrStdout(), a.opts.output, value, text)
}
