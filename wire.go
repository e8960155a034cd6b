package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/CrestNiraj12/terminalcatchup/app"
	"github.com/CrestNiraj12/terminalcatchup/catchup"
	"github.com/CrestNiraj12/terminalcatchup/infra/auth"
	"github.com/CrestNiraj12/terminalcatchup/infra/config"
	"github.com/CrestNiraj12/terminalcatchup/infra/mastodon"
	"github.com/CrestNiraj12/terminalcatchup/infra/queue"
	"github.com/CrestNiraj12/terminalcatchup/infra/store"
)

// setupLogging points the global logger at stderr, or at the log file while
// the TUI owns the terminal. The returned func closes the file.
func setupLogging(cfg config.Config, toFile bool) (func(), error) {
	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(cfg.LogLevel)))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if !toFile {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
		return func() {}, nil
	}

	if err := os.MkdirAll(filepath.Dir(cfg.LogPath), 0o700); err != nil {
		return nil, fmt.Errorf("creating log dir: %w", err)
	}
	f, err := os.OpenFile(cfg.LogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	log.Logger = zerolog.New(f).With().Timestamp().Logger()
	return func() { _ = f.Close() }, nil
}

// env is everything a command needs, built once per process.
type env struct {
	Service *catchup.Service
	Profile app.Profile

	db    *sql.DB
	queue *queue.Queue
}

// wire builds the engine: SQLite store, sweep queue, Mastodon client and the
// catch-up service of the signed-in account.
func wire(ctx context.Context, cfg config.Config) (*env, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o700); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}
	db, err := store.Open(cfg.DBPath)
	if err != nil {
		return nil, err
	}
	repo, err := store.New(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	// The queue runs sweeps on the session store, which schedules through the queue.
	var sessions *catchup.SessionStore
	q, err := queue.New(db, queue.SweeperFunc(func(ctx context.Context, namespace string) error {
		return sessions.Sweep(ctx, namespace)
	}))
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	sessions = catchup.NewSessionStore(repo, q, cfg.KeepSessions)
	q.Start(ctx)

	e := &env{db: db, queue: q}

	client := mastodon.NewClient(cfg.InstanceURL, auth.Resolve(cfg.Token, cfg.TokenPath))
	profile, err := mastodon.NewAccountService(client).CurrentProfile(ctx)
	if err != nil {
		e.Close()
		return nil, fmt.Errorf("signing in to %s: %w", cfg.InstanceURL, err)
	}
	e.Profile = profile
	log.Info().Str("account", profile.Username).Str("instance", cfg.InstanceURL).Msg("signed in")

	e.Service = &catchup.Service{
		Timeline: mastodon.NewTimelineService(client, cfg.IncludeReblogs),
		Collector: &catchup.Collector{
			Filters:   catchup.ServerFilters{},
			Tags:      mastodon.NewFollowedTagResolver(client),
			ViewerID:  profile.ID,
			PageDelay: cfg.PageDelay,
		},
		Store:     sessions,
		Filters:   catchup.ServerFilters{},
		Namespace: catchup.Namespace(profile.ID, cfg.InstanceURL),
		PageSize:  cfg.PageSize,
		Now:       time.Now,
	}
	return e, nil
}

// Close waits briefly for a running sweep, then closes the database. Sweeps
// still queued run on the next start.
func (e *env) Close() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	e.queue.Stop(ctx)
	if err := e.db.Close(); err != nil {
		log.Warn().Err(err).Msg("closing database")
	}
}
