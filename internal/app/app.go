// Package app assembles footy's services from the configuration found in a
// workspace directory.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/jacksmith/footy/internal/cli"
	"github.com/jacksmith/footy/internal/favorites"
	"github.com/jacksmith/footy/internal/footballapi"
	"github.com/jacksmith/footy/internal/logging"
	"github.com/jacksmith/footy/internal/model"
	"github.com/jacksmith/footy/internal/session"
	"github.com/jacksmith/footy/internal/storage"
)

// App holds the services a command needs.
type App struct {
	Storage   *storage.Storage
	Config    *storage.Config
	Logger    *logging.Logger
	Backend   storage.Backend
	Favorites *favorites.Registry
	// Changes publishes a snapshot after every favorites mutation.
	Changes   *favorites.Broadcaster
	API       *footballapi.Client
	Sessions  *session.Manager

	closers []func() error
}

// Options overrides process-level dependencies, mainly for tests.
type Options struct {
	// LogOutput receives log lines; defaults to os.Stderr.
	LogOutput io.Writer
	// HTTPClient is used for API requests when set.
	HTTPClient *http.Client
	// Now is the clock used for favorites and sessions.
	Now func() time.Time
}

// Open loads the workspace in dir and wires every service. The workspace
// must have been created with `footy init`.
func Open(ctx context.Context, dir string, opts Options) (*App, error) {
	s, err := storage.Open(dir)
	if err != nil {
		return nil, err
	}
	cfg, err := s.LoadConfig()
	if err != nil {
		return nil, err
	}

	out := opts.LogOutput
	if out == nil {
		out = os.Stderr
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	a := &App{
		Storage: s,
		Config:  cfg,
		Logger:  logging.New(out, cfg.LogLevel),
	}
	// Sync fails on terminals and pipes; there is nothing useful to report.
	a.closers = append(a.closers, func() error {
		_ = a.Logger.Sync()
		return nil
	})

	backend, err := a.openBackend(ctx)
	if err != nil {
		return nil, err
	}
	a.Backend = backend

	adapter := favorites.NewAdapter(backend,
		favorites.WithLogger(a.Logger),
		favorites.WithCorruptHandler(func(raw string, err error) {
			a.Logger.Warn("stored favorites were unreadable and have been reset", "bytes", len(raw), "err", err)
		}),
	)
	a.Changes = favorites.NewBroadcaster()
	a.Favorites = favorites.NewRegistry(ctx, adapter,
		favorites.WithClock(now),
		favorites.WithRegistryLogger(a.Logger),
		favorites.WithBroadcaster(a.Changes),
	)
	unsubscribe := a.Favorites.Subscribe(func(favs []model.FavoriteTeam) {
		a.Logger.Debug("favorites changed", "count", len(favs))
	})
	a.closers = append(a.closers, func() error {
		unsubscribe()
		return nil
	})

	a.API = footballapi.NewClient(footballapi.Config{
		BaseURL:    cfg.APIBaseURL,
		APIKey:     cfg.APIKey,
		HTTPClient: opts.HTTPClient,
		Timeout:    cfg.RequestTimeout,
		MaxRetries: cfg.MaxRetries,
		MaxSeason:  cfg.MaxSeason,
		CacheTTL:   cfg.CacheTTL,
		Logger:     a.Logger.With("component", "footballapi"),
	})

	a.Sessions, err = session.NewManager(backend, session.Config{
		Username:     cfg.Username,
		PasswordHash: cfg.PasswordHash,
		Secret:       cfg.SessionSecret,
		TTL:          cfg.SessionTTL,
	}, session.WithLogger(a.Logger), session.WithClock(now))
	if err != nil {
		return nil, errors.Join(err, a.Close())
	}
	return a, nil
}

func (a *App) openBackend(ctx context.Context) (storage.Backend, error) {
	switch a.Config.Backend {
	case storage.BackendRedis:
		rb, err := storage.NewRedisBackend(ctx, storage.RedisOptions{
			Addr:     a.Config.RedisAddr,
			Password: a.Config.RedisPassword,
			DB:       a.Config.RedisDB,
			Prefix:   a.Config.RedisPrefix,
		})
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, rb.Close)
		return rb, nil
	case storage.BackendFile, "":
		return a.Storage, nil
	default:
		return nil, fmt.Errorf("unknown backend %q", a.Config.Backend)
	}
}

// RequireLogin returns the current session, or a LoginRequiredError naming
// action when nobody is signed in.
func (a *App) RequireLogin(ctx context.Context, action string) (*model.Session, error) {
	s, err := a.Sessions.Current(ctx)
	if errors.Is(err, session.ErrNotLoggedIn) {
		return nil, &cli.LoginRequiredError{Action: action}
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Close releases the backend connection and flushes the logger.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
