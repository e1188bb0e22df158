// Package app assembles the server from configuration and runs it until
// the context is cancelled.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/gigcircle/gigcircle/internal/api"
	"github.com/gigcircle/gigcircle/internal/api/handler"
	"github.com/gigcircle/gigcircle/internal/core/service"
	"github.com/gigcircle/gigcircle/internal/infrastructure/config"
	redisstore "github.com/gigcircle/gigcircle/internal/infrastructure/db/redis"
	"github.com/gigcircle/gigcircle/internal/infrastructure/http/handlers"
)

const shutdownTimeout = 10 * time.Second

type closer struct {
	name string
	fn   func(context.Context) error
}

type App struct {
	cfg   *config.Config
	log   zerolog.Logger
	retry retryPolicy

	server    *echo.Echo
	readiness map[string]handlers.Pinger
	closers   []closer
}

// New connects every dependency and builds the router. On failure the
// connections opened so far are closed again.
func New(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*App, error) {
	return newApp(ctx, cfg, log, defaultRetryPolicy)
}

func newApp(ctx context.Context, cfg *config.Config, log zerolog.Logger, policy retryPolicy) (*App, error) {
	a := &App{
		cfg:       cfg,
		log:       log,
		retry:     policy,
		readiness: make(map[string]handlers.Pinger),
	}
	if err := a.build(ctx); err != nil {
		if cerr := a.Close(context.Background()); cerr != nil {
			log.Warn().Err(cerr).Msg("teardown after failed start")
		}
		return nil, err
	}
	return a, nil
}

func (a *App) build(ctx context.Context) error {
	repos, err := a.openStore(ctx)
	if err != nil {
		return err
	}
	rdb, err := a.openRedis(ctx)
	if err != nil {
		return err
	}
	media, uploadDir, err := a.openMedia(ctx)
	if err != nil {
		return err
	}

	hasher := service.NewBcryptHasher(service.DefaultBcryptCost)
	sessions := service.NewSessionService(repos.users, redisstore.NewSessionStore(rdb), a.cfg.Secret, a.cfg.SessionTTL, a.log)

	e, err := api.NewRouter(api.Deps{
		Auth:      service.NewAuthService(repos.users, hasher, media, a.log),
		Sessions:  sessions,
		Profiles:  service.NewProfileService(repos.bands, repos.events, a.log),
		Catalog:   service.NewCatalogService(repos.artists, repos.bands, repos.events, a.log),
		Media:     media,
		Readiness: a.readiness,
		Cookie: handler.CookieConfig{
			Name:   handler.DefaultCookieName,
			Secure: a.cfg.SecureCookies,
			MaxAge: a.cfg.SessionTTL,
		},
		MaxUploadMB: a.cfg.Media.MaxUploadMB,
		UploadDir:   uploadDir,
		Log:         a.log,
	})
	if err != nil {
		return err
	}
	a.server = e
	return nil
}

func (a *App) onClose(name string, fn func(context.Context) error) {
	a.closers = append(a.closers, closer{name: name, fn: fn})
}

// Run serves HTTP until ctx is done, then shuts the server down and closes
// every dependency.
func (a *App) Run(ctx context.Context) error {
	served := make(chan error, 1)
	go func() {
		a.log.Info().Str("port", a.cfg.Port).Str("store", a.cfg.StoreDriver).Msg("server listening")
		served <- a.server.Start(":" + a.cfg.Port)
	}()

	select {
	case err := <-served:
		cerr := a.Close(context.Background())
		return errors.Join(fmt.Errorf("http server: %w", err), cerr)
	case <-ctx.Done():
	}

	a.log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	var errs []error
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		errs = append(errs, fmt.Errorf("http shutdown: %w", err))
	}
	if err := <-served; err != nil && !errors.Is(err, http.ErrServerClosed) {
		errs = append(errs, fmt.Errorf("http server: %w", err))
	}
	if err := a.Close(shutdownCtx); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Close releases dependencies in reverse order of opening.
func (a *App) Close(ctx context.Context) error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		c := a.closers[i]
		if err := c.fn(ctx); err != nil {
			errs = append(errs, fmt.Errorf("close %s: %w", c.name, err))
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
