package crystalplan

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/magabrotheeeer/crystal-plan/internal/cache"
	"github.com/magabrotheeeer/crystal-plan/internal/config"
	"github.com/magabrotheeeer/crystal-plan/internal/lib/jwt"
	"github.com/magabrotheeeer/crystal-plan/internal/migrations"
	eventservice "github.com/magabrotheeeer/crystal-plan/internal/services/event"
	notificationservice "github.com/magabrotheeeer/crystal-plan/internal/services/notification"
	userservice "github.com/magabrotheeeer/crystal-plan/internal/services/user"
	"github.com/magabrotheeeer/crystal-plan/internal/storage/repository"
)

type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	cache  cache.Cache
}

func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, "./migrations"); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	jwtMaker := jwt.NewMaker(cfg.JWTSecretKey, cfg.TokenTTL)

	eventService := eventservice.NewEventService(db, cacheRedis, logger)
	userService := userservice.NewUserService(db, db, jwtMaker, logger)
	notificationService := notificationservice.NewNotificationService(db, logger)

	router := chi.NewRouter()

	RegisterRoutes(router, logger, jwtMaker, eventService, userService, notificationService)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		cache:  *cacheRedis,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.db.DB.Close()
		return err
	}
}
