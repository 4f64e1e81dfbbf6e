package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/shopgate/internal/api"
	"github.com/dmitrymomot/shopgate/internal/auth"
	"github.com/dmitrymomot/shopgate/internal/catalog"
	"github.com/dmitrymomot/shopgate/internal/storage/pgstore"
	"github.com/dmitrymomot/shopgate/pkg/config"
	"github.com/dmitrymomot/shopgate/pkg/httpserver"
	"github.com/dmitrymomot/shopgate/pkg/jwt"
	"github.com/dmitrymomot/shopgate/pkg/logger"
	"github.com/dmitrymomot/shopgate/pkg/pg"
	"github.com/dmitrymomot/shopgate/pkg/redis"
	"github.com/dmitrymomot/shopgate/pkg/totp"
)

type appConfig struct {
	Name string `env:"APP_NAME" envDefault:"shopgate"`
	Env  string `env:"APP_ENV" envDefault:"development"`
}

func main() {
	ctx := context.Background()

	var appCfg appConfig
	config.MustLoad(&appCfg)

	log := logger.New(logger.WithEnvironment(appCfg.Env, appCfg.Name))

	if err := run(ctx, appCfg, log); err != nil {
		log.ErrorContext(ctx, "server exited with error", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, appCfg appConfig, log *slog.Logger) error {
	var (
		authCfg  auth.Config
		pgCfg    pg.Config
		redisCfg redis.Config
		httpCfg  httpserver.Config
	)
	config.MustLoad(&authCfg)
	config.MustLoad(&pgCfg)
	config.MustLoad(&redisCfg)
	config.MustLoad(&httpCfg)

	pool, err := pg.Connect(ctx, pgCfg)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := pg.Migrate(ctx, pool, pgCfg, log); err != nil {
		return err
	}

	tokens, err := jwt.New([]byte(authCfg.SigningKey))
	if err != nil {
		return err
	}

	encKey, err := totp.DecodeEncryptionKey(authCfg.SecretEncryptionKey)
	if err != nil {
		return err
	}

	healthchecks := []func(context.Context) error{pg.Healthcheck(pool)}

	var guard auth.ReplayGuard = auth.NewMemoryGuard()
	if redisCfg.Enabled() {
		client, err := redis.Connect(ctx, redisCfg)
		if err != nil {
			return err
		}
		defer client.Close()
		guard = auth.NewRedisGuard(client)
		healthchecks = append(healthchecks, redis.Healthcheck(client))
	}

	store := pgstore.New(pool)

	authSvc := auth.NewService(store, tokens, guard, encKey,
		auth.WithLogger(log),
		auth.WithIssuer(authCfg.Issuer),
		auth.WithTokenTTL(authCfg.TokenTTL),
		auth.WithQRCodeSize(authCfg.QRCodeSize),
	)
	catalogSvc := catalog.NewService(store, catalog.WithLogger(log))

	router := newRouter(log, tokens, authSvc, catalogSvc, healthchecks)

	srv := httpserver.NewFromConfig(httpCfg,
		httpserver.WithLogger(log),
		httpserver.WithStartHook(func(l *slog.Logger) {
			l.Info("server listening", slog.String("addr", httpCfg.Addr))
		}),
		httpserver.WithStopHook(func(l *slog.Logger) {
			l.Info("server stopped")
		}),
	)

	return srv.Run(ctx, router)
}

func newRouter(
	log *slog.Logger,
	tokens *jwt.Service,
	authSvc *auth.Service,
	catalogSvc *catalog.Service,
	healthchecks []func(context.Context) error,
) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID, chimw.RealIP, chimw.Recoverer)

	auth.NewHandler(authSvc, log).Register(r)

	requireToken := jwt.Middleware(jwt.MiddlewareConfig{
		Service:       tokens,
		Extractor:     jwt.AuthHeaderExtractor,
		ErrorHandler:  tokenError,
		ClaimsFactory: func() any { return &jwt.StandardClaims{} },
	})

	r.Route("/products", func(r chi.Router) {
		r.Use(requireToken)
		catalog.NewHandler(catalogSvc, log).Register(r)
	})

	r.Get("/health", httpserver.HealthCheckHandler(log, healthchecks...))

	return r
}

// tokenError keeps expiry distinguishable from every other token failure.
func tokenError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, jwt.ErrExpiredToken) {
		api.Error(w, http.StatusUnauthorized, "token expired")
		return
	}
	api.Error(w, http.StatusUnauthorized, "invalid token")
}
