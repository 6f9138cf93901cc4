package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/beast/handler"
	"github.com/dmitrymomot/beast/modules/forms"
	"github.com/dmitrymomot/beast/pkg/config"
	"github.com/dmitrymomot/beast/pkg/form"
	"github.com/dmitrymomot/beast/pkg/httpserver"
	"github.com/dmitrymomot/beast/pkg/i18n"
	"github.com/dmitrymomot/beast/pkg/logger"
	"github.com/dmitrymomot/beast/pkg/pg"
	"github.com/dmitrymomot/beast/pkg/ratelimiter"
	"github.com/dmitrymomot/beast/pkg/redis"
	"github.com/dmitrymomot/beast/pkg/registry"
	"github.com/dmitrymomot/beast/pkg/requestid"
	"github.com/dmitrymomot/beast/pkg/validator"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	var cfg Config
	if err := config.Load(&cfg); err != nil {
		return err
	}
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	catalog, err := form.LoadCatalog(os.DirFS(cfg.FormsDir))
	if err != nil {
		return fmt.Errorf("load forms from %s: %w", cfg.FormsDir, err)
	}
	log.InfoContext(ctx, "forms loaded", slog.Any("forms", catalog.IDs()))

	translator, err := newTranslator(ctx, cfg, log)
	if err != nil {
		return err
	}

	reg := registry.New()
	var probes []httpserver.Probe

	if cfg.Redis.ConnectionURL != "" {
		client, err := redis.Connect(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		defer client.Close()
		if err := registerRedis(reg, client, cfg); err != nil {
			return err
		}
		probes = append(probes, redis.Healthcheck(client))
	}

	if cfg.PG.ConnectionString != "" {
		pool, err := pg.Connect(ctx, cfg.PG)
		if err != nil {
			return err
		}
		defer pool.Close()
		if err := pg.Migrate(ctx, pool, cfg.PG, log); err != nil {
			return err
		}
		if err := registerPG(reg, pool, cfg); err != nil {
			return err
		}
		probes = append(probes, pg.Healthcheck(pool))
	}

	errorHandler := handler.NewErrorHandler(log)
	formOpts := []forms.Option{
		forms.WithLogger(log),
		forms.WithErrorHandler(errorHandler),
		forms.WithSummaryTarget(cfg.SummaryTarget),
	}
	if cfg.RateLimitEnabled {
		store := ratelimiter.NewMemoryStore()
		defer store.Close()
		limit, err := newRateLimit(store, cfg.RateLimit, errorHandler, log)
		if err != nil {
			return err
		}
		formOpts = append(formOpts, forms.WithValidationMiddleware(limit))
	}

	r := chi.NewRouter()
	r.Use(requestid.Middleware, middleware.Recoverer, middleware.CleanPath)
	r.Get("/health/live", httpserver.HealthCheckHandler(log))
	r.Get("/health/ready", httpserver.HealthCheckHandler(log, probes...))
	r.Mount("/", forms.Router(forms.RouterOptions{
		Forms:      forms.NewService(catalog, reg, translator, formOpts...),
		Locales:    forms.NewLocales(translator, errorHandler),
		Middleware: []func(http.Handler) http.Handler{translator.Middleware(nil)},
	}))

	srv := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log))
	return srv.Run(ctx, r)
}

func newLogger(cfg Config) (*slog.Logger, error) {
	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	format := logger.Format(cfg.LogFormat)
	if format != logger.FormatJSON && format != logger.FormatText {
		return nil, fmt.Errorf("invalid log format %q", cfg.LogFormat)
	}
	return logger.New(
		logger.WithEnvironment(cfg.Env, "beastd"),
		logger.WithLevel(level),
		logger.WithFormat(format),
		logger.WithContextExtractors(requestid.LoggerExtractor()),
	), nil
}

func newTranslator(ctx context.Context, cfg Config, log *slog.Logger) (*i18n.Translator, error) {
	adapters := i18n.MultiAdapter{
		i18n.NewFSAdapter(validator.Locales, validator.LocalesDir, i18n.NewYAMLParser()),
	}
	if cfg.LocalesDir != "" {
		adapters = append(adapters, i18n.NewFSAdapter(os.DirFS(cfg.LocalesDir), ".", i18n.NewYAMLParser()))
	}
	t, err := i18n.NewTranslator(ctx, adapters,
		i18n.WithDefaultLanguage(cfg.DefaultLanguage),
		i18n.WithLogger(log),
		i18n.WithMissingTranslationsLogging(true),
	)
	if err != nil {
		return nil, fmt.Errorf("load messages: %w", err)
	}
	if !t.HasLanguage(cfg.DefaultLanguage) {
		return nil, &i18n.LanguageNotSupportedError{Lang: cfg.DefaultLanguage}
	}
	return t, nil
}

// newRateLimit limits validation requests per client and form. Denials are
// rendered by the API error handler as 429.
func newRateLimit(store ratelimiter.Store, cfg ratelimiter.Config, onError handler.ErrorHandler, log *slog.Logger) (func(http.Handler) http.Handler, error) {
	bucket, err := ratelimiter.NewBucket(store, cfg)
	if err != nil {
		return nil, err
	}
	return ratelimiter.Middleware(bucket,
		ratelimiter.Composite(ratelimiter.ClientIP, ratelimiter.URLParam("form")),
		ratelimiter.WithLogger(log),
		ratelimiter.WithErrorFunc(func(w http.ResponseWriter, r *http.Request, err error) {
			onError(handler.NewContext(w, r), errors.Join(handler.ErrTooManyRequests, err))
		}),
	), nil
}

const (
	takenMessage   = "This value is already taken"
	unknownMessage = "This value is not recognized"
)

func registerRedis(reg *registry.Registry, client redis.SetChecker, cfg Config) error {
	var errs []error
	for name, set := range cfg.RedisUnique {
		errs = append(errs, reg.Register(name, redis.Unique(client, cfg.Redis.KeyPrefix+set, takenMessage)))
	}
	for name, set := range cfg.RedisMember {
		errs = append(errs, reg.Register(name, redis.Member(client, cfg.Redis.KeyPrefix+set, unknownMessage)))
	}
	return errors.Join(errs...)
}

func registerPG(reg *registry.Registry, db pg.Querier, cfg Config) error {
	var errs []error
	for name, kind := range cfg.PGUnique {
		errs = append(errs, reg.Register(name, pg.Unique(db, kind, takenMessage)))
	}
	for name, kind := range cfg.PGExists {
		errs = append(errs, reg.Register(name, pg.Exists(db, kind, unknownMessage)))
	}
	return errors.Join(errs...)
}
