package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	goredis "github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"storefront-drive/internal/apilog"
	"storefront-drive/internal/config"
	"storefront-drive/internal/domain"
	"storefront-drive/internal/gateway/wolt"
	"storefront-drive/internal/http/handlers"
	"storefront-drive/internal/http/pprofserver"
	"storefront-drive/internal/http/router"
	"storefront-drive/internal/logx"
	"storefront-drive/internal/metrics"
	"storefront-drive/internal/repository"
	"storefront-drive/internal/service/checkout"
	"storefront-drive/internal/webhook"
)

// ContainerBuilder is a dig container builder.
type ContainerBuilder struct {
	dbConnect func(context.Context, string, int, time.Duration) (*pgxpool.Pool, error)
	logFatalf func(string, ...interface{})
}

// NewContainerBuilder returns a new dig container builder
func NewContainerBuilder() *ContainerBuilder {
	return &ContainerBuilder{
		dbConnect: connectDbWithRetry,
		logFatalf: log.Fatalf,
	}
}

// WithDBConnect sets the database connection function
func (b *ContainerBuilder) WithDBConnect(
	fn func(context.Context, string, int, time.Duration) (*pgxpool.Pool, error),
) *ContainerBuilder {
	if fn != nil {
		b.dbConnect = fn
	}
	return b
}

// WithLogFatalf sets the log.Fatalf function
func (b *ContainerBuilder) WithLogFatalf(fn func(string, ...interface{})) *ContainerBuilder {
	if fn != nil {
		b.logFatalf = fn
	}
	return b
}

// MustBuild builds and returns the API server container
func (b *ContainerBuilder) MustBuild(ctx context.Context) *dig.Container {
	container, err := b.build(ctx)
	if err != nil {
		b.logFatalf("failed to build container: %v", err)
	}
	return container
}

func (b *ContainerBuilder) build(ctx context.Context) (*dig.Container, error) {
	container := dig.New()

	if err := registerCore(container, ctx); err != nil {
		return nil, fmt.Errorf("core: %w", err)
	}
	if err := registerDb(container, b.dbConnect); err != nil {
		return nil, fmt.Errorf("DB: %w", err)
	}
	if err := registerService(container); err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}
	if err := registerHTTP(container); err != nil {
		return nil, fmt.Errorf("http: %w", err)
	}
	return container, nil
}

// MustBuildContainer builds and returns the API server container
func MustBuildContainer(ctx context.Context) *dig.Container {
	return NewContainerBuilder().MustBuild(ctx)
}

func provideAll(container *dig.Container, providers ...any) error {
	for _, provider := range providers {
		if err := container.Provide(provider); err != nil {
			return fmt.Errorf("provide %T: %w", provider, err)
		}
	}
	return nil
}

func registerCore(container *dig.Container, ctx context.Context) error {
	return provideAll(container,
		func() context.Context { return ctx },
		NewLogger,
		config.Load,
	)
}

func registerDb(
	container *dig.Container,
	dbConnect func(context.Context, string, int, time.Duration) (*pgxpool.Pool, error),
) error {
	providerDB := func(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
		return dbConnect(ctx, cfg.DB.DSN(), 10, time.Second)
	}
	return provideAll(container, providerDB)
}

func registerService(container *dig.Container) error {
	return provideAll(container,
		repository.NewDeliveryRepo,
		repository.NewWebhookRepo,
		newAPILogSink,
		newWoltClient,
		newNegotiator,
		newCheckoutService,
		newWebhookProcessor,
	)
}

func registerHTTP(container *dig.Container) error {
	serverProvider := func(cfg *config.Config, mux http.Handler) *http.Server {
		return &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Port),
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      15 * time.Second,
			IdleTimeout:       60 * time.Second,
		}
	}
	if err := provideAll(container,
		handlers.New,
		newCheckoutHandler,
		newWebhookHandler,
		newLogsHandler,
		newRouter,
		serverProvider,
	); err != nil {
		return err
	}
	if err := container.Provide(newPprofServer, dig.Name("pprof_server")); err != nil {
		return fmt.Errorf("provide pprof server: %w", err)
	}
	return nil
}

// newPprofServer returns nil when no debug listener address is configured.
func newPprofServer(cfg *config.Config) *http.Server {
	if cfg.Pprof.Addr == "" {
		return nil
	}
	return &http.Server{
		Addr: cfg.Pprof.Addr,
		Handler: pprofserver.Handler(pprofserver.Config{
			User: cfg.Pprof.User,
			Pass: cfg.Pprof.Pass,
		}),
		ReadHeaderTimeout: 5 * time.Second,
	}
}

// newAPILogSink picks Redis when an address is configured, an in-process
// ring buffer otherwise.
func newAPILogSink(cfg *config.Config) apilog.Sink {
	if cfg.Redis.Addr == "" {
		return apilog.NewMemorySink()
	}
	client := goredis.NewClient(&goredis.Options{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	return apilog.NewRedisSink(client)
}

func newWoltClient(cfg *config.Config, sink apilog.Sink, logger logx.Logger) *wolt.Client {
	return wolt.NewClient(wolt.Config{
		APIToken:    cfg.Wolt.APIToken,
		MerchantID:  cfg.Wolt.MerchantID,
		VenueID:     cfg.Wolt.VenueID,
		Development: cfg.Wolt.Development,
	}, sink, logger)
}

func newNegotiator(client *wolt.Client, logger logx.Logger) *wolt.Negotiator {
	return wolt.NewNegotiator(client, logger, registerCounter(metrics.NewNegotiationRetriesTotal()))
}

func newCheckoutService(
	cfg *config.Config,
	negotiator *wolt.Negotiator,
	client *wolt.Client,
	repo *repository.DeliveryRepo,
	logger logx.Logger,
) (*checkout.Service, error) {
	sched, err := domain.ParseVenueSchedule(cfg.Venue.OpenTime, cfg.Venue.CloseTime)
	if err != nil {
		return nil, fmt.Errorf("venue hours: %w", err)
	}
	loc, err := domain.LoadLocation(cfg.Venue.Timezone)
	if err != nil {
		return nil, fmt.Errorf("venue timezone: %w", err)
	}
	prep := time.Duration(cfg.Venue.PrepMinutes) * time.Minute
	return checkout.NewService(negotiator, client, repo, sched, loc, prep, logger), nil
}

func newWebhookProcessor(
	deliveries *repository.DeliveryRepo,
	events *repository.WebhookRepo,
	logger logx.Logger,
) *webhook.Processor {
	return webhook.NewProcessor(deliveries, events, logger, registerCounter(metrics.NewWebhookEventsTotal()))
}

func newCheckoutHandler(logger logx.Logger, svc *checkout.Service) *handlers.CheckoutHandler {
	return handlers.NewCheckoutHandler(logger, handlers.NewCheckoutUsecase(svc))
}

func newWebhookHandler(
	logger logx.Logger,
	p *webhook.Processor,
	events *repository.WebhookRepo,
	cfg *config.Config,
) *handlers.WebhookHandler {
	return handlers.NewWebhookHandler(logger, handlers.NewWebhookProcessor(p), events, cfg.Wolt.WebhookSecret)
}

func newLogsHandler(logger logx.Logger, sink apilog.Sink) *handlers.LogsHandler {
	return handlers.NewLogsHandler(logger, sink)
}

func newRouter(
	base *handlers.Handlers,
	checkoutH *handlers.CheckoutHandler,
	webhookH *handlers.WebhookHandler,
	logsH *handlers.LogsHandler,
	logger logx.Logger,
) http.Handler {
	return router.New(router.Deps{
		Base:     base,
		Checkout: checkoutH,
		Webhook:  webhookH,
		Logs:     logsH,
		Logger:   logger,
	})
}

// registerCounter registers the counter with the default registry, reusing
// the existing collector when the container is built more than once.
func registerCounter(c prometheus.Counter) prometheus.Counter {
	if err := prometheus.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			return are.ExistingCollector.(prometheus.Counter)
		}
	}
	return c
}
