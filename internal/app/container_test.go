package app

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"go.uber.org/dig"

	"storefront-drive/internal/apilog"
	"storefront-drive/internal/config"
	"storefront-drive/internal/domain"
	"storefront-drive/internal/gateway/wolt"
	"storefront-drive/internal/http/handlers"
	"storefront-drive/internal/logx"
	"storefront-drive/internal/metrics"
	"storefront-drive/internal/repository"
	"storefront-drive/internal/service/checkout"
	"storefront-drive/internal/transport/kafka"
	"storefront-drive/internal/webhook"
)

func testCheckoutService(t *testing.T) *checkout.Service {
	t.Helper()

	sched, err := domain.ParseVenueSchedule("08:00", "22:00")
	require.NoError(t, err)

	client := wolt.NewClient(wolt.Config{Development: true}, nil, nil)
	neg := wolt.NewNegotiator(client, logx.Nop(), metrics.NewNegotiationRetriesTotal())
	repo := repository.NewDeliveryRepo(&pgxpool.Pool{})
	return checkout.NewService(neg, client, repo, sched, time.UTC, time.Hour, logx.Nop())
}

func testConfig() *config.Config {
	return &config.Config{
		Port: 8080,
		Wolt: config.Wolt{
			APIToken:    "test-token",
			MerchantID:  "merchant-1",
			VenueID:     "venue-1",
			Development: true,
		},
		Venue: config.Venue{
			OpenTime:    "08:00",
			CloseTime:   "22:00",
			Timezone:    "UTC",
			PrepMinutes: 60,
		},
	}
}

func setupTestContainer(t *testing.T) *dig.Container {
	t.Helper()

	c := dig.New()

	providers := []struct {
		name     string
		provider any
	}{
		{"context", func() context.Context { return context.Background() }},
		{"logger", func() logx.Logger { return logx.Nop() }},
		{"config", func() *config.Config { return testConfig() }},
		{"pgxpool", func() *pgxpool.Pool { return &pgxpool.Pool{} }},
	}

	for _, p := range providers {
		err := c.Provide(p.provider)
		require.NoErrorf(t, err, "provide %s", p.name)
	}

	require.NoError(t, registerService(c))
	require.NoError(t, registerHTTP(c))

	return c
}

func verifyServer(t *testing.T, srv *http.Server) {
	t.Helper()

	require.NotNil(t, srv, "http.Server is nil")
	require.Equal(t, ":8080", srv.Addr)
	require.Greater(t, srv.ReadHeaderTimeout, time.Duration(0))
	require.Greater(t, srv.ReadTimeout, time.Duration(0))
	require.Greater(t, srv.WriteTimeout, time.Duration(0))
	require.Greater(t, srv.IdleTimeout, time.Duration(0))
}

func TestRegisterServiceAndHTTP_ProvidesHttpServerAndHandlers(t *testing.T) {
	t.Parallel()

	c := setupTestContainer(t)

	err := c.Invoke(func(
		srv *http.Server,
		base *handlers.Handlers,
		checkoutHandler *handlers.CheckoutHandler,
		webhookHandler *handlers.WebhookHandler,
		logsHandler *handlers.LogsHandler,
	) {
		verifyServer(t, srv)
		require.NotNil(t, base)
		require.NotNil(t, checkoutHandler)
		require.NotNil(t, webhookHandler)
		require.NotNil(t, logsHandler)
	})
	require.NoError(t, err)
}

func TestRegisterService_ProvidesCheckoutAndWebhook(t *testing.T) {
	t.Parallel()

	c := setupTestContainer(t)

	err := c.Invoke(func(svc *checkout.Service, p *webhook.Processor, sink apilog.Sink) {
		require.NotNil(t, svc)
		require.NotNil(t, p)
		require.NotNil(t, sink)
	})
	require.NoError(t, err)
}

func TestNewAPILogSink_MemoryWhenRedisUnconfigured(t *testing.T) {
	t.Parallel()

	sink := newAPILogSink(testConfig())
	require.IsType(t, &apilog.MemorySink{}, sink)
}

func TestNewAPILogSink_RedisWhenConfigured(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.Redis.Addr = "127.0.0.1:6379"

	sink := newAPILogSink(cfg)
	require.IsType(t, &apilog.RedisSink{}, sink)
}

func TestNewCheckoutService_RejectsBadVenueHours(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.Venue.OpenTime = "25:00"

	_, err := newCheckoutService(cfg, nil, nil, nil, logx.Nop())
	require.Error(t, err)
	require.Contains(t, err.Error(), "venue hours")
}

func TestNewCheckoutService_RejectsBadTimezone(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.Venue.Timezone = "Mars/Olympus"

	_, err := newCheckoutService(cfg, nil, nil, nil, logx.Nop())
	require.Error(t, err)
	require.Contains(t, err.Error(), "venue timezone")
}

func TestProvideAll_Success(t *testing.T) {
	t.Parallel()

	c := dig.New()

	err := provideAll(c,
		func() context.Context { return context.Background() },
		func() time.Duration { return 3 * time.Second },
	)
	require.NoError(t, err)

	err = c.Invoke(func(ctx context.Context, d time.Duration) {
		require.NotNil(t, ctx)
		require.Equal(t, 3*time.Second, d)
	})
	require.NoError(t, err)
}

func TestProvideAll_InvalidProvider(t *testing.T) {
	t.Parallel()

	c := dig.New()

	type bad struct{}
	err := provideAll(c, bad{})
	require.Error(t, err)
}

func TestRegisterCore_ProvidesContextAndLogger(t *testing.T) {
	t.Parallel()

	c := dig.New()
	ctx := context.Background()

	err := registerCore(c, ctx)
	require.NoError(t, err)

	err = c.Invoke(func(gotCtx context.Context, logger logx.Logger) {
		require.Equal(t, ctx, gotCtx)
		require.NotNil(t, logger)
	})
	require.NoError(t, err)
}

func TestRegisterDb_UsesDbConnectAndProvidesPool(t *testing.T) {
	t.Parallel()

	c := dig.New()
	ctx := context.Background()

	cfg := testConfig()
	cfg.DB = config.DB{
		Host: "localhost",
		Port: "5432",
		User: "user",
		Pass: "pass",
		Name: "db",
	}

	require.NoError(t, c.Provide(func() context.Context { return ctx }))
	require.NoError(t, c.Provide(func() *config.Config { return cfg }))

	stubPool := &pgxpool.Pool{}

	stubConnect := func(
		gotCtx context.Context,
		dsn string,
		retries int,
		delay time.Duration,
	) (*pgxpool.Pool, error) {
		require.Equal(t, ctx, gotCtx)
		require.Equal(t, cfg.DB.DSN(), dsn)
		require.Equal(t, 10, retries)
		require.Equal(t, time.Second, delay)
		return stubPool, nil
	}

	err := registerDb(c, stubConnect)
	require.NoError(t, err)

	err = c.Invoke(func(pool *pgxpool.Pool) {
		require.Equal(t, stubPool, pool)
	})
	require.NoError(t, err)
}

func TestContainerBuilder_Build_Success(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	builder := NewContainerBuilder().
		WithDBConnect(func(context.Context, string, int, time.Duration) (*pgxpool.Pool, error) {
			return &pgxpool.Pool{}, nil
		})

	c, err := builder.build(ctx)
	require.NoError(t, err)
	require.NotNil(t, c)
}

func TestContainerBuilder_MustBuild_NoFatalOnSuccess(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	builder := NewContainerBuilder().
		WithDBConnect(func(context.Context, string, int, time.Duration) (*pgxpool.Pool, error) {
			return &pgxpool.Pool{}, nil
		}).
		WithLogFatalf(func(format string, args ...interface{}) {
			require.FailNowf(t, "logFatalf must not be called", format, args...)
		})

	c := builder.MustBuild(ctx)
	require.NotNil(t, c)
}

func TestContainerBuilder_BuildWorker_Success(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	builder := NewContainerBuilder().
		WithDBConnect(func(context.Context, string, int, time.Duration) (*pgxpool.Pool, error) {
			return &pgxpool.Pool{}, nil
		})

	c, err := builder.buildWorker(ctx)
	require.NoError(t, err)
	require.NotNil(t, c)
}

func TestRegisterKafka_NilConsumerWhenUnconfigured(t *testing.T) {
	t.Parallel()

	c := dig.New()

	require.NoError(t, c.Provide(func() logx.Logger { return logx.Nop() }))
	require.NoError(t, c.Provide(func() *config.Config { return testConfig() }))
	require.NoError(t, c.Provide(func() *checkout.Service { return testCheckoutService(t) }))

	require.NoError(t, registerKafka(c))

	invoked := false
	err := c.Invoke(func(consumer *kafka.Consumer) {
		invoked = true
		require.Nil(t, consumer)
	})
	require.NoError(t, err)
	require.True(t, invoked)
}

func TestProvideAll_WrapsProviderError(t *testing.T) {
	t.Parallel()

	c := dig.New()
	require.NoError(t, c.Provide(func() int { return 1 }))

	err := provideAll(c, func() int { return 2 })
	require.Error(t, err)
	require.Contains(t, err.Error(), fmt.Sprintf("provide %T", func() int { return 2 }))
}
