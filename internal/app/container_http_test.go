package app

import (
	"context"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"go.uber.org/dig"

	"storefront-drive/internal/config"
	"storefront-drive/internal/logx"
)

type httpServersIn struct {
	dig.In

	Main  *http.Server
	Pprof *http.Server `name:"pprof_server" optional:"true"`
}

func setupHTTPContainerWithCfg(t *testing.T, cfg *config.Config) *dig.Container {
	t.Helper()

	c := dig.New()

	require.NoError(t, c.Provide(func() context.Context { return context.Background() }))
	require.NoError(t, c.Provide(func() logx.Logger { return logx.Nop() }))
	require.NoError(t, c.Provide(func() *config.Config { return cfg }))
	require.NoError(t, c.Provide(func() *pgxpool.Pool { return &pgxpool.Pool{} }))

	require.NoError(t, registerService(c))
	require.NoError(t, registerHTTP(c))

	return c
}

func TestRegisterHTTP_NoPprofServerByDefault(t *testing.T) {
	t.Parallel()

	c := setupHTTPContainerWithCfg(t, testConfig())

	err := c.Invoke(func(in httpServersIn) {
		require.NotNil(t, in.Main)
		require.Nil(t, in.Pprof)
	})
	require.NoError(t, err)
}

func TestRegisterHTTP_PprofServerWhenConfigured(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.Pprof.Addr = "127.0.0.1:6060"

	c := setupHTTPContainerWithCfg(t, cfg)

	err := c.Invoke(func(in httpServersIn) {
		require.NotNil(t, in.Pprof)
		require.Equal(t, "127.0.0.1:6060", in.Pprof.Addr)
	})
	require.NoError(t, err)
}
