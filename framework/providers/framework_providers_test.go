package providers_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/km-arc/go-servicemanager/framework/config"
	"github.com/km-arc/go-servicemanager/framework/container"
	"github.com/km-arc/go-servicemanager/framework/metrics"
	"github.com/km-arc/go-servicemanager/framework/providers"
	"github.com/km-arc/go-servicemanager/framework/routing"
)

func TestMetricsRegistrar_Deferred(t *testing.T) {
	c := container.New(nil)
	regs := container.NewRegistrars(c)
	require.NoError(t, regs.Register(&providers.MetricsRegistrar{Namespace: "ns"}))

	assert.True(t, c.Has(providers.MetricsService))

	m1, err := container.Resolve[*metrics.Collector](c, providers.MetricsService)
	require.NoError(t, err)
	m2, err := container.Resolve[*metrics.Collector](c, providers.MetricsService)
	require.NoError(t, err)
	assert.Same(t, m1, m2)
}

func TestRoutingRegistrar_MissingLoggerPropagates(t *testing.T) {
	c := container.New(nil)
	regs := container.NewRegistrars(c)
	require.NoError(t, regs.Register(&providers.RoutingRegistrar{}))

	_, err := c.Get(providers.RouterService)
	require.ErrorIs(t, err, container.ErrDependencyNotFound)
	name, _ := container.MissingService(err)
	assert.Equal(t, providers.LoggerService, name)

	// nothing was cached, so binding the logger fixes the next attempt
	cfg := &config.Config{}
	require.NoError(t, regs.Register(&providers.ConfigRegistrar{Config: cfg}))
	require.NoError(t, regs.Register(&providers.LoggerRegistrar{Logger: zap.NewNop()}))

	r, err := container.Resolve[*routing.Router](c, providers.RouterService)
	require.NoError(t, err)
	assert.NotNil(t, r)
}

func TestConfigRegistrar_NilConfig(t *testing.T) {
	c := container.New(nil)
	regs := container.NewRegistrars(c)
	require.NoError(t, regs.Register(&providers.ConfigRegistrar{}))

	var fresh *config.Config
	require.NotPanics(t, func() {
		var err error
		fresh, err = container.Resolve[*config.Config](c, providers.FreshConfigService)
		require.NoError(t, err)
	})
	assert.Nil(t, fresh)
}
