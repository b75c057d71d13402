package listener

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"

	"github.com/dep2p/go-chanlistener/config"
	"github.com/dep2p/go-chanlistener/internal/core/resolver"
	"github.com/dep2p/go-chanlistener/pkg/types"
)

// ============================================================================
// Fx 模块测试
// ============================================================================

// TestModule_OpenOnStart 测试启动时打开、停止时释放
func TestModule_OpenOnStart(t *testing.T) {
	cfg := config.NewConfig()
	cfg.URL = loopback4
	cfg.Listen.Backlog = 8
	reg := prometheus.NewRegistry()

	var (
		l *Listener
		m *Metrics
	)
	app := fxtest.New(t,
		fx.Supply(cfg),
		fx.Provide(func() prometheus.Registerer { return reg }),
		Module,
		fx.Populate(&l, &m),
	)
	app.RequireStart()

	require.NotNil(t, l)
	require.NotNil(t, m)
	state, err := l.State()
	require.NoError(t, err)
	assert.Equal(t, types.StateOpen, state)

	backlog, err := l.Backlog()
	require.NoError(t, err)
	assert.Equal(t, uint32(8), backlog)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.OpenSockets))

	app.RequireStop()

	_, err = l.State()
	assert.ErrorIs(t, err, types.ErrInvalidArgument)
	assert.Equal(t, 0.0, testutil.ToFloat64(m.Listeners))
}

// TestModule_NoConfig 测试没有配置时只创建不打开
func TestModule_NoConfig(t *testing.T) {
	var l *Listener
	app := fxtest.New(t, Module, fx.Populate(&l))
	defer app.RequireStart().RequireStop()

	state, err := l.State()
	require.NoError(t, err)
	assert.Equal(t, types.StateCreated, state)
}

// TestModule_MetricsDisabled 测试关闭指标
func TestModule_MetricsDisabled(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Metrics.Enabled = false

	var m *Metrics
	app := fxtest.New(t, fx.Supply(cfg), Module, fx.Populate(&m))
	defer app.RequireStart().RequireStop()

	assert.Nil(t, m)
}

// TestModule_InjectedLookup 测试注入的解析后端优先于配置
func TestModule_InjectedLookup(t *testing.T) {
	cfg := config.NewConfig()
	cfg.URL = "net.tcp://svc.test:0/"
	stub := &stubLookup{cands: candidates("127.0.0.1")}

	var l *Listener
	app := fxtest.New(t,
		fx.Supply(cfg),
		fx.Provide(func() resolver.Lookup { return stub }),
		Module,
		fx.Populate(&l),
	)
	defer app.RequireStart().RequireStop()

	assert.Equal(t, int32(1), stub.calls.Load())
	addr, err := l.Addr()
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1", addr.Addr().String())
}

// TestModule_OpenFailure 测试打开失败时启动失败
func TestModule_OpenFailure(t *testing.T) {
	cfg := config.NewConfig()
	cfg.URL = "ftp://127.0.0.1/"

	var l *Listener
	app := fxtest.New(t, fx.Supply(cfg), Module, fx.Populate(&l))
	t.Cleanup(l.Free)

	err := app.Start(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported scheme")

	state, err := l.State()
	require.NoError(t, err)
	assert.Equal(t, types.StateCreated, state)
}

// ============================================================================
// 配置转换
// ============================================================================

// TestFromConfig 测试按配置创建
func TestFromConfig(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Listen.IPVersion = "ipv4"
	cfg.Listen.DisallowedUserAgents = []string{"curl"}

	l, err := FromConfig(cfg)
	require.NoError(t, err)
	defer l.Free()

	v, err := l.IPVersion()
	require.NoError(t, err)
	assert.Equal(t, types.IPVersion4, v)

	uas, err := l.DisallowedUserAgents()
	require.NoError(t, err)
	assert.Equal(t, []string{"curl"}, uas)
}

// TestFromConfig_Invalid 测试非法配置
func TestFromConfig_Invalid(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Listen.IPVersion = "ipv7"
	_, err := FromConfig(cfg)
	assert.Error(t, err)

	cfg = config.NewConfig()
	cfg.Binding = "udp"
	_, err = FromConfig(cfg)
	assert.ErrorIs(t, err, types.ErrNotImplemented)

	cfg = config.NewConfig()
	cfg.Listen.MaxPropertyBytes = 2
	cfg.Listen.DisallowedUserAgents = []string{"much-too-long"}
	_, err = FromConfig(cfg)
	assert.ErrorIs(t, err, types.ErrOutOfMemory)
}

// TestNewLookup 测试解析后端选择
func TestNewLookup(t *testing.T) {
	lookup, err := NewLookup(config.DefaultResolverConfig())
	require.NoError(t, err)
	assert.IsType(t, &resolver.System{}, lookup)

	lookup, err = NewLookup(config.ResolverConfig{Mode: config.ResolverDNS, Server: "127.0.0.1:53"})
	require.NoError(t, err)
	assert.IsType(t, &resolver.DNSClient{}, lookup)

	_, err = NewLookup(config.ResolverConfig{Mode: config.ResolverDNS})
	assert.ErrorIs(t, err, types.ErrInvalidArgument)

	_, err = NewLookup(config.ResolverConfig{Mode: "hosts"})
	assert.Error(t, err)
}
