package chanlistener

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"

	"github.com/dep2p/go-chanlistener/config"
	"github.com/dep2p/go-chanlistener/pkg/types"
)

// TestListen 测试创建并打开
func TestListen(t *testing.T) {
	l, err := Listen("net.tcp://127.0.0.1:0/echo", []types.Property{
		types.Uint32Property(types.PropListenBacklog, 32),
	})
	require.NoError(t, err)
	defer l.Free()

	addr, err := l.Addr()
	require.NoError(t, err)

	conn, err := net.DialTimeout("tcp", addr.String(), time.Second)
	require.NoError(t, err)
	_ = conn.Close()

	require.NoError(t, l.Close())
	state, err := l.State()
	require.NoError(t, err)
	assert.Equal(t, types.StateClosed, state)
}

// TestListen_Failure 测试打开失败
func TestListen_Failure(t *testing.T) {
	l, err := Listen("gopher://127.0.0.1/", nil)
	assert.Nil(t, l)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	var ue *URLError
	assert.ErrorAs(t, err, &ue)
}

// TestCreate_Errors 测试公共错误
func TestCreate_Errors(t *testing.T) {
	_, err := Create(types.ChannelTypeReply, types.BindingTCP, nil, nil)
	assert.ErrorIs(t, err, ErrNotImplemented)

	_, err = Create(types.ChannelTypeDuplexSession, types.BindingTCP,
		[]types.Property{types.Uint32Property(types.PropChannelBinding, 0)}, nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	l, err := Create(types.ChannelTypeDuplexSession, types.BindingTCP, nil, nil)
	require.NoError(t, err)
	require.NoError(t, l.Open("/ip4/127.0.0.1/tcp/0"))
	assert.ErrorIs(t, l.Open("/ip4/127.0.0.1/tcp/0"), ErrInvalidOperation)

	l.Free()
	assert.True(t, errors.Is(l.Close(), ErrInvalidArgument))
}

// TestOptions 测试公共选项
func TestOptions(t *testing.T) {
	mock := clock.NewMock()
	reg := prometheus.NewRegistry()
	m, err := NewMetrics(reg)
	require.NoError(t, err)

	l, err := Listen("/ip4/127.0.0.1/tcp/0", nil,
		WithClock(mock),
		WithMetrics(m),
		WithLookup(SystemLookup("", 0)),
		WithMaxVariableSize(8),
	)
	require.NoError(t, err)
	defer l.Free()

	at, err := l.OpenedAt()
	require.NoError(t, err)
	assert.Equal(t, mock.Now(), at)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.OpenSockets))

	err = l.SetProperty(types.PropCustomListenerParameters, make([]byte, 9))
	assert.ErrorIs(t, err, ErrOutOfMemory)

	_, err = DNSLookup("not-an-address", "udp", time.Second)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

// TestFromConfig 测试按配置创建
func TestFromConfig(t *testing.T) {
	l, err := FromConfig(nil)
	require.NoError(t, err)
	defer l.Free()

	state, err := l.State()
	require.NoError(t, err)
	assert.Equal(t, types.StateCreated, state)
}

// TestNewApp 测试 Fx 应用
func TestNewApp(t *testing.T) {
	cfg := config.NewConfig()
	cfg.URL = "/ip4/127.0.0.1/tcp/0"
	cfg.Listen.IPVersion = "ipv4"

	var l *Listener
	app, err := NewApp(cfg, nil,
		AppOption(WithMaxVariableSize(4)),
		fx.Populate(&l),
	)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, app.Start(ctx))

	state, err := l.State()
	require.NoError(t, err)
	assert.Equal(t, types.StateOpen, state)

	// AppOption 注入的预算生效
	assert.ErrorIs(t, l.SetProperty(types.PropMulticastInterfaces, make([]byte, 5)), ErrOutOfMemory)

	require.NoError(t, app.Stop(ctx))
	_, err = l.State()
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

// TestNewApp_InvalidConfig 测试非法配置
func TestNewApp_InvalidConfig(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Binding = "named-pipe"

	app, err := NewApp(cfg, nil)
	assert.Nil(t, app)
	assert.ErrorIs(t, err, ErrNotImplemented)
}
