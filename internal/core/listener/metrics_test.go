package listener

import (
	"errors"
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dep2p/go-chanlistener/pkg/types"
)

// TestMetrics 测试指标随生命周期变化
func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewMetrics(reg)
	require.NoError(t, err)

	l := newTestListener(t, nil, WithMetrics(m))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Listeners))

	require.Error(t, l.Open("ftp://127.0.0.1/"))
	require.NoError(t, l.Open(loopback4))
	require.ErrorIs(t, l.Open(loopback4), types.ErrInvalidOperation)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Opens.WithLabelValues(ResultOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Opens.WithLabelValues(ResultInvalidArgument)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Opens.WithLabelValues(ResultInvalidOperation)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.OpenSockets))

	require.NoError(t, l.Close())
	require.NoError(t, l.Close())
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Closes))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.OpenSockets))

	l.Free()
	assert.Equal(t, 0.0, testutil.ToFloat64(m.Listeners))

	// 已注册到 registry
	n, err := testutil.GatherAndCount(reg, "chanlistener_opens_total")
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

// TestMetrics_FreeOpen 测试释放打开中的监听器
func TestMetrics_FreeOpen(t *testing.T) {
	m, err := NewMetrics(nil)
	require.NoError(t, err)

	l := newTestListener(t, nil, WithMetrics(m))
	require.NoError(t, l.Open(loopback4))
	l.Free()

	assert.Equal(t, 0.0, testutil.ToFloat64(m.OpenSockets))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.Closes))
}

// TestMetrics_DuplicateRegister 测试重复注册
func TestMetrics_DuplicateRegister(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewMetrics(reg)
	require.NoError(t, err)

	_, err = NewMetrics(reg)
	assert.Error(t, err)
}

// TestMetrics_Nil 测试 nil 指标
func TestMetrics_Nil(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.created()
		m.opened(nil, 0)
		m.closed()
		m.socketClosed()
		m.freed()
	})
}

// TestResultOf 测试错误归类
func TestResultOf(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, ResultOK},
		{fmt.Errorf("open: %w", types.ErrInvalidOperation), ResultInvalidOperation},
		{fmt.Errorf("resolve x: %w", types.ErrAddressNotAvailable), ResultAddressUnavailable},
		{&types.ResolveError{Host: "x", Err: errors.New("boom")}, ResultResolve},
		{types.NewTransportError("bind", errors.New("boom")), ResultTransport},
		{&types.URLError{URL: "x", Reason: "bad"}, ResultInvalidArgument},
		{errors.New("boom"), ResultOther},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, ResultOf(tt.err))
		})
	}
}
