package listener

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dep2p/go-chanlistener/pkg/types"
)

// ============================================================================
//                              Metrics - 监听器指标
// ============================================================================

// 打开结果标签
const (
	ResultOK                 = "ok"
	ResultInvalidArgument    = "invalid_argument"
	ResultInvalidOperation   = "invalid_operation"
	ResultAddressUnavailable = "address_not_available"
	ResultResolve            = "resolve"
	ResultTransport          = "transport"
	ResultOther              = "other"
)

// Metrics 监听器指标
//
// 同一个 Metrics 可以被多个监听器共享。nil 的 *Metrics 上所有方法都是空操作。
type Metrics struct {
	Listeners    prometheus.Gauge
	OpenSockets  prometheus.Gauge
	Opens        *prometheus.CounterVec
	Closes       prometheus.Counter
	OpenDuration prometheus.Histogram
}

// NewMetrics 创建指标并注册到 reg，reg 为 nil 时不注册
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Listeners: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "chanlistener",
			Name:      "listeners",
			Help:      "Number of live listener handles.",
		}),
		OpenSockets: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "chanlistener",
			Name:      "open_sockets",
			Help:      "Number of listening sockets.",
		}),
		Opens: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "chanlistener",
			Name:      "opens_total",
			Help:      "Open attempts by result.",
		}, []string{"result"}),
		Closes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "chanlistener",
			Name:      "closes_total",
			Help:      "Close calls on live handles.",
		}),
		OpenDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "chanlistener",
			Name:      "open_duration_seconds",
			Help:      "Time spent resolving and binding in Open.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 8),
		}),
	}

	if reg == nil {
		return m, nil
	}
	for _, c := range []prometheus.Collector{m.Listeners, m.OpenSockets, m.Opens, m.Closes, m.OpenDuration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// ResultOf 将 Open 返回的错误归类为结果标签
func ResultOf(err error) string {
	var (
		re *types.ResolveError
		te *types.TransportError
	)
	switch {
	case err == nil:
		return ResultOK
	case errors.Is(err, types.ErrInvalidOperation):
		return ResultInvalidOperation
	case errors.Is(err, types.ErrAddressNotAvailable):
		return ResultAddressUnavailable
	case errors.As(err, &re):
		return ResultResolve
	case errors.As(err, &te):
		return ResultTransport
	case errors.Is(err, types.ErrInvalidArgument):
		return ResultInvalidArgument
	default:
		return ResultOther
	}
}

func (m *Metrics) created() {
	if m == nil {
		return
	}
	m.Listeners.Inc()
}

func (m *Metrics) freed() {
	if m == nil {
		return
	}
	m.Listeners.Dec()
}

func (m *Metrics) opened(err error, d time.Duration) {
	if m == nil {
		return
	}
	m.Opens.WithLabelValues(ResultOf(err)).Inc()
	if err == nil {
		m.OpenSockets.Inc()
		m.OpenDuration.Observe(d.Seconds())
	}
}

func (m *Metrics) closed() {
	if m == nil {
		return
	}
	m.Closes.Inc()
}

func (m *Metrics) socketClosed() {
	if m == nil {
		return
	}
	m.OpenSockets.Dec()
}
