package chanlistener

import (
	"time"

	"github.com/benbjohnson/clock"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/dep2p/go-chanlistener/internal/core/listener"
	"github.com/dep2p/go-chanlistener/internal/core/resolver"
)

// Option 监听器创建选项
type Option = listener.Option

// Lookup 地址解析后端
type Lookup = resolver.Lookup

// WithLookup 指定地址解析后端
func WithLookup(lookup Lookup) Option {
	return listener.WithLookup(lookup)
}

// WithMetrics 指定指标收集器
func WithMetrics(m *Metrics) Option {
	return listener.WithMetrics(m)
}

// WithClock 指定时钟
func WithClock(c clock.Clock) Option {
	return listener.WithClock(c)
}

// WithMaxVariableSize 指定变长属性的存储预算（字节）
func WithMaxVariableSize(n int) Option {
	return listener.WithMaxVariableSize(n)
}

// NewMetrics 创建指标并注册到 reg，reg 为 nil 时不注册
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	return listener.NewMetrics(reg)
}

// SystemLookup 使用系统解析器，server 非空时改为向该 DNS 服务器查询
func SystemLookup(server string, timeout time.Duration) Lookup {
	return resolver.NewSystem(resolver.SystemConfig{Server: server, Timeout: timeout})
}

// DNSLookup 直接向 server 发送 A/AAAA 查询，network 为 "udp" 或 "tcp"
func DNSLookup(server, network string, timeout time.Duration) (Lookup, error) {
	return resolver.NewDNSClient(resolver.DNSClientConfig{
		Server:  server,
		Net:     network,
		Timeout: timeout,
	})
}
