package listener

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"

	"github.com/dep2p/go-chanlistener/config"
	"github.com/dep2p/go-chanlistener/internal/core/resolver"
)

// Params 监听器依赖参数
type Params struct {
	fx.In

	Config     *config.Config        `optional:"true"`
	Registerer prometheus.Registerer `optional:"true"`
	Lookup     resolver.Lookup       `optional:"true"`
	Options    []Option              `group:"listener_options"`
}

// Module 监听器 Fx 模块
//
// 提供 *Listener 和 *Metrics；启动时按配置打开，停止时释放。
var Module = fx.Module("listener",
	fx.Provide(
		NewMetricsFromParams,
		NewFromParams,
	),
	fx.Invoke(registerLifecycle),
)

// NewMetricsFromParams 按配置创建指标，未启用时返回 nil
func NewMetricsFromParams(p Params) (*Metrics, error) {
	cfg := p.Config
	if cfg == nil {
		cfg = config.NewConfig()
	}
	if !cfg.Metrics.Enabled {
		return nil, nil
	}
	return NewMetrics(p.Registerer)
}

// NewFromParams 按配置创建监听器
func NewFromParams(p Params, m *Metrics) (*Listener, error) {
	cfg := p.Config
	if cfg == nil {
		cfg = config.NewConfig()
	}
	return FromConfig(cfg, append([]Option{lookupOption(p.Lookup), WithMetrics(m)}, p.Options...)...)
}

// FromConfig 按配置创建监听器，opts 在配置之后应用
func FromConfig(cfg *config.Config, opts ...Option) (*Listener, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	channelType, err := config.ParseChannelType(cfg.ChannelType)
	if err != nil {
		return nil, err
	}
	binding, err := config.ParseBinding(cfg.Binding)
	if err != nil {
		return nil, err
	}
	props, err := cfg.ToProperties()
	if err != nil {
		return nil, err
	}

	lookup, err := NewLookup(cfg.Resolver)
	if err != nil {
		return nil, err
	}

	base := []Option{WithLookup(lookup)}
	if cfg.Listen.MaxPropertyBytes > 0 {
		base = append(base, WithMaxVariableSize(cfg.Listen.MaxPropertyBytes))
	}
	return New(channelType, binding, props, nil, append(base, opts...)...)
}

// NewLookup 按解析配置创建查询后端
func NewLookup(cfg config.ResolverConfig) (resolver.Lookup, error) {
	switch cfg.Mode {
	case config.ResolverDNS:
		return resolver.NewDNSClient(resolver.DNSClientConfig{
			Server:  cfg.Server,
			Net:     cfg.Net,
			Timeout: cfg.Timeout.Duration(),
		})
	case config.ResolverSystem, "":
		return resolver.NewSystem(resolver.SystemConfig{
			Server:  cfg.Server,
			Timeout: cfg.Timeout.Duration(),
		}), nil
	default:
		return nil, fmt.Errorf("unknown resolver mode %q", cfg.Mode)
	}
}

// lookupOption 注入的 Lookup 优先于配置
func lookupOption(lookup resolver.Lookup) Option {
	if lookup == nil {
		return func(*options) {}
	}
	return WithLookup(lookup)
}

type lifecycleInput struct {
	fx.In

	LC       fx.Lifecycle
	Listener *Listener
	Config   *config.Config `optional:"true"`
}

func registerLifecycle(in lifecycleInput) {
	in.LC.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			if in.Config == nil || in.Config.URL == "" {
				logger.Debug("未配置 URL，监听器保持 Created 状态", "id", in.Listener.ID())
				return nil
			}
			return in.Listener.Open(in.Config.URL)
		},
		OnStop: func(_ context.Context) error {
			in.Listener.Free()
			return nil
		},
	})
}
