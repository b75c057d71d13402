package chanlistener

import (
	"github.com/dep2p/go-chanlistener/config"
	"github.com/dep2p/go-chanlistener/internal/core/listener"
	"github.com/dep2p/go-chanlistener/pkg/lib/log"
	"github.com/dep2p/go-chanlistener/pkg/types"
)

var logger = log.Logger("chanlistener")

// Listener 通道监听器
type Listener = listener.Listener

// Metrics 监听器指标，可在多个监听器之间共享
type Metrics = listener.Metrics

// Create 创建监听器
//
// 目前只支持 ChannelTypeDuplexSession + BindingTCP，其余组合返回 ErrNotImplemented。
// props 按顺序应用到默认属性之上，任一项失败则创建失败。
// desc 暂不支持，传入时会被忽略并记录警告。
func Create(channelType types.ChannelType, binding types.ChannelBinding, props []types.Property, desc *types.SecurityDescription, opts ...Option) (*Listener, error) {
	return listener.New(channelType, binding, props, desc, opts...)
}

// FromConfig 按配置创建监听器
//
// 不会打开监听器，cfg.URL 需要调用方自行传给 Open。
func FromConfig(cfg *config.Config, opts ...Option) (*Listener, error) {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	return listener.FromConfig(cfg, opts...)
}

// Listen 创建 DuplexSession/TCP 监听器并立即打开
//
// 打开失败时监听器会被释放。
func Listen(url string, props []types.Property, opts ...Option) (*Listener, error) {
	l, err := Create(types.ChannelTypeDuplexSession, types.BindingTCP, props, nil, opts...)
	if err != nil {
		return nil, err
	}
	if err := l.Open(url); err != nil {
		l.Free()
		return nil, err
	}
	if addr, err := l.Addr(); err == nil {
		logger.Debug("监听中", "id", l.ID(), "addr", addr)
	}
	return l, nil
}
