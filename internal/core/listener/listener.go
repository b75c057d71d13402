// Package listener 实现面向连接的通道监听器
//
// 监听器持有一张属性表和至多一个处于监听状态的 TCP 套接字。
// 生命周期：Created → (Open) → Open → (Close) → Closed，Free 之后句柄失效。
//
// 所有公开方法都在监听器自身的互斥锁下执行，可以从多个 goroutine 并发调用。
// 句柄失效后（Free 之后）所有操作返回 types.ErrInvalidArgument。
package listener

import (
	"fmt"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"

	"github.com/dep2p/go-chanlistener/internal/core/netinit"
	"github.com/dep2p/go-chanlistener/internal/core/property"
	"github.com/dep2p/go-chanlistener/internal/core/resolver"
	"github.com/dep2p/go-chanlistener/pkg/lib/log"
	"github.com/dep2p/go-chanlistener/pkg/types"
)

var logger = log.Logger("core/listener")

// magic 有效句柄标记，Free 时清零
const magic = uint32('L')<<24 | uint32('I')<<16 | uint32('S')<<8 | uint32('T')

// listenFunc 创建监听套接字，测试中可替换
var listenFunc = listenSocket

// schema 监听器属性表，下标与 types.PropertyID 一一对应
var schema = property.Schema{
	types.PropListenBacklog:               {Size: types.Size32},
	types.PropIPVersion:                   {Size: types.Size32},
	types.PropState:                       {Size: types.Size32, ReadOnly: true},
	types.PropAsyncCallbackModel:          {Size: types.Size32},
	types.PropChannelType:                 {Size: types.Size32, ReadOnly: true},
	types.PropChannelBinding:              {Size: types.Size32, ReadOnly: true},
	types.PropConnectTimeout:              {Size: types.Size32},
	types.PropIsMulticast:                 {Size: types.Size32},
	types.PropMulticastInterfaces:         {},
	types.PropMulticastLoopback:           {Size: types.Size32},
	types.PropCloseTimeout:                {Size: types.Size32},
	types.PropToHeaderMatchingOptions:     {Size: types.Size32},
	types.PropTransportURLMatchingOptions: {Size: types.Size32},
	types.PropCustomListenerCallbacks:     {Size: types.Size64},
	types.PropCustomListenerParameters:    {},
	types.PropCustomListenerInstance:      {Size: types.Size64, ReadOnly: true},
	types.PropDisallowedUserAgent:         {},
}

// ============================================================================
//                              Option - 创建选项
// ============================================================================

type options struct {
	resolver    *resolver.Resolver
	metrics     *Metrics
	clock       clock.Clock
	startup     func() error
	maxVariable int
}

// Option 监听器创建选项
type Option func(*options)

// WithLookup 指定地址解析后端，默认使用系统解析器
func WithLookup(lookup resolver.Lookup) Option {
	return func(o *options) {
		o.resolver = resolver.New(lookup)
	}
}

// WithMetrics 指定指标收集器，nil 表示不收集
func WithMetrics(m *Metrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}

// WithClock 指定时钟，测试中可注入 clock.NewMock()
func WithClock(c clock.Clock) Option {
	return func(o *options) {
		if c != nil {
			o.clock = c
		}
	}
}

// WithMaxVariableSize 指定变长属性的存储预算
func WithMaxVariableSize(n int) Option {
	return func(o *options) {
		o.maxVariable = n
	}
}

// withStartup 替换网络子系统初始化，仅用于测试
func withStartup(fn func() error) Option {
	return func(o *options) {
		o.startup = fn
	}
}

// ============================================================================
//                              Listener 实现
// ============================================================================

// Listener 通道监听器
type Listener struct {
	mu sync.Mutex

	magic       uint32
	id          uuid.UUID
	channelType types.ChannelType
	binding     types.ChannelBinding
	state       types.ListenerState
	sock        *socket
	props       *property.Table
	openedAt    time.Time

	resolver *resolver.Resolver
	metrics  *Metrics
	clock    clock.Clock
	startup  func() error
}

// New 创建监听器
//
// 仅支持 DuplexSession + TCP 组合，其余组合返回 types.ErrNotImplemented。
// props 按顺序应用，任一覆盖项失败时整个创建失败，不产生句柄。
// desc 当前不支持，非 nil 时忽略并记录警告。
func New(channelType types.ChannelType, binding types.ChannelBinding, props []types.Property, desc *types.SecurityDescription, opts ...Option) (*Listener, error) {
	if channelType != types.ChannelTypeDuplexSession {
		logger.Warn("不支持的通道类型", "channelType", channelType)
		return nil, fmt.Errorf("channel type %s: %w", channelType, types.ErrNotImplemented)
	}
	if binding != types.BindingTCP {
		logger.Warn("不支持的通道绑定", "binding", binding)
		return nil, fmt.Errorf("channel binding %s: %w", binding, types.ErrNotImplemented)
	}

	o := options{
		clock:       clock.New(),
		startup:     netinit.Startup,
		maxVariable: property.DefaultMaxVariableSize,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.resolver == nil {
		o.resolver = resolver.New(nil)
	}

	table := property.New(schema)
	table.SetMaxVariableSize(o.maxVariable)
	for i, p := range props {
		if err := table.Set(p.ID, p.Value); err != nil {
			table.Release()
			logger.Debug("属性覆盖失败", "index", i, "id", p.ID, "err", err)
			return nil, fmt.Errorf("property override %d: %w", i, err)
		}
	}

	if desc != nil {
		logger.Warn("暂不支持安全描述，已忽略", "bindings", len(desc.Bindings))
	}

	l := &Listener{
		magic:       magic,
		id:          uuid.New(),
		channelType: channelType,
		binding:     binding,
		state:       types.StateCreated,
		props:       table,
		resolver:    o.resolver,
		metrics:     o.metrics,
		clock:       o.clock,
		startup:     o.startup,
	}
	l.metrics.created()

	logger.Debug("创建监听器", "id", l.id, "overrides", len(props))
	return l, nil
}

// ID 返回监听器实例标识，用于日志关联
func (l *Listener) ID() uuid.UUID {
	return l.id
}

// Free 销毁监听器并释放全部资源
//
// 句柄标记在锁内清零，之后的任何调用都会返回 ErrInvalidArgument。
// 对已失效的句柄或 nil 调用 Free 是空操作。
func (l *Listener) Free() {
	if l == nil {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.magic != magic {
		return
	}
	l.magic = 0

	l.reset()
	l.props.Release()
	l.metrics.freed()

	logger.Debug("释放监听器", "id", l.id)
}

// valid 检查句柄是否仍然有效，调用方须持有锁
func (l *Listener) valid() bool {
	return l.magic == magic
}

// lock 获取锁并校验句柄，失效时不持有锁直接返回错误
func (l *Listener) lock() error {
	if l == nil {
		return fmt.Errorf("nil listener: %w", types.ErrInvalidArgument)
	}
	l.mu.Lock()
	if !l.valid() {
		l.mu.Unlock()
		return fmt.Errorf("listener freed: %w", types.ErrInvalidArgument)
	}
	return nil
}
