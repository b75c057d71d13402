package listener

import (
	"context"
	"fmt"
	"net/netip"
	"time"

	"github.com/dep2p/go-chanlistener/internal/util/urlutil"
	"github.com/dep2p/go-chanlistener/pkg/types"
)

// ============================================================================
//                              打开与关闭
// ============================================================================

// Open 在 url 指定的地址上开始监听
//
// 只能在 Created 状态调用，否则返回 ErrInvalidOperation。
// 执行顺序：网络子系统初始化 → URL 解码 → 地址解析 → socket/bind/listen。
// 任一步失败时状态保持 Created，已创建的套接字会被关闭，可以再次调用 Open。
// 地址解析和 bind 可能阻塞，期间持有监听器锁。
func (l *Listener) Open(url string) error {
	if err := l.lock(); err != nil {
		return err
	}
	defer l.mu.Unlock()

	if l.state != types.StateCreated {
		err := fmt.Errorf("open in state %s: %w", l.state, types.ErrInvalidOperation)
		l.metrics.opened(err, 0)
		return err
	}

	start := l.clock.Now()
	err := l.open(url)
	l.metrics.opened(err, l.clock.Since(start))
	if err != nil {
		logger.Warn("打开监听器失败", "id", l.id, "url", url, "err", err)
		return err
	}

	logger.Info("监听器已打开", "id", l.id, "url", url, "addr", l.sock.Addr())
	return nil
}

// open 执行打开流程，调用方须持有锁
func (l *Listener) open(url string) error {
	if err := l.startup(); err != nil {
		return err
	}

	ep, err := urlutil.Decode(url)
	if err != nil {
		return err
	}

	backlog, err := l.props.GetUint32(types.PropListenBacklog)
	if err != nil {
		return err
	}
	pref, err := l.props.GetUint32(types.PropIPVersion)
	if err != nil {
		return err
	}

	ap, err := l.resolver.Resolve(context.Background(), ep.Host, ep.Port, types.IPVersion(pref))
	if err != nil {
		return err
	}

	sock, err := listenFunc(ap, backlog)
	if err != nil {
		return err
	}

	l.sock = sock
	l.state = types.StateOpen
	l.openedAt = l.clock.Now()
	return nil
}

// Close 关闭监听套接字，状态置为 Closed
//
// 任何有效状态下都可以调用，重复调用无副作用。
// 句柄已失效时返回 ErrInvalidArgument。
func (l *Listener) Close() error {
	if err := l.lock(); err != nil {
		return err
	}
	defer l.mu.Unlock()

	wasOpen := l.sock != nil
	l.reset()
	l.state = types.StateClosed
	l.metrics.closed()

	if wasOpen {
		logger.Info("监听器已关闭", "id", l.id)
	}
	return nil
}

// reset 关闭套接字并回到初始状态，调用方须持有锁
func (l *Listener) reset() {
	if l.sock != nil {
		if err := l.sock.Close(); err != nil {
			logger.Debug("关闭套接字失败", "id", l.id, "err", err)
		}
		l.sock = nil
		l.metrics.socketClosed()
	}
	l.state = types.StateCreated
	l.openedAt = time.Time{}
}

// ============================================================================
//                              运行时信息
// ============================================================================

// Addr 返回实际监听地址，端口为 0 时可据此获得系统分配的端口
//
// 非 Open 状态返回 ErrInvalidOperation。
func (l *Listener) Addr() (netip.AddrPort, error) {
	if err := l.lock(); err != nil {
		return netip.AddrPort{}, err
	}
	defer l.mu.Unlock()

	if l.sock == nil {
		return netip.AddrPort{}, fmt.Errorf("addr in state %s: %w", l.state, types.ErrInvalidOperation)
	}
	return l.sock.Addr(), nil
}

// OpenedAt 返回进入 Open 状态的时间
func (l *Listener) OpenedAt() (time.Time, error) {
	if err := l.lock(); err != nil {
		return time.Time{}, err
	}
	defer l.mu.Unlock()

	if l.sock == nil {
		return time.Time{}, fmt.Errorf("opened-at in state %s: %w", l.state, types.ErrInvalidOperation)
	}
	return l.openedAt, nil
}
