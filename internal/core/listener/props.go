package listener

import (
	"fmt"

	"github.com/dep2p/go-chanlistener/pkg/types"
)

// ============================================================================
//                              属性读写
// ============================================================================

// GetProperty 将属性值复制到 buf
//
// State、ChannelType、ChannelBinding 直接读取监听器字段，其余委托给属性表。
// buf 为 nil 或长度与属性大小不一致时返回 ErrInvalidArgument，buf 保持不变。
// 变长属性的大小可通过 PropertySize 查询。
func (l *Listener) GetProperty(id types.PropertyID, buf []byte) error {
	if err := l.lock(); err != nil {
		return err
	}
	defer l.mu.Unlock()

	switch id {
	case types.PropState:
		return putUint32(id, buf, uint32(l.state))
	case types.PropChannelType:
		return putUint32(id, buf, uint32(l.channelType))
	case types.PropChannelBinding:
		return putUint32(id, buf, uint32(l.binding))
	default:
		return l.props.Get(id, buf)
	}
}

// SetProperty 写入属性
//
// 始终委托给属性表：ID 越界、值为空、大小不匹配或属性只读时返回 ErrInvalidArgument。
// 任何状态下都可以写入，已打开的套接字不受影响，新值在下一次 Open 时生效。
func (l *Listener) SetProperty(id types.PropertyID, value []byte) error {
	if err := l.lock(); err != nil {
		return err
	}
	defer l.mu.Unlock()

	return l.props.Set(id, value)
}

// PropertySize 返回属性当前的字节大小
func (l *Listener) PropertySize(id types.PropertyID) (int, error) {
	if err := l.lock(); err != nil {
		return 0, err
	}
	defer l.mu.Unlock()

	return l.props.Size(id)
}

func putUint32(id types.PropertyID, buf []byte, v uint32) error {
	if buf == nil || len(buf) != types.Size32 {
		return fmt.Errorf("property %s: size %d, want %d: %w", id, len(buf), types.Size32, types.ErrInvalidArgument)
	}
	copy(buf, types.EncodeUint32(v))
	return nil
}

// ============================================================================
//                              类型化访问
// ============================================================================

// State 返回当前状态
func (l *Listener) State() (types.ListenerState, error) {
	if err := l.lock(); err != nil {
		return 0, err
	}
	defer l.mu.Unlock()

	return l.state, nil
}

// ChannelType 返回通道类型
func (l *Listener) ChannelType() (types.ChannelType, error) {
	if err := l.lock(); err != nil {
		return 0, err
	}
	defer l.mu.Unlock()

	return l.channelType, nil
}

// ChannelBinding 返回通道绑定
func (l *Listener) ChannelBinding() (types.ChannelBinding, error) {
	if err := l.lock(); err != nil {
		return 0, err
	}
	defer l.mu.Unlock()

	return l.binding, nil
}

// Backlog 返回监听队列长度
func (l *Listener) Backlog() (uint32, error) {
	if err := l.lock(); err != nil {
		return 0, err
	}
	defer l.mu.Unlock()

	return l.props.GetUint32(types.PropListenBacklog)
}

// SetBacklog 设置监听队列长度，下一次 Open 时生效
func (l *Listener) SetBacklog(n uint32) error {
	if err := l.lock(); err != nil {
		return err
	}
	defer l.mu.Unlock()

	return l.props.SetUint32(types.PropListenBacklog, n)
}

// IPVersion 返回地址解析的 IP 版本偏好
func (l *Listener) IPVersion() (types.IPVersion, error) {
	if err := l.lock(); err != nil {
		return 0, err
	}
	defer l.mu.Unlock()

	v, err := l.props.GetUint32(types.PropIPVersion)
	return types.IPVersion(v), err
}

// SetIPVersion 设置 IP 版本偏好
func (l *Listener) SetIPVersion(v types.IPVersion) error {
	if err := l.lock(); err != nil {
		return err
	}
	defer l.mu.Unlock()

	return l.props.SetUint32(types.PropIPVersion, uint32(v))
}

// DisallowedUserAgents 返回禁止的 User-Agent 子串列表
func (l *Listener) DisallowedUserAgents() ([]string, error) {
	if err := l.lock(); err != nil {
		return nil, err
	}
	defer l.mu.Unlock()

	b, err := l.props.Bytes(types.PropDisallowedUserAgent)
	if err != nil || len(b) == 0 {
		return nil, err
	}
	return splitLines(b), nil
}

func splitLines(b []byte) []string {
	var out []string
	start := 0
	for i, c := range b {
		if c == '\n' {
			if i > start {
				out = append(out, string(b[start:i]))
			}
			start = i + 1
		}
	}
	if start < len(b) {
		out = append(out, string(b[start:]))
	}
	return out
}
