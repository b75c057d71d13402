package chanlistener

import "github.com/dep2p/go-chanlistener/pkg/types"

// 公共错误定义，可用 errors.Is 判断
var (
	// ErrInvalidArgument 参数无效或句柄已失效
	ErrInvalidArgument = types.ErrInvalidArgument

	// ErrInvalidOperation 当前状态不允许该操作
	ErrInvalidOperation = types.ErrInvalidOperation

	// ErrNotImplemented 不支持的通道类型或绑定
	ErrNotImplemented = types.ErrNotImplemented

	// ErrOutOfMemory 超出属性存储预算
	ErrOutOfMemory = types.ErrOutOfMemory

	// ErrAddressNotAvailable 解析结果中没有可用地址
	ErrAddressNotAvailable = types.ErrAddressNotAvailable
)

// 带上下文的错误类型，可用 errors.As 提取
type (
	// ResolveError 名称解析失败
	ResolveError = types.ResolveError

	// TransportError socket/bind/listen 失败
	TransportError = types.TransportError

	// URLError 监听 URL 无法解码
	URLError = types.URLError
)
