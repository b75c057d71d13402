package types

import (
	"errors"
	"fmt"
	"syscall"
)

// ============================================================================
//                              监听器错误类别
// ============================================================================

var (
	// ErrInvalidArgument 参数无效：句柄已失效、ID 越界、大小不匹配、写只读属性
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInvalidOperation 当前状态不允许该操作，例如重复打开
	ErrInvalidOperation = errors.New("invalid operation")

	// ErrNotImplemented 不支持的通道类型或绑定组合
	ErrNotImplemented = errors.New("not implemented")

	// ErrOutOfMemory 超出属性存储预算
	ErrOutOfMemory = errors.New("out of memory")

	// ErrAddressNotAvailable 解析结果中没有可用的 IPv4/IPv6 地址
	ErrAddressNotAvailable = errors.New("address not available")
)

// ============================================================================
//                              ResolveError - 解析错误
// ============================================================================

// ResolveCode 解析失败的归类码
type ResolveCode int

const (
	// ResolveOther 其他错误
	ResolveOther ResolveCode = iota
	// ResolveNotFound 主机名不存在
	ResolveNotFound
	// ResolveTemporary 临时失败，可重试
	ResolveTemporary
	// ResolveTimeout 查询超时
	ResolveTimeout
)

// String 返回归类码的字符串表示
func (c ResolveCode) String() string {
	switch c {
	case ResolveNotFound:
		return "not-found"
	case ResolveTemporary:
		return "temporary"
	case ResolveTimeout:
		return "timeout"
	default:
		return "other"
	}
}

// ResolveError 名称解析错误
type ResolveError struct {
	Host string      // 被解析的主机名
	Code ResolveCode // 归类码
	Err  error       // 底层错误
}

// Error 实现 error 接口
func (e *ResolveError) Error() string {
	return fmt.Sprintf("resolve %s: %s: %v", e.Host, e.Code, e.Err)
}

// Unwrap 支持 errors.Unwrap
func (e *ResolveError) Unwrap() error {
	return e.Err
}

// ============================================================================
//                              TransportError - 套接字错误
// ============================================================================

// TransportError 套接字创建、绑定、监听失败
type TransportError struct {
	Op    string        // socket / bind / listen / getsockname
	Errno syscall.Errno // 平台错误码，未知时为 0
	Err   error         // 底层错误
}

// Error 实现 error 接口
func (e *TransportError) Error() string {
	if e.Errno != 0 {
		return fmt.Sprintf("%s failed (errno %d): %v", e.Op, uintptr(e.Errno), e.Err)
	}
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

// Unwrap 支持 errors.Unwrap
func (e *TransportError) Unwrap() error {
	return e.Err
}

// NewTransportError 创建套接字错误，并尽量提取平台错误码
func NewTransportError(op string, err error) *TransportError {
	te := &TransportError{Op: op, Err: err}
	var errno syscall.Errno
	if errors.As(err, &errno) {
		te.Errno = errno
	}
	return te
}

// ============================================================================
//                              URLError - URL 解码错误
// ============================================================================

// URLError URL 解码失败
//
// 总是可以通过 errors.Is(err, ErrInvalidArgument) 识别。
type URLError struct {
	URL    string
	Reason string
}

// Error 实现 error 接口
func (e *URLError) Error() string {
	return fmt.Sprintf("decode url %q: %s", e.URL, e.Reason)
}

// Unwrap 返回 ErrInvalidArgument
func (e *URLError) Unwrap() error {
	return ErrInvalidArgument
}
