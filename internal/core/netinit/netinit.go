// Package netinit 进程级网络子系统初始化
//
// Startup 在第一次调用时探测本机 IPv4/IPv6 协议栈是否可用，结果在进程生命周期内缓存。
// 并发的首次调用者会阻塞直到探测完成，探测只执行一次。
package netinit

import (
	"fmt"
	"sync"

	"github.com/dep2p/go-chanlistener/pkg/lib/log"
	"github.com/dep2p/go-chanlistener/pkg/types"
)

var logger = log.Logger("core/netinit")

// Capabilities 协议栈能力
type Capabilities struct {
	IPv4 bool
	IPv6 bool
}

var (
	once    sync.Once
	caps    Capabilities
	initErr error

	// probe 可在测试中替换
	probe = probeStack
)

// Startup 执行一次性初始化，可安全地并发调用
//
// 两种协议栈都不可用时返回 *types.TransportError，之后每次调用返回同一错误。
func Startup() error {
	once.Do(func() {
		caps = probe()
		if !caps.IPv4 && !caps.IPv6 {
			initErr = types.NewTransportError("startup", fmt.Errorf("no usable ip stack"))
			logger.Error("网络子系统初始化失败", "err", initErr)
			return
		}
		logger.Debug("网络子系统初始化完成", "ipv4", caps.IPv4, "ipv6", caps.IPv6)
	})
	return initErr
}

// Stack 返回探测到的协议栈能力，会先执行 Startup
func Stack() Capabilities {
	_ = Startup()
	return caps
}
