//go:build !unix

package listener

import (
	"context"
	"net"
	"net/netip"

	"github.com/dep2p/go-chanlistener/pkg/types"
)

// socket 处于监听状态的流套接字
//
// 非 unix 平台通过 net.ListenConfig 创建，监听队列长度由系统决定。
type socket struct {
	ln   net.Listener
	addr netip.AddrPort
}

func listenSocket(ap netip.AddrPort, backlog uint32) (*socket, error) {
	network := "tcp4"
	if ap.Addr().Is6() {
		network = "tcp6"
	}
	if backlog != 0 {
		logger.Debug("当前平台不支持指定监听队列长度", "backlog", backlog)
	}

	var lc net.ListenConfig
	ln, err := lc.Listen(context.Background(), network, ap.String())
	if err != nil {
		return nil, types.NewTransportError("listen", err)
	}

	addr := ap
	if tcp, ok := ln.Addr().(*net.TCPAddr); ok {
		addr = tcp.AddrPort()
	}
	return &socket{ln: ln, addr: addr}, nil
}

// Close 关闭监听器，可重复调用
func (s *socket) Close() error {
	if s.ln == nil {
		return nil
	}
	err := s.ln.Close()
	s.ln = nil
	return err
}

// Addr 返回实际绑定的地址
func (s *socket) Addr() netip.AddrPort {
	return s.addr
}
