//go:build unix

package listener

import (
	"math"
	"net"
	"net/netip"
	"os"

	"golang.org/x/sys/unix"

	"github.com/dep2p/go-chanlistener/pkg/types"
)

// socket 处于监听状态的流套接字
type socket struct {
	fd   int
	addr netip.AddrPort
}

// listenSocket 依次执行 socket → bind → listen
//
// 任何一步失败都会关闭已创建的描述符。
func listenSocket(ap netip.AddrPort, backlog uint32) (s *socket, err error) {
	family := unix.AF_INET
	if ap.Addr().Is6() {
		family = unix.AF_INET6
	}

	fd, err := unix.Socket(family, unix.SOCK_STREAM, 0)
	if err != nil {
		return nil, types.NewTransportError("socket", os.NewSyscallError("socket", err))
	}
	unix.CloseOnExec(fd)

	defer func() {
		if err != nil {
			_ = unix.Close(fd)
		}
	}()

	sa, err := sockaddr(ap)
	if err != nil {
		return nil, types.NewTransportError("bind", err)
	}
	if err = unix.Bind(fd, sa); err != nil {
		return nil, types.NewTransportError("bind", os.NewSyscallError("bind", err))
	}

	n := int(math.MaxInt32)
	if uint64(backlog) < uint64(n) {
		n = int(backlog)
	}
	if err = unix.Listen(fd, n); err != nil {
		return nil, types.NewTransportError("listen", os.NewSyscallError("listen", err))
	}

	bound, err := unix.Getsockname(fd)
	if err != nil {
		return nil, types.NewTransportError("getsockname", os.NewSyscallError("getsockname", err))
	}

	return &socket{fd: fd, addr: addrPortOf(bound, ap)}, nil
}

// Close 关闭描述符，可重复调用
func (s *socket) Close() error {
	if s.fd < 0 {
		return nil
	}
	err := unix.Close(s.fd)
	s.fd = -1
	return err
}

// Addr 返回实际绑定的地址
func (s *socket) Addr() netip.AddrPort {
	return s.addr
}

func sockaddr(ap netip.AddrPort) (unix.Sockaddr, error) {
	addr := ap.Addr()
	if addr.Is4() {
		return &unix.SockaddrInet4{Port: int(ap.Port()), Addr: addr.As4()}, nil
	}

	sa := &unix.SockaddrInet6{Port: int(ap.Port()), Addr: addr.As16()}
	if zone := addr.Zone(); zone != "" {
		ifi, err := net.InterfaceByName(zone)
		if err != nil {
			return nil, err
		}
		sa.ZoneId = uint32(ifi.Index)
	}
	return sa, nil
}

// addrPortOf 将 getsockname 结果转换为 netip.AddrPort，无法识别时退回请求地址
func addrPortOf(sa unix.Sockaddr, fallback netip.AddrPort) netip.AddrPort {
	switch a := sa.(type) {
	case *unix.SockaddrInet4:
		return netip.AddrPortFrom(netip.AddrFrom4(a.Addr), uint16(a.Port))
	case *unix.SockaddrInet6:
		return netip.AddrPortFrom(netip.AddrFrom16(a.Addr).WithZone(fallback.Addr().Zone()), uint16(a.Port))
	default:
		return fallback
	}
}
