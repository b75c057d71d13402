//go:build !unix

package netinit

import "net"

// probeStack 通过监听回环地址探测协议栈
func probeStack() Capabilities {
	return Capabilities{
		IPv4: canListen("tcp4", "127.0.0.1:0"),
		IPv6: canListen("tcp6", "[::1]:0"),
	}
}

func canListen(network, addr string) bool {
	l, err := net.Listen(network, addr)
	if err != nil {
		return false
	}
	_ = l.Close()
	return true
}
