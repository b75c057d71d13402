//go:build unix

package netinit

import (
	"golang.org/x/sys/unix"
)

// probeStack 尝试创建各地址族的流套接字
func probeStack() Capabilities {
	return Capabilities{
		IPv4: canSocket(unix.AF_INET),
		IPv6: canSocket(unix.AF_INET6),
	}
}

func canSocket(family int) bool {
	fd, err := unix.Socket(family, unix.SOCK_STREAM, 0)
	if err != nil {
		logger.Debug("地址族不可用", "family", family, "err", err)
		return false
	}
	_ = unix.Close(fd)
	return true
}
