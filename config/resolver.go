package config

import (
	"fmt"
	"net"
	"time"

	"go.uber.org/multierr"
)

// 解析后端
const (
	// ResolverSystem 系统解析器，可选自定义 DNS 服务器
	ResolverSystem = "system"

	// ResolverDNS 直接向 Server 发送 A/AAAA 查询
	ResolverDNS = "dns"
)

// ResolverConfig 地址解析配置
type ResolverConfig struct {
	// Mode 解析后端: "system" 或 "dns"
	Mode string `json:"mode"`

	// Server DNS 服务器（格式: "ip:port"），system 模式下可为空
	Server string `json:"server,omitempty"`

	// Net dns 模式的传输协议: "udp" 或 "tcp"
	Net string `json:"net,omitempty"`

	// Timeout 单次查询超时
	Timeout Duration `json:"timeout"`
}

// DefaultResolverConfig 返回默认解析配置
func DefaultResolverConfig() ResolverConfig {
	return ResolverConfig{
		Mode:    ResolverSystem,
		Timeout: Duration(5 * time.Second),
	}
}

// Validate 验证解析配置
func (c ResolverConfig) Validate() error {
	var err error
	switch c.Mode {
	case ResolverSystem:
	case ResolverDNS:
		if c.Server == "" {
			err = multierr.Append(err, fmt.Errorf("resolver.server is required in %q mode", ResolverDNS))
		}
	default:
		err = multierr.Append(err, fmt.Errorf("resolver.mode %q: want %q or %q", c.Mode, ResolverSystem, ResolverDNS))
	}

	if c.Server != "" {
		if _, _, e := net.SplitHostPort(c.Server); e != nil {
			err = multierr.Append(err, fmt.Errorf("resolver.server %q: %w", c.Server, e))
		}
	}
	switch c.Net {
	case "", "udp", "tcp":
	default:
		err = multierr.Append(err, fmt.Errorf("resolver.net %q: want udp or tcp", c.Net))
	}
	if c.Timeout < 0 {
		err = multierr.Append(err, fmt.Errorf("resolver.timeout must not be negative"))
	}
	return err
}
