package resolver

import (
	"context"
	"errors"
	"net"
	"time"

	"github.com/dep2p/go-chanlistener/pkg/types"
)

// SystemConfig 系统解析器配置
type SystemConfig struct {
	// Server 自定义 DNS 服务器（格式: "ip:port"），为空时使用系统配置
	Server string

	// Timeout 连接自定义服务器的超时
	Timeout time.Duration
}

// System 基于 net.Resolver 的查询后端
type System struct {
	resolver *net.Resolver
}

var _ Lookup = (*System)(nil)

// NewSystem 创建系统查询后端
func NewSystem(cfg SystemConfig) *System {
	s := &System{resolver: net.DefaultResolver}
	if cfg.Server != "" {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 5 * time.Second
		}
		s.resolver = &net.Resolver{
			PreferGo: true,
			Dial: func(ctx context.Context, network, _ string) (net.Conn, error) {
				d := net.Dialer{Timeout: timeout}
				return d.DialContext(ctx, network, cfg.Server)
			},
		}
	}
	return s
}

// LookupHost 实现 Lookup
func (s *System) LookupHost(ctx context.Context, host string) ([]Candidate, error) {
	addrs, err := s.resolver.LookupNetIP(ctx, "ip", host)
	if err != nil {
		return nil, translateDNSError(host, err)
	}

	cands := make([]Candidate, 0, len(addrs))
	for _, a := range addrs {
		cands = append(cands, CandidateOf(a))
	}
	return cands, nil
}

// translateDNSError 将 net 包的解析错误归类为 *types.ResolveError
func translateDNSError(host string, err error) error {
	re := &types.ResolveError{Host: host, Code: types.ResolveOther, Err: err}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		switch {
		case dnsErr.IsNotFound:
			re.Code = types.ResolveNotFound
		case dnsErr.IsTimeout:
			re.Code = types.ResolveTimeout
		case dnsErr.IsTemporary:
			re.Code = types.ResolveTemporary
		}
		return re
	}

	if errors.Is(err, context.DeadlineExceeded) {
		re.Code = types.ResolveTimeout
	}
	return re
}
