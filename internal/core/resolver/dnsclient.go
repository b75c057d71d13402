package resolver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/netip"
	"time"

	"github.com/miekg/dns"

	"github.com/dep2p/go-chanlistener/pkg/types"
)

// DNSClientConfig DNS 客户端配置
type DNSClientConfig struct {
	// Server DNS 服务器地址（格式: "ip:port"）
	Server string

	// Net 传输协议："udp"（默认）或 "tcp"
	Net string

	// Timeout 单次查询超时
	Timeout time.Duration
}

// DNSClient 直接向指定服务器发送 A/AAAA 查询的后端
//
// 先查 A 再查 AAAA，候选按此顺序排列。
type DNSClient struct {
	server string
	client *dns.Client
}

var _ Lookup = (*DNSClient)(nil)

// NewDNSClient 创建 DNS 客户端后端
func NewDNSClient(cfg DNSClientConfig) (*DNSClient, error) {
	if cfg.Server == "" {
		return nil, fmt.Errorf("dns client: empty server: %w", types.ErrInvalidArgument)
	}
	if _, _, err := net.SplitHostPort(cfg.Server); err != nil {
		return nil, fmt.Errorf("dns client: server %q: %w", cfg.Server, types.ErrInvalidArgument)
	}
	if cfg.Net == "" {
		cfg.Net = "udp"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	return &DNSClient{
		server: cfg.Server,
		client: &dns.Client{Net: cfg.Net, Timeout: cfg.Timeout},
	}, nil
}

// LookupHost 实现 Lookup
func (c *DNSClient) LookupHost(ctx context.Context, host string) ([]Candidate, error) {
	// IP 字面量无需查询
	if addr, err := netip.ParseAddr(host); err == nil {
		return []Candidate{CandidateOf(addr)}, nil
	}

	var cands []Candidate
	for _, qtype := range []uint16{dns.TypeA, dns.TypeAAAA} {
		answers, err := c.query(ctx, host, qtype)
		if err != nil {
			return nil, err
		}
		cands = append(cands, answers...)
	}
	return cands, nil
}

func (c *DNSClient) query(ctx context.Context, host string, qtype uint16) ([]Candidate, error) {
	m := new(dns.Msg)
	m.SetQuestion(dns.Fqdn(host), qtype)
	m.RecursionDesired = true

	in, _, err := c.client.ExchangeContext(ctx, m, c.server)
	if err != nil {
		code := types.ResolveOther
		var ne net.Error
		if (errors.As(err, &ne) && ne.Timeout()) || errors.Is(err, context.DeadlineExceeded) {
			code = types.ResolveTimeout
		}
		return nil, &types.ResolveError{Host: host, Code: code, Err: err}
	}

	switch in.Rcode {
	case dns.RcodeSuccess:
	case dns.RcodeNameError:
		return nil, &types.ResolveError{Host: host, Code: types.ResolveNotFound, Err: errors.New(dns.RcodeToString[in.Rcode])}
	case dns.RcodeServerFailure:
		return nil, &types.ResolveError{Host: host, Code: types.ResolveTemporary, Err: errors.New(dns.RcodeToString[in.Rcode])}
	default:
		return nil, &types.ResolveError{Host: host, Code: types.ResolveOther, Err: fmt.Errorf("rcode %s", dns.RcodeToString[in.Rcode])}
	}

	var cands []Candidate
	for _, rr := range in.Answer {
		switch r := rr.(type) {
		case *dns.A:
			if addr, ok := netip.AddrFromSlice(r.A.To4()); ok {
				cands = append(cands, Candidate{Family: FamilyIPv4, Addr: addr})
			}
		case *dns.AAAA:
			if addr, ok := netip.AddrFromSlice(r.AAAA.To16()); ok {
				cands = append(cands, Candidate{Family: FamilyIPv6, Addr: addr})
			}
		}
	}
	return cands, nil
}
