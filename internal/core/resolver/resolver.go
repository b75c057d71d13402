// Package resolver 将监听地址解析为具体的套接字地址
//
// 规则：
//   - 通配主机（空字符串）不做查询，直接返回未指定地址，由 bind 决定具体接口
//   - 其他主机执行正向查询，按返回顺序选取第一个 IPv4/IPv6 候选，其他地址族跳过
//   - 没有匹配的候选时返回 types.ErrAddressNotAvailable
//   - 查询本身失败时返回 *types.ResolveError
//
// 查询后端可替换：System 使用 net.Resolver，DNSClient 使用 miekg/dns 直接向指定服务器查询。
package resolver

import (
	"context"
	"fmt"
	"net/netip"

	"github.com/dep2p/go-chanlistener/pkg/lib/log"
	"github.com/dep2p/go-chanlistener/pkg/types"
)

var logger = log.Logger("core/resolver")

// ============================================================================
//                              候选地址
// ============================================================================

// Family 候选地址的地址族
type Family int

const (
	// FamilyOther 非 IP 地址族
	FamilyOther Family = iota
	// FamilyIPv4 IPv4
	FamilyIPv4
	// FamilyIPv6 IPv6
	FamilyIPv6
)

// String 返回地址族的字符串表示
func (f Family) String() string {
	switch f {
	case FamilyIPv4:
		return "ipv4"
	case FamilyIPv6:
		return "ipv6"
	default:
		return "other"
	}
}

// Candidate 查询返回的一个候选地址
type Candidate struct {
	Family Family
	Addr   netip.Addr
}

// CandidateOf 根据地址推断地址族
func CandidateOf(addr netip.Addr) Candidate {
	addr = addr.Unmap()
	switch {
	case addr.Is4():
		return Candidate{Family: FamilyIPv4, Addr: addr}
	case addr.Is6():
		return Candidate{Family: FamilyIPv6, Addr: addr}
	default:
		return Candidate{Family: FamilyOther, Addr: addr}
	}
}

// Select 按顺序选取第一个被接受的 IPv4/IPv6 候选
func Select(cands []Candidate, pref types.IPVersion) (netip.Addr, bool) {
	for _, c := range cands {
		switch c.Family {
		case FamilyIPv4:
			if pref.Accepts(true) {
				return c.Addr, true
			}
		case FamilyIPv6:
			if pref.Accepts(false) {
				return c.Addr, true
			}
		}
	}
	return netip.Addr{}, false
}

// ============================================================================
//                              Resolver
// ============================================================================

// Lookup 正向查询后端
type Lookup interface {
	// LookupHost 返回主机的候选地址，保持后端返回的顺序
	LookupHost(ctx context.Context, host string) ([]Candidate, error)
}

// Resolver 地址解析器
type Resolver struct {
	lookup Lookup
}

// New 创建解析器，lookup 为 nil 时使用系统解析器
func New(lookup Lookup) *Resolver {
	if lookup == nil {
		lookup = NewSystem(SystemConfig{})
	}
	return &Resolver{lookup: lookup}
}

// Resolve 解析主机与端口
//
// host 为空表示通配主机。
func (r *Resolver) Resolve(ctx context.Context, host string, port uint16, pref types.IPVersion) (netip.AddrPort, error) {
	if host == "" {
		addr := netip.IPv4Unspecified()
		if pref == types.IPVersion6 {
			addr = netip.IPv6Unspecified()
		}
		logger.Debug("通配主机，交由 bind 选择接口", "addr", addr, "port", port)
		return netip.AddrPortFrom(addr, port), nil
	}

	cands, err := r.lookup.LookupHost(ctx, host)
	if err != nil {
		logger.Debug("主机解析失败", "host", host, "err", err)
		return netip.AddrPort{}, err
	}

	addr, ok := Select(cands, pref)
	if !ok {
		logger.Debug("没有可用的地址", "host", host, "candidates", len(cands), "pref", pref)
		return netip.AddrPort{}, fmt.Errorf("resolve %s: %w", host, types.ErrAddressNotAvailable)
	}

	logger.Debug("主机解析完成", "host", host, "addr", addr, "candidates", len(cands))
	return netip.AddrPortFrom(addr, port), nil
}
