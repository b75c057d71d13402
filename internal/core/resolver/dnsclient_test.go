package resolver

import (
	"context"
	"errors"
	"net"
	"net/netip"
	"testing"
	"time"

	"github.com/miekg/dns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dep2p/go-chanlistener/pkg/types"
)

// startTestDNS 启动进程内 DNS 服务器，返回 "ip:port"
//
// 记录：
//
//	listener.test  A 127.0.0.1, AAAA ::1
//	v6only.test    AAAA ::1
//	broken.test    SERVFAIL
//	其他           NXDOMAIN
func startTestDNS(t *testing.T) string {
	t.Helper()

	pc, err := net.ListenPacket("udp", "127.0.0.1:0")
	require.NoError(t, err)

	handler := dns.HandlerFunc(func(w dns.ResponseWriter, r *dns.Msg) {
		m := new(dns.Msg)
		m.SetReply(r)
		q := r.Question[0]

		add := func(s string) {
			rr, err := dns.NewRR(s)
			if err == nil {
				m.Answer = append(m.Answer, rr)
			}
		}

		switch q.Name {
		case "listener.test.":
			if q.Qtype == dns.TypeA {
				add("listener.test. 60 IN A 127.0.0.1")
			} else if q.Qtype == dns.TypeAAAA {
				add("listener.test. 60 IN AAAA ::1")
			}
		case "v6only.test.":
			if q.Qtype == dns.TypeAAAA {
				add("v6only.test. 60 IN AAAA ::1")
			}
		case "broken.test.":
			m.Rcode = dns.RcodeServerFailure
		default:
			m.Rcode = dns.RcodeNameError
		}
		_ = w.WriteMsg(m)
	})

	started := make(chan struct{})
	srv := &dns.Server{
		PacketConn:        pc,
		Handler:           handler,
		NotifyStartedFunc: func() { close(started) },
	}
	go func() { _ = srv.ActivateAndServe() }()

	select {
	case <-started:
	case <-time.After(5 * time.Second):
		t.Fatal("dns server did not start")
	}
	t.Cleanup(func() { _ = srv.Shutdown() })

	return pc.LocalAddr().String()
}

func TestNewDNSClient_Invalid(t *testing.T) {
	_, err := NewDNSClient(DNSClientConfig{})
	assert.ErrorIs(t, err, types.ErrInvalidArgument)

	_, err = NewDNSClient(DNSClientConfig{Server: "no-port"})
	assert.ErrorIs(t, err, types.ErrInvalidArgument)
}

func TestDNSClient_Lookup(t *testing.T) {
	server := startTestDNS(t)
	c, err := NewDNSClient(DNSClientConfig{Server: server, Timeout: 2 * time.Second})
	require.NoError(t, err)

	cands, err := c.LookupHost(context.Background(), "listener.test")
	require.NoError(t, err)
	require.Len(t, cands, 2)
	assert.Equal(t, Candidate{Family: FamilyIPv4, Addr: netip.MustParseAddr("127.0.0.1")}, cands[0])
	assert.Equal(t, Candidate{Family: FamilyIPv6, Addr: netip.MustParseAddr("::1")}, cands[1])
}

func TestDNSClient_Literal(t *testing.T) {
	// 字面量不访问服务器，服务器地址不可达也能成功
	c, err := NewDNSClient(DNSClientConfig{Server: "127.0.0.1:1"})
	require.NoError(t, err)

	cands, err := c.LookupHost(context.Background(), "::1")
	require.NoError(t, err)
	require.Len(t, cands, 1)
	assert.Equal(t, FamilyIPv6, cands[0].Family)
}

func TestDNSClient_Errors(t *testing.T) {
	server := startTestDNS(t)
	c, err := NewDNSClient(DNSClientConfig{Server: server, Timeout: 2 * time.Second})
	require.NoError(t, err)

	tests := []struct {
		host string
		code types.ResolveCode
	}{
		{"missing.test", types.ResolveNotFound},
		{"broken.test", types.ResolveTemporary},
	}

	for _, tt := range tests {
		t.Run(tt.host, func(t *testing.T) {
			_, err := c.LookupHost(context.Background(), tt.host)
			var re *types.ResolveError
			require.True(t, errors.As(err, &re))
			assert.Equal(t, tt.code, re.Code)
			assert.Equal(t, tt.host, re.Host)
		})
	}
}

func TestResolve_DNSClient(t *testing.T) {
	server := startTestDNS(t)
	c, err := NewDNSClient(DNSClientConfig{Server: server, Timeout: 2 * time.Second})
	require.NoError(t, err)
	r := New(c)

	ap, err := r.Resolve(context.Background(), "listener.test", 8080, 0)
	require.NoError(t, err)
	assert.Equal(t, netip.MustParseAddrPort("127.0.0.1:8080"), ap)

	ap, err = r.Resolve(context.Background(), "listener.test", 8080, types.IPVersion6)
	require.NoError(t, err)
	assert.Equal(t, netip.MustParseAddrPort("[::1]:8080"), ap)

	_, err = r.Resolve(context.Background(), "v6only.test", 8080, types.IPVersion4)
	assert.ErrorIs(t, err, types.ErrAddressNotAvailable)
}

func TestSystem_CustomServer(t *testing.T) {
	server := startTestDNS(t)
	s := NewSystem(SystemConfig{Server: server, Timeout: 2 * time.Second})

	cands, err := s.LookupHost(context.Background(), "v6only.test")
	require.NoError(t, err)
	require.Len(t, cands, 1)
	assert.Equal(t, netip.MustParseAddr("::1"), cands[0].Addr)

	_, err = s.LookupHost(context.Background(), "missing.test")
	var re *types.ResolveError
	require.True(t, errors.As(err, &re))
	assert.Equal(t, types.ResolveNotFound, re.Code)
}
