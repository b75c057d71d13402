package resolver

import (
	"context"
	"errors"
	"net"
	"net/netip"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dep2p/go-chanlistener/pkg/types"
)

// fakeLookup 固定返回结果的查询后端
type fakeLookup struct {
	cands []Candidate
	err   error
	hosts []string
}

func (f *fakeLookup) LookupHost(_ context.Context, host string) ([]Candidate, error) {
	f.hosts = append(f.hosts, host)
	return f.cands, f.err
}

var (
	v4a   = netip.MustParseAddr("10.0.0.1")
	v4b   = netip.MustParseAddr("10.0.0.2")
	v6a   = netip.MustParseAddr("fd00::1")
	other = Candidate{Family: FamilyOther}
)

// ============================================================================
//                              Select 测试
// ============================================================================

func TestSelect(t *testing.T) {
	tests := []struct {
		name  string
		cands []Candidate
		pref  types.IPVersion
		want  netip.Addr
		ok    bool
	}{
		{"empty", nil, 0, netip.Addr{}, false},
		{"first v4", []Candidate{CandidateOf(v4a), CandidateOf(v6a)}, 0, v4a, true},
		{"first v6", []Candidate{CandidateOf(v6a), CandidateOf(v4a)}, types.IPVersionAuto, v6a, true},
		{"skip other family", []Candidate{other, other, CandidateOf(v4b)}, 0, v4b, true},
		{"only other", []Candidate{other}, 0, netip.Addr{}, false},
		{"v4 only pref", []Candidate{CandidateOf(v6a), CandidateOf(v4b)}, types.IPVersion4, v4b, true},
		{"v6 only pref", []Candidate{CandidateOf(v4a), CandidateOf(v6a)}, types.IPVersion6, v6a, true},
		{"v6 pref no v6", []Candidate{CandidateOf(v4a)}, types.IPVersion6, netip.Addr{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Select(tt.cands, tt.pref)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCandidateOf_Unmap(t *testing.T) {
	c := CandidateOf(netip.MustParseAddr("::ffff:127.0.0.1"))
	assert.Equal(t, FamilyIPv4, c.Family)
	assert.Equal(t, netip.MustParseAddr("127.0.0.1"), c.Addr)
}

// ============================================================================
//                              Resolve 测试
// ============================================================================

func TestResolve_Wildcard(t *testing.T) {
	f := &fakeLookup{}
	r := New(f)

	ap, err := r.Resolve(context.Background(), "", 808, 0)
	require.NoError(t, err)
	assert.Equal(t, netip.MustParseAddrPort("0.0.0.0:808"), ap)

	ap, err = r.Resolve(context.Background(), "", 9000, types.IPVersion6)
	require.NoError(t, err)
	assert.Equal(t, netip.MustParseAddrPort("[::]:9000"), ap)

	assert.Empty(t, f.hosts, "通配主机不应触发查询")
}

func TestResolve_FirstMatch(t *testing.T) {
	f := &fakeLookup{cands: []Candidate{other, CandidateOf(v6a), CandidateOf(v4a)}}
	r := New(f)

	ap, err := r.Resolve(context.Background(), "svc.example", 443, 0)
	require.NoError(t, err)
	assert.Equal(t, netip.AddrPortFrom(v6a, 443), ap)
	assert.Equal(t, []string{"svc.example"}, f.hosts)
}

func TestResolve_AddressNotAvailable(t *testing.T) {
	r := New(&fakeLookup{cands: []Candidate{other}})

	_, err := r.Resolve(context.Background(), "svc.example", 80, 0)
	assert.ErrorIs(t, err, types.ErrAddressNotAvailable)
}

func TestResolve_LookupError(t *testing.T) {
	want := &types.ResolveError{Host: "svc.example", Code: types.ResolveNotFound, Err: errors.New("nx")}
	r := New(&fakeLookup{err: want})

	_, err := r.Resolve(context.Background(), "svc.example", 80, 0)
	var re *types.ResolveError
	require.True(t, errors.As(err, &re))
	assert.Equal(t, types.ResolveNotFound, re.Code)
}

// ============================================================================
//                              System 测试
// ============================================================================

func TestSystem_Literal(t *testing.T) {
	s := NewSystem(SystemConfig{})

	cands, err := s.LookupHost(context.Background(), "127.0.0.1")
	require.NoError(t, err)
	require.Len(t, cands, 1)
	assert.Equal(t, FamilyIPv4, cands[0].Family)
	assert.Equal(t, netip.MustParseAddr("127.0.0.1"), cands[0].Addr)
}

func TestSystem_Unresolvable(t *testing.T) {
	s := NewSystem(SystemConfig{})

	_, err := s.LookupHost(context.Background(), "no-such-host.invalid")
	require.Error(t, err)

	var re *types.ResolveError
	require.True(t, errors.As(err, &re))
	assert.Equal(t, "no-such-host.invalid", re.Host)
}

func TestTranslateDNSError(t *testing.T) {
	tests := []struct {
		err  error
		want types.ResolveCode
	}{
		{&net.DNSError{Err: "no such host", IsNotFound: true}, types.ResolveNotFound},
		{&net.DNSError{Err: "i/o timeout", IsTimeout: true}, types.ResolveTimeout},
		{&net.DNSError{Err: "server misbehaving", IsTemporary: true}, types.ResolveTemporary},
		{&net.DNSError{Err: "weird"}, types.ResolveOther},
		{context.DeadlineExceeded, types.ResolveTimeout},
		{errors.New("boom"), types.ResolveOther},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			err := translateDNSError("h", tt.err)
			var re *types.ResolveError
			require.True(t, errors.As(err, &re))
			assert.Equal(t, tt.want, re.Code)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}
