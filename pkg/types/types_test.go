package types

import (
	"errors"
	"fmt"
	"os"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPropertyID_String(t *testing.T) {
	assert.Equal(t, "listen-backlog", PropListenBacklog.String())
	assert.Equal(t, "disallowed-user-agent", PropDisallowedUserAgent.String())
	assert.Equal(t, "property(99)", PropertyID(99).String())
	assert.Equal(t, 17, PropertyCount)
}

func TestCodec(t *testing.T) {
	assert.Equal(t, uint32(0xDEADBEEF), DecodeUint32(EncodeUint32(0xDEADBEEF)))
	assert.Equal(t, uint64(1<<40+7), DecodeUint64(EncodeUint64(1<<40+7)))
	assert.Len(t, EncodeBool(true), Size32)
	assert.True(t, DecodeBool(EncodeBool(true)))
	assert.False(t, DecodeBool(EncodeBool(false)))
	assert.True(t, DecodeBool(EncodeUint32(42)), "非零即 true")

	src := []byte("abc")
	p := BytesProperty(PropCustomListenerParameters, src)
	src[0] = 'x'
	assert.Equal(t, "abc", string(p.Value), "BytesProperty 应复制输入")
}

func TestIPVersion_Accepts(t *testing.T) {
	tests := []struct {
		v        IPVersion
		ipv4     bool
		accepted bool
	}{
		{IPVersion4, true, true},
		{IPVersion4, false, false},
		{IPVersion6, true, false},
		{IPVersion6, false, true},
		{IPVersionAuto, true, true},
		{IPVersionAuto, false, true},
		{0, true, true},
		{0, false, true},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s/ipv4=%v", tt.v, tt.ipv4), func(t *testing.T) {
			assert.Equal(t, tt.accepted, tt.v.Accepts(tt.ipv4))
		})
	}
}

func TestEnumStrings(t *testing.T) {
	assert.Equal(t, "duplex-session", ChannelTypeDuplexSession.String())
	assert.Equal(t, ChannelTypeDuplexSession, ChannelType(7))
	assert.Equal(t, "tcp", BindingTCP.String())
	assert.Equal(t, "closed", StateClosed.String())
	assert.Equal(t, "unset", IPVersion(0).String())
	assert.Equal(t, "long", CallbackLong.String())
}

func TestTransportError(t *testing.T) {
	err := NewTransportError("bind", os.NewSyscallError("bind", syscall.EADDRINUSE))
	assert.Equal(t, syscall.EADDRINUSE, err.Errno)
	assert.ErrorIs(t, err, syscall.EADDRINUSE)
	assert.Contains(t, err.Error(), "bind failed")

	plain := NewTransportError("listen", errors.New("boom"))
	assert.Zero(t, plain.Errno)
	assert.Equal(t, "listen failed: boom", plain.Error())
}

func TestURLError(t *testing.T) {
	var err error = &URLError{URL: "ftp://x", Reason: "unsupported scheme"}
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.NotErrorIs(t, err, ErrInvalidOperation)
}

func TestResolveError(t *testing.T) {
	inner := errors.New("nxdomain")
	err := fmt.Errorf("open: %w", &ResolveError{Host: "a.test", Code: ResolveNotFound, Err: inner})

	var re *ResolveError
	assert.ErrorAs(t, err, &re)
	assert.Equal(t, ResolveNotFound, re.Code)
	assert.ErrorIs(t, err, inner)
	assert.Contains(t, err.Error(), "not-found")
}
