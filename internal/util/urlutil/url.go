// Package urlutil 将监听 URL 解码为主机与端口
//
// 支持两种写法：
//
//	http://127.0.0.1:8080/path      URL 形式，缺省端口按 scheme 取值
//	net.tcp://+:808/service         主机为 + 或 * 表示通配（任意本地地址）
//	/ip4/127.0.0.1/tcp/4001         多地址形式
//	/dns4/example.com/tcp/4001
package urlutil

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/dep2p/go-chanlistener/pkg/types"
)

// 各 scheme 的缺省端口
var defaultPorts = map[string]uint16{
	"http":     80,
	"https":    443,
	"net.tcp":  808,
	"soap.udp": 3702,
}

// 多地址形式
var multiaddrPattern = regexp.MustCompile(`^/(ip4|ip6|dns|dns4|dns6)/([^/]+)/tcp/(\d+)$`)

// Endpoint 解码结果
type Endpoint struct {
	// Scheme URL scheme，多地址形式为 "tcp"
	Scheme string

	// Host 主机名或 IP 字面量，通配时为空
	Host string

	// Port 端口号
	Port uint16

	// Wildcard 主机为 + 或 *
	Wildcard bool
}

// Decode 解码监听 URL
//
// 失败时返回 *types.URLError，可用 errors.Is(err, types.ErrInvalidArgument) 判断。
func Decode(text string) (Endpoint, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Endpoint{}, &types.URLError{URL: text, Reason: "empty url"}
	}
	if strings.HasPrefix(text, "/") {
		return decodeMultiaddr(text)
	}

	u, err := url.Parse(text)
	if err != nil {
		return Endpoint{}, &types.URLError{URL: text, Reason: err.Error()}
	}

	scheme := strings.ToLower(u.Scheme)
	def, ok := defaultPorts[scheme]
	if !ok {
		return Endpoint{}, &types.URLError{URL: text, Reason: "unsupported scheme " + strconv.Quote(u.Scheme)}
	}

	host := u.Hostname()
	if host == "" {
		return Endpoint{}, &types.URLError{URL: text, Reason: "missing host"}
	}

	ep := Endpoint{Scheme: scheme, Host: host, Port: def}
	if host == "+" || host == "*" {
		ep.Host = ""
		ep.Wildcard = true
	}

	if p := u.Port(); p != "" {
		port, err := strconv.ParseUint(p, 10, 16)
		if err != nil {
			return Endpoint{}, &types.URLError{URL: text, Reason: "invalid port " + strconv.Quote(p)}
		}
		ep.Port = uint16(port)
	}
	return ep, nil
}

func decodeMultiaddr(text string) (Endpoint, error) {
	m := multiaddrPattern.FindStringSubmatch(text)
	if m == nil {
		return Endpoint{}, &types.URLError{URL: text, Reason: "invalid multiaddr"}
	}
	port, err := strconv.ParseUint(m[3], 10, 16)
	if err != nil {
		return Endpoint{}, &types.URLError{URL: text, Reason: "invalid port " + strconv.Quote(m[3])}
	}
	return Endpoint{Scheme: "tcp", Host: m[2], Port: uint16(port)}, nil
}
