package config

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/multierr"
)

// ListenConfig 监听参数
//
// 零值字段不会生成属性覆盖项，监听器使用属性表的零值默认。
type ListenConfig struct {
	// Backlog 监听队列长度，0 与系统默认行为一致
	Backlog uint32 `json:"backlog"`

	// IPVersion 解析时接受的地址族: "ipv4" / "ipv6" / "auto"，空表示不限制
	IPVersion string `json:"ip_version,omitempty"`

	// CallbackModel 异步回调模型: "short" / "long"
	CallbackModel string `json:"callback_model,omitempty"`

	// ConnectTimeout 上层通道的连接超时
	ConnectTimeout Duration `json:"connect_timeout,omitempty"`

	// CloseTimeout 上层通道的关闭超时
	CloseTimeout Duration `json:"close_timeout,omitempty"`

	// ToHeaderMatching To 头匹配选项位
	ToHeaderMatching uint32 `json:"to_header_matching,omitempty"`

	// TransportURLMatching 传输 URL 匹配选项位
	TransportURLMatching uint32 `json:"transport_url_matching,omitempty"`

	// DisallowedUserAgents 禁止的 User-Agent 子串
	DisallowedUserAgents []string `json:"disallowed_user_agents,omitempty"`

	// MaxPropertyBytes 变长属性合计的存储上限
	MaxPropertyBytes int `json:"max_property_bytes"`
}

// DefaultListenConfig 返回默认监听参数
func DefaultListenConfig() ListenConfig {
	return ListenConfig{
		MaxPropertyBytes: 64 * 1024,
	}
}

// Validate 验证监听参数
func (c ListenConfig) Validate() error {
	var err error
	if _, e := ParseIPVersion(c.IPVersion); e != nil {
		err = multierr.Append(err, e)
	}
	if _, e := ParseCallbackModel(c.CallbackModel); e != nil {
		err = multierr.Append(err, e)
	}
	if c.ConnectTimeout < 0 {
		err = multierr.Append(err, errors.New("listen.connect_timeout must not be negative"))
	}
	if c.CloseTimeout < 0 {
		err = multierr.Append(err, errors.New("listen.close_timeout must not be negative"))
	}
	for i, ua := range c.DisallowedUserAgents {
		if ua == "" || strings.ContainsAny(ua, "\r\n") {
			err = multierr.Append(err, fmt.Errorf("listen.disallowed_user_agents[%d]: must be a non-empty single line", i))
		}
	}
	if c.MaxPropertyBytes < 0 {
		err = multierr.Append(err, errors.New("listen.max_property_bytes must not be negative"))
	}
	return err
}
