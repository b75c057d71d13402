package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/dep2p/go-chanlistener/pkg/types"
)

// FromJSON 从 JSON 数据创建配置，未出现的字段保留默认值
//
// 示例 JSON:
//
//	{
//	  "url": "net.tcp://+:808/service",
//	  "listen": {"backlog": 128, "ip_version": "ipv4"},
//	  "resolver": {"mode": "dns", "server": "127.0.0.1:53"}
//	}
func FromJSON(data []byte) (*Config, error) {
	cfg := NewConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return cfg, nil
}

// LoadFile 读取并验证 JSON 配置文件
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	cfg, err := FromJSON(data)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// ToJSON 序列化为带缩进的 JSON
func (c *Config) ToJSON() ([]byte, error) {
	return json.MarshalIndent(c, "", "  ")
}

// ============================================================================
//                              枚举解析
// ============================================================================

// ParseChannelType 解析通道类型名称
func ParseChannelType(s string) (types.ChannelType, error) {
	for _, t := range []types.ChannelType{
		types.ChannelTypeInput, types.ChannelTypeOutput, types.ChannelTypeDuplex,
		types.ChannelTypeInputSession, types.ChannelTypeOutputSession, types.ChannelTypeDuplexSession,
		types.ChannelTypeRequest, types.ChannelTypeReply,
	} {
		if strings.EqualFold(s, t.String()) {
			return t, nil
		}
	}
	return 0, fmt.Errorf("channel_type %q: unknown", s)
}

// ParseBinding 解析通道绑定名称
func ParseBinding(s string) (types.ChannelBinding, error) {
	for _, b := range []types.ChannelBinding{
		types.BindingHTTP, types.BindingTCP, types.BindingUDP, types.BindingCustom, types.BindingNamedPipe,
	} {
		if strings.EqualFold(s, b.String()) {
			return b, nil
		}
	}
	return 0, fmt.Errorf("binding %q: unknown", s)
}

// ParseIPVersion 解析 IP 版本偏好，空字符串返回 0（未设置）
func ParseIPVersion(s string) (types.IPVersion, error) {
	switch strings.ToLower(s) {
	case "":
		return 0, nil
	case "ipv4", "4":
		return types.IPVersion4, nil
	case "ipv6", "6":
		return types.IPVersion6, nil
	case "auto":
		return types.IPVersionAuto, nil
	default:
		return 0, fmt.Errorf("listen.ip_version %q: want ipv4, ipv6 or auto", s)
	}
}

// ParseCallbackModel 解析回调模型，空字符串返回 CallbackShort
func ParseCallbackModel(s string) (types.CallbackModel, error) {
	switch strings.ToLower(s) {
	case "", "short":
		return types.CallbackShort, nil
	case "long":
		return types.CallbackLong, nil
	default:
		return 0, fmt.Errorf("listen.callback_model %q: want short or long", s)
	}
}

// ============================================================================
//                              属性转换
// ============================================================================

// ToProperties 将监听参数转换为创建监听器时的属性覆盖项
//
// 只为非零字段生成覆盖项，顺序固定。
func (c *Config) ToProperties() ([]types.Property, error) {
	l := c.Listen

	ipv, err := ParseIPVersion(l.IPVersion)
	if err != nil {
		return nil, err
	}
	model, err := ParseCallbackModel(l.CallbackModel)
	if err != nil {
		return nil, err
	}

	var props []types.Property
	if l.Backlog != 0 {
		props = append(props, types.Uint32Property(types.PropListenBacklog, l.Backlog))
	}
	if ipv != 0 {
		props = append(props, types.Uint32Property(types.PropIPVersion, uint32(ipv)))
	}
	if model != types.CallbackShort {
		props = append(props, types.Uint32Property(types.PropAsyncCallbackModel, uint32(model)))
	}
	if ms := l.ConnectTimeout.Milliseconds(); ms != 0 {
		props = append(props, types.Uint32Property(types.PropConnectTimeout, ms))
	}
	if ms := l.CloseTimeout.Milliseconds(); ms != 0 {
		props = append(props, types.Uint32Property(types.PropCloseTimeout, ms))
	}
	if l.ToHeaderMatching != 0 {
		props = append(props, types.Uint32Property(types.PropToHeaderMatchingOptions, l.ToHeaderMatching))
	}
	if l.TransportURLMatching != 0 {
		props = append(props, types.Uint32Property(types.PropTransportURLMatchingOptions, l.TransportURLMatching))
	}
	if len(l.DisallowedUserAgents) > 0 {
		props = append(props, types.BytesProperty(types.PropDisallowedUserAgent,
			[]byte(strings.Join(l.DisallowedUserAgents, "\n"))))
	}
	return props, nil
}
