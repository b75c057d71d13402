// Package config 提供监听器的 JSON 配置
//
// 配置按用途分组：
//   - Listen: 监听参数，最终转换为监听器属性覆盖项
//   - Resolver: 地址解析后端
//   - Metrics: 指标导出
//   - Log: 日志级别与格式
//
// 使用示例：
//
//	cfg, err := config.LoadFile("listener.json")
//	if err != nil {
//	    return err
//	}
//	props, err := cfg.ToProperties()
package config

import (
	"go.uber.org/multierr"
)

// Config 监听器完整配置
type Config struct {
	// URL 启动时打开的地址，为空表示只创建不打开
	// 例如 "net.tcp://+:808/service" 或 "/ip4/127.0.0.1/tcp/0"
	URL string `json:"url,omitempty"`

	// ChannelType 通道类型，目前只支持 "duplex-session"
	ChannelType string `json:"channel_type"`

	// Binding 通道绑定，目前只支持 "tcp"
	Binding string `json:"binding"`

	// Listen 监听参数
	Listen ListenConfig `json:"listen"`

	// Resolver 地址解析配置
	Resolver ResolverConfig `json:"resolver"`

	// Metrics 指标配置
	Metrics MetricsConfig `json:"metrics"`

	// Log 日志配置
	Log LogConfig `json:"log"`
}

// NewConfig 创建默认配置
func NewConfig() *Config {
	return &Config{
		ChannelType: "duplex-session",
		Binding:     "tcp",
		Listen:      DefaultListenConfig(),
		Resolver:    DefaultResolverConfig(),
		Metrics:     DefaultMetricsConfig(),
		Log:         DefaultLogConfig(),
	}
}

// Validate 验证配置，返回所有字段错误的合并结果
func (c *Config) Validate() error {
	var err error
	if _, e := ParseChannelType(c.ChannelType); e != nil {
		err = multierr.Append(err, e)
	}
	if _, e := ParseBinding(c.Binding); e != nil {
		err = multierr.Append(err, e)
	}
	return multierr.Combine(
		err,
		c.Listen.Validate(),
		c.Resolver.Validate(),
		c.Metrics.Validate(),
		c.Log.Validate(),
	)
}
