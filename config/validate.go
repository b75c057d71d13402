package config

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"

	"github.com/dep2p/go-chanlistener/pkg/types"
)

// ValidateAll 验证整个配置，包括字段之间的兼容性
func ValidateAll(c *Config) error {
	if c == nil {
		return errors.New("config is nil")
	}
	if err := c.Validate(); err != nil {
		return err
	}
	return ValidateCompatibility(c)
}

// MustValidate 验证配置，失败时 panic
//
// 仅用于初始化阶段或测试代码。
func MustValidate(c *Config) {
	if err := ValidateAll(c); err != nil {
		panic(fmt.Sprintf("config validation failed: %v", err))
	}
}

// ValidateCompatibility 验证字段组合
//
// 监听器只实现了 duplex-session + tcp，其他组合在创建时会返回 ErrNotImplemented，
// 这里提前报告。
func ValidateCompatibility(c *Config) error {
	var err error

	ct, e1 := ParseChannelType(c.ChannelType)
	b, e2 := ParseBinding(c.Binding)
	if e1 == nil && ct != types.ChannelTypeDuplexSession {
		err = multierr.Append(err, fmt.Errorf("channel_type %s: %w", ct, types.ErrNotImplemented))
	}
	if e2 == nil && b != types.BindingTCP {
		err = multierr.Append(err, fmt.Errorf("binding %s: %w", b, types.ErrNotImplemented))
	}

	if c.Resolver.Net != "" && c.Resolver.Mode != ResolverDNS {
		err = multierr.Append(err, fmt.Errorf("resolver.net only applies in %q mode", ResolverDNS))
	}
	return err
}
