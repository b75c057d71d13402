package config

import (
	"fmt"
	"log/slog"
	"net"
	"strings"

	"go.uber.org/multierr"

	"github.com/dep2p/go-chanlistener/pkg/lib/log"
)

// ============================================================================
//                              MetricsConfig - 指标
// ============================================================================

// MetricsConfig 指标配置
type MetricsConfig struct {
	// Enabled 是否收集指标
	Enabled bool `json:"enabled"`

	// Addr Prometheus 抓取地址（如 "127.0.0.1:9090"），为空时不对外暴露
	Addr string `json:"addr,omitempty"`

	// Path 抓取路径
	Path string `json:"path,omitempty"`
}

// DefaultMetricsConfig 返回默认指标配置
func DefaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Enabled: true,
		Path:    "/metrics",
	}
}

// Validate 验证指标配置
func (c MetricsConfig) Validate() error {
	var err error
	if c.Addr != "" {
		if _, _, e := net.SplitHostPort(c.Addr); e != nil {
			err = multierr.Append(err, fmt.Errorf("metrics.addr %q: %w", c.Addr, e))
		}
		if !c.Enabled {
			err = multierr.Append(err, fmt.Errorf("metrics.addr set but metrics disabled"))
		}
	}
	if c.Path != "" && !strings.HasPrefix(c.Path, "/") {
		err = multierr.Append(err, fmt.Errorf("metrics.path %q must start with /", c.Path))
	}
	return err
}

// ============================================================================
//                              LogConfig - 日志
// ============================================================================

// LogConfig 日志配置
//
// 环境变量 CHANLISTENER_LOG_LEVEL / CHANLISTENER_LOG_FORMAT 在进程启动时生效，
// 配置文件中的值在加载后覆盖它们。
type LogConfig struct {
	// Level 级别，格式与环境变量一致，例如 "core/resolver=debug,info"
	Level string `json:"level,omitempty"`

	// Format 输出格式: "text" 或 "json"
	Format string `json:"format,omitempty"`
}

// DefaultLogConfig 返回默认日志配置
func DefaultLogConfig() LogConfig {
	return LogConfig{Level: "info", Format: "text"}
}

// Validate 验证日志配置
func (c LogConfig) Validate() error {
	var err error
	for _, part := range strings.Split(c.Level, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name := part
		if _, lvl, ok := strings.Cut(part, "="); ok {
			name = strings.TrimSpace(lvl)
		}
		if _, ok := log.ParseLevel(name); !ok {
			err = multierr.Append(err, fmt.Errorf("log.level: unknown level %q", name))
		}
	}
	switch strings.ToLower(c.Format) {
	case "", "text", "json":
	default:
		err = multierr.Append(err, fmt.Errorf("log.format %q: want text or json", c.Format))
	}
	return err
}

// Levels 转换为日志包的级别配置
func (c LogConfig) Levels() log.Levels {
	lv := log.Levels{
		Default:    slog.LevelInfo,
		Components: make(map[string]slog.Level),
		JSON:       strings.EqualFold(c.Format, "json"),
	}
	log.ParseLevels(&lv, c.Level)
	return lv
}
