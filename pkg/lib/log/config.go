package log

import (
	"io"
	"log/slog"
	"strings"
)

// 环境变量名
const (
	// EnvLevel 日志级别，格式: 组件=级别,组件=级别,默认级别
	EnvLevel = "CHANLISTENER_LOG_LEVEL"

	// EnvFormat 日志格式: text 或 json
	EnvFormat = "CHANLISTENER_LOG_FORMAT"
)

// Levels 组件日志级别配置
type Levels struct {
	// Default 默认级别
	Default slog.Level

	// Components 各组件的级别
	Components map[string]slog.Level

	// JSON 是否使用 JSON 输出
	JSON bool
}

func defaultLevels() Levels {
	return Levels{
		Default:    slog.LevelInfo,
		Components: make(map[string]slog.Level),
	}
}

// minLevel 返回所有配置中的最低级别，用作 handler 级别
func (c Levels) minLevel() slog.Level {
	lowest := c.Default
	for _, l := range c.Components {
		if l < lowest {
			lowest = l
		}
	}
	return lowest
}

// LevelFor 返回组件当前的日志级别
func LevelFor(component string) slog.Level {
	levelsMu.RLock()
	defer levelsMu.RUnlock()

	if l, ok := levels.Components[component]; ok {
		return l
	}
	return levels.Default
}

// SetLevel 动态设置组件级别
func SetLevel(component string, level slog.Level) {
	levelsMu.Lock()
	defer levelsMu.Unlock()

	levels.Components[component] = level
}

// LevelsFromEnv 从环境变量解析级别配置
//
// getenv 通常为 os.Getenv，测试中可替换。
func LevelsFromEnv(getenv func(string) string) Levels {
	cfg := defaultLevels()
	if s := getenv(EnvLevel); s != "" {
		ParseLevels(&cfg, s)
	}
	if strings.EqualFold(getenv(EnvFormat), "json") {
		cfg.JSON = true
	}
	return cfg
}

// ParseLevels 解析级别配置字符串
//
// 示例: core/resolver=debug,core/listener=warn,info
// 无法识别的级别名被忽略。
func ParseLevels(cfg *Levels, s string) {
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if component, name, ok := strings.Cut(part, "="); ok {
			if level, ok := ParseLevel(strings.TrimSpace(name)); ok {
				cfg.Components[strings.TrimSpace(component)] = level
			}
			continue
		}
		if level, ok := ParseLevel(part); ok {
			cfg.Default = level
		}
	}
}

// ParseLevel 解析日志级别名称
func ParseLevel(name string) (slog.Level, bool) {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}

// Apply 应用级别配置并按配置重建默认 logger
func Apply(w io.Writer, cfg Levels) {
	if cfg.Components == nil {
		cfg.Components = make(map[string]slog.Level)
	}
	levelsMu.Lock()
	levels = cfg
	levelsMu.Unlock()

	slog.SetDefault(newHandlerLogger(w, cfg))
}

func newHandlerLogger(w io.Writer, cfg Levels) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.minLevel()}
	if cfg.JSON {
		return NewJSON(w, opts)
	}
	return New(w, opts)
}
