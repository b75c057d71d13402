// Package log 提供 chanlistener 统一日志接口
//
// 基于 Go 标准库 log/slog 封装，每个组件通过 Logger("core/listener") 获取
// 懒加载 logger，日志调用时才取当前的 slog.Default()，因此可以在运行时切换输出。
//
// 环境变量:
//
//	# 所有组件 info，core/resolver 为 debug
//	CHANLISTENER_LOG_LEVEL=core/resolver=debug,info
//
//	# JSON 输出
//	CHANLISTENER_LOG_FORMAT=json
package log

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sync"
)

// 日志级别常量（从 slog 导出，方便使用）
const (
	LevelDebug = slog.LevelDebug
	LevelInfo  = slog.LevelInfo
	LevelWarn  = slog.LevelWarn
	LevelError = slog.LevelError
)

var (
	levelsMu sync.RWMutex
	levels   = defaultLevels()
)

// SetDefault 设置默认 logger
func SetDefault(l *slog.Logger) {
	slog.SetDefault(l)
}

// New 创建文本格式 logger
func New(w io.Writer, opts *slog.HandlerOptions) *slog.Logger {
	if opts == nil {
		opts = &slog.HandlerOptions{}
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// NewJSON 创建 JSON 格式 logger
func NewJSON(w io.Writer, opts *slog.HandlerOptions) *slog.Logger {
	if opts == nil {
		opts = &slog.HandlerOptions{}
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

// SetOutput 设置日志输出目标，级别为 Info
func SetOutput(w io.Writer) {
	SetOutputWithLevel(w, slog.LevelInfo)
}

// SetOutputWithLevel 同时设置日志输出目标和级别
//
// 该级别同时成为所有组件的默认级别。
func SetOutputWithLevel(w io.Writer, level slog.Level) {
	levelsMu.Lock()
	levels.Default = level
	levelsMu.Unlock()

	slog.SetDefault(New(w, &slog.HandlerOptions{Level: level}))
}

// Discard 返回丢弃所有输出的 logger，主要用于测试
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ============================================================================
//                              LazyLogger
// ============================================================================

// LazyLogger 懒加载 logger
//
// 每次日志调用时都从 slog.Default() 获取最新的 handler，
// 并按组件级别过滤。
type LazyLogger struct {
	component string
}

// Logger 返回带组件名的 LazyLogger
func Logger(component string) *LazyLogger {
	return &LazyLogger{component: component}
}

// Component 返回组件名
func (l *LazyLogger) Component() string {
	return l.component
}

// Enabled 检查组件是否输出该级别
func (l *LazyLogger) Enabled(level slog.Level) bool {
	return level >= LevelFor(l.component)
}

func (l *LazyLogger) log(ctx context.Context, level slog.Level, msg string, args ...any) {
	if !l.Enabled(level) {
		return
	}
	slog.Default().With("component", l.component).Log(ctx, level, msg, args...)
}

// Debug 输出 Debug 级别日志
func (l *LazyLogger) Debug(msg string, args ...any) {
	l.log(context.Background(), slog.LevelDebug, msg, args...)
}

// Info 输出 Info 级别日志
func (l *LazyLogger) Info(msg string, args ...any) {
	l.log(context.Background(), slog.LevelInfo, msg, args...)
}

// Warn 输出 Warn 级别日志
func (l *LazyLogger) Warn(msg string, args ...any) {
	l.log(context.Background(), slog.LevelWarn, msg, args...)
}

// Error 输出 Error 级别日志
func (l *LazyLogger) Error(msg string, args ...any) {
	l.log(context.Background(), slog.LevelError, msg, args...)
}

// With 返回带附加属性的 *slog.Logger
//
// 返回值不再做组件级别过滤。
func (l *LazyLogger) With(args ...any) *slog.Logger {
	return slog.Default().With("component", l.component).With(args...)
}

func init() {
	cfg := LevelsFromEnv(os.Getenv)
	levels = cfg
	slog.SetDefault(newHandlerLogger(os.Stderr, cfg))
}
