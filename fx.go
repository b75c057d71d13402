package chanlistener

import (
	"fmt"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"github.com/dep2p/go-chanlistener/config"
	"github.com/dep2p/go-chanlistener/internal/core/listener"
)

// Module 返回监听器的 Fx 选项
//
// 提供 *Listener 和 *Metrics（指标关闭时为 nil）。
// 启动时若 cfg.URL 非空则打开监听器，停止时释放。
// 可以额外提供 prometheus.Registerer 注册指标，或提供 Lookup 覆盖配置中的解析后端。
func Module(cfg *config.Config) fx.Option {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	return fx.Options(
		fx.Supply(cfg),
		listener.Module,
	)
}

// AppOption 追加到监听器的创建选项，通过 Fx value group 注入
func AppOption(opt Option) fx.Option {
	return fx.Provide(fx.Annotate(
		func() Option { return opt },
		fx.ResultTags(`group:"listener_options"`),
	))
}

// NewApp 构建 Fx 应用
//
// 配置先经过完整验证；fxLog 为 nil 时不输出 Fx 事件日志。
func NewApp(cfg *config.Config, fxLog *zap.Logger, extra ...fx.Option) (*fx.App, error) {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	if err := config.ValidateAll(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	if fxLog == nil {
		fxLog = zap.NewNop()
	}

	modules := []fx.Option{
		Module(cfg),
		fx.WithLogger(func() fxevent.Logger {
			return &fxevent.ZapLogger{Logger: fxLog}
		}),
	}
	modules = append(modules, extra...)

	app := fx.New(modules...)
	if err := app.Err(); err != nil {
		return nil, fmt.Errorf("build fx app: %w", err)
	}
	return app, nil
}
