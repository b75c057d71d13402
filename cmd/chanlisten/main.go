// Package main 提供 chanlisten 命令行入口
//
// 按配置创建并打开一个监听器，直到收到退出信号：
//
//	chanlisten -url net.tcp://+:808/service -backlog 128
//	chanlisten -config listener.json -metrics-addr 127.0.0.1:9090
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"

	chanlistener "github.com/dep2p/go-chanlistener"
	"github.com/dep2p/go-chanlistener/config"
	"github.com/dep2p/go-chanlistener/pkg/lib/log"
)

var logger = log.Logger("chanlisten/cmd")

// ═══════════════════════════════════════════════════════════════════════════
// 命令行参数
// ═══════════════════════════════════════════════════════════════════════════
//
// 配置文件提供完整配置，命令行参数只覆盖显式设置的字段。
var (
	configFile = flag.String("config", "", "配置文件路径（JSON）")
	url        = flag.String("url", "", "监听 URL，如 net.tcp://+:808/service")
	backlog    = flag.Uint("backlog", 0, "监听队列长度")
	ipVersion  = flag.String("ip-version", "", "地址族偏好 (ipv4/ipv6/auto)")

	resolverMode = flag.String("resolver", "", "解析后端 (system/dns)")
	dnsServer    = flag.String("dns-server", "", "DNS 服务器，格式 ip:port")

	metricsAddr = flag.String("metrics-addr", "", "Prometheus 抓取地址，如 127.0.0.1:9090")

	logLevel  = flag.String("log-level", "", "日志级别，如 info 或 core/listener=debug,info")
	logFormat = flag.String("log-format", "", "日志格式 (text/json)")
	logFile   = flag.String("log", "", "日志文件路径（默认输出到 stderr）")
	fxLog     = flag.Bool("fx-log", false, "输出 Fx 依赖注入事件")

	printConfig = flag.Bool("print-config", false, "打印合并后的配置并退出")
	showVersion = flag.Bool("version", false, "显示版本信息")
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "错误: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	flag.Parse()

	if *showVersion {
		fmt.Println(chanlistener.VersionInfo())
		return nil
	}

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("配置错误: %w", err)
	}
	if *printConfig {
		data, err := cfg.ToJSON()
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	closeLog, err := setupLogging(cfg.Log)
	if err != nil {
		return err
	}
	defer closeLog()

	fxLogger := zap.NewNop()
	if *fxLog {
		if fxLogger, err = zap.NewDevelopment(); err != nil {
			return fmt.Errorf("创建 Fx 日志失败: %w", err)
		}
		defer func() { _ = fxLogger.Sync() }()
	}

	var l *chanlistener.Listener
	app, err := chanlistener.NewApp(cfg, fxLogger,
		metricsServer(cfg.Metrics),
		fx.Populate(&l),
	)
	if err != nil {
		return err
	}

	logger.Info("启动监听器", "version", chanlistener.Version, "url", cfg.URL)

	startCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := app.Start(startCtx); err != nil {
		return fmt.Errorf("启动失败: %w", err)
	}

	printListenerInfo(l, cfg)
	waitForSignal()

	stopCtx, cancelStop := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelStop()
	if err := app.Stop(stopCtx); err != nil {
		return fmt.Errorf("停止失败: %w", err)
	}
	return nil
}

// loadConfig 读取配置文件并应用命令行覆盖
func loadConfig() (*config.Config, error) {
	cfg := config.NewConfig()
	if *configFile != "" {
		var err error
		if cfg, err = config.LoadFile(*configFile); err != nil {
			return nil, err
		}
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "url":
			cfg.URL = *url
		case "backlog":
			cfg.Listen.Backlog = uint32(*backlog)
		case "ip-version":
			cfg.Listen.IPVersion = *ipVersion
		case "resolver":
			cfg.Resolver.Mode = *resolverMode
		case "dns-server":
			cfg.Resolver.Server = *dnsServer
		case "metrics-addr":
			cfg.Metrics.Enabled = true
			cfg.Metrics.Addr = *metricsAddr
		case "log-level":
			cfg.Log.Level = *logLevel
		case "log-format":
			cfg.Log.Format = *logFormat
		}
	})

	if err := config.ValidateAll(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setupLogging 按配置重建默认 logger，返回关闭日志文件的函数
func setupLogging(c config.LogConfig) (func(), error) {
	out := os.Stderr
	closeFn := func() {}
	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			return nil, fmt.Errorf("打开日志文件失败: %w", err)
		}
		out = f
		closeFn = func() { _ = f.Close() }
	}
	log.Apply(out, c.Levels())
	return closeFn, nil
}

func printListenerInfo(l *chanlistener.Listener, cfg *config.Config) {
	fmt.Println(chanlistener.VersionInfo())
	fmt.Printf("监听器: %s\n", l.ID())
	if addr, err := l.Addr(); err == nil {
		fmt.Printf("监听地址: %s\n", addr)
	} else {
		fmt.Println("未配置 URL，监听器处于 Created 状态")
	}
	if cfg.Metrics.Addr != "" {
		fmt.Printf("指标: http://%s%s\n", cfg.Metrics.Addr, cfg.Metrics.Path)
	}
	fmt.Println("按 Ctrl+C 退出")
}

func waitForSignal() {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	sig := <-signals
	logger.Info("收到退出信号", "signal", sig.String())
}
