package app

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"seoreport/internal/chart"
	brcfg "seoreport/internal/config"
	"seoreport/internal/gateway/database"
	"seoreport/internal/logger"
	"seoreport/internal/prompt"
	"seoreport/internal/report"
	"seoreport/internal/store"
	apihttp "seoreport/internal/transport/http/api"
)

// App 负责应用级编排：加载配置→初始化依赖→启动 HTTP 服务。
type App struct {
	cfg     *brcfg.Config
	service *ReportService
	http    *apihttp.Server
}

// NewApp 根据配置构建应用对象（不启动）
func NewApp(cfg *brcfg.Config) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("nil config")
	}
	logger.Setup(cfg.App.Env)
	logger.SetLevel(cfg.App.LogLevel)
	return buildAppWithWire(context.Background(), cfg)
}

// Service 返回业务服务，CLI 子命令直接复用。
func (a *App) Service() *ReportService { return a.service }

// Run 启动 HTTP 服务直到 ctx 取消。
func (a *App) Run(ctx context.Context) error {
	if a == nil || a.cfg == nil {
		return fmt.Errorf("app not initialized")
	}
	if a.http == nil {
		return fmt.Errorf("http server not initialized")
	}
	group, ctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		logger.Infof("✓ HTTP 接口监听 %s", a.http.Addr())
		if err := a.http.Start(ctx); err != nil && ctx.Err() == nil {
			return fmt.Errorf("HTTP 服务停止: %w", err)
		}
		return nil
	})

	group.Go(func() error {
		<-ctx.Done()
		logger.Infof("收到退出信号，正在关闭...")
		return nil
	})

	err := group.Wait()
	a.Close()
	return err
}

// Close 释放存储等资源。
func (a *App) Close() {
	if a == nil {
		return
	}
	a.service.Close()
}

// AppBuilder 按配置逐个构造依赖。
type AppBuilder struct {
	cfg *brcfg.Config
}

func NewAppBuilder(cfg *brcfg.Config) *AppBuilder {
	return &AppBuilder{cfg: cfg}
}

func (b *AppBuilder) Build(ctx context.Context) (*App, error) {
	cfg := b.cfg
	svc, err := BuildService(ctx, cfg)
	if err != nil {
		return nil, err
	}
	server, err := apihttp.NewServer(apihttp.ServerConfig{Addr: cfg.App.HTTPAddr, Service: svc})
	if err != nil {
		svc.Close()
		return nil, fmt.Errorf("初始化 HTTP 失败: %w", err)
	}
	return &App{cfg: cfg, service: svc, http: server}, nil
}

// BuildService 组装模板、构建器、存储与图表输出。
func BuildService(ctx context.Context, cfg *brcfg.Config) (*ReportService, error) {
	if cfg == nil {
		return nil, fmt.Errorf("nil config")
	}
	builder, err := BuildPromptBuilder(cfg)
	if err != nil {
		return nil, err
	}
	st, err := buildBundleStore(ctx, cfg.Store)
	if err != nil {
		return nil, err
	}
	return NewReportService(builder, st, buildChartWriter(cfg.Chart)), nil
}

// BuildPromptBuilder 按配置加载模板覆盖并创建构建器。
func BuildPromptBuilder(cfg *brcfg.Config) (*report.DefaultPromptBuilder, error) {
	var loader report.TemplateLoader
	if dir := strings.TrimSpace(cfg.Prompt.Dir); dir != "" {
		mgr := prompt.NewManager(dir)
		if err := mgr.Load(); err != nil {
			return nil, fmt.Errorf("加载提示词模板失败: %w", err)
		}
		if names := mgr.Names(); len(names) > 0 {
			logger.Infof("✓ 模板目录 %s: %v", dir, names)
		}
		loader = mgr
	}
	tpl, err := report.LoadTemplates(loader, cfg.Prompt.SystemTemplate, cfg.Prompt.UserTemplate)
	if err != nil {
		return nil, err
	}
	return report.NewDefaultPromptBuilder(tpl, report.Options{
		KeywordLimit: cfg.Report.KeywordLimit,
		Currency:     cfg.Report.CurrencySymbol,
	}), nil
}

func buildBundleStore(ctx context.Context, cfg brcfg.StoreConfig) (store.BundleStore, error) {
	path := strings.TrimSpace(cfg.Path)
	if path == "" {
		logger.Infof("✓ 使用内存存储，保留最近 %d 条", cfg.MaxRecords)
		return store.NewMemoryBundleStore(cfg.MaxRecords), nil
	}
	st, err := database.NewBundleLogStore(path)
	if err != nil {
		return nil, fmt.Errorf("初始化记录存储失败: %w", err)
	}
	logPath := st.Path()
	if abs, err := filepath.Abs(logPath); err == nil {
		logPath = abs
	}
	if n, err := st.Count(ctx); err == nil {
		logger.Infof("✓ 记录写入 %s（已有 %d 条）", logPath, n)
	}
	return st, nil
}

func buildChartWriter(cfg brcfg.ChartConfig) *chart.Writer {
	if !cfg.Enabled {
		return nil
	}
	var shooter chart.Screenshotter
	if cfg.Screenshot {
		shooter = chart.NewBrowserManager(cfg.ChromeURL, time.Duration(cfg.TimeoutSeconds)*time.Second)
		logger.Infof("✓ 图表截图已启用")
	}
	return chart.NewWriter(cfg.Dir, shooter)
}
