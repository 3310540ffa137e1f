package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/fx"

	configmodule "github.com/weisyn/dlverify/internal/config"
	"github.com/weisyn/dlverify/internal/core/dl"
	logmodule "github.com/weisyn/dlverify/internal/core/infrastructure/log"
	configiface "github.com/weisyn/dlverify/pkg/interfaces/config"
	ifdl "github.com/weisyn/dlverify/pkg/interfaces/dl"
	logiface "github.com/weisyn/dlverify/pkg/interfaces/infrastructure/log"
	"github.com/weisyn/dlverify/pkg/types"
	"github.com/weisyn/dlverify/pkg/utils/metrics"
)

const appStartTimeout = 30 * time.Second

// runWithLibrary 启动 config/log/dl 模块，加载库文件后执行 fn
func runWithLibrary(flags *GlobalFlags, libPath string, fn func(ctx context.Context, lib ifdl.Library, logger logiface.Logger) error) error {
	appConfig, err := configmodule.LoadAppConfig(flags.ConfigPath)
	if err != nil {
		return err
	}
	if flags.LogLevel != "" {
		if appConfig.Log == nil {
			appConfig.Log = &types.UserLogConfig{}
		}
		appConfig.Log.Level = types.StringPtr(flags.LogLevel)
	}

	data, err := os.ReadFile(libPath)
	if err != nil {
		return fmt.Errorf("读取库文件: %w", err)
	}

	var (
		dlContext *dl.Context
		logger    logiface.Logger
	)
	fxApp := fx.New(
		fx.NopLogger,
		fx.Provide(func() configiface.AppOptions {
			return configmodule.NewAppOptions(appConfig)
		}),
		configmodule.Module(),
		logmodule.Module(),
		dl.Module(),
		fx.Populate(&dlContext, &logger),
	)
	if err := fxApp.Err(); err != nil {
		return fmt.Errorf("初始化模块失败: %w", err)
	}

	startCtx, cancel := context.WithTimeout(context.Background(), appStartTimeout)
	defer cancel()
	if err := fxApp.Start(startCtx); err != nil {
		return fmt.Errorf("启动失败: %w", err)
	}
	defer func() {
		if err := fxApp.Stop(context.Background()); err != nil {
			logger.Warnf("停止失败: %v", err)
		}
		_ = logger.Sync()
	}()

	ctx := context.Background()
	lib, err := dlContext.Load(ctx, dlContext.AddCell(data))
	if err != nil {
		return fmt.Errorf("加载库 %s: %w", libPath, err)
	}
	logger.Debugf("已加载库: path=%s name=%s code_hash=%s", libPath, lib.Name(), lib.CodeHash())

	err = fn(ctx, lib, logger)
	for _, stats := range metrics.CollectAllModuleStats() {
		logger.Debugf("模块内存: module=%s objects=%d approx_bytes=%d cache_items=%d",
			stats.Module, stats.Objects, stats.ApproxBytes, stats.CacheItems)
	}
	return err
}
