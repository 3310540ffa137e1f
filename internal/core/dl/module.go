package dl

import (
	"context"

	"go.uber.org/fx"

	dlconfig "github.com/weisyn/dlverify/internal/config/dl"
	logimpl "github.com/weisyn/dlverify/internal/core/infrastructure/log"
	"github.com/weisyn/dlverify/pkg/interfaces/infrastructure/log"
	"github.com/weisyn/dlverify/pkg/utils/metrics"
)

// ModuleParams 动态加载模块依赖
type ModuleParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Logger    log.Logger       `optional:"true"`
	Config    *dlconfig.Config `optional:"true"`
}

// Module 返回动态加载模块
func Module() fx.Option {
	return fx.Module("dl",
		fx.Provide(ProvideContext),
	)
}

// ProvideContext 创建动态加载上下文，注册内存上报，并在应用停止时注销上报并关闭
func ProvideContext(params ModuleParams) *Context {
	dlContext := NewContext(logimpl.WithModule(params.Logger, "dl"), params.Config)
	metrics.RegisterMemoryReporter(dlContext)

	params.Lifecycle.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			metrics.UnregisterMemoryReporter(dlContext)
			return dlContext.Close(ctx)
		},
	})
	return dlContext
}
