package config

import (
	"encoding/json"
	"fmt"
	"os"

	dlconfig "github.com/weisyn/dlverify/internal/config/dl"
	"github.com/weisyn/dlverify/internal/config/log"
	"github.com/weisyn/dlverify/pkg/interfaces/config"
	"github.com/weisyn/dlverify/pkg/types"
)

// Provider 实现配置提供者接口
type Provider struct {
	appConfig *types.AppConfig
}

// NewProvider 创建配置提供者
func NewProvider(appConfig *types.AppConfig) config.Provider {
	return &Provider{
		appConfig: appConfig,
	}
}

// GetLog 获取日志配置
func (p *Provider) GetLog() *log.LogOptions {
	var userLogConfig *types.UserLogConfig
	if p.appConfig != nil && p.appConfig.Log != nil {
		userLogConfig = p.appConfig.Log
	}

	// log.New会处理默认值应用和用户配置覆盖
	return log.New(userLogConfig).GetOptions()
}

// GetDL 获取动态加载配置
func (p *Provider) GetDL() *dlconfig.Config {
	var userDLConfig *types.UserDLConfig
	if p.appConfig != nil && p.appConfig.DL != nil {
		userDLConfig = p.appConfig.DL
	}
	return dlconfig.New(userDLConfig)
}

// appOptions AppOptions 的直接实现
type appOptions struct {
	appConfig *types.AppConfig
}

// NewAppOptions 包装已解析的应用配置
func NewAppOptions(appConfig *types.AppConfig) config.AppOptions {
	return &appOptions{appConfig: appConfig}
}

func (o *appOptions) GetAppConfig() *types.AppConfig {
	return o.appConfig
}

// LoadAppConfig 从 JSON 文件加载应用配置
//
// path 为空时返回空配置，所有字段使用默认值。
func LoadAppConfig(path string) (*types.AppConfig, error) {
	if path == "" {
		return &types.AppConfig{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	var appConfig types.AppConfig
	if err := json.Unmarshal(data, &appConfig); err != nil {
		return nil, fmt.Errorf("解析配置文件失败 %s: %w", path, err)
	}
	return &appConfig, nil
}
