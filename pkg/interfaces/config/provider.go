// Package config provides configuration provider interfaces.
package config

import (
	dlconfig "github.com/weisyn/dlverify/internal/config/dl"
	logconfig "github.com/weisyn/dlverify/internal/config/log"
)

// Provider 配置提供者接口
type Provider interface {
	// GetLog 获取日志配置
	GetLog() *logconfig.LogOptions

	// GetDL 获取动态加载配置
	GetDL() *dlconfig.Config
}
