// Package dl 提供动态加载上下文的配置
package dl

import (
	"time"

	configtypes "github.com/weisyn/dlverify/pkg/types"
)

// DLOptions 动态加载配置选项
type DLOptions struct {
	// === 运行时配置 ===
	UseCompiler         bool   `json:"use_compiler"`          // true 使用编译器，false 使用解释器
	MaxMemoryPages      uint32 `json:"max_memory_pages"`      // 原生库线性内存上限（页）
	EnableWASI          bool   `json:"enable_wasi"`           // 是否实例化 WASI
	CompilationCacheDir string `json:"compilation_cache_dir"` // 编译缓存目录，为空时只在内存中缓存

	// === 调用配置 ===
	ScratchPages uint32        `json:"scratch_pages"` // 暂存区初始页数，不足时按需增长
	CallTimeout  time.Duration `json:"call_timeout"`  // 单次外部调用超时，0 不限制
}

// Config 动态加载配置实现
type Config struct {
	options *DLOptions
}

// New 创建动态加载配置
func New(userConfig *configtypes.UserDLConfig) *Config {
	options := createDefaultDLOptions()
	if userConfig != nil {
		applyUserDLConfig(options, userConfig)
	}
	return &Config{options: options}
}

func createDefaultDLOptions() *DLOptions {
	return &DLOptions{
		UseCompiler:         defaultUseCompiler,
		MaxMemoryPages:      defaultMaxMemoryPages,
		EnableWASI:          defaultEnableWASI,
		CompilationCacheDir: "",
		ScratchPages:        defaultScratchPages,
		CallTimeout:         defaultCallTimeout,
	}
}

func applyUserDLConfig(options *DLOptions, dlConfig *configtypes.UserDLConfig) {
	if dlConfig.UseCompiler != nil {
		options.UseCompiler = *dlConfig.UseCompiler
	}
	if dlConfig.MaxMemoryPages != nil && *dlConfig.MaxMemoryPages > 0 {
		options.MaxMemoryPages = *dlConfig.MaxMemoryPages
		if options.MaxMemoryPages > maxMemoryPagesLimit {
			options.MaxMemoryPages = maxMemoryPagesLimit
		}
	}
	if dlConfig.EnableWASI != nil {
		options.EnableWASI = *dlConfig.EnableWASI
	}
	if dlConfig.CompilationCacheDir != nil {
		options.CompilationCacheDir = *dlConfig.CompilationCacheDir
	}
	if dlConfig.ScratchPages != nil && *dlConfig.ScratchPages > 0 {
		options.ScratchPages = *dlConfig.ScratchPages
	}
	if dlConfig.CallTimeoutMillis != nil && *dlConfig.CallTimeoutMillis >= 0 {
		options.CallTimeout = time.Duration(*dlConfig.CallTimeoutMillis) * time.Millisecond
	}
}

// GetOptions 获取完整配置选项
func (c *Config) GetOptions() *DLOptions {
	return c.options
}

// IsCompilerEnabled 是否使用编译器模式
func (c *Config) IsCompilerEnabled() bool {
	return c.options.UseCompiler
}

// GetMaxMemoryPages 获取线性内存上限（页）
func (c *Config) GetMaxMemoryPages() uint32 {
	return c.options.MaxMemoryPages
}

// IsWASIEnabled 是否实例化 WASI
func (c *Config) IsWASIEnabled() bool {
	return c.options.EnableWASI
}

// GetCompilationCacheDir 获取编译缓存目录
func (c *Config) GetCompilationCacheDir() string {
	return c.options.CompilationCacheDir
}

// GetScratchPages 获取暂存区初始页数
func (c *Config) GetScratchPages() uint32 {
	return c.options.ScratchPages
}

// GetCallTimeout 获取单次外部调用超时
func (c *Config) GetCallTimeout() time.Duration {
	return c.options.CallTimeout
}
