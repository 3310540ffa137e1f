// Package dl 按代码哈希动态加载原生验证库
//
// 🎯 **职责**：
// - 登记库数据（依赖单元），以 blake2b-256 作为代码哈希
// - 通过 wazero 编译并实例化库，同一哈希只实例化一次
// - 提供 pkg/interfaces/dl.Library 句柄，在其上完成外部调用的参数编组（见 library.go）
//
// 库以 wasm 模块的形式分发，导出线性内存及各验证符号；需要宿主能力的库从 env 模块导入。
package dl

import (
	"context"
	"fmt"
	"sync"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"
	"golang.org/x/crypto/blake2b"

	dlconfig "github.com/weisyn/dlverify/internal/config/dl"
	ifdl "github.com/weisyn/dlverify/pkg/interfaces/dl"
	"github.com/weisyn/dlverify/pkg/interfaces/infrastructure/log"
	"github.com/weisyn/dlverify/pkg/types"
)

// Context 动态加载上下文
type Context struct {
	logger log.Logger
	config *dlconfig.Config

	runtime wazero.Runtime

	// compiledCache 编译结果缓存
	compiledCache sync.Map // map[types.CodeHash]wazero.CompiledModule

	hostFunctionsRegistered bool
	hostMutex               sync.Mutex

	mu        sync.Mutex
	cells     map[types.CodeHash][]byte
	libraries map[types.CodeHash]*library
	closed    bool
}

// NewContext 创建动态加载上下文
//
// cfg 为 nil 时使用默认配置。编译缓存目录不可用或 WASI 实例化失败只记录错误，
// 上下文仍可使用。
func NewContext(logger log.Logger, cfg *dlconfig.Config) *Context {
	if cfg == nil {
		cfg = dlconfig.New(nil)
	}

	ctx := context.Background()

	var runtimeConfig wazero.RuntimeConfig
	if cfg.IsCompilerEnabled() {
		runtimeConfig = wazero.NewRuntimeConfig() // 平台支持时使用编译器
	} else {
		runtimeConfig = wazero.NewRuntimeConfigInterpreter()
	}
	runtimeConfig = runtimeConfig.WithMemoryLimitPages(cfg.GetMaxMemoryPages())
	if cfg.GetCallTimeout() > 0 {
		runtimeConfig = runtimeConfig.WithCloseOnContextDone(true)
	}
	if dir := cfg.GetCompilationCacheDir(); dir != "" {
		cache, err := wazero.NewCompilationCacheWithDir(dir)
		if err != nil {
			if logger != nil {
				logger.Errorf("编译缓存目录不可用，回退到内存缓存: dir=%s err=%v", dir, err)
			}
			cache = wazero.NewCompilationCache()
		}
		runtimeConfig = runtimeConfig.WithCompilationCache(cache)
	}

	wasmRuntime := wazero.NewRuntimeWithConfig(ctx, runtimeConfig)

	if cfg.IsWASIEnabled() {
		if _, err := wasi_snapshot_preview1.Instantiate(ctx, wasmRuntime); err != nil {
			if logger != nil {
				logger.Errorf("WASI模块实例化失败: %v", err)
			}
		} else if logger != nil {
			logger.Debug("WASI模块实例化成功（wasi_snapshot_preview1）")
		}
	}

	return &Context{
		logger:    logger,
		config:    cfg,
		runtime:   wasmRuntime,
		cells:     make(map[types.CodeHash][]byte),
		libraries: make(map[types.CodeHash]*library),
	}
}

// CodeHashOf 计算库数据的代码哈希（blake2b-256）
func CodeHashOf(data []byte) types.CodeHash {
	return types.CodeHash(blake2b.Sum256(data))
}

// AddCell 登记库数据并返回其代码哈希
//
// 数据被复制保存；重复登记相同数据是幂等的。
func (c *Context) AddCell(data []byte) types.CodeHash {
	hash := CodeHashOf(data)

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.cells[hash]; !exists {
		c.cells[hash] = append([]byte(nil), data...)
		if c.logger != nil {
			c.logger.Debugf("登记库数据: code_hash=%s size=%d", hash, len(data))
		}
	}
	return hash
}

// RegisterHostFunctions 注册 env 宿主模块
//
// env 模块只能实例化一次，需在加载依赖这些函数的库之前一次性注册全部函数。
// 已注册后再传入非空函数集返回 ErrHostModuleRegistered；空函数集总是忽略。
func (c *Context) RegisterHostFunctions(functions map[string]interface{}) error {
	c.hostMutex.Lock()
	defer c.hostMutex.Unlock()

	if len(functions) == 0 {
		return nil
	}
	if c.hostFunctionsRegistered {
		return ErrHostModuleRegistered
	}

	builder := c.runtime.NewHostModuleBuilder("env")
	for name, fn := range functions {
		builder.NewFunctionBuilder().
			WithFunc(fn).
			Export(name)

		if c.logger != nil {
			c.logger.Debugf("注册宿主函数: %s", name)
		}
	}

	if _, err := builder.Instantiate(context.Background()); err != nil {
		return fmt.Errorf("宿主模块实例化失败: %w", err)
	}

	c.hostFunctionsRegistered = true

	if c.logger != nil {
		c.logger.Debugf("宿主函数注册成功（共%d个函数）", len(functions))
	}
	return nil
}

// Load 按代码哈希加载库
//
// 同一哈希重复加载返回同一个句柄。
func (c *Context) Load(ctx context.Context, codeHash types.CodeHash) (ifdl.Library, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil, ErrContextClosed
	}
	if lib, ok := c.libraries[codeHash]; ok {
		return lib, nil
	}

	data, ok := c.cells[codeHash]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrLibraryNotFound, codeHash)
	}

	compiled, err := c.compile(ctx, codeHash, data)
	if err != nil {
		return nil, err
	}
	memoryName, ok := exportedMemoryName(compiled)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoMemory, codeHash)
	}

	name := fmt.Sprintf("lib_%x", codeHash[:8])
	moduleConfig := wazero.NewModuleConfig().
		WithName(name).
		WithStartFunctions()

	module, err := c.runtime.InstantiateModule(ctx, compiled, moduleConfig)
	if err != nil {
		return nil, fmt.Errorf("wazero实例化失败 %s: %w", codeHash, err)
	}
	memory := module.ExportedMemory(memoryName)
	if memory == nil {
		_ = module.Close(ctx)
		return nil, fmt.Errorf("%w: %s", ErrNoMemory, codeHash)
	}

	lib := newLibrary(name, codeHash, module, memory, c.config, c.logger)
	c.libraries[codeHash] = lib

	if c.logger != nil {
		c.logger.Infof("库加载成功: name=%s code_hash=%s", name, codeHash)
	}
	return lib, nil
}

// exportedMemoryName 返回库导出的线性内存名，优先 "memory"
func exportedMemoryName(compiled wazero.CompiledModule) (string, bool) {
	memories := compiled.ExportedMemories()
	if _, ok := memories["memory"]; ok {
		return "memory", true
	}
	for name := range memories {
		return name, true
	}
	return "", false
}

func (c *Context) compile(ctx context.Context, codeHash types.CodeHash, data []byte) (wazero.CompiledModule, error) {
	if v, ok := c.compiledCache.Load(codeHash); ok {
		return v.(wazero.CompiledModule), nil
	}

	compiled, err := c.runtime.CompileModule(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("wazero编译失败 %s: %w", codeHash, err)
	}

	if c.logger != nil {
		c.logger.Debug("==================== 库导入清单 ====================")
		importedFunctions := compiled.ImportedFunctions()
		if len(importedFunctions) == 0 {
			c.logger.Debug("  （无导入函数）")
		} else {
			for _, def := range importedFunctions {
				moduleName, funcName, _ := def.Import()
				c.logger.Debugf("  [%s] %s", moduleName, funcName)
			}
		}
		for name := range compiled.ExportedFunctions() {
			c.logger.Debugf("  导出: %s", name)
		}
	}

	c.compiledCache.Store(codeHash, compiled)
	return compiled, nil
}

// Close 关闭上下文及所有已加载的库，之后的加载返回 ErrContextClosed
func (c *Context) Close(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true
	c.libraries = make(map[types.CodeHash]*library)

	if err := c.runtime.Close(ctx); err != nil {
		return fmt.Errorf("关闭运行时失败: %w", err)
	}
	return nil
}
