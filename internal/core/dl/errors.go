package dl

import "errors"

var (
	// ErrLibraryNotFound 未注册该代码哈希对应的库数据
	ErrLibraryNotFound = errors.New("library not found for code hash")

	// ErrContextClosed 加载上下文已关闭
	ErrContextClosed = errors.New("dl context closed")

	// ErrNoMemory 原生库未导出线性内存，无法传递参数
	ErrNoMemory = errors.New("library exports no memory")

	// ErrHostModuleRegistered env 宿主模块已注册，不能再追加函数
	ErrHostModuleRegistered = errors.New("env host module already registered")
)
