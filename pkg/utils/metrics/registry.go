// Package metrics 提供进程全局的内存上报器注册和收集
package metrics

import (
	"sync"

	"github.com/weisyn/dlverify/pkg/interfaces/infrastructure/metrics"
)

var (
	// mu 保护 reporters 切片的读写锁
	mu sync.RWMutex

	// reporters 全局注册的内存上报器列表
	reporters []metrics.MemoryReporter
)

// RegisterMemoryReporter 注册一个内存上报器，nil 被忽略
//
// 建议在模块的 fx module.go 中，实例化完主要服务后调用。
func RegisterMemoryReporter(r metrics.MemoryReporter) {
	if r == nil {
		return
	}

	mu.Lock()
	defer mu.Unlock()

	reporters = append(reporters, r)
}

// UnregisterMemoryReporter 移除已注册的上报器，未注册时无操作
//
// 按接口值比较，r 的动态类型须可比较（通常是指针）。
func UnregisterMemoryReporter(r metrics.MemoryReporter) {
	if r == nil {
		return
	}

	mu.Lock()
	defer mu.Unlock()

	kept := reporters[:0]
	for _, existing := range reporters {
		if existing != r {
			kept = append(kept, existing)
		}
	}
	for i := len(kept); i < len(reporters); i++ {
		reporters[i] = nil
	}
	reporters = kept
}

// CollectAllModuleStats 收集所有已注册模块的内存统计信息
//
// 返回顺序与注册顺序一致；单个上报器 panic 时跳过该模块。
func CollectAllModuleStats() []metrics.ModuleMemoryStats {
	mu.RLock()
	defer mu.RUnlock()

	stats := make([]metrics.ModuleMemoryStats, 0, len(reporters))
	for _, r := range reporters {
		func() {
			defer func() {
				_ = recover()
			}()
			stats = append(stats, r.CollectMemoryStats())
		}()
	}

	return stats
}

// GetRegisteredReportersCount 返回已注册的上报器数量
func GetRegisteredReportersCount() int {
	mu.RLock()
	defer mu.RUnlock()
	return len(reporters)
}

// ClearAllMemoryReporters 清空所有已注册的上报器（主要用于测试）
func ClearAllMemoryReporters() {
	mu.Lock()
	defer mu.Unlock()
	reporters = nil
}
