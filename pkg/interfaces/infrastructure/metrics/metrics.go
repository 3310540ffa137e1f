// Package metrics 定义模块内存上报接口
//
// 📋 **使用方式**：
// 1. 模块实现 MemoryReporter 接口
// 2. 通过 pkg/utils/metrics.RegisterMemoryReporter(...) 注册
// 3. 通过 pkg/utils/metrics.CollectAllModuleStats() 收集所有模块的内存统计
package metrics

// ModuleMemoryStats 模块自行估算的内存状态
//
// 不追求绝对精确，关键是能反映内存使用的趋势和相对大小。
type ModuleMemoryStats struct {
	Module      string `json:"module"`       // 模块名称：dl ...
	Layer       string `json:"layer"`        // 架构层级
	Objects     int64  `json:"objects"`      // 主要对象数：已加载的库实例
	ApproxBytes int64  `json:"approx_bytes"` // 估算字节数：库数据 + 线性内存
	CacheItems  int64  `json:"cache_items"`  // 缓存条目：已登记的库数据、编译结果
	QueueLength int64  `json:"queue_length"` // 等待中的请求数
}

// MemoryReporter 模块内存上报接口
type MemoryReporter interface {
	// ModuleName 返回模块名称
	ModuleName() string

	// CollectMemoryStats 收集当前模块的内存统计信息
	CollectMemoryStats() ModuleMemoryStats
}
