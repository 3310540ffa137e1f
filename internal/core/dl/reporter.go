package dl

import (
	"github.com/weisyn/dlverify/pkg/interfaces/infrastructure/metrics"
)

var _ metrics.MemoryReporter = (*Context)(nil)

// ModuleName 实现 MemoryReporter
func (c *Context) ModuleName() string {
	return "dl"
}

// CollectMemoryStats 统计已登记的库数据、编译结果与各实例的线性内存
func (c *Context) CollectMemoryStats() metrics.ModuleMemoryStats {
	c.mu.Lock()
	defer c.mu.Unlock()

	var approxBytes int64
	for _, data := range c.cells {
		approxBytes += int64(len(data))
	}
	for _, lib := range c.libraries {
		if lib.memory != nil {
			approxBytes += int64(lib.memory.Size())
		}
	}

	var compiled int64
	c.compiledCache.Range(func(_, _ interface{}) bool {
		compiled++
		return true
	})

	return metrics.ModuleMemoryStats{
		Module:      c.ModuleName(),
		Layer:       "L2-Infrastructure",
		Objects:     int64(len(c.libraries)),
		ApproxBytes: approxBytes,
		CacheItems:  int64(len(c.cells)) + compiled,
	}
}
