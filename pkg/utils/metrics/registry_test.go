package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/weisyn/dlverify/pkg/interfaces/infrastructure/metrics"
)

type staticReporter struct {
	name string
}

func (r staticReporter) ModuleName() string { return r.name }
func (r staticReporter) CollectMemoryStats() metrics.ModuleMemoryStats {
	return metrics.ModuleMemoryStats{Module: r.name, Objects: 1}
}

type panickingReporter struct{}

func (panickingReporter) ModuleName() string { return "broken" }
func (panickingReporter) CollectMemoryStats() metrics.ModuleMemoryStats {
	panic("collect failed")
}

func TestRegistry(t *testing.T) {
	ClearAllMemoryReporters()
	defer ClearAllMemoryReporters()

	RegisterMemoryReporter(nil)
	RegisterMemoryReporter(staticReporter{name: "a"})
	RegisterMemoryReporter(panickingReporter{})
	RegisterMemoryReporter(staticReporter{name: "b"})
	assert.Equal(t, 3, GetRegisteredReportersCount())

	stats := CollectAllModuleStats()
	if assert.Len(t, stats, 2, "panic 的上报器被跳过") {
		assert.Equal(t, "a", stats[0].Module)
		assert.Equal(t, "b", stats[1].Module)
	}
}

func TestUnregisterMemoryReporter(t *testing.T) {
	ClearAllMemoryReporters()
	defer ClearAllMemoryReporters()

	a, b := &staticReporter{name: "a"}, &staticReporter{name: "b"}
	RegisterMemoryReporter(a)
	RegisterMemoryReporter(b)

	UnregisterMemoryReporter(a)
	UnregisterMemoryReporter(a)
	UnregisterMemoryReporter(nil)

	stats := CollectAllModuleStats()
	if assert.Len(t, stats, 1) {
		assert.Equal(t, "b", stats[0].Module)
	}
}
