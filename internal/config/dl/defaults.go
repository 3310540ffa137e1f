package dl

import "time"

const (
	defaultUseCompiler = true

	// defaultMaxMemoryPages 32MiB，足以容纳 1MiB 预填充数据的暂存副本
	defaultMaxMemoryPages uint32 = 512

	// maxMemoryPagesLimit wasm32 地址空间上限（4GiB）
	maxMemoryPagesLimit uint32 = 65536

	defaultEnableWASI = false

	// defaultScratchPages 覆盖常见的签名与消息参数；预填充数据会触发增长
	defaultScratchPages uint32 = 1

	defaultCallTimeout time.Duration = 0
)
