package types

// AppConfig 应用配置
// 对应 JSON 配置文件的顶层结构，指针字段为 nil 表示配置文件中未出现
type AppConfig struct {
	// 日志配置 - 对应配置文件中的 log 字段
	Log *UserLogConfig `json:"log,omitempty"`

	// 动态加载配置 - 对应配置文件中的 dl 字段
	DL *UserDLConfig `json:"dl,omitempty"`
}

// UserLogConfig 用户日志配置
// 只包含JSON配置文件中实际出现的字段
type UserLogConfig struct {
	Level    *string `json:"level,omitempty"`     // 日志级别：debug, info, warn, error, fatal
	FilePath *string `json:"file_path,omitempty"` // 日志文件路径
}

// UserDLConfig 用户动态加载配置
// 只包含JSON配置文件中实际出现的字段
type UserDLConfig struct {
	UseCompiler         *bool   `json:"use_compiler,omitempty"`          // 是否使用编译器模式
	MaxMemoryPages      *uint32 `json:"max_memory_pages,omitempty"`      // 原生库线性内存上限（页，64KiB/页）
	EnableWASI          *bool   `json:"enable_wasi,omitempty"`           // 是否实例化 WASI
	CompilationCacheDir *string `json:"compilation_cache_dir,omitempty"` // 编译缓存目录
	ScratchPages        *uint32 `json:"scratch_pages,omitempty"`         // 调用参数暂存区初始页数
	CallTimeoutMillis   *int64  `json:"call_timeout_ms,omitempty"`       // 单次外部调用超时（毫秒，0 不限制）
}

// StringPtr 返回字符串指针（用于构造配置）
func StringPtr(s string) *string { return &s }

// BoolPtr 返回布尔指针
func BoolPtr(b bool) *bool { return &b }

// Uint32Ptr 返回 uint32 指针
func Uint32Ptr(v uint32) *uint32 { return &v }

// Int64Ptr 返回 int64 指针
func Int64Ptr(v int64) *int64 { return &v }
