// Package invariant 提供内部一致性断言
//
// 断言失败代表原生库违反了调用约定或适配层自身存在缺陷，
// 不属于调用方可恢复的错误路径。默认构建中断言失败会 panic；
// 使用 `-tags release` 构建时断言被编译为空操作。
package invariant

import "fmt"

// Check 条件不成立时 panic
func Check(cond bool, format string, args ...interface{}) {
	if Enabled && !cond {
		panic(fmt.Sprintf("invariant violated: "+format, args...))
	}
}

// Zeroed 断言缓冲区全零
func Zeroed(buf []byte, what string) {
	if !Enabled {
		return
	}
	for i, b := range buf {
		if b != 0 {
			panic(fmt.Sprintf("invariant violated: %s not zeroed at offset %d", what, i))
		}
	}
}
