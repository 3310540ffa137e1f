// Package types 定义验证适配层共享的结果与错误词汇
package types

import (
	"errors"
	"fmt"
)

// StatusCode 原生调用状态码
//
// 0 表示成功；非零值要么是原生库返回的不透明错误码（原样透传），
// 要么是适配层在跨越调用边界之前检测到的本地错误码（见下方常量）。
type StatusCode int32

// StatusOK 成功
const StatusOK StatusCode = 0

// 本地错误码
//
// 数值与原生库历史取值保持一致，调用方可以直接与脚本退出码比对。
const (
	// ErrDKIMNotFound 所有候选 DKIM 签名均未通过验证
	ErrDKIMNotFound StatusCode = 1

	// ErrLengthMismatch 模数与签名长度不一致
	ErrLengthMismatch StatusCode = 8

	// ErrChunkCountMismatch SMT keys 与 values 长度不一致
	ErrChunkCountMismatch StatusCode = -1

	// ErrTruncatedChunk SMT keys/values 最后一个分片不足 32 字节
	ErrTruncatedChunk StatusCode = -2

	// ErrInvalidRootSize SMT 根不是 32 字节
	ErrInvalidRootSize StatusCode = -3

	// ErrSymbolNotFound 已加载的原生库未导出所需符号
	ErrSymbolNotFound StatusCode = -10

	// ErrForeignCallFault 外部调用陷入 trap 或访问线性内存失败
	ErrForeignCallFault StatusCode = -11

	// ErrNilArgument 必需的预填充数据或输出参数为 nil
	ErrNilArgument StatusCode = -12
)

var statusNames = map[StatusCode]string{
	ErrDKIMNotFound:       "no matching DKIM signature",
	ErrLengthMismatch:     "modulus/signature length mismatch",
	ErrChunkCountMismatch: "keys/values length mismatch",
	ErrTruncatedChunk:     "truncated 32-byte chunk",
	ErrInvalidRootSize:    "root must be 32 bytes",
	ErrSymbolNotFound:     "symbol not found in loaded library",
	ErrForeignCallFault:   "foreign call fault",
	ErrNilArgument:        "required argument is nil",
}

// Error 实现 error 接口
func (c StatusCode) Error() string {
	if name, ok := statusNames[c]; ok {
		return fmt.Sprintf("status %d: %s", int32(c), name)
	}
	return fmt.Sprintf("native status %d", int32(c))
}

// IsLocal 数值是否与适配层自定义的错误码相同
//
// 只按数值判断：原生库可能返回同样的数值（例如 ckb_smt_verify 返回 -1），
// 因此结果不能用来区分错误来源。
func (c StatusCode) IsLocal() bool {
	_, ok := statusNames[c]
	return ok
}

// StatusFromNative 将原生调用结果解释为状态码
//
// 原生返回值为 isize，这里按有符号 32 位截断，与脚本退出码的宽度一致。
func StatusFromNative(result int64) StatusCode {
	return StatusCode(int32(result))
}

// IsStatusCode 检查错误是否为状态码
func IsStatusCode(err error) (StatusCode, bool) {
	if err == nil {
		return StatusOK, false
	}
	var code StatusCode
	if errors.As(err, &code) {
		return code, true
	}
	return StatusOK, false
}

// CodeOf 返回错误对应的状态码，nil 为 0，非状态码错误统一视为调用故障
func CodeOf(err error) int32 {
	if err == nil {
		return int32(StatusOK)
	}
	if code, ok := IsStatusCode(err); ok {
		return int32(code)
	}
	return int32(ErrForeignCallFault)
}
