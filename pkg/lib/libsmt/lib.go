// Package libsmt 封装动态加载的 SMT（稀疏默克尔树）验证库
package libsmt

import (
	"context"

	"github.com/weisyn/dlverify/pkg/interfaces/dl"
	"github.com/weisyn/dlverify/pkg/types"
)

// LibSMT SMT 适配器
type LibSMT struct {
	symbols dl.SMTSymbols
}

// Load 从已加载的库构造适配器
func Load(lib dl.Library) *LibSMT {
	return &LibSMT{symbols: lib.SMT()}
}

// Verify 验证 SMT 证明
//
// keys 与 values 是等长的 32 字节分片序列，第 i 个 key 对应第 i 个 value。
// 前置检查按以下顺序进行，任一失败都不会发起原生调用：
//   - len(keys) != len(values) 或 keys 为空 → types.ErrChunkCountMismatch
//   - len(root) != 32                     → types.ErrInvalidRootSize
//   - 最后一个分片不足 32 字节            → types.ErrTruncatedChunk
func (l *LibSMT) Verify(ctx context.Context, root, keys, values, proof []byte) error {
	if len(keys) != len(values) || len(keys) == 0 {
		return types.ErrChunkCountMismatch
	}
	if len(root) != types.SMTChunkSize {
		return types.ErrInvalidRootSize
	}
	if len(keys)%types.SMTChunkSize != 0 {
		return types.ErrTruncatedChunk
	}

	pairCount := uint32(len(keys) / types.SMTChunkSize)
	code := l.symbols.CKBSMTVerify(ctx,
		root,
		pairCount,
		keys,
		values,
		proof,
		uint32(len(proof)),
	)
	if code != 0 {
		return types.StatusFromNative(code)
	}
	return nil
}
