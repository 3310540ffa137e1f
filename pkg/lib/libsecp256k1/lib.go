// Package libsecp256k1 封装动态加载的 secp256k1 验证库
//
// 🎯 **职责**：
// - 加载 1 MiB 预填充数据（预计算表），一次加载多次复用
// - 按原生调用约定编组签名/消息并恢复 65 字节公钥
// - 直接校验当前交易的 blake2b sighash_all 签名
//
// 原生状态码原样作为 types.StatusCode 返回。
package libsecp256k1

import (
	"context"

	"github.com/weisyn/dlverify/pkg/interfaces/dl"
	"github.com/weisyn/dlverify/pkg/types"
	"github.com/weisyn/dlverify/pkg/utils/invariant"
)

// PrefilledData secp256k1 预填充数据
//
// 由调用方独占持有；验证期间只读。
type PrefilledData struct {
	data *[types.Secp256k1DataSize]byte
}

// Bytes 返回预填充数据
func (p *PrefilledData) Bytes() []byte {
	if p == nil || p.data == nil {
		return nil
	}
	return p.data[:]
}

// LibSecp256k1 secp256k1 适配器
type LibSecp256k1 struct {
	symbols dl.Secp256k1Symbols
}

// Load 从已加载的库构造适配器，不会失败
func Load(lib dl.Library) *LibSecp256k1 {
	return &LibSecp256k1{symbols: lib.Secp256k1()}
}

// LoadPrefilledData 申请零初始化的 1 MiB 缓冲区并由原生库填充
func (l *LibSecp256k1) LoadPrefilledData(ctx context.Context) (*PrefilledData, error) {
	data := new([types.Secp256k1DataSize]byte)
	length := uint64(types.Secp256k1DataSize)

	if code := l.symbols.LoadPrefilledData(ctx, data[:], &length); code != 0 {
		return nil, types.StatusFromNative(code)
	}
	return &PrefilledData{data: data}, nil
}

// RecoverPubkey 从签名恢复公钥
//
// 失败时返回全零公钥。prefilledData 必须来自 LoadPrefilledData，nil 返回 types.ErrNilArgument。
func (l *LibSecp256k1) RecoverPubkey(ctx context.Context, prefilledData *PrefilledData, signature, message []byte) (types.Pubkey, error) {
	if prefilledData.Bytes() == nil {
		return types.Pubkey{}, types.ErrNilArgument
	}

	var pubkey types.Pubkey
	length := uint64(len(pubkey))

	invariant.Zeroed(pubkey[:], "pubkey output")
	code := l.symbols.ValidateSignatureSecp256k1(ctx,
		prefilledData.Bytes(),
		signature,
		message,
		pubkey[:],
		&length,
	)
	if code != 0 {
		return types.Pubkey{}, types.StatusFromNative(code)
	}

	invariant.Check(length == types.PubkeySize, "secp256k1 output length %d != %d", length, types.PubkeySize)
	return pubkey, nil
}

// ValidateBlake2bSighashAll 校验当前交易的 sighash_all 签名，并把公钥哈希写入 pubkeyHash
//
// 失败时 pubkeyHash 保持不变；pubkeyHash 为 nil 时返回 types.ErrNilArgument。
func (l *LibSecp256k1) ValidateBlake2bSighashAll(ctx context.Context, pubkeyHash *[types.PubkeyHashSize]byte) error {
	if pubkeyHash == nil {
		return types.ErrNilArgument
	}

	var out [types.PubkeyHashSize]byte

	invariant.Zeroed(out[:], "pubkey hash output")
	if code := l.symbols.ValidateSecp256k1Blake2bSighashAll(ctx, out[:]); code != 0 {
		return types.StatusFromNative(code)
	}
	*pubkeyHash = out
	return nil
}
