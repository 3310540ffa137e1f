// Package librsa 封装动态加载的 RSA 验证库
//
// 🎯 **职责**：
// - 按原生调用约定验证 RSA 签名，返回 20 字节公钥哈希
// - 在多个候选消息之间匹配 DKIM 签名（见 dkim.go）
//
// RSA 原语没有预计算上下文，预填充数据只是一个零大小占位符，
// 调用时始终传递 NULL。
package librsa

import (
	"context"

	"github.com/weisyn/dlverify/pkg/interfaces/dl"
	"github.com/weisyn/dlverify/pkg/interfaces/infrastructure/log"
	"github.com/weisyn/dlverify/pkg/types"
	"github.com/weisyn/dlverify/pkg/utils/invariant"
)

// PrefilledData RSA 预填充数据占位符
type PrefilledData struct{}

// LibRSA RSA 适配器
type LibRSA struct {
	symbols dl.RSASymbols
	logger  log.Logger
}

// Option 适配器选项
type Option func(*LibRSA)

// WithLogger 设置日志记录器（仅用于 DKIM 候选的调试日志）
func WithLogger(logger log.Logger) Option {
	return func(l *LibRSA) {
		l.logger = logger
	}
}

// Load 从已加载的库构造适配器，不会失败
func Load(lib dl.Library, opts ...Option) *LibRSA {
	l := &LibRSA{symbols: lib.RSA()}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// LoadPrefilledData 返回占位符
func (l *LibRSA) LoadPrefilledData() PrefilledData {
	return PrefilledData{}
}

// ValidateSignature 验证签名
//
// signature 为 rsainfo.Encode 生成的布局缓冲区。失败时返回全零哈希。
func (l *LibRSA) ValidateSignature(ctx context.Context, _ PrefilledData, signature, message []byte) (types.PubkeyHash, error) {
	var pubkeyHash types.PubkeyHash
	length := uint64(len(pubkeyHash))

	invariant.Zeroed(pubkeyHash[:], "pubkey hash output")
	code := l.symbols.ValidateSignatureRSA(ctx,
		nil,
		signature,
		message,
		pubkeyHash[:],
		&length,
	)
	if code != 0 {
		return types.PubkeyHash{}, types.StatusFromNative(code)
	}

	invariant.Check(length == types.PubkeyHashSize, "rsa output length %d != %d", length, types.PubkeyHashSize)
	return pubkeyHash, nil
}
