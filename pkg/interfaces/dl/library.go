// Package dl 定义动态加载原生验证库的接口
//
// 📋 **外部调用约定 (Foreign-Call Contract)**
//
// 本包描述已加载原生库向适配层暴露的原语。每个方法与原生导出符号一一对应，
// 参数顺序、宽度与原生签名保持一致：
//   - 指针参数以 Go 切片表示（切片长度即原生侧可见的缓冲区大小）
//   - nil 切片对应 NULL 指针（仅 prefilled_data 参数允许）
//   - *uint64 长度参数在调用前携带容量，调用后携带原生写入的长度
//   - 返回值为原生 isize 状态码，0 表示成功
//
// 指针/长度的实际编组由加载器实现负责，适配层不接触原始地址。
package dl

import (
	"context"

	"github.com/weisyn/dlverify/pkg/types"
)

// Library 已解析的原生库句柄
//
// 句柄是不透明的能力令牌：只有从成功加载的库构造的适配器才能调用原生原语。
// 适配器借用句柄，不负责释放。
type Library interface {
	// Name 库名称（用于日志）
	Name() string

	// CodeHash 库数据的代码哈希
	CodeHash() types.CodeHash

	// Secp256k1 secp256k1 原语
	Secp256k1() Secp256k1Symbols

	// RSA RSA 原语
	RSA() RSASymbols

	// SMT 稀疏默克尔树原语
	SMT() SMTSymbols
}

// Secp256k1Symbols secp256k1 原生导出
type Secp256k1Symbols interface {
	// LoadPrefilledData load_prefilled_data(data, &len)
	LoadPrefilledData(ctx context.Context, data []byte, length *uint64) int64

	// ValidateSignatureSecp256k1 validate_signature_secp256k1(prefilled, sig, sig_len, msg, msg_len, out, &out_len)
	ValidateSignatureSecp256k1(ctx context.Context, prefilledData, signature, message, output []byte, outputLen *uint64) int64

	// ValidateSecp256k1Blake2bSighashAll validate_secp256k1_blake2b_sighash_all(out)
	ValidateSecp256k1Blake2bSighashAll(ctx context.Context, outputPublicKeyHash []byte) int64
}

// RSASymbols RSA 原生导出
type RSASymbols interface {
	// ValidateSignatureRSA validate_signature_rsa(prefilled, sig, sig_len, msg, msg_len, out, &out_len)
	ValidateSignatureRSA(ctx context.Context, prefilledData, signature, message, output []byte, outputLen *uint64) int64
}

// SMTSymbols SMT 原生导出
type SMTSymbols interface {
	// CKBSMTVerify ckb_smt_verify(root, pair_len, keys, values, proof, proof_len)
	CKBSMTVerify(ctx context.Context, root []byte, pairLen uint32, keys, values, proof []byte, proofLength uint32) int64
}
