package types

import (
	"encoding/hex"
)

const (
	// PubkeyHashSize 公钥哈希长度
	PubkeyHashSize = 20

	// PubkeySize 未压缩公钥长度
	PubkeySize = 65

	// Secp256k1DataSize secp256k1 预填充数据大小（1 MiB）
	Secp256k1DataSize = 1048576

	// SMTChunkSize SMT key/value/root 分片大小
	SMTChunkSize = 32

	// CodeHashSize 原生库代码哈希长度
	CodeHashSize = 32
)

// PubkeyHash 20 字节公钥哈希
type PubkeyHash [PubkeyHashSize]byte

// AsSlice 返回底层字节切片
func (h *PubkeyHash) AsSlice() []byte {
	return h[:]
}

// String 十六进制表示
func (h PubkeyHash) String() string {
	return hex.EncodeToString(h[:])
}

// Pubkey 65 字节未压缩公钥（恢复结果）
type Pubkey [PubkeySize]byte

// AsSlice 返回底层字节切片
func (p *Pubkey) AsSlice() []byte {
	return p[:]
}

// String 十六进制表示
func (p Pubkey) String() string {
	return hex.EncodeToString(p[:])
}

// CodeHash 原生库代码哈希（库数据的 blake2b-256）
type CodeHash [CodeHashSize]byte

// String 十六进制表示
func (h CodeHash) String() string {
	return hex.EncodeToString(h[:])
}

// ParseCodeHash 解析十六进制代码哈希，允许 0x 前缀
func ParseCodeHash(s string) (CodeHash, error) {
	var h CodeHash
	if len(s) >= 2 && (s[:2] == "0x" || s[:2] == "0X") {
		s = s[2:]
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return h, err
	}
	if len(b) != CodeHashSize {
		return h, hex.ErrLength
	}
	copy(h[:], b)
	return h, nil
}
