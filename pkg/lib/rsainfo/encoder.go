// Package rsainfo 构造原生 RSA 验证原语所需的定长布局缓冲区
//
// 布局（小端序）：
//
//	[0:4)            算法标识
//	[4:8)            公钥位长 = len(n) * 8
//	[8:12)           公钥指数 e
//	[12:12+L)        模数 n
//	[12+L:12+2L)     签名
//
// 该缓冲区作为 "签名" 参数传给 validate_signature_rsa，必须逐字节复现。
package rsainfo

import (
	"encoding/binary"

	"github.com/weisyn/dlverify/pkg/types"
)

// CKBVerifyRSA 算法标识：RSA 签名验证
const CKBVerifyRSA uint32 = 1

// HeaderSize 定长头部大小
const HeaderSize = 12

// Encode 由模数、指数和签名构造 RsaInfo 缓冲区
//
// len(n) 必须等于 len(sig)，否则返回 types.ErrLengthMismatch。
// 缓冲区长度按 pubKeySize/4 + 12 计算（整数除法），与原生实现的内存布局一致。
func Encode(n []byte, e uint32, sig []byte) ([]byte, error) {
	if len(n) != len(sig) {
		return nil, types.ErrLengthMismatch
	}
	pubKeySize := uint32(len(n)) * 8
	info := make([]byte, pubKeySize/4+HeaderSize)

	binary.LittleEndian.PutUint32(info[0:4], CKBVerifyRSA)
	binary.LittleEndian.PutUint32(info[4:8], pubKeySize)
	binary.LittleEndian.PutUint32(info[8:12], e)
	copy(info[HeaderSize:HeaderSize+len(n)], n)
	copy(info[HeaderSize+len(n):HeaderSize+2*len(n)], sig)

	return info, nil
}

// Size 返回模数长度为 modulusLen 时的缓冲区大小
func Size(modulusLen int) int {
	return int(uint32(modulusLen)*8/4) + HeaderSize
}
