package main

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// decodeHex 解析十六进制参数，允许 0x 前缀
func decodeHex(name, value string) ([]byte, error) {
	value = strings.TrimPrefix(strings.TrimPrefix(value, "0x"), "0X")
	data, err := hex.DecodeString(value)
	if err != nil {
		return nil, fmt.Errorf("参数 --%s 不是合法的十六进制: %w", name, err)
	}
	return data, nil
}
