package lz4

import (
	"fmt"

	lz4 "github.com/bkaradzic/go-lz4"
)

// Compress 压缩为单个 lz4 块，块头记录原始长度
func Compress(dst []byte, src []byte) ([]byte, error) {
	block, err := lz4.Encode(nil, src)
	if err != nil {
		return dst, fmt.Errorf("lz4 encode: %w", err)
	}
	return append(dst, block...), nil
}

func Decompress(dst []byte, src []byte) ([]byte, error) {
	raw, err := lz4.Decode(nil, src)
	if err != nil {
		return dst, fmt.Errorf("lz4 decode: %w", err)
	}
	return append(dst, raw...), nil
}
