package zstd

import (
	"fmt"

	"github.com/valyala/gozstd"
)

// Level 压缩级别
const Level = 3

func Compress(dst []byte, src []byte) ([]byte, error) {
	return gozstd.CompressLevel(dst, src, Level), nil
}

func Decompress(dst []byte, src []byte) ([]byte, error) {
	out, err := gozstd.Decompress(dst, src)
	if err != nil {
		return dst, fmt.Errorf("zstd decompress: %w", err)
	}
	return out, nil
}
