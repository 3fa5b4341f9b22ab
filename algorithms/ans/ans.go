package ans

import (
	"errors"
	"fmt"

	"github.com/klauspost/compress/fse"
)

// Compress 使用 FSE 压缩，首字节为标志位：1 表示已压缩，0 表示原样存储
// FSE 无法压缩或压缩后更大时原样存储
func Compress(dst []byte, src []byte) ([]byte, error) {
	compressed, err := fse.Compress(src, nil)
	switch {
	case errors.Is(err, fse.ErrIncompressible), errors.Is(err, fse.ErrUseRLE):
		return wrapUncompressed(dst, src), nil
	case err != nil:
		return dst, fmt.Errorf("fse compress: %w", err)
	case len(compressed) == 0 || len(compressed) >= len(src):
		return wrapUncompressed(dst, src), nil
	}

	dst = append(dst, 1)
	return append(dst, compressed...), nil
}

func wrapUncompressed(dst []byte, src []byte) []byte {
	dst = append(dst, 0)
	return append(dst, src...)
}

func Decompress(dst []byte, src []byte) ([]byte, error) {
	if len(src) == 0 {
		return dst, fmt.Errorf("empty input")
	}

	// 读取标志位
	flag := src[0]
	data := src[1:]
	switch flag {
	case 0:
		return append(dst, data...), nil
	case 1:
		uncb, err := fse.Decompress(data, nil)
		if err != nil {
			return dst, fmt.Errorf("fse decompress: %w", err)
		}
		return append(dst, uncb...), nil
	default:
		return dst, fmt.Errorf("unknown block flag %d", flag)
	}
}
