package simple8b

import (
	"encoding/binary"
	"fmt"

	"github.com/influxdata/influxdb/pkg/encoding/simple8b"
)

// 每个 simple8b 字最多容纳的数值个数
const maxPerWord = 240

// Compress 将 src 打包为 simple8b 字并以小端序追加到 dst，不修改 src
func Compress(dst []byte, src []uint64) ([]byte, error) {
	// EncodeAll 会原地改写输入
	srcCopy := make([]uint64, len(src))
	copy(srcCopy, src)

	words, err := simple8b.EncodeAll(srcCopy)
	if err != nil {
		return dst, fmt.Errorf("simple8b encode: %w", err)
	}
	for _, w := range words {
		dst = binary.LittleEndian.AppendUint64(dst, w)
	}
	return dst, nil
}

// Decompress 解出 src 中的全部数值并追加到 dst
func Decompress(dst []uint64, src []byte) ([]uint64, error) {
	if len(src)%8 != 0 {
		return dst, fmt.Errorf("invalid src length: %d", len(src))
	}

	words := make([]uint64, len(src)/8)
	for i := 0; i < len(src); i += 8 {
		words[i/8] = binary.LittleEndian.Uint64(src[i : i+8])
	}

	temp := make([]uint64, len(words)*maxPerWord)
	n, err := simple8b.DecodeAll(temp, words)
	if err != nil {
		return dst, fmt.Errorf("simple8b decode: %w", err)
	}
	return append(dst, temp[:n]...), nil
}
