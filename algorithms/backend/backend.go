package backend

import (
	"errors"
	"fmt"
	"sort"

	"huffcodec/algorithms/ans"
	"huffcodec/algorithms/brotli"
	"huffcodec/algorithms/huffmanLib"
	"huffcodec/algorithms/lz4"
	"huffcodec/algorithms/rangeCoding"
	"huffcodec/algorithms/snappy"
	"huffcodec/algorithms/xz"
	"huffcodec/algorithms/zstd"
)

var ErrUnknownBackend = errors.New("unknown backend")

// Backend 字节流压缩器，用于打包 '0'/'1' 编码流以及对比测试
type Backend struct {
	Name       string
	Compress   func(dst []byte, src []byte) ([]byte, error)
	Decompress func(dst []byte, src []byte) ([]byte, error)
}

// None 不做任何处理
const None = "none"

var backends = []Backend{
	{None, identity, identity},
	{"snappy", snappy.Compress, snappy.Decompress},
	{"zstd", zstd.Compress, zstd.Decompress},
	{"lz4", lz4.Compress, lz4.Decompress},
	{"brotli", brotli.Compress, brotli.Decompress},
	{"xz", xz.Compress, xz.Decompress},
	{"fse", ans.Compress, ans.Decompress},
}

// references 其他零阶熵编码实现，只用于对比
var references = []Backend{
	{"hufio", huffmanLib.CompressBytes, huffmanLib.DecompressBytes},
	{"huff0", huffmanLib.CompressHuff0, huffmanLib.DecompressHuff0},
	{"range", rangeCoding.CompressBytes, rangeCoding.DecompressBytes},
}

func identity(dst []byte, src []byte) ([]byte, error) {
	return append(dst, src...), nil
}

// All 返回所有可用于打包的压缩器
func All() []Backend {
	return append([]Backend(nil), backends...)
}

// References 返回用于对比的库 Huffman 实现
func References() []Backend {
	return append([]Backend(nil), references...)
}

// Names 按字母序返回打包压缩器名称
func Names() []string {
	names := make([]string, 0, len(backends))
	for _, b := range backends {
		names = append(names, b.Name)
	}
	sort.Strings(names)
	return names
}

// Lookup 按名称查找打包压缩器，空名称等同于 none
func Lookup(name string) (Backend, error) {
	if name == "" {
		name = None
	}
	for _, b := range backends {
		if b.Name == name {
			return b, nil
		}
	}
	return Backend{}, fmt.Errorf("%w %q (have %v)", ErrUnknownBackend, name, Names())
}
