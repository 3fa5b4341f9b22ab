package huffmanLib

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/icza/huffman/hufio"
	"github.com/klauspost/compress/huff0"
)

// CompressBytes 使用 hufio 的自适应 Huffman 流压缩任意字节流
// 首字节为标志位：1 表示已压缩，0 表示原样存储
func CompressBytes(dst []byte, src []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := hufio.NewWriter(&buf)
	if _, err := w.Write(src); err != nil {
		return wrapUncompressed(dst, src), nil
	}
	if err := w.Close(); err != nil {
		return wrapUncompressed(dst, src), nil
	}
	compressed := buf.Bytes()
	if len(compressed) == 0 || len(compressed) >= len(src) {
		return wrapUncompressed(dst, src), nil
	}
	dst = append(dst, 1)
	return append(dst, compressed...), nil
}

func wrapUncompressed(dst []byte, src []byte) []byte {
	dst = append(dst, 0)
	return append(dst, src...)
}

// DecompressBytes 解压 CompressBytes 的输出
func DecompressBytes(dst []byte, src []byte) ([]byte, error) {
	if len(src) == 0 {
		return dst, fmt.Errorf("empty input")
	}
	flag := src[0]
	data := src[1:]
	if flag == 0 {
		return append(dst, data...), nil
	}
	r := hufio.NewReader(bytes.NewReader(data))
	uncb, err := io.ReadAll(r)
	if err != nil {
		return dst, err
	}
	return append(dst, uncb...), nil
}

// huff0 每块的存储方式
const (
	blockRaw  = 0
	blockHuff = 1
	blockRLE  = 2
)

// CompressHuff0 按 huff0.BlockSizeMax 分块，每块使用 huff0 单流压缩
// 块格式: [标志(1字节)] + [原始长度(4字节)] + [数据长度(4字节)] + [数据]
func CompressHuff0(dst []byte, src []byte) ([]byte, error) {
	// 每块都带自己的码表，解压时不依赖前一块
	s := huff0.Scratch{Reuse: huff0.ReusePolicyNone}
	for start := 0; start < len(src); start += huff0.BlockSizeMax {
		block := src[start:min(start+huff0.BlockSizeMax, len(src))]

		out, _, err := huff0.Compress1X(block, &s)
		switch {
		case errors.Is(err, huff0.ErrUseRLE):
			dst = appendBlock(dst, blockRLE, len(block), block[:1])
		case errors.Is(err, huff0.ErrIncompressible):
			dst = appendBlock(dst, blockRaw, len(block), block)
		case err != nil:
			return dst, fmt.Errorf("huff0 block at %d: %w", start, err)
		default:
			dst = appendBlock(dst, blockHuff, len(block), out)
		}
	}
	return dst, nil
}

func appendBlock(dst []byte, flag byte, rawLen int, data []byte) []byte {
	dst = append(dst, flag)
	dst = binary.LittleEndian.AppendUint32(dst, uint32(rawLen))
	dst = binary.LittleEndian.AppendUint32(dst, uint32(len(data)))
	return append(dst, data...)
}

// DecompressHuff0 解压 CompressHuff0 的输出
func DecompressHuff0(dst []byte, src []byte) ([]byte, error) {
	var s *huff0.Scratch
	offset := 0
	for offset < len(src) {
		if offset+9 > len(src) {
			return dst, fmt.Errorf("insufficient data for block header at %d", offset)
		}
		flag := src[offset]
		rawLen := int(binary.LittleEndian.Uint32(src[offset+1:]))
		dataLen := int(binary.LittleEndian.Uint32(src[offset+5:]))
		offset += 9
		if offset+dataLen > len(src) {
			return dst, fmt.Errorf("insufficient data for block at %d", offset)
		}
		data := src[offset : offset+dataLen]
		offset += dataLen

		switch flag {
		case blockRaw:
			dst = append(dst, data...)
		case blockRLE:
			if dataLen != 1 {
				return dst, fmt.Errorf("rle block with %d data bytes", dataLen)
			}
			dst = append(dst, bytes.Repeat(data, rawLen)...)
		case blockHuff:
			var (
				remain []byte
				err    error
			)
			s, remain, err = huff0.ReadTable(data, s)
			if err != nil {
				return dst, fmt.Errorf("huff0 table: %w", err)
			}
			out, err := s.Decompress1X(remain)
			if err != nil {
				return dst, fmt.Errorf("huff0 block: %w", err)
			}
			if len(out) != rawLen {
				return dst, fmt.Errorf("huff0 block decoded %d bytes, expected %d", len(out), rawLen)
			}
			dst = append(dst, out...)
		default:
			return dst, fmt.Errorf("unknown block flag %d", flag)
		}
	}
	return dst, nil
}
