package huffman

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"golang.org/x/sync/errgroup"
)

var (
	ErrMissingCode = errors.New("no code for symbol")
	ErrInvalidBit  = errors.New("invalid bit character")
	ErrTruncated   = errors.New("bit stream ends inside a code")
	ErrNilTree     = errors.New("nil tree")
)

// DefaultChunkSize 并行编码时每个分块的字节数
const DefaultChunkSize = 1 << 20

// Encode 将输入的每个字节替换为其编码，输出 '0'/'1' 字符流
// 返回写出的比特数（即字符数）
func Encode(codes CodeTable, r io.Reader, w io.Writer) (int64, error) {
	br := bufio.NewReader(r)
	bw := bufio.NewWriter(w)
	var bits int64
	for {
		c, err := br.ReadByte()
		if err == io.EOF {
			break
		}
		if err != nil {
			return bits, fmt.Errorf("read input: %w", err)
		}
		code, ok := codes[c]
		if !ok {
			return bits, fmt.Errorf("%w: %d", ErrMissingCode, c)
		}
		n, err := bw.WriteString(string(code))
		bits += int64(n)
		if err != nil {
			return bits, fmt.Errorf("write output: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return bits, fmt.Errorf("flush output: %w", err)
	}
	return bits, nil
}

// EncodeBytes 编码内存中的字节切片
func EncodeBytes(codes CodeTable, src []byte) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := encodeChunk(codes, src, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeChunk(codes CodeTable, src []byte, buf *bytes.Buffer) (int64, error) {
	var bits int64
	for _, c := range src {
		code, ok := codes[c]
		if !ok {
			return bits, fmt.Errorf("%w: %d", ErrMissingCode, c)
		}
		buf.WriteString(string(code))
		bits += int64(len(code))
	}
	return bits, nil
}

// EncodeParallel 将输入分块并发编码后按原顺序拼接，输出与 Encode 完全相同
// codes 在编码期间只读，调用方不得并发修改
func EncodeParallel(ctx context.Context, codes CodeTable, src []byte, w io.Writer, workers, chunkSize int) (int64, error) {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	if workers <= 0 {
		workers = 1
	}
	nchunks := (len(src) + chunkSize - 1) / chunkSize
	outs := make([]bytes.Buffer, nchunks)
	counts := make([]int64, nchunks)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < nchunks; i++ {
		lo := i * chunkSize
		hi := min(lo+chunkSize, len(src))
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			n, err := encodeChunk(codes, src[lo:hi], &outs[i])
			if err != nil {
				return fmt.Errorf("chunk %d: %w", i, err)
			}
			counts[i] = n
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	var bits int64
	for i := range outs {
		n, err := outs[i].WriteTo(w)
		bits += n
		if err != nil {
			return bits, fmt.Errorf("write chunk %d: %w", i, err)
		}
		if n != counts[i] {
			return bits, fmt.Errorf("chunk %d: wrote %d of %d bits", i, n, counts[i])
		}
	}
	return bits, nil
}

// Decode 从根节点出发逐比特走树，到达叶子时输出符号并回到根
// 返回写出的字节数
func Decode(root *Node, r io.Reader, w io.Writer) (int64, error) {
	if root == nil {
		return 0, ErrNilTree
	}
	br := bufio.NewReader(r)
	bw := bufio.NewWriter(w)
	var (
		written int64
		offset  int64
		cursor  = root
	)
	for {
		c, err := br.ReadByte()
		if err == io.EOF {
			break
		}
		if err != nil {
			return written, fmt.Errorf("read bits: %w", err)
		}
		switch c {
		case '0':
			cursor = cursor.left
		case '1':
			cursor = cursor.right
		default:
			// 与截断一致，先写出已解码的符号
			if ferr := bw.Flush(); ferr != nil {
				return written, fmt.Errorf("flush output: %w", ferr)
			}
			return written, fmt.Errorf("%w %q at offset %d", ErrInvalidBit, c, offset)
		}
		offset++
		if cursor == nil {
			// 根节点本身是叶子时没有可走的边
			return written, fmt.Errorf("%w: tree has no edges", ErrNilTree)
		}
		if !cursor.IsLeaf() {
			continue
		}
		if err := bw.WriteByte(cursor.symbol); err != nil {
			return written, fmt.Errorf("write output: %w", err)
		}
		written++
		cursor = root
	}
	if err := bw.Flush(); err != nil {
		return written, fmt.Errorf("flush output: %w", err)
	}
	if cursor != root {
		return written, fmt.Errorf("%w after %d bits", ErrTruncated, offset)
	}
	return written, nil
}

// DecodeBytes 解码内存中的比特字符流
func DecodeBytes(root *Node, src []byte) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := Decode(root, bytes.NewReader(src), &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
