package snappy

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/snappy"
)

// Compress 以 snappy 帧格式压缩 src 并追加到 dst
func Compress(dst []byte, src []byte) ([]byte, error) {
	bw := &bytes.Buffer{}
	snappyEncoder := snappy.NewBufferedWriter(bw)
	if _, err := snappyEncoder.Write(src); err != nil {
		return dst, fmt.Errorf("snappy write: %w", err)
	}
	if err := snappyEncoder.Close(); err != nil {
		return dst, fmt.Errorf("snappy close: %w", err)
	}
	return append(dst, bw.Bytes()...), nil
}

func Decompress(dst []byte, src []byte) ([]byte, error) {
	snappyDecoder := snappy.NewReader(bytes.NewReader(src))
	uncb, err := io.ReadAll(snappyDecoder)
	if err != nil {
		return dst, fmt.Errorf("snappy read: %w", err)
	}
	return append(dst, uncb...), nil
}
