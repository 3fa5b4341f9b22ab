package brotli

import (
	"bytes"
	"fmt"
	"io"

	"github.com/andybalholm/brotli"
)

func Compress(dst []byte, src []byte) ([]byte, error) {
	var buf bytes.Buffer
	writer := brotli.NewWriterLevel(&buf, brotli.DefaultCompression)
	if _, err := writer.Write(src); err != nil {
		return dst, fmt.Errorf("brotli write: %w", err)
	}
	if err := writer.Close(); err != nil {
		return dst, fmt.Errorf("brotli close: %w", err)
	}
	return append(dst, buf.Bytes()...), nil
}

func Decompress(dst []byte, src []byte) ([]byte, error) {
	reader := brotli.NewReader(bytes.NewReader(src))
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, reader); err != nil {
		return dst, fmt.Errorf("brotli read: %w", err)
	}
	return append(dst, buf.Bytes()...), nil
}
