package common

import (
	"fmt"
	"io"

	"huffcodec/algorithms/huffman"
)

// CountFrequencies 单遍统计每个字节出现的次数，返回频率表和读取的字节数
func CountFrequencies(r io.Reader) (huffman.FrequencyTable, int64, error) {
	var freq huffman.FrequencyTable
	buf := make([]byte, 32*1024)
	var size int64
	for {
		n, err := r.Read(buf)
		for _, c := range buf[:n] {
			freq[c]++
		}
		size += int64(n)
		if err == io.EOF {
			return freq, size, nil
		}
		if err != nil {
			return freq, size, fmt.Errorf("count frequencies: %w", err)
		}
	}
}

func CountBytes(src []byte) huffman.FrequencyTable {
	var freq huffman.FrequencyTable
	for _, c := range src {
		freq[c]++
	}
	return freq
}
