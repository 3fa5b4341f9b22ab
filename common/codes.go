package common

import (
	"bufio"
	"io"
	"strconv"

	"huffcodec/algorithms/huffman"
)

// WriteCodeTable 按符号顺序输出 "符号\t编码"，没有编码的符号输出空编码
func WriteCodeTable(w io.Writer, codes huffman.CodeTable) error {
	bw := bufio.NewWriter(w)
	for i := 0; i < huffman.Symbols; i++ {
		bw.WriteString(strconv.Itoa(i))
		bw.WriteByte('\t')
		bw.WriteString(string(codes[byte(i)]))
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
